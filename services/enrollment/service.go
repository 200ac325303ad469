package enrollment

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"lms/models"
)

// Service owns every state transition across EnrollmentApplication,
// Enrollment and PaymentProof. Each operation runs inside one database
// transaction; the notification row for a transition is written in that
// same transaction, exactly once, and email dispatch happens only after
// commit so a flaky mail server can never roll a transition back.
type Service struct {
	db     *gorm.DB
	clock  Clock
	mailer Mailer
}

func NewService(db *gorm.DB, clock Clock, mailer Mailer) *Service {
	return &Service{db: db, clock: clock, mailer: mailer}
}

// ApplicationForm carries the student-supplied fields of an application.
// The certificate URL is an opaque reference owned by the file-storage
// collaborator.
type ApplicationForm struct {
	FirstName      string
	LastName       string
	Qualification  string
	CertificateURL string
	Experience     string
	ContactNumber  string
}

// accessWindow converts an admin-chosen duration in months to the granted
// window. A month of access is 30 days.
func accessWindow(months int) time.Duration {
	return time.Duration(months) * 30 * 24 * time.Hour
}

func (s *Service) notify(tx *gorm.DB, userID, courseID uint, event, details string) error {
	n := models.Notification{
		UserID:    userID,
		CourseID:  courseID,
		EventType: event,
		Details:   details,
		Timestamp: s.clock.Now(),
	}
	return tx.Create(&n).Error
}

// Apply files an enrollment application for (user, course). A second apply
// for the same pair fails with ErrConflict whatever the existing
// application's status; the deliberate path after a rejection is the admin
// ReopenApplication operation, never a silent duplicate.
func (s *Service) Apply(userID, courseID uint, form ApplicationForm) (models.EnrollmentApplication, error) {
	var app models.EnrollmentApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var existing models.EnrollmentApplication
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
		if err == nil {
			return ErrConflict
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		app = models.EnrollmentApplication{
			UserID:                      userID,
			CourseID:                    courseID,
			FirstName:                   form.FirstName,
			LastName:                    form.LastName,
			Qualification:               form.Qualification,
			QualificationCertificateURL: form.CertificateURL,
			Experience:                  form.Experience,
			ContactNumber:               form.ContactNumber,
			Status:                      models.StatusPending,
		}
		if err := tx.Create(&app).Error; err != nil {
			// The unique index on (user_id, course_id) is the final arbiter
			// when two applies race past the existence check.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return err
		}

		details := fmt.Sprintf("Application submitted for course %s", course.Title)
		return s.notify(tx, userID, courseID, models.EventApplicationSubmitted, details)
	})
	if err != nil {
		return models.EnrollmentApplication{}, err
	}
	return app, nil
}

// ApplicationStatus reports the application status for (user, course), or
// "not_found" when the student has not applied.
func (s *Service) ApplicationStatus(userID, courseID uint) (string, error) {
	var app models.EnrollmentApplication
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "not_found", nil
	}
	if err != nil {
		return "", err
	}
	return app.Status, nil
}

// DecideApplication transitions a pending application to APPROVED or
// REJECTED. First approval creates the enrollment row for the pair, still
// pending and inaccessible; access is granted only by payment
// verification. Repeating an already-taken decision is a no-op: no second
// enrollment, no second notification, no second email. Reversing a
// terminal decision fails with ErrInvalidState.
func (s *Service) DecideApplication(appID uint, approve bool, adminID uint) (models.EnrollmentApplication, error) {
	var app models.EnrollmentApplication
	var mail func()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("Course").First(&app, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		decision, event := models.StatusApproved, models.EventApplicationApproved
		if !approve {
			decision, event = models.StatusRejected, models.EventApplicationRejected
		}
		if app.Status == decision {
			return nil // already decided, nothing to redo
		}
		if app.Status != models.StatusPending {
			return ErrInvalidState
		}

		app.Status = decision
		if err := tx.Save(&app).Error; err != nil {
			return err
		}

		if approve {
			var enr models.Enrollment
			err := tx.Where("user_id = ? AND course_id = ?", app.UserID, app.CourseID).First(&enr).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				enr = models.Enrollment{
					UserID:       app.UserID,
					CourseID:     app.CourseID,
					Status:       models.StatusPending,
					IsAccessible: false,
				}
				if err := tx.Create(&enr).Error; err != nil {
					if errors.Is(err, gorm.ErrDuplicatedKey) {
						return ErrConflict
					}
					return err
				}
			} else if err != nil {
				return err
			}
		}

		details := fmt.Sprintf("Application for course %s was %s", app.Course.Title, decision)
		if err := s.notify(tx, app.UserID, app.CourseID, event, details); err != nil {
			return err
		}

		email, title := app.User.Email, app.Course.Title
		if approve {
			mail = func() { s.mailer.SendApprovalEmail(email, title) }
		} else {
			mail = func() { s.mailer.SendRejectionEmail(email, title, "Application rejected by admin") }
		}
		log.Printf("[ENROLLMENT] application %d %s by admin %d", app.ID, decision, adminID)
		return nil
	})
	if err != nil {
		return models.EnrollmentApplication{}, err
	}
	if mail != nil && s.mailer != nil {
		mail()
	}
	return app, nil
}

// ReopenApplication moves a rejected application back to PENDING. This is
// the explicit reject-then-reapply path; students themselves can never
// create a second application for the same pair.
func (s *Service) ReopenApplication(appID uint, adminID uint) (models.EnrollmentApplication, error) {
	var app models.EnrollmentApplication
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&app, appID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if app.Status == models.StatusPending {
			return nil
		}
		if app.Status != models.StatusRejected {
			return ErrInvalidState
		}
		app.Status = models.StatusPending
		if err := tx.Save(&app).Error; err != nil {
			return err
		}
		log.Printf("[ENROLLMENT] application %d reopened by admin %d", app.ID, adminID)
		return nil
	})
	if err != nil {
		return models.EnrollmentApplication{}, err
	}
	return app, nil
}

// SubmitPaymentProof records payment evidence for (user, course). It
// requires an APPROVED application and creates the enrollment row if none
// exists yet, provisional and inaccessible until an admin verifies the
// proof.
func (s *Service) SubmitPaymentProof(userID, courseID uint, proofURL string) (models.PaymentProof, error) {
	var proof models.PaymentProof
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var app models.EnrollmentApplication
		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if app.Status != models.StatusApproved {
			return ErrInvalidState
		}

		var enr models.Enrollment
		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enr).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			enr = models.Enrollment{
				UserID:       userID,
				CourseID:     courseID,
				Status:       models.StatusPending,
				IsAccessible: false,
			}
			if err := tx.Create(&enr).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrConflict
				}
				return err
			}
		} else if err != nil {
			return err
		}

		proof = models.PaymentProof{
			EnrollmentID: enr.ID,
			ProofURL:     proofURL,
			SubmittedAt:  s.clock.Now(),
			Status:       models.StatusPending,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return err
		}

		details := fmt.Sprintf("Payment proof submitted for course ID %d. Proof: %s", courseID, proofURL)
		return s.notify(tx, userID, courseID, models.EventPaymentProofSubmitted, details)
	})
	if err != nil {
		return models.PaymentProof{}, err
	}
	return proof, nil
}

// VerifyPayment settles a pending payment proof. Approval grants the
// enrollment its access window: status approved, accessible, enroll date
// set now when unset (re-anchored at now when a previously granted window
// has already lapsed), expiration = enroll date + 30 days per month of the
// chosen duration. Re-verifying an already settled proof with the same
// outcome is a no-op and never extends the window a second time; reversing
// the outcome fails with ErrInvalidState. Rejection leaves the enrollment
// untouched and inaccessible.
func (s *Service) VerifyPayment(proofID uint, approve bool, adminID uint, durationMonths int) (models.Enrollment, error) {
	var enr models.Enrollment
	var mail func()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var proof models.PaymentProof
		if err := tx.First(&proof, proofID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		outcome := models.StatusApproved
		if !approve {
			outcome = models.StatusRejected
		}

		if err := tx.Preload("User").Preload("Course").First(&enr, proof.EnrollmentID).Error; err != nil {
			return err
		}
		if proof.Status == outcome {
			return nil // already settled, do not re-extend
		}
		if proof.Status != models.StatusPending {
			return ErrInvalidState
		}

		now := s.clock.Now()
		proof.Status = outcome
		proof.VerifiedAt = &now
		if err := tx.Save(&proof).Error; err != nil {
			return err
		}

		if !approve {
			log.Printf("[ENROLLMENT] payment proof %d rejected by admin %d", proof.ID, adminID)
			return nil
		}
		if durationMonths < 1 {
			return ErrInvalidState
		}

		if enr.EnrollDate == nil {
			enr.EnrollDate = &now
		}
		expiration := enr.EnrollDate.Add(accessWindow(durationMonths))
		if !expiration.After(now) {
			// Previous window lapsed long ago; re-grant anchored at now so
			// the student never receives an already-expired window.
			enr.EnrollDate = &now
			expiration = now.Add(accessWindow(durationMonths))
		}
		enr.Status = models.StatusApproved
		enr.ExpirationDate = &expiration
		enr.ReminderSent = false
		enr.IsAccessible, enr.DaysRemaining = Evaluate(enr, now)
		if err := tx.Save(&enr).Error; err != nil {
			return err
		}

		details := fmt.Sprintf("Enrollment approved for course %s. Access granted until %s (%d days remaining)",
			enr.Course.Title, expiration.Format("2006-01-02 15:04:05 MST"), *enr.DaysRemaining)
		if err := s.notify(tx, enr.UserID, enr.CourseID, models.EventEnrollmentApproved, details); err != nil {
			return err
		}

		email, title, days := enr.User.Email, enr.Course.Title, *enr.DaysRemaining
		mail = func() { s.mailer.SendAccessGrantedEmail(email, title, expiration, days) }
		log.Printf("[ENROLLMENT] payment proof %d approved by admin %d, access until %s", proof.ID, adminID, expiration)
		return nil
	})
	if err != nil {
		return models.Enrollment{}, err
	}
	if mail != nil && s.mailer != nil {
		mail()
	}
	return enr, nil
}

// ExtendAccess renews an approved enrollment. The new expiration is
// computed from the later of now and the current expiration, so an
// extension can never shorten an unexpired window. Unlimited enrollments
// cannot be extended; any finite window would shorten them.
func (s *Service) ExtendAccess(enrollmentID uint, adminID uint, durationMonths int) (models.Enrollment, error) {
	var enr models.Enrollment
	var mail func()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("Course").First(&enr, enrollmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if enr.Status != models.StatusApproved || enr.ExpirationDate == nil {
			return ErrInvalidState
		}
		if durationMonths < 1 {
			return ErrInvalidState
		}

		now := s.clock.Now()
		base := now
		if enr.ExpirationDate.After(now) {
			base = *enr.ExpirationDate
		}
		expiration := base.Add(accessWindow(durationMonths))
		enr.ExpirationDate = &expiration
		enr.ReminderSent = false
		enr.IsAccessible, enr.DaysRemaining = Evaluate(enr, now)
		if err := tx.Save(&enr).Error; err != nil {
			return err
		}

		details := fmt.Sprintf("Access to course %s extended until %s (%d days remaining)",
			enr.Course.Title, expiration.Format("2006-01-02 15:04:05 MST"), *enr.DaysRemaining)
		if err := s.notify(tx, enr.UserID, enr.CourseID, models.EventEnrollmentApproved, details); err != nil {
			return err
		}

		email, title, days := enr.User.Email, enr.Course.Title, *enr.DaysRemaining
		mail = func() { s.mailer.SendAccessGrantedEmail(email, title, expiration, days) }
		log.Printf("[ENROLLMENT] enrollment %d extended by admin %d until %s", enr.ID, adminID, expiration)
		return nil
	})
	if err != nil {
		return models.Enrollment{}, err
	}
	if mail != nil && s.mailer != nil {
		mail()
	}
	return enr, nil
}

// CheckAccess recomputes accessibility for (user, course) fresh and
// persists the recomputed cache. Every content-serving endpoint calls this
// before releasing a resource; a request-scoped stale read of the cached
// flag is a correctness bug. The cache write may race with other requests,
// which is safe: the value is a pure function of the expiration date and
// now, so last-writer-wins.
func (s *Service) CheckAccess(userID, courseID uint) (models.Enrollment, error) {
	var enr models.Enrollment
	err := s.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Enrollment{}, ErrNotFound
	}
	if err != nil {
		return models.Enrollment{}, err
	}

	enr.IsAccessible, enr.DaysRemaining = Evaluate(enr, s.clock.Now())
	updates := map[string]interface{}{
		"is_accessible":  enr.IsAccessible,
		"days_remaining": enr.DaysRemaining,
	}
	if err := s.db.Model(&models.Enrollment{}).Where("id = ?", enr.ID).Updates(updates).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enr, nil
}

// Enrollment returns the enrollment for (user, course) without refreshing
// the cache. Callers deciding access must use CheckAccess instead.
func (s *Service) Enrollment(userID, courseID uint) (models.Enrollment, error) {
	var enr models.Enrollment
	err := s.db.Preload("Course").Where("user_id = ? AND course_id = ?", userID, courseID).First(&enr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Enrollment{}, ErrNotFound
	}
	return enr, err
}

// PendingApplications lists applications awaiting an admin decision.
func (s *Service) PendingApplications() ([]models.EnrollmentApplication, error) {
	var apps []models.EnrollmentApplication
	err := s.db.Preload("User").Preload("Course").
		Where("status = ?", models.StatusPending).
		Order("id desc").
		Find(&apps).Error
	return apps, err
}

// PendingProofs lists payment proofs awaiting verification.
func (s *Service) PendingProofs() ([]models.PaymentProof, error) {
	var proofs []models.PaymentProof
	err := s.db.Preload("Enrollment").Preload("Enrollment.User").Preload("Enrollment.Course").
		Where("status = ?", models.StatusPending).
		Order("id desc").
		Find(&proofs).Error
	return proofs, err
}

// AllEnrollments lists every enrollment with fresh accessibility, newest
// first.
func (s *Service) AllEnrollments() ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.Preload("User").Preload("Course").Order("id desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for i := range enrollments {
		enrollments[i].IsAccessible, enrollments[i].DaysRemaining = Evaluate(enrollments[i], now)
	}
	return enrollments, nil
}

// UserEnrollments lists a student's enrollments with fresh accessibility.
func (s *Service) UserEnrollments(userID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := s.db.Preload("Course").Where("user_id = ?", userID).Find(&enrollments).Error; err != nil {
		return nil, err
	}
	now := s.clock.Now()
	for i := range enrollments {
		enrollments[i].IsAccessible, enrollments[i].DaysRemaining = Evaluate(enrollments[i], now)
	}
	return enrollments, nil
}
