package enrollment

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"lms/models"
)

type fixedClock struct {
	current time.Time
}

func (c *fixedClock) Now() time.Time { return c.current }

type grantedMail struct {
	email      string
	expiration time.Time
	days       int
}

type fakeMailer struct {
	approvals  []string
	rejections []string
	grants     []grantedMail
	reminders  []string
}

func (m *fakeMailer) SendApprovalEmail(email, courseTitle string) {
	m.approvals = append(m.approvals, email)
}

func (m *fakeMailer) SendRejectionEmail(email, courseTitle, reason string) {
	m.rejections = append(m.rejections, email)
}

func (m *fakeMailer) SendAccessGrantedEmail(email, courseTitle string, expiration time.Time, daysRemaining int) {
	m.grants = append(m.grants, grantedMail{email: email, expiration: expiration, days: daysRemaining})
}

func (m *fakeMailer) SendExpiryReminderEmail(email, courseTitle string, expiration time.Time) {
	m.reminders = append(m.reminders, email)
}

func newTestService(t *testing.T) (*Service, *gorm.DB, *fixedClock, *fakeMailer) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.EnrollmentApplication{},
		&models.Enrollment{},
		&models.PaymentProof{},
		&models.Notification{},
	))

	clock := &fixedClock{current: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	mailer := &fakeMailer{}
	return NewService(db, clock, mailer), db, clock, mailer
}

func seedUserAndCourse(t *testing.T, db *gorm.DB) (uint, uint) {
	t.Helper()

	user := models.User{Name: "Ayesha Khan", Email: "ayesha@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Title: "Advanced Sonography", Price: 25000}
	require.NoError(t, db.Create(&course).Error)

	return user.ID, course.ID
}

func sampleForm() ApplicationForm {
	return ApplicationForm{
		FirstName:      "Ayesha",
		LastName:       "Khan",
		Qualification:  "MBBS",
		CertificateURL: "/uploads/certificates/mbbs.pdf",
		ContactNumber:  "+92-300-1234567",
	}
}

func notifCount(t *testing.T, db *gorm.DB, event string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Notification{}).Where("event_type = ?", event).Count(&n).Error)
	return n
}

// approveApplication walks a fresh (user, course) pair up to an approved
// application.
func approveApplication(t *testing.T, svc *Service, userID, courseID uint) models.EnrollmentApplication {
	t.Helper()
	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)
	app, err = svc.DecideApplication(app.ID, true, 1)
	require.NoError(t, err)
	return app
}

// grantAccess walks the pair all the way to verified payment with the given
// duration.
func grantAccess(t *testing.T, svc *Service, userID, courseID uint, months int) models.Enrollment {
	t.Helper()
	approveApplication(t, svc, userID, courseID)
	proof, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/payment_proofs/p.png")
	require.NoError(t, err)
	enr, err := svc.VerifyPayment(proof.ID, true, 1, months)
	require.NoError(t, err)
	return enr
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, "Ayesha", app.FirstName)
	assert.Equal(t, int64(1), notifCount(t, db, models.EventApplicationSubmitted))
}

func TestApplyUnknownCourse(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, _ := seedUserAndCourse(t, db)

	_, err := svc.Apply(userID, 9999, sampleForm())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyDuplicateConflicts(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	_, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)

	_, err = svc.Apply(userID, courseID, sampleForm())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestApplyAfterRejectionStillConflicts(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)
	_, err = svc.DecideApplication(app.ID, false, 1)
	require.NoError(t, err)

	// Reconsideration goes through ReopenApplication, never a second row.
	_, err = svc.Apply(userID, courseID, sampleForm())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDecideApplicationApprove(t *testing.T) {
	svc, db, _, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)

	app, err = svc.DecideApplication(app.ID, true, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)

	// Approval creates the enrollment, but pending and inaccessible: access
	// only arrives with payment verification.
	var enr models.Enrollment
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enr).Error)
	assert.Equal(t, models.StatusPending, enr.Status)
	assert.False(t, enr.IsAccessible)
	assert.Nil(t, enr.EnrollDate)

	assert.Equal(t, int64(1), notifCount(t, db, models.EventApplicationApproved))
	assert.Equal(t, []string{"ayesha@example.com"}, mailer.approvals)
}

func TestDecideApplicationApproveIdempotent(t *testing.T) {
	svc, db, _, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app := approveApplication(t, svc, userID, courseID)

	app, err := svc.DecideApplication(app.ID, true, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, app.Status)

	var enrollments int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&enrollments).Error)
	assert.Equal(t, int64(1), enrollments)
	assert.Equal(t, int64(1), notifCount(t, db, models.EventApplicationApproved))
	assert.Len(t, mailer.approvals, 1)
}

func TestDecideApplicationCannotReverse(t *testing.T) {
	svc, db, _, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)
	_, err = svc.DecideApplication(app.ID, false, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"ayesha@example.com"}, mailer.rejections)

	_, err = svc.DecideApplication(app.ID, true, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestDecideApplicationUnknown(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.DecideApplication(42, true, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenApplication(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)
	_, err = svc.DecideApplication(app.ID, false, 1)
	require.NoError(t, err)

	app, err = svc.ReopenApplication(app.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)

	// Reopening a pending application is a no-op.
	app, err = svc.ReopenApplication(app.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
}

func TestReopenApprovedApplication(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	app := approveApplication(t, svc, userID, courseID)

	_, err := svc.ReopenApplication(app.ID, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitPaymentProofWithoutApplication(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	_, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/p.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitPaymentProofRequiresApproval(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	_, err := svc.Apply(userID, courseID, sampleForm())
	require.NoError(t, err)

	_, err = svc.SubmitPaymentProof(userID, courseID, "/uploads/p.png")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestSubmitPaymentProofCreatesProvisionalEnrollment(t *testing.T) {
	svc, db, clock, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	approveApplication(t, svc, userID, courseID)
	require.NoError(t, db.Unscoped().Where("user_id = ?", userID).Delete(&models.Enrollment{}).Error)

	proof, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/p.png")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, proof.Status)
	assert.Equal(t, clock.current, proof.SubmittedAt)

	var enr models.Enrollment
	require.NoError(t, db.First(&enr, proof.EnrollmentID).Error)
	assert.Equal(t, models.StatusPending, enr.Status)
	assert.False(t, enr.IsAccessible)

	assert.Equal(t, int64(1), notifCount(t, db, models.EventPaymentProofSubmitted))
}

func TestVerifyPaymentGrantsAccess(t *testing.T) {
	svc, db, clock, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := grantAccess(t, svc, userID, courseID, 1)

	assert.Equal(t, models.StatusApproved, enr.Status)
	assert.True(t, enr.IsAccessible)
	require.NotNil(t, enr.EnrollDate)
	require.NotNil(t, enr.ExpirationDate)
	assert.Equal(t, clock.current, *enr.EnrollDate)
	assert.Equal(t, clock.current.Add(30*24*time.Hour), *enr.ExpirationDate)
	require.NotNil(t, enr.DaysRemaining)
	assert.Equal(t, 30, *enr.DaysRemaining)

	assert.Equal(t, int64(1), notifCount(t, db, models.EventEnrollmentApproved))
	require.Len(t, mailer.grants, 1)
	assert.Equal(t, "ayesha@example.com", mailer.grants[0].email)
	assert.Equal(t, 30, mailer.grants[0].days)
}

func TestVerifyPaymentIdempotent(t *testing.T) {
	svc, db, _, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := grantAccess(t, svc, userID, courseID, 1)
	firstExpiration := *enr.ExpirationDate

	var proof models.PaymentProof
	require.NoError(t, db.Where("enrollment_id = ?", enr.ID).First(&proof).Error)

	// Same outcome again must not extend the window or notify twice.
	again, err := svc.VerifyPayment(proof.ID, true, 1, 1)
	require.NoError(t, err)
	assert.True(t, firstExpiration.Equal(*again.ExpirationDate))
	assert.Equal(t, int64(1), notifCount(t, db, models.EventEnrollmentApproved))
	assert.Len(t, mailer.grants, 1)
}

func TestVerifyPaymentCannotReverse(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := grantAccess(t, svc, userID, courseID, 1)

	var proof models.PaymentProof
	require.NoError(t, db.Where("enrollment_id = ?", enr.ID).First(&proof).Error)

	_, err := svc.VerifyPayment(proof.ID, false, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestVerifyPaymentRejectedLeavesInaccessible(t *testing.T) {
	svc, db, clock, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	approveApplication(t, svc, userID, courseID)
	proof, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/p.png")
	require.NoError(t, err)

	enr, err := svc.VerifyPayment(proof.ID, false, 1, 0)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, enr.Status)
	assert.False(t, enr.IsAccessible)
	assert.Nil(t, enr.ExpirationDate)
	assert.Empty(t, mailer.grants)

	var settled models.PaymentProof
	require.NoError(t, db.First(&settled, proof.ID).Error)
	assert.Equal(t, models.StatusRejected, settled.Status)
	require.NotNil(t, settled.VerifiedAt)
	assert.True(t, clock.current.Equal(*settled.VerifiedAt))
}

func TestVerifyPaymentReAnchorsLapsedWindow(t *testing.T) {
	svc, db, clock, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	grantAccess(t, svc, userID, courseID, 1)

	// Well past the first window: a renewal payment arrives.
	clock.current = clock.current.Add(90 * 24 * time.Hour)
	proof, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/p2.png")
	require.NoError(t, err)

	enr, err := svc.VerifyPayment(proof.ID, true, 1, 1)
	require.NoError(t, err)

	// The stale enroll date would yield an already-expired window, so the
	// grant is re-anchored at verification time.
	require.NotNil(t, enr.EnrollDate)
	assert.True(t, clock.current.Equal(*enr.EnrollDate))
	assert.True(t, clock.current.Add(30*24*time.Hour).Equal(*enr.ExpirationDate))
	assert.True(t, enr.IsAccessible)
}

func TestVerifyPaymentRequiresDuration(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	approveApplication(t, svc, userID, courseID)
	proof, err := svc.SubmitPaymentProof(userID, courseID, "/uploads/p.png")
	require.NoError(t, err)

	_, err = svc.VerifyPayment(proof.ID, true, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExtendAccessActiveWindow(t *testing.T) {
	svc, db, _, mailer := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := grantAccess(t, svc, userID, courseID, 1)
	firstExpiration := *enr.ExpirationDate

	extended, err := svc.ExtendAccess(enr.ID, 1, 1)
	require.NoError(t, err)

	// Extension stacks on the unexpired window, it never shortens it.
	assert.True(t, firstExpiration.Add(30*24*time.Hour).Equal(*extended.ExpirationDate))
	assert.True(t, extended.IsAccessible)
	assert.Len(t, mailer.grants, 2)
}

func TestExtendAccessExpiredWindow(t *testing.T) {
	svc, db, clock, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := grantAccess(t, svc, userID, courseID, 1)

	clock.current = clock.current.Add(120 * 24 * time.Hour)

	extended, err := svc.ExtendAccess(enr.ID, 1, 2)
	require.NoError(t, err)

	// Lapsed window: the extension anchors at now, not at the old expiration.
	assert.Equal(t, clock.current.Add(60*24*time.Hour), *extended.ExpirationDate)
	assert.True(t, extended.IsAccessible)
	require.NotNil(t, extended.DaysRemaining)
	assert.Equal(t, 60, *extended.DaysRemaining)
}

func TestExtendAccessUnlimitedEnrollment(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       models.StatusApproved,
		IsAccessible: true,
	}
	require.NoError(t, db.Create(&enr).Error)

	_, err := svc.ExtendAccess(enr.ID, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExtendAccessRequiresApprovedEnrollment(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	approveApplication(t, svc, userID, courseID)

	var enr models.Enrollment
	require.NoError(t, db.Where("user_id = ?", userID).First(&enr).Error)

	_, err := svc.ExtendAccess(enr.ID, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestCheckAccessRefreshesStaleCache(t *testing.T) {
	svc, db, clock, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	grantAccess(t, svc, userID, courseID, 1)

	clock.current = clock.current.Add(45 * 24 * time.Hour)

	enr, err := svc.CheckAccess(userID, courseID)
	require.NoError(t, err)
	assert.False(t, enr.IsAccessible)
	require.NotNil(t, enr.DaysRemaining)
	assert.Equal(t, -15, *enr.DaysRemaining)

	// The recomputed values are persisted, not just returned.
	var stored models.Enrollment
	require.NoError(t, db.First(&stored, enr.ID).Error)
	assert.False(t, stored.IsAccessible)
	require.NotNil(t, stored.DaysRemaining)
	assert.Equal(t, -15, *stored.DaysRemaining)
}

func TestCheckAccessUnlimited(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	enr := models.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   models.StatusApproved,
	}
	require.NoError(t, db.Create(&enr).Error)

	checked, err := svc.CheckAccess(userID, courseID)
	require.NoError(t, err)
	assert.True(t, checked.IsAccessible)
	assert.Nil(t, checked.DaysRemaining)
}

func TestCheckAccessUnknownEnrollment(t *testing.T) {
	svc, db, _, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	_, err := svc.CheckAccess(userID, courseID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserEnrollmentsRecomputesAccess(t *testing.T) {
	svc, db, clock, _ := newTestService(t)
	userID, courseID := seedUserAndCourse(t, db)

	grantAccess(t, svc, userID, courseID, 1)

	clock.current = clock.current.Add(31 * 24 * time.Hour)

	enrollments, err := svc.UserEnrollments(userID)
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.False(t, enrollments[0].IsAccessible)
}
