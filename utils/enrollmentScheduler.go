package utils

import (
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
	"lms/services/enrollment"
)

// InitializeEnrollmentScheduler sets up the daily enrollment expiry sweep.
func InitializeEnrollmentScheduler(clock enrollment.Clock) {
	log.Println("[ENROLLMENT-SCHEDULER] Initializing enrollment scheduler...")

	c := cron.New()

	// Run daily at 9 AM institute time to check expiring enrollments
	c.AddFunc("0 9 * * *", func() {
		log.Println("[ENROLLMENT-SCHEDULER] Running daily enrollment check...")
		ProcessExpiringEnrollments(clock)
		RefreshLapsedEnrollments(clock)
	})

	c.Start()
	log.Println("[ENROLLMENT-SCHEDULER] Enrollment scheduler started - runs daily at 9 AM")
}

// ProcessExpiringEnrollments sends reminders for enrollments expiring
// within the next 2 days. Each enrollment is reminded once per granted
// window; extensions reset the flag.
func ProcessExpiringEnrollments(clock enrollment.Clock) {
	db := database.Database.Db
	current := clock.Now()
	windowEnd := now.With(current).EndOfDay().AddDate(0, 0, 2)

	var expiring []models.Enrollment
	if err := db.
		Where("status = ? AND reminder_sent = false AND expiration_date IS NOT NULL", models.StatusApproved).
		Where("expiration_date BETWEEN ? AND ?", current, windowEnd).
		Preload("User").
		Preload("Course").
		Find(&expiring).Error; err != nil {
		log.Printf("[ENROLLMENT-SCHEDULER] Error fetching expiring enrollments: %v", err)
		return
	}

	log.Printf("[ENROLLMENT-SCHEDULER] Found %d enrollments expiring soon", len(expiring))

	for _, enr := range expiring {
		notif := models.Notification{
			UserID:    enr.UserID,
			CourseID:  enr.CourseID,
			EventType: models.EventEnrollmentExpiring,
			Details:   "Your access to " + enr.Course.Title + " expires on " + enr.ExpirationDate.Format("2006-01-02"),
			Timestamp: current,
		}
		if err := db.Create(&notif).Error; err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] Error creating reminder notification for enrollment %d: %v", enr.ID, err)
			continue
		}

		SendExpiryReminderEmail(enr.User.Email, enr.Course.Title, *enr.ExpirationDate)

		db.Model(&enr).Update("reminder_sent", true)
		log.Printf("[ENROLLMENT-SCHEDULER] Sent expiry reminder for enrollment %d to %s", enr.ID, enr.User.Email)
	}
}

// RefreshLapsedEnrollments flips the cached accessibility flag off for
// enrollments whose window has passed. This is only a cache refresh: the
// flag is a pure function of the expiration date and now, so racing with a
// concurrent request-side recompute is harmless.
func RefreshLapsedEnrollments(clock enrollment.Clock) {
	db := database.Database.Db
	current := clock.Now()

	result := db.Model(&models.Enrollment{}).
		Where("is_accessible = true AND expiration_date IS NOT NULL AND expiration_date <= ?", current).
		Update("is_accessible", false)

	if result.Error != nil {
		log.Printf("[ENROLLMENT-SCHEDULER] Error refreshing lapsed enrollments: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[ENROLLMENT-SCHEDULER] Marked %d enrollments inaccessible", result.RowsAffected)
	}
}
