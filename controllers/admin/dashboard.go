package adminController

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"
)

// Clock supplies the institute time for dashboard windows, wired in main.
var Clock enrollment.Clock

// GetDashboard returns headline enrollment numbers for the admin panel.
func GetDashboard(c *fiber.Ctx) error {
	db := database.Database.Db
	current := Clock.Now()
	monthStart := now.With(current).BeginningOfMonth()
	reminderWindow := now.With(current).EndOfDay().AddDate(0, 0, 2)

	var totalCourses, activeEnrollments, expiringSoon int64
	var pendingApplications, pendingProofs, applicationsThisMonth int64

	db.Model(&models.Course{}).Where("is_deleted = ? AND status = ?", false, "ACTIVE").Count(&totalCourses)
	db.Model(&models.Enrollment{}).
		Where("status = ? AND (expiration_date IS NULL OR expiration_date > ?)", models.StatusApproved, current).
		Count(&activeEnrollments)
	db.Model(&models.Enrollment{}).
		Where("status = ? AND expiration_date BETWEEN ? AND ?", models.StatusApproved, current, reminderWindow).
		Count(&expiringSoon)
	db.Model(&models.EnrollmentApplication{}).Where("status = ?", models.StatusPending).Count(&pendingApplications)
	db.Model(&models.PaymentProof{}).Where("status = ?", models.StatusPending).Count(&pendingProofs)
	db.Model(&models.EnrollmentApplication{}).Where("created_at >= ?", monthStart).Count(&applicationsThisMonth)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"total_courses":           totalCourses,
		"active_enrollments":      activeEnrollments,
		"expiring_soon":           expiringSoon,
		"pending_applications":    pendingApplications,
		"pending_payment_proofs":  pendingProofs,
		"applications_this_month": applicationsThisMonth,
		"last_updated":            current,
	})
}
