package adminController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"
	adminValidator "lms/validators/admin"
)

// Svc is the shared enrollment lifecycle service, wired in main.
var Svc *enrollment.Service

func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, enrollment.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Record not found!", nil)
	case errors.Is(err, enrollment.ErrConflict):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already exists!", nil)
	case errors.Is(err, enrollment.ErrInvalidState):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Operation not allowed in current state!", nil)
	}
	log.Printf("[ADMIN] unexpected error: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// GetEnrollmentApplications lists applications awaiting a decision.
func GetEnrollmentApplications(c *fiber.Ctx) error {
	apps, err := Svc.PendingApplications()
	if err != nil {
		return serviceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Applications fetched successfully!", apps)
}

// DecideApplication approves or rejects a pending application.
func DecideApplication(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	appID := c.Locals("recordID").(uint)
	reqData := c.Locals("validatedDecision").(*adminValidator.DecisionRequest)

	app, err := Svc.DecideApplication(appID, reqData.Status == models.StatusApproved, adminID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application updated successfully!", app)
}

// ReopenApplication moves a rejected application back to pending so the
// student can be reconsidered without creating a duplicate row.
func ReopenApplication(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	appID := c.Locals("recordID").(uint)

	app, err := Svc.ReopenApplication(appID, adminID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application reopened successfully!", app)
}

// GetEnrollments lists every enrollment with fresh accessibility.
func GetEnrollments(c *fiber.Ctx) error {
	enrollments, err := Svc.AllEnrollments()
	if err != nil {
		return serviceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetPaymentProofs lists payment proofs awaiting verification.
func GetPaymentProofs(c *fiber.Ctx) error {
	proofs, err := Svc.PendingProofs()
	if err != nil {
		return serviceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment proofs fetched successfully!", proofs)
}

// VerifyPayment settles a payment proof; approval grants the access window
// for the chosen duration.
func VerifyPayment(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	proofID := c.Locals("recordID").(uint)
	reqData := c.Locals("validatedVerification").(*adminValidator.VerifyPaymentRequest)

	enr, err := Svc.VerifyPayment(proofID, reqData.Status == models.StatusApproved, adminID, reqData.DurationMonths)
	if err != nil {
		return serviceError(c, err)
	}

	message := "Payment proof rejected."
	if reqData.Status == models.StatusApproved {
		message = "Enrollment approved and student now has access."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"enrollment":      enr,
		"expiration_date": enr.ExpirationDate,
		"days_remaining":  enr.DaysRemaining,
	})
}

// ExtendEnrollment renews an enrollment's access window.
func ExtendEnrollment(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	enrollmentID := c.Locals("recordID").(uint)
	reqData := c.Locals("validatedExtension").(*adminValidator.ExtendRequest)

	enr, err := Svc.ExtendAccess(enrollmentID, adminID, reqData.DurationMonths)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment extended successfully!", fiber.Map{
		"enrollment":      enr,
		"expiration_date": enr.ExpirationDate,
		"days_remaining":  enr.DaysRemaining,
	})
}
