package enrollmentController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"
	"lms/utils"
	enrollmentValidator "lms/validators/enrollment"
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
	log.Printf("[ENROLLMENT] unexpected error: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// ApplyForCourse files an enrollment application with the uploaded
// qualification certificate.
func ApplyForCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedApplication").(*enrollmentValidator.ApplicationRequest)

	certificate, err := c.FormFile("certificate")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Qualification certificate file is required!", nil)
	}

	certificateURL, err := utils.UploadFile(certificate, "enrollment_certificates")
	if err != nil {
		log.Printf("Error uploading certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload certificate!", nil)
	}

	app, err := Svc.Apply(userID, courseID, enrollment.ApplicationForm{
		FirstName:      reqData.FirstName,
		LastName:       reqData.LastName,
		Qualification:  reqData.Qualification,
		CertificateURL: certificateURL,
		Experience:     reqData.Experience,
		ContactNumber:  reqData.ContactNumber,
	})
	if err != nil {
		if errors.Is(err, enrollment.ErrConflict) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already applied for this course!", nil)
		}
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Application submitted successfully!", app)
}

// GetApplicationStatus reports the caller's application status for a course.
func GetApplicationStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	status, err := Svc.ApplicationStatus(userID, courseID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Application status fetched successfully!", fiber.Map{
		"status": status,
	})
}

// GetPurchaseInfo returns the course price and the institute's active bank
// accounts so the student can transfer the fee.
func GetPurchaseInfo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var accounts []models.BankAccount
	if err := db.Where("is_active = ?", true).Find(&accounts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch bank accounts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase info fetched successfully!", fiber.Map{
		"course_title":  course.Title,
		"course_price":  course.Price,
		"bank_accounts": accounts,
	})
}

// SubmitPaymentProof uploads the payment evidence and records it against
// the caller's enrollment.
func SubmitPaymentProof(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof file is required!", nil)
	}

	proofURL, err := utils.UploadFile(file, "payment_proofs")
	if err != nil {
		log.Printf("Error uploading payment proof: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload payment proof!", nil)
	}

	proof, err := Svc.SubmitPaymentProof(userID, courseID, proofURL)
	if err != nil {
		if errors.Is(err, enrollment.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment application not found!", nil)
		}
		if errors.Is(err, enrollment.ErrInvalidState) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your application has not been approved yet!", nil)
		}
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment proof submitted, pending admin approval.", proof)
}

// GetMyEnrollments lists the caller's enrollments with fresh accessibility.
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := Svc.UserEnrollments(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", enrollments)
}

// GetMyNotifications lists the caller's notifications, newest first.
func GetMyNotifications(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notifications []models.Notification
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&notifications).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notifications!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notifications fetched successfully!", notifications)
}
