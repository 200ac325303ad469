package courseController

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseValidator "lms/validators/course"
)

// CreateCourse adds a new course to the catalog.
func CreateCourse(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course := models.Course{
		Title:           reqData.Title,
		Description:     reqData.Description,
		Price:           reqData.Price,
		ThumbnailURL:    reqData.ThumbnailURL,
		DifficultyLevel: reqData.DifficultyLevel,
		Status:          "ACTIVE",
		CreatedBy:       adminID,
		UpdatedBy:       adminID,
	}
	if course.DifficultyLevel == "" {
		course.DifficultyLevel = "BEGINNER"
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse mutates only the explicitly permitted course fields.
func UpdateCourse(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.CourseUpdate)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if reqData.Title != nil {
		course.Title = *reqData.Title
	}
	if reqData.Description != nil {
		course.Description = *reqData.Description
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.ThumbnailURL != nil {
		course.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.DifficultyLevel != nil {
		course.DifficultyLevel = *reqData.DifficultyLevel
	}
	if reqData.Status != nil {
		course.Status = *reqData.Status
	}
	course.UpdatedBy = adminID

	if err := db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse soft-deletes a course.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	db := database.Database.Db

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := db.Model(&course).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// CreateVideo attaches a video to a course.
func CreateVideo(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedVideo").(*courseValidator.CreateVideoRequest)

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	video := models.Video{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		VideoURL:    reqData.VideoURL,
		Position:    reqData.Position,
	}
	if err := db.Create(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully!", video)
}

// DeleteVideo soft-deletes a video.
func DeleteVideo(c *fiber.Ctx) error {
	videoID := c.Locals("recordID").(uint)

	db := database.Database.Db

	var video models.Video
	if err := db.Where("id = ? AND is_deleted = ?", videoID, false).First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if err := db.Model(&video).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully!", nil)
}

// CreateAssignment attaches an assignment to a course.
func CreateAssignment(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData := c.Locals("validatedAssignment").(*courseValidator.CreateAssignmentRequest)

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&models.Course{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	assignment := models.Assignment{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
	}
	if reqData.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, reqData.DueDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid due date, expected RFC 3339!", nil)
		}
		assignment.DueDate = &dueDate
	}

	if err := db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// CreateBankAccount registers a bank account for purchase info.
func CreateBankAccount(c *fiber.Ctx) error {
	reqData := c.Locals("validatedBankAccount").(*courseValidator.CreateBankAccountRequest)

	account := models.BankAccount{
		BankName:      reqData.BankName,
		AccountName:   reqData.AccountName,
		AccountNumber: reqData.AccountNumber,
		IsActive:      true,
	}
	if err := database.Database.Db.Create(&account).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create bank account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Bank account created successfully!", account)
}

// IssueCertificate attaches the rendered certificate URL to a pending
// request and marks it issued.
func IssueCertificate(c *fiber.Ctx) error {
	certificateID := c.Locals("recordID").(uint)

	reqData := new(struct {
		CertificateURL string `json:"certificate_url"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.CertificateURL == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Certificate URL is required!", nil)
	}

	db := database.Database.Db

	var certificate models.Certificate
	if err := db.First(&certificate, certificateID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate request not found!", nil)
	}
	if certificate.Status == models.StatusApproved {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", nil)
	}

	issuedAt := time.Now()
	certificate.CertificateURL = reqData.CertificateURL
	certificate.Status = models.StatusApproved
	certificate.IssuedAt = &issuedAt
	if err := db.Save(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate issued successfully!", certificate)
}
