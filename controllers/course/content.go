package courseController

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
)

// GetCourseVideos lists a course's videos for an enrolled student.
func GetCourseVideos(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	enr, ok, resp := accessOrDeny(c, userID, courseID)
	if !ok {
		return resp
	}

	var videos []models.Video
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("position asc").
		Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully!", fiber.Map{
		"videos":         videos,
		"days_remaining": enr.DaysRemaining,
	})
}

// GetVideoURL issues the playback URL for one video after a fresh access
// check.
func GetVideoURL(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	videoID := c.Locals("recordID").(uint)

	var video models.Video
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", videoID, false).
		First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if _, ok, resp := accessOrDeny(c, userID, video.CourseID); !ok {
		return resp
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video URL issued successfully!", fiber.Map{
		"video_url": video.VideoURL,
		"title":     video.Title,
	})
}

// GetAssignments lists a course's assignments for an enrolled student.
func GetAssignments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	if _, ok, resp := accessOrDeny(c, userID, courseID); !ok {
		return resp
	}

	var assignments []models.Assignment
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("due_date asc").
		Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}

// SubmitAssignment uploads a student's submission for an assignment.
func SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	assignmentID := c.Locals("recordID").(uint)

	db := database.Database.Db

	var assignment models.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	if _, ok, resp := accessOrDeny(c, userID, assignment.CourseID); !ok {
		return resp
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission file is required!", nil)
	}

	fileURL, err := utils.UploadFile(file, "assignment_submissions")
	if err != nil {
		log.Printf("Error uploading submission: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload submission!", nil)
	}

	submission := models.AssignmentSubmission{
		AssignmentID: assignmentID,
		UserID:       userID,
		FileURL:      fileURL,
		SubmittedAt:  time.Now(),
	}
	if err := db.Create(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already submitted this assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// RequestCertificate creates a pending certificate request for an
// accessible enrollment.
func RequestCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	enr, ok, resp := accessOrDeny(c, userID, courseID)
	if !ok {
		return resp
	}

	db := database.Database.Db

	var existing models.Certificate
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err == nil {
		if existing.Status == models.StatusApproved {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate already issued!", fiber.Map{
				"certificate": existing,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Certificate request already pending!", nil)
	}

	certificate := models.Certificate{
		UserID:       userID,
		CourseID:     courseID,
		EnrollmentID: enr.ID,
		SerialNumber: fmt.Sprintf("CERT-%d-%s", courseID, uuid.NewString()[:8]),
		Status:       models.StatusPending,
	}
	if err := db.Create(&certificate).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit certificate request!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate request submitted successfully!", certificate)
}

// GetMyCertificates lists the caller's certificates.
func GetMyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}
