package courseController

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services/enrollment"
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
	log.Printf("[COURSE] unexpected error: %v", err)
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
}

// accessOrDeny recomputes accessibility for the caller and course before
// any content is released. Missing enrollment and expired access both deny
// with 403; stale cached flags are never consulted.
func accessOrDeny(c *fiber.Ctx, userID, courseID uint) (models.Enrollment, bool, error) {
	enr, err := Svc.CheckAccess(userID, courseID)
	if err != nil {
		if errors.Is(err, enrollment.ErrNotFound) {
			return models.Enrollment{}, false, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
		return models.Enrollment{}, false, serviceError(c, err)
	}
	if !enr.IsAccessible {
		return models.Enrollment{}, false, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Your enrollment has expired. Please renew to continue accessing course content.", nil)
	}
	return enr, true, nil
}

// ListCourses returns the public course catalog.
func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.
		Where("is_deleted = ? AND status = ?", false, "ACTIVE").
		Order("created_at desc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourse returns one course's public details.
func GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}
