package courseRoutes

import (
	courseController "lms/controllers/course"
	"lms/middleware"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Public catalog
	courseGroup.Get("/list", courseController.ListCourses)
	courseGroup.Get("/:courseId", courseValidator.CourseIDParam(), courseController.GetCourse)

	// Content, gated by a fresh access check per request
	courseGroup.Get("/:courseId/videos", middleware.JWTMiddleware, courseValidator.CourseIDParam(), courseController.GetCourseVideos)
	courseGroup.Get("/video/:id/url", middleware.JWTMiddleware, courseValidator.IDParam(), courseController.GetVideoURL)
	courseGroup.Get("/:courseId/assignments", middleware.JWTMiddleware, courseValidator.CourseIDParam(), courseController.GetAssignments)
	courseGroup.Post("/assignment/:id/submit", middleware.JWTMiddleware, courseValidator.IDParam(), courseController.SubmitAssignment)
	courseGroup.Post("/:courseId/certificate/request", middleware.JWTMiddleware, courseValidator.CourseIDParam(), courseController.RequestCertificate)
	courseGroup.Get("/certificate/list", middleware.JWTMiddleware, courseController.GetMyCertificates)
}
