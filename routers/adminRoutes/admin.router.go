package adminRoutes

import (
	adminController "lms/controllers/admin"
	courseController "lms/controllers/course"
	"lms/middleware"
	adminValidator "lms/validators/admin"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	adminGroup.Get("/dashboard", adminController.GetDashboard)

	// Enrollment lifecycle
	adminGroup.Get("/application/list", adminController.GetEnrollmentApplications)
	adminGroup.Post("/application/decide/:id", adminValidator.IDParam(), adminValidator.DecideApplication(), adminController.DecideApplication)
	adminGroup.Post("/application/reopen/:id", adminValidator.IDParam(), adminController.ReopenApplication)
	adminGroup.Get("/enrollment/list", adminController.GetEnrollments)
	adminGroup.Get("/payment/proof/list", adminController.GetPaymentProofs)
	adminGroup.Post("/payment/verify/:id", adminValidator.IDParam(), adminValidator.VerifyPayment(), adminController.VerifyPayment)
	adminGroup.Post("/enrollment/extend/:id", adminValidator.IDParam(), adminValidator.Extend(), adminController.ExtendEnrollment)

	// Course management
	adminGroup.Post("/course/create", courseValidator.CreateCourse(), courseController.CreateCourse)
	adminGroup.Patch("/course/update/:courseId", courseValidator.CourseIDParam(), courseValidator.UpdateCourse(), courseController.UpdateCourse)
	adminGroup.Delete("/course/delete/:courseId", courseValidator.CourseIDParam(), courseController.DeleteCourse)
	adminGroup.Post("/course/:courseId/video/create", courseValidator.CourseIDParam(), courseValidator.CreateVideo(), courseController.CreateVideo)
	adminGroup.Delete("/video/delete/:id", courseValidator.IDParam(), courseController.DeleteVideo)
	adminGroup.Post("/course/:courseId/assignment/create", courseValidator.CourseIDParam(), courseValidator.CreateAssignment(), courseController.CreateAssignment)

	// Payments and certificates
	adminGroup.Post("/bank/account/create", courseValidator.CreateBankAccount(), courseController.CreateBankAccount)
	adminGroup.Post("/certificate/issue/:id", courseValidator.IDParam(), courseController.IssueCertificate)
}
