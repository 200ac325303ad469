package enrollmentRoutes

import (
	enrollmentController "lms/controllers/enrollment"
	"lms/middleware"
	enrollmentValidator "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/enrollment", middleware.JWTMiddleware)

	enrollmentGroup.Post("/apply/:id", enrollmentValidator.CourseIDParam(), enrollmentValidator.Apply(), enrollmentController.ApplyForCourse)
	enrollmentGroup.Get("/application/status/:id", enrollmentValidator.CourseIDParam(), enrollmentController.GetApplicationStatus)
	enrollmentGroup.Get("/purchase/info/:id", enrollmentValidator.CourseIDParam(), enrollmentController.GetPurchaseInfo)
	enrollmentGroup.Post("/payment/proof/:id", enrollmentValidator.CourseIDParam(), enrollmentValidator.SubmitProof(), enrollmentController.SubmitPaymentProof)
	enrollmentGroup.Get("/my/list", enrollmentController.GetMyEnrollments)
	enrollmentGroup.Get("/notification/list", enrollmentController.GetMyNotifications)
}
