package enrollmentValidator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
)

var validate = validator.New()

// ApplicationRequest are the multipart form fields of an enrollment
// application. The qualification certificate arrives as a separate file
// part handled by the controller.
type ApplicationRequest struct {
	FirstName     string `form:"first_name" validate:"required,max=100"`
	LastName      string `form:"last_name" validate:"required,max=100"`
	Qualification string `form:"qualification" validate:"required,max=255"`
	Experience    string `form:"experience" validate:"max=1000"`
	ContactNumber string `form:"contact_number" validate:"required,max=30"`
}

// CourseIDParam validates the :id route parameter and stores it in Locals.
func CourseIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseIDStr := strings.TrimSpace(c.Params("id"))
		if courseIDStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required!", nil)
		}

		courseID, err := strconv.Atoi(courseIDStr)
		if err != nil || courseID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		}

		c.Locals("courseID", uint(courseID))
		return c.Next()
	}
}

// Apply validates the application form fields.
func Apply() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ApplicationRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value for " + fieldErr.Field()
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedApplication", reqData)
		return c.Next()
	}
}

// SubmitProof requires the payment proof file part to be present.
func SubmitProof() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := c.FormFile("file"); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof file is required!", nil)
		}
		return c.Next()
	}
}
