package adminValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/models"
)

type DecisionRequest struct {
	Status string `json:"status"` // APPROVED or REJECTED
}

type VerifyPaymentRequest struct {
	Status         string `json:"status"` // APPROVED or REJECTED
	DurationMonths int    `json:"duration_months"`
}

type ExtendRequest struct {
	DurationMonths int `json:"duration_months"`
}

// IDParam validates the :id route parameter and stores it in Locals.
func IDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("id"))
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}
		c.Locals("recordID", uint(id))
		return c.Next()
	}
}

// DecideApplication validates the approve/reject decision payload.
func DecideApplication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(DecisionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status != models.StatusApproved && reqData.Status != models.StatusRejected {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Status must be APPROVED or REJECTED!",
			})
		}

		c.Locals("validatedDecision", reqData)
		return c.Next()
	}
}

// VerifyPayment validates the verification payload. A duration is required
// only when approving.
func VerifyPayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(VerifyPaymentRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Status = strings.ToUpper(strings.TrimSpace(reqData.Status))
		if reqData.Status != models.StatusApproved && reqData.Status != models.StatusRejected {
			errors["status"] = "Status must be APPROVED or REJECTED!"
		}
		if reqData.Status == models.StatusApproved && reqData.DurationMonths < 1 {
			errors["duration_months"] = "Duration must be at least 1 month!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerification", reqData)
		return c.Next()
	}
}

// Extend validates the extension payload.
func Extend() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ExtendRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.DurationMonths < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"duration_months": "Duration must be at least 1 month!",
			})
		}

		c.Locals("validatedExtension", reqData)
		return c.Next()
	}
}
