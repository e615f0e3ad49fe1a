package payment

import (
	"github.com/amirasaad/subtracker/pkg/middleware"
	paymentsvc "github.com/amirasaad/subtracker/pkg/service/payment"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StatusUpdate is the body of a status change.
type StatusUpdate struct {
	Status string `json:"status" validate:"required"`
}

// Routes registers the recurring payment endpoints on an authenticated router.
func Routes(r fiber.Router, paymentSvc *paymentsvc.Service) {
	r.Get("/recurring-payments", ListPayments(paymentSvc))
	r.Patch("/recurring-payments/:id/status", UpdateStatus(paymentSvc))
}

// ListPayments returns the caller's recurring payments, most recently detected first.
// @Summary List recurring payments
// @Tags payments
// @Produce json
// @Success 200 {array} payment.RecurringPayment
// @Failure 401 {object} common.ProblemDetails
// @Router /recurring-payments [get]
// @Security Bearer
func ListPayments(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		payments, err := paymentSvc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list payments", err)
		}
		return c.JSON(payments)
	}
}

// UpdateStatus cancels, pauses or reactivates a payment.
// @Summary Update payment status
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body StatusUpdate true "active, cancelled or paused"
// @Success 200 {object} payment.RecurringPayment
// @Failure 400 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /recurring-payments/{id}/status [patch]
// @Security Bearer
func UpdateStatus(paymentSvc *paymentsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid payment ID", err, "Payment ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[StatusUpdate](c)
		if input == nil {
			return err // error response already written
		}
		p, err := paymentSvc.UpdateStatus(c.UserContext(), userID, id, input.Status)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update payment status", err)
		}
		return c.JSON(p)
	}
}
