package reminder

import (
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/middleware"
	remindersvc "github.com/amirasaad/subtracker/pkg/service/reminder"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the reminder endpoints on an authenticated router.
func Routes(r fiber.Router, reminderSvc *remindersvc.Service) {
	r.Get("/reminders", GetReminder(reminderSvc))
	r.Post("/reminders", SaveReminder(reminderSvc))
	r.Post("/reminders/send", SendReminder(reminderSvc))
	r.Get("/reminder-history", ListHistory(reminderSvc))
}

// GetReminder returns the caller's settings or the defaults.
// @Summary Get reminder settings
// @Tags reminders
// @Produce json
// @Success 200 {object} reminder.Reminder
// @Router /reminders [get]
// @Security Bearer
func GetReminder(reminderSvc *remindersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		r, err := reminderSvc.Get(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch reminder", err)
		}
		return c.JSON(r)
	}
}

// SaveReminder creates or replaces the caller's settings.
// @Summary Save reminder settings
// @Tags reminders
// @Accept json
// @Produce json
// @Param request body dto.ReminderSettings true "Reminder settings"
// @Success 200 {object} reminder.Reminder
// @Failure 400 {object} common.ProblemDetails
// @Router /reminders [post]
// @Security Bearer
func SaveReminder(reminderSvc *remindersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.ReminderSettings](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		r, err := reminderSvc.Upsert(c.UserContext(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to save reminder", err)
		}
		return c.JSON(r)
	}
}

// SendReminder emails the caller a subscription summary now.
// @Summary Send reminder now
// @Tags reminders
// @Produce json
// @Success 201 {object} reminder.History
// @Failure 400 {object} common.ProblemDetails
// @Router /reminders/send [post]
// @Security Bearer
func SendReminder(reminderSvc *remindersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		h, err := reminderSvc.Send(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to send reminder", err)
		}
		return c.Status(fiber.StatusCreated).JSON(h)
	}
}

// ListHistory returns the caller's reminder sends, newest first.
// @Summary List reminder history
// @Tags reminders
// @Produce json
// @Success 200 {array} reminder.History
// @Router /reminder-history [get]
// @Security Bearer
func ListHistory(reminderSvc *remindersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		h, err := reminderSvc.History(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list reminder history", err)
		}
		return c.JSON(h)
	}
}
