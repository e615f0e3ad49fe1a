package dashboard

import (
	"github.com/amirasaad/subtracker/pkg/middleware"
	dashboardsvc "github.com/amirasaad/subtracker/pkg/service/dashboard"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the dashboard endpoints on an authenticated router.
func Routes(r fiber.Router, dashboardSvc *dashboardsvc.Service) {
	r.Get("/dashboard/stats", Stats(dashboardSvc))
	r.Get("/dashboard/categories", Categories(dashboardSvc))
}

// Stats returns subscription totals.
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.Stats
// @Router /dashboard/stats [get]
// @Security Bearer
func Stats(dashboardSvc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		stats, err := dashboardSvc.Stats(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute stats", err)
		}
		return c.JSON(stats)
	}
}

// Categories returns active spend per category.
// @Summary Spend by category
// @Tags dashboard
// @Produce json
// @Success 200 {array} dto.CategorySpend
// @Router /dashboard/categories [get]
// @Security Bearer
func Categories(dashboardSvc *dashboardsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		cats, err := dashboardSvc.Categories(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to compute categories", err)
		}
		return c.JSON(cats)
	}
}
