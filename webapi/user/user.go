package user

import (
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/middleware"
	usersvc "github.com/amirasaad/subtracker/pkg/service/user"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the current-user endpoints on an authenticated router.
func Routes(r fiber.Router, userSvc *usersvc.Service) {
	r.Get("/auth/user", GetCurrentUser(userSvc))
	r.Patch("/auth/user", UpdateCurrentUser(userSvc))
}

// GetCurrentUser returns the authenticated user.
// @Summary Get current user
// @Tags users
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} common.ProblemDetails
// @Failure 404 {object} common.ProblemDetails
// @Router /auth/user [get]
// @Security Bearer
func GetCurrentUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := userSvc.GetCurrentUser(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch user", err)
		}
		return c.JSON(ToUserResponse(u))
	}
}

// UpdateCurrentUser changes the profile of the authenticated user.
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.ProfileUpdate true "Profile fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 401 {object} common.ProblemDetails
// @Router /auth/user [patch]
// @Security Bearer
func UpdateCurrentUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[dto.ProfileUpdate](c)
		if input == nil {
			return err // error response already written
		}
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := userSvc.UpdateProfile(c.UserContext(), userID, *input)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to update user", err)
		}
		return c.JSON(ToUserResponse(u))
	}
}
