// Package webapi provides the HTTP surface of the subscription tracker.
// Route groups live in sub-packages:
// - user: current user endpoints
// - upload: statement intake
// - payment: recurring payments
// - reminder: reminder settings, sends and history
// - dashboard: statistics and category breakdown
package webapi

import (
	"errors"
	"net/http"
	"strings"

	_ "github.com/amirasaad/subtracker/docs" // swagger spec
	"github.com/amirasaad/subtracker/pkg/app"
	"github.com/amirasaad/subtracker/pkg/middleware"
	"github.com/amirasaad/subtracker/webapi/common"
	dashboardweb "github.com/amirasaad/subtracker/webapi/dashboard"
	paymentweb "github.com/amirasaad/subtracker/webapi/payment"
	reminderweb "github.com/amirasaad/subtracker/webapi/reminder"
	uploadweb "github.com/amirasaad/subtracker/webapi/upload"
	userweb "github.com/amirasaad/subtracker/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		BodyLimit: cfg.Upload.MaxBodySize(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := common.ErrorToStatusCode(err)
			return common.ProblemDetailsJSON(c, http.StatusText(status), err, status)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	fiberApp.Use(limiter.New(limiter.Config{
		Max:          cfg.RateLimit.MaxRequests,
		Expiration:   cfg.RateLimit.Window,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Cors.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Subscription tracker API is running! 🚀")
	})

	api := fiberApp.Group(cfg.Server.APIPrefix)
	if a.AuthService.TokenRequired() {
		api.Use(middleware.JwtProtected(cfg.Auth.Jwt))
	}
	api.Use(middleware.Authenticate(a.AuthService))

	userweb.Routes(api, a.UserService)
	uploadweb.Routes(api, a.UploadService)
	paymentweb.Routes(api, a.PaymentService)
	reminderweb.Routes(api, a.ReminderService)
	dashboardweb.Routes(api, a.DashboardService)
	return fiberApp
}

// clientKey uses the first X-Forwarded-For hop when behind a proxy, then
// X-Real-IP, then the peer address.
func clientKey(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		first, _, _ := strings.Cut(forwardedFor, ",")
		return strings.TrimSpace(first)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
