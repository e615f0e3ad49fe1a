package middleware

import (
	"strings"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/service/auth"
	"github.com/amirasaad/subtracker/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenKey  = "user"
	userIDKey = "user_id"
)

// JwtProtected requires a valid HS256 bearer token and stores it in Locals.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   tokenKey,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return common.ProblemDetailsJSON(c, "Bad Request", nil, "Missing or malformed JWT", fiber.StatusBadRequest)
	}
	return common.ProblemDetailsJSON(c, "Unauthorized", nil, "Invalid or expired JWT", fiber.StatusUnauthorized)
}

// Authenticate resolves the caller through authSvc and puts the user id on
// the request context. In token mode it must run after JwtProtected.
func Authenticate(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(tokenKey).(*jwt.Token)
		if authSvc.TokenRequired() && token == nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", nil, "missing user context", fiber.StatusUnauthorized)
		}
		u, err := authSvc.Authenticate(c.UserContext(), token)
		if err != nil {
			status := common.ErrorToStatusCode(err)
			if status == fiber.StatusNotFound || status == fiber.StatusBadRequest {
				status = fiber.StatusUnauthorized
			}
			return common.ProblemDetailsJSON(c, "Unauthorized", err, status)
		}
		c.Locals(userIDKey, u.ID)
		c.SetUserContext(auth.WithUserID(c.UserContext(), u.ID))
		return c.Next()
	}
}

// CurrentUserID returns the id stored by Authenticate.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := auth.UserIDFromContext(c.UserContext()); ok {
		return id, nil
	}
	if id, ok := c.Locals(userIDKey).(uuid.UUID); ok {
		return id, nil
	}
	return uuid.Nil, domain.ErrUnauthorized
}
