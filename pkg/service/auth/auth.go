package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/user"
	"github.com/amirasaad/subtracker/pkg/dto"
	usersvc "github.com/amirasaad/subtracker/pkg/service/user"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const userIDContextKey contextKey = "user_id"

// WithUserID stores the authenticated user id on ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDContextKey, id)
}

// UserIDFromContext returns the id stored by WithUserID.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDContextKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// Strategy turns a request credential into an identity.
type Strategy interface {
	// Identify returns the caller identity. token is nil when the strategy
	// does not require one.
	Identify(ctx context.Context, token *jwt.Token) (dto.Identity, error)
	// TokenRequired reports whether requests must carry a bearer token.
	TokenRequired() bool
}

// Service authenticates requests and keeps the user record in sync with the
// identity claims.
type Service struct {
	users    *usersvc.Service
	strategy Strategy
	logger   *slog.Logger
}

// New creates a Service.
func New(users *usersvc.Service, strategy Strategy, logger *slog.Logger) *Service {
	return &Service{users: users, strategy: strategy, logger: logger}
}

// NewWithDemo authenticates every request as the configured demo user.
func NewWithDemo(users *usersvc.Service, cfg *config.Demo, logger *slog.Logger) *Service {
	return New(users, NewDemoStrategy(cfg), logger)
}

// NewWithJWT authenticates requests with HS256 bearer tokens.
func NewWithJWT(users *usersvc.Service, cfg *config.Jwt, logger *slog.Logger) *Service {
	return New(users, NewJWTStrategy(cfg, logger), logger)
}

// TokenRequired reports whether requests must carry a bearer token.
func (s *Service) TokenRequired() bool { return s.strategy.TokenRequired() }

// Authenticate resolves the caller. Token-based identities are written to the
// store on every request so profile claims stay fresh; the demo identity is
// only written when missing.
func (s *Service) Authenticate(ctx context.Context, token *jwt.Token) (*user.User, error) {
	log := s.logger.With("context", "Authenticate")
	identity, err := s.strategy.Identify(ctx, token)
	if err != nil {
		log.Warn("Identify failed", "error", err)
		return nil, err
	}
	if !s.strategy.TokenRequired() {
		id, err := usersvc.IDFromSubject(identity.UserID)
		if err != nil {
			return nil, err
		}
		u, err := s.users.GetCurrentUser(ctx, id)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}
	return s.users.EnsureUser(ctx, identity)
}

// DemoStrategy identifies every caller as one fixed user.
type DemoStrategy struct {
	identity dto.Identity
}

// NewDemoStrategy creates a DemoStrategy from the demo settings.
func NewDemoStrategy(cfg *config.Demo) *DemoStrategy {
	return &DemoStrategy{identity: dto.Identity{
		UserID:    cfg.UserID,
		Email:     cfg.Email,
		FirstName: cfg.FirstName,
		LastName:  cfg.LastName,
	}}
}

func (s *DemoStrategy) Identify(context.Context, *jwt.Token) (dto.Identity, error) {
	return s.identity, nil
}

func (s *DemoStrategy) TokenRequired() bool { return false }

// JWTStrategy reads the identity from HS256 token claims.
type JWTStrategy struct {
	cfg    *config.Jwt
	logger *slog.Logger
}

// NewJWTStrategy creates a JWTStrategy.
func NewJWTStrategy(cfg *config.Jwt, logger *slog.Logger) *JWTStrategy {
	return &JWTStrategy{cfg: cfg, logger: logger}
}

func (s *JWTStrategy) TokenRequired() bool { return true }

// Identify reads user_id, email, first_name, last_name and picture claims.
func (s *JWTStrategy) Identify(_ context.Context, token *jwt.Token) (dto.Identity, error) {
	if token == nil {
		return dto.Identity{}, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dto.Identity{}, fmt.Errorf("%w: unexpected claims type", domain.ErrUnauthorized)
	}
	str := func(key string) string {
		v, _ := claims[key].(string)
		return v
	}
	identity := dto.Identity{
		UserID:          str("user_id"),
		Email:           str("email"),
		FirstName:       str("first_name"),
		LastName:        str("last_name"),
		ProfileImageURL: str("picture"),
	}
	if identity.UserID == "" {
		return dto.Identity{}, fmt.Errorf("%w: user_id claim missing", domain.ErrUnauthorized)
	}
	return identity, nil
}

// GenerateToken signs a token carrying identity's claims.
func (s *JWTStrategy) GenerateToken(identity dto.Identity) (string, error) {
	log := s.logger.With("user_id", identity.UserID)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    identity.UserID,
		"email":      identity.Email,
		"first_name": identity.FirstName,
		"last_name":  identity.LastName,
		"picture":    identity.ProfileImageURL,
		"exp":        time.Now().Add(s.cfg.Expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Debug("GenerateToken successful")
	return signed, nil
}
