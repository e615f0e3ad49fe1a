package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/amirasaad/subtracker/pkg/config"
	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/service/auth"
	usersvc "github.com/amirasaad/subtracker/pkg/service/user"
	"github.com/amirasaad/subtracker/pkg/testutils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, signed, secret string) *jwt.Token {
	t.Helper()
	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) { return []byte(secret), nil })
	require.NoError(t, err)
	return token
}

func TestUserIDContext(t *testing.T) {
	_, ok := auth.UserIDFromContext(context.Background())
	assert.False(t, ok)

	id := uuid.New()
	got, ok := auth.UserIDFromContext(auth.WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestJWTStrategy_RoundTrip(t *testing.T) {
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	strategy := auth.NewJWTStrategy(cfg, testutils.DiscardLogger())
	in := dto.Identity{UserID: "user-1", Email: "a@example.com", FirstName: "Ada", LastName: "Lovelace", ProfileImageURL: "https://img.example.com/a.png"}

	signed, err := strategy.GenerateToken(in)
	require.NoError(t, err)

	out, err := strategy.Identify(context.Background(), parse(t, signed, cfg.Secret))
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.True(t, strategy.TokenRequired())
}

func TestJWTStrategy_Rejects(t *testing.T) {
	strategy := auth.NewJWTStrategy(&config.Jwt{Secret: "s", Expiry: time.Hour}, testutils.DiscardLogger())

	_, err := strategy.Identify(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@example.com"})
	_, err = strategy.Identify(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestService_AuthenticateJWTEnsuresUser(t *testing.T) {
	ctx := context.Background()
	users := usersvc.New(testutils.NewFileUoW(t), testutils.DiscardLogger())
	cfg := &config.Jwt{Secret: "test-secret", Expiry: time.Hour}
	svc := auth.NewWithJWT(users, cfg, testutils.DiscardLogger())
	strategy := auth.NewJWTStrategy(cfg, testutils.DiscardLogger())

	signed, err := strategy.GenerateToken(dto.Identity{UserID: uuid.NewString(), Email: "a@example.com", FirstName: "Ada"})
	require.NoError(t, err)
	u, err := svc.Authenticate(ctx, parse(t, signed, cfg.Secret))
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)

	stored, err := users.GetCurrentUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", stored.Email)
}

func TestService_AuthenticateDemo(t *testing.T) {
	ctx := context.Background()
	users := usersvc.New(testutils.NewFileUoW(t), testutils.DiscardLogger())
	demo := &config.Demo{UserID: uuid.NewString(), Email: "demo@example.com", FirstName: "Demo", LastName: "User"}
	svc := auth.NewWithDemo(users, demo, testutils.DiscardLogger())
	assert.False(t, svc.TokenRequired())

	first, err := svc.Authenticate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, demo.UserID, first.ID.String())

	second, err := svc.Authenticate(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
}
