package webapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/amirasaad/subtracker/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type WebAPITestSuite struct {
	suite.Suite
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

func (s *WebAPITestSuite) TestHealth() {
	env := testutils.NewEnv(s.T(), nil)
	resp := env.MakeRequest(s.T(), http.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	s.Contains(string(body), "running")
}

func (s *WebAPITestSuite) TestUnknownRouteIsProblem() {
	env := testutils.NewEnv(s.T(), nil)
	resp := env.MakeRequest(s.T(), http.MethodGet, "/api/doesnotexist", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
	s.Equal("application/problem+json", resp.Header.Get(fiber.HeaderContentType))
}

func (s *WebAPITestSuite) TestRateLimit() {
	cfg := testutils.Config("demo")
	cfg.RateLimit.MaxRequests = 5
	cfg.RateLimit.Window = time.Minute
	env := testutils.NewEnv(s.T(), cfg)

	for i := range 6 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		resp := env.Do(s.T(), req, "")
		resp.Body.Close() //nolint:errcheck
		if i < 5 {
			s.Equal(fiber.StatusOK, resp.StatusCode, "request %d", i+1)
		} else {
			s.Equal(fiber.StatusTooManyRequests, resp.StatusCode, "request %d", i+1)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1")
	resp := env.Do(s.T(), req, "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode, "other clients are not limited")
}

func (s *WebAPITestSuite) TestDemoModeNeedsNoToken() {
	env := testutils.NewEnv(s.T(), nil)
	resp := env.MakeRequest(s.T(), http.MethodGet, "/api/auth/user", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var u map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&u))
	s.Equal(testutils.DemoUserID, u["id"])
	s.Equal("demo@example.com", u["email"])
}

func (s *WebAPITestSuite) TestJWTMode() {
	env := testutils.NewEnv(s.T(), testutils.Config("jwt"))

	resp := env.MakeRequest(s.T(), http.MethodGet, "/api/auth/user", "", "")
	resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	resp = env.MakeRequest(s.T(), http.MethodGet, "/api/auth/user", "", "not-a-token")
	resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)

	id := uuid.New()
	token := env.Token(s.T(), dto.Identity{UserID: id.String(), Email: "jwt@example.com", FirstName: "Jay"})
	resp = env.MakeRequest(s.T(), http.MethodGet, "/api/auth/user", "", token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	var u map[string]any
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&u))
	s.Equal(id.String(), u["id"])
	s.Equal("Jay", u["firstName"])

	resp = env.MakeRequest(s.T(), http.MethodGet, "/", "", "")
	resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode, "health stays public")
}

func (s *WebAPITestSuite) TestLimitReachedIsProblem() {
	cfg := testutils.Config("demo")
	cfg.RateLimit.MaxRequests = 1
	env := testutils.NewEnv(s.T(), cfg)
	resp := env.MakeRequest(s.T(), http.MethodGet, "/", "", "")
	resp.Body.Close() //nolint:errcheck

	resp = env.MakeRequest(s.T(), http.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	s.Equal(fiber.StatusTooManyRequests, pd.Status)
	s.Equal("Too Many Requests", pd.Title)
}
