package payment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, env *testutils.Env, userID uuid.UUID) *payment.RecurringPayment {
	t.Helper()
	repo, err := env.App.Deps.Uow.PaymentRepository()
	require.NoError(t, err)
	p := payment.NewDetected(userID, uuid.New(), "Netflix", money.MustParse("15.99"), payment.FrequencyMonthly, "entertainment", 0.95)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestUpdateStatus(t *testing.T) {
	env := testutils.NewEnv(t, nil)
	p := seed(t, env, uuid.MustParse(testutils.DemoUserID))
	foreign := seed(t, env, uuid.New())
	path := "/api/recurring-payments/" + p.ID.String() + "/status"

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"invalid status", path, `{"status":"deleted"}`, fiber.StatusBadRequest},
		{"missing status", path, `{}`, fiber.StatusBadRequest},
		{"bad id", "/api/recurring-payments/abc/status", `{"status":"paused"}`, fiber.StatusBadRequest},
		{"unknown id", "/api/recurring-payments/" + uuid.NewString() + "/status", `{"status":"paused"}`, fiber.StatusNotFound},
		{"other user's payment", "/api/recurring-payments/" + foreign.ID.String() + "/status", `{"status":"paused"}`, fiber.StatusNotFound},
		{"cancel", path, `{"status":"cancelled"}`, fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.MakeRequest(t, http.MethodPatch, tt.path, tt.body, "")
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	resp := env.MakeRequest(t, http.MethodGet, "/api/recurring-payments", "", "")
	defer resp.Body.Close() //nolint:errcheck
	var payments []payment.RecurringPayment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payments))
	require.Len(t, payments, 1)
	assert.Equal(t, payment.StatusCancelled, payments[0].Status)
	assert.Equal(t, "15.99", payments[0].Amount.String())

	resp = env.MakeRequest(t, http.MethodGet, "/api/dashboard/stats", "", "")
	defer resp.Body.Close() //nolint:errcheck
	var stats map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, "15.99", stats["potentialSavings"])
	assert.Equal(t, "0.00", stats["monthlyCost"])
}
