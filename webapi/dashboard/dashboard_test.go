package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	env := testutils.NewEnv(t, nil)

	resp := env.MakeRequest(t, http.MethodGet, "/api/dashboard/categories", "", "")
	var empty []dto.CategorySpend
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&empty))
	resp.Body.Close() //nolint:errcheck
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	repo, err := env.App.Deps.Uow.PaymentRepository()
	require.NoError(t, err)
	userID := uuid.MustParse(testutils.DemoUserID)
	for _, p := range []*payment.RecurringPayment{
		payment.NewDetected(userID, uuid.New(), "Netflix", money.MustParse("30.00"), payment.FrequencyMonthly, "entertainment", 0.9),
		payment.NewDetected(userID, uuid.New(), "Adobe", money.MustParse("10.00"), payment.FrequencyMonthly, "software", 0.9),
	} {
		require.NoError(t, repo.Create(context.Background(), p))
	}

	resp = env.MakeRequest(t, http.MethodGet, "/api/dashboard/stats", "", "")
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stats dto.Stats
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	assert.Equal(t, dto.Stats{TotalSubscriptions: 2, MonthlyCost: "40.00", YearlyCost: "480.00", PotentialSavings: "0.00"}, stats)

	resp = env.MakeRequest(t, http.MethodGet, "/api/dashboard/categories", "", "")
	defer resp.Body.Close() //nolint:errcheck
	var cats []dto.CategorySpend
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cats))
	assert.Equal(t, []dto.CategorySpend{
		{Category: "entertainment", Amount: "30.00", Percentage: "75.0"},
		{Category: "software", Amount: "10.00", Percentage: "25.0"},
	}, cats)
}
