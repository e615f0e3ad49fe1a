package payment_test

import (
	"testing"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"active", "cancelled", "paused"} {
		got, err := payment.ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, payment.Status(s), got)
	}
	for _, s := range []string{"", "deleted", "ACTIVE"} {
		_, err := payment.ParseStatus(s)
		require.ErrorIs(t, err, domain.ErrValidation, s)
	}
}

func TestParseFrequency(t *testing.T) {
	got, err := payment.ParseFrequency("bi-weekly")
	require.NoError(t, err)
	assert.Equal(t, payment.FrequencyBiWeekly, got)

	_, err = payment.ParseFrequency("daily")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewDetected(t *testing.T) {
	userID, uploadID := uuid.New(), uuid.New()
	p := payment.NewDetected(userID, uploadID, "Netflix", money.MustParse("15.99"), payment.FrequencyMonthly, "", 0.95)

	assert.Equal(t, payment.StatusActive, p.Status)
	assert.Equal(t, payment.DefaultCategory, p.Category)
	require.NotNil(t, p.UploadID)
	assert.Equal(t, uploadID, *p.UploadID)
	assert.True(t, p.IsMonthlyActive())

	p.Status = payment.StatusPaused
	assert.False(t, p.IsActive())
	assert.False(t, p.IsMonthlyActive())
}
