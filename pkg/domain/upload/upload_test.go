package upload_test

import (
	"testing"

	"github.com/amirasaad/subtracker/pkg/domain"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	all := []upload.Status{
		upload.StatusPending, upload.StatusProcessing,
		upload.StatusCompleted, upload.StatusFailed,
	}
	allowed := map[[2]upload.Status]bool{
		{upload.StatusPending, upload.StatusProcessing}:   true,
		{upload.StatusProcessing, upload.StatusCompleted}: true,
		{upload.StatusProcessing, upload.StatusFailed}:    true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]upload.Status{from, to}], upload.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransition(t *testing.T) {
	u := upload.New(uuid.New(), "statement.pdf", "application/pdf", "/tmp/x.pdf", 10)
	assert.Equal(t, upload.StatusPending, u.AnalysisStatus)

	err := u.Transition(upload.StatusCompleted, nil)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, upload.StatusPending, u.AnalysisStatus)

	require.NoError(t, u.Transition(upload.StatusProcessing, &upload.AnalysisResults{}))
	assert.Nil(t, u.AnalysisResults)

	results := &upload.AnalysisResults{TotalRecurringPayments: 7, MonthlyTotal: money.MustParse("99.10")}
	require.NoError(t, u.Transition(upload.StatusCompleted, results))
	assert.Equal(t, results, u.AnalysisResults)
	assert.True(t, u.AnalysisStatus.IsTerminal())

	require.ErrorIs(t, u.Transition(upload.StatusFailed, nil), domain.ErrInvalidTransition)
}

func TestIsAllowedFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.pdf":       true,
		"A.PDF":       true,
		"scan.JpEg":   true,
		"photo.png":   true,
		"b.jpg":       true,
		"notes.txt":   false,
		"archive.zip": false,
		"noext":       false,
	} {
		assert.Equal(t, want, upload.IsAllowedFile(name), name)
	}
}
