// Package analysis runs the upload analysis pipeline.
package analysis

import (
	"context"
	"io"
	"math/rand"
	"sync"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/domain/upload"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/shopspring/decimal"
)

// Analyzer extracts recurring payments from an uploaded statement.
type Analyzer interface {
	Analyze(ctx context.Context, u *upload.Upload, content io.Reader) (*upload.AnalysisResults, error)
}

// mockDetected is what MockAnalyzer reports for every statement.
var mockDetected = []upload.DetectedPayment{
	{MerchantName: "Netflix", Amount: money.MustParse("15.99"), Frequency: payment.FrequencyMonthly, Category: "entertainment", Confidence: 0.95},
	{MerchantName: "Spotify Premium", Amount: money.MustParse("9.99"), Frequency: payment.FrequencyMonthly, Category: "entertainment", Confidence: 0.92},
	{MerchantName: "Adobe Creative Cloud", Amount: money.MustParse("52.99"), Frequency: payment.FrequencyMonthly, Category: "software", Confidence: 0.88},
}

// MockAnalyzer fabricates results without reading the content. The totals are
// random: TotalRecurringPayments in [5,20) and MonthlyTotal in [50,250).
type MockAnalyzer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewMockAnalyzer creates a MockAnalyzer drawing from src.
func NewMockAnalyzer(src rand.Source) *MockAnalyzer {
	return &MockAnalyzer{rnd: rand.New(src)}
}

// Analyze implements Analyzer.
func (a *MockAnalyzer) Analyze(ctx context.Context, _ *upload.Upload, _ io.Reader) (*upload.AnalysisResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.mu.Lock()
	total := 5 + a.rnd.Intn(15)
	monthly := decimal.NewFromFloat(50 + a.rnd.Float64()*200).Truncate(money.Places)
	a.mu.Unlock()

	detected := make([]upload.DetectedPayment, len(mockDetected))
	copy(detected, mockDetected)
	return &upload.AnalysisResults{
		TotalRecurringPayments: total,
		MonthlyTotal:           money.New(monthly),
		DetectedPayments:       detected,
	}, nil
}
