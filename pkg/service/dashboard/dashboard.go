// Package dashboard computes spending summaries from stored payments.
package dashboard

import (
	"context"
	"log/slog"
	"sort"

	"github.com/amirasaad/subtracker/pkg/domain/payment"
	"github.com/amirasaad/subtracker/pkg/dto"
	"github.com/amirasaad/subtracker/pkg/money"
	"github.com/amirasaad/subtracker/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Service serves the dashboard read models.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// ComputeStats summarizes payments. Yearly cost is monthly cost times twelve;
// payments with other frequencies are not annualized.
func ComputeStats(payments []*payment.RecurringPayment) dto.Stats {
	var (
		active  int
		monthly = money.Zero
		savings = money.Zero
	)
	for _, p := range payments {
		switch p.Status {
		case payment.StatusActive:
			active++
			if p.Frequency == payment.FrequencyMonthly {
				monthly = monthly.Add(p.Amount)
			}
		case payment.StatusCancelled:
			savings = savings.Add(p.Amount)
		}
	}
	return dto.Stats{
		TotalSubscriptions: active,
		MonthlyCost:        monthly.String(),
		YearlyCost:         monthly.Mul(12).String(),
		PotentialSavings:   savings.String(),
	}
}

// ComputeCategories groups active payments by category, largest spend first.
// It returns an empty slice when there is no active spend.
func ComputeCategories(payments []*payment.RecurringPayment) []dto.CategorySpend {
	totals := map[string]money.Amount{}
	total := money.Zero
	for _, p := range payments {
		if !p.IsActive() {
			continue
		}
		cat := p.Category
		if cat == "" {
			cat = payment.DefaultCategory
		}
		totals[cat] = totals[cat].Add(p.Amount)
		total = total.Add(p.Amount)
	}
	out := make([]dto.CategorySpend, 0, len(totals))
	if total.IsZero() {
		return out
	}

	cats := make([]string, 0, len(totals))
	for c := range totals {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool {
		a, b := totals[cats[i]], totals[cats[j]]
		if !a.Equal(b) {
			return a.GreaterThan(b.Decimal)
		}
		return cats[i] < cats[j]
	})
	for _, c := range cats {
		amt := totals[c]
		out = append(out, dto.CategorySpend{
			Category:   c,
			Amount:     amt.String(),
			Percentage: amt.Div(total.Decimal).Mul(hundred).StringFixed(1),
		})
	}
	return out
}

// Stats returns the dashboard summary for the user.
func (s *Service) Stats(ctx context.Context, userID uuid.UUID) (dto.Stats, error) {
	payments, err := s.load(ctx, userID)
	if err != nil {
		return dto.Stats{}, err
	}
	return ComputeStats(payments), nil
}

// Categories returns the per-category breakdown for the user.
func (s *Service) Categories(ctx context.Context, userID uuid.UUID) ([]dto.CategorySpend, error) {
	payments, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeCategories(payments), nil
}

func (s *Service) load(ctx context.Context, userID uuid.UUID) (payments []*payment.RecurringPayment, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.PaymentRepository()
		if err != nil {
			return err
		}
		payments, err = repo.ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("Loading payments failed", "user_id", userID, "error", err)
		return nil, err
	}
	return payments, nil
}
