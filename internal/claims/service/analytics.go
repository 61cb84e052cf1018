package service

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/policy"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/shopspring/decimal"
)

type AnalyticsService struct {
	Store store.Store
}

// Summarize aggregates every expense the caller may list.
func (s *AnalyticsService) Summarize(ctx context.Context, caller domain.Caller) (domain.Analytics, error) {
	owner, err := policy.Scope(caller, policy.ActionViewAnalytics)
	if err != nil {
		return domain.Analytics{}, err
	}

	views, err := s.Store.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{OwnerID: owner})
	if err != nil {
		return domain.Analytics{}, fmt.Errorf("query expenses: %w", err)
	}

	expenses := make([]domain.Expense, 0, len(views))
	for _, v := range views {
		expenses = append(expenses, v.Expense)
	}
	return Reduce(expenses), nil
}

// Reduce folds expenses into totals using exact decimal sums.
func Reduce(expenses []domain.Expense) domain.Analytics {
	a := domain.Analytics{
		TotalAmount:    decimal.Zero,
		CategoryTotals: make(map[domain.Category]decimal.Decimal),
		StatusTotals:   make(map[domain.Status]decimal.Decimal),
	}

	for _, e := range expenses {
		a.TotalExpenses++
		a.TotalAmount = a.TotalAmount.Add(e.Amount)
		a.CategoryTotals[e.Category] = a.CategoryTotals[e.Category].Add(e.Amount)
		a.StatusTotals[e.Status] = a.StatusTotals[e.Status].Add(e.Amount)

		switch e.Status {
		case domain.StatusPending:
			a.StatusCounts.Pending++
		case domain.StatusApproved:
			a.StatusCounts.Approved++
		case domain.StatusRejected:
			a.StatusCounts.Rejected++
		}
	}
	return a
}
