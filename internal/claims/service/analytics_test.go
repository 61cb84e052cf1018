package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSummarize_EmployeeScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	e1 := f.register(t, "e1@example.com", domain.RoleEmployee)
	e2 := f.register(t, "e2@example.com", domain.RoleEmployee)

	f.submit(t, e1, "100.00", domain.CategoryFood, "2025-01-01")
	travel := f.submit(t, e1, "200.00", domain.CategoryTravel, "2025-01-02")
	f.submit(t, e2, "999.99", domain.CategoryFood, "2025-01-03")
	_, err := f.expenses.Approve(ctx, admin, travel.ID)
	require.NoError(t, err)

	a, err := f.analytics.Summarize(ctx, e1)
	require.NoError(t, err)
	require.Equal(t, 2, a.TotalExpenses)
	require.True(t, decimal.RequireFromString("300").Equal(a.TotalAmount))
	require.Len(t, a.CategoryTotals, 2)
	require.True(t, decimal.RequireFromString("100").Equal(a.CategoryTotals[domain.CategoryFood]))
	require.True(t, decimal.RequireFromString("200").Equal(a.CategoryTotals[domain.CategoryTravel]))
	require.Equal(t, domain.StatusCounts{Pending: 1, Approved: 1, Rejected: 0}, a.StatusCounts)

	all, err := f.analytics.Summarize(ctx, admin)
	require.NoError(t, err)
	require.Equal(t, 3, all.TotalExpenses)
	require.Equal(t, "1299.99", all.TotalAmount.StringFixed(2))
}

func TestReduce(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		a := Reduce(nil)
		require.Zero(t, a.TotalExpenses)
		require.True(t, a.TotalAmount.IsZero())
		require.Empty(t, a.CategoryTotals)
		require.Empty(t, a.StatusTotals)
		require.Equal(t, domain.StatusCounts{}, a.StatusCounts)
	})

	t.Run("decimal exact", func(t *testing.T) {
		var expenses []domain.Expense
		for range 10 {
			expenses = append(expenses, domain.Expense{
				Amount:   decimal.RequireFromString("0.10"),
				Category: domain.CategoryOther,
				Status:   domain.StatusRejected,
			})
		}

		a := Reduce(expenses)
		require.Equal(t, "1.00", a.TotalAmount.StringFixed(2))
		require.True(t, decimal.NewFromInt(1).Equal(a.StatusTotals[domain.StatusRejected]))
		require.Equal(t, 10, a.StatusCounts.Rejected)
		_, ok := a.StatusTotals[domain.StatusPending]
		require.False(t, ok, "keys are created lazily")
	})
}
