package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestExpenseLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)

	e := f.submit(t, emp, "45.00", domain.CategoryFood, "2025-10-20")
	require.Equal(t, domain.StatusPending, e.Status)
	require.Equal(t, emp.ID, e.OwnerID)
	require.Equal(t, "e@example.com", e.Owner.Email)
	require.Equal(t, "2025-10-20", e.ExpenseDate.Format(domain.DateLayout))

	_, err := f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "REJECTED", RejectionReason: ""})
	require.ErrorIs(t, err, ErrMissingReason)

	_, err = f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "REJECTED", RejectionReason: "   "})
	require.ErrorIs(t, err, ErrMissingReason, "whitespace is not a reason")

	rejected, err := f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "REJECTED", RejectionReason: "policy"})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, rejected.Status)
	require.Equal(t, "policy", rejected.RejectionReason)
	require.Equal(t, admin.ID, rejected.ApproverID)
	require.NotNil(t, rejected.DecidedAt)

	_, err = f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "APPROVED"})
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_ApproveDropsReason(t *testing.T) {
	f := newFixture(t)

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)
	e := f.submit(t, emp, "12.34", domain.CategoryTravel, "2025-01-02")

	v, err := f.expenses.Transition(context.Background(), admin, e.ID, TransitionInput{
		Status: "approved", RejectionReason: "ignored",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, v.Status)
	require.Empty(t, v.RejectionReason)

	_, err = f.expenses.Reject(context.Background(), admin, e.ID, "too late")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_Ordering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)
	e := f.submit(t, emp, "10.00", domain.CategoryOther, "2025-01-02")

	// Forbidden wins over not found so ids cannot be probed
	_, err := f.expenses.Approve(ctx, emp, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.expenses.Approve(ctx, emp, e.ID)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "PENDING"})
	require.Contains(t, fieldsOf(t, err), "status")

	_, err = f.expenses.Transition(ctx, admin, e.ID, TransitionInput{Status: "CANCELLED"})
	require.Contains(t, fieldsOf(t, err), "status")

	_, err = f.expenses.Approve(ctx, admin, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, ErrNotFound)

	v, err := f.expenses.Get(ctx, admin, e.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, v.Status, "failed attempts leave it untouched")
}

func TestTransition_Concurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)
	e := f.submit(t, emp, "99.00", domain.CategoryEquipment, "2025-03-03")

	inputs := []TransitionInput{
		{Status: "APPROVED"},
		{Status: "REJECTED", RejectionReason: "duplicate"},
	}

	var (
		wg      sync.WaitGroup
		results = make([]error, len(inputs))
	)
	for i, in := range inputs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = f.expenses.Transition(ctx, admin, e.ID, in)
		}()
	}
	wg.Wait()

	winner := -1
	for i, err := range results {
		if err == nil {
			require.Equal(t, -1, winner, "only one transition may win")
			winner = i
			continue
		}
		require.ErrorIs(t, err, ErrInvalidTransition)
	}
	require.NotEqual(t, -1, winner)

	v, err := f.expenses.Get(ctx, admin, e.ID)
	require.NoError(t, err)
	require.Equal(t, domain.Status(inputs[winner].Status), v.Status)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)

	tests := []struct {
		name  string
		in    CreateExpenseInput
		field string
	}{
		{"zero amount", CreateExpenseInput{Amount: decimal.Zero, Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"negative amount", CreateExpenseInput{Amount: decimal.RequireFromString("-1"), Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"three decimals", CreateExpenseInput{Amount: decimal.RequireFromString("45.001"), Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"too large", CreateExpenseInput{Amount: decimal.RequireFromString("10000000000.01"), Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"huge exponent", CreateExpenseInput{Amount: decimal.RequireFromString("1e99999999"), Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"tiny exponent", CreateExpenseInput{Amount: decimal.RequireFromString("1e-99999999"), Category: "FOOD", ExpenseDate: "2025-01-01"}, "amount"},
		{"unknown category", CreateExpenseInput{Amount: decimal.RequireFromString("1"), Category: "SNACKS", ExpenseDate: "2025-01-01"}, "category"},
		{"bad date", CreateExpenseInput{Amount: decimal.RequireFromString("1"), Category: "FOOD", ExpenseDate: "20/01/2025"}, "expense_date"},
		{"missing date", CreateExpenseInput{Amount: decimal.RequireFromString("1"), Category: "FOOD"}, "expense_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.expenses.Create(context.Background(), emp, tt.in)
			require.Contains(t, fieldsOf(t, err), tt.field)
		})
	}

	all, err := f.expenses.List(context.Background(), emp, ListExpensesInput{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCreateExpenseInput_ExtremeAmountsFailFast(t *testing.T) {
	for _, raw := range []string{"1e99999999", "1e-99999999", "-1e99999999", "123456789012345678901234567890"} {
		t.Run(raw, func(t *testing.T) {
			var in CreateExpenseInput
			body := `{"amount":"` + raw + `","category":"FOOD","expense_date":"2025-01-01"}`
			require.NoError(t, json.Unmarshal([]byte(body), &in))

			done := make(chan error, 1)
			go func() { done <- in.Validate() }()

			select {
			case err := <-done:
				require.Error(t, err)
				require.Contains(t, err.Error(), "amount")
			case <-time.After(2 * time.Second):
				t.Fatalf("validating %q did not return", raw)
			}
		})
	}
}

func TestCreateExpenseInput_AmountBoundaries(t *testing.T) {
	for raw, ok := range map[string]bool{
		"0.01":           true,
		"45.000":         true,
		"10000000000":    true,
		"1e10":           true,
		"0.001":          false,
		"45.001":         false,
		"10000000000.01": false,
		"1e11":           false,
	} {
		in := CreateExpenseInput{Amount: decimal.RequireFromString(raw), Category: "FOOD", ExpenseDate: "2025-01-01"}
		if ok {
			require.NoError(t, in.Validate(), raw)
		} else {
			require.Error(t, in.Validate(), raw)
		}
	}
}

func TestCreate_AcceptsRFC3339Date(t *testing.T) {
	f := newFixture(t)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)

	v, err := f.expenses.Create(context.Background(), emp, CreateExpenseInput{
		Amount:      decimal.RequireFromString("0.01"),
		Category:    "software",
		ExpenseDate: "2025-06-30T23:30:00+10:00",
	})
	require.NoError(t, err)
	require.Equal(t, "2025-06-30", v.ExpenseDate.Format(domain.DateLayout))
	require.Equal(t, domain.CategorySoftware, v.Category)
}

func TestGet_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	e1 := f.register(t, "e1@example.com", domain.RoleEmployee)
	e2 := f.register(t, "e2@example.com", domain.RoleEmployee)
	x := f.submit(t, e1, "5.00", domain.CategoryFood, "2025-01-01")

	_, err := f.expenses.Get(ctx, e1, x.ID)
	require.NoError(t, err)
	_, err = f.expenses.Get(ctx, admin, x.ID)
	require.NoError(t, err)
	_, err = f.expenses.Get(ctx, e2, x.ID)
	require.ErrorIs(t, err, ErrForbidden)
	_, err = f.expenses.Get(ctx, e2, "01HZZZZZZZZZZZZZZZZZZZZZZZ")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestList_ScopesAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	e1 := f.register(t, "e1@example.com", domain.RoleEmployee)
	e2 := f.register(t, "e2@example.com", domain.RoleEmployee)

	a := f.submit(t, e1, "10.00", domain.CategoryFood, "2025-01-10")
	b := f.submit(t, e1, "20.00", domain.CategoryTravel, "2025-01-20")
	c := f.submit(t, e2, "30.00", domain.CategoryFood, "2025-01-30")
	_, err := f.expenses.Approve(ctx, admin, b.ID)
	require.NoError(t, err)

	ids := func(vs []domain.ExpenseView) []string {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}

	mine, err := f.expenses.List(ctx, e1, ListExpensesInput{})
	require.NoError(t, err)
	require.Equal(t, []string{b.ID, a.ID}, ids(mine))

	// Filters narrow, they never widen an employee's scope
	food, err := f.expenses.List(ctx, e1, ListExpensesInput{Category: "FOOD"})
	require.NoError(t, err)
	require.Equal(t, []string{a.ID}, ids(food))

	all, err := f.expenses.List(ctx, admin, ListExpensesInput{})
	require.NoError(t, err)
	require.Equal(t, []string{c.ID, b.ID, a.ID}, ids(all))

	approved, err := f.expenses.List(ctx, admin, ListExpensesInput{Status: "approved"})
	require.NoError(t, err)
	require.Equal(t, []string{b.ID}, ids(approved))

	ranged, err := f.expenses.List(ctx, admin, ListExpensesInput{StartDate: "2025-01-10", EndDate: "2025-01-20"})
	require.NoError(t, err)
	require.Equal(t, []string{b.ID, a.ID}, ids(ranged))

	_, err = f.expenses.List(ctx, admin, ListExpensesInput{StartDate: "2025-02-01", EndDate: "2025-01-01"})
	require.Contains(t, fieldsOf(t, err), "start_date")

	_, err = f.expenses.List(ctx, admin, ListExpensesInput{Status: "LOST"})
	require.Contains(t, fieldsOf(t, err), "status")
}

func TestListPending_FIFO(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "a@example.com", domain.RoleAdmin)
	emp := f.register(t, "e@example.com", domain.RoleEmployee)

	first := f.submit(t, emp, "1.00", domain.CategoryFood, "2025-01-01")
	decided := f.submit(t, emp, "2.00", domain.CategoryFood, "2025-01-01")
	last := f.submit(t, emp, "3.00", domain.CategoryFood, "2025-01-01")
	_, err := f.expenses.Reject(ctx, admin, decided.ID, "nope")
	require.NoError(t, err)

	_, err = f.expenses.ListPending(ctx, emp)
	require.ErrorIs(t, err, ErrForbidden)

	queue, err := f.expenses.ListPending(ctx, admin)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	require.Equal(t, first.ID, queue[0].ID)
	require.Equal(t, last.ID, queue[1].ID)
}

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrDuplicateIdentity, ErrInvalidCredentials, ErrInactiveAccount, ErrTokenInvalid,
		ErrIdentityNotFound, ErrForbidden, ErrNotFound, ErrInvalidTransition, ErrMissingReason,
	}
	for i, a := range all {
		for j, b := range all {
			require.Equal(t, i == j, errors.Is(a, b))
		}
	}
}
