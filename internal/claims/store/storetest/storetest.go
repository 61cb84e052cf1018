// Package storetest holds the behaviour every store driver must share. Driver
// packages run it from their own tests against a fresh store.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/pkg/idx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty, migrated store. It should register its own cleanup.
type Factory func(t *testing.T) store.Store

// Run exercises the store contract against stores produced by open.
func Run(t *testing.T, open Factory) {
	t.Run("identities", func(t *testing.T) { testIdentities(t, open(t)) })
	t.Run("duplicate email", func(t *testing.T) { testDuplicateEmail(t, open(t)) })
	t.Run("concurrent create identity", func(t *testing.T) { testConcurrentCreateIdentity(t, open(t)) })
	t.Run("set active", func(t *testing.T) { testSetActive(t, open(t)) })
	t.Run("expenses", func(t *testing.T) { testExpenses(t, open(t)) })
	t.Run("query filters", func(t *testing.T) { testQueryFilters(t, open(t)) })
	t.Run("transition", func(t *testing.T) { testTransition(t, open(t)) })
	t.Run("concurrent transition", func(t *testing.T) { testConcurrentTransition(t, open(t)) })
	t.Run("with tx", func(t *testing.T) { testWithTx(t, open(t)) })
	t.Run("ping", func(t *testing.T) { require.NoError(t, open(t).Ping(context.Background())) })
}

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// NewIdentity builds an identity created at base+offset.
func NewIdentity(email string, role domain.Role, offset time.Duration) domain.Identity {
	at := base.Add(offset)
	return domain.Identity{
		ID:           idx.NewAt(at).String(),
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		FirstName:    "Test",
		LastName:     "User",
		Role:         role,
		Active:       true,
		CreatedAt:    at,
		UpdatedAt:    at,
	}
}

// NewExpense builds a pending expense created at base+offset.
func NewExpense(ownerID, amount string, cat domain.Category, date string, offset time.Duration) domain.Expense {
	at := base.Add(offset)
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return domain.Expense{
		ID:          idx.NewAt(at).String(),
		OwnerID:     ownerID,
		Amount:      decimal.RequireFromString(amount),
		Category:    cat,
		Description: "test expense",
		ExpenseDate: d,
		Status:      domain.StatusPending,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

func testIdentities(t *testing.T, s store.Store) {
	ctx := context.Background()

	alice := NewIdentity("alice@example.com", domain.RoleEmployee, 0)
	bob := NewIdentity("bob@example.com", domain.RoleAdmin, time.Minute)
	require.NoError(t, s.Identities().CreateIdentity(ctx, alice))
	require.NoError(t, s.Identities().CreateIdentity(ctx, bob))

	got, err := s.Identities().GetIdentityByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
	require.Equal(t, alice.PasswordHash, got.PasswordHash)
	require.Equal(t, domain.RoleEmployee, got.Role)
	require.True(t, got.Active)
	require.True(t, alice.CreatedAt.Equal(got.CreatedAt))

	got, err = s.Identities().GetIdentityByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "bob@example.com", got.Email)

	_, err = s.Identities().GetIdentityByEmail(ctx, "ALICE@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Identities().GetIdentityByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.Identities().ListIdentities(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, bob.ID, all[0].ID, "newest first")
	require.Equal(t, alice.ID, all[1].ID)
}

func testDuplicateEmail(t *testing.T, s store.Store) {
	ctx := context.Background()

	require.NoError(t, s.Identities().CreateIdentity(ctx, NewIdentity("dup@example.com", domain.RoleEmployee, 0)))
	err := s.Identities().CreateIdentity(ctx, NewIdentity("dup@example.com", domain.RoleAdmin, time.Second))
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func testConcurrentCreateIdentity(t *testing.T, s store.Store) {
	ctx := context.Background()
	const n = 8

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Identities().CreateIdentity(ctx, NewIdentity("race@example.com", domain.RoleEmployee, time.Duration(i)))
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	}
	require.Equal(t, 1, wins)
}

func testSetActive(t *testing.T, s store.Store) {
	ctx := context.Background()

	i := NewIdentity("flip@example.com", domain.RoleEmployee, 0)
	require.NoError(t, s.Identities().CreateIdentity(ctx, i))

	later := base.Add(time.Hour)
	require.NoError(t, s.Identities().SetIdentityActive(ctx, i.ID, false, later))

	got, err := s.Identities().GetIdentityByID(ctx, i.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
	require.True(t, later.Equal(got.UpdatedAt))

	require.ErrorIs(t, s.Identities().SetIdentityActive(ctx, "missing", true, later), store.ErrNotFound)
}

func testExpenses(t *testing.T, s store.Store) {
	ctx := context.Background()

	owner := NewIdentity("owner@example.com", domain.RoleEmployee, 0)
	require.NoError(t, s.Identities().CreateIdentity(ctx, owner))

	e := NewExpense(owner.ID, "45.50", domain.CategoryFood, "2024-02-28", time.Minute)
	require.NoError(t, s.Expenses().CreateExpense(ctx, e))

	v, err := s.Expenses().GetExpenseByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e.ID, v.ID)
	require.True(t, e.Amount.Equal(v.Amount))
	require.Equal(t, domain.CategoryFood, v.Category)
	require.Equal(t, "2024-02-28", v.ExpenseDate.Format(domain.DateLayout))
	require.Equal(t, domain.StatusPending, v.Status)
	require.Nil(t, v.DecidedAt)
	require.Empty(t, v.ApproverID)
	require.Equal(t, owner.ID, v.Owner.ID)
	require.Equal(t, owner.Email, v.Owner.Email)

	_, err = s.Expenses().GetExpenseByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	orphan := NewExpense("no-such-owner", "1.00", domain.CategoryOther, "2024-02-28", 2*time.Minute)
	require.ErrorIs(t, s.Expenses().CreateExpense(ctx, orphan), store.ErrNotFound)
}

func testQueryFilters(t *testing.T, s store.Store) {
	ctx := context.Background()

	a := NewIdentity("a@example.com", domain.RoleEmployee, 0)
	b := NewIdentity("b@example.com", domain.RoleEmployee, time.Second)
	require.NoError(t, s.Identities().CreateIdentity(ctx, a))
	require.NoError(t, s.Identities().CreateIdentity(ctx, b))

	e1 := NewExpense(a.ID, "10.00", domain.CategoryFood, "2024-01-10", time.Minute)
	e2 := NewExpense(a.ID, "20.00", domain.CategoryTravel, "2024-01-20", 2*time.Minute)
	e3 := NewExpense(b.ID, "30.00", domain.CategoryFood, "2024-01-30", 3*time.Minute)
	for _, e := range []domain.Expense{e1, e2, e3} {
		require.NoError(t, s.Expenses().CreateExpense(ctx, e))
	}

	ids := func(vs []domain.ExpenseView) []string {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.ID)
		}
		return out
	}

	all, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{})
	require.NoError(t, err)
	require.Equal(t, []string{e3.ID, e2.ID, e1.ID}, ids(all))

	oldest, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{Sort: domain.SortOldestFirst})
	require.NoError(t, err)
	require.Equal(t, []string{e1.ID, e2.ID, e3.ID}, ids(oldest))

	mine, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{OwnerID: a.ID})
	require.NoError(t, err)
	require.Equal(t, []string{e2.ID, e1.ID}, ids(mine))

	food, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{Category: domain.CategoryFood})
	require.NoError(t, err)
	require.Equal(t, []string{e3.ID, e1.ID}, ids(food))

	start := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	ranged, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Equal(t, []string{e3.ID, e2.ID}, ids(ranged), "date bounds are inclusive")

	pending, err := s.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{Status: domain.StatusApproved})
	require.NoError(t, err)
	require.Empty(t, pending)
}

func testTransition(t *testing.T, s store.Store) {
	ctx := context.Background()

	owner := NewIdentity("t-owner@example.com", domain.RoleEmployee, 0)
	admin := NewIdentity("t-admin@example.com", domain.RoleAdmin, time.Second)
	require.NoError(t, s.Identities().CreateIdentity(ctx, owner))
	require.NoError(t, s.Identities().CreateIdentity(ctx, admin))

	e := NewExpense(owner.ID, "99.99", domain.CategorySoftware, "2024-02-01", time.Minute)
	require.NoError(t, s.Expenses().CreateExpense(ctx, e))

	at := base.Add(time.Hour)
	d := domain.Decision{Status: domain.StatusRejected, Reason: "no receipt", ApproverID: admin.ID, DecidedAt: at}
	require.NoError(t, s.Expenses().TransitionExpense(ctx, e.ID, domain.StatusPending, d))

	v, err := s.Expenses().GetExpenseByID(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, v.Status)
	require.Equal(t, "no receipt", v.RejectionReason)
	require.Equal(t, admin.ID, v.ApproverID)
	require.NotNil(t, v.DecidedAt)
	require.True(t, at.Equal(*v.DecidedAt))

	// A second decision no longer matches the expected status
	d.Status = domain.StatusApproved
	require.ErrorIs(t, s.Expenses().TransitionExpense(ctx, e.ID, domain.StatusPending, d), store.ErrConflict)
	require.ErrorIs(t, s.Expenses().TransitionExpense(ctx, "missing", domain.StatusPending, d), store.ErrNotFound)
}

func testConcurrentTransition(t *testing.T, s store.Store) {
	ctx := context.Background()

	owner := NewIdentity("c-owner@example.com", domain.RoleEmployee, 0)
	require.NoError(t, s.Identities().CreateIdentity(ctx, owner))
	e := NewExpense(owner.ID, "5.00", domain.CategoryOther, "2024-02-01", time.Minute)
	require.NoError(t, s.Expenses().CreateExpense(ctx, e))

	const n = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := domain.StatusApproved
			if i%2 == 1 {
				status = domain.StatusRejected
			}
			err := s.Expenses().TransitionExpense(ctx, e.ID, domain.StatusPending, domain.Decision{
				Status: status, Reason: "r", ApproverID: owner.ID, DecidedAt: base.Add(time.Hour),
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, store.ErrConflict):
				conflicts++
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, wins)
	require.Equal(t, n-1, conflicts)
}

func testWithTx(t *testing.T, s store.Store) {
	ctx := context.Background()

	i := NewIdentity("tx@example.com", domain.RoleEmployee, 0)
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().CreateIdentity(ctx, i); err != nil {
			return err
		}
		return store.ErrConflict
	})
	require.ErrorIs(t, err, store.ErrConflict)

	_, err = s.Identities().GetIdentityByID(ctx, i.ID)
	require.ErrorIs(t, err, store.ErrNotFound, "rolled back")

	err = s.WithTx(ctx, func(tx store.Tx) error {
		require.Error(t, tx.WithTx(ctx, func(store.Tx) error { return nil }), "nested tx")
		return tx.Identities().CreateIdentity(ctx, i)
	})
	require.NoError(t, err)

	_, err = s.Identities().GetIdentityByID(ctx, i.ID)
	require.NoError(t, err)
}
