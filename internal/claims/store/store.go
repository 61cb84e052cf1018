package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict is returned by conditional writes whose precondition no
	// longer holds, e.g. an expense that already left the expected status.
	ErrConflict = errors.New("store: conflict")
)

// Store is the root data access interface. Concrete drivers (sqlite, bolt)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and so a transaction-scoped Store cannot start another
// transaction by accident.
type Store interface {
	Identities() Identities
	Expenses() Expenses

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the backing database is still reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Identities interface {
	GetIdentityByID(ctx context.Context, id string) (domain.Identity, error)

	// GetIdentityByEmail matches the email exactly.
	GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error)

	// CreateIdentity inserts a new identity (id is provided by the caller via
	// ULID). Returns ErrAlreadyExists when the email is taken.
	CreateIdentity(ctx context.Context, i domain.Identity) error

	// ListIdentities returns every identity, newest first.
	ListIdentities(ctx context.Context) ([]domain.Identity, error)

	// SetIdentityActive flips the active flag and bumps updated_at.
	SetIdentityActive(ctx context.Context, id string, active bool, at time.Time) error
}

type Expenses interface {
	// GetExpenseByID returns the expense joined with its owner's profile.
	GetExpenseByID(ctx context.Context, id string) (domain.ExpenseView, error)

	// CreateExpense inserts a new expense. The owner must exist.
	CreateExpense(ctx context.Context, e domain.Expense) error

	// TransitionExpense applies d only if the expense is still in status
	// from. Returns ErrNotFound if the expense is missing and ErrConflict if
	// its status changed underneath the caller.
	TransitionExpense(ctx context.Context, id string, from domain.Status, d domain.Decision) error

	// QueryExpenses returns the expenses matching q in the requested order.
	QueryExpenses(ctx context.Context, q domain.ExpenseQuery) ([]domain.ExpenseView, error)
}
