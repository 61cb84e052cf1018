package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/policy"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/pkg/idx"
	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// ExpenseService owns the expense state machine. Every operation consults
// the policy table before touching the store.
type ExpenseService struct {
	Store store.Store

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (s *ExpenseService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create submits a new PENDING expense owned by the caller.
func (s *ExpenseService) Create(ctx context.Context, caller domain.Caller, in CreateExpenseInput) (domain.ExpenseView, error) {
	if err := policy.Authorize(caller, policy.ActionCreateExpense, caller.ID); err != nil {
		return domain.ExpenseView{}, err
	}

	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	in.Description = strings.TrimSpace(in.Description)
	if err := asValidationError(in.Validate()); err != nil {
		return domain.ExpenseView{}, err
	}
	date, _ := parseDate(in.ExpenseDate)

	now := s.now()
	e := domain.Expense{
		ID:          idx.NewAt(now).String(),
		OwnerID:     caller.ID,
		Amount:      in.Amount,
		Category:    domain.Category(in.Category),
		Description: in.Description,
		ExpenseDate: date,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var view domain.ExpenseView
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Expenses().CreateExpense(ctx, e); err != nil {
			return err
		}
		var err error
		view, err = tx.Expenses().GetExpenseByID(ctx, e.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Owner vanished between token resolution and insert
			return domain.ExpenseView{}, ErrIdentityNotFound
		}
		return domain.ExpenseView{}, fmt.Errorf("create expense: %w", err)
	}

	slogx.FromContext(ctx).Info("expense created",
		slog.String("expense_id", e.ID),
		slog.String("amount", e.Amount.StringFixed(2)),
		slog.String("category", string(e.Category)),
	)
	return view, nil
}

// List returns the expenses visible to the caller, newest first. Employees
// only ever see their own, whatever filters they pass.
func (s *ExpenseService) List(ctx context.Context, caller domain.Caller, in ListExpensesInput) ([]domain.ExpenseView, error) {
	owner, err := policy.Scope(caller, policy.ActionListExpenses)
	if err != nil {
		return nil, err
	}

	in.Category = strings.ToUpper(strings.TrimSpace(in.Category))
	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if err := asValidationError(in.Validate()); err != nil {
		return nil, err
	}

	q := in.query()
	q.OwnerID = owner
	q.Sort = domain.SortNewestFirst

	out, err := s.Store.Expenses().QueryExpenses(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	return out, nil
}

// Get returns a single expense. A missing expense is ErrNotFound; one owned
// by someone else is ErrForbidden for employees.
func (s *ExpenseService) Get(ctx context.Context, caller domain.Caller, id string) (domain.ExpenseView, error) {
	v, err := s.Store.Expenses().GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ExpenseView{}, ErrNotFound
		}
		return domain.ExpenseView{}, fmt.Errorf("get expense: %w", err)
	}

	if err := policy.Authorize(caller, policy.ActionReadExpense, v.OwnerID); err != nil {
		return domain.ExpenseView{}, err
	}
	return v, nil
}

// Transition decides a PENDING expense. The permission check runs before the
// record is read so unauthorised callers learn nothing about which ids exist.
func (s *ExpenseService) Transition(ctx context.Context, caller domain.Caller, id string, in TransitionInput) (domain.ExpenseView, error) {
	l := slogx.FromContext(ctx)

	if _, err := policy.Scope(caller, policy.ActionTransitionExpense); err != nil {
		return domain.ExpenseView{}, err
	}

	in.Status = strings.ToUpper(strings.TrimSpace(in.Status))
	if err := asValidationError(in.Validate()); err != nil {
		return domain.ExpenseView{}, err
	}
	target := domain.Status(in.Status)

	current, err := s.Store.Expenses().GetExpenseByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ExpenseView{}, ErrNotFound
		}
		return domain.ExpenseView{}, fmt.Errorf("get expense: %w", err)
	}
	if err := policy.Authorize(caller, policy.ActionTransitionExpense, current.OwnerID); err != nil {
		return domain.ExpenseView{}, err
	}

	if current.Status.Terminal() {
		return domain.ExpenseView{}, fmt.Errorf("%w: expense is already %s", ErrInvalidTransition, current.Status)
	}

	reason := strings.TrimSpace(in.RejectionReason)
	switch target {
	case domain.StatusRejected:
		if reason == "" {
			return domain.ExpenseView{}, fmt.Errorf("%w: a rejection needs a reason", ErrMissingReason)
		}
	case domain.StatusApproved:
		reason = ""
	}

	decision := domain.Decision{
		Status:     target,
		Reason:     reason,
		ApproverID: caller.ID,
		DecidedAt:  s.now(),
	}

	err = s.Store.Expenses().TransitionExpense(ctx, id, domain.StatusPending, decision)
	switch {
	case errors.Is(err, store.ErrConflict):
		l.Info("lost transition race", slog.String("expense_id", id))
		return domain.ExpenseView{}, fmt.Errorf("%w: expense was decided concurrently", ErrInvalidTransition)
	case errors.Is(err, store.ErrNotFound):
		return domain.ExpenseView{}, ErrNotFound
	case err != nil:
		return domain.ExpenseView{}, fmt.Errorf("transition expense: %w", err)
	}

	l.Info("expense decided",
		slog.String("expense_id", id),
		slog.String("status", string(target)),
		slog.String("approver_id", caller.ID),
	)

	v, err := s.Store.Expenses().GetExpenseByID(ctx, id)
	if err != nil {
		return domain.ExpenseView{}, fmt.Errorf("reload expense: %w", err)
	}
	return v, nil
}

func (s *ExpenseService) Approve(ctx context.Context, caller domain.Caller, id string) (domain.ExpenseView, error) {
	return s.Transition(ctx, caller, id, TransitionInput{Status: string(domain.StatusApproved)})
}

func (s *ExpenseService) Reject(ctx context.Context, caller domain.Caller, id, reason string) (domain.ExpenseView, error) {
	return s.Transition(ctx, caller, id, TransitionInput{Status: string(domain.StatusRejected), RejectionReason: reason})
}

// ListPending returns the approval queue, oldest first.
func (s *ExpenseService) ListPending(ctx context.Context, caller domain.Caller) ([]domain.ExpenseView, error) {
	if _, err := policy.Scope(caller, policy.ActionViewPendingQueue); err != nil {
		return nil, err
	}

	out, err := s.Store.Expenses().QueryExpenses(ctx, domain.ExpenseQuery{
		Status: domain.StatusPending,
		Sort:   domain.SortOldestFirst,
	})
	if err != nil {
		return nil, fmt.Errorf("query pending expenses: %w", err)
	}
	return out, nil
}
