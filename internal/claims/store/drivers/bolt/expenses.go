package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"go.etcd.io/bbolt"
)

type expensesRepo struct {
	run runner
}

func getExpense(tx *bbolt.Tx, id string) (expenseRecord, error) {
	b, err := bucket(tx, bucketExpenses)
	if err != nil {
		return expenseRecord{}, err
	}
	data := b.Get([]byte(id))
	if data == nil {
		return expenseRecord{}, store.ErrNotFound
	}
	var rec expenseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return expenseRecord{}, fmt.Errorf("unmarshaling expense: %w", err)
	}
	return rec, nil
}

func putExpense(tx *bbolt.Tx, rec expenseRecord) error {
	b, err := bucket(tx, bucketExpenses)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling expense: %w", err)
	}
	return b.Put([]byte(rec.ID), data)
}

// view joins an expense record with its owner's profile.
func view(tx *bbolt.Tx, rec expenseRecord) (domain.ExpenseView, error) {
	e, err := rec.domain()
	if err != nil {
		return domain.ExpenseView{}, err
	}
	owner, err := getIdentity(tx, rec.OwnerID)
	if err != nil {
		return domain.ExpenseView{}, fmt.Errorf("loading owner %s: %w", rec.OwnerID, err)
	}
	return domain.ExpenseView{Expense: e, Owner: owner.domain().Profile()}, nil
}

func (r *expensesRepo) GetExpenseByID(ctx context.Context, id string) (domain.ExpenseView, error) {
	var v domain.ExpenseView
	err := r.run.view(ctx, func(tx *bbolt.Tx) error {
		rec, err := getExpense(tx, id)
		if err != nil {
			return err
		}
		v, err = view(tx, rec)
		return err
	})
	return v, err
}

func (r *expensesRepo) CreateExpense(ctx context.Context, e domain.Expense) error {
	return r.run.update(ctx, func(tx *bbolt.Tx) error {
		if _, err := getIdentity(tx, e.OwnerID); err != nil {
			return err
		}
		if _, err := getExpense(tx, e.ID); err == nil {
			return store.ErrAlreadyExists
		}
		return putExpense(tx, toExpenseRecord(e))
	})
}

// TransitionExpense reads, checks and writes inside one bbolt write
// transaction. bbolt serialises writers, so the status check cannot go stale.
func (r *expensesRepo) TransitionExpense(
	ctx context.Context,
	id string,
	from domain.Status,
	d domain.Decision,
) error {
	return r.run.update(ctx, func(tx *bbolt.Tx) error {
		rec, err := getExpense(tx, id)
		if err != nil {
			return err
		}
		if domain.Status(rec.Status) != from {
			return store.ErrConflict
		}

		decidedAt := d.DecidedAt.UTC()
		rec.Status = string(d.Status)
		rec.RejectionReason = d.Reason
		rec.ApproverID = d.ApproverID
		rec.DecidedAt = &decidedAt
		rec.UpdatedAt = decidedAt
		return putExpense(tx, rec)
	})
}

func (r *expensesRepo) QueryExpenses(ctx context.Context, q domain.ExpenseQuery) ([]domain.ExpenseView, error) {
	out := make([]domain.ExpenseView, 0)
	err := r.run.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketExpenses)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, data []byte) error {
			var rec expenseRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("unmarshaling expense: %w", err)
			}
			v, err := view(tx, rec)
			if err != nil {
				return err
			}
			if q.Match(v.Expense) {
				out = append(out, v)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b domain.ExpenseView) int {
		c := newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		if q.Sort == domain.SortOldestFirst {
			return -c
		}
		return c
	})
	return out, nil
}
