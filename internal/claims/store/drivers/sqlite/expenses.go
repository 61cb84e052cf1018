package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/shopspring/decimal"
)

const expenseViewSelect = `
SELECT e.id, e.owner_id, e.amount, e.category, e.description, e.expense_date,
       e.status, e.rejection_reason, e.approver_id, e.decided_at,
       e.created_at, e.updated_at,
       o.email, o.first_name, o.last_name, o.role, o.active, o.created_at
  FROM expenses e
  JOIN identities o ON o.id = e.owner_id`

type expensesRepo struct {
	db dbtx
}

func scanExpenseView(row scanner) (domain.ExpenseView, error) {
	var (
		v                           domain.ExpenseView
		amount, category, status    string
		expenseDate                 string
		reason, approver, decidedAt sql.NullString
		createdAt, updatedAt        string
		ownerRole, ownerCreatedAt   string
	)

	err := row.Scan(
		&v.ID, &v.OwnerID, &amount, &category, &v.Description, &expenseDate,
		&status, &reason, &approver, &decidedAt,
		&createdAt, &updatedAt,
		&v.Owner.Email, &v.Owner.FirstName, &v.Owner.LastName, &ownerRole, &v.Owner.Active, &ownerCreatedAt,
	)
	if err != nil {
		return domain.ExpenseView{}, err
	}

	if v.Amount, err = decimal.NewFromString(amount); err != nil {
		return domain.ExpenseView{}, err
	}
	if v.ExpenseDate, err = time.Parse(domain.DateLayout, expenseDate); err != nil {
		return domain.ExpenseView{}, err
	}
	if v.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.ExpenseView{}, err
	}
	if v.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.ExpenseView{}, err
	}
	if decidedAt.Valid {
		t, err := parseTime(decidedAt.String)
		if err != nil {
			return domain.ExpenseView{}, err
		}
		v.DecidedAt = &t
	}
	if v.Owner.CreatedAt, err = parseTime(ownerCreatedAt); err != nil {
		return domain.ExpenseView{}, err
	}

	v.Category = domain.Category(category)
	v.Status = domain.Status(status)
	v.RejectionReason = mapNullString(reason)
	v.ApproverID = mapNullString(approver)
	v.Owner.ID = v.OwnerID
	v.Owner.Role = domain.Role(ownerRole)
	return v, nil
}

func (r *expensesRepo) GetExpenseByID(ctx context.Context, id string) (domain.ExpenseView, error) {
	row := r.db.QueryRowContext(ctx, expenseViewSelect+` WHERE e.id = ?`, id)
	v, err := scanExpenseView(row)
	if err != nil {
		return domain.ExpenseView{}, mapNotFound(err)
	}
	return v, nil
}

func (r *expensesRepo) CreateExpense(ctx context.Context, e domain.Expense) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO expenses (id, owner_id, amount, category, description, expense_date, status, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.Amount.StringFixed(2), string(e.Category), e.Description,
		e.ExpenseDate.Format(domain.DateLayout), string(e.Status),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return mapConstraint(err)
}

// TransitionExpense relies on the status predicate in the UPDATE so that of
// two concurrent decisions only one ever matches a row.
func (r *expensesRepo) TransitionExpense(
	ctx context.Context,
	id string,
	from domain.Status,
	d domain.Decision,
) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE expenses
   SET status = ?, rejection_reason = ?, approver_id = ?, decided_at = ?, updated_at = ?
 WHERE id = ? AND status = ?`,
		string(d.Status), mapStringNull(d.Reason), mapStringNull(d.ApproverID),
		formatTime(d.DecidedAt), formatTime(d.DecidedAt),
		id, string(from),
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM expenses WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return store.ErrConflict
}

func (r *expensesRepo) QueryExpenses(ctx context.Context, q domain.ExpenseQuery) ([]domain.ExpenseView, error) {
	var (
		where []string
		args  []any
	)
	if q.OwnerID != "" {
		where = append(where, "e.owner_id = ?")
		args = append(args, q.OwnerID)
	}
	if q.Category != "" {
		where = append(where, "e.category = ?")
		args = append(args, string(q.Category))
	}
	if q.Status != "" {
		where = append(where, "e.status = ?")
		args = append(args, string(q.Status))
	}
	if q.StartDate != nil {
		where = append(where, "e.expense_date >= ?")
		args = append(args, q.StartDate.Format(domain.DateLayout))
	}
	if q.EndDate != nil {
		where = append(where, "e.expense_date <= ?")
		args = append(args, q.EndDate.Format(domain.DateLayout))
	}

	var sb strings.Builder
	sb.WriteString(expenseViewSelect)
	if len(where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(where, " AND "))
	}
	if q.Sort == domain.SortOldestFirst {
		sb.WriteString(" ORDER BY e.created_at ASC, e.id ASC")
	} else {
		sb.WriteString(" ORDER BY e.created_at DESC, e.id DESC")
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ExpenseView, 0)
	for rows.Next() {
		v, err := scanExpenseView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
