package bolt

import (
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/shopspring/decimal"
)

type identityRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toIdentityRecord(i domain.Identity) identityRecord {
	return identityRecord{
		ID:           i.ID,
		Email:        i.Email,
		PasswordHash: i.PasswordHash,
		FirstName:    i.FirstName,
		LastName:     i.LastName,
		Role:         string(i.Role),
		Active:       i.Active,
		CreatedAt:    i.CreatedAt.UTC(),
		UpdatedAt:    i.UpdatedAt.UTC(),
	}
}

func (r identityRecord) domain() domain.Identity {
	return domain.Identity{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         domain.Role(r.Role),
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type expenseRecord struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	ExpenseDate     string          `json:"expense_date"`
	Status          string          `json:"status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	ApproverID      string          `json:"approver_id,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func toExpenseRecord(e domain.Expense) expenseRecord {
	return expenseRecord{
		ID:              e.ID,
		OwnerID:         e.OwnerID,
		Amount:          e.Amount,
		Category:        string(e.Category),
		Description:     e.Description,
		ExpenseDate:     e.ExpenseDate.Format(domain.DateLayout),
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		ApproverID:      e.ApproverID,
		DecidedAt:       e.DecidedAt,
		CreatedAt:       e.CreatedAt.UTC(),
		UpdatedAt:       e.UpdatedAt.UTC(),
	}
}

func (r expenseRecord) domain() (domain.Expense, error) {
	date, err := time.Parse(domain.DateLayout, r.ExpenseDate)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		Amount:          r.Amount,
		Category:        domain.Category(r.Category),
		Description:     r.Description,
		ExpenseDate:     date,
		Status:          domain.Status(r.Status),
		RejectionReason: r.RejectionReason,
		ApproverID:      r.ApproverID,
		DecidedAt:       r.DecidedAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}, nil
}
