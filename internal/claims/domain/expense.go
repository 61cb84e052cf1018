package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for expense dates on the wire
// and in storage.
const DateLayout = "2006-01-02"

type Category string

const (
	CategoryFood           Category = "FOOD"
	CategoryTravel         Category = "TRAVEL"
	CategoryAccommodation  Category = "ACCOMMODATION"
	CategoryTransport      Category = "TRANSPORT"
	CategoryOfficeSupplies Category = "OFFICE_SUPPLIES"
	CategoryEquipment      Category = "EQUIPMENT"
	CategorySoftware       Category = "SOFTWARE"
	CategoryTraining       Category = "TRAINING"
	CategoryOther          Category = "OTHER"
)

// Categories returns the closed set of expense categories.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTravel,
		CategoryAccommodation,
		CategoryTransport,
		CategoryOfficeSupplies,
		CategoryEquipment,
		CategorySoftware,
		CategoryTraining,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Statuses returns every expense status.
func Statuses() []Status {
	return []Status{StatusPending, StatusApproved, StatusRejected}
}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Expense is a single claim. Status starts PENDING and moves exactly once to
// APPROVED or REJECTED.
type Expense struct {
	ID          string
	OwnerID     string
	Amount      decimal.Decimal
	Category    Category
	Description string
	ExpenseDate time.Time // calendar date at UTC midnight
	Status      Status

	// Decision fields, set only once the expense leaves PENDING
	RejectionReason string
	ApproverID      string
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ExpenseView is an expense joined with its owner's public profile.
type ExpenseView struct {
	Expense
	Owner Profile
}

// Decision is the outcome of a status transition.
type Decision struct {
	Status     Status
	Reason     string
	ApproverID string
	DecidedAt  time.Time
}

// SortOrder controls the creation-time ordering of expense queries.
type SortOrder int

const (
	SortNewestFirst SortOrder = iota
	SortOldestFirst
)

// ExpenseQuery narrows a query over expenses. Zero values mean "any".
// StartDate and EndDate are inclusive calendar dates.
type ExpenseQuery struct {
	OwnerID   string
	Category  Category
	Status    Status
	StartDate *time.Time
	EndDate   *time.Time
	Sort      SortOrder
}

// Match reports whether e satisfies every constraint of the query. Drivers
// without a query language use it to filter in memory.
func (f ExpenseQuery) Match(e Expense) bool {
	if f.OwnerID != "" && e.OwnerID != f.OwnerID {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	if f.StartDate != nil && e.ExpenseDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && e.ExpenseDate.After(*f.EndDate) {
		return false
	}
	return true
}
