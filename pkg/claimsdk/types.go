package claimsdk

import (
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleEmployee = "EMPLOYEE"
	RoleAdmin    = "ADMIN"

	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"

	CategoryFood           = "FOOD"
	CategoryTravel         = "TRAVEL"
	CategoryAccommodation  = "ACCOMMODATION"
	CategoryTransport      = "TRANSPORT"
	CategoryOfficeSupplies = "OFFICE_SUPPLIES"
	CategoryEquipment      = "EQUIPMENT"
	CategorySoftware       = "SOFTWARE"
	CategoryTraining       = "TRAINING"
	CategoryOther          = "OTHER"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ValidationErrorResponse is returned with 400 when input is malformed.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// Role is optional and defaults to EMPLOYEE
	Role string `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	Identity    Identity  `json:"identity"`
}

// Identity is the public profile of a registered person.
type Identity struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

type IdentityList struct {
	Identities []Identity `json:"identities"`
	Count      int        `json:"count"`
}

// CreateExpenseRequest accepts the amount as a JSON number or string.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" swaggertype:"string" example:"45.00"`
	Category    string          `json:"category" example:"FOOD"`
	Description string          `json:"description,omitempty"`
	ExpenseDate string          `json:"expense_date" example:"2025-10-20"`
}

// TransitionRequest moves a pending expense to APPROVED or REJECTED.
type TransitionRequest struct {
	Status          string `json:"status" example:"REJECTED"`
	RejectionReason string `json:"rejection_reason,omitempty"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// ExpenseOwner is the owner's profile embedded in an expense.
type ExpenseOwner struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Expense amounts are fixed two-decimal strings, e.g. "45.00".
type Expense struct {
	ID              string       `json:"id"`
	OwnerID         string       `json:"owner_id"`
	Owner           ExpenseOwner `json:"owner"`
	Amount          string       `json:"amount" example:"45.00"`
	Category        string       `json:"category"`
	Description     string       `json:"description"`
	ExpenseDate     string       `json:"expense_date" example:"2025-10-20"`
	Status          string       `json:"status"`
	RejectionReason string       `json:"rejection_reason,omitempty"`
	ApproverID      string       `json:"approver_id,omitempty"`
	DecidedAt       *time.Time   `json:"decided_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type ExpenseList struct {
	Expenses []Expense `json:"expenses"`
	Count    int       `json:"count"`
}

// ExpenseFilter narrows ListExpenses. Empty fields are ignored and the dates
// are inclusive.
type ExpenseFilter struct {
	Category  string
	Status    string
	StartDate string
	EndDate   string
}

func (f ExpenseFilter) Values() url.Values {
	v := url.Values{}
	if f.Category != "" {
		v.Set("category", f.Category)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.StartDate != "" {
		v.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		v.Set("end_date", f.EndDate)
	}
	return v
}

type StatusCounts struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Analytics sums are fixed two-decimal strings keyed by category or status.
type Analytics struct {
	TotalExpenses  int               `json:"total_expenses"`
	TotalAmount    string            `json:"total_amount" example:"300.00"`
	CategoryTotals map[string]string `json:"category_totals"`
	StatusTotals   map[string]string `json:"status_totals"`
	StatusCounts   StatusCounts      `json:"status_counts"`
}

// HealthResponse is used by /livez and /readyz (only readyz sets Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
