package service

import (
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/shopspring/decimal"
)

const maxDescriptionLength = 1000

var maxAmount = decimal.New(1, 10)

// maxAmountDigits is the integer digit count of maxAmount.
const maxAmountDigits = 11

// RegisterInput is the payload of a registration. Role is optional and
// defaults to EMPLOYEE.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func (r RegisterInput) normalize() RegisterInput {
	r.Email = strings.TrimSpace(r.Email)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
	return r
}

func (r RegisterInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, validation.Length(3, 254), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Role, validation.In(roleValues()...)),
	)
}

// CreateExpenseInput is the payload of a new expense.
type CreateExpenseInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	ExpenseDate string          `json:"expense_date"`
}

func (r CreateExpenseInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.By(validAmount)),
		validation.Field(&r.Category, validation.Required, validation.In(categoryValues()...)),
		validation.Field(&r.Description, validation.Length(0, maxDescriptionLength)),
		validation.Field(&r.ExpenseDate, validation.Required, validation.By(validDate)),
	)
}

// ListExpensesInput carries optional filters. Empty strings mean "any".
type ListExpensesInput struct {
	Category  string `json:"category"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r ListExpensesInput) Validate() error {
	err := validation.ValidateStruct(&r,
		validation.Field(&r.Category, validation.In(categoryValues()...)),
		validation.Field(&r.Status, validation.In(statusValues()...)),
		validation.Field(&r.StartDate, validation.By(validDate)),
		validation.Field(&r.EndDate, validation.By(validDate)),
	)
	if err != nil {
		return err
	}

	if r.StartDate != "" && r.EndDate != "" {
		start, _ := parseDate(r.StartDate)
		end, _ := parseDate(r.EndDate)
		if start.After(end) {
			return validation.Errors{"start_date": errors.New("must not be after end_date")}
		}
	}
	return nil
}

// query converts validated filters into a store query.
func (r ListExpensesInput) query() domain.ExpenseQuery {
	q := domain.ExpenseQuery{
		Category: domain.Category(r.Category),
		Status:   domain.Status(r.Status),
	}
	if r.StartDate != "" {
		d, _ := parseDate(r.StartDate)
		q.StartDate = &d
	}
	if r.EndDate != "" {
		d, _ := parseDate(r.EndDate)
		q.EndDate = &d
	}
	return q
}

// TransitionInput requests a decision on a pending expense.
type TransitionInput struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

func (r TransitionInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In(string(domain.StatusApproved), string(domain.StatusRejected)),
		),
	)
}

func validAmount(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal amount")
	}
	if d.Sign() <= 0 {
		return errors.New("must be at least 0.01")
	}

	// Comparing or rounding rescales to a common exponent, so bound the
	// exponent on the digit string first.
	digits := d.Coefficient().String()
	significant := strings.TrimRight(digits, "0")
	exp := int64(d.Exponent()) + int64(len(digits)-len(significant))
	switch {
	case exp < -2:
		return errors.New("must have at most two decimal places")
	case int64(len(significant))+exp > maxAmountDigits:
		return errors.New("must not exceed 10000000000")
	}

	if decimal.RequireFromString(significant).Shift(int32(exp)).GreaterThan(maxAmount) {
		return errors.New("must not exceed 10000000000")
	}
	return nil
}

func validDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD format")
	}
	return nil
}

// parseDate accepts a calendar date or an RFC 3339 timestamp and returns the
// calendar date, as written, at UTC midnight.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func roleValues() []interface{} {
	out := make([]interface{}, 0, len(domain.Roles()))
	for _, r := range domain.Roles() {
		out = append(out, string(r))
	}
	return out
}

func categoryValues() []interface{} {
	out := make([]interface{}, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		out = append(out, string(c))
	}
	return out
}

func statusValues() []interface{} {
	out := make([]interface{}, 0, len(domain.Statuses()))
	for _, s := range domain.Statuses() {
		out = append(out, string(s))
	}
	return out
}
