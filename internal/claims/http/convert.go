package http

import (
	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
)

func toIdentity(p domain.Profile) claimsdk.Identity {
	return claimsdk.Identity{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Role:      string(p.Role),
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
	}
}

func toExpense(v domain.ExpenseView) claimsdk.Expense {
	return claimsdk.Expense{
		ID:      v.ID,
		OwnerID: v.OwnerID,
		Owner: claimsdk.ExpenseOwner{
			ID:        v.Owner.ID,
			Email:     v.Owner.Email,
			FirstName: v.Owner.FirstName,
			LastName:  v.Owner.LastName,
			Role:      string(v.Owner.Role),
		},
		Amount:          v.Amount.StringFixed(2),
		Category:        string(v.Category),
		Description:     v.Description,
		ExpenseDate:     v.ExpenseDate.Format(domain.DateLayout),
		Status:          string(v.Status),
		RejectionReason: v.RejectionReason,
		ApproverID:      v.ApproverID,
		DecidedAt:       v.DecidedAt,
		CreatedAt:       v.CreatedAt,
		UpdatedAt:       v.UpdatedAt,
	}
}

func toExpenseList(vs []domain.ExpenseView) claimsdk.ExpenseList {
	out := claimsdk.ExpenseList{Expenses: make([]claimsdk.Expense, 0, len(vs)), Count: len(vs)}
	for _, v := range vs {
		out.Expenses = append(out.Expenses, toExpense(v))
	}
	return out
}

func toAnalytics(a domain.Analytics) claimsdk.Analytics {
	out := claimsdk.Analytics{
		TotalExpenses:  a.TotalExpenses,
		TotalAmount:    a.TotalAmount.StringFixed(2),
		CategoryTotals: make(map[string]string, len(a.CategoryTotals)),
		StatusTotals:   make(map[string]string, len(a.StatusTotals)),
		StatusCounts: claimsdk.StatusCounts{
			Pending:  a.StatusCounts.Pending,
			Approved: a.StatusCounts.Approved,
			Rejected: a.StatusCounts.Rejected,
		},
	}
	for k, v := range a.CategoryTotals {
		out.CategoryTotals[string(k)] = v.StringFixed(2)
	}
	for k, v := range a.StatusTotals {
		out.StatusTotals[string(k)] = v.StringFixed(2)
	}
	return out
}
