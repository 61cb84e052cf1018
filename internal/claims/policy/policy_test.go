package policy_test

import (
	"testing"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/policy"
	"github.com/stretchr/testify/require"
)

var (
	employee = domain.Caller{ID: "emp-1", Email: "e@x.io", Role: domain.RoleEmployee}
	admin    = domain.Caller{ID: "adm-1", Email: "a@x.io", Role: domain.RoleAdmin}
)

func TestEffectFor(t *testing.T) {
	tests := []struct {
		action   policy.Action
		employee policy.Effect
		admin    policy.Effect
	}{
		{policy.ActionCreateExpense, policy.AllowOwn, policy.AllowOwn},
		{policy.ActionReadExpense, policy.AllowOwn, policy.Allow},
		{policy.ActionListExpenses, policy.AllowOwn, policy.Allow},
		{policy.ActionTransitionExpense, policy.Deny, policy.Allow},
		{policy.ActionListIdentities, policy.Deny, policy.Allow},
		{policy.ActionViewPendingQueue, policy.Deny, policy.Allow},
		{policy.ActionViewAnalytics, policy.AllowOwn, policy.Allow},
		{policy.ActionManageIdentities, policy.Deny, policy.Allow},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			require.Equal(t, tt.employee, policy.EffectFor(domain.RoleEmployee, tt.action))
			require.Equal(t, tt.admin, policy.EffectFor(domain.RoleAdmin, tt.action))
		})
	}
}

func TestEffectFor_UnknownDenies(t *testing.T) {
	require.Equal(t, policy.Deny, policy.EffectFor("AUDITOR", policy.ActionReadExpense))
	require.Equal(t, policy.Deny, policy.EffectFor(domain.RoleAdmin, "expense:delete"))
	require.Equal(t, "deny", policy.Deny.String())
}

func TestAuthorize(t *testing.T) {
	// Employees only touch their own records
	require.NoError(t, policy.Authorize(employee, policy.ActionReadExpense, employee.ID))
	require.ErrorIs(t, policy.Authorize(employee, policy.ActionReadExpense, "someone-else"), policy.ErrForbidden)
	require.ErrorIs(t, policy.Authorize(employee, policy.ActionTransitionExpense, employee.ID), policy.ErrForbidden)

	// Admins are never forbidden from reading or deciding
	require.NoError(t, policy.Authorize(admin, policy.ActionReadExpense, employee.ID))
	require.NoError(t, policy.Authorize(admin, policy.ActionTransitionExpense, employee.ID))

	// Creating is always as self
	require.NoError(t, policy.Authorize(admin, policy.ActionCreateExpense, admin.ID))
	require.ErrorIs(t, policy.Authorize(admin, policy.ActionCreateExpense, employee.ID), policy.ErrForbidden)
}

func TestAuthorize_EmptyCallerID(t *testing.T) {
	anon := domain.Caller{Role: domain.RoleEmployee}
	require.ErrorIs(t, policy.Authorize(anon, policy.ActionReadExpense, ""), policy.ErrForbidden)
}

func TestScope(t *testing.T) {
	owner, err := policy.Scope(employee, policy.ActionListExpenses)
	require.NoError(t, err)
	require.Equal(t, employee.ID, owner)

	owner, err = policy.Scope(admin, policy.ActionListExpenses)
	require.NoError(t, err)
	require.Empty(t, owner)

	owner, err = policy.Scope(employee, policy.ActionViewAnalytics)
	require.NoError(t, err)
	require.Equal(t, employee.ID, owner)

	_, err = policy.Scope(employee, policy.ActionViewPendingQueue)
	require.ErrorIs(t, err, policy.ErrForbidden)

	_, err = policy.Scope(domain.Caller{ID: "x", Role: "GUEST"}, policy.ActionListExpenses)
	require.ErrorIs(t, err, policy.ErrForbidden)
}
