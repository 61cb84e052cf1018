// Package policy decides what a caller may do. Every rule lives in a single
// table keyed by action and role; there are no role checks anywhere else.
package policy

import (
	"errors"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
)

// ErrForbidden is returned when the caller's role does not permit an action.
var ErrForbidden = errors.New("forbidden")

type Action string

const (
	ActionCreateExpense     Action = "expense:create"
	ActionReadExpense       Action = "expense:read"
	ActionListExpenses      Action = "expense:list"
	ActionTransitionExpense Action = "expense:transition"
	ActionViewPendingQueue  Action = "expense:pending"
	ActionViewAnalytics     Action = "analytics:view"
	ActionListIdentities    Action = "identity:list"
	ActionManageIdentities  Action = "identity:manage"
)

// Effect is the outcome of a rule lookup.
type Effect int

const (
	// Deny is the zero value, so anything missing from the table denies.
	Deny Effect = iota
	// AllowOwn permits the action only on records owned by the caller.
	AllowOwn
	Allow
)

func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case AllowOwn:
		return "allow_own"
	default:
		return "deny"
	}
}

var rules = map[Action]map[domain.Role]Effect{
	ActionCreateExpense: {
		domain.RoleEmployee: AllowOwn,
		domain.RoleAdmin:    AllowOwn,
	},
	ActionReadExpense: {
		domain.RoleEmployee: AllowOwn,
		domain.RoleAdmin:    Allow,
	},
	ActionListExpenses: {
		domain.RoleEmployee: AllowOwn,
		domain.RoleAdmin:    Allow,
	},
	ActionTransitionExpense: {
		domain.RoleAdmin: Allow,
	},
	ActionViewPendingQueue: {
		domain.RoleAdmin: Allow,
	},
	ActionViewAnalytics: {
		domain.RoleEmployee: AllowOwn,
		domain.RoleAdmin:    Allow,
	},
	ActionListIdentities: {
		domain.RoleAdmin: Allow,
	},
	ActionManageIdentities: {
		domain.RoleAdmin: Allow,
	},
}

// EffectFor looks up the rule for role and action.
func EffectFor(role domain.Role, action Action) Effect {
	return rules[action][role]
}

// Authorize checks whether caller may perform action on a record owned by
// ownerID. Pass the caller's own id for actions that create records.
func Authorize(caller domain.Caller, action Action, ownerID string) error {
	switch EffectFor(caller.Role, action) {
	case Allow:
		return nil
	case AllowOwn:
		if caller.ID != "" && caller.ID == ownerID {
			return nil
		}
	}
	return ErrForbidden
}

// Scope resolves the owner restriction for list-type actions. An empty owner
// id means the caller sees every record.
func Scope(caller domain.Caller, action Action) (string, error) {
	switch EffectFor(caller.Role, action) {
	case Allow:
		return "", nil
	case AllowOwn:
		if caller.ID == "" {
			return "", ErrForbidden
		}
		return caller.ID, nil
	default:
		return "", ErrForbidden
	}
}
