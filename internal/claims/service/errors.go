package service

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aussiebroadwan/claims/internal/claims/policy"
	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	ErrDuplicateIdentity  = errors.New("duplicate_identity")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInactiveAccount    = errors.New("inactive_account")
	ErrTokenInvalid       = errors.New("invalid_token")
	ErrIdentityNotFound   = errors.New("identity_not_found")
	ErrForbidden          = policy.ErrForbidden
	ErrNotFound           = errors.New("not_found")
	ErrInvalidTransition  = errors.New("invalid_transition")
	ErrMissingReason      = errors.New("missing_reason")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation_error")
)

// ValidationError reports malformed input, keyed by the offending field's
// wire name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation_error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// asValidationError converts ozzo-validation output into a ValidationError.
// Internal rule failures pass through untouched.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}

	fields := make(map[string]string, len(errs))
	for field, fieldErr := range errs {
		if fieldErr != nil {
			fields[field] = fieldErr.Error()
		}
	}
	return &ValidationError{Fields: fields}
}
