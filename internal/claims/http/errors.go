package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// writeServiceError maps service errors onto API errors. Anything unknown is
// logged and hidden behind server_error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		(&claimsdk.ValidationError{Message: "request validation failed", Details: verr.Fields}).WriteError(w)
		return
	}

	switch {
	case errors.Is(err, service.ErrDuplicateIdentity):
		claimsdk.ErrDuplicateIdentity.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		claimsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInactiveAccount):
		claimsdk.ErrInactiveAccount.WriteError(w)
	case errors.Is(err, service.ErrTokenInvalid), errors.Is(err, service.ErrIdentityNotFound):
		claimsdk.ErrInvalidToken.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		claimsdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrNotFound):
		claimsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidTransition):
		claimsdk.ErrInvalidTransition.WithDescription(err.Error()).WriteError(w)
	case errors.Is(err, service.ErrMissingReason):
		claimsdk.ErrMissingReason.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		claimsdk.ErrServerError.WriteError(w)
	}
}

// writeBadRequest reports a body or query that could not be decoded at all.
func writeBadRequest(w http.ResponseWriter, err error) {
	claimsdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
}
