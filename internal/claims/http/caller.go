package http

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/service"
	"github.com/aussiebroadwan/claims/pkg/httpx"
)

// identityResolver resolves bearer tokens through the identity service on
// every request.
type identityResolver struct {
	identities *service.IdentityService
}

func (r identityResolver) ResolvePrincipal(ctx context.Context, token string) (httpx.Principal, error) {
	caller, err := r.identities.ResolveToken(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalid) || errors.Is(err, service.ErrIdentityNotFound) {
			return httpx.Principal{}, fmt.Errorf("%w: %v", httpx.ErrUnauthenticated, err)
		}
		return httpx.Principal{}, err
	}
	return httpx.Principal{UserID: caller.ID, Email: caller.Email, Role: string(caller.Role)}, nil
}

// callerFrom returns the caller attached by the authn middleware.
func callerFrom(ctx context.Context) (domain.Caller, bool) {
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		return domain.Caller{}, false
	}
	return domain.Caller{ID: p.UserID, Email: p.Email, Role: domain.Role(p.Role)}, true
}
