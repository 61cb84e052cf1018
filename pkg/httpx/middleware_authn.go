package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// ErrUnauthenticated marks resolver errors caused by the token itself. Any
// other resolver error is treated as a server fault.
var ErrUnauthenticated = errors.New("unauthenticated")

// TokenResolver turns a raw bearer token into the caller it belongs to. Errors
// wrapping ErrUnauthenticated are reported as a generic invalid_token.
type TokenResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (Principal, error)
}

// TokenResolverFunc adapts a function to TokenResolver.
type TokenResolverFunc func(ctx context.Context, token string) (Principal, error)

func (f TokenResolverFunc) ResolvePrincipal(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// AuthnMiddleware requires a valid bearer token on every request and attaches
// the resolved Principal to the request context.
func AuthnMiddleware(resolver TokenResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			p, err := resolver.ResolvePrincipal(ctx, raw)
			if errors.Is(err, ErrUnauthenticated) {
				log.Warn("bearer token rejected", "err", err)
				writeBearerError(w, "token is invalid or expired")
				return
			}
			if err != nil {
				log.Error("failed to resolve bearer token", "err", err)
				WriteJSON(w, http.StatusInternalServerError, map[string]string{
					"error":             "server_error",
					"error_description": "internal server error",
				})
				return
			}

			ctx = slogx.With(WithPrincipal(ctx, p), "user_id", p.UserID, "role", p.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(authz, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": desc,
	})
}
