package claims_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/claims/pkg/claimsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLogin verifies login is limited to 5 requests per minute per IP.
func TestRateLimitLogin(t *testing.T) {
	baseURL := setupClaimsContainer(t, "sqlite", false)
	client := claimsdk.NewClient(baseURL)

	var lastErr error
	for i := range 6 {
		_, err := client.Login(t.Context(), "nobody@example.com", "wrong password")
		if i < 5 {
			require.ErrorIs(t, err, claimsdk.ErrInvalidCredentials, "request %d", i+1)
			continue
		}
		lastErr = err
	}

	var apiErr *claimsdk.APIError
	require.True(t, errors.As(lastErr, &apiErr), "got %v", lastErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	require.Equal(t, claimsdk.ErrorCodeRateLimited, apiErr.Code)
}
