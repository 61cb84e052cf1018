package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func requestFrom(addr string, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/expenses", nil)
	req.RemoteAddr = addr
	if userID != "" {
		req = req.WithContext(httpx.WithPrincipal(req.Context(), httpx.Principal{UserID: userID, Role: "EMPLOYEE"}))
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.7:5121", want: "10.0.0.7"},
		{name: "remote addr without port", remote: "10.0.0.7", want: "10.0.0.7"},
		{
			name:    "first forwarded hop",
			remote:  "10.0.0.7:5121",
			headers: map[string]string{"X-Forwarded-For": " 198.51.100.4 , 10.0.0.1", "X-Real-IP": "198.51.100.9"},
			want:    "198.51.100.4",
		},
		{
			name:    "real ip",
			remote:  "10.0.0.7:5121",
			headers: map[string]string{"X-Real-IP": "198.51.100.9"},
			want:    "198.51.100.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom(tt.remote, "")
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, httpx.IPKeyExtractor(req))
		})
	}
}

func TestUserIDKeyExtractor(t *testing.T) {
	require.Empty(t, httpx.UserIDKeyExtractor(requestFrom("10.0.0.7:1", "")))
	require.Equal(t, "user:01JAPPROVER", httpx.UserIDKeyExtractor(requestFrom("10.0.0.7:1", "01JAPPROVER")))
}

func TestCompositeKeyExtractor(t *testing.T) {
	key := httpx.CompositeKeyExtractor("|", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)

	require.Equal(t, "user:u1|10.0.0.7", key(requestFrom("10.0.0.7:1", "u1")))
	require.Equal(t, "10.0.0.7", key(requestFrom("10.0.0.7:1", "")), "empty parts are skipped")

	none := httpx.CompositeKeyExtractor("|", httpx.UserIDKeyExtractor)
	require.Empty(t, none(requestFrom("10.0.0.7:1", "")))
}

func TestRateLimitMiddleware_BurstThenReject(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Hour, Burst: 3}
	h := httpx.RateLimitByIP(cfg)(okHandler)

	for i := range 3 {
		require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "")).Code, "request %d", i)
	}

	rec := serve(h, requestFrom("10.0.0.7:1", ""))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, time.Hour.String(), rec.Header().Get("X-RateLimit-Window"))

	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	require.Greater(t, retry, 0)
	require.LessOrEqual(t, retry, int((20 * time.Minute).Seconds()))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "rate_limit_exceeded", body["error"])
	require.NotEmpty(t, body["error_description"])
}

func TestRateLimitMiddleware_KeysAreIndependent(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	h := httpx.RateLimitByIP(cfg)(okHandler)

	require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, requestFrom("10.0.0.7:2", "")).Code)
	require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.8:1", "")).Code)
}

func TestRateLimitMiddleware_EmptyKeyIsExempt(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	h := httpx.RateLimitMiddleware(cfg, httpx.UserIDKeyExtractor)(okHandler)

	for range 5 {
		require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "")).Code)
	}
}

func TestRateLimitMiddleware_Refills(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 20, Window: time.Second, Burst: 1}
	h := httpx.RateLimitByIP(cfg)(okHandler)

	require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, requestFrom("10.0.0.7:1", "")).Code)

	require.Eventually(t, func() bool {
		return serve(h, requestFrom("10.0.0.7:1", "")).Code == http.StatusNoContent
	}, time.Second, 10*time.Millisecond)
}

func TestRateLimitByUser_SeparatesCallersOnSameAddress(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}
	h := httpx.RateLimitByUser(cfg)(okHandler)

	require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "alice")).Code)
	require.Equal(t, http.StatusTooManyRequests, serve(h, requestFrom("10.0.0.7:1", "alice")).Code)
	require.Equal(t, http.StatusNoContent, serve(h, requestFrom("10.0.0.7:1", "bob")).Code)
}

func TestRateLimitProfiles(t *testing.T) {
	profiles := []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit}
	for i, p := range profiles {
		require.Positive(t, p.RequestsPerWindow)
		require.Positive(t, p.Burst)
		require.Positive(t, p.Window)
		if i > 0 {
			require.Greater(t, p.RequestsPerWindow, profiles[i-1].RequestsPerWindow, "profiles loosen in order")
		}
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	tests := []struct {
		name string
		env  map[string]string
		want httpx.RateLimitConfig
	}{
		{name: "unset keeps default", want: def},
		{
			name: "all overridden",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "50",
				"RATELIMIT_TEST_WINDOW_SEC": "30",
				"RATELIMIT_TEST_BURST":      "7",
			},
			want: httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7},
		},
		{
			name: "partial",
			env:  map[string]string{"RATELIMIT_TEST_BURST": "2"},
			want: httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 2},
		},
		{
			name: "bad values ignored",
			env: map[string]string{
				"RATELIMIT_TEST_REQUESTS":   "lots",
				"RATELIMIT_TEST_WINDOW_SEC": "0",
				"RATELIMIT_TEST_BURST":      "-4",
			},
			want: def,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"RATELIMIT_TEST_REQUESTS", "RATELIMIT_TEST_WINDOW_SEC", "RATELIMIT_TEST_BURST"} {
				t.Setenv(k, tt.env[k])
			}
			require.Equal(t, tt.want, httpx.ParseRateLimitFromEnv("TEST", def))
		})
	}
}
