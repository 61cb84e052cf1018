package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/claims/pkg/jwtx"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClaims(issuer string) jwtx.Claims {
	return jwtx.NewAccessClaims("01JAAAAAAAAAAAAAAAAAAAAAAA", "first@example.com", issuer, time.Hour, time.Now())
}
