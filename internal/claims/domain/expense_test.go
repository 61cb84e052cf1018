package domain_test

import (
	"testing"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/stretchr/testify/require"
)

func TestStatusTerminal(t *testing.T) {
	require.False(t, domain.StatusPending.Terminal())
	require.True(t, domain.StatusApproved.Terminal())
	require.True(t, domain.StatusRejected.Terminal())
}
