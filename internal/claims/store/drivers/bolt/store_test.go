package bolt_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/internal/claims/store/drivers/bolt"
	"github.com/aussiebroadwan/claims/internal/claims/store/storetest"
	"github.com/stretchr/testify/require"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := bolt.NewStore(filepath.Join(t.TempDir(), "claims.bolt"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claims.bolt")

	s, err := bolt.NewStore(path)
	require.NoError(t, err)

	i := storetest.NewIdentity("persist@example.com", "EMPLOYEE", 0)
	require.NoError(t, s.Identities().CreateIdentity(t.Context(), i))
	require.NoError(t, s.Close())

	s, err = bolt.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Identities().GetIdentityByEmail(t.Context(), "persist@example.com")
	require.NoError(t, err)
	require.Equal(t, i.ID, got.ID)
}
