package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/internal/claims/store/drivers/sqlite"
	"github.com/aussiebroadwan/claims/pkg/jwtx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testIssuer = "claims-test"

// plainHasher keeps tests fast; argon2id is covered in cryptox and once below.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "plain:" + pw, nil }
func (plainHasher) VerifyDummy(string)             {}

func (plainHasher) Verify(pw, hash string) error {
	if hash != "plain:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type fixture struct {
	store     store.Store
	tokens    *TokenService
	identity  *IdentityService
	expenses  *ExpenseService
	analytics *AnalyticsService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	km, err := jwtx.NewEphemeralKeyManager(jwtx.KeyManagerOptions{Issuer: testIssuer, NumKeys: 2})
	require.NoError(t, err)

	tokens := &TokenService{KeyManager: km, Issuer: testIssuer, TTL: time.Hour}
	return &fixture{
		store:     s,
		tokens:    tokens,
		identity:  &IdentityService{Store: s, Tokens: tokens, Hasher: plainHasher{}},
		expenses:  &ExpenseService{Store: s},
		analytics: &AnalyticsService{Store: s},
	}
}

func (f *fixture) register(t *testing.T, email string, role domain.Role) domain.Caller {
	t.Helper()

	p, tok, err := f.identity.Register(context.Background(), RegisterInput{
		Email:     email,
		Password:  "correct horse",
		FirstName: "Test",
		LastName:  "User",
		Role:      string(role),
	})
	require.NoError(t, err)

	caller, err := f.identity.ResolveToken(context.Background(), tok.Token)
	require.NoError(t, err)
	require.Equal(t, p.ID, caller.ID)
	return caller
}

func (f *fixture) submit(t *testing.T, caller domain.Caller, amount string, cat domain.Category, date string) domain.ExpenseView {
	t.Helper()

	v, err := f.expenses.Create(context.Background(), caller, CreateExpenseInput{
		Amount:      decimal.RequireFromString(amount),
		Category:    string(cat),
		Description: "lunch",
		ExpenseDate: date,
	})
	require.NoError(t, err)
	return v
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.ErrorIs(t, err, ErrValidation)
	return verr.Fields
}
