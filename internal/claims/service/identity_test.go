package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRegisterThenAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, tok, err := f.identity.Register(ctx, RegisterInput{
		Email:     " ada@example.com ",
		Password:  "correct horse",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.Equal(t, "ada@example.com", p.Email)
	require.Equal(t, domain.RoleEmployee, p.Role, "role defaults to employee")
	require.True(t, p.Active)

	again, tok2, err := f.identity.Authenticate(ctx, "ada@example.com", "correct horse")
	require.NoError(t, err)
	require.Equal(t, p.ID, again.ID)
	require.NotEmpty(t, tok2.Token)
	require.WithinDuration(t, time.Now().Add(time.Hour), tok2.ExpiresAt, time.Minute)
}

func TestRegister_Argon2id(t *testing.T) {
	f := newFixture(t)
	f.identity.Hasher = &cryptox.Argon2id{}
	ctx := context.Background()

	_, _, err := f.identity.Register(ctx, RegisterInput{
		Email: "real@example.com", Password: "hunter22!", FirstName: "R", LastName: "H",
	})
	require.NoError(t, err)

	stored, err := f.store.Identities().GetIdentityByEmail(ctx, "real@example.com")
	require.NoError(t, err)
	require.Contains(t, stored.PasswordHash, "$argon2id$")

	_, _, err = f.identity.Authenticate(ctx, "real@example.com", "hunter22!")
	require.NoError(t, err)
	_, _, err = f.identity.Authenticate(ctx, "real@example.com", "hunter23!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = f.identity.Authenticate(ctx, "nobody@example.com", "hunter22!")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture(t)
	f.register(t, "dup@example.com", domain.RoleEmployee)

	_, _, err := f.identity.Register(context.Background(), RegisterInput{
		Email: "dup@example.com", Password: "another pass", FirstName: "X", LastName: "Y",
	})
	require.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestRegister_ConcurrentDuplicate(t *testing.T) {
	f := newFixture(t)
	const n = 6

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := f.identity.Register(context.Background(), RegisterInput{
				Email: "race@example.com", Password: "password1", FirstName: "R", LastName: "C",
			})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		require.ErrorIs(t, err, ErrDuplicateIdentity)
	}
	require.Equal(t, 1, wins)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name  string
		in    RegisterInput
		field string
	}{
		{"bad email", RegisterInput{Email: "nope", Password: "password1", FirstName: "A", LastName: "B"}, "email"},
		{"short password", RegisterInput{Email: "a@b.io", Password: "short", FirstName: "A", LastName: "B"}, "password"},
		{"missing first name", RegisterInput{Email: "a@b.io", Password: "password1", LastName: "B"}, "first_name"},
		{"unknown role", RegisterInput{Email: "a@b.io", Password: "password1", FirstName: "A", LastName: "B", Role: "ROOT"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := f.identity.Register(context.Background(), tt.in)
			require.Contains(t, fieldsOf(t, err), tt.field)
		})
	}

	all, err := f.store.Identities().ListIdentities(context.Background())
	require.NoError(t, err)
	require.Empty(t, all, "nothing written on validation failure")
}

func TestAuthenticate_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "admin@example.com", domain.RoleAdmin)
	emp := f.register(t, "emp@example.com", domain.RoleEmployee)

	_, _, err := f.identity.Authenticate(ctx, "missing@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.identity.Authenticate(ctx, "emp@example.com", "wrong horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.identity.Authenticate(ctx, "EMP@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInvalidCredentials, "email equality is case-sensitive")

	_, err = f.identity.SetActive(ctx, admin, emp.ID, false)
	require.NoError(t, err)

	_, _, err = f.identity.Authenticate(ctx, "emp@example.com", "correct horse")
	require.ErrorIs(t, err, ErrInactiveAccount)

	// A wrong password on an inactive account must not reveal its state
	_, _, err = f.identity.Authenticate(ctx, "emp@example.com", "wrong horse")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResolveToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "admin@example.com", domain.RoleAdmin)
	_, tok, err := f.identity.Register(ctx, RegisterInput{
		Email: "emp@example.com", Password: "correct horse", FirstName: "E", LastName: "M",
	})
	require.NoError(t, err)

	caller, err := f.identity.ResolveToken(ctx, tok.Token)
	require.NoError(t, err)
	require.Equal(t, domain.RoleEmployee, caller.Role)
	require.Equal(t, "emp@example.com", caller.Email)

	for _, raw := range []string{"", "garbage", tok.Token + "x"} {
		_, err = f.identity.ResolveToken(ctx, raw)
		require.ErrorIs(t, err, ErrTokenInvalid)
	}

	_, err = f.identity.SetActive(ctx, admin, caller.ID, false)
	require.NoError(t, err)
	_, err = f.identity.ResolveToken(ctx, tok.Token)
	require.ErrorIs(t, err, ErrIdentityNotFound, "deactivation applies on the next request")

	_, err = f.identity.SetActive(ctx, admin, caller.ID, true)
	require.NoError(t, err)
	_, err = f.identity.ResolveToken(ctx, tok.Token)
	require.NoError(t, err)
}

func TestResolveToken_Expired(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	caller := f.register(t, "old@example.com", domain.RoleEmployee)
	identity, err := f.store.Identities().GetIdentityByID(ctx, caller.ID)
	require.NoError(t, err)

	tok, err := f.tokens.Issue(identity, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = f.identity.ResolveToken(ctx, tok.Token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResolveToken_UnknownSubject(t *testing.T) {
	f := newFixture(t)

	tok, err := f.tokens.Issue(domain.Identity{ID: "01HZZZZZZZZZZZZZZZZZZZZZZZ", Email: "ghost@example.com"}, time.Now())
	require.NoError(t, err)

	_, err = f.identity.ResolveToken(context.Background(), tok.Token)
	require.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestListIdentities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "admin@example.com", domain.RoleAdmin)
	emp := f.register(t, "emp@example.com", domain.RoleEmployee)

	_, err := f.identity.ListIdentities(ctx, emp)
	require.ErrorIs(t, err, ErrForbidden)

	all, err := f.identity.ListIdentities(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, emp.ID, all[0].ID, "newest first")
	require.Equal(t, admin.ID, all[1].ID)
}

func TestSetActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin := f.register(t, "admin@example.com", domain.RoleAdmin)
	emp := f.register(t, "emp@example.com", domain.RoleEmployee)

	_, err := f.identity.SetActive(ctx, emp, admin.ID, false)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = f.identity.SetActive(ctx, admin, admin.ID, false)
	require.Contains(t, fieldsOf(t, err), "id")

	_, err = f.identity.SetActive(ctx, admin, "01HZZZZZZZZZZZZZZZZZZZZZZZ", false)
	require.ErrorIs(t, err, ErrNotFound)

	p, err := f.identity.SetActive(ctx, admin, emp.ID, false)
	require.NoError(t, err)
	require.False(t, p.Active)

	me, err := f.identity.Profile(ctx, admin)
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", me.Email)
}
