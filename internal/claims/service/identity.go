package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/policy"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"github.com/aussiebroadwan/claims/pkg/idx"
	"github.com/aussiebroadwan/claims/pkg/slogx"
)

// PasswordHasher is satisfied by cryptox.Argon2id.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) error

	// VerifyDummy spends the cost of a verification without a stored hash.
	VerifyDummy(password string)
}

type IdentityService struct {
	Store  store.Store
	Tokens *TokenService
	Hasher PasswordHasher

	// Now defaults to time.Now in UTC.
	Now func() time.Time
}

func (s *IdentityService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register creates a new active identity and issues its first token.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (domain.Profile, domain.AccessToken, error) {
	l := slogx.FromContext(ctx)

	in = in.normalize()
	if err := asValidationError(in.Validate()); err != nil {
		return domain.Profile{}, domain.AccessToken{}, err
	}

	role := domain.RoleEmployee
	if in.Role != "" {
		role = domain.Role(in.Role)
	}

	_, err := s.Store.Identities().GetIdentityByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return domain.Profile{}, domain.AccessToken{}, ErrDuplicateIdentity
	case !errors.Is(err, store.ErrNotFound):
		return domain.Profile{}, domain.AccessToken{}, fmt.Errorf("lookup identity: %w", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return domain.Profile{}, domain.AccessToken{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	identity := domain.Identity{
		ID:           idx.NewAt(now).String(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The unique email key settles races the lookup above cannot see
	if err := s.Store.Identities().CreateIdentity(ctx, identity); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Profile{}, domain.AccessToken{}, ErrDuplicateIdentity
		}
		return domain.Profile{}, domain.AccessToken{}, fmt.Errorf("create identity: %w", err)
	}

	token, err := s.Tokens.Issue(identity, now)
	if err != nil {
		return domain.Profile{}, domain.AccessToken{}, err
	}

	l.Info("identity registered",
		slog.String("identity_id", identity.ID),
		slog.String("role", string(role)),
	)
	return identity.Profile(), token, nil
}

// Authenticate checks credentials and issues a token. Unknown emails and
// wrong passwords are indistinguishable; an inactive account is only
// reported once the password has been proven.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (domain.Profile, domain.AccessToken, error) {
	l := slogx.FromContext(ctx)
	email = strings.TrimSpace(email)

	identity, err := s.Store.Identities().GetIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.Hasher.VerifyDummy(password)
			return domain.Profile{}, domain.AccessToken{}, ErrInvalidCredentials
		}
		return domain.Profile{}, domain.AccessToken{}, fmt.Errorf("lookup identity: %w", err)
	}

	if err := s.Hasher.Verify(password, identity.PasswordHash); err != nil {
		l.Debug("password mismatch", slog.String("identity_id", identity.ID))
		return domain.Profile{}, domain.AccessToken{}, ErrInvalidCredentials
	}

	if !identity.Active {
		l.Info("login refused for inactive identity", slog.String("identity_id", identity.ID))
		return domain.Profile{}, domain.AccessToken{}, ErrInactiveAccount
	}

	token, err := s.Tokens.Issue(identity, s.now())
	if err != nil {
		return domain.Profile{}, domain.AccessToken{}, err
	}
	return identity.Profile(), token, nil
}

// ResolveToken verifies a bearer token and loads the current identity behind
// it. Role and active state always come from the store, never the token.
func (s *IdentityService) ResolveToken(ctx context.Context, raw string) (domain.Caller, error) {
	claims, err := s.Tokens.Verify(raw)
	if err != nil {
		return domain.Caller{}, err
	}

	identity, err := s.Store.Identities().GetIdentityByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Caller{}, ErrIdentityNotFound
		}
		return domain.Caller{}, fmt.Errorf("lookup identity: %w", err)
	}
	if !identity.Active {
		return domain.Caller{}, ErrIdentityNotFound
	}

	return identity.Caller(), nil
}

// Profile returns the caller's own public profile.
func (s *IdentityService) Profile(ctx context.Context, caller domain.Caller) (domain.Profile, error) {
	identity, err := s.Store.Identities().GetIdentityByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrIdentityNotFound
		}
		return domain.Profile{}, err
	}
	return identity.Profile(), nil
}

// ListIdentities returns every identity, newest first.
func (s *IdentityService) ListIdentities(ctx context.Context, caller domain.Caller) ([]domain.Profile, error) {
	if _, err := policy.Scope(caller, policy.ActionListIdentities); err != nil {
		return nil, err
	}

	identities, err := s.Store.Identities().ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}

	out := make([]domain.Profile, 0, len(identities))
	for _, i := range identities {
		out = append(out, i.Profile())
	}
	return out, nil
}

// SetActive enables or disables an identity. Tokens already issued to a
// disabled identity stop resolving on their next use.
func (s *IdentityService) SetActive(ctx context.Context, caller domain.Caller, id string, active bool) (domain.Profile, error) {
	if _, err := policy.Scope(caller, policy.ActionManageIdentities); err != nil {
		return domain.Profile{}, err
	}
	if !active && id == caller.ID {
		return domain.Profile{}, invalidField("id", "cannot deactivate your own identity")
	}

	var updated domain.Identity
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Identities().SetIdentityActive(ctx, id, active, s.now()); err != nil {
			return err
		}
		var err error
		updated, err = tx.Identities().GetIdentityByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Profile{}, ErrNotFound
		}
		return domain.Profile{}, fmt.Errorf("set identity active: %w", err)
	}

	slogx.FromContext(ctx).Info("identity active flag changed",
		slog.String("identity_id", id),
		slog.Bool("active", active),
		slog.String("by", caller.ID),
	)
	return updated.Profile(), nil
}
