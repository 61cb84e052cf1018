package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
	"go.etcd.io/bbolt"
)

type identitiesRepo struct {
	run runner
}

func getIdentity(tx *bbolt.Tx, id string) (identityRecord, error) {
	b, err := bucket(tx, bucketIdentities)
	if err != nil {
		return identityRecord{}, err
	}
	data := b.Get([]byte(id))
	if data == nil {
		return identityRecord{}, store.ErrNotFound
	}
	var rec identityRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return identityRecord{}, fmt.Errorf("unmarshaling identity: %w", err)
	}
	return rec, nil
}

func putIdentity(tx *bbolt.Tx, rec identityRecord) error {
	b, err := bucket(tx, bucketIdentities)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling identity: %w", err)
	}
	return b.Put([]byte(rec.ID), data)
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	var rec identityRecord
	err := r.run.view(ctx, func(tx *bbolt.Tx) error {
		var err error
		rec, err = getIdentity(tx, id)
		return err
	})
	if err != nil {
		return domain.Identity{}, err
	}
	return rec.domain(), nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	var rec identityRecord
	err := r.run.view(ctx, func(tx *bbolt.Tx) error {
		emails, err := bucket(tx, bucketIdentityEmails)
		if err != nil {
			return err
		}
		id := emails.Get([]byte(email))
		if id == nil {
			return store.ErrNotFound
		}
		rec, err = getIdentity(tx, string(id))
		return err
	})
	if err != nil {
		return domain.Identity{}, err
	}
	return rec.domain(), nil
}

// CreateIdentity claims the email index entry and the id key in the same
// write transaction, so concurrent registrations see exactly one winner.
func (r *identitiesRepo) CreateIdentity(ctx context.Context, i domain.Identity) error {
	return r.run.update(ctx, func(tx *bbolt.Tx) error {
		emails, err := bucket(tx, bucketIdentityEmails)
		if err != nil {
			return err
		}
		if emails.Get([]byte(i.Email)) != nil {
			return store.ErrAlreadyExists
		}
		if _, err := getIdentity(tx, i.ID); err == nil {
			return store.ErrAlreadyExists
		}

		if err := putIdentity(tx, toIdentityRecord(i)); err != nil {
			return err
		}
		return emails.Put([]byte(i.Email), []byte(i.ID))
	})
}

func (r *identitiesRepo) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	out := make([]domain.Identity, 0)
	err := r.run.view(ctx, func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketIdentities)
		if err != nil {
			return err
		}
		return b.ForEach(func(_, v []byte) error {
			var rec identityRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return fmt.Errorf("unmarshaling identity: %w", err)
			}
			out = append(out, rec.domain())
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b domain.Identity) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return out, nil
}

func (r *identitiesRepo) SetIdentityActive(ctx context.Context, id string, active bool, at time.Time) error {
	return r.run.update(ctx, func(tx *bbolt.Tx) error {
		rec, err := getIdentity(tx, id)
		if err != nil {
			return err
		}
		rec.Active = active
		rec.UpdatedAt = at.UTC()
		return putIdentity(tx, rec)
	})
}

// newestFirst orders by creation time descending with the id as tie breaker.
func newestFirst(ta, tb time.Time, ida, idb string) int {
	if c := tb.Compare(ta); c != 0 {
		return c
	}
	switch {
	case ida > idb:
		return -1
	case ida < idb:
		return 1
	}
	return 0
}
