// Package bolt is an embedded key/value store driver built on bbolt. Records
// are JSON encoded and keyed by their ULID, with a secondary bucket mapping
// emails to identity ids.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/store"
	"go.etcd.io/bbolt"
)

var (
	bucketIdentities     = []byte("identities")
	bucketIdentityEmails = []byte("identities_by_email")
	bucketExpenses       = []byte("expenses")
)

var errMissingBucket = errors.New("bolt: bucket missing, run migrations")

type Store struct {
	db *bbolt.DB
}

// NewStore opens (creating if needed) the database file at path.
func NewStore(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return s, nil
}

// ApplyMigrations creates any missing buckets.
func (s *Store) ApplyMigrations() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketIdentities, bucketIdentityEmails, bucketExpenses} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketIdentities) == nil {
			return errMissingBucket
		}
		return nil
	})
}

// Tx starts a read/write transaction. bbolt allows a single writer, so other
// writers block until Commit or Rollback.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, err := s.db.Begin(true)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Identities() store.Identities { return &identitiesRepo{run: runner{db: s.db}} }
func (s *Store) Expenses() store.Expenses     { return &expensesRepo{run: runner{db: s.db}} }

type txStore struct {
	tx *bbolt.Tx
}

func (t *txStore) Commit() error { return t.tx.Commit() }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback()
	if errors.Is(err, bbolt.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, bbolt.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return bbolt.ErrTxClosed
}

func (t *txStore) Identities() store.Identities { return &identitiesRepo{run: runner{tx: t.tx}} }
func (t *txStore) Expenses() store.Expenses     { return &expensesRepo{run: runner{tx: t.tx}} }

// runner executes against an open transaction when there is one, otherwise
// it opens its own.
type runner struct {
	db *bbolt.DB
	tx *bbolt.Tx
}

func (r runner) view(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.View(fn)
}

func (r runner) update(ctx context.Context, fn func(tx *bbolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.db.Update(fn)
}

func bucket(tx *bbolt.Tx, name []byte) (*bbolt.Bucket, error) {
	b := tx.Bucket(name)
	if b == nil {
		return nil, errMissingBucket
	}
	return b, nil
}
