package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/claims/internal/claims/domain"
	"github.com/aussiebroadwan/claims/internal/claims/store"
)

const identityColumns = `id, email, password_hash, first_name, last_name, role, active, created_at, updated_at`

type identitiesRepo struct {
	db dbtx
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIdentity(row scanner) (domain.Identity, error) {
	var (
		i                    domain.Identity
		role                 string
		createdAt, updatedAt string
	)
	err := row.Scan(
		&i.ID, &i.Email, &i.PasswordHash, &i.FirstName, &i.LastName,
		&role, &i.Active, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.Identity{}, err
	}
	i.Role = domain.Role(role)
	if i.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Identity{}, err
	}
	if i.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Identity{}, err
	}
	return i, nil
}

func (r *identitiesRepo) GetIdentityByID(ctx context.Context, id string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE id = ?`, id)
	i, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return i, nil
}

func (r *identitiesRepo) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+identityColumns+` FROM identities WHERE email = ?`, email)
	i, err := scanIdentity(row)
	if err != nil {
		return domain.Identity{}, mapNotFound(err)
	}
	return i, nil
}

func (r *identitiesRepo) CreateIdentity(ctx context.Context, i domain.Identity) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identities (`+identityColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.Email, i.PasswordHash, i.FirstName, i.LastName,
		string(i.Role), i.Active, formatTime(i.CreatedAt), formatTime(i.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *identitiesRepo) ListIdentities(ctx context.Context) ([]domain.Identity, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+identityColumns+` FROM identities ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Identity, 0)
	for rows.Next() {
		i, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *identitiesRepo) SetIdentityActive(ctx context.Context, id string, active bool, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE identities SET active = ?, updated_at = ? WHERE id = ?`,
		active, formatTime(at), id,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
