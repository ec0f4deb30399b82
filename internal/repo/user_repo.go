package repo

import (
	"context"

	dom "github.com/smowhabuth/SKBday/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo provides identity persistence. Access codes are unique
// (enforced by the DB index) and looked up byte-for-byte.
type UserRepo interface {
	GetByAccessCode(ctx context.Context, code string) (dom.User, error)
	GetByID(ctx context.Context, id int64) (dom.User, error)
	List(ctx context.Context) ([]dom.User, error)
	Create(ctx context.Context, name, code string) (dom.User, error)
	Upsert(ctx context.Context, name, code string) (dom.User, error)
}

// PGUserRepo implements UserRepo with Postgres.
type PGUserRepo struct {
	db *pgxpool.Pool
}

// NewPGUserRepo returns a new PGUserRepo.
func NewPGUserRepo(db *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: db}
}

// GetByAccessCode returns the user holding the exact access code.
func (r *PGUserRepo) GetByAccessCode(ctx context.Context, code string) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, access_code, name, is_admin, created_at FROM users WHERE access_code = $1`,
		code,
	).Scan(&u.ID, &u.AccessCode, &u.Name, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

// GetByID returns the user by primary key. Used to rehydrate sessions.
func (r *PGUserRepo) GetByID(ctx context.Context, id int64) (dom.User, error) {
	var u dom.User
	err := r.db.QueryRow(ctx,
		`SELECT id, access_code, name, is_admin, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.AccessCode, &u.Name, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

// List returns all users, oldest first.
func (r *PGUserRepo) List(ctx context.Context) ([]dom.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, access_code, name, is_admin, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.User
	for rows.Next() {
		var u dom.User
		if err := rows.Scan(&u.ID, &u.AccessCode, &u.Name, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Create inserts a new user and returns it. Duplicate access codes fail
// on the unique index.
func (r *PGUserRepo) Create(ctx context.Context, name, code string) (dom.User, error) {
	query := `
		INSERT INTO users (name, access_code)
		VALUES ($1, $2)
		RETURNING id, access_code, name, is_admin, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, name, code).Scan(
		&u.ID, &u.AccessCode, &u.Name, &u.IsAdmin, &u.CreatedAt,
	)
	return u, err
}

// Upsert creates the user for code, or overwrites the name if the code
// already exists. Idempotent by access code.
func (r *PGUserRepo) Upsert(ctx context.Context, name, code string) (dom.User, error) {
	query := `
		INSERT INTO users (name, access_code)
		VALUES ($1, $2)
		ON CONFLICT (access_code) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, access_code, name, is_admin, created_at`
	var u dom.User
	err := r.db.QueryRow(ctx, query, name, code).Scan(
		&u.ID, &u.AccessCode, &u.Name, &u.IsAdmin, &u.CreatedAt,
	)
	return u, err
}
