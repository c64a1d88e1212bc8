package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxUserRepository{
		pool: pool,
	}
}

const selectUser = `
	SELECT
		u.id,
		u.email,
		u.password_hash,
		u.display_name,
		u.role,
		u.created_at,
		u.last_login_at,
		u.is_active
	FROM public.users u
`

func scanUser(row pgx.Row, extra ...any) (*User, error) {
	var u User
	dest := []any{
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.Role,
		&u.CreatedAt,
		&u.LastLoginAt,
		&u.IsActive,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *pgxUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, selectUser+" WHERE u.email = $1", email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByEmail query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, selectUser+" WHERE u.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID query failed: %w", err)
	}
	return u, nil
}

func (r *pgxUserRepository) Create(ctx context.Context, u *User) error {
	const query = `
		INSERT INTO public.users (email, password_hash, display_name, role, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		u.Email,
		u.PasswordHash,
		u.DisplayName,
		u.Role,
		u.IsActive,
	).Scan(&u.ID, &u.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("create user failed: %w", err)
	}

	return nil
}

func (r *pgxUserRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	ct, err := r.pool.Exec(ctx, `UPDATE public.users SET last_login_at = $1 WHERE id = $2`, t, id)
	if err != nil {
		return fmt.Errorf("UpdateLastLogin failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *pgxUserRepository) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	q := psql.Select(
		"u.id", "u.email", "u.password_hash", "u.display_name", "u.role",
		"u.created_at", "u.last_login_at", "u.is_active", "count(*) OVER() AS total_count",
	).From("public.users u")

	if filter.Email != "" {
		q = q.Where("u.email ILIKE ?", "%"+filter.Email+"%")
	}
	if filter.DisplayName != "" {
		q = q.Where("u.display_name ILIKE ?", "%"+filter.DisplayName+"%")
	}
	if filter.Role != "" {
		q = q.Where(squirrel.Eq{"u.role": filter.Role})
	}
	if filter.IsActive != nil {
		q = q.Where(squirrel.Eq{"u.is_active": *filter.IsActive})
	}

	// Sorting
	orderBy := "u.created_at"
	switch filter.SortBy {
	case "email":
		orderBy = "u.email"
	case "display_name":
		orderBy = "u.display_name"
	}
	orderDir := "DESC"
	if filter.SortOrder == "ASC" {
		orderDir = "ASC"
	}
	q = q.OrderBy(orderBy + " " + orderDir)

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	q = q.Limit(uint64(filter.PageSize)).Offset(uint64((filter.Page - 1) * filter.PageSize))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	defer rows.Close()

	var users []*User
	var total int
	for rows.Next() {
		u, err := scanUser(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user failed: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users failed: %w", err)
	}

	return users, total, nil
}

func (r *pgxUserRepository) Update(ctx context.Context, u *User) error {
	const query = `
		UPDATE public.users
		SET display_name = $1, is_active = $2, role = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, u.DisplayName, u.IsActive, u.Role, u.ID)
	if err != nil {
		return fmt.Errorf("update user failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete deactivates the account. Reservations and payments keep referencing it.
func (r *pgxUserRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `UPDATE public.users SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
