package guest

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, guest *Guest) error
	GetByID(ctx context.Context, id string) (*Guest, error)
	List(ctx context.Context, filter Filter) ([]*Guest, int, error)
	Update(ctx context.Context, guest *Guest) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectGuests(extra ...string) squirrel.SelectBuilder {
	cols := []string{
		"id", "first_name", "last_name", "email", "phone", "identification_type",
		"identification_number", "country", "city", "address", "birth_date", "notes",
		"is_vip", "created_at", "updated_at",
	}
	return psql.Select(append(cols, extra...)...).From("public.guests")
}

func scanGuest(row pgx.Row, extra ...any) (*Guest, error) {
	var g Guest
	dest := []any{
		&g.ID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.IdentificationType,
		&g.IdentificationNumber, &g.Country, &g.City, &g.Address, &g.BirthDate, &g.Notes,
		&g.IsVIP, &g.CreatedAt, &g.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &g, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrEmailTaken
		case pgerrcode.ForeignKeyViolation:
			return ErrHasReservations
		}
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, guest *Guest) error {
	query, args, err := psql.Insert("public.guests").
		Columns(
			"first_name", "last_name", "email", "phone", "identification_type", "identification_number",
			"country", "city", "address", "birth_date", "notes", "is_vip",
		).
		Values(
			guest.FirstName, guest.LastName, guest.Email, guest.Phone, guest.IdentificationType, guest.IdentificationNumber,
			guest.Country, guest.City, guest.Address, guest.BirthDate, guest.Notes, guest.IsVIP,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create guest query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&guest.ID, &guest.CreatedAt, &guest.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create guest failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Guest, error) {
	query, args, err := selectGuests().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get guest query failed: %w", err)
	}

	guest, err := scanGuest(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get guest failed: %w", err)
	}
	return guest, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Guest, int, error) {
	query := selectGuests("count(*) OVER() as total_count")

	if filter.Email != "" {
		query = query.Where(squirrel.Eq{"email": filter.Email})
	}
	if filter.Phone != "" {
		query = query.Where(squirrel.Eq{"phone": filter.Phone})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.Like{"phone": pattern},
		})
	}

	// Sorting
	orderBy := "created_at"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy(orderBy+" "+orderDir, "id ASC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list guests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list guests failed: %w", err)
	}
	defer rows.Close()

	var guests []*Guest
	var total int

	for rows.Next() {
		guest, err := scanGuest(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan guest failed: %w", err)
		}
		guests = append(guests, guest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate guests failed: %w", err)
	}

	return guests, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, guest *Guest) error {
	query, args, err := psql.Update("public.guests").
		Set("first_name", guest.FirstName).
		Set("last_name", guest.LastName).
		Set("email", guest.Email).
		Set("phone", guest.Phone).
		Set("identification_type", guest.IdentificationType).
		Set("identification_number", guest.IdentificationNumber).
		Set("country", guest.Country).
		Set("city", guest.City).
		Set("address", guest.Address).
		Set("birth_date", guest.BirthDate).
		Set("notes", guest.Notes).
		Set("is_vip", guest.IsVIP).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": guest.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update guest query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&guest.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update guest failed: %w", err)
	}
	return nil
}

// Delete removes a guest. Guests referenced by a reservation are kept and
// ErrHasReservations is returned.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.guests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete guest query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete guest failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
