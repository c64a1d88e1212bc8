package roomtype

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
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, rt *RoomType) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, id, fileID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var columns = []string{
	"rt.id", "rt.name", "rt.description", "rt.category", "rt.capacity", "rt.base_price",
	"rt.amenities", "rt.image_ids", "rt.is_active", "rt.created_at", "rt.updated_at",
}

func scanRoomType(row pgx.Row, extra ...any) (*RoomType, error) {
	var rt RoomType
	dest := []any{
		&rt.ID, &rt.Name, &rt.Description, &rt.Category, &rt.Capacity, &rt.BasePrice,
		&rt.Amenities, &rt.ImageIDs, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &rt, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrNameTaken
		case pgerrcode.ForeignKeyViolation:
			return ErrInUse
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "room_types_base_price_check" {
				return ErrInvalidBasePrice
			}
			return ErrInvalidCapacity
		}
	}
	return err
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	query, args, err := psql.Insert("public.room_types").
		Columns("name", "description", "category", "capacity", "base_price", "amenities", "is_active").
		Values(rt.Name, rt.Description, rt.Category, rt.Capacity, rt.BasePrice, rt.Amenities, rt.IsActive).
		Suffix("RETURNING id, image_ids, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room type query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.ImageIDs, &rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	query, args, err := psql.Select(columns...).
		From("public.room_types rt").
		Where(squirrel.Eq{"rt.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room type query failed: %w", err)
	}

	rt, err := scanRoomType(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	queryBuilder := psql.Select(append(columns, "count(*) OVER() as total_count")...).
		From("public.room_types rt")

	if len(filter.IDs) > 0 {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"rt.id": filter.IDs})
	}
	if filter.ActiveOnly {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"rt.is_active": true})
	}
	if filter.MinCapacity > 0 {
		queryBuilder = queryBuilder.Where(squirrel.GtOrEq{"rt.capacity": filter.MinCapacity})
	}

	// Sorting
	orderBy := "base_price"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	queryBuilder = queryBuilder.OrderBy("rt."+orderBy+" "+orderDir, "rt.name ASC")

	// Pagination: a zero PageSize lists every room type, which the availability search relies on.
	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		offset := (filter.Page - 1) * filter.PageSize
		queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list room types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomType
	var total int

	for rows.Next() {
		rt, err := scanRoomType(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room type failed: %w", err)
		}
		result = append(result, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate room types failed: %w", err)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rt *RoomType) error {
	query, args, err := psql.Update("public.room_types").
		Set("name", rt.Name).
		Set("description", rt.Description).
		Set("category", rt.Category).
		Set("capacity", rt.Capacity).
		Set("base_price", rt.BasePrice).
		Set("amenities", rt.Amenities).
		Set("is_active", rt.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rt.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room type query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rt.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("update room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != err {
			return mapped
		}
		return fmt.Errorf("delete room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddImage(ctx context.Context, id, fileID string) error {
	query, args, err := psql.Update("public.room_types").
		Set("image_ids", squirrel.Expr("array_append(image_ids, ?::text)", fileID)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build add room type image query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("add room type image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
