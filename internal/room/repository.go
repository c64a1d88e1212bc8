package room

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
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func selectRooms(extra ...string) squirrel.SelectBuilder {
	cols := []string{
		"r.id", "r.room_type_id", "rt.name", "r.number", "r.floor", "r.status",
		"r.cleaning_status", "r.notes", "r.created_at", "r.updated_at",
	}
	return psql.Select(append(cols, extra...)...).
		From("public.rooms r").
		Join("public.room_types rt ON r.room_type_id = rt.id")
}

func scanRoom(row pgx.Row, extra ...any) (*Room, error) {
	var r Room
	dest := []any{
		&r.ID, &r.RoomTypeID, &r.RoomTypeName, &r.Number, &r.Floor, &r.Status,
		&r.CleaningStatus, &r.Notes, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrNumberTaken
		case pgerrcode.ForeignKeyViolation:
			if pgErr.ConstraintName == "rooms_room_type_id_fkey" {
				return ErrRoomTypeNotFound
			}
			return ErrHasReservations
		}
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, room *Room) error {
	query, args, err := psql.Insert("public.rooms").
		Columns("room_type_id", "number", "floor", "status", "cleaning_status", "notes").
		Values(room.RoomTypeID, room.Number, room.Floor, room.Status, room.CleaningStatus, room.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	query, args, err := selectRooms().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	room, err := scanRoom(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return room, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	query := selectRooms("count(*) OVER() as total_count")

	if len(filter.RoomTypeIDs) > 0 {
		query = query.Where(squirrel.Eq{"r.room_type_id": filter.RoomTypeIDs})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where(squirrel.Eq{"r.status": statuses})
	}
	if filter.Floor != nil {
		query = query.Where(squirrel.Eq{"r.floor": *filter.Floor})
	}

	// Sorting
	orderBy := "number"
	if filter.SortBy != "" {
		orderBy = filter.SortBy
	}

	orderDir := "ASC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}

	query = query.OrderBy("r."+orderBy+" "+orderDir, "r.id ASC")

	// Pagination: a zero PageSize lists every room, which the availability resolver relies on.
	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int

	for rows.Next() {
		room, err := scanRoom(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate rooms failed: %w", err)
	}

	return rooms, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, room *Room) error {
	query, args, err := psql.Update("public.rooms").
		Set("room_type_id", room.RoomTypeID).
		Set("number", room.Number).
		Set("floor", room.Floor).
		Set("status", room.Status).
		Set("cleaning_status", room.CleaningStatus).
		Set("notes", room.Notes).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": room.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&room.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
