package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OccupancyReader loads the reservations holding rooms.
type OccupancyReader interface {
	// ListOccupancies returns active occupancies of the given rooms overlapping [start, end).
	ListOccupancies(ctx context.Context, roomIDs []string, start, end time.Time) ([]Occupancy, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) OccupancyReader {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

func (r *pgxRepository) ListOccupancies(ctx context.Context, roomIDs []string, start, end time.Time) ([]Occupancy, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.Select(
		"rr.room_id", "res.id", "res.number", "res.guest_id", "res.check_in", "res.check_out",
		"res.adults", "res.children", "res.status",
	).
		From("public.reservation_rooms rr").
		Join("public.reservations res ON rr.reservation_id = res.id").
		Where(squirrel.Eq{"rr.room_id": roomIDs}).
		Where(squirrel.NotEq{"res.status": ReleasedStatuses}).
		// Half-open overlap: existing.check_in < end AND existing.check_out > start
		Where(squirrel.Lt{"res.check_in": end}).
		Where(squirrel.Gt{"res.check_out": start}).
		OrderBy("res.check_in ASC", "res.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list occupancies query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list occupancies failed: %w", err)
	}
	defer rows.Close()

	var out []Occupancy
	for rows.Next() {
		var o Occupancy
		if err := rows.Scan(
			&o.RoomID, &o.ReservationID, &o.ReservationNumber, &o.GuestID, &o.CheckIn, &o.CheckOut,
			&o.Adults, &o.Children, &o.Status,
		); err != nil {
			return nil, fmt.Errorf("scan occupancy failed: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate occupancies failed: %w", err)
	}
	return out, nil
}
