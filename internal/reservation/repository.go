package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nekogravitycat/hotel-booking-backend/internal/availability"
	"github.com/nekogravitycat/hotel-booking-backend/internal/room"
)

// RoomStatusChange is applied to every room of a reservation along with a status transition.
type RoomStatusChange struct {
	Status         room.Status
	CleaningStatus *room.CleaningStatus
}

type Repository interface {
	// Create stores a reservation and its rooms. Inside one transaction it locks the
	// assigned rooms and rejects the stay if any of them is out of service or already
	// held for an overlapping stay.
	Create(ctx context.Context, res *Reservation) error
	GetByID(ctx context.Context, id string) (*Reservation, error)
	List(ctx context.Context, filter Filter) ([]*Reservation, int, error)
	// Transition moves a reservation from one status to another, failing with
	// ErrInvalidTransition if it is no longer in from.
	Transition(ctx context.Context, id string, from, to Status, rooms *RoomStatusChange) error
	// AddPayment records a payment and updates the paid amount atomically.
	AddPayment(ctx context.Context, p *Payment) (*Reservation, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var reservationColumns = []string{
	"res.id", "res.number", "res.guest_id", "g.first_name || ' ' || g.last_name", "res.check_in", "res.check_out", "res.adults", "res.children",
	"res.status", "res.total_amount", "res.paid_amount", "res.special_requests", "res.notes",
	"coalesce(res.created_by::text, '')", "res.created_at", "res.updated_at",
}

func scanReservation(row pgx.Row, extra ...any) (*Reservation, error) {
	var res Reservation
	dest := []any{
		&res.ID, &res.Number, &res.GuestID, &res.GuestName, &res.CheckIn, &res.CheckOut, &res.Adults, &res.Children,
		&res.Status, &res.TotalAmount, &res.PaidAmount, &res.SpecialRequests, &res.Notes,
		&res.CreatedBy, &res.CreatedAt, &res.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *pgxRepository) Create(ctx context.Context, res *Reservation) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		roomIDs := make([]string, len(res.Rooms))
		for i, rr := range res.Rooms {
			roomIDs[i] = rr.RoomID
		}

		if err := lockBookableRooms(ctx, tx, roomIDs); err != nil {
			return err
		}
		if err := checkNoOverlap(ctx, tx, res, roomIDs); err != nil {
			return err
		}

		query, args, err := psql.Insert("public.reservations").
			Columns(
				"number", "guest_id", "check_in", "check_out", "adults", "children", "status",
				"total_amount", "paid_amount", "special_requests", "notes", "created_by",
			).
			Values(
				res.Number, res.GuestID, res.CheckIn, res.CheckOut, res.Adults, res.Children, res.Status,
				res.TotalAmount, res.PaidAmount, res.SpecialRequests, res.Notes, nullableUUID(res.CreatedBy),
			).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create reservation query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) {
				switch {
				case pgErr.Code == pgerrcode.UniqueViolation:
					return errNumberTaken
				case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == "reservations_guest_id_fkey":
					return ErrGuestNotFound
				}
			}
			return fmt.Errorf("create reservation failed: %w", err)
		}

		insert := psql.Insert("public.reservation_rooms").
			Columns("reservation_id", "room_id", "nightly_rate", "nights", "subtotal")
		for _, rr := range res.Rooms {
			insert = insert.Values(res.ID, rr.RoomID, rr.NightlyRate, rr.Nights, rr.Subtotal)
		}
		query, args, err = insert.Suffix("RETURNING id").ToSql()
		if err != nil {
			return fmt.Errorf("build create reservation rooms query failed: %w", err)
		}

		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("create reservation rooms failed: %w", err)
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("create reservation rooms failed: %w", err)
		}
		for i := range ids {
			res.Rooms[i].ID = ids[i]
		}
		return nil
	})
}

// lockBookableRooms takes row locks on the rooms in a stable order so concurrent
// bookings of the same room serialize instead of both passing the overlap check.
func lockBookableRooms(ctx context.Context, tx pgx.Tx, roomIDs []string) error {
	query, args, err := psql.Select("id", "status").
		From("public.rooms").
		Where(squirrel.Eq{"id": roomIDs}).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("build lock rooms query failed: %w", err)
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("lock rooms failed: %w", err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var (
			id     string
			status room.Status
		)
		if err := rows.Scan(&id, &status); err != nil {
			return fmt.Errorf("scan locked room failed: %w", err)
		}
		if !status.Bookable() {
			return ErrRoomUnavailable
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock rooms failed: %w", err)
	}
	if found != len(roomIDs) {
		return ErrRoomNotFound
	}
	return nil
}

func checkNoOverlap(ctx context.Context, tx pgx.Tx, res *Reservation, roomIDs []string) error {
	query, args, err := psql.Select("1").
		From("public.reservation_rooms rr").
		Join("public.reservations res ON rr.reservation_id = res.id").
		Where(squirrel.Eq{"rr.room_id": roomIDs}).
		Where(squirrel.NotEq{"res.status": availability.ReleasedStatuses}).
		// Half-open overlap: existing.check_in < new.check_out AND existing.check_out > new.check_in
		Where(squirrel.Lt{"res.check_in": res.CheckOut}).
		Where(squirrel.Gt{"res.check_out": res.CheckIn}).
		Limit(1).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap query failed: %w", err)
	}

	var one int
	err = tx.QueryRow(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return fmt.Errorf("check overlap failed: %w", err)
	}
	return ErrRoomUnavailable
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Reservation, error) {
	query, args, err := psql.Select(reservationColumns...).
		From("public.reservations res").
		Join("public.guests g ON res.guest_id = g.id").
		Where(squirrel.Eq{"res.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get reservation query failed: %w", err)
	}

	res, err := scanReservation(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get reservation failed: %w", err)
	}

	if err := r.loadRooms(ctx, []*Reservation{res}); err != nil {
		return nil, err
	}
	if res.Payments, err = r.listPayments(ctx, res.ID); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Reservation, int, error) {
	query := psql.Select(append(reservationColumns, "count(*) OVER() as total_count")...).
		From("public.reservations res").
		Join("public.guests g ON res.guest_id = g.id")

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"res.status": filter.Status})
	}
	if filter.GuestID != "" {
		query = query.Where(squirrel.Eq{"res.guest_id": filter.GuestID})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"res.check_in": *filter.To})
	}
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"res.check_out": *filter.From})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("res.check_in "+orderDir, "res.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list reservations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reservations failed: %w", err)
	}
	defer rows.Close()

	var (
		list  []*Reservation
		total int
	)
	for rows.Next() {
		res, err := scanReservation(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan reservation failed: %w", err)
		}
		list = append(list, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate reservations failed: %w", err)
	}
	rows.Close()

	if err := r.loadRooms(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// loadRooms fills Rooms for every reservation in one query.
func (r *pgxRepository) loadRooms(ctx context.Context, list []*Reservation) error {
	if len(list) == 0 {
		return nil
	}
	byID := make(map[string]*Reservation, len(list))
	ids := make([]string, len(list))
	for i, res := range list {
		byID[res.ID] = res
		ids[i] = res.ID
		res.Rooms = []ReservationRoom{}
	}

	query, args, err := psql.Select(
		"rr.reservation_id", "rr.id", "rr.room_id", "rm.number", "rm.room_type_id", "rt.name",
		"rr.nightly_rate", "rr.nights", "rr.subtotal",
	).
		From("public.reservation_rooms rr").
		Join("public.rooms rm ON rr.room_id = rm.id").
		Join("public.room_types rt ON rm.room_type_id = rt.id").
		Where(squirrel.Eq{"rr.reservation_id": ids}).
		OrderBy("rm.number").
		ToSql()
	if err != nil {
		return fmt.Errorf("build list reservation rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("list reservation rooms failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resID string
			rr    ReservationRoom
		)
		if err := rows.Scan(
			&resID, &rr.ID, &rr.RoomID, &rr.RoomNumber, &rr.RoomTypeID, &rr.RoomTypeName,
			&rr.NightlyRate, &rr.Nights, &rr.Subtotal,
		); err != nil {
			return fmt.Errorf("scan reservation room failed: %w", err)
		}
		if res, ok := byID[resID]; ok {
			res.Rooms = append(res.Rooms, rr)
		}
	}
	return rows.Err()
}

func (r *pgxRepository) listPayments(ctx context.Context, reservationID string) ([]Payment, error) {
	query, args, err := psql.Select(
		"id", "reservation_id", "amount", "method", "reference", "notes",
		"coalesce(received_by::text, '')", "created_at",
	).
		From("public.payments").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	payments := []Payment{}
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Reference, &p.Notes, &p.ReceivedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments failed: %w", err)
	}
	return payments, nil
}

func (r *pgxRepository) Transition(ctx context.Context, id string, from, to Status, rooms *RoomStatusChange) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query, args, err := psql.Update("public.reservations").
			Set("status", to).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": id, "status": from}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update reservation status query failed: %w", err)
		}

		ct, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update reservation status failed: %w", err)
		}
		if ct.RowsAffected() == 0 {
			// Someone else moved it first.
			return ErrInvalidTransition
		}

		if rooms == nil {
			return nil
		}

		upd := psql.Update("public.rooms").
			Set("status", rooms.Status).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Expr("id IN (SELECT room_id FROM public.reservation_rooms WHERE reservation_id = ?)", id))
		if rooms.CleaningStatus != nil {
			upd = upd.Set("cleaning_status", *rooms.CleaningStatus)
		}
		query, args, err = upd.ToSql()
		if err != nil {
			return fmt.Errorf("build update rooms status query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("update rooms status failed: %w", err)
		}
		return nil
	})
}

func (r *pgxRepository) AddPayment(ctx context.Context, p *Payment) (*Reservation, error) {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query, args, err := psql.Select(reservationColumns...).
			From("public.reservations res").
			Join("public.guests g ON res.guest_id = g.id").
			Where(squirrel.Eq{"res.id": p.ReservationID}).
			Suffix("FOR UPDATE OF res").
			ToSql()
		if err != nil {
			return fmt.Errorf("build lock reservation query failed: %w", err)
		}

		res, err := scanReservation(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock reservation failed: %w", err)
		}
		if err := res.ApplyPayment(p.Amount); err != nil {
			return err
		}

		query, args, err = psql.Insert("public.payments").
			Columns("reservation_id", "amount", "method", "reference", "notes", "received_by").
			Values(p.ReservationID, p.Amount, p.Method, p.Reference, p.Notes, nullableUUID(p.ReceivedBy)).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("build create payment query failed: %w", err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&p.ID, &p.CreatedAt); err != nil {
			return fmt.Errorf("create payment failed: %w", err)
		}

		query, args, err = psql.Update("public.reservations").
			Set("paid_amount", res.PaidAmount).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": p.ReservationID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("build update paid amount query failed: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("update paid amount failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, p.ReservationID)
}

func nullableUUID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
