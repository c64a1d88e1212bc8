package pricerule

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, rule *PriceRule) error
	GetByID(ctx context.Context, id string) (*PriceRule, error)
	List(ctx context.Context, filter Filter) ([]*PriceRule, int, error)
	Update(ctx context.Context, rule *PriceRule) error
	Delete(ctx context.Context, id string) error

	// ListActiveByRoomType returns every active rule of a room type regardless of its dates.
	ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]*PriceRule, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Multipliers round-trip as text so no precision is lost to float conversion.
func selectRules(extra ...string) squirrel.SelectBuilder {
	cols := []string{
		"p.id", "p.room_type_id", "rt.name", "p.name", "p.multiplier::text", "p.priority", "p.is_active",
		"p.start_date", "p.end_date", "p.is_recurring", "coalesce(p.recurrence_type, '')", "p.days_of_week",
		"p.recurrence_end_date", "p.created_at", "p.updated_at",
	}
	return psql.Select(append(cols, extra...)...).
		From("public.price_rules p").
		Join("public.room_types rt ON p.room_type_id = rt.id")
}

func scanRule(row pgx.Row, extra ...any) (*PriceRule, error) {
	var (
		r          PriceRule
		multiplier string
	)
	dest := []any{
		&r.ID, &r.RoomTypeID, &r.RoomTypeName, &r.Name, &multiplier, &r.Priority, &r.IsActive,
		&r.StartDate, &r.EndDate, &r.IsRecurring, &r.RecurrenceType, &r.DaysOfWeek,
		&r.RecurrenceEndDate, &r.CreatedAt, &r.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	m, err := decimal.NewFromString(multiplier)
	if err != nil {
		return nil, fmt.Errorf("parse multiplier %q: %w", multiplier, err)
	}
	r.Multiplier = m
	if r.DaysOfWeek == nil {
		r.DaysOfWeek = []int{}
	}
	return &r, nil
}

// nullableRecurrence keeps recurrence_type NULL for bounded rules.
func nullableRecurrence(r *PriceRule) any {
	if !r.IsRecurring || r.RecurrenceType == "" {
		return nil
	}
	return string(r.RecurrenceType)
}

func daysOfWeek(r *PriceRule) []int {
	if r.DaysOfWeek == nil {
		return []int{}
	}
	return r.DaysOfWeek
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return ErrRoomTypeNotFound
		case pgerrcode.CheckViolation:
			if pgErr.ConstraintName == "price_rules_multiplier_check" {
				return ErrInvalidMultiplier
			}
			return ErrInvalidRange
		}
	}
	return nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *PriceRule) error {
	query, args, err := psql.Insert("public.price_rules").
		Columns(
			"room_type_id", "name", "multiplier", "priority", "is_active", "start_date", "end_date",
			"is_recurring", "recurrence_type", "days_of_week", "recurrence_end_date",
		).
		Values(
			rule.RoomTypeID, rule.Name, squirrel.Expr("(?::text)::numeric", rule.Multiplier.String()),
			rule.Priority, rule.IsActive, rule.StartDate, rule.EndDate,
			rule.IsRecurring, nullableRecurrence(rule), daysOfWeek(rule), rule.RecurrenceEndDate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create price rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("create price rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*PriceRule, error) {
	query, args, err := selectRules().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get price rule query failed: %w", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get price rule failed: %w", err)
	}
	return rule, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*PriceRule, int, error) {
	query := selectRules("count(*) OVER() as total_count")

	if filter.RoomTypeID != "" {
		query = query.Where(squirrel.Eq{"p.room_type_id": filter.RoomTypeID})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"p.is_active": true})
	}

	query = query.OrderBy("p.priority DESC", "p.start_date ASC", "p.id ASC")

	if filter.PageSize > 0 {
		if filter.Page < 1 {
			filter.Page = 1
		}
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list price rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list price rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*PriceRule
	var total int
	for rows.Next() {
		rule, err := scanRule(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan price rule failed: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate price rules failed: %w", err)
	}

	return rules, total, nil
}

func (r *pgxRepository) ListActiveByRoomType(ctx context.Context, roomTypeID string) ([]*PriceRule, error) {
	rules, _, err := r.List(ctx, Filter{RoomTypeID: roomTypeID, ActiveOnly: true})
	return rules, err
}

func (r *pgxRepository) Update(ctx context.Context, rule *PriceRule) error {
	query, args, err := psql.Update("public.price_rules").
		Set("room_type_id", rule.RoomTypeID).
		Set("name", rule.Name).
		Set("multiplier", squirrel.Expr("(?::text)::numeric", rule.Multiplier.String())).
		Set("priority", rule.Priority).
		Set("is_active", rule.IsActive).
		Set("start_date", rule.StartDate).
		Set("end_date", rule.EndDate).
		Set("is_recurring", rule.IsRecurring).
		Set("recurrence_type", nullableRecurrence(rule)).
		Set("days_of_week", daysOfWeek(rule)).
		Set("recurrence_end_date", rule.RecurrenceEndDate).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rule.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update price rule query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rule.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if mapped := mapWriteError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update price rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	query, args, err := psql.Delete("public.price_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete price rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete price rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
