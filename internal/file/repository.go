package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, file *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, f *File) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.files").
		Columns("id", "user_id", "filename", "storage_path", "thumbnail_path", "content_type", "size").
		Values(f.ID, f.UserID, f.Filename, f.StoragePath, f.ThumbnailPath, f.ContentType, f.Size).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create file query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&f.CreatedAt); err != nil {
		return fmt.Errorf("create file record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*File, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "user_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		From("public.files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get file query failed: %w", err)
	}

	var f File
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&f.ID,
		&f.UserID,
		&f.Filename,
		&f.StoragePath,
		&f.ThumbnailPath,
		&f.ContentType,
		&f.Size,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get file failed: %w", err)
	}
	return &f, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.files").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete file query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete file record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
