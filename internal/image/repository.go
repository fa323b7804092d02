package image

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	ListByOffice(ctx context.Context, officeID string) ([]*Image, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.office_images").
		Columns("id", "office_id", "filename", "storage_path", "thumbnail_path", "content_type", "size", "created_at").
		Values(img.ID, img.OfficeID, img.Filename, img.StoragePath, img.ThumbnailPath, img.ContentType, img.Size, img.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create image query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("create image record failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	const query = `
		SELECT id, office_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.office_images
		WHERE id = $1
	`

	var img Image
	var thumbnailPath sql.NullString

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&img.ID, &img.OfficeID, &img.Filename, &img.StoragePath,
		&thumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get image failed: %w", err)
	}

	if thumbnailPath.Valid {
		img.ThumbnailPath = &thumbnailPath.String
	}
	return &img, nil
}

func (r *pgxRepository) ListByOffice(ctx context.Context, officeID string) ([]*Image, error) {
	const query = `
		SELECT id, office_id, filename, storage_path, thumbnail_path, content_type, size, created_at
		FROM public.office_images
		WHERE office_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, officeID)
	if err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		var thumbnailPath sql.NullString
		if err := rows.Scan(
			&img.ID, &img.OfficeID, &img.Filename, &img.StoragePath,
			&thumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan image failed: %w", err)
		}
		if thumbnailPath.Valid {
			img.ThumbnailPath = &thumbnailPath.String
		}
		images = append(images, &img)
	}

	return images, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.office_images WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete image record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
