package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func (r *PhotoRepo) Insert(ctx context.Context, p model.Photo) (model.Photo, error) {
	if r.pool == nil {
		return model.Photo{}, ErrNotConfigured
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO photos (name, caption, photo_url, is_public)
VALUES ($1, $2, $3, $4)
RETURNING id::text, created_at
`, p.Name, p.Caption, p.PhotoURL, p.IsPublic).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return model.Photo{}, fmt.Errorf("insert photo: %w", err)
	}

	return p, nil
}

func (r *PhotoRepo) ListPublic(ctx context.Context) ([]model.Photo, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, created_at, name, caption, photo_url, is_public
FROM photos
WHERE is_public
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list public photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

func (r *PhotoRepo) ListAll(ctx context.Context) ([]model.Photo, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, created_at, name, caption, photo_url, is_public
FROM photos
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list all photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

func scanPhotos(rows pgx.Rows) ([]model.Photo, error) {
	photos := make([]model.Photo, 0)
	for rows.Next() {
		var p model.Photo
		if err := rows.Scan(&p.ID, &p.CreatedAt, &p.Name, &p.Caption, &p.PhotoURL, &p.IsPublic); err != nil {
			return nil, fmt.Errorf("scan photo row: %w", err)
		}
		photos = append(photos, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate photo rows: %w", rows.Err())
	}

	return photos, nil
}
