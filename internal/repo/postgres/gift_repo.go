package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
)

var ErrGiftNotFound = errors.New("gift not found")

type GiftRepo struct {
	pool *pgxpool.Pool
}

func NewGiftRepo(pool *pgxpool.Pool) *GiftRepo {
	return &GiftRepo{pool: pool}
}

func (r *GiftRepo) Insert(ctx context.Context, g model.Gift) (model.Gift, error) {
	if r.pool == nil {
		return model.Gift{}, ErrNotConfigured
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO gifts (provider, amount_minor, currency, email, first_name, last_name, anonymous, status, reference)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id::text, created_at
`, string(g.Provider), g.AmountMinor, g.Currency, g.Email, g.FirstName, g.LastName,
		g.Anonymous, string(g.Status), g.Reference).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return model.Gift{}, fmt.Errorf("insert gift: %w", err)
	}

	return g, nil
}

// UpdateStatusByReference is the webhook path: last write wins, missing
// references are reported so the caller can reject unknown callbacks.
func (r *GiftRepo) UpdateStatusByReference(ctx context.Context, reference string, status enums.GiftStatus) error {
	if r.pool == nil {
		return ErrNotConfigured
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE gifts SET status = $2 WHERE reference = $1
`, reference, string(status))
	if err != nil {
		return fmt.Errorf("update gift status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGiftNotFound
	}

	return nil
}

func (r *GiftRepo) ListAll(ctx context.Context) ([]model.Gift, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, created_at, provider, amount_minor, currency, email, first_name, last_name, anonymous, status, reference
FROM gifts
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list gifts: %w", err)
	}
	defer rows.Close()

	return scanGifts(rows)
}

func scanGifts(rows pgx.Rows) ([]model.Gift, error) {
	gifts := make([]model.Gift, 0)
	for rows.Next() {
		var (
			g        model.Gift
			provider string
			status   string
		)
		if err := rows.Scan(&g.ID, &g.CreatedAt, &provider, &g.AmountMinor, &g.Currency,
			&g.Email, &g.FirstName, &g.LastName, &g.Anonymous, &status, &g.Reference); err != nil {
			return nil, fmt.Errorf("scan gift row: %w", err)
		}
		g.Provider = enums.GiftProvider(provider)
		g.Status = enums.GiftStatus(status)
		gifts = append(gifts, g)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate gift rows: %w", rows.Err())
	}

	return gifts, nil
}
