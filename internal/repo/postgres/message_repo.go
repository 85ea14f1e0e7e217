package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/enums"
	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// Insert stores a new tribute; id and created_at are assigned by the store.
func (r *MessageRepo) Insert(ctx context.Context, m model.Message) (model.Message, error) {
	if r.pool == nil {
		return model.Message{}, ErrNotConfigured
	}

	var voicenote *string
	if m.VoicenoteURL != "" {
		voicenote = &m.VoicenoteURL
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO messages (name, message, is_public, message_type, voicenote_url)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`, m.Name, m.Message, m.IsPublic, string(m.Type), voicenote).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}

	return m, nil
}

func (r *MessageRepo) ListPublic(ctx context.Context) ([]model.Message, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, created_at, name, message, is_public, message_type, voicenote_url
FROM messages
WHERE is_public
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list public messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

// ListAll returns every tribute including private ones; callers must hold an
// authenticated admin session.
func (r *MessageRepo) ListAll(ctx context.Context) ([]model.Message, error) {
	if r.pool == nil {
		return nil, ErrNotConfigured
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, created_at, name, message, is_public, message_type, voicenote_url
FROM messages
ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list all messages: %w", err)
	}
	defer rows.Close()

	return scanMessages(rows)
}

func scanMessages(rows pgx.Rows) ([]model.Message, error) {
	messages := make([]model.Message, 0)
	for rows.Next() {
		var (
			m           model.Message
			messageType string
			voicenote   *string
		)
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.Name, &m.Message, &m.IsPublic, &messageType, &voicenote); err != nil {
			return nil, fmt.Errorf("scan message row: %w", err)
		}
		m.Type = enums.MessageType(messageType)
		if voicenote != nil {
			m.VoicenoteURL = *voicenote
		}
		messages = append(messages, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate message rows: %w", rows.Err())
	}

	return messages, nil
}
