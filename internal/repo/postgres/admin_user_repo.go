package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SodiqOgundairo/condolence-backend/internal/domain/model"
)

var ErrAdminUserNotFound = errors.New("admin user not found")

type AdminUserRepo struct {
	pool *pgxpool.Pool
}

func NewAdminUserRepo(pool *pgxpool.Pool) *AdminUserRepo {
	return &AdminUserRepo{pool: pool}
}

func (r *AdminUserRepo) FindByUsername(ctx context.Context, username string) (model.AdminUser, error) {
	if r.pool == nil {
		return model.AdminUser{}, ErrNotConfigured
	}

	var user model.AdminUser
	err := r.pool.QueryRow(ctx, `
SELECT id, username, password_hash, totp_secret, created_at
FROM admin_users
WHERE username = $1
`, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.TOTPSecret, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.AdminUser{}, ErrAdminUserNotFound
		}
		return model.AdminUser{}, fmt.Errorf("find admin user: %w", err)
	}

	return user, nil
}

// Upsert provisions the operator account; used by the admin-cred tool.
func (r *AdminUserRepo) Upsert(ctx context.Context, user model.AdminUser) error {
	if r.pool == nil {
		return ErrNotConfigured
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO admin_users (username, password_hash, totp_secret)
VALUES ($1, $2, $3)
ON CONFLICT (username) DO UPDATE
SET password_hash = EXCLUDED.password_hash,
    totp_secret   = EXCLUDED.totp_secret
`, user.Username, user.PasswordHash, user.TOTPSecret); err != nil {
		return fmt.Errorf("upsert admin user: %w", err)
	}

	return nil
}
