package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	authsvc "github.com/SodiqOgundairo/condolence-backend/internal/services/auth"
)

const (
	sessionPrefix = "admin_sessions:"
	refreshPrefix = "admin_refresh:"
)

// SessionRepo keeps the admin session and its refresh token in redis hashes,
// both expiring with the session.
type SessionRepo struct {
	client *goredis.Client
}

func NewSessionRepo(client *goredis.Client) *SessionRepo {
	return &SessionRepo{client: client}
}

func (r *SessionRepo) Create(ctx context.Context, session authsvc.SessionRecord, refreshToken string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if strings.TrimSpace(session.SID) == "" || strings.TrimSpace(refreshToken) == "" || session.UserID <= 0 {
		return authsvc.ErrInvalidInput
	}

	session.Refresh = refreshToken
	ttl := ttlFor(session.ExpiresAt)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey(session.SID), sessionFields(session))
	pipe.Expire(ctx, sessionKey(session.SID), ttl)
	pipe.HSet(ctx, refreshKey(refreshToken), refreshFields(session))
	pipe.Expire(ctx, refreshKey(refreshToken), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("create admin session: %w", err)
	}

	return nil
}

func (r *SessionRepo) GetSession(ctx context.Context, sid string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get session hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrSessionNotFound
	}

	session, err := parseSessionRecord(values)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}
	session.SID = sid
	return session, nil
}

func (r *SessionRepo) GetByRefreshToken(ctx context.Context, refreshToken string) (authsvc.SessionRecord, error) {
	if r.client == nil {
		return authsvc.SessionRecord{}, fmt.Errorf("redis client is nil")
	}

	values, err := r.client.HGetAll(ctx, refreshKey(refreshToken)).Result()
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("get refresh hash: %w", err)
	}
	if len(values) == 0 {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}

	session, err := parseSessionRecord(values)
	if err != nil {
		return authsvc.SessionRecord{}, err
	}

	sid := strings.TrimSpace(values["sid"])
	if sid == "" {
		return authsvc.SessionRecord{}, authsvc.ErrRefreshNotFound
	}
	session.SID = sid

	return session, nil
}

func (r *SessionRepo) RotateRefresh(ctx context.Context, sid, oldRefreshToken, newRefreshToken string, expiresAt time.Time) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	session, err := r.GetByRefreshToken(ctx, oldRefreshToken)
	if err != nil {
		return err
	}
	if sid != "" && sid != session.SID {
		return authsvc.ErrRefreshNotFound
	}

	session.ExpiresAt = expiresAt
	session.Refresh = newRefreshToken
	ttl := ttlFor(expiresAt)

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, refreshKey(oldRefreshToken))
	pipe.HSet(ctx, refreshKey(newRefreshToken), refreshFields(session))
	pipe.Expire(ctx, refreshKey(newRefreshToken), ttl)
	pipe.HSet(ctx, sessionKey(session.SID), sessionFields(session))
	pipe.Expire(ctx, sessionKey(session.SID), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rotate refresh token: %w", err)
	}

	return nil
}

func (r *SessionRepo) DeleteSession(ctx context.Context, sid string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}

	refreshToken, err := r.client.HGet(ctx, sessionKey(sid), "refresh").Result()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("get session refresh token: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(sid))
	if refreshToken != "" {
		pipe.Del(ctx, refreshKey(refreshToken))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}

	return nil
}

func sessionFields(session authsvc.SessionRecord) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    session.UserID,
		"role":       session.Role,
		"refresh":    session.Refresh,
		"expires_at": session.ExpiresAt.Unix(),
	}
}

func refreshFields(session authsvc.SessionRecord) map[string]interface{} {
	return map[string]interface{}{
		"user_id":    session.UserID,
		"sid":        session.SID,
		"role":       session.Role,
		"expires_at": session.ExpiresAt.Unix(),
	}
}

func parseSessionRecord(values map[string]string) (authsvc.SessionRecord, error) {
	userID, err := strconv.ParseInt(values["user_id"], 10, 64)
	if err != nil || userID <= 0 {
		return authsvc.SessionRecord{}, fmt.Errorf("parse session user id: %w", err)
	}

	expiresUnix, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return authsvc.SessionRecord{}, fmt.Errorf("parse session expiry: %w", err)
	}

	return authsvc.SessionRecord{
		UserID:    userID,
		Role:      values["role"],
		Refresh:   values["refresh"],
		ExpiresAt: time.Unix(expiresUnix, 0),
	}, nil
}

func ttlFor(expiresAt time.Time) time.Duration {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}
	return ttl
}

func sessionKey(sid string) string {
	return sessionPrefix + sid
}

func refreshKey(token string) string {
	return refreshPrefix + token
}
