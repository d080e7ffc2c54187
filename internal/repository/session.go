package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/termbase/termbase/internal/model"
)

// ErrSessionNotFound covers missing and expired sessions alike;
// callers treat both as an unauthenticated request.
var ErrSessionNotFound = errors.New("session not found")

// CreateSession inserts a new session into the database.
func (r *Repository) CreateSession(ctx context.Context, session *model.Session) error {
	query := `
		INSERT INTO sessions (id, token, user_id, expires_at, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.IPAddress,
		session.UserAgent,
		session.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

// GetSessionWithUser resolves a bearer token to its session and user
// in one round trip. Expired sessions are filtered in the WHERE
// clause, never in application code.
func (r *Repository) GetSessionWithUser(ctx context.Context, token string, now time.Time) (*model.Session, *model.User, error) {
	query := `
		SELECT s.id, s.token, s.user_id, s.expires_at, COALESCE(s.ip_address, ''), COALESCE(s.user_agent, ''), s.created_at,
		       u.id, u.name, u.email, u.email_verified, u.password_hash, u.created_at, u.updated_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > $2
	`

	var session model.Session
	var user model.User
	err := r.pool.QueryRow(ctx, query, token, now).Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.IPAddress,
		&session.UserAgent,
		&session.CreatedAt,
		&user.ID,
		&user.Name,
		&user.Email,
		&user.EmailVerified,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, &user, nil
}

// DeleteSessionByToken removes a session by its token.
func (r *Repository) DeleteSessionByToken(ctx context.Context, token string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// DeleteExpiredSessions removes sessions past their expiry.
// Intended for a periodic operator task, not the request path.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return result.RowsAffected(), nil
}
