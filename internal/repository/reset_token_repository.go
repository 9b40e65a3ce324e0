package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/trailwatch/trailwatch/internal/model"
)

// ResetTokenRepo persists and validates password reset tokens. Issuing
// a token invalidates all prior unused tokens for the same user, so at
// most one token per user can ever redeem.
type ResetTokenRepo struct {
	DB *sql.DB

	now func() time.Time // defaults to time.Now; fixed in tests
}

func NewResetTokenRepo(db *sql.DB) *ResetTokenRepo { return &ResetTokenRepo{DB: db} }

func (r *ResetTokenRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

// Issue stores a new reset token for the user after marking every
// earlier unused token as used. Older tokens are invalidated
// explicitly, not merely superseded.
func (r *ResetTokenRepo) Issue(ctx context.Context, userID uint64, token string, expiresAt time.Time) error {
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE password_reset_tokens SET used=TRUE WHERE user_id=? AND used=FALSE",
		userID); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO password_reset_tokens (user_id, token, expires_at) VALUES (?,?,?)",
		userID, token, expiresAt)
	return translateErr(err)
}

// Validate returns the token record iff it exists, is unused and has
// not expired. A token is live strictly before its expiry instant; at
// expires_at it is already dead. Anything else is ErrNotFound.
func (r *ResetTokenRepo) Validate(ctx context.Context, token string) (model.PasswordResetToken, error) {
	var t model.PasswordResetToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token, expires_at, used, created_at FROM password_reset_tokens WHERE token=? LIMIT 1",
		token).Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	if err != nil {
		return t, err
	}
	if t.Used {
		return t, ErrNotFound
	}
	if !r.clock().UTC().Before(t.ExpiresAt) {
		return t, ErrNotFound
	}
	return t, nil
}

// MarkUsed consumes a token so it can never redeem again.
func (r *ResetTokenRepo) MarkUsed(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE password_reset_tokens SET used=TRUE WHERE token=?", token)
	return err
}

// CleanupExpired deletes used and expired tokens. Intended to run
// periodically; returns the number of rows removed.
func (r *ResetTokenRepo) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM password_reset_tokens WHERE expires_at < NOW() OR used=TRUE")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
