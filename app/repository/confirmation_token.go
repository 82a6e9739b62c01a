package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
)

type ConfirmationTokenRepository struct {
	db *sql.DB
}

func NewConfirmationTokenRepository(db *sql.DB) *ConfirmationTokenRepository {
	return &ConfirmationTokenRepository{db: db}
}

func (r *ConfirmationTokenRepository) Create(ctx context.Context, token *entity.ConfirmationToken) error {
	query := `
		INSERT INTO confirmation_tokens (token, user_id, created_at, expires_at, confirmed_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		token.Token,
		token.UserID,
		token.CreatedAt,
		token.ExpiresAt,
		token.ConfirmedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = uint64(id)
	return nil
}

func (r *ConfirmationTokenRepository) FindByValue(ctx context.Context, value string) (*entity.ConfirmationToken, error) {
	query := `
		SELECT id, token, user_id, created_at, expires_at, confirmed_at
		FROM confirmation_tokens WHERE token = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, value))
}

// FindLatestForUser returns the most recently created token for the user,
// or (nil, nil) when the user has never been issued one. Only the newest
// token drives the resend cooldown.
func (r *ConfirmationTokenRepository) FindLatestForUser(ctx context.Context, userID uint64) (*entity.ConfirmationToken, error) {
	query := `
		SELECT id, token, user_id, created_at, expires_at, confirmed_at
		FROM confirmation_tokens WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID))
}

// SetConfirmed stamps the confirmation timestamp on a still-pending token.
// The confirmed_at IS NULL guard makes the transition atomic: a zero row
// count means the token was already confirmed (or does not exist), which
// callers use to detect double confirmation.
func (r *ConfirmationTokenRepository) SetConfirmed(ctx context.Context, value string, confirmedAt time.Time) (int64, error) {
	query := `UPDATE confirmation_tokens SET confirmed_at = ? WHERE token = ? AND confirmed_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, confirmedAt, value)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *ConfirmationTokenRepository) scanOne(row *sql.Row) (*entity.ConfirmationToken, error) {
	token := &entity.ConfirmationToken{}
	err := row.Scan(
		&token.ID,
		&token.Token,
		&token.UserID,
		&token.CreatedAt,
		&token.ExpiresAt,
		&token.ConfirmedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}
