package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (nick, email, canonical_email, password_hash, enabled, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Nick,
		user.Email,
		user.CanonicalEmail,
		user.PasswordHash,
		user.Enabled,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `
		SELECT id, nick, email, canonical_email, password_hash, enabled, role, created_at, updated_at
		FROM users WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT id, nick, email, canonical_email, password_hash, enabled, role, created_at, updated_at
		FROM users WHERE email = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) FindByCanonicalEmail(ctx context.Context, canonicalEmail string) (*entity.User, error) {
	query := `
		SELECT id, nick, email, canonical_email, password_hash, enabled, role, created_at, updated_at
		FROM users WHERE canonical_email = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, canonicalEmail))
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			nick = ?,
			email = ?,
			canonical_email = ?,
			password_hash = ?,
			enabled = ?,
			role = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Nick,
		user.Email,
		user.CanonicalEmail,
		user.PasswordHash,
		user.Enabled,
		user.Role,
		user.UpdatedAt,
		user.ID,
	)
	return err
}

// SetEnabled flips the enabled flag for the account with the given email.
// The WHERE clause only matches still-disabled rows, so the returned count
// tells the caller whether this call actually enabled the account.
func (r *UserRepository) SetEnabled(ctx context.Context, email string, now time.Time) (int64, error) {
	query := `UPDATE users SET enabled = 1, updated_at = ? WHERE email = ? AND enabled = 0`
	result, err := r.db.ExecContext(ctx, query, now, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *UserRepository) scanOne(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(
		&user.ID,
		&user.Nick,
		&user.Email,
		&user.CanonicalEmail,
		&user.PasswordHash,
		&user.Enabled,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
