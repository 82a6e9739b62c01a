package entity

import (
	"database/sql"
	"time"
)

// ConfirmationToken is a single-use proof of email ownership. Rows are
// insert-only; the only mutation ever applied is setting ConfirmedAt once.
type ConfirmationToken struct {
	ID          uint64
	Token       string
	UserID      uint64
	CreatedAt   time.Time
	ExpiresAt   time.Time
	ConfirmedAt sql.NullTime
}

func (t *ConfirmationToken) Confirmed() bool {
	return t.ConfirmedAt.Valid
}

func (t *ConfirmationToken) ExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
