package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotEnabled  = errors.New("account not confirmed")
	ErrWeakPassword       = errors.New("password does not meet policy requirements")
	ErrPasswordMismatch   = errors.New("old password is incorrect")

	// Session token errors. Expired is deliberately distinct from invalid:
	// an expired session prompts a re-login, a malformed token is treated
	// as anonymous.
	ErrAccessTokenExpired = errors.New("access token has expired")
	ErrAccessTokenInvalid = errors.New("invalid access token")

	// Confirmation lifecycle errors.
	ErrTokenNotFound       = errors.New("confirmation token not found")
	ErrTokenExpired        = errors.New("confirmation token has expired")
	ErrAlreadyConfirmed    = errors.New("account is already confirmed")
	ErrAccountEnableFailed = errors.New("account could not be enabled")

	// Resource access errors.
	ErrInvalidBookStatus  = errors.New("invalid book status")
	ErrBookNotFound       = errors.New("book not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUnauthorizedAccess = errors.New("you are not the owner of this resource")
)

// TooSoonError reports a confirmation resend attempted before the cooldown
// has elapsed. Remaining is the wait left at the time of the attempt.
type TooSoonError struct {
	Remaining time.Duration
}

func (e *TooSoonError) Error() string {
	remaining := e.Remaining.Round(time.Second)
	minutes := int(remaining / time.Minute)
	seconds := int(remaining%time.Minute) / int(time.Second)
	return fmt.Sprintf("you can request a new confirmation email in %dm %ds", minutes, seconds)
}
