package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/mailer"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/config"
)

type AsyncRunner func(task func())

type confirmationTokenRepository interface {
	Create(ctx context.Context, token *entity.ConfirmationToken) error
	FindByValue(ctx context.Context, value string) (*entity.ConfirmationToken, error)
	FindLatestForUser(ctx context.Context, userID uint64) (*entity.ConfirmationToken, error)
	SetConfirmed(ctx context.Context, value string, confirmedAt time.Time) (int64, error)
}

type confirmationUserRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByCanonicalEmail(ctx context.Context, canonicalEmail string) (*entity.User, error)
	SetEnabled(ctx context.Context, email string, now time.Time) (int64, error)
}

type ConfirmationServiceOption func(*ConfirmationService)

// ConfirmationService owns the confirmation token lifecycle: issuance at
// registration, rate-limited resends, and the two-step confirm that stamps
// the token and enables the account. Both writes are conditional updates;
// a zero row count from either one is surfaced as an error, so a partial
// outcome is never reported as success.
type ConfirmationService struct {
	userRepo    confirmationUserRepository
	tokenRepo   confirmationTokenRepository
	sender      mailer.Sender
	cfg         *config.Config
	asyncRunner AsyncRunner
}

func NewConfirmationService(
	userRepo confirmationUserRepository,
	tokenRepo confirmationTokenRepository,
	sender mailer.Sender,
	cfg *config.Config,
	opts ...ConfirmationServiceOption,
) *ConfirmationService {
	svc := &ConfirmationService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		sender:    sender,
		cfg:       cfg,
		asyncRunner: func(task func()) {
			go task()
		},
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithConfirmationAsyncRunner(runner AsyncRunner) ConfirmationServiceOption {
	return func(s *ConfirmationService) {
		if runner != nil {
			s.asyncRunner = runner
		}
	}
}

// CreateConfirmationToken issues a fresh token for the user and persists
// it. Token values come from a large enough random space that collisions
// are not handled beyond the unique index.
func (s *ConfirmationService) CreateConfirmationToken(ctx context.Context, user *entity.User) (*entity.ConfirmationToken, error) {
	now := time.Now()
	token := &entity.ConfirmationToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.ConfirmTokenTTL),
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Confirm marks the token as used and enables the owning account. The
// pre-checks give precise errors for the common cases; the conditional
// updates are what actually guarantee exactly-once semantics under
// concurrent confirmation attempts.
func (s *ConfirmationService) Confirm(ctx context.Context, value string) error {
	token, err := s.tokenRepo.FindByValue(ctx, value)
	if err != nil {
		return err
	}
	if token == nil {
		return ErrTokenNotFound
	}
	if token.Confirmed() {
		return ErrAlreadyConfirmed
	}

	now := time.Now()
	if token.ExpiredAt(now) {
		return ErrTokenExpired
	}

	rows, err := s.tokenRepo.SetConfirmed(ctx, value, now)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Lost the race to a concurrent confirmation of the same token.
		return ErrAlreadyConfirmed
	}

	user, err := s.userRepo.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	enabled, err := s.userRepo.SetEnabled(ctx, user.Email, now)
	if err != nil {
		return err
	}
	if enabled == 0 {
		return ErrAccountEnableFailed
	}

	return nil
}

// ResendConfirmation issues a new token for a still-disabled account,
// provided the cooldown since the latest token's creation has elapsed.
// The cooldown is measured against creation time, not the last attempt,
// so repeated early attempts do not push the window out. The superseded
// token stays in history and remains confirmable until its own expiry.
func (s *ConfirmationService) ResendConfirmation(ctx context.Context, email string) (*entity.ConfirmationToken, error) {
	user, err := s.userRepo.FindByCanonicalEmail(ctx, CanonicalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Enabled {
		return nil, ErrAlreadyConfirmed
	}

	latest, err := s.tokenRepo.FindLatestForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, ErrTokenNotFound
	}

	elapsed := time.Since(latest.CreatedAt)
	if elapsed < s.cfg.ConfirmResendCooldown {
		return nil, &TooSoonError{Remaining: s.cfg.ConfirmResendCooldown - elapsed}
	}

	token, err := s.CreateConfirmationToken(ctx, user)
	if err != nil {
		return nil, err
	}

	s.DispatchConfirmationEmail(user, token)
	return token, nil
}

// DispatchConfirmationEmail sends the confirmation link without blocking
// the caller. Delivery failures are logged under the distinct delivery
// error rather than swallowed.
func (s *ConfirmationService) DispatchConfirmationEmail(user *entity.User, token *entity.ConfirmationToken) {
	to := user.Email
	nick := user.Nick
	link := fmt.Sprintf("%s?token=%s", s.cfg.ConfirmBaseURL, token.Token)
	ttl := s.cfg.ConfirmTokenTTL

	s.asyncRunner(func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		body := buildConfirmationEmail(nick, link, ttl)
		if err := s.sender.Send(sendCtx, to, "Confirm your Bookshelf account", body); err != nil {
			if !errors.Is(err, mailer.ErrDelivery) {
				err = fmt.Errorf("%w: %v", mailer.ErrDelivery, err)
			}
			logrus.WithError(err).WithField("email", to).Error("Failed to deliver confirmation email")
		}
	})
}

func buildConfirmationEmail(nick, link string, ttl time.Duration) string {
	return fmt.Sprintf(
		`<html><body>`+
			`<p>Hi %s,</p>`+
			`<p>Thanks for registering. Click the link below to confirm your account:</p>`+
			`<p><a href="%s">%s</a></p>`+
			`<p>The link expires in %d minutes.</p>`+
			`</body></html>`,
		nick, link, link, int(ttl.Minutes()),
	)
}
