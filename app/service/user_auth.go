package service

import (
	"context"
	"fmt"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/config"
)

type userRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
	FindByCanonicalEmail(ctx context.Context, canonicalEmail string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type confirmationIssuer interface {
	CreateConfirmationToken(ctx context.Context, user *entity.User) (*entity.ConfirmationToken, error)
	DispatchConfirmationEmail(user *entity.User, token *entity.ConfirmationToken)
}

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	Nick        string
}

// UserAuthService handles registration, login and profile changes. Accounts
// start disabled; the confirmation lifecycle enables them.
type UserAuthService struct {
	userRepo      userRepository
	confirmations confirmationIssuer
	hasher        *PasswordHasher
	codec         *TokenCodec
	cfg           *config.Config
}

func NewUserAuthService(
	userRepo userRepository,
	confirmations confirmationIssuer,
	hasher *PasswordHasher,
	codec *TokenCodec,
	cfg *config.Config,
) *UserAuthService {
	return &UserAuthService{
		userRepo:      userRepo,
		confirmations: confirmations,
		hasher:        hasher,
		codec:         codec,
		cfg:           cfg,
	}
}

func (s *UserAuthService) Register(ctx context.Context, nick, email, password string) (*entity.User, *entity.ConfirmationToken, error) {
	canonicalEmail := CanonicalizeEmail(email)

	existing, err := s.userRepo.FindByCanonicalEmail(ctx, canonicalEmail)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, ErrUserExists
	}

	if err = s.cfg.PasswordPolicy.Validate(password); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	user := &entity.User{
		Nick:           nick,
		Email:          email,
		CanonicalEmail: canonicalEmail,
		PasswordHash:   hashedPassword,
		Enabled:        false,
		Role:           entity.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err = s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	token, err := s.confirmations.CreateConfirmationToken(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	s.confirmations.DispatchConfirmationEmail(user, token)

	return user, token, nil
}

func (s *UserAuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.userRepo.FindByCanonicalEmail(ctx, CanonicalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.Enabled {
		return nil, ErrAccountNotEnabled
	}

	accessToken, err := s.codec.Issue(user.ID, user.Nick)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: accessToken,
		ExpiresIn:   int64(s.cfg.JWTAccessTokenTTL.Seconds()),
		Nick:        user.Nick,
	}, nil
}

func (s *UserAuthService) ChangePassword(ctx context.Context, userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return ErrPasswordMismatch
	}

	if err = s.cfg.PasswordPolicy.Validate(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrWeakPassword, err.Error())
	}

	hashedPassword, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// ChangeNick updates the display name and reissues the access token, since
// the nick travels inside the token claims.
func (s *UserAuthService) ChangeNick(ctx context.Context, userID uint64, nick string) (string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}

	user.Nick = nick
	if err = s.userRepo.Update(ctx, user); err != nil {
		return "", err
	}

	return s.codec.Issue(user.ID, user.Nick)
}

func (s *UserAuthService) ChangeEmail(ctx context.Context, userID uint64, newEmail string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	canonicalEmail := CanonicalizeEmail(newEmail)
	existing, err := s.userRepo.FindByCanonicalEmail(ctx, canonicalEmail)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != user.ID {
		return ErrUserExists
	}

	user.Email = newEmail
	user.CanonicalEmail = canonicalEmail
	return s.userRepo.Update(ctx, user)
}
