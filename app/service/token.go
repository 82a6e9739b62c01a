package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/config"
)

type SessionClaims struct {
	Nick string `json:"nick"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) UserID() (uint64, error) {
	return strconv.ParseUint(c.Subject, 10, 64)
}

// TokenCodec issues and validates the stateless HS256 access token. There
// is no server-side session state: validity is a function of the signature
// and the exp claim alone.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(cfg *config.Config) *TokenCodec {
	return &TokenCodec{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.JWTAccessTokenTTL,
	}
}

func (c *TokenCodec) Issue(userID uint64, nick string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		Nick: nick,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Validate returns ErrAccessTokenExpired only for tokens whose signature
// checks out but whose exp has passed. Everything else, including an
// unexpected signing method, maps to ErrAccessTokenInvalid.
func (c *TokenCodec) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrAccessTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrAccessTokenExpired
		}
		return nil, ErrAccessTokenInvalid
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrAccessTokenInvalid
	}

	return claims, nil
}

// IsValidFor reports whether the token is currently valid and belongs to
// the given user. Used by the middleware after its own user lookup, as an
// additional subject check rather than the sole trust boundary.
func (c *TokenCodec) IsValidFor(tokenString string, userID uint64) bool {
	claims, err := c.Validate(tokenString)
	if err != nil {
		return false
	}
	return claims.Subject == strconv.FormatUint(userID, 10)
}
