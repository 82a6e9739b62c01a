package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

const principalContextKey = "auth_principal"

type sessionValidator interface {
	Validate(tokenString string) (*service.SessionClaims, error)
	IsValidFor(tokenString string, userID uint64) bool
}

type principalLoader interface {
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}

type AuthMiddleware struct {
	codec sessionValidator
	users principalLoader
}

func NewAuthMiddleware(codec sessionValidator, users principalLoader) *AuthMiddleware {
	return &AuthMiddleware{codec: codec, users: users}
}

// Authenticate runs on every request. A missing or malformed credential
// passes the request through anonymously; protected routes reject later
// via RequireAuth. The single aborting path is an expired session, which
// gets its own message so clients can prompt a re-login.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logrus.Debug("Ignoring malformed authorization header")
			return next(c)
		}

		tokenString := parts[1]
		claims, err := m.codec.Validate(tokenString)
		if err != nil {
			if errors.Is(err, service.ErrAccessTokenExpired) {
				logrus.Debug("Session expired")
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "session expired, please log in again",
				})
			}
			logrus.Debug("Ignoring invalid access token")
			return next(c)
		}

		userID, err := claims.UserID()
		if err != nil {
			logrus.Debug("Ignoring access token with non-numeric subject")
			return next(c)
		}

		user, err := m.users.FindByID(c.Request().Context(), userID)
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("Failed to load principal")
			return next(c)
		}
		if user == nil {
			logrus.WithField("user_id", userID).Debug("Token subject no longer exists")
			return next(c)
		}

		if !m.codec.IsValidFor(tokenString, user.ID) {
			return next(c)
		}

		c.Set(principalContextKey, user)
		return next(c)
	}
}

// RequireAuth gates protected routes on a principal having been attached
// by Authenticate.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if Principal(c) == nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "authentication required",
			})
		}
		return next(c)
	}
}

// Principal returns the authenticated user attached to the request, or nil
// for anonymous requests.
func Principal(c echo.Context) *entity.User {
	user, _ := c.Get(principalContextKey).(*entity.User)
	return user
}
