package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	httpdto "github.com/willy-it-wonka/Bookshelf-backend-sub000/app/dto/http"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/middleware"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

type AuthController struct {
	userAuthService     *service.UserAuthService
	confirmationService *service.ConfirmationService
}

func NewAuthController(userAuthService *service.UserAuthService, confirmationService *service.ConfirmationService) *AuthController {
	return &AuthController{
		userAuthService:     userAuthService,
		confirmationService: confirmationService,
	}
}

func (c *AuthController) Register(ctx echo.Context) error {
	var req httpdto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Register validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Register request received")
	user, token, err := c.userAuthService.Register(ctx.Request().Context(), req.Nick, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			logrus.WithField("email", req.Email).Warn("Register failed: user already exists")
			return ctx.JSON(http.StatusConflict, httpdto.ErrorResponse{Error: "user already exists"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("email", req.Email).Warn("Register failed: weak password")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Register failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")

	return ctx.JSON(http.StatusCreated, httpdto.RegisterResponse{
		UserID:       user.ID,
		Nick:         user.Nick,
		Email:        user.Email,
		ConfirmToken: token.Token,
		Message:      "registration successful, please confirm your account",
	})
}

func (c *AuthController) Login(ctx echo.Context) error {
	var req httpdto.LoginRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.WithField("email", req.Email).Debug("Login validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Login request received")
	result, err := c.userAuthService.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("Login failed: invalid credentials")
			return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "invalid credentials"})
		}
		if errors.Is(err, service.ErrAccountNotEnabled) {
			logrus.WithField("email", req.Email).Warn("Login failed: account not confirmed")
			return ctx.JSON(http.StatusForbidden, httpdto.ErrorResponse{Error: "account not confirmed"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Login failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Login successful")
	return ctx.JSON(http.StatusOK, httpdto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		Nick:        result.Nick,
	})
}

// Confirm handles the link from the confirmation email. The token arrives
// as a query parameter.
func (c *AuthController) Confirm(ctx echo.Context) error {
	token := ctx.QueryParam("token")
	if token == "" {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "token query parameter is required"})
	}

	logrus.Info("Confirm account request received")
	if err := c.confirmationService.Confirm(ctx.Request().Context(), token); err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			logrus.Warn("Confirm failed: token not found")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: "confirmation token not found"})
		}
		if errors.Is(err, service.ErrAlreadyConfirmed) {
			logrus.Warn("Confirm failed: already confirmed")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "account is already confirmed"})
		}
		if errors.Is(err, service.ErrTokenExpired) {
			logrus.Warn("Confirm failed: token expired")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "confirmation token has expired"})
		}
		logrus.WithError(err).Error("Confirm failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.Info("Account confirmed")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "Token confirmed."})
}

func (c *AuthController) ResendConfirmation(ctx echo.Context) error {
	var req httpdto.ResendConfirmationRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind resend confirmation request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Resend confirmation validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	logrus.WithField("email", req.Email).Info("Resend confirmation request received")
	_, err := c.confirmationService.ResendConfirmation(ctx.Request().Context(), req.Email)
	if err != nil {
		var tooSoon *service.TooSoonError
		if errors.As(err, &tooSoon) {
			logrus.WithField("email", req.Email).Warn("Resend confirmation failed: cooldown active")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: tooSoon.Error()})
		}
		if errors.Is(err, service.ErrUserNotFound) || errors.Is(err, service.ErrTokenNotFound) {
			logrus.WithField("email", req.Email).Warn("Resend confirmation failed: nothing to resend")
			return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: err.Error()})
		}
		if errors.Is(err, service.ErrAlreadyConfirmed) {
			logrus.WithField("email", req.Email).Warn("Resend confirmation failed: already confirmed")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "account is already confirmed"})
		}
		logrus.WithError(err).WithField("email", req.Email).Error("Resend confirmation failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("email", req.Email).Info("Confirmation email resent")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "confirmation email sent"})
}

func (c *AuthController) ChangePassword(ctx echo.Context) error {
	var req httpdto.ChangePasswordRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind change password request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Change password validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	if principal == nil {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "authentication required"})
	}

	logrus.WithField("user_id", principal.ID).Info("Change password request received")
	if err := c.userAuthService.ChangePassword(ctx.Request().Context(), principal.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrPasswordMismatch) {
			logrus.WithField("user_id", principal.ID).Warn("Change password failed: old password mismatch")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "old password is incorrect"})
		}
		if errors.Is(err, service.ErrWeakPassword) {
			logrus.WithField("user_id", principal.ID).Warn("Change password failed: weak password")
			return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
		}
		logrus.WithError(err).WithField("user_id", principal.ID).Error("Change password failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", principal.ID).Info("Password changed")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "password changed successfully"})
}

func (c *AuthController) ChangeNick(ctx echo.Context) error {
	var req httpdto.ChangeNickRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind change nick request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Change nick validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	if principal == nil {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "authentication required"})
	}

	logrus.WithField("user_id", principal.ID).Info("Change nick request received")
	accessToken, err := c.userAuthService.ChangeNick(ctx.Request().Context(), principal.ID, req.Nick)
	if err != nil {
		logrus.WithError(err).WithField("user_id", principal.ID).Error("Change nick failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", principal.ID).Info("Nick changed")
	return ctx.JSON(http.StatusOK, httpdto.ChangeNickResponse{
		AccessToken: accessToken,
		Message:     "nick changed successfully",
	})
}

func (c *AuthController) ChangeEmail(ctx echo.Context) error {
	var req httpdto.ChangeEmailRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind change email request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Change email validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	if principal == nil {
		return ctx.JSON(http.StatusUnauthorized, httpdto.ErrorResponse{Error: "authentication required"})
	}

	logrus.WithField("user_id", principal.ID).Info("Change email request received")
	if err := c.userAuthService.ChangeEmail(ctx.Request().Context(), principal.ID, req.Email); err != nil {
		if errors.Is(err, service.ErrUserExists) {
			logrus.WithField("user_id", principal.ID).Warn("Change email failed: email already in use")
			return ctx.JSON(http.StatusConflict, httpdto.ErrorResponse{Error: "email already in use"})
		}
		logrus.WithError(err).WithField("user_id", principal.ID).Error("Change email failed")
		return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
	}

	logrus.WithField("user_id", principal.ID).Info("Email changed")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "email changed successfully"})
}
