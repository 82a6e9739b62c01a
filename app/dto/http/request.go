package http

import (
	"errors"
	"strings"
)

type RegisterRequest struct {
	Nick     string `json:"nick"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Nick) == "" || strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("nick, email and password are required")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("email and password are required")
	}
	return nil
}

type ResendConfirmationRequest struct {
	Email string `json:"email"`
}

func (r *ResendConfirmationRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	if strings.TrimSpace(r.OldPassword) == "" || strings.TrimSpace(r.NewPassword) == "" {
		return errors.New("old_password and new_password are required")
	}
	return nil
}

type ChangeNickRequest struct {
	Nick string `json:"nick"`
}

func (r *ChangeNickRequest) Validate() error {
	if strings.TrimSpace(r.Nick) == "" {
		return errors.New("nick is required")
	}
	return nil
}

type ChangeEmailRequest struct {
	Email string `json:"email"`
}

func (r *ChangeEmailRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type BookRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Status      string `json:"status"`
	LinkToCover string `json:"link_to_cover"`
}

func (r *BookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.Author) == "" {
		return errors.New("title and author are required")
	}
	return nil
}

type BookUpdateRequest struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Status      string `json:"status"`
	LinkToCover string `json:"link_to_cover"`
}

type NoteRequest struct {
	Content string `json:"content"`
}

func (r *NoteRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}
