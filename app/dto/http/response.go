package http

import "time"

type RegisterResponse struct {
	UserID       uint64 `json:"user_id"`
	Nick         string `json:"nick"`
	Email        string `json:"email"`
	ConfirmToken string `json:"confirm_token"`
	Message      string `json:"message"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Nick        string `json:"nick"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ChangeNickResponse struct {
	AccessToken string `json:"access_token"`
	Message     string `json:"message"`
}

type BookResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Status      string    `json:"status"`
	LinkToCover string    `json:"link_to_cover,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type NoteResponse struct {
	ID        uint64    `json:"id"`
	BookID    uint64    `json:"book_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
