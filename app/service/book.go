package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
)

type bookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	FindByID(ctx context.Context, id uint64) (*entity.Book, error)
	FindByUserID(ctx context.Context, userID uint64) ([]*entity.Book, error)
	Update(ctx context.Context, book *entity.Book) error
	Delete(ctx context.Context, id uint64) error
}

type BookInput struct {
	Title       string
	Author      string
	Status      string
	LinkToCover string
}

type BookService struct {
	bookRepo bookRepository
}

func NewBookService(bookRepo bookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

func (s *BookService) Create(ctx context.Context, principalID uint64, input BookInput) (*entity.Book, error) {
	status := input.Status
	if status == "" {
		status = entity.BookStatusWaiting
	}
	if !entity.ValidBookStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookStatus, status)
	}

	now := time.Now()
	book := &entity.Book{
		UserID:      principalID,
		Title:       input.Title,
		Author:      input.Author,
		Status:      status,
		LinkToCover: nullString(input.LinkToCover),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) ListForUser(ctx context.Context, principalID uint64) ([]*entity.Book, error) {
	return s.bookRepo.FindByUserID(ctx, principalID)
}

// Get loads a single book. Existence is checked before ownership, so a
// caller probing foreign IDs cannot distinguish "not yours" from
// "does not exist" by the error alone.
func (s *BookService) Get(ctx context.Context, principalID, bookID uint64) (*entity.Book, error) {
	book, err := s.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if err := requireOwner(book.UserID, principalID); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Update(ctx context.Context, principalID, bookID uint64, input BookInput) (*entity.Book, error) {
	book, err := s.Get(ctx, principalID, bookID)
	if err != nil {
		return nil, err
	}

	if input.Status != "" && !entity.ValidBookStatus(input.Status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBookStatus, input.Status)
	}

	if input.Title != "" {
		book.Title = input.Title
	}
	if input.Author != "" {
		book.Author = input.Author
	}
	if input.Status != "" {
		book.Status = input.Status
	}
	if input.LinkToCover != "" {
		book.LinkToCover = nullString(input.LinkToCover)
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, principalID, bookID uint64) error {
	if _, err := s.Get(ctx, principalID, bookID); err != nil {
		return err
	}
	return s.bookRepo.Delete(ctx, bookID)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
