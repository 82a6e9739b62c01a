package service

import (
	"context"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
)

type noteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindByID(ctx context.Context, id uint64) (*entity.Note, error)
	FindByBookID(ctx context.Context, bookID uint64) ([]*entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uint64) error
}

type noteBookLookup interface {
	Get(ctx context.Context, principalID, bookID uint64) (*entity.Book, error)
}

type NoteService struct {
	noteRepo noteRepository
	books    noteBookLookup
}

func NewNoteService(noteRepo noteRepository, books noteBookLookup) *NoteService {
	return &NoteService{noteRepo: noteRepo, books: books}
}

// Create attaches a note to a book the principal owns. The book lookup
// carries the ownership check, so a foreign book yields not-found or
// unauthorized before any note is written.
func (s *NoteService) Create(ctx context.Context, principalID, bookID uint64, content string) (*entity.Note, error) {
	if _, err := s.books.Get(ctx, principalID, bookID); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &entity.Note{
		BookID:    bookID,
		UserID:    principalID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListForBook(ctx context.Context, principalID, bookID uint64) ([]*entity.Note, error) {
	if _, err := s.books.Get(ctx, principalID, bookID); err != nil {
		return nil, err
	}
	return s.noteRepo.FindByBookID(ctx, bookID)
}

func (s *NoteService) Get(ctx context.Context, principalID, noteID uint64) (*entity.Note, error) {
	note, err := s.noteRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	if err := requireOwner(note.UserID, principalID); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, principalID, noteID uint64, content string) (*entity.Note, error) {
	note, err := s.Get(ctx, principalID, noteID)
	if err != nil {
		return nil, err
	}

	note.Content = content
	if err := s.noteRepo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, principalID, noteID uint64) error {
	if _, err := s.Get(ctx, principalID, noteID); err != nil {
		return err
	}
	return s.noteRepo.Delete(ctx, noteID)
}
