package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

type fakeNoteRepo struct {
	notes  map[uint64]*entity.Note
	nextID uint64
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{notes: map[uint64]*entity.Note{}}
}

func (r *fakeNoteRepo) Create(_ context.Context, note *entity.Note) error {
	r.nextID++
	note.ID = r.nextID
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeNoteRepo) FindByID(_ context.Context, id uint64) (*entity.Note, error) {
	note, ok := r.notes[id]
	if !ok {
		return nil, nil
	}
	found := *note
	return &found, nil
}

func (r *fakeNoteRepo) FindByBookID(_ context.Context, bookID uint64) ([]*entity.Note, error) {
	var result []*entity.Note
	for id := uint64(1); id <= r.nextID; id++ {
		if note, ok := r.notes[id]; ok && note.BookID == bookID {
			found := *note
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *fakeNoteRepo) Update(_ context.Context, note *entity.Note) error {
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeNoteRepo) Delete(_ context.Context, id uint64) error {
	delete(r.notes, id)
	return nil
}

func newNoteServiceWithBook(t *testing.T, ownerID uint64) (*service.NoteService, *entity.Book) {
	t.Helper()
	books, book := newBookServiceWithBook(t, ownerID)
	return service.NewNoteService(newFakeNoteRepo(), books), book
}

func TestNoteCreate(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	note, err := svc.Create(context.Background(), 1, book.ID, "Loved the framing story.")
	require.NoError(t, err)
	assert.Equal(t, book.ID, note.BookID)
	assert.Equal(t, uint64(1), note.UserID)
	assert.Equal(t, "Loved the framing story.", note.Content)
}

func TestNoteCreateOnForeignBook(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	_, err := svc.Create(context.Background(), 2, book.ID, "Sneaky note")
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestNoteCreateOnMissingBook(t *testing.T) {
	svc, _ := newNoteServiceWithBook(t, 1)

	_, err := svc.Create(context.Background(), 1, 999, "Nowhere to go")
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}

func TestNoteListForBook(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	_, err := svc.Create(context.Background(), 1, book.ID, "First")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 1, book.ID, "Second")
	require.NoError(t, err)

	notes, err := svc.ListForBook(context.Background(), 1, book.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "First", notes[0].Content)
	assert.Equal(t, "Second", notes[1].Content)
}

func TestNoteListForForeignBook(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	_, err := svc.ListForBook(context.Background(), 2, book.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestNoteGetMissingBeforeOwnership(t *testing.T) {
	svc, _ := newNoteServiceWithBook(t, 1)

	_, err := svc.Get(context.Background(), 2, 999)
	assert.ErrorIs(t, err, service.ErrNoteNotFound)
	assert.NotErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestNoteUpdate(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	note, err := svc.Create(context.Background(), 1, book.ID, "Draft")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 1, note.ID, "Final")
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Content)
}

func TestNoteUpdateForeignOwner(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	note, err := svc.Create(context.Background(), 1, book.ID, "Mine")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 2, note.ID, "Hijacked")
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestNoteDelete(t *testing.T) {
	svc, book := newNoteServiceWithBook(t, 1)

	note, err := svc.Create(context.Background(), 1, book.ID, "Gone soon")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1, note.ID))

	_, err = svc.Get(context.Background(), 1, note.ID)
	assert.ErrorIs(t, err, service.ErrNoteNotFound)
}
