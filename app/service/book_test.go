package service_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

type fakeBookRepo struct {
	books  map[uint64]*entity.Book
	nextID uint64
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[uint64]*entity.Book{}}
}

func (r *fakeBookRepo) Create(_ context.Context, book *entity.Book) error {
	r.nextID++
	book.ID = r.nextID
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint64) (*entity.Book, error) {
	book, ok := r.books[id]
	if !ok {
		return nil, nil
	}
	found := *book
	return &found, nil
}

func (r *fakeBookRepo) FindByUserID(_ context.Context, userID uint64) ([]*entity.Book, error) {
	var result []*entity.Book
	for _, book := range r.books {
		if book.UserID == userID {
			found := *book
			result = append(result, &found)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *entity.Book) error {
	stored := *book
	r.books[book.ID] = &stored
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint64) error {
	delete(r.books, id)
	return nil
}

func newBookServiceWithBook(t *testing.T, ownerID uint64) (*service.BookService, *entity.Book) {
	t.Helper()
	svc := service.NewBookService(newFakeBookRepo())
	book, err := svc.Create(context.Background(), ownerID, service.BookInput{
		Title:  "The Name of the Wind",
		Author: "Patrick Rothfuss",
		Status: entity.BookStatusReading,
	})
	require.NoError(t, err)
	return svc, book
}

func TestBookCreateDefaultsToWaiting(t *testing.T) {
	svc := service.NewBookService(newFakeBookRepo())

	book, err := svc.Create(context.Background(), 1, service.BookInput{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusWaiting, book.Status)
	assert.Equal(t, uint64(1), book.UserID)
}

func TestBookCreateInvalidStatus(t *testing.T) {
	svc := service.NewBookService(newFakeBookRepo())

	_, err := svc.Create(context.Background(), 1, service.BookInput{
		Title:  "Dune",
		Author: "Frank Herbert",
		Status: "SHELVED",
	})
	assert.ErrorIs(t, err, service.ErrInvalidBookStatus)
}

func TestBookGetOwner(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	got, err := svc.Get(context.Background(), 1, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, got.ID)
	assert.Equal(t, "The Name of the Wind", got.Title)
}

func TestBookGetForeignOwner(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	_, err := svc.Get(context.Background(), 2, book.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)
}

// A missing book reports not-found even when the caller would not have
// owned it, so existence is decided before ownership.
func TestBookGetMissingBeforeOwnership(t *testing.T) {
	svc, _ := newBookServiceWithBook(t, 1)

	_, err := svc.Get(context.Background(), 2, 999)
	assert.ErrorIs(t, err, service.ErrBookNotFound)
	assert.NotErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestBookListForUserOnlyOwn(t *testing.T) {
	repo := newFakeBookRepo()
	svc := service.NewBookService(repo)

	_, err := svc.Create(context.Background(), 1, service.BookInput{Title: "Mine", Author: "A"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), 2, service.BookInput{Title: "Theirs", Author: "B"})
	require.NoError(t, err)

	books, err := svc.ListForUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Mine", books[0].Title)
}

func TestBookUpdatePartial(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	updated, err := svc.Update(context.Background(), 1, book.ID, service.BookInput{
		Status:      entity.BookStatusRead,
		LinkToCover: "https://covers.example.com/notw.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, updated.Status)
	assert.Equal(t, "The Name of the Wind", updated.Title)
	assert.Equal(t, "https://covers.example.com/notw.jpg", updated.LinkToCover.String)
	assert.True(t, updated.LinkToCover.Valid)
}

func TestBookUpdateInvalidStatus(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	_, err := svc.Update(context.Background(), 1, book.ID, service.BookInput{Status: "SHELVED"})
	assert.ErrorIs(t, err, service.ErrInvalidBookStatus)
}

func TestBookUpdateForeignOwner(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	_, err := svc.Update(context.Background(), 2, book.ID, service.BookInput{Title: "Hijacked"})
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)
}

func TestBookDelete(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	require.NoError(t, svc.Delete(context.Background(), 1, book.ID))

	_, err := svc.Get(context.Background(), 1, book.ID)
	assert.ErrorIs(t, err, service.ErrBookNotFound)
}

func TestBookDeleteForeignOwner(t *testing.T) {
	svc, book := newBookServiceWithBook(t, 1)

	err := svc.Delete(context.Background(), 2, book.ID)
	assert.ErrorIs(t, err, service.ErrUnauthorizedAccess)

	_, err = svc.Get(context.Background(), 1, book.ID)
	assert.NoError(t, err)
}
