package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
)

type BookRepository struct {
	db *sql.DB
}

func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO books (user_id, title, author, status, link_to_cover, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		book.UserID,
		book.Title,
		book.Author,
		book.Status,
		book.LinkToCover,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	book.ID = uint64(id)
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, id uint64) (*entity.Book, error) {
	query := `
		SELECT id, user_id, title, author, status, link_to_cover, created_at, updated_at
		FROM books WHERE id = ?
	`
	book := &entity.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.UserID,
		&book.Title,
		&book.Author,
		&book.Status,
		&book.LinkToCover,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return book, nil
}

func (r *BookRepository) FindByUserID(ctx context.Context, userID uint64) ([]*entity.Book, error) {
	query := `
		SELECT id, user_id, title, author, status, link_to_cover, created_at, updated_at
		FROM books WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*entity.Book
	for rows.Next() {
		book := &entity.Book{}
		if err := rows.Scan(
			&book.ID,
			&book.UserID,
			&book.Title,
			&book.Author,
			&book.Status,
			&book.LinkToCover,
			&book.CreatedAt,
			&book.UpdatedAt,
		); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func (r *BookRepository) Update(ctx context.Context, book *entity.Book) error {
	query := `
		UPDATE books SET
			title = ?,
			author = ?,
			status = ?,
			link_to_cover = ?,
			updated_at = ?
		WHERE id = ?
	`
	book.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		book.Title,
		book.Author,
		book.Status,
		book.LinkToCover,
		book.UpdatedAt,
		book.ID,
	)
	return err
}

func (r *BookRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM books WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
