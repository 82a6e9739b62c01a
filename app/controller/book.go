package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	httpdto "github.com/willy-it-wonka/Bookshelf-backend-sub000/app/dto/http"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/middleware"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

type BookController struct {
	bookService *service.BookService
}

func NewBookController(bookService *service.BookService) *BookController {
	return &BookController{bookService: bookService}
}

func (c *BookController) Create(ctx echo.Context) error {
	var req httpdto.BookRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind create book request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Create book validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	book, err := c.bookService.Create(ctx.Request().Context(), principal.ID, service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Status:      req.Status,
		LinkToCover: req.LinkToCover,
	})
	if err != nil {
		return resourceError(ctx, err, "Create book")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"book_id": book.ID,
	}).Info("Book created")
	return ctx.JSON(http.StatusCreated, bookResponse(book))
}

func (c *BookController) List(ctx echo.Context) error {
	principal := middleware.Principal(ctx)
	books, err := c.bookService.ListForUser(ctx.Request().Context(), principal.ID)
	if err != nil {
		return resourceError(ctx, err, "List books")
	}

	resp := make([]httpdto.BookResponse, 0, len(books))
	for _, book := range books {
		resp = append(resp, bookResponse(book))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (c *BookController) Get(ctx echo.Context) error {
	bookID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid book id"})
	}

	principal := middleware.Principal(ctx)
	book, err := c.bookService.Get(ctx.Request().Context(), principal.ID, bookID)
	if err != nil {
		return resourceError(ctx, err, "Get book")
	}
	return ctx.JSON(http.StatusOK, bookResponse(book))
}

func (c *BookController) Update(ctx echo.Context) error {
	bookID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid book id"})
	}

	var req httpdto.BookUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update book request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	principal := middleware.Principal(ctx)
	book, err := c.bookService.Update(ctx.Request().Context(), principal.ID, bookID, service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Status:      req.Status,
		LinkToCover: req.LinkToCover,
	})
	if err != nil {
		return resourceError(ctx, err, "Update book")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"book_id": book.ID,
	}).Info("Book updated")
	return ctx.JSON(http.StatusOK, bookResponse(book))
}

func (c *BookController) Delete(ctx echo.Context) error {
	bookID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid book id"})
	}

	principal := middleware.Principal(ctx)
	if err := c.bookService.Delete(ctx.Request().Context(), principal.ID, bookID); err != nil {
		return resourceError(ctx, err, "Delete book")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"book_id": bookID,
	}).Info("Book deleted")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "book deleted"})
}

func bookResponse(book *entity.Book) httpdto.BookResponse {
	resp := httpdto.BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Status:    book.Status,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
	if book.LinkToCover.Valid {
		resp.LinkToCover = book.LinkToCover.String
	}
	return resp
}

func pathID(ctx echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(ctx.Param(name), 10, 64)
}

// resourceError maps the resource-service error taxonomy onto HTTP status
// classes: not-found before ownership, ownership as forbidden, everything
// else opaque.
func resourceError(ctx echo.Context, err error, action string) error {
	if errors.Is(err, service.ErrInvalidBookStatus) {
		logrus.Debug(action + " failed: invalid status")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, service.ErrBookNotFound) || errors.Is(err, service.ErrNoteNotFound) {
		logrus.Debug(action + " failed: not found")
		return ctx.JSON(http.StatusNotFound, httpdto.ErrorResponse{Error: err.Error()})
	}
	if errors.Is(err, service.ErrUnauthorizedAccess) {
		logrus.Warn(action + " failed: not the owner")
		return ctx.JSON(http.StatusForbidden, httpdto.ErrorResponse{Error: err.Error()})
	}
	logrus.WithError(err).Error(action + " failed")
	return ctx.JSON(http.StatusInternalServerError, httpdto.ErrorResponse{Error: "internal server error"})
}
