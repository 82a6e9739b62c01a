package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	httpdto "github.com/willy-it-wonka/Bookshelf-backend-sub000/app/dto/http"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/entity"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/middleware"
	"github.com/willy-it-wonka/Bookshelf-backend-sub000/app/service"
)

type NoteController struct {
	noteService *service.NoteService
}

func NewNoteController(noteService *service.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

func (c *NoteController) Create(ctx echo.Context) error {
	bookID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid book id"})
	}

	var req httpdto.NoteRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind create note request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Create note validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	note, err := c.noteService.Create(ctx.Request().Context(), principal.ID, bookID, req.Content)
	if err != nil {
		return resourceError(ctx, err, "Create note")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"book_id": bookID,
		"note_id": note.ID,
	}).Info("Note created")
	return ctx.JSON(http.StatusCreated, noteResponse(note))
}

func (c *NoteController) ListForBook(ctx echo.Context) error {
	bookID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid book id"})
	}

	principal := middleware.Principal(ctx)
	notes, err := c.noteService.ListForBook(ctx.Request().Context(), principal.ID, bookID)
	if err != nil {
		return resourceError(ctx, err, "List notes")
	}

	resp := make([]httpdto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		resp = append(resp, noteResponse(note))
	}
	return ctx.JSON(http.StatusOK, resp)
}

func (c *NoteController) Update(ctx echo.Context) error {
	noteID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid note id"})
	}

	var req httpdto.NoteRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update note request")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Update note validation failed")
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: err.Error()})
	}

	principal := middleware.Principal(ctx)
	note, err := c.noteService.Update(ctx.Request().Context(), principal.ID, noteID, req.Content)
	if err != nil {
		return resourceError(ctx, err, "Update note")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"note_id": note.ID,
	}).Info("Note updated")
	return ctx.JSON(http.StatusOK, noteResponse(note))
}

func (c *NoteController) Delete(ctx echo.Context) error {
	noteID, err := pathID(ctx, "id")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid note id"})
	}

	principal := middleware.Principal(ctx)
	if err := c.noteService.Delete(ctx.Request().Context(), principal.ID, noteID); err != nil {
		return resourceError(ctx, err, "Delete note")
	}

	logrus.WithFields(logrus.Fields{
		"user_id": principal.ID,
		"note_id": noteID,
	}).Info("Note deleted")
	return ctx.JSON(http.StatusOK, httpdto.MessageResponse{Message: "note deleted"})
}

func noteResponse(note *entity.Note) httpdto.NoteResponse {
	return httpdto.NoteResponse{
		ID:        note.ID,
		BookID:    note.BookID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
