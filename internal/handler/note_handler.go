package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"notesvc/internal/auth"
	"notesvc/internal/service"
)

// NoteHandler handles note endpoints. Every handler takes the owner from the
// authenticated identity on the request context.
type NoteHandler struct {
	noteService service.NoteService
	log         logrus.FieldLogger
}

// NewNoteHandler creates a new note handler.
func NewNoteHandler(noteService service.NoteService, log logrus.FieldLogger) *NoteHandler {
	return &NoteHandler{noteService: noteService, log: log}
}

// CreateNoteRequest represents a note creation request. Content may be empty.
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// ListNotes godoc
// @Summary List the caller's notes, oldest first
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Note
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [get]
func (h *NoteHandler) ListNotes(c echo.Context) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.ListByOwner(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, notes)
}

// CreateNote godoc
// @Summary Create a note owned by the caller
// @Tags notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNoteRequest true "Note content"
// @Success 200 {object} model.Note
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes [post]
func (h *NoteHandler) CreateNote(c echo.Context) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	var req CreateNoteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	note, err := h.noteService.Create(c.Request().Context(), identity.UserID, req.Content)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, note)
}

// DeleteNote godoc
// @Summary Delete one of the caller's notes
// @Description Succeeds even when the id does not exist or belongs to another user; nothing is deleted in that case.
// @Tags notes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Note ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	identity, err := auth.MustIdentity(c)
	if err != nil {
		return err
	}

	// An id that is not a UUID cannot match any note: same silent success.
	if noteID, err := uuid.Parse(c.Param("id")); err == nil {
		if err := h.noteService.DeleteByOwnerAndID(c.Request().Context(), identity.UserID, noteID); err != nil {
			return respondError(c, h.log, err)
		}
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Note deleted"})
}
