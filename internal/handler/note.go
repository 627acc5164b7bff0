package handler

import (
	"net/http"
	"strconv"

	"github.com/cloudnotes/api/internal/middleware"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/internal/service"
)

// NoteHandler handles the note endpoints. All of them run behind the Auth
// middleware and operate on the authenticated user's notes only.
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// noteRequest uses pointers so a missing key can be told apart from an
// empty value. Empty strings are accepted.
type noteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func decodeNoteRequest(w http.ResponseWriter, r *http.Request) (*noteRequest, bool) {
	var req noteRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return nil, false
	}

	var fields []model.FieldError
	if req.Title == nil {
		fields = append(fields, model.FieldError{Field: "title", Message: "field required"})
	}
	if req.Content == nil {
		fields = append(fields, model.FieldError{Field: "content", Message: "field required"})
	}
	if len(fields) > 0 {
		WriteError(w, model.NewValidationError(fields))
		return nil, false
	}
	return &req, true
}

// noteID parses the {id} path segment. A malformed ID cannot name any note,
// so it reports the same 404 as a missing one.
func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteError(w, model.NewNotFoundError("Note"))
		return 0, false
	}
	return id, true
}

// Create handles POST /notes
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNoteRequest(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), middleware.GetUserID(r.Context()), service.NoteInput{
		Title:   *req.Title,
		Content: *req.Content,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, note)
}

// List handles GET /notes
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, notes)
}

// Update handles PUT /notes/{id}
func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	req, ok := decodeNoteRequest(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), id, middleware.GetUserID(r.Context()), service.NoteInput{
		Title:   *req.Title,
		Content: *req.Content,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, note)
}

// Delete handles DELETE /notes/{id}
func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"detail": "Note deleted"})
}
