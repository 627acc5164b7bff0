package service

import (
	"context"
	"errors"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
)

// NoteRepository defines the interface for note storage
type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) error
	ListActive(ctx context.Context, ownerID int64) ([]model.Note, error)
	Update(ctx context.Context, id, ownerID int64, title, content string) (*model.Note, error)
	SoftDelete(ctx context.Context, id, ownerID int64) error
}

// NoteService handles note operations. Every method takes the ID of the
// authenticated user and never touches notes owned by anyone else.
type NoteService struct {
	noteRepo NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(noteRepo NoteRepository) *NoteService {
	return &NoteService{noteRepo: noteRepo}
}

// NoteInput carries the writable fields of a note
type NoteInput struct {
	Title   string
	Content string
}

// CreateNote creates a note owned by ownerID
func (s *NoteService) CreateNote(ctx context.Context, ownerID int64, input NoteInput) (*model.Note, error) {
	note := &model.Note{
		Title:   input.Title,
		Content: input.Content,
		OwnerID: ownerID,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes returns all active notes owned by ownerID, oldest first.
// An owner with no notes gets an empty slice, not nil.
func (s *NoteService) ListNotes(ctx context.Context, ownerID int64) ([]model.Note, error) {
	notes, err := s.noteRepo.ListActive(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// UpdateNote overwrites the title and content of a note owned by ownerID.
// A note that does not exist, was deleted, or belongs to another user
// reports ErrNoteNotFound; the caller cannot tell which.
func (s *NoteService) UpdateNote(ctx context.Context, id, ownerID int64, input NoteInput) (*model.Note, error) {
	note, err := s.noteRepo.Update(ctx, id, ownerID, input.Title, input.Content)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

// DeleteNote soft-deletes a note owned by ownerID. Missing, already deleted,
// and foreign notes all report ErrNoteNotFound.
func (s *NoteService) DeleteNote(ctx context.Context, id, ownerID int64) error {
	if err := s.noteRepo.SoftDelete(ctx, id, ownerID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	return nil
}
