package repository

import (
	"context"
	"errors"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
)

// NoteRepository handles note data access
type NoteRepository struct {
	db database.Querier
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db database.Querier) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a new note for the given owner and fills in the generated
// ID and timestamps.
func (r *NoteRepository) Create(ctx context.Context, note *model.Note) error {
	query := `
		INSERT INTO notes (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, note.Title, note.Content, note.OwnerID).
		Scan(&note.ID, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return database.Translate(err)
	}
	return nil
}

// ListActive returns all non-deleted notes owned by ownerID, oldest first.
// Ties on created_at break by ID so the order is stable.
func (r *NoteRepository) ListActive(ctx context.Context, ownerID int64) ([]model.Note, error) {
	query := `
		SELECT id, title, content, owner_id, created_at, updated_at, deleted_at
		FROM notes
		WHERE owner_id = $1 AND deleted_at IS NULL
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, database.Translate(err)
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID,
			&n.CreatedAt, &n.UpdatedAt, &n.DeletedAt)
		if err != nil {
			return nil, database.Translate(err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Translate(err)
	}
	return notes, nil
}

// Update overwrites the title and content of an active note owned by ownerID
// and returns the updated row. Ownership and liveness are checked in the same
// statement, so a note owned by someone else and a note that never existed
// both come back as database.ErrNotFound.
func (r *NoteRepository) Update(ctx context.Context, id, ownerID int64, title, content string) (*model.Note, error) {
	query := `
		UPDATE notes
		SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 AND owner_id = $4 AND deleted_at IS NULL
		RETURNING id, title, content, owner_id, created_at, updated_at, deleted_at
	`

	var n model.Note
	err := r.db.QueryRow(ctx, query, title, content, id, ownerID).
		Scan(&n.ID, &n.Title, &n.Content, &n.OwnerID,
			&n.CreatedAt, &n.UpdatedAt, &n.DeletedAt)
	if err != nil {
		err = database.Translate(err)
		if errors.Is(err, database.ErrNotFound) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// SoftDelete marks an active note owned by ownerID as deleted. Deleting an
// already-deleted note reports database.ErrNotFound, same as a missing or
// foreign note. updated_at is left alone; deletion is not an edit.
func (r *NoteRepository) SoftDelete(ctx context.Context, id, ownerID int64) error {
	query := `
		UPDATE notes
		SET deleted_at = now()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`

	tag, err := r.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return database.Translate(err)
	}
	if tag.RowsAffected() == 0 {
		return database.ErrNotFound
	}
	return nil
}
