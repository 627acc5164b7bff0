package handler

import (
	"errors"
	"log/slog"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Authentication Errors → 401 =====
	case errors.Is(err, service.ErrInvalidCredentials):
		return model.NewUnauthorizedError(err.Error())

	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrUserNotFound):
		return model.NewNotFoundError("User")
	case errors.Is(err, service.ErrNoteNotFound):
		return model.NewNotFoundError("Note")

	// ===== Duplicate Registration → 400 =====
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return model.NewBadRequestError(err.Error())

	// ===== Validation Errors → 422 =====
	case errors.Is(err, service.ErrInvalidEmail):
		return model.NewValidationError([]model.FieldError{{Field: "email", Message: err.Error()}})
	case errors.Is(err, service.ErrPasswordRequired):
		return model.NewValidationError([]model.FieldError{{Field: "password", Message: err.Error()}})

	// ===== Storage Unreachable → 503 =====
	case errors.Is(err, database.ErrConnection):
		slog.Error("storage unavailable", slog.Any("error", err))
		return model.NewServiceUnavailableError("")

	// ===== Default → 500 =====
	default:
		// Internal detail never reaches the client; log it here instead.
		slog.Error("unhandled service error", slog.Any("error", err))
		return model.NewInternalError("")
	}
}
