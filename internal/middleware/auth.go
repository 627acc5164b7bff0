package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/internal/service"
)

// AuthService defines the interface for token validation and principal lookup
type AuthService interface {
	ValidateAccessToken(token string) (int64, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
}

// Auth returns a middleware that validates bearer tokens and resolves the
// authenticated user. A valid token whose subject no longer exists gets the
// same response as an invalid one, so tokens cannot be used to probe which
// accounts exist.
func Auth(authService AuthService) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}

			// Check Bearer prefix
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			token := parts[1]

			userID, err := authService.ValidateAccessToken(token)
			if err != nil {
				model.NewUnauthorizedError("invalid or expired token").WriteJSON(w)
				return
			}

			user, err := authService.GetUserByID(r.Context(), userID)
			if err != nil {
				// Only a missing subject is a credential problem; a store
				// failure must not tell the client to re-login.
				switch {
				case errors.Is(err, service.ErrUserNotFound):
					model.NewUnauthorizedError("invalid or expired token").WriteJSON(w)
				case errors.Is(err, database.ErrConnection):
					slog.Error("storage unavailable during auth", slog.Any("error", err))
					model.NewServiceUnavailableError("").WriteJSON(w)
				default:
					slog.Error("principal lookup failed", slog.Any("error", err))
					model.NewInternalError("").WriteJSON(w)
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, PrincipalKey, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's ID from context.
// Returns 0 when the request did not pass through Auth.
func GetUserID(ctx context.Context) int64 {
	if id, ok := ctx.Value(UserIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetPrincipal extracts the authenticated user from context.
// Returns nil when the request did not pass through Auth.
func GetPrincipal(ctx context.Context) *model.User {
	if user, ok := ctx.Value(PrincipalKey).(*model.User); ok {
		return user
	}
	return nil
}
