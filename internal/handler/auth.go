package handler

import (
	"net/http"

	"github.com/cloudnotes/api/internal/middleware"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/internal/service"
)

// AuthHandler handles registration, login, and the current-user endpoint
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// registerRequest uses pointers so a missing key can be told apart from an
// empty value.
type registerRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	var fields []model.FieldError
	if req.Email == nil {
		fields = append(fields, model.FieldError{Field: "email", Message: "field required"})
	}
	if req.Password == nil {
		fields = append(fields, model.FieldError{Field: "password", Message: "field required"})
	}
	if len(fields) > 0 {
		WriteError(w, model.NewValidationError(fields))
		return
	}

	user, err := h.authService.Register(r.Context(), service.RegisterRequest{
		Email:    *req.Email,
		Password: *req.Password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Login handles POST /login. Credentials arrive form-encoded with the
// OAuth2 password-grant field names: username carries the email.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, model.NewBadRequestError("invalid form body"))
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	var fields []model.FieldError
	if email == "" {
		fields = append(fields, model.FieldError{Field: "username", Message: "field required"})
	}
	if password == "" {
		fields = append(fields, model.FieldError{Field: "password", Message: "field required"})
	}
	if len(fields) > 0 {
		WriteError(w, model.NewValidationError(fields))
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetPrincipal(r.Context())
	if user == nil {
		WriteError(w, model.NewUnauthorizedError("not authenticated"))
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
