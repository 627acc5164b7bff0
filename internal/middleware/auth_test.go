package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/internal/service"
)

// ============================================================================
// Mocks
// ============================================================================

type mockAuthService struct {
	validateFunc func(token string) (int64, error)
	getUserFunc  func(ctx context.Context, userID int64) (*model.User, error)
}

func (m *mockAuthService) ValidateAccessToken(token string) (int64, error) {
	if m.validateFunc != nil {
		return m.validateFunc(token)
	}
	return 0, errors.New("no validate func")
}

func (m *mockAuthService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(ctx, userID)
	}
	return &model.User{ID: userID, Email: "alice@example.com"}, nil
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) *model.ProblemDetails {
	t.Helper()

	var pd model.ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&pd); err != nil {
		t.Fatalf("failed to decode problem details: %v", err)
	}
	return &pd
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	t.Parallel()

	handler := Auth(&mockAuthService{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestAuth_WrongScheme_Returns401(t *testing.T) {
	t.Parallel()

	handler := Auth(&mockAuthService{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	t.Parallel()

	svc := &mockAuthService{
		validateFunc: func(_ string) (int64, error) {
			return 0, errors.New("bad token")
		},
	}
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
	pd := decodeProblem(t, rr)
	if pd.Detail != "invalid or expired token" {
		t.Errorf("unexpected detail %q", pd.Detail)
	}
}

func TestAuth_DeletedUser_SameResponseAsInvalidToken(t *testing.T) {
	t.Parallel()

	// A structurally valid token for an account that no longer exists must
	// be indistinguishable from an invalid token.
	svc := &mockAuthService{
		validateFunc: func(_ string) (int64, error) { return 99, nil },
		getUserFunc: func(_ context.Context, _ int64) (*model.User, error) {
			return nil, service.ErrUserNotFound
		},
	}
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", rr.Code)
	}
	pd := decodeProblem(t, rr)
	if pd.Detail != "invalid or expired token" {
		t.Errorf("detail should match the invalid-token response, got %q", pd.Detail)
	}
}

func TestAuth_StoreUnreachable_Returns503(t *testing.T) {
	t.Parallel()

	// An outage during principal lookup is not a credential problem; the
	// client holds a perfectly good token and must not be told to re-login.
	svc := &mockAuthService{
		validateFunc: func(_ string) (int64, error) { return 7, nil },
		getUserFunc: func(_ context.Context, _ int64) (*model.User, error) {
			return nil, fmt.Errorf("get user by id: %w", database.ErrConnection)
		},
	}
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", rr.Code)
	}
	pd := decodeProblem(t, rr)
	if pd.Detail == "invalid or expired token" {
		t.Error("outage response must not look like a credential failure")
	}
}

func TestAuth_UnexpectedLookupError_Returns500(t *testing.T) {
	t.Parallel()

	svc := &mockAuthService{
		validateFunc: func(_ string) (int64, error) { return 7, nil },
		getUserFunc: func(_ context.Context, _ int64) (*model.User, error) {
			return nil, errors.New("scan failed")
		},
	}
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
	pd := decodeProblem(t, rr)
	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("internal detail must not leak, got %q", pd.Detail)
	}
}

func TestAuth_ValidToken_SetsContext(t *testing.T) {
	t.Parallel()

	svc := &mockAuthService{
		validateFunc: func(token string) (int64, error) {
			if token != "good-token" {
				t.Errorf("unexpected token %q", token)
			}
			return 7, nil
		},
		getUserFunc: func(_ context.Context, userID int64) (*model.User, error) {
			return &model.User{ID: userID, Email: "alice@example.com"}, nil
		},
	}

	called := false
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if got := GetUserID(r.Context()); got != 7 {
			t.Errorf("expected user ID 7 in context, got %d", got)
		}
		principal := GetPrincipal(r.Context())
		if principal == nil || principal.Email != "alice@example.com" {
			t.Errorf("expected principal in context, got %v", principal)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("handler was not called")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}

func TestAuth_BearerSchemeCaseInsensitive(t *testing.T) {
	t.Parallel()

	svc := &mockAuthService{
		validateFunc: func(_ string) (int64, error) { return 7, nil },
	}

	called := false
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("lowercase scheme should be accepted")
	}
}

// ============================================================================
// Context Accessor Tests
// ============================================================================

func TestGetUserID_MissingValue_ReturnsZero(t *testing.T) {
	t.Parallel()

	if got := GetUserID(context.Background()); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestGetPrincipal_MissingValue_ReturnsNil(t *testing.T) {
	t.Parallel()

	if got := GetPrincipal(context.Background()); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}
