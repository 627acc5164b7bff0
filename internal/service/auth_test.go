package service

import (
	"context"
	"testing"
	"time"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ============================================================================
// Mocks
// ============================================================================

type mockUserRepo struct {
	createFunc     func(ctx context.Context, user *model.User) error
	getByIDFunc    func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFunc func(ctx context.Context, email string) (*model.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	user.ID = 1
	user.CreatedAt = time.Now()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, nil
}

func newTestAuthService(t *testing.T, repo UserRepository) *AuthService {
	t.Helper()

	tokens, err := jwt.NewService(jwt.Config{
		Secret:     []byte("test-secret"),
		Issuer:     "cloudnotes-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	return NewAuthService(AuthServiceConfig{UserRepo: repo, Tokens: tokens})
}

// ============================================================================
// Register Tests
// ============================================================================

func TestRegister_ValidInput_CreatesUser(t *testing.T) {
	t.Parallel()

	var created *model.User
	repo := &mockUserRepo{
		createFunc: func(_ context.Context, user *model.User) error {
			user.ID = 42
			user.CreatedAt = time.Now()
			created = user
			return nil
		},
	}
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(42), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
}

func TestRegister_TrimsWhitespace_PreservesCase(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	user, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Alice@Example.COM  ",
		Password: "pw",
	})

	require.NoError(t, err)
	// Case is significant: the address is stored exactly as given.
	assert.Equal(t, "Alice@Example.COM", user.Email)
}

func TestRegister_InvalidEmail_ReturnsError(t *testing.T) {
	t.Parallel()

	invalid := []string{"", "no-at-sign", "@nodomain.com", "user@", "user@nodot", "user@dot."}

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	for _, email := range invalid {
		_, err := svc.Register(context.Background(), RegisterRequest{
			Email:    email,
			Password: "pw",
		})
		assert.ErrorIs(t, err, ErrInvalidEmail, "email %q should be rejected", email)
	}
}

func TestRegister_EmptyPassword_ReturnsError(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "",
	})

	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegister_ExistingEmail_ReturnsAlreadyExists(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			return &model.User{ID: 1, Email: email}, nil
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "pw",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_ConcurrentDuplicate_ReturnsAlreadyExists(t *testing.T) {
	t.Parallel()

	// The pre-check misses, but the unique index trips on insert.
	repo := &mockUserRepo{
		createFunc: func(_ context.Context, _ *model.User) error {
			return database.ErrDuplicate
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "alice@example.com",
		Password: "pw",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

// ============================================================================
// Login Tests
// ============================================================================

func userWithPassword(t *testing.T, id int64, email, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{ID: id, Email: email, PasswordHash: string(hash)}
}

func TestLogin_ValidCredentials_ReturnsBearerToken(t *testing.T) {
	t.Parallel()

	stored := userWithPassword(t, 7, "alice@example.com", "pw")
	repo := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, email string) (*model.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, nil
		},
	}
	svc := newTestAuthService(t, repo)

	result, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "bearer", result.TokenType)
	assert.NotEmpty(t, result.AccessToken)

	// The token must round-trip back to the user's ID.
	userID, err := svc.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestLogin_UnknownEmail_ReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "nobody@example.com",
		Password: "pw",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword_ReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	stored := userWithPassword(t, 7, "alice@example.com", "pw")
	repo := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, _ string) (*model.User, error) {
			return stored, nil
		},
	}
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ============================================================================
// GetUserByID Tests
// ============================================================================

func TestGetUserByID_Found_ReturnsUser(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "alice@example.com"}, nil
		},
	}
	svc := newTestAuthService(t, repo)

	user, err := svc.GetUserByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestGetUserByID_Missing_ReturnsUserNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockUserRepo{}
	svc := newTestAuthService(t, repo)

	_, err := svc.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

// ============================================================================
// ValidateAccessToken Tests
// ============================================================================

func TestValidateAccessToken_Garbage_ReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(t, &mockUserRepo{})

	_, err := svc.ValidateAccessToken("not.a.token")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAccessToken_NonNumericSubject_ReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	tokens, err := jwt.NewService(jwt.Config{
		Secret:     []byte("test-secret"),
		Issuer:     "cloudnotes-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := tokens.Sign(jwt.Claims{Subject: "alice"})
	require.NoError(t, err)

	svc := newTestAuthService(t, &mockUserRepo{})

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateAccessToken_WrongSecret_ReturnsInvalidCredentials(t *testing.T) {
	t.Parallel()

	other, err := jwt.NewService(jwt.Config{
		Secret:     []byte("different-secret"),
		Issuer:     "cloudnotes-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	token, err := other.Sign(jwt.Claims{Subject: "7"})
	require.NoError(t, err)

	svc := newTestAuthService(t, &mockUserRepo{})

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ============================================================================
// Email Validation Tests
// ============================================================================

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{"alice@example.com", true},
		{"a@b.co", true},
		{"first.last@sub.domain.org", true},
		{"", false},
		{"plain", false},
		{"@example.com", false},
		{"user@", false},
		{"user@nodot", false},
		{"user@dot.", false},
	}

	for _, tt := range tests {
		got := isValidEmail(tt.email)
		assert.Equal(t, tt.want, got, "email %q", tt.email)
	}
}
