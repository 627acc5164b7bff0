package service

import (
	"context"
	"errors"
	"runtime"
	"strconv"
	"strings"

	"github.com/cloudnotes/api/internal/database"
	"github.com/cloudnotes/api/internal/model"
	"github.com/cloudnotes/api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Bearer token type per RFC 6750
	tokenTypeBearer = "bearer"
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles registration, login, and token validation
type AuthService struct {
	userRepo UserRepository
	tokens   *jwt.Service

	// bcrypt is CPU-bound; bound concurrent hashing so a burst of
	// register/login requests cannot starve the rest of the server.
	hashSem *semaphore.Weighted
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
	Tokens   *jwt.Service
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo: cfg.UserRepo,
		tokens:   cfg.Tokens,
		hashSem:  semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string
	Password string
}

// Register creates a new user account with email/password.
// The email is stored as given after trimming surrounding whitespace; two
// addresses differing only in case are distinct accounts.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	// Fast-path duplicate check. The unique index remains the source of
	// truth for concurrent registrations.
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := s.hashPassword(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// TokenResult represents an issued access token
type TokenResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login authenticates a user with email/password and issues an access token.
// An unknown email and a wrong password both come back as
// ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResult, error) {
	email := strings.TrimSpace(req.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.checkPassword(ctx, req.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Sign(jwt.Claims{
		Subject: strconv.FormatInt(user.ID, 10),
	})
	if err != nil {
		return nil, err
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateAccessToken verifies a token's signature and expiry and returns
// the user ID it was issued for. Any defect in the token, including a
// non-numeric subject, reports ErrInvalidCredentials.
func (s *AuthService) ValidateAccessToken(token string) (int64, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return 0, ErrInvalidCredentials
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidCredentials
	}
	return userID, nil
}

// Helper functions

func (s *AuthService) hashPassword(ctx context.Context, password string) (string, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer s.hashSem.Release(1)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) checkPassword(ctx context.Context, password, hash string) (bool, error) {
	if err := s.hashSem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer s.hashSem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}
