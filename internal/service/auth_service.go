package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles user auth logic
type AuthService struct {
	authRepo repository.Authorization
}

func NewAuthService(repo repository.Authorization) *AuthService {
	return &AuthService{authRepo: repo}
}

// SignUp hashes password and creates a new user. Existing usernames are
// left untouched and reported as ErrDuplicateUsername.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (int64, error) {
	if err := validateCredentials(username, password); err != nil {
		return 0, err
	}

	existing, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateUsername
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.authRepo.Create(ctx, username, hash)
	if err != nil {
		// lost a race with a concurrent signup
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrDuplicateUsername
		}
		return 0, err
	}
	return id, nil
}

// Authenticate returns the user whose password matches. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.authRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func validateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return newValidationError("username", KindRequired, "must not be empty")
	}
	if strings.TrimSpace(password) == "" {
		return newValidationError("password", KindRequired, "must not be empty")
	}
	return nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", newValidationError("password", KindTooLong, "must be at most 72 bytes")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
