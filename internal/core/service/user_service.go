package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trichyfresh/connect/internal/core/domain"
	"github.com/trichyfresh/connect/internal/port"
)

// PasswordHasher abstracts the credential hash so tests don't pay bcrypt cost.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns an error when the password does not match the hash
	Compare(passwordHash, password string) error
}

// TokenIssuer signs an access token for an authenticated user.
type TokenIssuer interface {
	Issue(u *domain.User) (string, error)
}

type UserService struct {
	users  port.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewUserService(users port.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{users: users, hasher: hasher, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, name, email, password string, role domain.Role, talukID int64) (int64, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.users.CreateUser(ctx, domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		TalukID:      talukID,
	})
}

// Login verifies credentials and returns a signed token with the user.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(u.PasswordHash, oldPassword); err != nil {
		return domain.ErrForbidden
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}
