package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"timedesk/internal/domain"
	"timedesk/internal/repository"
)

type jwtService interface {
	GenerateToken(userID int64, role, language string) (string, error)
}

type userRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Service verifies credentials and issues access tokens. Credential
// verification is the only entry point: callers get back a user or an
// error, nothing in between.
type Service struct {
	users userRepository
	jwt   jwtService
}

func NewService(users userRepository, jwt jwtService) *Service {
	return &Service{users: users, jwt: jwt}
}

// Verify checks email+password and returns the matching user.
func (s *Service) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

type LoginResult struct {
	User        *domain.User
	AccessToken string
}

// Login verifies credentials and issues a signed access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateToken(user.ID, string(user.Role), user.Language)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: user, AccessToken: token}, nil
}

// Me returns the user row behind a principal.
func (s *Service) Me(ctx context.Context, principal domain.Principal) (*domain.User, error) {
	return s.users.GetByID(ctx, principal.ID)
}
