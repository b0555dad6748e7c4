package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/mergington/high-school/activities-service/internal/core/domain"
	"github.com/mergington/high-school/activities-service/internal/core/ports"
)

// tokenBytes is the entropy of a session token before encoding.
const tokenBytes = 32

var errStaleSession = domain.NewError(domain.CodeAuthRequired, "Invalid session")

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(users ports.UserRepository, sessions ports.SessionRepository) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
	}
}

// GenerateToken returns a random URL-safe session token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Login checks the credentials and opens a new session. Every call issues
// a fresh token; earlier sessions of the same user stay valid.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(password)) != 1 {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := GenerateToken()
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.sessions.Create(ctx, domain.Session{Token: token, Email: user.Email}); err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResolveSession maps a token to the user that owns it. Tokens whose user
// has since been deleted fail like unknown tokens but are left in place.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	sess, err := s.sessions.Get(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	user, err := s.users.FindByEmail(ctx, sess.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errStaleSession
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
