package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"notesvc/internal/auth"
	apperrors "notesvc/internal/errors"
)

// AuthService handles signup and login.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (token string, err error)
}

type authService struct {
	credentials CredentialStore
	tokens      auth.TokenService
	log         logrus.FieldLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(credentials CredentialStore, tokens auth.TokenService, log logrus.FieldLogger) AuthService {
	return &authService{
		credentials: credentials,
		tokens:      tokens,
		log:         log,
	}
}

// Signup registers a new user. It does not log the user in.
func (s *authService) Signup(ctx context.Context, email, password string) (uuid.UUID, error) {
	return s.credentials.Register(ctx, email, password)
}

// Login verifies the credentials and issues a token. An unknown email and a
// wrong password both come back as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	userID, err := s.credentials.Verify(ctx, email, password)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) || errors.Is(err, apperrors.ErrInvalidCredential) {
			s.log.WithField("reason", err.Error()).Info("login rejected")
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("verify credentials: %w", err)
	}

	token, err := s.tokens.IssueToken(userID, email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
