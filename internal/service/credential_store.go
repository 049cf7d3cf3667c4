package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"notesvc/internal/cache"
	apperrors "notesvc/internal/errors"
	"notesvc/internal/model"
	"notesvc/internal/repository"
)

const (
	bcryptCost         = 10
	credentialCacheTTL = 5 * time.Minute

	// bcrypt only reads the first 72 bytes of a password.
	bcryptMaxPasswordLen = 72
)

// CredentialStore registers users and checks their passwords.
type CredentialStore interface {
	// Register fails with ErrDuplicateUser when email is already taken.
	Register(ctx context.Context, email, password string) (uuid.UUID, error)
	// Verify fails with ErrUserNotFound or ErrInvalidCredential.
	Verify(ctx context.Context, email, password string) (uuid.UUID, error)
}

type credentialStore struct {
	repo  repository.UserRepository
	cache cache.Store
	log   logrus.FieldLogger
}

// cachedCredential is what the cache holds per email. User rows are never
// updated or deleted, so an entry cannot go stale.
type cachedCredential struct {
	ID           uuid.UUID `json:"id"`
	PasswordHash string    `json:"password_hash"`
}

// NewCredentialStore builds a CredentialStore. cache may be nil.
func NewCredentialStore(repo repository.UserRepository, cache cache.Store, log logrus.FieldLogger) CredentialStore {
	return &credentialStore{repo: repo, cache: cache, log: log}
}

func (s *credentialStore) cacheKey(email string) string {
	return "credential:" + email
}

// Register stores a bcrypt hash of password under email.
func (s *credentialStore) Register(ctx context.Context, email, password string) (uuid.UUID, error) {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return uuid.Nil, apperrors.ErrDuplicateUser
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return uuid.Nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(bcryptInput(password), bcryptCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	// A concurrent signup for the same email loses on the unique index and
	// gets ErrDuplicateUser from the repository.
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateUser) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return user.ID, nil
}

// Verify looks the user up by exact email and compares password against the
// stored hash.
func (s *credentialStore) Verify(ctx context.Context, email, password string) (uuid.UUID, error) {
	cred, err := s.lookup(ctx, email)
	if err != nil {
		return uuid.Nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), bcryptInput(password)); err != nil {
		return uuid.Nil, apperrors.ErrInvalidCredential
	}
	return cred.ID, nil
}

func (s *credentialStore) lookup(ctx context.Context, email string) (*cachedCredential, error) {
	if s.cache != nil {
		if data, _ := s.cache.Get(ctx, s.cacheKey(email)); data != nil {
			var cached cachedCredential
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	cred := &cachedCredential{ID: user.ID, PasswordHash: user.PasswordHash}
	if s.cache != nil {
		if payload, err := json.Marshal(cred); err == nil {
			_ = s.cache.Set(ctx, s.cacheKey(email), payload, credentialCacheTTL)
		}
	}
	return cred, nil
}

// bcryptInput truncates password to the bytes bcrypt actually hashes, so
// longer passwords are accepted instead of failing with ErrPasswordTooLong.
func bcryptInput(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxPasswordLen {
		b = b[:bcryptMaxPasswordLen]
	}
	return b
}
