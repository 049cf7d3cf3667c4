package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"notesvc/internal/auth"
)

// ErrNoToken is returned when no token has been saved.
var ErrNoToken = errors.New("not logged in")

// TokenInfo is the payload of a token, read without verifying the signature.
// It is for display only; the server remains the authority.
type TokenInfo struct {
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token is past its expiry at now.
func (i TokenInfo) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// DecodeToken reads the claims of token without verifying it.
func DecodeToken(token string) (*TokenInfo, error) {
	var claims auth.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	info := &TokenInfo{UserID: claims.UserID, Email: claims.Email}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// TokenFile persists a token on disk between CLI invocations.
type TokenFile struct {
	Path string
}

// DefaultTokenPath returns ~/.notes/token, or a relative path when the home
// directory is unknown.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".notes", "token")
	}
	return filepath.Join(home, ".notes", "token")
}

// Save writes token with owner-only permissions.
func (f TokenFile) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Load returns the saved token or ErrNoToken.
func (f TokenFile) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Remove deletes the saved token. Removing a missing token is not an error.
func (f TokenFile) Remove() error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
