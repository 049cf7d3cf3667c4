package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "notesvc/internal/errors"
)

// TokenExpiry is the lifetime of an issued token. Tokens are never revoked;
// a leaked token is usable for at most this long.
const TokenExpiry = time.Hour

// Claims represents JWT claims.
type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the verified caller of a request.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	IssueToken(userID uuid.UUID, email string) (string, error)
	VerifyToken(tokenString string) (*Identity, error)
}

// JWTService handles JWT token generation and validation.
//
// The signing key is supplied by configuration and is not regenerated per
// process, so tokens stay valid across restarts until they expire.
type JWTService struct {
	secret []byte
	now    func() time.Time
	parser *jwt.Parser
}

var _ TokenService = (*JWTService)(nil)

// Option configures a JWTService.
type Option func(*JWTService)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		s.now = now
	}
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string, opts ...Option) *JWTService {
	s := &JWTService{
		secret: []byte(secret),
		now:    time.Now,
		// Expiry is checked against s.now in VerifyToken.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueToken signs {id, email, iat, exp} with HS256.
func (s *JWTService) IssueToken(userID uuid.UUID, email string) (string, error) {
	issuedAt := s.now()
	claims := &Claims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates a token and returns the identity it asserts. The
// identity is taken from the payload as-is; the user store is not consulted.
func (s *JWTService) VerifyToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims := &Claims{}
	token, err := s.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidSignature
	}

	if claims.ExpiresAt == nil || !s.now().Before(claims.ExpiresAt.Time) {
		return nil, apperrors.ErrTokenExpired
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", apperrors.ErrMalformedToken)
	}

	return &Identity{UserID: userID, Email: claims.Email}, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedToken, err)
	}
}
