package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrDuplicateUser is returned when signing up with an email that is already registered.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrUserNotFound is returned when no user has the given email.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredential is returned when the password does not match the stored hash.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrInvalidCredentials is the login failure shown to clients. It covers
	// both ErrUserNotFound and ErrInvalidCredential.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken is returned when no token was presented.
	ErrMissingToken = errors.New("token required")
	// ErrMalformedToken is returned when the token cannot be parsed.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidSignature is returned when the token signature does not verify.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Messages written to clients. They match the wire contract exactly.
const (
	MsgUserAlreadyExists  = "User already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgTokenRequired      = "Token required"
	MsgInvalidToken       = "Invalid token"
	MsgInvalidRequest     = "Invalid request body"
	MsgInternal           = "Internal Server Error"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// Echo converts the error into an echo.HTTPError, which echo's default
// error handler renders as {"message": ...}.
func (e *HTTPError) Echo() *echo.HTTPError {
	return echo.NewHTTPError(e.StatusCode, e.Message)
}

// IsTokenError reports whether err is any token verification failure.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired)
}

// MapErrorToHTTP maps domain errors to HTTP errors. Credential and token
// failures are collapsed so clients cannot tell which check failed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusBadRequest, MsgUserAlreadyExists)
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, ErrMissingToken):
		return NewHTTPError(http.StatusUnauthorized, MsgTokenRequired)
	case IsTokenError(err):
		return NewHTTPError(http.StatusForbidden, MsgInvalidToken)
	default:
		return NewHTTPError(http.StatusInternalServerError, MsgInternal)
	}
}
