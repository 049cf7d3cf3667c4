package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "notesvc/internal/errors"
	"notesvc/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) Create(ctx context.Context, ownerID uuid.UUID, content string) (*model.Note, error) {
	args := m.Called(ctx, ownerID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Note), args.Error(1)
}

func (m *MockNoteService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Note), args.Error(1)
}

func (m *MockNoteService) DeleteByOwnerAndID(ctx context.Context, ownerID, noteID uuid.UUID) error {
	args := m.Called(ctx, ownerID, noteID)
	return args.Error(0)
}

type structValidator struct {
	v *validator.Validate
}

func (s *structValidator) Validate(i interface{}) error {
	return s.v.Struct(i)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &structValidator{v: validator.New()}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, status, httpErr.Code)
	assert.Equal(t, message, httpErr.Message)
}

func TestAuthHandler_Signup(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantMsg    string
	}{
		{"success", nil, http.StatusOK, ""},
		{"duplicate", apperrors.ErrDuplicateUser, http.StatusBadRequest, apperrors.MsgUserAlreadyExists},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError, apperrors.MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			svc.On("Signup", mock.Anything, "alice@x.com", "pw").Return(uuid.New(), tt.serviceErr)

			c, rec := newContext(http.MethodPost, "/signup", `{"email":"alice@x.com","password":"pw"}`)
			err := NewAuthHandler(svc, quietLogger()).Signup(c)

			if tt.serviceErr == nil {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"message":"User registered successfully"}`, rec.Body.String())
			} else {
				assertHTTPError(t, err, tt.wantStatus, tt.wantMsg)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_SignupRejectsMissingFields(t *testing.T) {
	for _, body := range []string{
		`{"email":"alice@x.com"}`,
		`{"email":"alice@x.com","password":""}`,
		`{"password":"pw"}`,
		`{not json`,
	} {
		t.Run(body, func(t *testing.T) {
			svc := new(MockAuthService)
			c, _ := newContext(http.MethodPost, "/signup", body)

			err := NewAuthHandler(svc, quietLogger()).Signup(c)

			assertHTTPError(t, err, http.StatusBadRequest, apperrors.MsgInvalidRequest)
			svc.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Login", mock.Anything, "alice@x.com", "pw").Return("signed.token.value", nil)
	svc.On("Login", mock.Anything, "alice@x.com", "bad").Return("", apperrors.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, "", "pw").Return("", apperrors.ErrInvalidCredentials)
	svc.On("Login", mock.Anything, "alice@x.com", "").Return("", apperrors.ErrInvalidCredentials)

	h := NewAuthHandler(svc, quietLogger())

	c, rec := newContext(http.MethodPost, "/login", `{"email":"alice@x.com","password":"pw"}`)
	require.NoError(t, h.Login(c))
	assert.JSONEq(t, `{"token":"signed.token.value"}`, rec.Body.String())

	c, _ = newContext(http.MethodPost, "/login", `{"email":"alice@x.com","password":"bad"}`)
	assertHTTPError(t, h.Login(c), http.StatusUnauthorized, apperrors.MsgInvalidCredentials)

	// Missing fields are not a validation error on login.
	c, _ = newContext(http.MethodPost, "/login", `{"password":"pw"}`)
	assertHTTPError(t, h.Login(c), http.StatusUnauthorized, apperrors.MsgInvalidCredentials)

	c, _ = newContext(http.MethodPost, "/login", `{"email":"alice@x.com","password":""}`)
	assertHTTPError(t, h.Login(c), http.StatusUnauthorized, apperrors.MsgInvalidCredentials)

	c, _ = newContext(http.MethodPost, "/login", `{not json`)
	assertHTTPError(t, h.Login(c), http.StatusBadRequest, apperrors.MsgInvalidRequest)

	svc.AssertExpectations(t)
}

func TestNoteHandler_RequiresIdentity(t *testing.T) {
	svc := new(MockNoteService)
	h := NewNoteHandler(svc, quietLogger())

	c, _ := newContext(http.MethodGet, "/notes", "")
	assertHTTPError(t, h.ListNotes(c), http.StatusUnauthorized, apperrors.MsgTokenRequired)

	svc.AssertNotCalled(t, "ListByOwner", mock.Anything, mock.Anything)
}
