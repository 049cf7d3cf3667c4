package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedEcho(svc TokenService) *echo.Echo {
	e := echo.New()
	g := e.Group("", Middleware(svc))
	g.GET("/whoami", func(c echo.Context) error {
		id, err := MustIdentity(c)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{
			"id":    id.UserID.String(),
			"email": id.Email,
		})
	})
	return e
}

func doGet(e *echo.Echo, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_BindsIdentity(t *testing.T) {
	svc := NewJWTService("test-secret")
	userID := uuid.New()
	token, err := svc.IssueToken(userID, "alice@x.com")
	require.NoError(t, err)

	rec := doGet(newProtectedEcho(svc), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"`+userID.String()+`","email":"alice@x.com"}`, rec.Body.String())
}

func TestMiddleware_MissingHeader(t *testing.T) {
	rec := doGet(newProtectedEcho(NewJWTService("test-secret")), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Token required"}`, rec.Body.String())
}

func TestMiddleware_InvalidTokensAreIndistinguishable(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	expired, err := NewJWTService("test-secret", WithClock(fixedClock(issuedAt))).IssueToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	foreign, err := NewJWTService("other-secret").IssueToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	e := newProtectedEcho(NewJWTService("test-secret"))

	headers := map[string]string{
		"expired":       "Bearer " + expired,
		"malformed":     "Bearer garbage",
		"bad signature": "Bearer " + foreign,
		"wrong scheme":  "Token " + foreign,
		"empty bearer":  "Bearer ",
		"no scheme":     "garbage",
	}

	for name, header := range headers {
		t.Run(name, func(t *testing.T) {
			rec := doGet(e, header)
			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String())
		})
	}
}

// Only an absent header is "Token required"; a present header with nothing
// after the scheme fails verification like any other bad token.
func TestMiddleware_EmptyBearerIsInvalidToken(t *testing.T) {
	e := newProtectedEcho(NewJWTService("test-secret"))

	for _, header := range []string{"Bearer ", "Bearer"} {
		rec := doGet(e, header)
		assert.Equal(t, http.StatusForbidden, rec.Code, header)
		assert.JSONEq(t, `{"message":"Invalid token"}`, rec.Body.String(), header)
	}
}

func TestMustIdentity_WithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, err := MustIdentity(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
