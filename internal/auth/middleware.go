package auth

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "notesvc/internal/errors"
)

// identityKey is the echo context key holding the verified *Identity.
const identityKey = "identity"

// Middleware authenticates protected routes.
//
// A request without an Authorization header gets 401. Every other failure,
// whether the scheme is wrong, the token is malformed, the signature is bad or
// the token expired, gets the same 403 so callers cannot tell them apart.
func Middleware(tokens TokenService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  identityKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return tokens.VerifyToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return apperrors.MapErrorToHTTP(apperrors.ErrMissingToken).Echo()
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.MsgInvalidToken)
		},
	})
}

// IdentityFromContext returns the identity bound by Middleware.
func IdentityFromContext(c echo.Context) (*Identity, bool) {
	id, ok := c.Get(identityKey).(*Identity)
	return id, ok && id != nil
}

// MustIdentity returns the bound identity or a 401 error when the route was
// registered without Middleware.
func MustIdentity(c echo.Context) (*Identity, error) {
	id, ok := IdentityFromContext(c)
	if !ok {
		return nil, apperrors.MapErrorToHTTP(apperrors.ErrMissingToken).Echo()
	}
	return id, nil
}
