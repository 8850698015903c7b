package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// contextKey is where the decoded claims live on the echo context.
const contextKey = "user"

// Required rejects requests without a valid bearer token. A missing token
// answers 401, a present but invalid or expired one answers 403.
func Required(jwts *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: contextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwts.ValidateToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
			}
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
		},
	})
}

// Optional decodes the identity when a valid token is present but lets the
// request through either way.
func Optional(jwts *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: contextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwts.ValidateToken(auth)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			return nil
		},
	})
}

// AdminOnly rejects callers whose token does not carry the admin flag.
// It must run after Required.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := FromContext(c)
		if !ok || !claims.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
		}
		return next(c)
	}
}

// FromContext returns the claims attached by Required or Optional.
func FromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(contextKey).(*Claims)
	return claims, ok
}
