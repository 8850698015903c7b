package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, next echo.HandlerFunc, token string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRequired(t *testing.T) {
	jwts := NewJWTService("test-secret")

	t.Run("missing token answers 401", func(t *testing.T) {
		rec := doRequest(t, Required(jwts), okHandler, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token answers 403", func(t *testing.T) {
		rec := doRequest(t, Required(jwts), okHandler, "not-a-jwt")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("token signed with another secret answers 403", func(t *testing.T) {
		other := NewJWTService("other-secret")
		token, err := other.GenerateToken(1, "user@example.com", false)
		assert.NoError(t, err)

		rec := doRequest(t, Required(jwts), okHandler, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("valid token passes and exposes claims", func(t *testing.T) {
		token, err := jwts.GenerateToken(7, "user@example.com", true)
		assert.NoError(t, err)

		rec := doRequest(t, Required(jwts), func(c echo.Context) error {
			claims, ok := FromContext(c)
			assert.True(t, ok)
			assert.Equal(t, uint(7), claims.UserID)
			assert.Equal(t, "user@example.com", claims.Email)
			assert.True(t, claims.IsAdmin)
			return c.String(http.StatusOK, "ok")
		}, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOptional(t *testing.T) {
	jwts := NewJWTService("test-secret")

	t.Run("no token still passes without claims", func(t *testing.T) {
		rec := doRequest(t, Optional(jwts), func(c echo.Context) error {
			_, ok := FromContext(c)
			assert.False(t, ok)
			return c.String(http.StatusOK, "ok")
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		token, err := jwts.GenerateToken(7, "user@example.com", false)
		assert.NoError(t, err)

		rec := doRequest(t, Optional(jwts), func(c echo.Context) error {
			claims, ok := FromContext(c)
			assert.True(t, ok)
			assert.Equal(t, uint(7), claims.UserID)
			return c.String(http.StatusOK, "ok")
		}, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	jwts := NewJWTService("test-secret")

	t.Run("non-admin answers 403", func(t *testing.T) {
		token, err := jwts.GenerateToken(7, "user@example.com", false)
		assert.NoError(t, err)

		rec := doRequest(t, func(next echo.HandlerFunc) echo.HandlerFunc {
			return Required(jwts)(AdminOnly(next))
		}, okHandler, token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := jwts.GenerateToken(1, "admin@example.com", true)
		assert.NoError(t, err)

		rec := doRequest(t, func(next echo.HandlerFunc) echo.HandlerFunc {
			return Required(jwts)(AdminOnly(next))
		}, okHandler, token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
