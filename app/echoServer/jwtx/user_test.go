package jwtx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gamerental/app/echoServer/jwtx"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func ctxWithClaims(mc jwt.MapClaims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if mc != nil {
		c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, mc))
	}
	return c
}

func TestUserIDFromContext(t *testing.T) {
	// echo-jwt stores decoded claims, where JSON numbers are float64.
	c := ctxWithClaims(jwt.MapClaims{"sub": float64(7), "role": "USER"})
	id, err := jwtx.UserIDFromContext(c)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
}

func TestUserIDFromContext_NoToken(t *testing.T) {
	c := ctxWithClaims(nil)
	_, err := jwtx.UserIDFromContext(c)
	require.Error(t, err)
}

func TestRoleFromContext(t *testing.T) {
	c := ctxWithClaims(jwt.MapClaims{"sub": float64(7), "role": "ADMIN"})
	role, err := jwtx.RoleFromContext(c)
	require.NoError(t, err)
	require.Equal(t, "ADMIN", role)

	c = ctxWithClaims(jwt.MapClaims{"sub": float64(7)})
	_, err = jwtx.RoleFromContext(c)
	require.Error(t, err)
}
