package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the authenticated user ID injected by the Auth
// middleware. Its presence proves the middleware ran; a handler reached
// without it rejects with 401 rather than acting unauthenticated.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// ctxToken extracts the session token's ID and expiry, used by logout to
// revoke the session server-side.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get("token_id").(string)
	expiresAt, _ = c.Get("token_expires").(time.Time)
	return tokenID, expiresAt
}
