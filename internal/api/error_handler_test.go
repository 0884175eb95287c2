package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sociogram/social-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	return rec.Code, resp.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"password too short", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"username taken", domain.ErrUsernameTaken, http.StatusBadRequest},
		{"email taken", domain.ErrEmailTaken, http.StatusBadRequest},
		{"self follow", domain.ErrSelfFollow, http.StatusBadRequest},
		{"empty post", domain.ErrEmptyPost, http.StatusBadRequest},
		{"empty comment", domain.ErrEmptyComment, http.StatusBadRequest},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest},
		{"not owner", domain.ErrNotOwner, http.StatusUnauthorized},
		{"session revoked", domain.ErrSessionRevoked, http.StatusUnauthorized},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"post not found", domain.ErrPostNotFound, http.StatusNotFound},
		{"notification not found", domain.ErrNotificationNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg != tc.err.Error() {
				t.Fatalf("expected message %q, got %q", tc.err.Error(), msg)
			}
		})
	}
}

func TestErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrPostNotFound)
	code, _ := renderError(t, wrapped)
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for wrapped sentinel, got %d", code)
	}
}

func TestErrorHandler_EchoError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "missing session token"))
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if msg != "missing session token" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestErrorHandler_UnexpectedError(t *testing.T) {
	code, msg := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	// Internal details must never reach the client.
	if msg != "internal server error" {
		t.Fatalf("leaked internal error: %q", msg)
	}
}

func TestErrorHandler_InvalidCredentialsMessageIsGeneric(t *testing.T) {
	_, msg := renderError(t, domain.ErrInvalidCredentials)
	if msg != "invalid username or password" {
		t.Fatalf("unexpected message: %q", msg)
	}
}
