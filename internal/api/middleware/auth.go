package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "jwt"

// TokenChecker reports whether a token ID has been revoked (Redis denylist).
type TokenChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the session token and injects the caller's identity into the
// request context. The token is read from the session cookie, falling back to
// an Authorization bearer header for non-browser clients.
func Auth(jwtSecret string, revoked TokenChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			userID, err := claims.GetSubject()
			if err != nil || userID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			tokenID, _ := claims["jti"].(string)
			if tokenID != "" {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return err
				}
				if isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
				}
			}

			var expiresAt time.Time
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				expiresAt = exp.Time
			}

			c.Set("user_id", userID)
			c.Set("token_id", tokenID)
			c.Set("token_expires", expiresAt)

			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
