// Package middleware provides reusable HTTP middleware: session
// authentication, role gating, response caching and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the HttpOnly cookie carrying the access
// token for browser clients. API clients may instead send it as a
// Bearer token.
const SessionCookie = "farmkeep_session"

// SessionAuth validates the access token from the Authorization header
// or the session cookie and injects "user_id" and "role" into the echo
// context. Protected handlers read them via c.Get.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c)
			if raw == "" {
				if cookie, err := c.Cookie(SessionCookie); err == nil {
					raw = cookie.Value
				}
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Not logged in"})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid session"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid session"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
