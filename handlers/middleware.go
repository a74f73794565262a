package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"donelist/utils"
)

const userIDContextKey = "userID"

// SessionAuth resolves the caller from the session token (cookie or bearer
// header) and injects the user id into the request context. The identity
// is never taken from the request body or query string.
func SessionAuth(sessions *utils.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c.Request())
			if token == "" {
				return errJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session token")
			}

			userID, err := sessions.UserIDFromToken(c.Request().Context(), token)
			if err != nil {
				return errJSON(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid session token")
			}
			c.Set(userIDContextKey, userID)

			// Best effort; a failed activity refresh never fails the request.
			_ = sessions.Touch(c.Request().Context(), token)

			return next(c)
		}
	}
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie("session_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if h := r.Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func currentUserID(c echo.Context) string {
	userID, _ := c.Get(userIDContextKey).(string)
	return userID
}
