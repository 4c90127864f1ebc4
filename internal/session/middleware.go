package session

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// CookieName is the session cookie set on successful login.
	CookieName = "wishlist_session"

	userIDKey   = "sessionUserID"
	userNameKey = "sessionUserName"
)

// RequireSession guards HTML routes. Requests without a live session are
// redirected to /login and never reach the handler.
func RequireSession(store Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusFound, "/login")
			}
			sess, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				ClearCookie(c)
				return c.Redirect(http.StatusFound, "/login")
			}
			c.Set(userIDKey, sess.UserID)
			c.Set(userNameKey, sess.UserName)
			return next(c)
		}
	}
}

// UserID returns the authenticated user id placed in the context by
// RequireSession. Zero means no session.
func UserID(c echo.Context) uint {
	if id, ok := c.Get(userIDKey).(uint); ok {
		return id
	}
	return 0
}

// UserName returns the authenticated username, or "" without a session.
func UserName(c echo.Context) string {
	if name, ok := c.Get(userNameKey).(string); ok {
		return name
	}
	return ""
}

// WriteCookie binds a session token to the browser.
func WriteCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
