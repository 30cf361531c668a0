package session

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontoweb/portal/internal/platform/roles"
)

const contextKey = "session"

// Middleware resolves the session cookie on every request. A cookie that
// fails to decode is treated as an implicit logout: the cookie is expired
// and the request proceeds unauthenticated.
func Middleware(store *Store, codec *CookieCodec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			sid, err := codec.Decode(cookie.Value)
			if err != nil {
				ExpireCookie(c)
				return next(c)
			}

			sess, ok := store.Get(sid)
			if !ok {
				ExpireCookie(c)
				return next(c)
			}

			c.Set(contextKey, &Authenticated{SID: sid, Session: sess})
			return next(c)
		}
	}
}

// Authenticated pairs a live session with its id for handlers that need to
// clear or flash against it.
type Authenticated struct {
	SID     string
	Session Session
}

// FromContext returns the authenticated session, or nil when logged out.
func FromContext(c echo.Context) *Authenticated {
	auth, _ := c.Get(contextKey).(*Authenticated)
	return auth
}

// WithAuth attaches an authenticated session to the context directly,
// bypassing cookie resolution. Handler tests use it in place of Middleware.
func WithAuth(c echo.Context, auth *Authenticated) {
	c.Set(contextKey, auth)
}

// SetCookie attaches the signed session cookie to the response.
func SetCookie(c echo.Context, value string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ExpireCookie tells the browser to drop the session cookie.
func ExpireCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// RequireAuth rejects unauthenticated requests, pointing the client at the
// login entry point.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if FromContext(c) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sessão expirada, faça login novamente")
			}
			return next(c)
		}
	}
}

// RequireRole rejects sessions whose role is not in the allowed set.
func RequireRole(allowed ...roles.RoleTag) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := FromContext(c)
			if auth == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "sessão expirada, faça login novamente")
			}
			for _, tag := range allowed {
				if auth.Session.Role == tag {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "acesso não permitido para este perfil")
		}
	}
}
