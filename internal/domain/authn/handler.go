// Package authn is the login and logout surface. Credential checking is the
// backend's job; this layer exchanges credentials for a backend token,
// resolves the role claim, and opens or closes the portal session.
package authn

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/domain/dashboard"
	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
	"github.com/odontoweb/portal/pkg/viewstate"
)

// API is the slice of the clinic backend authentication needs.
type API interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResponse, error)
}

type Handler struct {
	api     API
	store   *session.Store
	codec   *session.CookieCodec
	flashes *feedback.Notifier
	logger  zerolog.Logger
}

func NewHandler(api API, store *session.Store, codec *session.CookieCodec, flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{api: api, store: store, codec: codec, flashes: flashes, logger: logger}
}

func (h *Handler) RegisterRoutes(public, g *echo.Group) {
	public.POST("/login", h.Login)
	g.POST("/logout", h.Logout, session.RequireAuth())
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type loginResponse struct {
	viewstate.Page
	Email      string `json:"email,omitempty"`
	Role       string `json:"role,omitempty"`
	RedirectTo string `json:"redirectTo,omitempty"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados de login inválidos")
	}
	if strings.TrimSpace(req.Email) == "" || req.Senha == "" {
		return c.JSON(http.StatusUnprocessableEntity, loginResponse{
			Page: viewstate.Errored("Informe e-mail e senha."),
		})
	}

	resp, err := h.api.Login(c.Request().Context(), req.Email, req.Senha)
	if err != nil {
		msg := gateway.UserMessage(err, "E-mail ou senha incorretos.")
		return c.JSON(http.StatusUnauthorized, loginResponse{Page: viewstate.Errored(msg)})
	}

	// The role claim has shipped as a string, a list, and an object; when the
	// body carries none of those, fall back to the token's claims.
	role := roles.Resolve(resp.Role)
	if role == roles.Unknown {
		if fromToken, err := roles.FromToken(resp.AccessToken); err == nil {
			role = fromToken
		}
	}

	sid := h.store.Create(session.Session{
		Email:  resp.Email,
		Role:   role,
		UserID: resp.UserID,
		Token:  resp.AccessToken,
	})
	cookie, err := h.codec.Encode(sid)
	if err != nil {
		h.store.Clear(sid)
		h.logger.Error().Err(err).Msg("falha ao assinar o cookie de sessão")
		return echo.NewHTTPError(http.StatusInternalServerError, "erro ao iniciar a sessão")
	}
	session.SetCookie(c, cookie)

	h.logger.Info().Str("email", resp.Email).Str("role", role.String()).Msg("login")
	return c.JSON(http.StatusOK, loginResponse{
		Page:       viewstate.Ready(1),
		Email:      resp.Email,
		Role:       role.String(),
		RedirectTo: dashboard.LandingPath(role),
	})
}

type logoutResponse struct {
	RedirectTo string `json:"redirectTo"`
}

// Logout clears the server-side session and expires the cookie. Subscribers
// of the session store drop per-session widget state on the same event.
func (h *Handler) Logout(c echo.Context) error {
	auth := session.FromContext(c)
	h.store.Clear(auth.SID)
	session.ExpireCookie(c)

	h.logger.Info().Str("email", auth.Session.Email).Msg("logout")
	return c.JSON(http.StatusOK, logoutResponse{RedirectTo: "/login"})
}
