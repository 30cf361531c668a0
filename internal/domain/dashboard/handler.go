package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/platform/roles"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
	"github.com/odontoweb/portal/pkg/viewstate"
)

type Handler struct {
	flashes *feedback.Notifier
	logger  zerolog.Logger
}

func NewHandler(flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{flashes: flashes, logger: logger}
}

// RegisterRoutes mounts one dashboard per profile plus the generic entry
// point that redirects to whichever one the session's role owns.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	auth := g.Group("", session.RequireAuth())
	auth.GET("/dashboard", h.Redirect)
	auth.GET("/dashboard-paciente", h.Home, session.RequireRole(roles.Patient, roles.Admin))
	auth.GET("/dashboard-dentista", h.Home, session.RequireRole(roles.Dentist, roles.Admin))
	auth.GET("/dashboard-recepcionista", h.Home, session.RequireRole(roles.Receptionist, roles.Admin))
}

type redirectResponse struct {
	RedirectTo string `json:"redirectTo"`
}

func (h *Handler) Redirect(c echo.Context) error {
	auth := session.FromContext(c)
	return c.JSON(http.StatusOK, redirectResponse{RedirectTo: LandingPath(auth.Session.Role)})
}

type homePage struct {
	viewstate.Page
	Email   string           `json:"email"`
	Role    string           `json:"role"`
	Menu    []MenuEntry      `json:"menu"`
	Flashes []feedback.Flash `json:"flashes,omitempty"`
}

func (h *Handler) Home(c echo.Context) error {
	auth := session.FromContext(c)
	return c.JSON(http.StatusOK, homePage{
		Page:    viewstate.Ready(1),
		Email:   auth.Session.Email,
		Role:    auth.Session.Role.String(),
		Menu:    MenuFor(auth.Session.Role),
		Flashes: h.flashes.Pop(auth.SID),
	})
}
