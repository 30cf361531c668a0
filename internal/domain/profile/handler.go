package profile

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/domain/patients"
	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
	"github.com/odontoweb/portal/pkg/viewstate"
)

type Handler struct {
	svc     *Service
	flashes *feedback.Notifier
	logger  zerolog.Logger
}

func NewHandler(svc *Service, flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, flashes: flashes, logger: logger}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	me := g.Group("/perfil", session.RequireAuth())
	me.GET("", h.Show)
	me.PUT("", h.Update)
}

type profilePage struct {
	viewstate.Page
	Perfil  *Profile         `json:"perfil,omitempty"`
	Flashes []feedback.Flash `json:"flashes,omitempty"`
}

func (h *Handler) Show(c echo.Context) error {
	auth := session.FromContext(c)

	perfil, err := h.svc.Load(c.Request().Context(), auth.Session.Token,
		auth.Session.Role, auth.Session.UserID)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return echo.NewHTTPError(http.StatusForbidden, "Acesso negado. Role desconhecida.")
		}
		if gateway.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Nenhum perfil encontrado.")
		}
		msg := gateway.UserMessage(err, "Erro ao carregar o perfil.")
		return c.JSON(http.StatusBadGateway, profilePage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, profilePage{
		Page:    viewstate.Ready(1),
		Perfil:  perfil,
		Flashes: h.flashes.Pop(auth.SID),
	})
}

type formResponse struct {
	viewstate.Page
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Perfil      *Profile          `json:"perfil,omitempty"`
}

func (h *Handler) Update(c echo.Context) error {
	auth := session.FromContext(c)
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do perfil inválidos")
	}

	perfil, err := h.svc.Update(c.Request().Context(), auth.Session.Token,
		auth.Session.Role, auth.Session.UserID, &form)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return echo.NewHTTPError(http.StatusForbidden, "Acesso negado. Role desconhecida.")
		}
		if fields, ok := patients.AsValidation(err); ok {
			return c.JSON(http.StatusUnprocessableEntity, formResponse{
				Page:        viewstate.Errored("Corrija os campos destacados."),
				FieldErrors: fields,
			})
		}
		msg := gateway.UserMessage(err, "Erro ao atualizar perfil. Verifique os dados.")
		return c.JSON(http.StatusBadGateway, formResponse{Page: viewstate.Errored(msg)})
	}

	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Perfil atualizado com sucesso!")
	return c.JSON(http.StatusOK, formResponse{Page: viewstate.Ready(1), Perfil: perfil})
}
