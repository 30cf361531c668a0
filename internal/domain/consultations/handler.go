package consultations

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
	"github.com/odontoweb/portal/pkg/pagination"
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
	hist := g.Group("", session.RequireAuth())
	hist.GET("/historico-consultas", h.History)
	hist.GET("/consultas/:id", h.Detail)
}

type historyPage struct {
	viewstate.Page
	Consultas *pagination.Response `json:"consultas,omitempty"`
	Flashes   []feedback.Flash     `json:"flashes,omitempty"`
}

func (h *Handler) History(c echo.Context) error {
	auth := session.FromContext(c)

	consultas, err := h.svc.HistoryForUser(c.Request().Context(), auth.Session.Token,
		auth.Session.Role, auth.Session.UserID)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar o histórico de consultas.")
		return c.JSON(http.StatusBadGateway, historyPage{Page: viewstate.Errored(msg)})
	}

	params := pagination.FromContext(c)
	lo, hi := params.Bounds(len(consultas))
	return c.JSON(http.StatusOK, historyPage{
		Page:      viewstate.Ready(len(consultas)),
		Consultas: pagination.NewResponse(consultas[lo:hi], len(consultas), params.Limit, params.Offset),
		Flashes:   h.flashes.Pop(auth.SID),
	})
}

type detailPage struct {
	viewstate.Page
	Consulta *gateway.Consulta `json:"consulta,omitempty"`
}

func (h *Handler) Detail(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "consulta inválida")
	}

	consulta, err := h.svc.Get(c.Request().Context(), auth.Session.Token, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "consulta não encontrada")
		}
		msg := gateway.UserMessage(err, "Erro ao carregar a consulta.")
		return c.JSON(http.StatusBadGateway, detailPage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, detailPage{Page: viewstate.Ready(1), Consulta: consulta})
}
