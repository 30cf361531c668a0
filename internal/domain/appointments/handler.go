package appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
	"github.com/odontoweb/portal/pkg/pagination"
	"github.com/odontoweb/portal/pkg/viewstate"
)

const (
	deleteAction  = "excluir-agendamento"
	confirmAction = "confirmar-agendamento"
)

type Handler struct {
	svc      *Service
	confirms *feedback.Confirmations
	flashes  *feedback.Notifier
	logger   zerolog.Logger
}

func NewHandler(svc *Service, confirms *feedback.Confirmations, flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, confirms: confirms, flashes: flashes, logger: logger}
}

// RegisterRoutes mounts the agenda. Every authenticated profile sees its own
// agenda; booking and editing are for staff.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	ag := g.Group("/agendamentos", session.RequireAuth())
	ag.GET("", h.List)
	ag.GET("/opcoes", h.FormOptions)
	ag.GET("/:id", h.Detail)

	staff := ag.Group("", session.RequireRole(roles.Receptionist, roles.Dentist, roles.Admin))
	staff.POST("", h.Create)
	staff.PUT("/:id", h.Update)
	staff.POST("/:id/excluir", h.OpenDelete)
	staff.POST("/:id/confirmar", h.OpenConfirm)
	staff.POST("/acoes/:token/confirmar", h.RunIntent)
	staff.POST("/acoes/:token/cancelar", h.CancelIntent)
}

type listPage struct {
	viewstate.Page
	Agendamentos *pagination.Response `json:"agendamentos,omitempty"`
	Flashes      []feedback.Flash     `json:"flashes,omitempty"`
}

func (h *Handler) List(c echo.Context) error {
	auth := session.FromContext(c)

	entries, err := h.svc.ListForUser(c.Request().Context(), auth.Session.Token,
		auth.Session.Role, auth.Session.UserID)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar os agendamentos.")
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}

	params := pagination.FromContext(c)
	lo, hi := params.Bounds(len(entries))
	return c.JSON(http.StatusOK, listPage{
		Page:         viewstate.Ready(len(entries)),
		Agendamentos: pagination.NewResponse(entries[lo:hi], len(entries), params.Limit, params.Offset),
		Flashes:      h.flashes.Pop(auth.SID),
	})
}

type optionsPage struct {
	viewstate.Page
	Options *Options `json:"options,omitempty"`
}

func (h *Handler) FormOptions(c echo.Context) error {
	auth := session.FromContext(c)

	opts, err := h.svc.LoadOptions(c.Request().Context(), auth.Session.Token)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar as opções do formulário.")
		return c.JSON(http.StatusBadGateway, optionsPage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, optionsPage{Page: viewstate.Ready(1), Options: opts})
}

type detailPage struct {
	viewstate.Page
	Agendamento *gateway.Agendamento `json:"agendamento,omitempty"`
}

func (h *Handler) Detail(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "agendamento inválido")
	}

	ag, err := h.svc.Get(c.Request().Context(), auth.Session.Token, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "agendamento não encontrado")
		}
		msg := gateway.UserMessage(err, "Erro ao carregar o agendamento.")
		return c.JSON(http.StatusBadGateway, detailPage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, detailPage{Page: viewstate.Ready(1), Agendamento: ag})
}

type formResponse struct {
	viewstate.Page
	Agendamento *gateway.Agendamento `json:"agendamento,omitempty"`
}

func (h *Handler) Create(c echo.Context) error {
	auth := session.FromContext(c)
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do agendamento inválidos")
	}

	ag, err := h.svc.Create(c.Request().Context(), auth.Session.Token, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao criar o agendamento.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Agendamento criado com sucesso.")
	return c.JSON(http.StatusCreated, formResponse{Page: viewstate.Ready(1), Agendamento: ag})
}

func (h *Handler) Update(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "agendamento inválido")
	}
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do agendamento inválidos")
	}

	ag, err := h.svc.Update(c.Request().Context(), auth.Session.Token, id, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao atualizar o agendamento.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Agendamento atualizado com sucesso.")
	return c.JSON(http.StatusOK, formResponse{Page: viewstate.Ready(1), Agendamento: ag})
}

func (h *Handler) formFailure(c echo.Context, err error, fallback string) error {
	if errors.Is(err, ErrFormIncomplete) {
		return c.JSON(http.StatusUnprocessableEntity, formResponse{
			Page: viewstate.Errored(ErrFormIncomplete.Error()),
		})
	}
	msg := gateway.UserMessage(err, fallback)
	return c.JSON(http.StatusBadGateway, formResponse{Page: viewstate.Errored(msg)})
}

type confirmPage struct {
	viewstate.Page
	Intent *feedback.Intent `json:"intent,omitempty"`
}

func (h *Handler) OpenDelete(c echo.Context) error {
	return h.openIntent(c, deleteAction, "Cancelar agendamento",
		"O agendamento será removido da agenda.")
}

func (h *Handler) OpenConfirm(c echo.Context) error {
	return h.openIntent(c, confirmAction, "Confirmar agendamento",
		"O paciente será marcado como confirmado.")
}

func (h *Handler) openIntent(c echo.Context, action, title, description string) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "agendamento inválido")
	}

	in := h.confirms.Open(auth.SID, action, id, title, description)
	return c.JSON(http.StatusOK, confirmPage{
		Page:   viewstate.Page{State: viewstate.StateConfirmPending},
		Intent: in,
	})
}

// RunIntent executes a confirmed intent. The intent's action picks the
// backend call; a double click lands on ErrIntentProcessing and runs nothing.
func (h *Handler) RunIntent(c echo.Context) error {
	auth := session.FromContext(c)

	in, err := h.confirms.Begin(auth.SID, c.Param("token"))
	if err != nil {
		return feedback.IntentHTTPError(err)
	}

	var (
		actionErr error
		success   string
		failure   string
	)
	switch in.Action {
	case deleteAction:
		actionErr = h.svc.Delete(c.Request().Context(), auth.Session.Token, in.TargetID)
		success, failure = "Agendamento cancelado com sucesso.", "Erro ao cancelar o agendamento."
	case confirmAction:
		actionErr = h.svc.Confirm(c.Request().Context(), auth.Session.Token, in.TargetID)
		success, failure = "Agendamento confirmado com sucesso.", "Erro ao confirmar o agendamento."
	default:
		h.confirms.Finish(in.Token)
		return echo.NewHTTPError(http.StatusBadRequest, "confirmação não corresponde a esta ação")
	}
	h.confirms.Finish(in.Token)

	if actionErr != nil {
		msg := gateway.UserMessage(actionErr, failure)
		h.flashes.Push(auth.SID, feedback.FlashError, msg)
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, success)
	return c.JSON(http.StatusOK, listPage{Page: viewstate.Ready(1)})
}

func (h *Handler) CancelIntent(c echo.Context) error {
	auth := session.FromContext(c)
	h.confirms.Cancel(auth.SID, c.Param("token"))
	return c.NoContent(http.StatusNoContent)
}
