package procedures

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

const deleteAction = "excluir-servico"

type Handler struct {
	svc      *Service
	confirms *feedback.Confirmations
	flashes  *feedback.Notifier
	logger   zerolog.Logger
}

func NewHandler(svc *Service, confirms *feedback.Confirmations, flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, confirms: confirms, flashes: flashes, logger: logger}
}

// RegisterRoutes mounts the catalog. The portfolio is public; everything
// else is receptionist territory.
func (h *Handler) RegisterRoutes(public, g *echo.Group) {
	public.GET("/portfolio", h.Portfolio)

	manage := g.Group("/servicos", session.RequireRole(roles.Receptionist, roles.Admin))
	manage.GET("", h.List)
	manage.GET("/:id", h.Detail)
	manage.POST("", h.Create)
	manage.PUT("/:id", h.Update)
	manage.POST("/:id/excluir", h.OpenDelete)
	manage.POST("/excluir/:token/confirmar", h.ConfirmDelete)
	manage.POST("/excluir/:token/cancelar", h.CancelDelete)
}

type listPage struct {
	viewstate.Page
	Servicos *pagination.Response `json:"servicos,omitempty"`
	Flashes  []feedback.Flash     `json:"flashes,omitempty"`
}

// Portfolio renders the public services page: active entries only, no
// session required.
func (h *Handler) Portfolio(c echo.Context) error {
	servicos, err := h.svc.Portfolio(c.Request().Context())
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar os serviços.")
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}
	params := pagination.FromContext(c)
	lo, hi := params.Bounds(len(servicos))
	return c.JSON(http.StatusOK, listPage{
		Page:     viewstate.Ready(len(servicos)),
		Servicos: pagination.NewResponse(servicos[lo:hi], len(servicos), params.Limit, params.Offset),
	})
}

func (h *Handler) List(c echo.Context) error {
	auth := session.FromContext(c)

	servicos, err := h.svc.List(c.Request().Context(), auth.Session.Token)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar os serviços.")
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}
	params := pagination.FromContext(c)
	lo, hi := params.Bounds(len(servicos))
	return c.JSON(http.StatusOK, listPage{
		Page:     viewstate.Ready(len(servicos)),
		Servicos: pagination.NewResponse(servicos[lo:hi], len(servicos), params.Limit, params.Offset),
		Flashes:  h.flashes.Pop(auth.SID),
	})
}

type detailPage struct {
	viewstate.Page
	Servico *gateway.Servico `json:"servico,omitempty"`
}

func (h *Handler) Detail(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "serviço inválido")
	}

	servico, err := h.svc.Get(c.Request().Context(), auth.Session.Token, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "serviço não encontrado")
		}
		msg := gateway.UserMessage(err, "Erro ao carregar o serviço.")
		return c.JSON(http.StatusBadGateway, detailPage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, detailPage{Page: viewstate.Ready(1), Servico: servico})
}

type formResponse struct {
	viewstate.Page
	Servico *gateway.Servico `json:"servico,omitempty"`
}

func (h *Handler) Create(c echo.Context) error {
	auth := session.FromContext(c)
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do serviço inválidos")
	}

	servico, err := h.svc.Create(c.Request().Context(), auth.Session.Token, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao cadastrar o serviço.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Serviço cadastrado com sucesso.")
	return c.JSON(http.StatusCreated, formResponse{Page: viewstate.Ready(1), Servico: servico})
}

func (h *Handler) Update(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "serviço inválido")
	}
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do serviço inválidos")
	}

	servico, err := h.svc.Update(c.Request().Context(), auth.Session.Token, id, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao atualizar o serviço.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Serviço atualizado com sucesso.")
	return c.JSON(http.StatusOK, formResponse{Page: viewstate.Ready(1), Servico: servico})
}

func (h *Handler) formFailure(c echo.Context, err error, fallback string) error {
	if errors.Is(err, ErrNomeRequired) || errors.Is(err, ErrPrecoNegative) {
		return c.JSON(http.StatusUnprocessableEntity, formResponse{Page: viewstate.Errored(err.Error())})
	}
	msg := gateway.UserMessage(err, fallback)
	return c.JSON(http.StatusBadGateway, formResponse{Page: viewstate.Errored(msg)})
}

type confirmPage struct {
	viewstate.Page
	Intent *feedback.Intent `json:"intent,omitempty"`
}

func (h *Handler) OpenDelete(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "serviço inválido")
	}

	in := h.confirms.Open(auth.SID, deleteAction, id,
		"Excluir serviço", "O serviço deixará de ser oferecido.")
	return c.JSON(http.StatusOK, confirmPage{
		Page:   viewstate.Page{State: viewstate.StateConfirmPending},
		Intent: in,
	})
}

func (h *Handler) ConfirmDelete(c echo.Context) error {
	auth := session.FromContext(c)

	in, err := h.confirms.Begin(auth.SID, c.Param("token"))
	if err != nil {
		return feedback.IntentHTTPError(err)
	}
	if in.Action != deleteAction {
		h.confirms.Finish(in.Token)
		return echo.NewHTTPError(http.StatusBadRequest, "confirmação não corresponde a esta ação")
	}

	deleteErr := h.svc.Delete(c.Request().Context(), auth.Session.Token, in.TargetID)
	h.confirms.Finish(in.Token)
	if deleteErr != nil {
		msg := gateway.UserMessage(deleteErr, "Erro ao excluir o serviço.")
		h.flashes.Push(auth.SID, feedback.FlashError, msg)
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}

	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Serviço excluído com sucesso.")
	return c.JSON(http.StatusOK, listPage{Page: viewstate.Ready(1)})
}

func (h *Handler) CancelDelete(c echo.Context) error {
	auth := session.FromContext(c)
	h.confirms.Cancel(auth.SID, c.Param("token"))
	return c.NoContent(http.StatusNoContent)
}
