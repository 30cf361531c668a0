package patients

import (
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

const deleteAction = "excluir-paciente"

type Handler struct {
	svc      *Service
	confirms *feedback.Confirmations
	flashes  *feedback.Notifier
	logger   zerolog.Logger
}

func NewHandler(svc *Service, confirms *feedback.Confirmations, flashes *feedback.Notifier, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, confirms: confirms, flashes: flashes, logger: logger}
}

// RegisterRoutes mounts patient pages. Registration is the one public form;
// roster management is the receptionist's.
func (h *Handler) RegisterRoutes(public, g *echo.Group) {
	public.POST("/cadastro", h.Register)

	manage := g.Group("/pacientes", session.RequireRole(roles.Receptionist, roles.Admin))
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
	Pacientes *pagination.Response `json:"pacientes,omitempty"`
	Flashes   []feedback.Flash     `json:"flashes,omitempty"`
}

func (h *Handler) List(c echo.Context) error {
	auth := session.FromContext(c)

	pacientes, err := h.svc.List(c.Request().Context(), auth.Session.Token)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar os pacientes.")
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}

	params := pagination.FromContext(c)
	lo, hi := params.Bounds(len(pacientes))
	return c.JSON(http.StatusOK, listPage{
		Page:      viewstate.Ready(len(pacientes)),
		Pacientes: pagination.NewResponse(pacientes[lo:hi], len(pacientes), params.Limit, params.Offset),
		Flashes:   h.flashes.Pop(auth.SID),
	})
}

type detailPage struct {
	viewstate.Page
	Paciente *gateway.Paciente `json:"paciente,omitempty"`
}

func (h *Handler) Detail(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "paciente inválido")
	}

	paciente, err := h.svc.Get(c.Request().Context(), auth.Session.Token, id)
	if err != nil {
		if gateway.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "paciente não encontrado")
		}
		msg := gateway.UserMessage(err, "Erro ao carregar o paciente.")
		return c.JSON(http.StatusBadGateway, detailPage{Page: viewstate.Errored(msg)})
	}
	return c.JSON(http.StatusOK, detailPage{Page: viewstate.Ready(1), Paciente: paciente})
}

type formResponse struct {
	viewstate.Page
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Paciente    *gateway.Paciente `json:"paciente,omitempty"`
	RedirectTo  string            `json:"redirectTo,omitempty"`
}

// Register is the public signup form. Validation failures never reach the
// backend; they return the field messages for inline rendering.
func (h *Handler) Register(c echo.Context) error {
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do cadastro inválidos")
	}

	paciente, err := h.svc.Create(c.Request().Context(), "", &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao realizar o cadastro.")
	}
	return c.JSON(http.StatusCreated, formResponse{
		Page:       viewstate.Ready(1),
		Paciente:   paciente,
		RedirectTo: "/login",
	})
}

func (h *Handler) Create(c echo.Context) error {
	auth := session.FromContext(c)
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do paciente inválidos")
	}

	paciente, err := h.svc.Create(c.Request().Context(), auth.Session.Token, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao cadastrar o paciente.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Paciente cadastrado com sucesso.")
	return c.JSON(http.StatusCreated, formResponse{Page: viewstate.Ready(1), Paciente: paciente})
}

func (h *Handler) Update(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "paciente inválido")
	}
	var form Form
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do paciente inválidos")
	}

	paciente, err := h.svc.Update(c.Request().Context(), auth.Session.Token, id, &form)
	if err != nil {
		return h.formFailure(c, err, "Erro ao atualizar o paciente.")
	}
	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Paciente atualizado com sucesso.")
	return c.JSON(http.StatusOK, formResponse{Page: viewstate.Ready(1), Paciente: paciente})
}

func (h *Handler) formFailure(c echo.Context, err error, fallback string) error {
	if fields, ok := AsValidation(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, formResponse{
			Page:        viewstate.Errored("Corrija os campos destacados."),
			FieldErrors: fields,
		})
	}
	msg := gateway.UserMessage(err, fallback)
	return c.JSON(http.StatusBadGateway, formResponse{Page: viewstate.Errored(msg)})
}

type confirmPage struct {
	viewstate.Page
	Intent *feedback.Intent `json:"intent,omitempty"`
}

// OpenDelete opens the confirmation modal; nothing is deleted yet.
func (h *Handler) OpenDelete(c echo.Context) error {
	auth := session.FromContext(c)
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "paciente inválido")
	}

	in := h.confirms.Open(auth.SID, deleteAction, id,
		"Excluir paciente", "Esta ação não poderá ser desfeita.")
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
		msg := gateway.UserMessage(deleteErr, "Erro ao excluir o paciente.")
		h.flashes.Push(auth.SID, feedback.FlashError, msg)
		return c.JSON(http.StatusBadGateway, listPage{Page: viewstate.Errored(msg)})
	}

	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Paciente excluído com sucesso.")
	return c.JSON(http.StatusOK, listPage{Page: viewstate.Ready(1)})
}

func (h *Handler) CancelDelete(c echo.Context) error {
	auth := session.FromContext(c)
	h.confirms.Cancel(auth.SID, c.Param("token"))
	return c.NoContent(http.StatusNoContent)
}
