package records

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
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

// RegisterRoutes mounts the record editor. Only dentists write records.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	edit := g.Group("", session.RequireRole(roles.Dentist, roles.Admin))
	edit.GET("/consultas/:id/prontuario", h.Edit)
	edit.POST("/consultas/:id/prontuario", h.Save)
	edit.POST("/consultas/:id/prontuario/dentes/:tooth/avancar", h.AdvanceTooth)
}

// editorPage is the view model the record form renders from.
type editorPage struct {
	viewstate.Page
	Editor    *Editor          `json:"editor,omitempty"`
	Questions []Question       `json:"questions,omitempty"`
	Teeth     []Tooth          `json:"teeth,omitempty"`
	Flashes   []feedback.Flash `json:"flashes,omitempty"`
}

func (h *Handler) Edit(c echo.Context) error {
	auth := session.FromContext(c)
	consultaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "consulta inválida")
	}

	ed, err := h.svc.Load(c.Request().Context(), auth.Session.Token, consultaID)
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao carregar os dados da consulta.")
		return c.JSON(http.StatusBadGateway, editorPage{Page: viewstate.Errored(msg)})
	}

	return c.JSON(http.StatusOK, editorPage{
		Page:      viewstate.Ready(1),
		Editor:    ed,
		Questions: Questions,
		Teeth:     PermanentTeeth,
		Flashes:   h.flashes.Pop(auth.SID),
	})
}

type saveRequest struct {
	ProntuarioID int64                `json:"prontuarioId"`
	Anamnese     Anamnese             `json:"anamnese"`
	Odontograma  map[string]Condition `json:"odontograma"`
}

type saveResponse struct {
	viewstate.Page
	ProntuarioID         int64  `json:"prontuarioId,omitempty"`
	RedirectTo           string `json:"redirectTo,omitempty"`
	RedirectAfterSeconds int    `json:"redirectAfterSeconds,omitempty"`
}

func (h *Handler) Save(c echo.Context) error {
	auth := session.FromContext(c)
	consultaID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "consulta inválida")
	}

	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "dados do prontuário inválidos")
	}

	result, err := h.svc.Save(c.Request().Context(), auth.Session.Token, consultaID,
		req.ProntuarioID, req.Anamnese, FromMap(req.Odontograma))
	if err != nil {
		msg := gateway.UserMessage(err, "Erro ao salvar o prontuário.")
		return c.JSON(http.StatusBadGateway, saveResponse{Page: viewstate.Errored(msg)})
	}

	h.flashes.Push(auth.SID, feedback.FlashSuccess, "Prontuário salvo com sucesso.")
	return c.JSON(http.StatusOK, saveResponse{
		Page:                 viewstate.Ready(1),
		ProntuarioID:         result.ProntuarioID,
		RedirectTo:           result.RedirectTo,
		RedirectAfterSeconds: int(result.RedirectAfter.Seconds()),
	})
}

type advanceRequest struct {
	Condition Condition `json:"condition"`
}

type advanceResponse struct {
	Tooth     string    `json:"tooth"`
	Condition Condition `json:"condition"`
}

// AdvanceTooth cycles one tooth's condition a single step. The form keeps the
// full map client-side; this endpoint is the single source of the cycle order.
func (h *Handler) AdvanceTooth(c echo.Context) error {
	tooth := c.Param("tooth")
	if !KnownTooth(tooth) {
		return echo.NewHTTPError(http.StatusBadRequest, "dente desconhecido")
	}
	var req advanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "condição inválida")
	}
	return c.JSON(http.StatusOK, advanceResponse{Tooth: tooth, Condition: req.Condition.Next()})
}
