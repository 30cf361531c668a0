package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
)

type fixture struct {
	handler *Handler
	api     *fakeAPI
	flashes *feedback.Notifier
}

func newFixture(api *fakeAPI) *fixture {
	flashes := feedback.NewNotifier()
	return &fixture{
		handler: NewHandler(NewService(api, zerolog.Nop()), flashes, zerolog.Nop()),
		api:     api,
		flashes: flashes,
	}
}

func authedContext(t *testing.T, method, body string, role roles.RoleTag, userID int64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/perfil", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.WithAuth(c, &session.Authenticated{
		SID:     "sid-1",
		Session: session.Session{Email: "user@clinica.com", Role: role, UserID: userID, Token: "tok"},
	})
	return c, rec
}

func TestShow_DentistCard(t *testing.T) {
	fx := newFixture(&fakeAPI{dentista: &gateway.Dentista{ID: 7, Nome: "Dr. Silva", CRO: "SP-12345"}})

	c, rec := authedContext(t, http.MethodGet, "", roles.Dentist, 7)
	if err := fx.handler.Show(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp profilePage
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.Perfil == nil || resp.Perfil.CRO != "SP-12345" {
		t.Errorf("dentist card missing: %+v", resp.Perfil)
	}
}

func TestShow_MissingRecordIs404(t *testing.T) {
	fx := newFixture(&fakeAPI{getErr: &gateway.Fault{Status: 404}})

	c, _ := authedContext(t, http.MethodGet, "", roles.Patient, 4)
	err := fx.handler.Show(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestShow_UnknownRoleIsForbidden(t *testing.T) {
	fx := newFixture(&fakeAPI{})

	c, _ := authedContext(t, http.MethodGet, "", roles.Unknown, 1)
	err := fx.handler.Show(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestShow_BackendFaultRendersErrorState(t *testing.T) {
	fx := newFixture(&fakeAPI{getErr: &gateway.Fault{Status: 500, ServerMessage: "instabilidade no servidor"}})

	c, rec := authedContext(t, http.MethodGet, "", roles.Patient, 4)
	if err := fx.handler.Show(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "instabilidade no servidor") {
		t.Errorf("backend message must win, got %s", rec.Body.String())
	}
}

func TestUpdate_InvalidCPFRejectedWithoutNetworkCall(t *testing.T) {
	fx := newFixture(&fakeAPI{})

	body := `{"nome":"Maria Souza","email":"maria@exemplo.com","cpf":"123"}`
	c, rec := authedContext(t, http.MethodPut, body, roles.Patient, 4)
	if err := fx.handler.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if fx.api.calls != 0 {
		t.Errorf("validation failure must not reach the backend, got %d calls", fx.api.calls)
	}

	var resp formResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.FieldErrors["cpf"] == "" {
		t.Errorf("expected a cpf message, got %v", resp.FieldErrors)
	}
}

func TestUpdate_SuccessFlashes(t *testing.T) {
	fx := newFixture(&fakeAPI{})

	body := `{"nome":"Ana","email":"ana@clinica.com","turno":"noite"}`
	c, rec := authedContext(t, http.MethodPut, body, roles.Receptionist, 3)
	if err := fx.handler.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	flashes := fx.flashes.Pop("sid-1")
	if len(flashes) != 1 || flashes[0].Type != feedback.FlashSuccess {
		t.Fatalf("expected one success flash, got %+v", flashes)
	}
	if flashes[0].Message != "Perfil atualizado com sucesso!" {
		t.Errorf("unexpected flash %q", flashes[0].Message)
	}
}

func TestUpdate_BackendFaultKeepsForm(t *testing.T) {
	failing := &failingAPI{fakeAPI: &fakeAPI{}, updateErr: &gateway.Fault{Status: 500}}
	h := NewHandler(NewService(failing, zerolog.Nop()), feedback.NewNotifier(), zerolog.Nop())

	body := `{"nome":"Dr. Silva","email":"silva@clinica.com","cro":"SP-12345"}`
	c, rec := authedContext(t, http.MethodPut, body, roles.Dentist, 7)
	if err := h.Update(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Erro ao atualizar perfil. Verifique os dados.") {
		t.Errorf("fallback message missing from %s", rec.Body.String())
	}
}

type failingAPI struct {
	*fakeAPI
	updateErr error
}

func (f *failingAPI) UpdateDentista(ctx context.Context, token string, id int64, d *gateway.Dentista) (*gateway.Dentista, error) {
	return nil, f.updateErr
}
