package authn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
)

type fakeAPI struct {
	resp  *gateway.LoginResponse
	err   error
	calls int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*gateway.LoginResponse, error) {
	f.calls++
	return f.resp, f.err
}

type fixture struct {
	handler *Handler
	store   *session.Store
	codec   *session.CookieCodec
	flashes *feedback.Notifier
}

func newFixture(api *fakeAPI) *fixture {
	store := session.NewStore(time.Hour)
	codec := session.NewCookieCodec("test-secret", time.Hour)
	flashes := feedback.NewNotifier()
	return &fixture{
		handler: NewHandler(api, store, codec, flashes, zerolog.Nop()),
		store:   store,
		codec:   codec,
		flashes: flashes,
	}
}

func postJSON(t *testing.T, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName {
			return ck
		}
	}
	return nil
}

func TestLogin_StringRoleOpensSessionAndRedirects(t *testing.T) {
	fx := newFixture(&fakeAPI{resp: &gateway.LoginResponse{
		AccessToken: "tok-123",
		Email:       "maria@exemplo.com",
		Role:        "ROLE_PACIENTE",
		UserID:      4,
	}})

	c, rec := postJSON(t, "/login", `{"email":"maria@exemplo.com","senha":"segredo1"}`)
	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.RedirectTo != "/dashboard-paciente" {
		t.Errorf("patient must land on the patient dashboard, got %q", resp.RedirectTo)
	}
	if resp.Role != "PACIENTE" {
		t.Errorf("unexpected role %q", resp.Role)
	}

	ck := sessionCookie(rec)
	if ck == nil || !ck.HttpOnly {
		t.Fatalf("expected an http-only session cookie, got %+v", ck)
	}
	sid, err := fx.codec.Decode(ck.Value)
	if err != nil {
		t.Fatalf("cookie must decode: %v", err)
	}
	sess, ok := fx.store.Get(sid)
	if !ok {
		t.Fatal("session must exist after login")
	}
	if sess.Token != "tok-123" || sess.Role != roles.Patient || sess.UserID != 4 {
		t.Errorf("unexpected session %+v", sess)
	}
}

func TestLogin_ObjectRoleShape(t *testing.T) {
	fx := newFixture(&fakeAPI{resp: &gateway.LoginResponse{
		AccessToken: "tok",
		Email:       "recep@clinica.com",
		Role:        map[string]any{"name": "ROLE_RECEPCIONISTA"},
	}})

	c, rec := postJSON(t, "/login", `{"email":"recep@clinica.com","senha":"segredo1"}`)
	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.RedirectTo != "/dashboard-recepcionista" {
		t.Errorf("unexpected redirect %q", resp.RedirectTo)
	}
}

func TestLogin_MissingFieldsRejectedLocally(t *testing.T) {
	api := &fakeAPI{}
	fx := newFixture(api)

	c, rec := postJSON(t, "/login", `{"email":"maria@exemplo.com"}`)
	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if api.calls != 0 {
		t.Error("missing credentials must not reach the backend")
	}
}

func TestLogin_BackendRejectionSurfacesMessage(t *testing.T) {
	fx := newFixture(&fakeAPI{err: &gateway.Fault{Status: 401, ServerMessage: "credenciais inválidas"}})

	c, rec := postJSON(t, "/login", `{"email":"maria@exemplo.com","senha":"errada"}`)
	if err := fx.handler.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "credenciais inválidas") {
		t.Errorf("backend message missing from %s", rec.Body.String())
	}
	if ck := sessionCookie(rec); ck != nil {
		t.Error("failed login must not set a session cookie")
	}
}

func TestLogout_ClearsSessionAndExpiresCookie(t *testing.T) {
	fx := newFixture(&fakeAPI{})
	sid := fx.store.Create(session.Session{Email: "maria@exemplo.com", Role: roles.Patient})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	session.WithAuth(c, &session.Authenticated{SID: sid, Session: session.Session{Email: "maria@exemplo.com"}})

	if err := fx.handler.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := fx.store.Get(sid); ok {
		t.Error("session must be gone after logout")
	}
	ck := sessionCookie(rec)
	if ck == nil || ck.MaxAge != -1 {
		t.Errorf("expected expired cookie, got %+v", ck)
	}

	var resp logoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response: %v", err)
	}
	if resp.RedirectTo != "/login" {
		t.Errorf("unexpected redirect %q", resp.RedirectTo)
	}
}
