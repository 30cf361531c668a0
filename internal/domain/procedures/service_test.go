package procedures

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
)

type fakeAPI struct {
	servicos []gateway.Servico
	listErr  error

	listTokens []string
	created    *gateway.Servico
	deleted    []int64
}

func (f *fakeAPI) ListServicos(ctx context.Context, token string) ([]gateway.Servico, error) {
	f.listTokens = append(f.listTokens, token)
	return f.servicos, f.listErr
}

func (f *fakeAPI) GetServico(ctx context.Context, token string, id int64) (*gateway.Servico, error) {
	for i := range f.servicos {
		if f.servicos[i].ID == id {
			return &f.servicos[i], nil
		}
	}
	return nil, &gateway.Fault{Status: 404}
}

func (f *fakeAPI) CreateServico(ctx context.Context, token string, s *gateway.Servico) (*gateway.Servico, error) {
	f.created = s
	out := *s
	out.ID = 12
	return &out, nil
}

func (f *fakeAPI) UpdateServico(ctx context.Context, token string, id int64, s *gateway.Servico) (*gateway.Servico, error) {
	out := *s
	out.ID = id
	return &out, nil
}

func (f *fakeAPI) DeleteServico(ctx context.Context, token string, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestPortfolio_FiltersInactiveAndNeedsNoToken(t *testing.T) {
	api := &fakeAPI{servicos: []gateway.Servico{
		{ID: 1, Nome: "Limpeza", Ativo: true},
		{ID: 2, Nome: "Clareamento", Ativo: false},
	}}
	svc := NewService(api, zerolog.Nop())

	active, err := svc.Portfolio(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 1 || active[0].Nome != "Limpeza" {
		t.Errorf("expected only active entries, got %+v", active)
	}
	if len(api.listTokens) != 1 || api.listTokens[0] != "" {
		t.Errorf("portfolio must be fetched anonymously, got tokens %v", api.listTokens)
	}
}

func TestList_KeepsInactiveForManagement(t *testing.T) {
	api := &fakeAPI{servicos: []gateway.Servico{
		{ID: 1, Ativo: true},
		{ID: 2, Ativo: false},
	}}
	all, err := NewService(api, zerolog.Nop()).List(context.Background(), "tok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("management list must keep inactive entries, got %+v", all)
	}
}

func TestCreate_Validation(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, zerolog.Nop())

	_, err := svc.Create(context.Background(), "tok", &Form{Nome: "   ", Preco: 10})
	if !errors.Is(err, ErrNomeRequired) {
		t.Fatalf("expected ErrNomeRequired, got %v", err)
	}

	_, err = svc.Create(context.Background(), "tok", &Form{Nome: "Limpeza", Preco: -1})
	if !errors.Is(err, ErrPrecoNegative) {
		t.Fatalf("expected ErrPrecoNegative, got %v", err)
	}
	if api.created != nil {
		t.Error("invalid form must not reach the backend")
	}

	if _, err := svc.Create(context.Background(), "tok", &Form{Nome: "Limpeza", Preco: 120.5, Ativo: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.created == nil || api.created.Preco != 120.5 || !api.created.Ativo {
		t.Errorf("payload lost fields: %+v", api.created)
	}
}
