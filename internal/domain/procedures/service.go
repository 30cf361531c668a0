// Package procedures covers the clinic's service catalog: the public
// portfolio, the staff-facing management table, and price/name validation.
package procedures

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
)

// API is the slice of the clinic backend the catalog needs.
type API interface {
	ListServicos(ctx context.Context, token string) ([]gateway.Servico, error)
	GetServico(ctx context.Context, token string, id int64) (*gateway.Servico, error)
	CreateServico(ctx context.Context, token string, s *gateway.Servico) (*gateway.Servico, error)
	UpdateServico(ctx context.Context, token string, id int64, s *gateway.Servico) (*gateway.Servico, error)
	DeleteServico(ctx context.Context, token string, id int64) error
}

var (
	ErrNomeRequired  = errors.New("Informe o nome do serviço.")
	ErrPrecoNegative = errors.New("O preço não pode ser negativo.")
)

type Service struct {
	api    API
	logger zerolog.Logger
}

func NewService(api API, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// List returns the full catalog, inactive entries included, for management.
func (s *Service) List(ctx context.Context, token string) ([]gateway.Servico, error) {
	return s.api.ListServicos(ctx, token)
}

// Portfolio returns only the active entries, for the public services page.
func (s *Service) Portfolio(ctx context.Context) ([]gateway.Servico, error) {
	all, err := s.api.ListServicos(ctx, "")
	if err != nil {
		return nil, err
	}
	active := make([]gateway.Servico, 0, len(all))
	for _, sv := range all {
		if sv.Ativo {
			active = append(active, sv)
		}
	}
	return active, nil
}

func (s *Service) Get(ctx context.Context, token string, id int64) (*gateway.Servico, error) {
	return s.api.GetServico(ctx, token, id)
}

// Form carries the catalog entry fields as submitted.
type Form struct {
	Nome      string  `json:"nome"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco"`
	Ativo     bool    `json:"ativo"`
}

func (f *Form) payload() (*gateway.Servico, error) {
	if strings.TrimSpace(f.Nome) == "" {
		return nil, ErrNomeRequired
	}
	if f.Preco < 0 {
		return nil, ErrPrecoNegative
	}
	return &gateway.Servico{
		Nome:      strings.TrimSpace(f.Nome),
		Descricao: f.Descricao,
		Preco:     f.Preco,
		Ativo:     f.Ativo,
	}, nil
}

func (s *Service) Create(ctx context.Context, token string, form *Form) (*gateway.Servico, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	return s.api.CreateServico(ctx, token, payload)
}

func (s *Service) Update(ctx context.Context, token string, id int64, form *Form) (*gateway.Servico, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	return s.api.UpdateServico(ctx, token, id, payload)
}

func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.DeleteServico(ctx, token, id)
}
