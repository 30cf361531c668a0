// Package appointments covers scheduling: the role-dependent agenda, the
// booking form with its option pickers, and the confirm/cancel flows.
package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
)

// API is the slice of the clinic backend scheduling needs.
type API interface {
	ListAgendamentos(ctx context.Context, token string) ([]gateway.Agendamento, error)
	ListAgendamentosPorDentista(ctx context.Context, token string, dentistaID int64) ([]gateway.Agendamento, error)
	ListAgendamentosPorPaciente(ctx context.Context, token string, pacienteID int64) ([]gateway.Agendamento, error)
	GetAgendamento(ctx context.Context, token string, id int64) (*gateway.Agendamento, error)
	CreateAgendamento(ctx context.Context, token string, a *gateway.Agendamento) (*gateway.Agendamento, error)
	UpdateAgendamento(ctx context.Context, token string, id int64, a *gateway.Agendamento) (*gateway.Agendamento, error)
	DeleteAgendamento(ctx context.Context, token string, id int64) error
	ConfirmAgendamento(ctx context.Context, token string, id int64) error

	GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error)
	ListPacientes(ctx context.Context, token string) ([]gateway.Paciente, error)
	ListDentistas(ctx context.Context, token string) ([]gateway.Dentista, error)
	ListServicos(ctx context.Context, token string) ([]gateway.Servico, error)
}

// ErrFormIncomplete is the single message the booking form shows when a
// required field is missing.
var ErrFormIncomplete = errors.New("Preencha data/hora, paciente e dentista.")

type Service struct {
	api    API
	logger zerolog.Logger
}

func NewService(api API, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Entry is one agenda row: the appointment plus the resolved patient name.
type Entry struct {
	gateway.Agendamento
	PacienteNome string `json:"pacienteNome"`
}

// ListForUser returns the agenda for the session's owner. Dentists see their
// own schedule, admins the whole clinic's, everyone else the appointments
// booked for them as a patient. The backend's ordering is preserved.
func (s *Service) ListForUser(ctx context.Context, token string, role roles.RoleTag, userID int64) ([]Entry, error) {
	var (
		list []gateway.Agendamento
		err  error
	)
	switch role {
	case roles.Dentist:
		list, err = s.api.ListAgendamentosPorDentista(ctx, token, userID)
	case roles.Admin:
		list, err = s.api.ListAgendamentos(ctx, token)
	default:
		list, err = s.api.ListAgendamentosPorPaciente(ctx, token, userID)
	}
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, token, list), nil
}

// enrich resolves patient names concurrently, one lookup per distinct
// patient. A failed lookup degrades to a placeholder name; it never fails
// the agenda.
func (s *Service) enrich(ctx context.Context, token string, list []gateway.Agendamento) []Entry {
	distinct := make([]int64, 0, len(list))
	seen := make(map[int64]bool, len(list))
	for _, a := range list {
		if !seen[a.PacienteID] {
			seen[a.PacienteID] = true
			distinct = append(distinct, a.PacienteID)
		}
	}

	names := make(map[int64]string, len(distinct))
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range distinct {
		id := id
		g.Go(func() error {
			paciente, err := s.api.GetPaciente(gctx, token, id)
			if err != nil {
				s.logger.Warn().Err(err).Int64("paciente_id", id).Msg("nome do paciente indisponível")
				return nil
			}
			mu.Lock()
			names[id] = paciente.Nome
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	entries := make([]Entry, len(list))
	for i, a := range list {
		nome := names[a.PacienteID]
		if nome == "" {
			nome = fmt.Sprintf("Paciente #%d", a.PacienteID)
		}
		entries[i] = Entry{Agendamento: a, PacienteNome: nome}
	}
	return entries
}

func (s *Service) Get(ctx context.Context, token string, id int64) (*gateway.Agendamento, error) {
	return s.api.GetAgendamento(ctx, token, id)
}

// Options are the booking form's pickers. Only active procedures are offered.
type Options struct {
	Pacientes []gateway.Paciente `json:"pacientes"`
	Dentistas []gateway.Dentista `json:"dentistas"`
	Servicos  []gateway.Servico  `json:"servicos"`
}

// LoadOptions fetches the three picker lists concurrently.
func (s *Service) LoadOptions(ctx context.Context, token string) (*Options, error) {
	var opts Options
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pacientes, err := s.api.ListPacientes(gctx, token)
		opts.Pacientes = pacientes
		return err
	})
	g.Go(func() error {
		dentistas, err := s.api.ListDentistas(gctx, token)
		opts.Dentistas = dentistas
		return err
	})
	g.Go(func() error {
		servicos, err := s.api.ListServicos(gctx, token)
		if err != nil {
			return err
		}
		for _, sv := range servicos {
			if sv.Ativo {
				opts.Servicos = append(opts.Servicos, sv)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Form carries the booking fields as submitted. ServicoID zero means no
// procedure was picked.
type Form struct {
	DataHora   string `json:"dataHora"`
	PacienteID int64  `json:"pacienteId"`
	DentistaID int64  `json:"dentistaId"`
	ServicoID  int64  `json:"servicoId"`
	Observacao string `json:"observacao"`
}

// payload builds the wire shape: an absent procedure travels as null and the
// note always travels, blank included.
func (f *Form) payload() (*gateway.Agendamento, error) {
	if strings.TrimSpace(f.DataHora) == "" || f.PacienteID == 0 || f.DentistaID == 0 {
		return nil, ErrFormIncomplete
	}
	if _, err := time.Parse("2006-01-02T15:04", f.DataHora); err != nil {
		return nil, ErrFormIncomplete
	}

	a := &gateway.Agendamento{
		DataHora:   f.DataHora,
		PacienteID: f.PacienteID,
		DentistaID: f.DentistaID,
		Observacao: f.Observacao,
	}
	if f.ServicoID != 0 {
		a.ServicoID = &f.ServicoID
	}
	return a, nil
}

func (s *Service) Create(ctx context.Context, token string, form *Form) (*gateway.Agendamento, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	return s.api.CreateAgendamento(ctx, token, payload)
}

func (s *Service) Update(ctx context.Context, token string, id int64, form *Form) (*gateway.Agendamento, error) {
	payload, err := form.payload()
	if err != nil {
		return nil, err
	}
	return s.api.UpdateAgendamento(ctx, token, id, payload)
}

func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.DeleteAgendamento(ctx, token, id)
}

func (s *Service) Confirm(ctx context.Context, token string, id int64) error {
	return s.api.ConfirmAgendamento(ctx, token, id)
}
