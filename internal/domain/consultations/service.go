// Package consultations is the read-only consultation history: the list a
// patient or dentist browses, and the entry point into the record editor.
package consultations

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
)

// API is the slice of the clinic backend the history needs.
type API interface {
	ListConsultasPorPaciente(ctx context.Context, token string, pacienteID int64) ([]gateway.Consulta, error)
	ListConsultasPorDentista(ctx context.Context, token string, dentistaID int64) ([]gateway.Consulta, error)
	GetConsulta(ctx context.Context, token string, id int64) (*gateway.Consulta, error)
}

type Service struct {
	api    API
	logger zerolog.Logger
}

func NewService(api API, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// HistoryForUser lists the session owner's consultations. Dentists browse
// what they attended; every other profile browses its own visits.
func (s *Service) HistoryForUser(ctx context.Context, token string, role roles.RoleTag, userID int64) ([]gateway.Consulta, error) {
	if role == roles.Dentist {
		return s.api.ListConsultasPorDentista(ctx, token, userID)
	}
	return s.api.ListConsultasPorPaciente(ctx, token, userID)
}

func (s *Service) Get(ctx context.Context, token string, id int64) (*gateway.Consulta, error) {
	return s.api.GetConsulta(ctx, token, id)
}
