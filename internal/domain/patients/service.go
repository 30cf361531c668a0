package patients

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
)

// API is the slice of the clinic backend patient management needs.
type API interface {
	ListPacientes(ctx context.Context, token string) ([]gateway.Paciente, error)
	GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error)
	CreatePaciente(ctx context.Context, token string, p *gateway.Paciente) (*gateway.Paciente, error)
	UpdatePaciente(ctx context.Context, token string, id int64, p *gateway.Paciente) (*gateway.Paciente, error)
	DeletePaciente(ctx context.Context, token string, id int64) error
}

// ErrValidation carries field-level messages back to the form. No backend
// call has been issued when it is returned.
type ErrValidation struct {
	Fields map[string]string
}

func (e *ErrValidation) Error() string { return "formulário inválido" }

// AsValidation unwraps err into field messages when it is a validation error.
func AsValidation(err error) (map[string]string, bool) {
	var ve *ErrValidation
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}

type Service struct {
	api    API
	logger zerolog.Logger
}

func NewService(api API, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

func (s *Service) List(ctx context.Context, token string) ([]gateway.Paciente, error) {
	return s.api.ListPacientes(ctx, token)
}

func (s *Service) Get(ctx context.Context, token string, id int64) (*gateway.Paciente, error) {
	return s.api.GetPaciente(ctx, token, id)
}

// Create validates the registration form locally and only then submits.
func (s *Service) Create(ctx context.Context, token string, form *Form) (*gateway.Paciente, error) {
	if errs := form.Validate(time.Now(), true); len(errs) > 0 {
		return nil, &ErrValidation{Fields: errs}
	}
	return s.api.CreatePaciente(ctx, token, form.ToPaciente())
}

// Update validates and submits an edit. A blank password keeps the current one.
func (s *Service) Update(ctx context.Context, token string, id int64, form *Form) (*gateway.Paciente, error) {
	if errs := form.Validate(time.Now(), false); len(errs) > 0 {
		return nil, &ErrValidation{Fields: errs}
	}
	return s.api.UpdatePaciente(ctx, token, id, form.ToPaciente())
}

func (s *Service) Delete(ctx context.Context, token string, id int64) error {
	return s.api.DeletePaciente(ctx, token, id)
}
