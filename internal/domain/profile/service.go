// Package profile is the "Meu Perfil" page: the signed-in user views and
// edits its own identity record. The backend keeps that record under a
// different resource per role, so the service switches on the session role
// and maps the three shapes onto one card.
package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/domain/patients"
	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
)

// ErrNoProfile marks roles without an identity resource of their own.
var ErrNoProfile = errors.New("perfil indisponível para este papel")

// API is the slice of the clinic backend the profile page needs: the
// get/update pair of each identity resource.
type API interface {
	GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error)
	UpdatePaciente(ctx context.Context, token string, id int64, p *gateway.Paciente) (*gateway.Paciente, error)
	GetDentista(ctx context.Context, token string, id int64) (*gateway.Dentista, error)
	UpdateDentista(ctx context.Context, token string, id int64, d *gateway.Dentista) (*gateway.Dentista, error)
	GetRecepcionista(ctx context.Context, token string, id int64) (*gateway.Recepcionista, error)
	UpdateRecepcionista(ctx context.Context, token string, id int64, r *gateway.Recepcionista) (*gateway.Recepcionista, error)
}

// Profile is the role-shaped identity card: the common name/email pair plus
// whichever extra fields the owner's resource carries.
type Profile struct {
	Role  string `json:"role"`
	Nome  string `json:"nome"`
	Email string `json:"email"`

	CPF            string `json:"cpf,omitempty"`
	Telefone       string `json:"telefone,omitempty"`
	DataNascimento string `json:"dataNascimento,omitempty"`

	CRO           string `json:"cro,omitempty"`
	Especialidade string `json:"especialidade,omitempty"`

	Turno string `json:"turno,omitempty"`
}

// Form carries the editable profile fields. Fields that do not belong to the
// session role are ignored.
type Form struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	Telefone       string `json:"telefone"`
	DataNascimento string `json:"dataNascimento"`
	CRO            string `json:"cro"`
	Especialidade  string `json:"especialidade"`
	Turno          string `json:"turno"`
}

// validate returns field-keyed messages, empty when the form is acceptable.
// The patient branch reuses the registration rules; the password stays
// untouched, profile edits never change it.
func (f *Form) validate(role roles.RoleTag, now time.Time) map[string]string {
	if role == roles.Patient {
		pf := patients.Form{
			Nome:           f.Nome,
			Email:          f.Email,
			CPF:            f.CPF,
			Telefone:       f.Telefone,
			DataNascimento: f.DataNascimento,
		}
		return pf.Validate(now, false)
	}

	errs := make(map[string]string)
	if strings.TrimSpace(f.Nome) == "" {
		errs["nome"] = "Informe o nome completo."
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Informe o e-mail."
	}
	return errs
}

type Service struct {
	api    API
	logger zerolog.Logger
}

func NewService(api API, logger zerolog.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// Load fetches the session owner's record from the resource matching its
// role. Admin sessions have no identity resource and get ErrNoProfile.
func (s *Service) Load(ctx context.Context, token string, role roles.RoleTag, userID int64) (*Profile, error) {
	switch role {
	case roles.Patient:
		p, err := s.api.GetPaciente(ctx, token, userID)
		if err != nil {
			return nil, err
		}
		return fromPaciente(p), nil
	case roles.Dentist:
		d, err := s.api.GetDentista(ctx, token, userID)
		if err != nil {
			return nil, err
		}
		return fromDentista(d), nil
	case roles.Receptionist:
		r, err := s.api.GetRecepcionista(ctx, token, userID)
		if err != nil {
			return nil, err
		}
		return fromRecepcionista(r), nil
	default:
		return nil, ErrNoProfile
	}
}

// Update validates locally and submits the edit against the owner's own
// resource. A validation failure never reaches the backend.
func (s *Service) Update(ctx context.Context, token string, role roles.RoleTag, userID int64, form *Form) (*Profile, error) {
	if role != roles.Patient && role != roles.Dentist && role != roles.Receptionist {
		return nil, ErrNoProfile
	}
	if errs := form.validate(role, time.Now()); len(errs) > 0 {
		return nil, &patients.ErrValidation{Fields: errs}
	}

	nome := strings.TrimSpace(form.Nome)
	email := strings.TrimSpace(form.Email)

	switch role {
	case roles.Patient:
		p, err := s.api.UpdatePaciente(ctx, token, userID, &gateway.Paciente{
			Nome:           nome,
			Email:          email,
			CPF:            form.CPF,
			Telefone:       form.Telefone,
			DataNascimento: form.DataNascimento,
		})
		if err != nil {
			return nil, err
		}
		return fromPaciente(p), nil
	case roles.Dentist:
		d, err := s.api.UpdateDentista(ctx, token, userID, &gateway.Dentista{
			Nome:          nome,
			Email:         email,
			CRO:           form.CRO,
			Especialidade: form.Especialidade,
		})
		if err != nil {
			return nil, err
		}
		return fromDentista(d), nil
	default:
		r, err := s.api.UpdateRecepcionista(ctx, token, userID, &gateway.Recepcionista{
			Nome:  nome,
			Email: email,
			Turno: form.Turno,
		})
		if err != nil {
			return nil, err
		}
		return fromRecepcionista(r), nil
	}
}

func fromPaciente(p *gateway.Paciente) *Profile {
	return &Profile{
		Role:           roles.Patient.String(),
		Nome:           p.Nome,
		Email:          p.Email,
		CPF:            p.CPF,
		Telefone:       p.Telefone,
		DataNascimento: p.DataNascimento,
	}
}

func fromDentista(d *gateway.Dentista) *Profile {
	return &Profile{
		Role:          roles.Dentist.String(),
		Nome:          d.Nome,
		Email:         d.Email,
		CRO:           d.CRO,
		Especialidade: d.Especialidade,
	}
}

func fromRecepcionista(r *gateway.Recepcionista) *Profile {
	return &Profile{
		Role:  roles.Receptionist.String(),
		Nome:  r.Nome,
		Email: r.Email,
		Turno: r.Turno,
	}
}
