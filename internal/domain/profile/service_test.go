package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/domain/patients"
	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/roles"
)

type fakeAPI struct {
	paciente      *gateway.Paciente
	dentista      *gateway.Dentista
	recepcionista *gateway.Recepcionista
	getErr        error

	updatedPaciente      *gateway.Paciente
	updatedDentista      *gateway.Dentista
	updatedRecepcionista *gateway.Recepcionista
	calls                int
}

func (f *fakeAPI) GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error) {
	f.calls++
	return f.paciente, f.getErr
}

func (f *fakeAPI) UpdatePaciente(ctx context.Context, token string, id int64, p *gateway.Paciente) (*gateway.Paciente, error) {
	f.calls++
	f.updatedPaciente = p
	out := *p
	out.ID = id
	return &out, nil
}

func (f *fakeAPI) GetDentista(ctx context.Context, token string, id int64) (*gateway.Dentista, error) {
	f.calls++
	return f.dentista, f.getErr
}

func (f *fakeAPI) UpdateDentista(ctx context.Context, token string, id int64, d *gateway.Dentista) (*gateway.Dentista, error) {
	f.calls++
	f.updatedDentista = d
	out := *d
	out.ID = id
	return &out, nil
}

func (f *fakeAPI) GetRecepcionista(ctx context.Context, token string, id int64) (*gateway.Recepcionista, error) {
	f.calls++
	return f.recepcionista, f.getErr
}

func (f *fakeAPI) UpdateRecepcionista(ctx context.Context, token string, id int64, r *gateway.Recepcionista) (*gateway.Recepcionista, error) {
	f.calls++
	f.updatedRecepcionista = r
	out := *r
	out.ID = id
	return &out, nil
}

func newService(api *fakeAPI) *Service {
	return NewService(api, zerolog.Nop())
}

func TestLoad_PatientReadsOwnRecord(t *testing.T) {
	api := &fakeAPI{paciente: &gateway.Paciente{ID: 4, Nome: "Maria Souza", CPF: "52998224725"}}

	perfil, err := newService(api).Load(context.Background(), "tok", roles.Patient, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perfil.Nome != "Maria Souza" || perfil.CPF != "52998224725" {
		t.Errorf("patient record not mapped: %+v", perfil)
	}
	if perfil.CRO != "" || perfil.Turno != "" {
		t.Errorf("foreign fields must stay empty: %+v", perfil)
	}
}

func TestLoad_DentistReadsOwnRecord(t *testing.T) {
	api := &fakeAPI{dentista: &gateway.Dentista{ID: 7, Nome: "Dr. Silva", CRO: "SP-12345", Especialidade: "Ortodontia"}}

	perfil, err := newService(api).Load(context.Background(), "tok", roles.Dentist, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perfil.CRO != "SP-12345" || perfil.Especialidade != "Ortodontia" {
		t.Errorf("dentist record not mapped: %+v", perfil)
	}
}

func TestLoad_ReceptionistReadsOwnRecord(t *testing.T) {
	api := &fakeAPI{recepcionista: &gateway.Recepcionista{ID: 3, Nome: "Ana", Turno: "manhã"}}

	perfil, err := newService(api).Load(context.Background(), "tok", roles.Receptionist, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if perfil.Turno != "manhã" {
		t.Errorf("receptionist record not mapped: %+v", perfil)
	}
}

func TestLoad_UnknownRoleHasNoProfile(t *testing.T) {
	api := &fakeAPI{}
	if _, err := newService(api).Load(context.Background(), "tok", roles.Unknown, 1); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("expected ErrNoProfile, got %v", err)
	}
	if api.calls != 0 {
		t.Error("unknown role must not reach the backend")
	}
}

func TestUpdate_PatientValidationBlocksSubmit(t *testing.T) {
	api := &fakeAPI{}

	_, err := newService(api).Update(context.Background(), "tok", roles.Patient, 4, &Form{
		Nome:  "Maria Souza",
		Email: "maria@exemplo.com",
		CPF:   "123",
	})
	fields, ok := patients.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if fields["cpf"] == "" {
		t.Errorf("expected a cpf message, got %v", fields)
	}
	if api.calls != 0 {
		t.Error("validation failure must not reach the backend")
	}
}

func TestUpdate_DentistTargetsDentistResource(t *testing.T) {
	api := &fakeAPI{}

	perfil, err := newService(api).Update(context.Background(), "tok", roles.Dentist, 7, &Form{
		Nome:          "Dr. Silva",
		Email:         "silva@clinica.com",
		CRO:           "SP-12345",
		Especialidade: "Endodontia",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updatedDentista == nil || api.updatedDentista.CRO != "SP-12345" {
		t.Fatalf("dentist resource not updated: %+v", api.updatedDentista)
	}
	if api.updatedPaciente != nil || api.updatedRecepcionista != nil {
		t.Error("only the session role's resource may be touched")
	}
	if perfil.Especialidade != "Endodontia" {
		t.Errorf("updated card not mapped back: %+v", perfil)
	}
}

func TestUpdate_ReceptionistKeepsTurno(t *testing.T) {
	api := &fakeAPI{}

	_, err := newService(api).Update(context.Background(), "tok", roles.Receptionist, 3, &Form{
		Nome:  "Ana",
		Email: "ana@clinica.com",
		Turno: "tarde",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updatedRecepcionista == nil || api.updatedRecepcionista.Turno != "tarde" {
		t.Errorf("turno lost: %+v", api.updatedRecepcionista)
	}
}

func TestUpdate_PatientNeverSendsPassword(t *testing.T) {
	api := &fakeAPI{}

	_, err := newService(api).Update(context.Background(), "tok", roles.Patient, 4, &Form{
		Nome:  "Maria Souza",
		Email: "maria@exemplo.com",
		CPF:   "52998224725",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updatedPaciente.Senha != "" {
		t.Errorf("profile edits must not carry a password, got %q", api.updatedPaciente.Senha)
	}
}
