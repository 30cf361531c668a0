package records

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
)

type fakeAPI struct {
	consulta    *gateway.Consulta
	consultaErr error

	paciente    *gateway.Paciente
	pacienteErr error

	prontuario    *gateway.Prontuario
	prontuarioErr error

	savedPayload   *gateway.Prontuario
	savedConsulta  int64
	updatedID      int64
	updatedPayload *gateway.Prontuario
	saveErr        error
}

func (f *fakeAPI) GetConsulta(ctx context.Context, token string, id int64) (*gateway.Consulta, error) {
	return f.consulta, f.consultaErr
}

func (f *fakeAPI) GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error) {
	return f.paciente, f.pacienteErr
}

func (f *fakeAPI) GetProntuarioPorConsulta(ctx context.Context, token string, consultaID int64) (*gateway.Prontuario, error) {
	return f.prontuario, f.prontuarioErr
}

func (f *fakeAPI) SaveProntuario(ctx context.Context, token string, consultaID int64, p *gateway.Prontuario) (*gateway.Prontuario, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.savedConsulta = consultaID
	f.savedPayload = p
	out := *p
	out.ID = 77
	return &out, nil
}

func (f *fakeAPI) UpdateProntuario(ctx context.Context, token string, id int64, p *gateway.Prontuario) (*gateway.Prontuario, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.updatedID = id
	f.updatedPayload = p
	out := *p
	out.ID = id
	return &out, nil
}

func newService(api *fakeAPI) *Service {
	return NewService(api, zerolog.Nop(), 10*time.Second)
}

func TestLoad_NewRecordStartsClean(t *testing.T) {
	api := &fakeAPI{
		consulta:      &gateway.Consulta{ID: 5, PacienteID: 2, DataHora: "2026-03-01T09:00"},
		paciente:      &gateway.Paciente{ID: 2, Nome: "Maria Souza"},
		prontuarioErr: &gateway.Fault{Status: 404},
	}
	ed, err := newService(api).Load(context.Background(), "tok", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.ProntuarioID != 0 {
		t.Errorf("new record must have no id, got %d", ed.ProntuarioID)
	}
	if ed.PacienteNome != "Maria Souza" {
		t.Errorf("unexpected patient name %q", ed.PacienteNome)
	}
	if ed.Anamnese.Alergia.Resposta != AnswerNo {
		t.Errorf("fresh anamnesis must default to Não, got %q", ed.Anamnese.Alergia.Resposta)
	}
	if ed.Odontograma["11"] != Healthy {
		t.Errorf("fresh odontogram must be healthy, got %s", ed.Odontograma["11"])
	}
}

func TestLoad_PatientLookupFailureKeepsEditorOpen(t *testing.T) {
	api := &fakeAPI{
		consulta:      &gateway.Consulta{ID: 5, PacienteID: 2},
		pacienteErr:   &gateway.Fault{Status: 500},
		prontuarioErr: &gateway.Fault{Status: 404},
	}
	ed, err := newService(api).Load(context.Background(), "tok", 5)
	if err != nil {
		t.Fatalf("editor must open without the patient name: %v", err)
	}
	if ed.PacienteNome != FallbackPatientName {
		t.Errorf("expected fallback name, got %q", ed.PacienteNome)
	}
}

func TestLoad_ExistingRecordRestoresState(t *testing.T) {
	api := &fakeAPI{
		consulta: &gateway.Consulta{ID: 5, PacienteID: 2},
		paciente: &gateway.Paciente{ID: 2, Nome: "Maria Souza"},
		prontuario: &gateway.Prontuario{
			ID:              31,
			AlergiaResposta: "Sim",
			AlergiaNotas:    "penicilina",
			OdontogramaJSON: `{"11":"decayed"}`,
		},
	}
	ed, err := newService(api).Load(context.Background(), "tok", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ed.ProntuarioID != 31 {
		t.Errorf("expected record id 31, got %d", ed.ProntuarioID)
	}
	if ed.Anamnese.Alergia.Resposta != AnswerYes || ed.Anamnese.Alergia.Notas != "penicilina" {
		t.Errorf("anamnesis not restored: %+v", ed.Anamnese.Alergia)
	}
	if ed.Odontograma["11"] != Decayed {
		t.Errorf("odontogram not restored, tooth 11 = %s", ed.Odontograma["11"])
	}
	if ed.Odontograma["12"] != Healthy {
		t.Errorf("unset teeth must default to healthy, got %s", ed.Odontograma["12"])
	}
}

func TestLoad_ConsultaFailureIsFatal(t *testing.T) {
	api := &fakeAPI{consultaErr: &gateway.Fault{Status: 404, ServerMessage: "consulta não encontrada"}}
	if _, err := newService(api).Load(context.Background(), "tok", 5); err == nil {
		t.Fatal("expected error when the consultation is missing")
	}
}

func TestSave_CreatesAgainstConsultation(t *testing.T) {
	api := &fakeAPI{}
	anamnese := Anamnese{Alergia: Answer{Resposta: "Sim", Notas: "penicilina"}}

	result, err := newService(api).Save(context.Background(), "tok", 5, 0, anamnese, NewOdontogram())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.savedConsulta != 5 {
		t.Errorf("expected POST against consulta 5, got %d", api.savedConsulta)
	}
	if result.ProntuarioID != 77 {
		t.Errorf("expected saved id 77, got %d", result.ProntuarioID)
	}
	if result.RedirectTo != "/historico-consultas" {
		t.Errorf("unexpected redirect %q", result.RedirectTo)
	}
	if result.RedirectAfter != 10*time.Second {
		t.Errorf("unexpected redirect delay %s", result.RedirectAfter)
	}
	if api.savedPayload.AlergiaResposta != "Sim" || api.savedPayload.AlergiaNotas != "penicilina" {
		t.Errorf("payload not flattened: %+v", api.savedPayload)
	}
}

func TestSave_NoNoteSubmittedWhenAnswerIsNo(t *testing.T) {
	api := &fakeAPI{}
	// The form kept the note while the toggle flipped back to Não.
	anamnese := Anamnese{Alergia: Answer{Resposta: "Não", Notas: "texto remanescente"}}

	if _, err := newService(api).Save(context.Background(), "tok", 5, 0, anamnese, NewOdontogram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.savedPayload.AlergiaNotas != "" {
		t.Errorf("note must be dropped when the answer is Não, got %q", api.savedPayload.AlergiaNotas)
	}
}

func TestSave_UpdatesExistingRecord(t *testing.T) {
	api := &fakeAPI{}
	if _, err := newService(api).Save(context.Background(), "tok", 5, 31, Anamnese{}, NewOdontogram()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.updatedID != 31 {
		t.Errorf("expected PUT against record 31, got %d", api.updatedID)
	}
	if api.savedPayload != nil {
		t.Error("existing record must not be recreated")
	}
}
