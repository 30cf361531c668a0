package records

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/odontoweb/portal/internal/gateway"
)

// API is the slice of the clinic backend the record editor needs.
type API interface {
	GetConsulta(ctx context.Context, token string, id int64) (*gateway.Consulta, error)
	GetPaciente(ctx context.Context, token string, id int64) (*gateway.Paciente, error)
	GetProntuarioPorConsulta(ctx context.Context, token string, consultaID int64) (*gateway.Prontuario, error)
	SaveProntuario(ctx context.Context, token string, consultaID int64, p *gateway.Prontuario) (*gateway.Prontuario, error)
	UpdateProntuario(ctx context.Context, token string, id int64, p *gateway.Prontuario) (*gateway.Prontuario, error)
}

// FallbackPatientName is shown when the patient lookup fails; the editor
// still opens because the record belongs to the consultation, not the name.
const FallbackPatientName = "Paciente não identificado"

type Service struct {
	api           API
	logger        zerolog.Logger
	redirectDelay time.Duration
}

func NewService(api API, logger zerolog.Logger, redirectDelay time.Duration) *Service {
	return &Service{api: api, logger: logger, redirectDelay: redirectDelay}
}

// Editor is the loaded state of the record form for one consultation.
type Editor struct {
	ConsultaID   int64      `json:"consultaId"`
	ConsultaData string     `json:"consultaData"`
	PacienteID   int64      `json:"pacienteId"`
	PacienteNome string     `json:"pacienteNome"`
	ProntuarioID int64      `json:"prontuarioId,omitempty"`
	Anamnese     Anamnese   `json:"anamnese"`
	Odontograma  Odontogram `json:"odontograma"`
}

// Load assembles the editor for a consultation. The consultation itself must
// exist; the patient lookup and the previous-record lookup are best effort:
// a missing record means a fresh form, never an error page.
func (s *Service) Load(ctx context.Context, token string, consultaID int64) (*Editor, error) {
	consulta, err := s.api.GetConsulta(ctx, token, consultaID)
	if err != nil {
		return nil, err
	}

	ed := &Editor{
		ConsultaID:   consulta.ID,
		ConsultaData: consulta.DataHora,
		PacienteID:   consulta.PacienteID,
		PacienteNome: FallbackPatientName,
		Anamnese:     Anamnese{}.Normalize(),
		Odontograma:  NewOdontogram(),
	}

	if paciente, err := s.api.GetPaciente(ctx, token, consulta.PacienteID); err == nil {
		ed.PacienteNome = paciente.Nome
	} else {
		s.logger.Warn().Err(err).Int64("paciente_id", consulta.PacienteID).
			Msg("paciente lookup failed, opening record without name")
	}

	prontuario, err := s.api.GetProntuarioPorConsulta(ctx, token, consultaID)
	if err != nil {
		if !gateway.IsNotFound(err) {
			s.logger.Warn().Err(err).Int64("consulta_id", consultaID).
				Msg("prontuario lookup failed, starting from a clean form")
		}
		return ed, nil
	}
	if prontuario.ID != 0 {
		ed.ProntuarioID = prontuario.ID
		ed.Anamnese = Unflatten(prontuario)
		ed.Odontograma = Parse(prontuario.OdontogramaJSON)
	}
	return ed, nil
}

// SaveResult tells the page where to go next and how long the success banner
// stays up before the redirect fires.
type SaveResult struct {
	ProntuarioID  int64         `json:"prontuarioId"`
	RedirectTo    string        `json:"redirectTo"`
	RedirectAfter time.Duration `json:"-"`
}

// Save persists the record: an existing record is updated in place, a new one
// is created against the consultation.
func (s *Service) Save(ctx context.Context, token string, consultaID, prontuarioID int64, anamnese Anamnese, odontograma Odontogram) (*SaveResult, error) {
	serialized, err := odontograma.Serialize()
	if err != nil {
		return nil, err
	}
	payload := anamnese.Flatten(serialized)

	var saved *gateway.Prontuario
	if prontuarioID != 0 {
		saved, err = s.api.UpdateProntuario(ctx, token, prontuarioID, payload)
	} else {
		saved, err = s.api.SaveProntuario(ctx, token, consultaID, payload)
	}
	if err != nil {
		return nil, err
	}

	return &SaveResult{
		ProntuarioID:  saved.ID,
		RedirectTo:    "/historico-consultas",
		RedirectAfter: s.redirectDelay,
	}, nil
}
