package gateway

// Wire models, field names exactly as the clinic backend exchanges them.

type Paciente struct {
	ID             int64  `json:"id,omitempty"`
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	Telefone       string `json:"telefone,omitempty"`
	DataNascimento string `json:"dataNascimento,omitempty"`
	// Senha is write-only: sent on registration, never echoed back.
	Senha string `json:"senha,omitempty"`
}

type Dentista struct {
	ID            int64  `json:"id,omitempty"`
	Nome          string `json:"nome"`
	Email         string `json:"email"`
	CRO           string `json:"cro,omitempty"`
	Especialidade string `json:"especialidade,omitempty"`
	Telefone      string `json:"telefone,omitempty"`
}

type Recepcionista struct {
	ID       int64  `json:"id,omitempty"`
	Nome     string `json:"nome"`
	Email    string `json:"email"`
	Telefone string `json:"telefone,omitempty"`
	Turno    string `json:"turno,omitempty"`
}

type Agendamento struct {
	ID         int64  `json:"id,omitempty"`
	DataHora   string `json:"dataHora"`
	PacienteID int64  `json:"pacienteId"`
	DentistaID int64  `json:"dentistaId"`
	// ServicoID is null on the wire when no procedure was picked.
	ServicoID  *int64 `json:"servicoId"`
	Observacao string `json:"observacao"`
	Confirmado bool   `json:"confirmado"`
}

type Consulta struct {
	ID         int64  `json:"id"`
	DataHora   string `json:"dataHora"`
	PacienteID int64  `json:"pacienteId"`
	DentistaID int64  `json:"dentistaId"`
	Status     string `json:"status"`
	Observacao string `json:"observacao,omitempty"`
}

type Servico struct {
	ID        int64   `json:"id,omitempty"`
	Nome      string  `json:"nome"`
	Descricao string  `json:"descricao"`
	Preco     float64 `json:"preco"`
	Ativo     bool    `json:"ativo"`
}

// Prontuario is the flattened clinical record: each anamnesis question
// contributes a resposta/notas pair, and the odontogram travels as a JSON
// string for backward compatibility with stored records.
type Prontuario struct {
	ID                    int64  `json:"id,omitempty"`
	AlergiaResposta       string `json:"alergiaResposta"`
	AlergiaNotas          string `json:"alergiaNotas"`
	AntibioticoResposta   string `json:"antibioticoResposta"`
	AntibioticoNotas      string `json:"antibioticoNotas"`
	AnestesicoResposta    string `json:"anestesicoResposta"`
	AnestesicoNotas       string `json:"anestesicoNotas"`
	SensibilidadeResposta string `json:"sensibilidadeResposta"`
	SensibilidadeNotas    string `json:"sensibilidadeNotas"`
	PressaoResposta       string `json:"pressaoResposta"`
	PressaoNotas          string `json:"pressaoNotas"`
	MedicamentoResposta   string `json:"medicamentoResposta"`
	MedicamentoNotas      string `json:"medicamentoNotas"`
	ProblemaSaudeResposta string `json:"problemaSaudeResposta"`
	ProblemaSaudeNotas    string `json:"problemaSaudeNotas"`
	Observacoes           string `json:"observacoes"`
	PlanoTratamento       string `json:"planoTratamento"`
	OdontogramaJSON       string `json:"odontogramaJson"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the backend-issued identity. Role is left untyped
// because the backend has emitted it as a string, a list, and an object.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Email       string `json:"email"`
	Role        any    `json:"role"`
	UserID      int64  `json:"userId"`
}
