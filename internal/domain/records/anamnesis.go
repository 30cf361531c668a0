package records

import "github.com/odontoweb/portal/internal/gateway"

// Answer values accepted by the anamnesis toggles.
const (
	AnswerYes = "Sim"
	AnswerNo  = "Não"
)

// Answer is one anamnesis question: a Sim/Não toggle plus a free-text note
// that is only relevant when the answer is Sim.
type Answer struct {
	Resposta string `json:"resposta"`
	Notas    string `json:"notas"`
}

func (a Answer) normalized() Answer {
	if a.Resposta != AnswerYes {
		a.Resposta = AnswerNo
	}
	return a
}

// Question describes one anamnesis entry for rendering.
type Question struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Questions lists the anamnesis questionnaire in display order.
var Questions = []Question{
	{Key: "alergia", Label: "Possui alguma alergia?"},
	{Key: "antibiotico", Label: "Está tomando antibiótico?"},
	{Key: "anestesico", Label: "Já teve reação a anestésico?"},
	{Key: "sensibilidade", Label: "Sente sensibilidade nos dentes?"},
	{Key: "pressao", Label: "Tem pressão alta?"},
	{Key: "medicamento", Label: "Faz uso contínuo de algum medicamento?"},
	{Key: "problemaSaude", Label: "Possui algum problema de saúde?"},
}

// Anamnese groups the questionnaire answers with the record's free-text
// fields. Keys match the Questions list.
type Anamnese struct {
	Alergia       Answer `json:"alergia"`
	Antibiotico   Answer `json:"antibiotico"`
	Anestesico    Answer `json:"anestesico"`
	Sensibilidade Answer `json:"sensibilidade"`
	Pressao       Answer `json:"pressao"`
	Medicamento   Answer `json:"medicamento"`
	ProblemaSaude Answer `json:"problemaSaude"`

	Observacoes     string `json:"observacoes"`
	PlanoTratamento string `json:"planoTratamento"`
	// Indicador (who referred the patient) lives only in the form; the
	// stored record has no field for it.
	Indicador string `json:"indicador"`
}

// Normalize coerces every answer to Sim or Não, defaulting blanks to Não.
func (a Anamnese) Normalize() Anamnese {
	a.Alergia = a.Alergia.normalized()
	a.Antibiotico = a.Antibiotico.normalized()
	a.Anestesico = a.Anestesico.normalized()
	a.Sensibilidade = a.Sensibilidade.normalized()
	a.Pressao = a.Pressao.normalized()
	a.Medicamento = a.Medicamento.normalized()
	a.ProblemaSaude = a.ProblemaSaude.normalized()
	return a
}

// submitted returns the answer as persisted: toggling a question back to Não
// keeps the note in the form, but it is dropped from the payload at submit.
func submitted(a Answer) Answer {
	a = a.normalized()
	if a.Resposta != AnswerYes {
		a.Notas = ""
	}
	return a
}

// Flatten renders the anamnesis plus serialized odontogram into the backend's
// flat prontuario shape.
func (a Anamnese) Flatten(odontogramaJSON string) *gateway.Prontuario {
	al := submitted(a.Alergia)
	an := submitted(a.Antibiotico)
	ae := submitted(a.Anestesico)
	se := submitted(a.Sensibilidade)
	pr := submitted(a.Pressao)
	me := submitted(a.Medicamento)
	ps := submitted(a.ProblemaSaude)

	return &gateway.Prontuario{
		AlergiaResposta:       al.Resposta,
		AlergiaNotas:          al.Notas,
		AntibioticoResposta:   an.Resposta,
		AntibioticoNotas:      an.Notas,
		AnestesicoResposta:    ae.Resposta,
		AnestesicoNotas:       ae.Notas,
		SensibilidadeResposta: se.Resposta,
		SensibilidadeNotas:    se.Notas,
		PressaoResposta:       pr.Resposta,
		PressaoNotas:          pr.Notas,
		MedicamentoResposta:   me.Resposta,
		MedicamentoNotas:      me.Notas,
		ProblemaSaudeResposta: ps.Resposta,
		ProblemaSaudeNotas:    ps.Notas,
		Observacoes:           a.Observacoes,
		PlanoTratamento:       a.PlanoTratamento,
		OdontogramaJSON:       odontogramaJSON,
	}
}

// Unflatten rebuilds the grouped anamnesis from a stored prontuario.
func Unflatten(p *gateway.Prontuario) Anamnese {
	a := Anamnese{
		Alergia:         Answer{Resposta: p.AlergiaResposta, Notas: p.AlergiaNotas},
		Antibiotico:     Answer{Resposta: p.AntibioticoResposta, Notas: p.AntibioticoNotas},
		Anestesico:      Answer{Resposta: p.AnestesicoResposta, Notas: p.AnestesicoNotas},
		Sensibilidade:   Answer{Resposta: p.SensibilidadeResposta, Notas: p.SensibilidadeNotas},
		Pressao:         Answer{Resposta: p.PressaoResposta, Notas: p.PressaoNotas},
		Medicamento:     Answer{Resposta: p.MedicamentoResposta, Notas: p.MedicamentoNotas},
		ProblemaSaude:   Answer{Resposta: p.ProblemaSaudeResposta, Notas: p.ProblemaSaudeNotas},
		Observacoes:     p.Observacoes,
		PlanoTratamento: p.PlanoTratamento,
	}
	return a.Normalize()
}
