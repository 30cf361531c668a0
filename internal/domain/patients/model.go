// Package patients covers patient registration and management: the signup
// form, the receptionist-facing roster, and the two-step delete flow. All
// form validation runs here, before any backend call is issued.
package patients

import (
	"regexp"
	"strings"
	"time"

	"github.com/odontoweb/portal/internal/gateway"
)

var emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// Form carries the patient registration fields as submitted.
type Form struct {
	Nome           string `json:"nome"`
	Email          string `json:"email"`
	CPF            string `json:"cpf"`
	Telefone       string `json:"telefone"`
	DataNascimento string `json:"dataNascimento"`
	Senha          string `json:"senha"`
}

// Validate checks every field and returns a field-keyed message map, empty
// when the form is acceptable. requireSenha is true on registration; edits
// leave the password untouched when blank.
func (f *Form) Validate(now time.Time, requireSenha bool) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(f.Nome) == "" {
		errs["nome"] = "Informe o nome completo."
	}

	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "Informe o e-mail."
	} else if !emailRe.MatchString(f.Email) {
		errs["email"] = "Informe um e-mail válido."
	}

	if msg := validateCPF(f.CPF); msg != "" {
		errs["cpf"] = msg
	}

	if f.Telefone != "" && !digitsOnly(f.Telefone, 10, 11) {
		errs["telefone"] = "O telefone deve ter 10 ou 11 números."
	}

	if f.DataNascimento != "" {
		nascimento, err := time.Parse("2006-01-02", f.DataNascimento)
		if err != nil {
			errs["dataNascimento"] = "Informe uma data válida."
		} else if nascimento.After(now) {
			errs["dataNascimento"] = "A data de nascimento não pode ser no futuro."
		}
	}

	if requireSenha && f.Senha == "" {
		errs["senha"] = "Informe a senha."
	}
	if f.Senha != "" && len(f.Senha) < 6 {
		errs["senha"] = "A senha deve ter pelo menos 6 caracteres."
	}

	return errs
}

// ToPaciente maps the validated form onto the wire model.
func (f *Form) ToPaciente() *gateway.Paciente {
	return &gateway.Paciente{
		Nome:           strings.TrimSpace(f.Nome),
		Email:          strings.TrimSpace(f.Email),
		CPF:            f.CPF,
		Telefone:       f.Telefone,
		DataNascimento: f.DataNascimento,
		Senha:          f.Senha,
	}
}

func digitsOnly(s string, min, max int) bool {
	if len(s) < min || len(s) > max {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// validateCPF checks length, digit-only content, and the two mod-11 check
// digits. Returns the user-facing message, or "" when valid.
func validateCPF(cpf string) string {
	if cpf == "" {
		return "Informe o CPF."
	}
	if !digitsOnly(cpf, 11, 11) {
		return "O CPF deve ter exatamente 11 números."
	}

	// Repdigit sequences like 00000000000 pass the checksum but are not
	// valid registrations.
	allSame := true
	for i := 1; i < len(cpf); i++ {
		if cpf[i] != cpf[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return "CPF inválido."
	}

	digit := func(i int) int { return int(cpf[i] - '0') }
	check := func(count int) int {
		sum := 0
		for i := 0; i < count; i++ {
			sum += digit(i) * (count + 1 - i)
		}
		rest := (sum * 10) % 11
		if rest == 10 {
			rest = 0
		}
		return rest
	}

	if check(9) != digit(9) || check(10) != digit(10) {
		return "CPF inválido."
	}
	return ""
}
