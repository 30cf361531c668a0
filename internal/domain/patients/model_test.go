package patients

import (
	"testing"
	"time"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validForm() Form {
	return Form{
		Nome:           "Maria Souza",
		Email:          "maria@exemplo.com",
		CPF:            "52998224725",
		Telefone:       "11987654321",
		DataNascimento: "1990-05-10",
		Senha:          "segredo1",
	}
}

func TestValidate_AcceptsValidForm(t *testing.T) {
	f := validForm()
	if errs := f.Validate(now, true); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_CPFTooShort(t *testing.T) {
	f := validForm()
	f.CPF = "1234567890"
	errs := f.Validate(now, true)
	if errs["cpf"] != "O CPF deve ter exatamente 11 números." {
		t.Errorf("unexpected cpf message %q", errs["cpf"])
	}
}

func TestValidate_CPFNonNumeric(t *testing.T) {
	f := validForm()
	f.CPF = "529.982.247"
	if errs := f.Validate(now, true); errs["cpf"] == "" {
		t.Error("expected cpf error for non-numeric input")
	}
}

func TestValidate_CPFBadCheckDigits(t *testing.T) {
	f := validForm()
	f.CPF = "52998224726"
	errs := f.Validate(now, true)
	if errs["cpf"] != "CPF inválido." {
		t.Errorf("unexpected cpf message %q", errs["cpf"])
	}
}

func TestValidate_CPFRepdigitRejected(t *testing.T) {
	f := validForm()
	f.CPF = "11111111111"
	if errs := f.Validate(now, true); errs["cpf"] == "" {
		t.Error("repdigit CPF must be rejected")
	}
}

func TestValidate_Email(t *testing.T) {
	f := validForm()
	f.Email = "maria@exemplo"
	errs := f.Validate(now, true)
	if errs["email"] != "Informe um e-mail válido." {
		t.Errorf("unexpected email message %q", errs["email"])
	}
}

func TestValidate_BirthDateInFuture(t *testing.T) {
	f := validForm()
	f.DataNascimento = "2030-01-01"
	errs := f.Validate(now, true)
	if errs["dataNascimento"] != "A data de nascimento não pode ser no futuro." {
		t.Errorf("unexpected message %q", errs["dataNascimento"])
	}
}

func TestValidate_SenhaOptionalOnEdit(t *testing.T) {
	f := validForm()
	f.Senha = ""
	if errs := f.Validate(now, false); len(errs) != 0 {
		t.Errorf("blank password on edit must be accepted, got %v", errs)
	}
	if errs := f.Validate(now, true); errs["senha"] == "" {
		t.Error("blank password on registration must be rejected")
	}
}

func TestValidate_CollectsAllFields(t *testing.T) {
	f := Form{}
	errs := f.Validate(now, true)
	for _, field := range []string{"nome", "email", "cpf", "senha"} {
		if errs[field] == "" {
			t.Errorf("expected message for %s", field)
		}
	}
}
