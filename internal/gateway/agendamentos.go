package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListAgendamentos(ctx context.Context, token string) ([]Agendamento, error) {
	var out []Agendamento
	resp, err := c.req(ctx, token).SetResult(&out).Get("/agendamentos")
	if err := c.check("list agendamentos", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAgendamentosPorDentista(ctx context.Context, token string, dentistaID int64) ([]Agendamento, error) {
	var out []Agendamento
	resp, err := c.req(ctx, token).SetResult(&out).
		Get("/agendamentos/dentista/" + strconv.FormatInt(dentistaID, 10))
	if err := c.check("list agendamentos por dentista", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListAgendamentosPorPaciente(ctx context.Context, token string, pacienteID int64) ([]Agendamento, error) {
	var out []Agendamento
	resp, err := c.req(ctx, token).SetResult(&out).
		Get("/agendamentos/paciente/" + strconv.FormatInt(pacienteID, 10))
	if err := c.check("list agendamentos por paciente", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAgendamento(ctx context.Context, token string, id int64) (*Agendamento, error) {
	var out Agendamento
	resp, err := c.req(ctx, token).SetResult(&out).Get("/agendamentos/" + strconv.FormatInt(id, 10))
	if err := c.check("get agendamento", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateAgendamento(ctx context.Context, token string, a *Agendamento) (*Agendamento, error) {
	var out Agendamento
	resp, err := c.req(ctx, token).SetBody(a).SetResult(&out).Post("/agendamentos")
	if err := c.check("create agendamento", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAgendamento(ctx context.Context, token string, id int64, a *Agendamento) (*Agendamento, error) {
	var out Agendamento
	resp, err := c.req(ctx, token).SetBody(a).SetResult(&out).Put("/agendamentos/" + strconv.FormatInt(id, 10))
	if err := c.check("update agendamento", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAgendamento(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete("/agendamentos/" + strconv.FormatInt(id, 10))
	return c.check("delete agendamento", resp, err)
}

func (c *Client) ConfirmAgendamento(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Post("/agendamentos/" + strconv.FormatInt(id, 10) + "/confirmar")
	return c.check("confirm agendamento", resp, err)
}
