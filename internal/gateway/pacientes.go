package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListPacientes(ctx context.Context, token string) ([]Paciente, error) {
	var out []Paciente
	resp, err := c.req(ctx, token).SetResult(&out).Get("/pacientes")
	if err := c.check("list pacientes", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPaciente(ctx context.Context, token string, id int64) (*Paciente, error) {
	var out Paciente
	resp, err := c.req(ctx, token).SetResult(&out).Get("/pacientes/" + strconv.FormatInt(id, 10))
	if err := c.check("get paciente", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePaciente(ctx context.Context, token string, p *Paciente) (*Paciente, error) {
	var out Paciente
	resp, err := c.req(ctx, token).SetBody(p).SetResult(&out).Post("/pacientes/cadastro")
	if err := c.check("create paciente", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePaciente(ctx context.Context, token string, id int64, p *Paciente) (*Paciente, error) {
	var out Paciente
	resp, err := c.req(ctx, token).SetBody(p).SetResult(&out).Put("/pacientes/" + strconv.FormatInt(id, 10))
	if err := c.check("update paciente", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePaciente(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete("/pacientes/" + strconv.FormatInt(id, 10))
	return c.check("delete paciente", resp, err)
}
