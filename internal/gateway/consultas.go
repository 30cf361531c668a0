package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListConsultasPorPaciente(ctx context.Context, token string, pacienteID int64) ([]Consulta, error) {
	var out []Consulta
	resp, err := c.req(ctx, token).SetResult(&out).
		Get("/consultas/paciente/" + strconv.FormatInt(pacienteID, 10))
	if err := c.check("list consultas por paciente", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListConsultasPorDentista(ctx context.Context, token string, dentistaID int64) ([]Consulta, error) {
	var out []Consulta
	resp, err := c.req(ctx, token).SetResult(&out).
		Get("/consultas/dentista/" + strconv.FormatInt(dentistaID, 10))
	if err := c.check("list consultas por dentista", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetConsulta(ctx context.Context, token string, id int64) (*Consulta, error) {
	var out Consulta
	resp, err := c.req(ctx, token).SetResult(&out).Get("/consultas/" + strconv.FormatInt(id, 10))
	if err := c.check("get consulta", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
