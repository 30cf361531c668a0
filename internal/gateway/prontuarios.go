package gateway

import (
	"context"
	"strconv"
)

func (c *Client) SaveProntuario(ctx context.Context, token string, consultaID int64, p *Prontuario) (*Prontuario, error) {
	var out Prontuario
	resp, err := c.req(ctx, token).
		SetQueryParam("consultaId", strconv.FormatInt(consultaID, 10)).
		SetBody(p).
		SetResult(&out).
		Post("/prontuarios")
	if err := c.check("save prontuario", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetProntuarioPorConsulta(ctx context.Context, token string, consultaID int64) (*Prontuario, error) {
	var out Prontuario
	resp, err := c.req(ctx, token).SetResult(&out).
		Get("/prontuarios/consulta/" + strconv.FormatInt(consultaID, 10))
	if err := c.check("get prontuario por consulta", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProntuario(ctx context.Context, token string, id int64, p *Prontuario) (*Prontuario, error) {
	var out Prontuario
	resp, err := c.req(ctx, token).SetBody(p).SetResult(&out).
		Put("/prontuarios/" + strconv.FormatInt(id, 10))
	if err := c.check("update prontuario", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
