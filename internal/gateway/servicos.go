package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListServicos(ctx context.Context, token string) ([]Servico, error) {
	var out []Servico
	resp, err := c.req(ctx, token).SetResult(&out).Get("/servicos")
	if err := c.check("list servicos", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetServico(ctx context.Context, token string, id int64) (*Servico, error) {
	var out Servico
	resp, err := c.req(ctx, token).SetResult(&out).Get("/servicos/" + strconv.FormatInt(id, 10))
	if err := c.check("get servico", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateServico(ctx context.Context, token string, s *Servico) (*Servico, error) {
	var out Servico
	resp, err := c.req(ctx, token).SetBody(s).SetResult(&out).Post("/servicos")
	if err := c.check("create servico", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateServico(ctx context.Context, token string, id int64, s *Servico) (*Servico, error) {
	var out Servico
	resp, err := c.req(ctx, token).SetBody(s).SetResult(&out).Put("/servicos/" + strconv.FormatInt(id, 10))
	if err := c.check("update servico", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteServico(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete("/servicos/" + strconv.FormatInt(id, 10))
	return c.check("delete servico", resp, err)
}
