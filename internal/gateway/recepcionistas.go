package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListRecepcionistas(ctx context.Context, token string) ([]Recepcionista, error) {
	var out []Recepcionista
	resp, err := c.req(ctx, token).SetResult(&out).Get("/recepcionistas")
	if err := c.check("list recepcionistas", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRecepcionista(ctx context.Context, token string, id int64) (*Recepcionista, error) {
	var out Recepcionista
	resp, err := c.req(ctx, token).SetResult(&out).Get("/recepcionistas/" + strconv.FormatInt(id, 10))
	if err := c.check("get recepcionista", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateRecepcionista(ctx context.Context, token string, id int64, r *Recepcionista) (*Recepcionista, error) {
	var out Recepcionista
	resp, err := c.req(ctx, token).SetBody(r).SetResult(&out).Put("/recepcionistas/" + strconv.FormatInt(id, 10))
	if err := c.check("update recepcionista", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteRecepcionista(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete("/recepcionistas/" + strconv.FormatInt(id, 10))
	return c.check("delete recepcionista", resp, err)
}
