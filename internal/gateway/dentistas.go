package gateway

import (
	"context"
	"strconv"
)

func (c *Client) ListDentistas(ctx context.Context, token string) ([]Dentista, error) {
	var out []Dentista
	resp, err := c.req(ctx, token).SetResult(&out).Get("/dentistas")
	if err := c.check("list dentistas", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetDentista(ctx context.Context, token string, id int64) (*Dentista, error) {
	var out Dentista
	resp, err := c.req(ctx, token).SetResult(&out).Get("/dentistas/" + strconv.FormatInt(id, 10))
	if err := c.check("get dentista", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDentista(ctx context.Context, token string, id int64, d *Dentista) (*Dentista, error) {
	var out Dentista
	resp, err := c.req(ctx, token).SetBody(d).SetResult(&out).Put("/dentistas/" + strconv.FormatInt(id, 10))
	if err := c.check("update dentista", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDentista(ctx context.Context, token string, id int64) error {
	resp, err := c.req(ctx, token).Delete("/dentistas/" + strconv.FormatInt(id, 10))
	return c.check("delete dentista", resp, err)
}
