package gateway

import "context"

// Login exchanges credentials for a backend-issued identity. Credential
// verification is entirely the backend's job.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	resp, err := c.req(ctx, "").
		SetBody(&LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err := c.check("login", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
