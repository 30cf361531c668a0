// Package gateway is the portal's only door to the clinic REST API. Every
// method issues exactly one HTTP call and returns either decoded data or a
// *Fault; there is no retry, caching, or batching at this layer.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Client wraps the clinic backend API.
type Client struct {
	http   *resty.Client
	logger zerolog.Logger
}

// New builds a client for the backend at baseURL. Retries are deliberately
// not configured: mutating endpoints carry no idempotency key, so callers
// must decide whether to resubmit.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: http, logger: logger}
}

// Fault is the single error shape the gateway produces. Status 0 means the
// request never completed (network fault); otherwise it carries the non-2xx
// status and, when present, the backend's human-readable message.
type Fault struct {
	Status        int
	ServerMessage string
	Err           error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("backend unreachable: %v", f.Err)
	}
	if f.ServerMessage != "" {
		return fmt.Sprintf("backend returned %d: %s", f.Status, f.ServerMessage)
	}
	return fmt.Sprintf("backend returned %d", f.Status)
}

func (f *Fault) Unwrap() error { return f.Err }

// UserMessage prefers the backend's human-readable message when err carries
// one, and falls back to the page-provided text otherwise.
func UserMessage(err error, fallback string) string {
	var f *Fault
	if errors.As(err, &f) && f.ServerMessage != "" {
		return f.ServerMessage
	}
	return fallback
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var f *Fault
	return errors.As(err, &f) && f.Status == 404
}

// req builds a request bound to ctx. The bearer header is attached
// uniformly whenever a token exists, list endpoints included.
func (c *Client) req(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetHeader("Authorization", "Bearer "+token)
	}
	return r
}

// check converts a resty outcome into nil or a *Fault.
func (c *Client) check(op string, resp *resty.Response, err error) error {
	if err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("backend call failed")
		return &Fault{Err: err}
	}
	if resp.IsError() {
		f := &Fault{Status: resp.StatusCode()}
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if jsonErr := json.Unmarshal(resp.Body(), &body); jsonErr == nil {
			f.ServerMessage = body.Message
			if f.ServerMessage == "" {
				f.ServerMessage = body.Error
			}
		}
		c.logger.Warn().
			Str("op", op).
			Int("status", f.Status).
			Str("server_message", f.ServerMessage).
			Msg("backend rejected call")
		return f
	}
	return nil
}
