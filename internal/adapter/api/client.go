// Package api is the HTTP client for the loofah backend. Every response is a
// {success, data|message} envelope; failures of any kind come back as a
// *domain.RequestError.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"

	"github.com/mmcdole/loofah/internal/domain"
)

const (
	// BasePath is prefixed to every request path
	BasePath = "/api"

	// DefaultTimeout bounds every request, including reading the body
	DefaultTimeout = 30 * time.Second
)

// envelope is the wire shape of every backend response
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// Client implements domain.Requester on top of imroc/req
type Client struct {
	client *req.Client
	logger *slog.Logger
}

// Option configures a Client
type Option func(*options)

type options struct {
	timeout   time.Duration
	userAgent string
}

// WithTimeout overrides DefaultTimeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// NewClient creates a client for the backend at serverURL (scheme and host,
// optionally with a path prefix; BasePath is appended).
func NewClient(serverURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	u, err := url.Parse(strings.TrimSpace(serverURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", serverURL)
	}

	o := options{timeout: DefaultTimeout, userAgent: "loofah"}
	for _, opt := range opts {
		opt(&o)
	}

	base := strings.TrimRight(u.String(), "/") + BasePath

	c := req.C().
		SetBaseURL(base).
		SetTimeout(o.timeout).
		SetUserAgent(o.userAgent).
		SetCommonHeader("Accept", "application/json").
		SetJsonMarshal(json.Marshal).
		SetJsonUnmarshal(json.Unmarshal)

	return &Client{client: c, logger: logger}, nil
}

// Send performs one request and decodes the envelope's data into out.
// out may be nil when the caller only needs the success flag.
func (c *Client) Send(ctx context.Context, method, path string, params url.Values, out any) error {
	op := method + " " + path

	r := c.client.R().SetContext(ctx)
	if len(params) > 0 {
		r.SetQueryString(params.Encode())
	}

	c.logger.Debug("api request", "op", op, "params", params.Encode())

	resp, err := r.Send(method, path)
	if err != nil {
		return c.fail(&domain.RequestError{Op: op, Kind: domain.KindTransport, Err: err})
	}

	body, err := resp.ToBytes()
	if err != nil {
		return c.fail(&domain.RequestError{Op: op, Kind: domain.KindTransport, Err: err})
	}

	status := resp.GetStatusCode()
	env, decodeErr := decodeEnvelope(body)

	if status < 200 || status > 299 {
		reqErr := &domain.RequestError{
			Op:     op,
			Kind:   domain.KindServer,
			Status: status,
			Err:    fmt.Errorf("unexpected status code: %d", status),
		}
		if decodeErr == nil {
			reqErr.Message = env.Message
		}
		return c.fail(reqErr)
	}

	if decodeErr != nil {
		return c.fail(&domain.RequestError{Op: op, Kind: domain.KindProtocol, Status: status, Err: decodeErr})
	}

	if env.Success == nil {
		return c.fail(&domain.RequestError{
			Op: op, Kind: domain.KindProtocol, Status: status,
			Err: errors.New("response envelope has no success field"),
		})
	}

	if !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "request was not successful"
		}
		return c.fail(&domain.RequestError{
			Op: op, Kind: domain.KindServer, Status: status, Message: env.Message,
			Err: errors.New(msg),
		})
	}

	if out == nil {
		return nil
	}

	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return c.fail(&domain.RequestError{
			Op: op, Kind: domain.KindProtocol, Status: status,
			Err: errors.New("response envelope has no data"),
		})
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return c.fail(&domain.RequestError{
			Op: op, Kind: domain.KindProtocol, Status: status,
			Err: fmt.Errorf("failed to parse response data: %w", err),
		})
	}

	return nil
}

func decodeEnvelope(body []byte) (envelope, error) {
	var env envelope
	if len(bytes.TrimSpace(body)) == 0 {
		return env, errors.New("empty response body")
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, fmt.Errorf("failed to parse response: %w", err)
	}
	return env, nil
}

// fail logs the failure once and returns it
func (c *Client) fail(e *domain.RequestError) error {
	if errors.Is(e.Err, context.Canceled) {
		c.logger.Debug("api request canceled", "op", e.Op)
		return e
	}
	c.logger.Warn("api request failed",
		"op", e.Op,
		"kind", e.Kind.String(),
		"status", e.Status,
		"message", e.Message,
		"error", e.Err,
	)
	return e
}
