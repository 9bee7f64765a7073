package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"bookcat/internal/domain"
)

// Encoder produces a URL query string. url.Values satisfies it, as does the
// ordered query built by the page state controller.
type Encoder interface {
	Encode() string
}

// RawQuery is a pre-encoded query string
type RawQuery string

// Encode returns the query unchanged
func (q RawQuery) Encode() string { return string(q) }

// Options configures a Client
type Options struct {
	BaseURL string
	Routes  Routes
	// Timeout bounds every request. Zero means no client-side timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// Client talks to the catalog backend. All responses share the
// {data, message, meta} envelope.
type Client struct {
	baseURL string
	routes  Routes
	http    *http.Client
	logger  zerolog.Logger
}

// envelope is the body shape shared by every endpoint
type envelope struct {
	Data    json.RawMessage  `json:"data"`
	Message string           `json:"message"`
	Meta    *domain.PageMeta `json:"meta"`
}

// New creates a client for the backend at opts.BaseURL
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	routes := opts.Routes
	if routes.GetBook == nil {
		routes = RESTRoutes()
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		routes:  routes,
		http:    hc,
		logger:  opts.Logger.With().Str("component", "api").Logger(),
	}
}

// BaseURL returns the backend address the client was built for
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes the envelope of a 2xx response
func (c *Client) do(ctx context.Context, route Route, query Encoder, body any) (*envelope, error) {
	target := c.baseURL + route.Path
	if query != nil {
		if q := query.Encode(); q != "" {
			target += "?" + q
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", route.Method).Str("url", target).Msg("request failed")
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, route.Method, route.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrNetwork, err)
	}

	c.logger.Debug().
		Str("method", route.Method).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serverError(resp.StatusCode, data)
	}

	env := &envelope{}
	if len(bytes.TrimSpace(data)) == 0 {
		return env, nil
	}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, route.Method, route.Path, err)
	}
	return env, nil
}

// serverError extracts the backend message from an error body
func serverError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
	}
	msg := DefaultErrorMessage
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		msg = payload.Message
	}
	return &ServerError{Status: status, Message: msg}
}

// isEmpty reports whether a data field was absent or null
func isEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeRequired decodes env.Data into out and fails when it is missing
func decodeRequired(env *envelope, out any) error {
	if isEmpty(env.Data) {
		return fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// decodeOptional decodes env.Data into out when present
func decodeOptional(env *envelope, out any) error {
	if isEmpty(env.Data) {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

// decodePage decodes a list response. A missing data field is an empty page.
func decodePage[T any](env *envelope) (domain.Page[T], error) {
	page := domain.Page[T]{Items: []T{}, Meta: env.Meta}
	if err := decodeOptional(env, &page.Items); err != nil {
		return domain.Page[T]{}, err
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page, nil
}
