// Package gateway is the HTTP client for the storefront's remote gateway:
// authentication, cart sync, orders, product listing and analytics.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/VanshikaGY/ShopEasy/internal/storage"
	"github.com/VanshikaGY/ShopEasy/pkg/circuitbreaker"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout = 10 * time.Second

	// error bodies longer than this are cut in RemoteError
	maxErrorBody = 512
)

// TokenStore holds the opaque bearer token. storage.Store satisfies it.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Client struct {
	baseURL    string
	tokens     TokenStore
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*response]
	// trips on analytics and cart sync only, so their outages never reject
	// auth, order or product calls
	bestEffort *gobreaker.CircuitBreaker[*response]
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(baseURL string, tokens TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker:    circuitbreaker.New[*response]("gateway", 30*time.Second),
		bestEffort: circuitbreaker.New[*response]("gateway-best-effort", 30*time.Second),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type response struct {
	status int
	body   []byte
}

type request struct {
	method  string
	path    string
	body    any
	auth    bool
	headers map[string]string

	bestEffort bool
}

// Token returns the stored bearer token or ErrNoToken.
func (c *Client) Token(ctx context.Context) (string, error) {
	token, err := c.tokens.Get(ctx, storage.TokenKey)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return token, nil
}

// do sends req and decodes a 2xx JSON body into out (ignored when nil).
func (c *Client) do(ctx context.Context, req request, out any) error {
	var token string
	if req.auth {
		t, err := c.Token(ctx)
		if err != nil {
			return err
		}
		token = t
	}

	var payload []byte
	if req.body != nil {
		b, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal %s %s body: %w", req.method, req.path, err)
		}
		payload = b
	}

	requestID := uuid.NewString()
	log := c.logger.With().
		Str("method", req.method).
		Str("path", req.path).
		Str("request_id", requestID).
		Logger()

	breaker := c.breaker
	if req.bestEffort {
		breaker = c.bestEffort
	}

	start := time.Now()
	resp, err := breaker.Execute(func() (*response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("X-Request-ID", requestID)
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}
		if token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
		for k, v := range req.headers {
			httpReq.Header.Set(k, v)
		}

		httpResp, err := c.httpClient.Do(httpReq)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		r := &response{status: httpResp.StatusCode, body: body}
		if r.status >= http.StatusInternalServerError {
			// server faults count against the breaker, client faults do not
			return r, c.remoteError(req, r, nil)
		}
		return r, nil
	})

	if err != nil {
		log.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("gateway request failed")
		var remote *RemoteError
		if errors.As(err, &remote) {
			return remote
		}
		return c.remoteError(req, nil, err)
	}

	log.Debug().Int("status", resp.status).Dur("elapsed", time.Since(start)).Msg("gateway request")

	if resp.status < 200 || resp.status > 299 {
		return c.remoteError(req, resp, nil)
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return c.remoteError(req, resp, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

func (c *Client) remoteError(req request, resp *response, err error) *RemoteError {
	e := &RemoteError{Method: req.method, Path: req.path, Err: err}
	if resp != nil {
		e.StatusCode = resp.status
		body := strings.TrimSpace(string(resp.body))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		e.Body = body
	}
	return e
}
