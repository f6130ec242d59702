// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 MagicStream Contributors

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("magicstream/transport")

// Responses larger than this are truncated when captured into errors.
const maxErrorBody = 64 << 10

// GET requests retry on transient network failure; writes never do.
const (
	maxGetRetries   = 2
	retryBaseDelay  = 100 * time.Millisecond
	defaultTimeout  = 30 * time.Second
	headerRequestID = "X-Request-Id"
)

// Client is a JSON HTTP client bound to the service base address.
// All outbound calls go through it; the Authenticator decorates its
// transport to attach the session credential.
type Client struct {
	baseURL *url.URL
	logger  *slog.Logger

	mu   sync.Mutex
	http *http.Client
}

// Option configures a Client during construction.
type Option func(*Client)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout bounds each request. Defaults to 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client entirely.
// Intended for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the service at baseURL. The client
// carries a cookie jar so server-set cookies travel with later requests,
// matching the service's cross-origin credential mode.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, oops.Code("TRANSPORT_BASE_URL").
			With("base_url", baseURL).
			Wrapf(err, "invalid base URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, oops.Code("TRANSPORT_BASE_URL").
			With("base_url", baseURL).
			Errorf("base URL must be http or https")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, oops.Code("TRANSPORT_COOKIE_JAR").Wrap(err)
	}

	c := &Client{
		baseURL: u,
		logger:  slog.Default(),
		http: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the configured service base address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET and decodes the JSON response into out (unless nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with a JSON body and decodes the response into out.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ref, err := url.Parse(path)
	if err != nil {
		return oops.Code("TRANSPORT_PATH").With("path", path).Wrap(err)
	}
	target := c.baseURL.ResolveReference(ref).String()
	requestID := ulid.Make().String()

	ctx, span := tracer.Start(ctx, "transport.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
			attribute.String("request_id", requestID),
		))
	defer span.End()

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			span.SetStatus(codes.Error, "encode request")
			return oops.Code("TRANSPORT_ENCODE").With("path", path).Wrap(err)
		}
	}

	attempt := func(ctx context.Context) error {
		return c.once(ctx, method, target, requestID, payload, out)
	}

	if method == http.MethodGet {
		backoff := retry.WithMaxRetries(maxGetRetries, retry.NewFibonacci(retryBaseDelay))
		err = retry.Do(ctx, backoff, attempt)
	} else {
		err = attempt(ctx)
	}

	if err != nil {
		span.SetStatus(codes.Error, "request failed")
		span.RecordError(err)
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// once performs a single request/response cycle. Network failures on GET
// are marked retryable; everything else surfaces immediately.
func (c *Client) once(ctx context.Context, method, target, requestID string, payload []byte, out any) error {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return oops.Code("TRANSPORT_REQUEST").With("url", target).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		netErr := oops.Code("TRANSPORT_NETWORK").
			With("method", method).
			With("url", target).
			With("request_id", requestID).
			Wrap(err)
		if method == http.MethodGet && ctx.Err() == nil {
			return retry.RetryableError(netErr)
		}
		return netErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("request failed",
			"method", method,
			"url", target,
			"status", resp.StatusCode,
			"request_id", requestID,
		)
		return oops.Code("TRANSPORT_STATUS").
			With("method", method).
			With("url", target).
			With("request_id", requestID).
			Wrap(&StatusError{Status: resp.StatusCode, Body: data, RequestID: requestID})
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return oops.Code("TRANSPORT_DECODE").
			With("method", method).
			With("url", target).
			With("request_id", requestID).
			Wrapf(err, "malformed response body")
	}
	return nil
}

// httpClient returns the underlying client under the transport lock so a
// concurrent Attach/Detach never hands out a half-swapped transport.
func (c *Client) httpClient() *http.Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.http
}

// roundTripper returns the current transport, defaulting like net/http.
func (c *Client) roundTripper() http.RoundTripper {
	if c.http.Transport != nil {
		return c.http.Transport
	}
	return http.DefaultTransport
}

func (c *Client) setRoundTripper(rt http.RoundTripper) {
	c.http.Transport = rt
}
