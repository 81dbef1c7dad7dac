package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

var (
	// ErrMalformedPayload marks a 2xx response whose body could not be used.
	ErrMalformedPayload = errors.New("malformed upstream payload")
	// ErrUnavailable is returned while the circuit breaker is open.
	ErrUnavailable = errors.New("upstream temporarily unavailable")
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.Code)
}

// callerCanceled marks a request abandoned because the caller's context ended.
type callerCanceled struct {
	err error
}

func (e *callerCanceled) Error() string { return e.err.Error() }
func (e *callerCanceled) Unwrap() error { return e.err }

// upstreamHealthy reports whether err leaves the breaker's failure count alone.
// Client errors (4xx other than 429) and caller cancellations say nothing
// about upstream health.
func upstreamHealthy(err error) bool {
	if err == nil {
		return true
	}
	var canceled *callerCanceled
	if errors.As(err, &canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 400 && statusErr.Code < 500 && statusErr.Code != http.StatusTooManyRequests
	}
	return false
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer is notified after every upstream call.
type Observer func(endpoint string, duration time.Duration, err error)

type BaseClient struct {
	name           string
	client         HTTPClient
	logger         *zap.Logger
	circuitBreaker *gobreaker.CircuitBreaker
	userAgent      string
	observer       Observer
}

type ClientConfig struct {
	Timeout        time.Duration
	Threshold      int
	BreakerTimeout time.Duration
	UserAgent      string
}

type Option func(*BaseClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c HTTPClient) Option {
	return func(b *BaseClient) { b.client = c }
}

func WithObserver(o Observer) Option {
	return func(b *BaseClient) { b.observer = o }
}

func NewBaseClient(name string, config ClientConfig, logger *zap.Logger, opts ...Option) *BaseClient {
	threshold := config.Threshold
	if threshold <= 0 {
		threshold = 3
	}

	breakerSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    0,
		Timeout:     config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		IsSuccessful: upstreamHealthy,
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				zap.String("client", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	}

	c := &BaseClient{
		name:           name,
		client:         &http.Client{Timeout: config.Timeout},
		logger:         logger,
		circuitBreaker: gobreaker.NewCircuitBreaker(breakerSettings),
		userAgent:      config.UserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a single GET to endpoint with params and decodes the JSON
// body into out. There is no retry.
func (c *BaseClient) GetJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	start := time.Now()

	_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
		return nil, c.get(ctx, endpoint, params, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %s: %v", ErrUnavailable, c.name, err)
	}

	duration := time.Since(start)
	if c.observer != nil {
		c.observer(c.name, duration, err)
	}

	if err != nil {
		c.logger.Warn("Upstream request failed",
			zap.String("endpoint", c.name),
			zap.Duration("duration", duration),
			zap.Error(err))
		return err
	}

	c.logger.Debug("Upstream request successful",
		zap.String("endpoint", c.name),
		zap.Duration("duration", duration))
	return nil
}

func (c *BaseClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	u := endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			err = &callerCanceled{err: err}
		}
		return fmt.Errorf("%s request failed: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: c.name, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPayload, c.name, err)
	}
	return nil
}
