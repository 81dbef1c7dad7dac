package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestBaseClientObserver(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, `{"ok":true}`)

	var seen []string
	var seenErr []error
	c := NewBaseClient("forecast", testConfig, zaptest.NewLogger(t), WithObserver(func(endpoint string, d time.Duration, err error) {
		seen = append(seen, endpoint)
		seenErr = append(seenErr, err)
		assert.GreaterOrEqual(t, d, time.Duration(0))
	}))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, nil, &out))
	assert.True(t, out.OK)
	assert.Equal(t, []string{"forecast"}, seen)
	assert.Equal(t, []error{nil}, seenErr)
}

func TestBaseClientBreakerOpens(t *testing.T) {
	srv := newUpstream(t, http.StatusInternalServerError, `{}`)
	cfg := testConfig
	cfg.Threshold = 2
	c := NewBaseClient("forecast", cfg, zaptest.NewLogger(t))

	var out map[string]interface{}
	for i := 0; i < 2; i++ {
		err := c.GetJSON(context.Background(), srv.URL, nil, &out)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
	}

	err := c.GetJSON(context.Background(), srv.URL, nil, &out)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 2, srv.callCount(), "open breaker must not reach upstream")
}

func TestBaseClientBreakerIgnoresClientErrors(t *testing.T) {
	srv := newUpstream(t, http.StatusNotFound, `{}`)
	cfg := testConfig
	cfg.Threshold = 2
	c := NewBaseClient("forecast", cfg, zaptest.NewLogger(t))

	var out map[string]interface{}
	for i := 0; i < 5; i++ {
		err := c.GetJSON(context.Background(), srv.URL, nil, &out)
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.Code)
	}
	assert.Equal(t, 5, srv.callCount())
}

func TestBaseClientBreakerIgnoresCanceledCallers(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, `{}`)
	cfg := testConfig
	cfg.Threshold = 2
	c := NewBaseClient("forecast", cfg, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out map[string]interface{}
	for i := 0; i < 5; i++ {
		err := c.GetJSON(ctx, srv.URL, nil, &out)
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrUnavailable)
	}

	require.NoError(t, c.GetJSON(context.Background(), srv.URL, nil, &out))
	assert.Equal(t, 1, srv.callCount())
}

func TestUpstreamHealthy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"bad request", &StatusError{Endpoint: "forecast", Code: 400}, true},
		{"not found", &StatusError{Endpoint: "forecast", Code: 404}, true},
		{"rate limited", &StatusError{Endpoint: "forecast", Code: 429}, false},
		{"server error", &StatusError{Endpoint: "forecast", Code: 503}, false},
		{"canceled", fmt.Errorf("forecast request failed: %w", &callerCanceled{err: context.Canceled}), true},
		{"network", errors.New("connection refused"), false},
		{"malformed", ErrMalformedPayload, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, upstreamHealthy(tt.err))
		})
	}
}

func TestBaseClientCustomHTTPClient(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, `{}`)
	hc := &countingClient{inner: http.DefaultClient}
	c := NewBaseClient("forecast", testConfig, zaptest.NewLogger(t), WithHTTPClient(hc))

	var out map[string]interface{}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, nil, &out))
	assert.Equal(t, 1, hc.calls)
	assert.Equal(t, "application/json", hc.lastAccept)
}

type countingClient struct {
	inner      HTTPClient
	calls      int
	lastAccept string
}

func (c *countingClient) Do(req *http.Request) (*http.Response, error) {
	c.calls++
	c.lastAccept = req.Header.Get("Accept")
	return c.inner.Do(req)
}
