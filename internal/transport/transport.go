// Package transport performs the synchronous XML exchange with the engine.
// The adapter treats it as an external collaborator: one request, one
// response payload or a TransportError, with no retries and no caching.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

// Transport sends one encoded envelope and returns the raw response body.
type Transport interface {
	Send(ctx context.Context, payload []byte) ([]byte, error)
}

// HTTP posts envelopes to a configured endpoint. It holds no state between
// calls beyond the shared client, so concurrent use needs no coordination.
type HTTP struct {
	endpoint string
	client   *http.Client
	log      *zap.Logger
}

// NewHTTP creates a transport for the given endpoint. A nil logger is
// replaced with a no-op one.
func NewHTTP(endpoint string, timeout time.Duration, log *zap.Logger) *HTTP {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

// Send posts the payload and reads the body. Connection failures, timeouts
// and non-2xx statuses all surface as *tallyerr.TransportError; cancellation
// policy belongs to the caller's context.
func (t *HTTP) Send(ctx context.Context, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &tallyerr.TransportError{Endpoint: t.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Warn("engine request failed", zap.String("endpoint", t.endpoint), zap.Error(err))
		return nil, &tallyerr.TransportError{Endpoint: t.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &tallyerr.TransportError{Endpoint: t.endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		t.log.Warn("engine returned non-success status",
			zap.String("endpoint", t.endpoint),
			zap.Int("status", resp.StatusCode))
		return nil, &tallyerr.TransportError{
			Endpoint: t.endpoint,
			Err:      fmt.Errorf("status %d: %s", resp.StatusCode, snippet(body)),
		}
	}

	t.log.Debug("engine round trip",
		zap.Int("request_bytes", len(payload)),
		zap.Int("response_bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))
	return body, nil
}

func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max])
	}
	return string(body)
}
