// ABOUTME: One-shot HTTP transport for SongPal calls
// ABOUTME: POSTs a single envelope and reads a single response body
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

// DefaultTimeout bounds a single HTTP exchange when the caller's
// context imposes no deadline of its own.
const DefaultTimeout = 10 * time.Second

// HTTP is the one-shot transport: each call is a separate POST. Used
// for services without websocket support, for the self-description
// fetch and when the caller forces HTTP-only operation.
type HTTP struct {
	endpoint string
	client   *http.Client
}

// NewHTTP creates an HTTP transport for one service endpoint. A nil
// client gets a default with DefaultTimeout.
func NewHTTP(endpoint string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTP{endpoint: endpoint, client: client}
}

// Endpoint returns the service URL this transport posts to.
func (t *HTTP) Endpoint() string { return t.endpoint }

// Call POSTs the encoded request and decodes the response body.
// The response content-type is deliberately ignored: devices in the
// wild mislabel it, so only parseability of the body counts.
func (t *HTTP) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	body, err := req.Encode()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Endpoint: t.endpoint, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Endpoint: t.endpoint, Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: t.endpoint, Err: err}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &TransportError{
			Endpoint: t.endpoint,
			Status:   httpResp.StatusCode,
			Err:      fmt.Errorf("unexpected status %s", httpResp.Status),
		}
	}

	env, err := protocol.Decode(data)
	if err != nil {
		return nil, err
	}
	if env.Response == nil {
		return nil, &protocol.MalformedMessageError{
			Data: data,
			Err:  fmt.Errorf("expected a response body for %q", req.Method),
		}
	}
	return env.Response, nil
}

// Close is a no-op; HTTP holds no persistent connection state.
func (t *HTTP) Close() error { return nil }
