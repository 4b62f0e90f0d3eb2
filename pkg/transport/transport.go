// ABOUTME: Transport contract and failure types shared by HTTP and WebSocket
// ABOUTME: Both transports exchange protocol envelopes with one device service
// Package transport moves protocol envelopes between the client and a
// device service endpoint.
//
// Two implementations exist behind one contract: HTTP issues a POST
// per call, WebSocket keeps a persistent duplex connection that also
// carries unsolicited notifications.
package transport

import (
	"context"
	"fmt"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

// Transport sends one request and returns the matching response.
type Transport interface {
	Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error)
	Close() error
}

// ConnectError reports a failed duplex handshake. Terminal for that
// connect attempt; the transport returns to the closed state.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// TransportError reports an HTTP-level failure: connection trouble or
// a status outside the success range. Retrying is up to the caller.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ConnectionClosedError reports a pending call invalidated by the
// duplex connection going away, either explicitly or because the
// underlying socket failed.
type ConnectionClosedError struct {
	Err error
}

func (e *ConnectionClosedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("connection closed: %v", e.Err)
	}
	return "connection closed"
}

func (e *ConnectionClosedError) Unwrap() error { return e.Err }
