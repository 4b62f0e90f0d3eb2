// ABOUTME: Persistent duplex WebSocket transport for SongPal services
// ABOUTME: Correlates concurrent calls by request id and fans out notifications
package transport

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

// State is the duplex connection lifecycle state.
type State int32

const (
	StateClosed State = iota
	StateConnecting
	StateOpen
	StateClosing
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosing:
		return "closing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// DefaultHandshakeTimeout bounds the websocket upgrade.
const DefaultHandshakeTimeout = 5 * time.Second

// WebSocketConfig holds duplex transport configuration.
type WebSocketConfig struct {
	// Endpoint is the ws:// URL of one service endpoint.
	Endpoint string
	// Service is stamped onto notifications arriving on this
	// connection; the wire body does not carry it.
	Service string
	// OnNotification receives unsolicited envelopes. Called from the
	// read loop, strictly in arrival order; the next envelope is not
	// read until it returns.
	OnNotification func(*protocol.Notification)
	// OnClose runs once per connection after teardown, with the error
	// that closed it (nil for an explicit Close).
	OnClose func(error)
	// HandshakeTimeout defaults to DefaultHandshakeTimeout.
	HandshakeTimeout time.Duration
}

// WebSocket is the duplex transport. One read loop owns the socket
// exclusively: responses complete pending calls by request id, other
// envelopes go to the notification path, unknown shapes are logged and
// dropped. Safe for concurrent Call use.
type WebSocket struct {
	config WebSocketConfig

	state atomic.Int32

	mu       sync.Mutex
	conn     *websocket.Conn
	pending  map[int64]chan *protocol.Response
	done     chan struct{}
	closeErr error

	writeMu sync.Mutex
}

// NewWebSocket creates a duplex transport in the closed state.
func NewWebSocket(config WebSocketConfig) *WebSocket {
	if config.HandshakeTimeout == 0 {
		config.HandshakeTimeout = DefaultHandshakeTimeout
	}
	return &WebSocket{
		config:  config,
		pending: make(map[int64]chan *protocol.Response),
	}
}

// State returns the current lifecycle state.
func (t *WebSocket) State() State {
	return State(t.state.Load())
}

// Connect dials the endpoint and starts the read loop. A handshake
// failure is terminal for this attempt and leaves the transport
// closed.
func (t *WebSocket) Connect(ctx context.Context) error {
	if !t.state.CompareAndSwap(int32(StateClosed), int32(StateConnecting)) {
		return fmt.Errorf("connect on %s transport", t.State())
	}

	dialer := websocket.Dialer{HandshakeTimeout: t.config.HandshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, t.config.Endpoint, nil)
	if err != nil {
		t.state.Store(int32(StateClosed))
		return &ConnectError{Endpoint: t.config.Endpoint, Err: err}
	}

	t.mu.Lock()
	t.conn = conn
	t.pending = make(map[int64]chan *protocol.Response)
	t.done = make(chan struct{})
	t.closeErr = nil
	done := t.done
	t.mu.Unlock()

	t.state.Store(int32(StateOpen))
	go t.readLoop(conn, done)

	return nil
}

// Call registers a pending entry for the request id, sends the
// envelope and suspends the caller until the matching response
// arrives, the context is cancelled, or the connection goes away.
func (t *WebSocket) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	t.mu.Lock()
	if t.State() != StateOpen {
		err := t.closeErr
		t.mu.Unlock()
		return nil, &ConnectionClosedError{Err: err}
	}
	ch := make(chan *protocol.Response, 1)
	t.pending[req.ID] = ch
	conn := t.conn
	done := t.done
	t.mu.Unlock()

	data, err := req.Encode()
	if err != nil {
		t.forget(req.ID)
		return nil, err
	}

	t.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	t.writeMu.Unlock()
	if err != nil {
		t.forget(req.ID)
		t.teardown(err)
		return nil, &ConnectionClosedError{Err: err}
	}

	select {
	case resp := <-ch:
		return resp, nil
	case <-ctx.Done():
		t.forget(req.ID)
		return nil, ctx.Err()
	case <-done:
		// The response may have been completed just before teardown.
		select {
		case resp := <-ch:
			return resp, nil
		default:
		}
		t.mu.Lock()
		err := t.closeErr
		t.mu.Unlock()
		return nil, &ConnectionClosedError{Err: err}
	}
}

// Close tears the connection down, failing every pending call with
// ConnectionClosedError. Idempotent.
func (t *WebSocket) Close() error {
	t.teardown(nil)
	return nil
}

// forget drops a pending entry without completing it. Used when the
// caller abandons the call, so the table does not leak.
func (t *WebSocket) forget(id int64) {
	t.mu.Lock()
	delete(t.pending, id)
	t.mu.Unlock()
}

// readLoop owns the socket until it fails or the transport closes. No
// other code reads the connection.
func (t *WebSocket) readLoop(conn *websocket.Conn, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		default:
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			t.teardown(err)
			return
		}

		env, err := protocol.Decode(data)
		if err != nil {
			// Unknown message shapes must never break the read loop.
			log.Printf("songpal: dropping undecodable message on %s: %v", t.config.Service, err)
			continue
		}

		switch {
		case env.Response != nil:
			t.complete(env.Response)
		case env.Notification != nil:
			env.Notification.Service = t.config.Service
			if t.config.OnNotification != nil {
				t.config.OnNotification(env.Notification)
			}
		}
	}
}

// complete hands a response to its pending call. Delivery is
// fire-and-forget: the channel is buffered, so a slow caller never
// blocks the read loop.
func (t *WebSocket) complete(resp *protocol.Response) {
	t.mu.Lock()
	ch, ok := t.pending[resp.ID]
	delete(t.pending, resp.ID)
	t.mu.Unlock()

	if !ok {
		log.Printf("songpal: dropping response with no pending call on %s (id=%d)",
			t.config.Service, resp.ID)
		return
	}
	ch <- resp
}

// teardown moves the connection to closed, waking every pending caller
// and clearing the pending table. Runs at most once per connection.
func (t *WebSocket) teardown(err error) {
	t.mu.Lock()
	if t.State() != StateOpen {
		t.mu.Unlock()
		return
	}
	t.state.Store(int32(StateClosing))
	t.closeErr = err
	conn := t.conn
	t.conn = nil
	t.pending = make(map[int64]chan *protocol.Response)
	close(t.done)
	t.state.Store(int32(StateClosed))
	t.mu.Unlock()

	conn.Close()

	if t.config.OnClose != nil {
		t.config.OnClose(err)
	}
}
