// ABOUTME: Per-session notification hub with subscription table and dispatch
// ABOUTME: Routes pushes to listeners, wildcard matches, or a fallback handler
// Package notification delivers unsolicited device pushes to
// registered listeners.
//
// A Hub belongs to one device session. Subscriptions target an exact
// (service, name) pair or a whole service via the "*" wildcard.
// Notifications nobody listens for go to a fallback handler instead of
// failing; by default they are logged and discarded.
package notification

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

// Wildcard subscribes a listener to every notification of a service.
const Wildcard = "*"

// Listener receives dispatched notifications.
type Listener func(n *protocol.Notification)

// Subscription is a registered listener. Cancel it via Hub.Unsubscribe.
type Subscription struct {
	ID      uuid.UUID
	Service string
	Name    string

	listener Listener
}

// Matches reports whether the subscription covers a notification.
func (s *Subscription) Matches(n *protocol.Notification) bool {
	return s.Service == n.Service && (s.Name == n.Name || s.Name == Wildcard)
}

// Hub is the per-session subscription table. Safe for concurrent use;
// dispatch for one connection happens from its single read loop, so
// notifications are never delivered concurrently with each other.
type Hub struct {
	mu       sync.Mutex
	subs     []*Subscription
	fallback Listener
}

// NewHub creates a hub whose fallback logs and discards.
func NewHub() *Hub {
	return &Hub{
		fallback: func(n *protocol.Notification) {
			log.Printf("songpal: unhandled notification %s.%s: %s", n.Service, n.Name, n.Payload)
		},
	}
}

// Subscribe registers a listener for (service, name). Use Wildcard as
// the name to receive every notification of the service. Multiple
// subscriptions may target the same pair; dispatch runs them in
// subscription order.
func (h *Hub) Subscribe(service, name string, listener Listener) *Subscription {
	sub := &Subscription{
		ID:       uuid.New(),
		Service:  service,
		Name:     name,
		listener: listener,
	}

	h.mu.Lock()
	h.subs = append(h.subs, sub)
	h.mu.Unlock()

	return sub
}

// Unsubscribe removes a subscription. Unknown subscriptions are
// ignored.
func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, s := range h.subs {
		if s.ID == sub.ID {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}

// SetFallback replaces the handler for notifications with no matching
// subscription. A nil listener restores discard-with-trace.
func (h *Hub) SetFallback(listener Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if listener == nil {
		listener = func(n *protocol.Notification) {
			log.Printf("songpal: unhandled notification %s.%s: %s", n.Service, n.Name, n.Payload)
		}
	}
	h.fallback = listener
}

// Dispatch delivers a notification: exact matches first, otherwise
// wildcard subscriptions on the service, otherwise the fallback. A
// panicking listener is isolated so the remaining listeners and the
// connection's read loop keep running.
func (h *Hub) Dispatch(n *protocol.Notification) {
	h.mu.Lock()
	var exact, wild []*Subscription
	for _, sub := range h.subs {
		if sub.Service != n.Service {
			continue
		}
		switch sub.Name {
		case n.Name:
			exact = append(exact, sub)
		case Wildcard:
			wild = append(wild, sub)
		}
	}
	fallback := h.fallback
	h.mu.Unlock()

	targets := exact
	if len(targets) == 0 {
		targets = wild
	}
	if len(targets) == 0 {
		safeInvoke(fallback, n)
		return
	}

	for _, sub := range targets {
		safeInvoke(sub.listener, n)
	}
}

// ClearService drops every subscription for one service. Called when
// that service's duplex connection goes away.
func (h *Hub) ClearService(service string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.subs[:0]
	for _, sub := range h.subs {
		if sub.Service != service {
			kept = append(kept, sub)
		}
	}
	h.subs = kept
}

// Clear drops every subscription.
func (h *Hub) Clear() {
	h.mu.Lock()
	h.subs = nil
	h.mu.Unlock()
}

// Subscriptions returns the live subscriptions for a service, in
// subscription order.
func (h *Hub) Subscriptions(service string) []*Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []*Subscription
	for _, sub := range h.subs {
		if sub.Service == service {
			out = append(out, sub)
		}
	}
	return out
}

func safeInvoke(listener Listener, n *protocol.Notification) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("songpal: notification listener panicked on %s.%s: %v", n.Service, n.Name, r)
		}
	}()
	listener(n)
}
