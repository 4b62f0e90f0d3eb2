// ABOUTME: Tests for the notification hub
// ABOUTME: Verifies matching, ordering, fallback routing and listener isolation
package notification

import (
	"encoding/json"
	"testing"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

func volumeNotification() *protocol.Notification {
	return &protocol.Notification{
		Service: "audio",
		Name:    "notifyVolumeInformation",
		Payload: json.RawMessage(`{"volume": 20, "mute": "off", "output": ""}`),
	}
}

func TestDispatchExactMatch(t *testing.T) {
	h := NewHub()

	var got []string
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		got = append(got, "a")
	})
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		got = append(got, "b")
	})
	h.Subscribe("audio", "notifyPowerStatus", func(n *protocol.Notification) {
		t.Error("wrong listener invoked")
	})
	h.Subscribe("system", "notifyVolumeInformation", func(n *protocol.Notification) {
		t.Error("wrong service listener invoked")
	})

	h.Dispatch(volumeNotification())

	// All listeners for the pair run, in subscription order.
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("unexpected dispatch order: %v", got)
	}
}

func TestDispatchWildcard(t *testing.T) {
	h := NewHub()

	wildcardHits := 0
	h.Subscribe("audio", Wildcard, func(n *protocol.Notification) {
		wildcardHits++
	})

	h.Dispatch(volumeNotification())
	if wildcardHits != 1 {
		t.Errorf("expected wildcard hit, got %d", wildcardHits)
	}

	// An exact subscription takes precedence over the wildcard.
	exactHits := 0
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		exactHits++
	})

	h.Dispatch(volumeNotification())
	if exactHits != 1 {
		t.Errorf("expected exact hit, got %d", exactHits)
	}
	if wildcardHits != 1 {
		t.Errorf("wildcard should not fire when an exact match exists, got %d", wildcardHits)
	}
}

func TestDispatchFallback(t *testing.T) {
	h := NewHub()

	var fallbackGot *protocol.Notification
	h.SetFallback(func(n *protocol.Notification) {
		fallbackGot = n
	})
	h.Subscribe("system", "notifyPowerStatus", func(n *protocol.Notification) {
		t.Error("unrelated listener invoked")
	})

	n := volumeNotification()
	h.Dispatch(n)

	if fallbackGot != n {
		t.Error("fallback did not receive the notification")
	}
}

func TestDispatchDefaultFallbackDoesNotPanic(t *testing.T) {
	h := NewHub()
	h.Dispatch(volumeNotification())
}

func TestListenerPanicIsIsolated(t *testing.T) {
	h := NewHub()

	ran := false
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		panic("listener bug")
	})
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		ran = true
	})

	h.Dispatch(volumeNotification())

	if !ran {
		t.Error("listener after the panicking one did not run")
	}
}

func TestUnsubscribe(t *testing.T) {
	h := NewHub()

	hits := 0
	sub := h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {
		hits++
	})

	h.Dispatch(volumeNotification())
	h.Unsubscribe(sub)
	h.Unsubscribe(sub) // repeated cancel is fine
	h.Unsubscribe(nil)
	h.Dispatch(volumeNotification())

	if hits != 1 {
		t.Errorf("expected 1 hit, got %d", hits)
	}
}

func TestClearService(t *testing.T) {
	h := NewHub()

	h.Subscribe("audio", Wildcard, func(n *protocol.Notification) {})
	h.Subscribe("audio", "notifyVolumeInformation", func(n *protocol.Notification) {})
	h.Subscribe("system", "notifyPowerStatus", func(n *protocol.Notification) {})

	h.ClearService("audio")

	if len(h.Subscriptions("audio")) != 0 {
		t.Error("audio subscriptions survived ClearService")
	}
	if len(h.Subscriptions("system")) != 1 {
		t.Error("system subscription did not survive ClearService")
	}

	h.Clear()
	if len(h.Subscriptions("system")) != 0 {
		t.Error("subscriptions survived Clear")
	}
}
