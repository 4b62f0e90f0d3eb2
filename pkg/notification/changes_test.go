// ABOUTME: Tests for typed notification payload decoding
// ABOUTME: Verifies known kinds and the unknown-variant fallback
package notification

import (
	"encoding/json"
	"testing"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

func TestParseVolumeChange(t *testing.T) {
	change, err := ParseChange(&protocol.Notification{
		Service: "audio",
		Name:    "notifyVolumeInformation",
		Payload: json.RawMessage(`{"volume": 32, "mute": "on", "output": "extOutput:zone?zone=2"}`),
	})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	vc, ok := change.(*VolumeChange)
	if !ok {
		t.Fatalf("expected *VolumeChange, got %T", change)
	}
	if vc.Volume != 32 {
		t.Errorf("expected volume 32, got %d", vc.Volume)
	}
	if !vc.Muted() {
		t.Error("expected muted")
	}
}

func TestParsePowerChange(t *testing.T) {
	change, err := ParseChange(&protocol.Notification{
		Service: "system",
		Name:    "notifyPowerStatus",
		Payload: json.RawMessage(`{"status": "active"}`),
	})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}

	pc, ok := change.(*PowerChange)
	if !ok {
		t.Fatalf("expected *PowerChange, got %T", change)
	}
	if !pc.On() {
		t.Error("expected power on")
	}
}

func TestParseUnknownChange(t *testing.T) {
	change, err := ParseChange(&protocol.Notification{
		Service: "system",
		Name:    "notifySomethingNew",
		Payload: json.RawMessage(`{"future": "field"}`),
	})
	if err != nil {
		t.Fatalf("unknown kinds must not fail: %v", err)
	}

	uc, ok := change.(*UnknownChange)
	if !ok {
		t.Fatalf("expected *UnknownChange, got %T", change)
	}
	if uc.ChangeName() != "notifySomethingNew" {
		t.Errorf("unexpected name: %s", uc.ChangeName())
	}
	if len(uc.Payload) == 0 {
		t.Error("raw payload not preserved")
	}
}

func TestParseBadPayload(t *testing.T) {
	_, err := ParseChange(&protocol.Notification{
		Service: "audio",
		Name:    "notifyVolumeInformation",
		Payload: json.RawMessage(`{"volume": "not a number"}`),
	})
	if err == nil {
		t.Fatal("expected decode error")
	}
}

func TestParseEmptyPayload(t *testing.T) {
	change, err := ParseChange(&protocol.Notification{
		Service: "system",
		Name:    "notifyPowerStatus",
	})
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if _, ok := change.(*PowerChange); !ok {
		t.Fatalf("expected *PowerChange, got %T", change)
	}
}
