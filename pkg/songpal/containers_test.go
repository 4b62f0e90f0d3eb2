// ABOUTME: Tests for typed result containers
// ABOUTME: Verifies decoding of real device response shapes
package songpal

import (
	"encoding/json"
	"testing"
)

func TestVolumeDecode(t *testing.T) {
	body := `[{"volume": 25, "minVolume": 0, "maxVolume": 50, "step": 1,
		"mute": "on", "output": "extOutput:zone?zone=1"}]`

	var volumes []Volume
	if err := json.Unmarshal([]byte(body), &volumes); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if len(volumes) != 1 {
		t.Fatalf("expected 1 volume, got %d", len(volumes))
	}
	if volumes[0].Volume != 25 || !volumes[0].Muted() {
		t.Errorf("unexpected volume state: %+v", volumes[0])
	}
}

func TestInputZoneFiltering(t *testing.T) {
	body := `[
		{"title": "HDMI1", "uri": "extInput:hdmi?port=1",
		 "meta": "meta:hdmi", "active": ""},
		{"title": "Zone 2", "uri": "extOutput:zone?zone=2",
		 "meta": "meta:zone:output", "active": "active"}
	]`

	var terminals []Input
	if err := json.Unmarshal([]byte(body), &terminals); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if !terminals[0].IsInput() {
		t.Error("hdmi terminal should be an input")
	}
	if terminals[1].IsInput() {
		t.Error("zone output should not be an input")
	}
	if !terminals[1].IsActive() {
		t.Error("active terminal not reported active")
	}
}

func TestSettingsTreeDecode(t *testing.T) {
	body := `{"settings": [
		{"title": "Sound", "type": "directory", "usage": "", "settings": [
			{"title": "Sound Field", "type": "enumTarget", "isAvailable": true,
			 "apiMapping": {"service": "audio",
				"getApi": {"name": "getSoundSettings", "version": "1.1"},
				"setApi": {"name": "setSoundSettings", "version": "1.1"},
				"target": "soundField"}}
		]}
	]}`

	var tree struct {
		Settings []SettingsEntry `json:"settings"`
	}
	if err := json.Unmarshal([]byte(body), &tree); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if len(tree.Settings) != 1 || !tree.Settings[0].IsDirectory() {
		t.Fatalf("unexpected tree root: %+v", tree.Settings)
	}
	leaf := tree.Settings[0].Settings[0]
	if leaf.IsDirectory() {
		t.Error("leaf reported as directory")
	}
	if leaf.APIMapping == nil || leaf.APIMapping.Target != "soundField" {
		t.Errorf("api mapping not decoded: %+v", leaf.APIMapping)
	}
}

func TestPlayInfoState(t *testing.T) {
	body := `{"stateInfo": {"state": "PLAYING"}, "title": "Track",
		"artist": "Artist", "durationMsec": 240000}`

	var info PlayInfo
	if err := json.Unmarshal([]byte(body), &info); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if !info.Playing() {
		t.Error("expected playing state")
	}
}
