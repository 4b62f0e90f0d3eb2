// ABOUTME: Typed payloads for the known notification kinds
// ABOUTME: Unknown kinds decode into an UnknownChange carrying the raw body
package notification

import (
	"encoding/json"
	"fmt"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

// Change is a decoded notification payload. Switch on the concrete
// type to handle known kinds; anything unmodelled arrives as
// *UnknownChange.
type Change interface {
	ChangeName() string
}

// PowerChange reports a power state transition (notifyPowerStatus).
type PowerChange struct {
	Status        string `json:"status"`
	StandbyDetail string `json:"standbyDetail"`
}

func (*PowerChange) ChangeName() string { return "notifyPowerStatus" }

// On reports whether the device is fully powered.
func (c *PowerChange) On() bool { return c.Status == "active" }

// VolumeChange reports a volume or mute transition
// (notifyVolumeInformation).
type VolumeChange struct {
	Volume int    `json:"volume"`
	Mute   string `json:"mute"`
	Output string `json:"output"`
}

func (*VolumeChange) ChangeName() string { return "notifyVolumeInformation" }

// Muted reports whether the output is muted.
func (c *VolumeChange) Muted() bool { return c.Mute == "on" }

// ContentChange reports a playing-content or input transition
// (notifyPlayingContentInfo).
type ContentChange struct {
	ContentKind     string `json:"contentKind"`
	Service         string `json:"service"`
	Source          string `json:"source"`
	Output          string `json:"output"`
	URI             string `json:"uri"`
	ApplicationName string `json:"applicationName"`
	Kind            string `json:"kind"`
	MediaType       string `json:"mediaType"`
	ParentURI       string `json:"parentUri"`
}

func (*ContentChange) ChangeName() string { return "notifyPlayingContentInfo" }

// IsInput reports whether the change concerns the active input.
func (c *ContentChange) IsInput() bool { return c.ContentKind == "input" }

// SettingChange reports a settings update (notifySettingsUpdate).
type SettingChange struct {
	TitleTextID      string            `json:"titleTextID"`
	GuideTextID      string            `json:"guideTextID"`
	Title            string            `json:"title"`
	Type             string            `json:"type"`
	IsAvailable      bool              `json:"isAvailable"`
	APIMappingUpdate *APIMappingUpdate `json:"apiMappingUpdate"`
}

func (*SettingChange) ChangeName() string { return "notifySettingsUpdate" }

// APIMappingUpdate carries the changed target and its new value.
type APIMappingUpdate struct {
	Target       string `json:"target"`
	CurrentValue string `json:"currentValue"`
}

// SoftwareUpdateChange reports update availability (notifySWUpdateInfo).
type SoftwareUpdateChange struct {
	IsUpdatable string          `json:"isUpdatable"`
	SwInfo      json.RawMessage `json:"swInfo"`
}

func (*SoftwareUpdateChange) ChangeName() string { return "notifySWUpdateInfo" }

// Updatable reports whether an update is available.
func (c *SoftwareUpdateChange) Updatable() bool { return c.IsUpdatable == "true" }

// StorageChange reports a storage device transition (notifyStorageStatus).
type StorageChange struct {
	URI        string `json:"uri"`
	DeviceName string `json:"deviceName"`
	Mounted    string `json:"mounted"`
}

func (*StorageChange) ChangeName() string { return "notifyStorageStatus" }

// UnknownChange carries a notification kind this client does not
// model. Never a hard failure: the raw payload stays available.
type UnknownChange struct {
	Name    string
	Service string
	Payload json.RawMessage
}

func (c *UnknownChange) ChangeName() string { return c.Name }

func (c *UnknownChange) String() string {
	return fmt.Sprintf("unknown notification %s.%s: %s", c.Service, c.Name, c.Payload)
}

// ParseChange decodes a notification payload into its typed form.
// Unrecognized names yield *UnknownChange, not an error; a payload
// that fails to decode for a known name is an error the caller may log
// and ignore.
func ParseChange(n *protocol.Notification) (Change, error) {
	var change Change
	switch n.Name {
	case "notifyPowerStatus":
		change = &PowerChange{}
	case "notifyVolumeInformation":
		change = &VolumeChange{}
	case "notifyPlayingContentInfo":
		change = &ContentChange{}
	case "notifySettingsUpdate":
		change = &SettingChange{}
	case "notifySWUpdateInfo":
		change = &SoftwareUpdateChange{}
	case "notifyStorageStatus":
		change = &StorageChange{}
	default:
		return &UnknownChange{Name: n.Name, Service: n.Service, Payload: n.Payload}, nil
	}

	if len(n.Payload) > 0 {
		if err := json.Unmarshal(n.Payload, change); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", n.Name, err)
		}
	}
	return change, nil
}
