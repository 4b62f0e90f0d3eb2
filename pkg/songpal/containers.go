// ABOUTME: Typed result containers for common device methods
// ABOUTME: JSON shapes mirror what real devices return on the wire
package songpal

import "strings"

// Power is the device power state from getPowerStatus.
type Power struct {
	Status        string `json:"status"`
	StandbyDetail string `json:"standbyDetail,omitempty"`
}

// On reports whether the device is fully awake.
func (p Power) On() bool { return p.Status == "active" }

// Volume is one output's volume state from getVolumeInformation.
type Volume struct {
	Output    string `json:"output"`
	Volume    int    `json:"volume"`
	MinVolume int    `json:"minVolume"`
	MaxVolume int    `json:"maxVolume"`
	Step      int    `json:"step"`
	Mute      string `json:"mute"`
}

// Muted reports whether the output is muted.
func (v Volume) Muted() bool { return v.Mute == "on" }

// InterfaceInfo describes the device model, from getInterfaceInformation.
type InterfaceInfo struct {
	ProductName      string `json:"productName"`
	ModelName        string `json:"modelName"`
	ProductCategory  string `json:"productCategory"`
	InterfaceVersion string `json:"interfaceVersion"`
	ServerName       string `json:"serverName"`
}

// SystemInfo carries device identifiers, from getSystemInformation.
type SystemInfo struct {
	BDAddr          string `json:"bdAddr"`
	MACAddr         string `json:"macAddr"`
	Version         string `json:"version"`
	WirelessMACAddr string `json:"wirelessMacAddr"`
	BSSID           string `json:"bssid"`
	SSID            string `json:"ssid"`
	BLEID           string `json:"bleID"`
}

// Input is one selectable source or zone, from getCurrentExternalTerminalsStatus.
type Input struct {
	Title      string   `json:"title"`
	URI        string   `json:"uri"`
	Meta       string   `json:"meta"`
	Connection string   `json:"connection"`
	Active     string   `json:"active"`
	Label      string   `json:"label"`
	IconURL    string   `json:"iconUrl"`
	Outputs    []string `json:"outputs"`
}

// IsInput distinguishes selectable inputs from output zones: zone
// terminals carry a meta:zone:output meta tag.
func (i Input) IsInput() bool {
	return !strings.Contains(i.Meta, "meta:zone:output")
}

// IsActive reports whether the terminal is the active one.
func (i Input) IsActive() bool { return i.Active == "active" }

// SettingCandidate is one allowed value for a Setting.
type SettingCandidate struct {
	Title       string `json:"title"`
	Value       string `json:"value"`
	IsAvailable bool   `json:"isAvailable"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	Step        int    `json:"step"`
	TitleTextID string `json:"titleTextID"`
}

// Setting is one adjustable device setting with its current value and
// the candidates it accepts.
type Setting struct {
	Target       string             `json:"target"`
	CurrentValue string             `json:"currentValue"`
	Type         string             `json:"type"`
	Title        string             `json:"title"`
	TitleTextID  string             `json:"titleTextID"`
	IsAvailable  bool               `json:"isAvailable"`
	DeviceUIInfo string             `json:"deviceUIInfo"`
	URI          string             `json:"uri"`
	Candidates   []SettingCandidate `json:"candidate"`
}

// APIMapping binds a settings-tree entry to the service method that
// reads and writes it.
type APIMapping struct {
	Service     string            `json:"service"`
	GetAPI      map[string]string `json:"getApi"`
	SetAPI      map[string]string `json:"setApi"`
	Target      string            `json:"target"`
	TargetSuppl string            `json:"targetSuppl"`
}

// SettingsEntry is one node of the device settings tree. Directory
// nodes carry child entries; leaf nodes carry an API mapping.
type SettingsEntry struct {
	Title        string          `json:"title"`
	TitleTextID  string          `json:"titleTextID"`
	Type         string          `json:"type"`
	Usage        string          `json:"usage"`
	IsAvailable  bool            `json:"isAvailable"`
	DeviceUIInfo string          `json:"deviceUIInfo"`
	APIMapping   *APIMapping     `json:"apiMapping"`
	Settings     []SettingsEntry `json:"settings"`
}

// IsDirectory reports whether the entry holds child entries.
func (e SettingsEntry) IsDirectory() bool { return e.Type == "directory" }

// PlayStateInfo is the nested state field of PlayInfo.
type PlayStateInfo struct {
	State      string `json:"state"`
	Supplement string `json:"supplement"`
}

// PlayInfo is the current playback state, from getPlayingContentInfo.
type PlayInfo struct {
	StateInfo    PlayStateInfo `json:"stateInfo"`
	ContentKind  string        `json:"contentKind"`
	URI          string        `json:"uri"`
	Output       string        `json:"output"`
	Service      string        `json:"service"`
	Artist       string        `json:"artist"`
	AlbumName    string        `json:"albumName"`
	Title        string        `json:"title"`
	DurationMsec int           `json:"durationMsec"`
	PositionMsec int           `json:"positionMsec"`
	MediaType    string        `json:"mediaType"`
	RepeatType   string        `json:"repeatType"`
	Source       string        `json:"source"`
	ParentURI    string        `json:"parentUri"`
}

// Playing reports whether something is actively playing.
func (p PlayInfo) Playing() bool { return p.StateInfo.State == "PLAYING" }

// Storage is one attached storage device, from getStorageList.
type Storage struct {
	DeviceName           string `json:"deviceName"`
	URI                  string `json:"uri"`
	VolumeLabel          string `json:"volumeLabel"`
	FreeCapacityMB       int    `json:"freeCapacityMB"`
	SystemAreaCapacityMB int    `json:"systemAreaCapacityMB"`
	WholeCapacityMB      int    `json:"wholeCapacityMB"`
	Formattable          string `json:"formattable"`
	Formatting           string `json:"formatting"`
	IsAvailable          string `json:"isAvailable"`
	Mounted              string `json:"mounted"`
	Permission           string `json:"permission"`
}

// SoftwareUpdateInfo is the update availability state, from
// getSWUpdateInfo.
type SoftwareUpdateInfo struct {
	IsUpdatable      string `json:"isUpdatable"`
	SWInfo           any    `json:"swInfo"`
	EstimatedTimeSec int    `json:"estimatedTimeSec"`
	Target           string `json:"target"`
	UpdatableVersion string `json:"updatableVersion"`
	ForcedUpdate     string `json:"forcedUpdate"`
}

// Updatable reports whether an update is pending.
func (s SoftwareUpdateInfo) Updatable() bool { return s.IsUpdatable == "true" }
