// ABOUTME: Typed convenience wrappers over Invoke
// ABOUTME: Covers the power, audio, avContent and system surface
package songpal

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// GetPowerStatus returns the device power state.
func (d *Device) GetPowerStatus(ctx context.Context) (*Power, error) {
	var power Power
	if err := d.invokeInto(ctx, "system", "getPowerStatus", nil, &power); err != nil {
		return nil, err
	}
	return &power, nil
}

// SetPowerStatus turns the device on or off.
func (d *Device) SetPowerStatus(ctx context.Context, on bool) error {
	status := "off"
	if on {
		status = "active"
	}
	_, err := d.Invoke(ctx, "system", "setPowerStatus", map[string]string{"status": status})
	return err
}

// GetVolumeInformation returns the volume state of every output.
func (d *Device) GetVolumeInformation(ctx context.Context) ([]Volume, error) {
	var volumes []Volume
	if err := d.invokeInto(ctx, "audio", "getVolumeInformation", map[string]any{}, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

// SetVolume sets the absolute volume level on an output. An empty
// output targets the default one.
func (d *Device) SetVolume(ctx context.Context, output string, volume int) error {
	_, err := d.Invoke(ctx, "audio", "setAudioVolume", map[string]string{
		"volume": strconv.Itoa(volume),
		"output": output,
	})
	return err
}

// SetMute mutes or unmutes an output.
func (d *Device) SetMute(ctx context.Context, output string, mute bool) error {
	state := "off"
	if mute {
		state = "on"
	}
	_, err := d.Invoke(ctx, "audio", "setAudioMute", map[string]string{
		"mute":   state,
		"output": output,
	})
	return err
}

// GetInterfaceInformation returns the device model description.
func (d *Device) GetInterfaceInformation(ctx context.Context) (*InterfaceInfo, error) {
	var info InterfaceInfo
	if err := d.invokeInto(ctx, "system", "getInterfaceInformation", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetSystemInformation returns the device identifiers.
func (d *Device) GetSystemInformation(ctx context.Context) (*SystemInfo, error) {
	var info SystemInfo
	if err := d.invokeInto(ctx, "system", "getSystemInformation", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetInputs returns the selectable inputs, with output zone terminals
// filtered out.
func (d *Device) GetInputs(ctx context.Context) ([]Input, error) {
	var terminals []Input
	if err := d.invokeInto(ctx, "avContent", "getCurrentExternalTerminalsStatus", nil, &terminals); err != nil {
		return nil, err
	}
	inputs := make([]Input, 0, len(terminals))
	for _, t := range terminals {
		if t.IsInput() {
			inputs = append(inputs, t)
		}
	}
	return inputs, nil
}

// SetInput switches playback to the input URI. An empty output targets
// the default zone.
func (d *Device) SetInput(ctx context.Context, uri, output string) error {
	_, err := d.Invoke(ctx, "avContent", "setPlayContent", map[string]string{
		"uri":    uri,
		"output": output,
	})
	return err
}

// GetPlayInfo returns the current playback state.
func (d *Device) GetPlayInfo(ctx context.Context) (*PlayInfo, error) {
	result, err := d.Invoke(ctx, "avContent", "getPlayingContentInfo", map[string]any{})
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("getPlayingContentInfo returned an empty result")
	}

	// Some devices return the info object directly, others wrap it in
	// a one-element array.
	var infos []PlayInfo
	if err := json.Unmarshal(result[0], &infos); err == nil && len(infos) > 0 {
		return &infos[0], nil
	}
	var info PlayInfo
	if err := json.Unmarshal(result[0], &info); err != nil {
		return nil, fmt.Errorf("failed to parse playing content info: %w", err)
	}
	return &info, nil
}

// GetSoundSettings returns sound settings. An empty target returns all
// of them; a concrete target (e.g. "soundField") narrows to one.
func (d *Device) GetSoundSettings(ctx context.Context, target string) ([]Setting, error) {
	var settings []Setting
	args := map[string]string{"target": target}
	if err := d.invokeInto(ctx, "audio", "getSoundSettings", args, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetSoundSetting changes one sound setting to the given value.
func (d *Device) SetSoundSetting(ctx context.Context, target, value string) error {
	_, err := d.Invoke(ctx, "audio", "setSoundSettings", map[string]any{
		"settings": []map[string]string{{"target": target, "value": value}},
	})
	return err
}

// GetSpeakerSettings returns the speaker configuration settings.
func (d *Device) GetSpeakerSettings(ctx context.Context) ([]Setting, error) {
	var settings []Setting
	if err := d.invokeInto(ctx, "audio", "getSpeakerSettings", map[string]any{}, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SetSpeakerSetting changes one speaker setting to the given value.
func (d *Device) SetSpeakerSetting(ctx context.Context, target, value string) error {
	_, err := d.Invoke(ctx, "audio", "setSpeakerSettings", map[string]any{
		"settings": []map[string]string{{"target": target, "value": value}},
	})
	return err
}

// GetSettingsTree returns the device settings tree: every adjustable
// setting with the API mapping to read and write it.
func (d *Device) GetSettingsTree(ctx context.Context) ([]SettingsEntry, error) {
	var tree struct {
		Settings []SettingsEntry `json:"settings"`
	}
	args := map[string]string{"usage": ""}
	if err := d.invokeInto(ctx, "system", "getSettingsTree", args, &tree); err != nil {
		return nil, err
	}
	return tree.Settings, nil
}

// GetStorageList returns the attached storage devices.
func (d *Device) GetStorageList(ctx context.Context) ([]Storage, error) {
	var storages []Storage
	if err := d.invokeInto(ctx, "system", "getStorageList", map[string]any{}, &storages); err != nil {
		return nil, err
	}
	return storages, nil
}

// GetSoftwareUpdateInfo checks for pending firmware updates, against
// the network when fromNetwork is set.
func (d *Device) GetSoftwareUpdateInfo(ctx context.Context, fromNetwork bool) (*SoftwareUpdateInfo, error) {
	network := "false"
	if fromNetwork {
		network = "true"
	}
	var info SoftwareUpdateInfo
	args := map[string]string{"network": network}
	if err := d.invokeInto(ctx, "system", "getSWUpdateInfo", args, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RawCommand invokes any (service, method) pair with caller-supplied
// arguments, returning the raw result elements. Useful for methods the
// typed surface does not cover.
func (d *Device) RawCommand(ctx context.Context, service, method string, args any) ([]json.RawMessage, error) {
	return d.Invoke(ctx, service, method, args)
}
