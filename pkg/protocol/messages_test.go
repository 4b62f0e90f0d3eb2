// ABOUTME: Tests for the SongPal envelope codec
// ABOUTME: Verifies shape classification, id round-trips and error decoding
package protocol

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncodeRequest(t *testing.T) {
	req := &Request{
		Method:  "getPowerStatus",
		Version: "1.0",
		ID:      1,
	}

	data, err := req.Encode()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded["method"] != "getPowerStatus" {
		t.Errorf("expected method getPowerStatus, got %v", decoded["method"])
	}

	// Devices reject a null params field, so nil must encode as [].
	params, ok := decoded["params"].([]any)
	if !ok {
		t.Fatalf("expected params array, got %T", decoded["params"])
	}
	if len(params) != 0 {
		t.Errorf("expected empty params, got %v", params)
	}
}

func TestDecodeResultResponse(t *testing.T) {
	req := &Request{Method: "getPowerStatus", Version: "1.0", ID: 42}
	if _, err := req.Encode(); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}

	body := []byte(`{"result": [{"status": "active"}], "id": 42}`)
	env, err := Decode(body)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if env.Response == nil {
		t.Fatal("expected a response envelope")
	}
	if env.Response.ID != req.ID {
		t.Errorf("expected id %d, got %d", req.ID, env.Response.ID)
	}
	if len(env.Response.Result) != 1 {
		t.Fatalf("expected one result element, got %d", len(env.Response.Result))
	}
	if env.Response.Error != nil {
		t.Errorf("expected no error, got %v", env.Response.Error)
	}
}

func TestDecodeErrorResponse(t *testing.T) {
	body := []byte(`{"error": [12, "No Such Method"], "id": 3}`)
	env, err := Decode(body)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if env.Response == nil {
		t.Fatal("expected a response envelope")
	}
	if env.Response.Error == nil {
		t.Fatal("expected a device error")
	}
	if env.Response.Error.Code != ErrorCodeNoSuchMethod {
		t.Errorf("expected code 12, got %d", env.Response.Error.Code)
	}
	if env.Response.Error.Message != "No Such Method" {
		t.Errorf("unexpected message: %s", env.Response.Error.Message)
	}
}

func TestDecodeNotification(t *testing.T) {
	body := []byte(`{"method": "notifyVolumeInformation", "params": [{"volume": 20, "mute": "off", "output": ""}], "version": "1.0"}`)
	env, err := Decode(body)
	if err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	if env.Notification == nil {
		t.Fatal("expected a notification envelope")
	}
	if env.Notification.Name != "notifyVolumeInformation" {
		t.Errorf("unexpected name: %s", env.Notification.Name)
	}
	if len(env.Notification.Payload) == 0 {
		t.Error("expected a payload")
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"no shape", `{"something": "else"}`},
		{"bad error tuple", `{"id": 1, "error": ["x", "y"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			var malformed *MalformedMessageError
			if !errors.As(err, &malformed) {
				t.Errorf("expected MalformedMessageError, got %T", err)
			}
		})
	}
}

func TestClassifyDeviceError(t *testing.T) {
	cases := []struct {
		code      int
		retryable bool
		invalid   bool
	}{
		{ErrorCodeIllegalArgument, false, true},
		{ErrorCodeIllegalRequest, false, true},
		{ErrorCodeNoSuchMethod, false, true},
		{ErrorCodeUnsupportedVersion, false, true},
		{ErrorCodeUnsupportedOperation, false, true},
		{ErrorCodeTimeout, true, false},
		{ErrorCodeIllegalState, true, false},
		{ErrorCodeGeneric, false, false},
		{40000, false, false},
	}

	for _, tc := range cases {
		err := ClassifyDeviceError(&DeviceError{Code: tc.code, Message: "m"})

		var invalid *InvalidRequestError
		if errors.As(err, &invalid) != tc.invalid {
			t.Errorf("code %d: invalid classification mismatch", tc.code)
		}

		var retryable *RetryableDeviceError
		if errors.As(err, &retryable) != tc.retryable {
			t.Errorf("code %d: retryable classification mismatch", tc.code)
		}

		// The original code must stay reachable for diagnostics.
		var devErr *DeviceError
		if !errors.As(err, &devErr) {
			t.Fatalf("code %d: DeviceError not reachable", tc.code)
		}
		if devErr.Code != tc.code {
			t.Errorf("expected code %d, got %d", tc.code, devErr.Code)
		}
	}
}
