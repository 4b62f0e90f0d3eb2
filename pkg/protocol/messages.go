// ABOUTME: SongPal protocol envelope types and codec
// ABOUTME: Encodes requests and classifies incoming bodies by shape
package protocol

import (
	"encoding/json"
	"fmt"
)

// Request is a single outgoing call envelope.
//
// Params is always serialized as a JSON array; a nil slice encodes as
// the empty array the devices expect.
type Request struct {
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	Version string `json:"version"`
	ID      int64  `json:"id"`
}

// Encode serializes the request for the wire.
func (r *Request) Encode() ([]byte, error) {
	if r.Params == nil {
		r.Params = []any{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request %q: %w", r.Method, err)
	}
	return data, nil
}

// Response is a device reply correlated to a Request by ID. Exactly one
// of Result and Error is set.
type Response struct {
	ID     int64
	Result []json.RawMessage
	Error  *DeviceError
}

// Notification is an unsolicited device-to-client push. The wire body
// carries only the notification method name and payload; Service is
// stamped by the transport the message arrived on.
type Notification struct {
	Service string
	Name    string
	Payload json.RawMessage
}

// Envelope is a decoded incoming message. Exactly one field is set.
type Envelope struct {
	Response     *Response
	Notification *Notification
}

// wireMessage covers every incoming body shape. The devices are known
// to mislabel content types, so classification is done purely from the
// parsed fields: an id marks a response, a method name without an id
// marks a notification.
type wireMessage struct {
	ID     *int64            `json:"id"`
	Result []json.RawMessage `json:"result"`
	Error  []json.RawMessage `json:"error"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`

	// getMethodTypes replies carry their rows under "results".
	Results []json.RawMessage `json:"results"`
}

// Decode parses an incoming wire body into an Envelope. It returns a
// *MalformedMessageError when the body is not parseable or has no
// recognizable shape.
func Decode(data []byte) (*Envelope, error) {
	var msg wireMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, &MalformedMessageError{Data: data, Err: err}
	}

	if msg.ID != nil {
		result := msg.Result
		if result == nil {
			result = msg.Results
		}
		resp := &Response{ID: *msg.ID, Result: result}
		if len(msg.Error) > 0 {
			devErr, err := decodeError(msg.Error)
			if err != nil {
				return nil, &MalformedMessageError{Data: data, Err: err}
			}
			resp.Error = devErr
		}
		return &Envelope{Response: resp}, nil
	}

	if msg.Method != "" {
		n := &Notification{Name: msg.Method}
		if len(msg.Params) > 0 {
			n.Payload = msg.Params[0]
		}
		return &Envelope{Notification: n}, nil
	}

	return nil, &MalformedMessageError{
		Data: data,
		Err:  fmt.Errorf("no request id and no method name"),
	}
}

// decodeError parses the wire error tuple [code, message].
func decodeError(parts []json.RawMessage) (*DeviceError, error) {
	devErr := &DeviceError{}
	if err := json.Unmarshal(parts[0], &devErr.Code); err != nil {
		return nil, fmt.Errorf("error tuple has non-numeric code: %w", err)
	}
	if len(parts) > 1 {
		if err := json.Unmarshal(parts[1], &devErr.Message); err != nil {
			return nil, fmt.Errorf("error tuple has non-string message: %w", err)
		}
	}
	return devErr, nil
}
