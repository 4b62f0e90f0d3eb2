// ABOUTME: Device-reported error codes and their client-side classification
// ABOUTME: Maps the numeric wire codes to retryable/non-retryable error types
package protocol

import "fmt"

// Error codes reported by devices.
// https://developer.sony.com/develop/audio-control-api/api-references/error-codes
const (
	ErrorCodeGeneric              = 1
	ErrorCodeTimeout              = 2
	ErrorCodeIllegalArgument      = 3
	ErrorCodeIllegalRequest       = 5
	ErrorCodeIllegalState         = 7
	ErrorCodeNoSuchMethod         = 12
	ErrorCodeUnsupportedVersion   = 14
	ErrorCodeUnsupportedOperation = 15
)

var errorCodeNames = map[int]string{
	ErrorCodeGeneric:              "Generic",
	ErrorCodeTimeout:              "Timeout",
	ErrorCodeIllegalArgument:      "IllegalArgument",
	ErrorCodeIllegalRequest:       "IllegalRequest",
	ErrorCodeIllegalState:         "IllegalState",
	ErrorCodeNoSuchMethod:         "NoSuchMethod",
	ErrorCodeUnsupportedVersion:   "UnsupportedVersion",
	ErrorCodeUnsupportedOperation: "UnsupportedOperation",
}

// DeviceError is an error tuple reported by a device.
type DeviceError struct {
	Code    int
	Message string
}

func (e *DeviceError) Error() string {
	if name, ok := errorCodeNames[e.Code]; ok {
		return fmt.Sprintf("%s (%d): %s", name, e.Code, e.Message)
	}
	return fmt.Sprintf("device error %d: %s", e.Code, e.Message)
}

// InvalidRequestError marks a device error the caller must fix before
// retrying: bad arguments, unknown method, unsupported version.
type InvalidRequestError struct {
	*DeviceError
}

func (e *InvalidRequestError) Unwrap() error { return e.DeviceError }

// RetryableDeviceError marks a transient device error; the call may
// succeed when repeated. Retrying is the caller's decision.
type RetryableDeviceError struct {
	*DeviceError
}

func (e *RetryableDeviceError) Unwrap() error { return e.DeviceError }

// ClassifyDeviceError wraps a device error tuple into the error type
// matching its code. Unrecognized codes come back as the bare
// *DeviceError carrying the original code and message.
func ClassifyDeviceError(devErr *DeviceError) error {
	switch devErr.Code {
	case ErrorCodeIllegalArgument, ErrorCodeIllegalRequest,
		ErrorCodeNoSuchMethod, ErrorCodeUnsupportedVersion,
		ErrorCodeUnsupportedOperation:
		return &InvalidRequestError{devErr}
	case ErrorCodeTimeout, ErrorCodeIllegalState:
		return &RetryableDeviceError{devErr}
	default:
		return devErr
	}
}

// MalformedMessageError reports a wire body that could not be parsed
// or has no recognizable shape.
type MalformedMessageError struct {
	Data []byte
	Err  error
}

func (e *MalformedMessageError) Error() string {
	return fmt.Sprintf("malformed message: %v", e.Err)
}

func (e *MalformedMessageError) Unwrap() error { return e.Err }
