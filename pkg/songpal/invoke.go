// ABOUTME: Named method invocation against the capability manifest
// ABOUTME: Shapes arguments per signature and classifies device errors
package songpal

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/harperreed/songpal-go/pkg/protocol"
	"github.com/harperreed/songpal-go/pkg/registry"
)

// ArgumentMismatchError reports arguments that do not fit the method's
// advertised signature, caught before anything hits the wire.
type ArgumentMismatchError struct {
	Service string
	Method  string
	Reason  string
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("arguments do not match %s.%s: %s", e.Service, e.Method, e.Reason)
}

// Invoke calls a method by name at the highest version the device
// advertises for it. The args value becomes the params array: nil for
// no parameters, a []any verbatim, anything else wrapped as the single
// element. Device-reported failures come back classified per the error
// taxonomy in pkg/protocol.
func (d *Device) Invoke(ctx context.Context, service, method string, args any) ([]json.RawMessage, error) {
	return d.InvokeVersion(ctx, service, method, "", args)
}

// InvokeVersion is Invoke pinned to an explicit signature version.
func (d *Device) InvokeVersion(ctx context.Context, service, method, version string, args any) ([]json.RawMessage, error) {
	sig, err := d.registry.Resolve(service, method, version)
	if err != nil {
		return nil, err
	}

	params, err := buildParams(service, sig, args)
	if err != nil {
		return nil, err
	}

	t, err := d.transportFor(ctx, service)
	if err != nil {
		return nil, err
	}

	resp, err := t.Call(ctx, &protocol.Request{
		Method:  sig.Method,
		Params:  params,
		Version: sig.Version,
		ID:      d.nextID(),
	})
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("%s.%s: %w", service, method, protocol.ClassifyDeviceError(resp.Error))
	}
	return resp.Result, nil
}

// buildParams turns the caller's args into the wire params array,
// validated against the advertised signature.
func buildParams(service string, sig registry.Signature, args any) ([]any, error) {
	if args == nil {
		return []any{}, nil
	}

	var params []any
	switch v := args.(type) {
	case []any:
		params = v
	default:
		params = []any{args}
	}

	if len(params) == 0 {
		return params, nil
	}

	if !sig.ExpectsParams() {
		return nil, &ArgumentMismatchError{
			Service: service,
			Method:  sig.Method,
			Reason:  "method takes no parameters",
		}
	}

	// The first input shape tells object from scalar: shapes starting
	// with "{" want an object parameter.
	if strings.HasPrefix(sig.Inputs[0], "{") && !isObjectLike(params[0]) {
		return nil, &ArgumentMismatchError{
			Service: service,
			Method:  sig.Method,
			Reason:  fmt.Sprintf("method wants an object parameter %s, got %T", sig.Inputs[0], params[0]),
		}
	}

	return params, nil
}

// isObjectLike reports whether a value serializes as a JSON object.
func isObjectLike(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}

// invokeInto runs Invoke and unmarshals the first result element into
// out. Methods that return nothing leave out untouched.
func (d *Device) invokeInto(ctx context.Context, service, method string, args, out any) error {
	result, err := d.Invoke(ctx, service, method, args)
	if err != nil {
		return err
	}
	if len(result) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(result[0], out); err != nil {
		return fmt.Errorf("failed to parse %s.%s result: %w", service, method, err)
	}
	return nil
}
