// ABOUTME: Functional options for Device sessions
// ABOUTME: HTTP client override, protocol forcing and handshake tuning
package songpal

import (
	"net/http"
	"time"

	"github.com/harperreed/songpal-go/pkg/registry"
)

// Option configures a Device.
type Option func(*Device)

// WithHTTPClient replaces the HTTP client used for one-shot calls and
// the self-description fetch.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Device) {
		d.httpClient = client
	}
}

// ForceHTTP pins every call to the one-shot HTTP transport, even for
// services that advertise websocket support. Notifications become
// unavailable.
func ForceHTTP() Option {
	return func(d *Device) {
		d.forceProtocol = registry.ProtocolXHRPost
	}
}

// ForceWebSocket prefers the duplex transport wherever a service
// advertises it. This is already the default; the option exists to
// override a configuration that forced HTTP.
func ForceWebSocket() Option {
	return func(d *Device) {
		d.forceProtocol = registry.ProtocolWebSocket
	}
}

// WithHandshakeTimeout bounds the websocket upgrade per connection.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(d *Device) {
		d.handshakeTimeout = timeout
	}
}
