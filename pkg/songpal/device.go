// ABOUTME: Device session lifecycle and transport routing
// ABOUTME: Bootstraps the capability manifest and manages per-service connections
package songpal

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harperreed/songpal-go/pkg/notification"
	"github.com/harperreed/songpal-go/pkg/protocol"
	"github.com/harperreed/songpal-go/pkg/registry"
	"github.com/harperreed/songpal-go/pkg/transport"
)

// guideService hosts the self-description methods on every device.
const guideService = "guide"

// Device is a session against one SongPal device. Create it with
// NewDevice, populate the capability manifest with Connect, then call
// methods by name (Invoke) or through the typed helpers in calls.go.
//
// Transports are opened lazily per service: HTTP for request/response
// only services, a persistent websocket where the service advertises
// one. All methods are safe for concurrent use.
type Device struct {
	endpoint *url.URL

	httpClient       *http.Client
	forceProtocol    string
	handshakeTimeout time.Duration

	idgen    atomic.Int64
	registry *registry.Registry
	hub      *notification.Hub

	mu         sync.Mutex
	closed     bool
	transports map[string]transport.Transport
}

// NewDevice creates an unconnected session for the device API endpoint,
// e.g. "http://192.168.1.40:10000/sony".
func NewDevice(endpoint string, opts ...Option) (*Device, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid device endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("device endpoint %q must be http or https", endpoint)
	}

	d := &Device{
		endpoint:         u,
		handshakeTimeout: transport.DefaultHandshakeTimeout,
		registry:         registry.New(),
		hub:              notification.NewHub(),
		transports:       make(map[string]transport.Transport),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Endpoint returns the device API base URL.
func (d *Device) Endpoint() string { return d.endpoint.String() }

// Connect fetches the device self-description and builds the capability
// manifest: the advertised services from getSupportedApiInfo, then each
// service's versioned method table from getMethodTypes. A service whose
// signature fetch fails is kept without methods and logged, matching
// how the devices themselves degrade.
func (d *Device) Connect(ctx context.Context) error {
	guide := transport.NewHTTP(d.serviceURL(guideService), d.httpClient)

	resp, err := guide.Call(ctx, &protocol.Request{
		Method:  "getSupportedApiInfo",
		Params:  []any{map[string]any{}},
		Version: "1.0",
		ID:      d.nextID(),
	})
	if err != nil {
		return fmt.Errorf("failed to fetch supported API info: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("getSupportedApiInfo: %w", protocol.ClassifyDeviceError(resp.Error))
	}
	if len(resp.Result) == 0 {
		return fmt.Errorf("getSupportedApiInfo returned an empty result")
	}

	var descs []registry.ServiceDescription
	if err := json.Unmarshal(resp.Result[0], &descs); err != nil {
		return fmt.Errorf("failed to parse supported API info: %w", err)
	}
	d.registry.Load(descs)

	for _, desc := range descs {
		if err := d.loadSignatures(ctx, desc.Service); err != nil {
			log.Printf("songpal: skipping method table for %s: %v", desc.Service, err)
		}
	}
	return nil
}

// Refresh re-fetches the capability manifest, replacing the previous
// one. Open transports and subscriptions are left alone.
func (d *Device) Refresh(ctx context.Context) error {
	return d.Connect(ctx)
}

func (d *Device) loadSignatures(ctx context.Context, service string) error {
	t := transport.NewHTTP(d.serviceURL(service), d.httpClient)

	resp, err := t.Call(ctx, &protocol.Request{
		Method:  "getMethodTypes",
		Params:  []any{""},
		Version: "1.0",
		ID:      d.nextID(),
	})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return protocol.ClassifyDeviceError(resp.Error)
	}

	sigs, err := registry.ParseSignatures(resp.Result)
	if err != nil {
		return err
	}
	return d.registry.SetSignatures(service, sigs)
}

// Registry exposes the capability manifest built by Connect.
func (d *Device) Registry() *registry.Registry { return d.registry }

// Services returns the advertised service names, sorted.
func (d *Device) Services() []string { return d.registry.Services() }

// Subscribe registers a listener for one notification on a service and
// arms that notification on the device. The wildcard name
// notification.Wildcard arms every notification the service advertises.
// Notifications require the service's websocket endpoint; subscribing
// on an HTTP-only service fails.
func (d *Device) Subscribe(ctx context.Context, service, name string, listener notification.Listener) (*notification.Subscription, error) {
	svc, err := d.registry.Service(service)
	if err != nil {
		return nil, err
	}
	if !svc.SupportsWebSocket() {
		return nil, fmt.Errorf("service %q has no websocket endpoint, notifications unavailable", service)
	}
	if d.forceProtocol == registry.ProtocolXHRPost {
		return nil, fmt.Errorf("notifications unavailable: session is forced to HTTP")
	}

	sub := d.hub.Subscribe(service, name, listener)
	if err := d.armNotifications(ctx, svc, name); err != nil {
		d.hub.Unsubscribe(sub)
		return nil, fmt.Errorf("failed to enable notifications on %s: %w", service, err)
	}
	return sub, nil
}

// Unsubscribe removes a listener. The device-side notification stays
// armed; re-arming per listener churn is noisier than letting unmatched
// pushes fall through to the fallback.
func (d *Device) Unsubscribe(sub *notification.Subscription) {
	d.hub.Unsubscribe(sub)
}

// SetFallbackListener receives notifications no subscription matches.
func (d *Device) SetFallbackListener(listener notification.Listener) {
	d.hub.SetFallback(listener)
}

// armNotifications sends switchNotifications over the service's duplex
// connection, enabling the named notification (or all of them for the
// wildcard) at the latest advertised version.
func (d *Device) armNotifications(ctx context.Context, svc *registry.Service, name string) error {
	enabled := make([]map[string]string, 0, len(svc.Notifications))
	for _, n := range svc.Notifications {
		if name != notification.Wildcard && n.Name != name {
			continue
		}
		enabled = append(enabled, map[string]string{
			"name":    n.Name,
			"version": n.LatestVersion(),
		})
	}
	if len(enabled) == 0 {
		return fmt.Errorf("service %q advertises no notification %q", svc.Name, name)
	}

	t, err := d.transportFor(ctx, svc.Name)
	if err != nil {
		return err
	}

	resp, err := t.Call(ctx, &protocol.Request{
		Method:  "switchNotifications",
		Params:  []any{map[string]any{"enabled": enabled}},
		Version: "1.0",
		ID:      d.nextID(),
	})
	if err != nil {
		return err
	}
	if resp.Error != nil {
		return protocol.ClassifyDeviceError(resp.Error)
	}
	return nil
}

// transportFor returns the transport for a service, opening it on first
// use. Services advertising websocket get a duplex connection unless
// the session forces HTTP; everything else gets one-shot HTTP.
func (d *Device) transportFor(ctx context.Context, service string) (transport.Transport, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, fmt.Errorf("device session is closed")
	}
	if t, ok := d.transports[service]; ok {
		d.mu.Unlock()
		return t, nil
	}
	d.mu.Unlock()

	svc, err := d.registry.Service(service)
	if err != nil {
		return nil, err
	}

	var t transport.Transport
	if svc.SupportsWebSocket() && d.forceProtocol != registry.ProtocolXHRPost {
		var ws *transport.WebSocket
		ws = transport.NewWebSocket(transport.WebSocketConfig{
			Endpoint:         d.websocketURL(service),
			Service:          service,
			OnNotification:   d.hub.Dispatch,
			OnClose:          func(error) { d.connectionLost(service, ws) },
			HandshakeTimeout: d.handshakeTimeout,
		})
		if err := ws.Connect(ctx); err != nil {
			return nil, err
		}
		t = ws
	} else {
		t = transport.NewHTTP(d.serviceURL(service), d.httpClient)
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		t.Close()
		return nil, fmt.Errorf("device session is closed")
	}
	if existing, ok := d.transports[service]; ok {
		// Another caller raced us to open this service; keep theirs.
		d.mu.Unlock()
		t.Close()
		return existing, nil
	}
	d.transports[service] = t
	d.mu.Unlock()
	return t, nil
}

// connectionLost forgets a service's transport after its connection
// went away, so the next call reopens it. The service's subscriptions
// go too: the device-side arming died with the connection. The closing
// transport identifies itself; a connection that lost the open race and
// was never registered must not evict the live one.
func (d *Device) connectionLost(service string, closing transport.Transport) {
	d.mu.Lock()
	if d.transports[service] != closing {
		d.mu.Unlock()
		return
	}
	delete(d.transports, service)
	d.mu.Unlock()
	d.hub.ClearService(service)
}

// Close tears down every open transport, failing their pending calls,
// and clears all subscriptions. The session cannot be reused.
func (d *Device) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	transports := d.transports
	d.transports = make(map[string]transport.Transport)
	d.mu.Unlock()

	// Closing outside the lock: websocket teardown calls back into
	// connectionLost via OnClose.
	for _, t := range transports {
		t.Close()
	}
	d.hub.Clear()
	return nil
}

func (d *Device) nextID() int64 {
	return d.idgen.Add(1)
}

// serviceURL joins the device base URL with a service path segment.
func (d *Device) serviceURL(service string) string {
	u := *d.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + "/" + service
	return u.String()
}

// websocketURL is the service URL with the scheme flipped to ws/wss.
func (d *Device) websocketURL(service string) string {
	u := *d.endpoint
	if u.Scheme == "https" {
		u.Scheme = "wss"
	} else {
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/" + service
	return u.String()
}

// DeviceInfo is the full dumpable state of a session: the manifest plus
// every method signature, for offline inspection and bug reports.
type DeviceInfo struct {
	Endpoint string                 `json:"endpoint"`
	Services map[string]ServiceInfo `json:"services"`
}

// ServiceInfo is one service's slice of a DeviceInfo dump.
type ServiceInfo struct {
	Protocols     []string                   `json:"protocols"`
	Notifications []string                   `json:"notifications"`
	Methods       map[string][]SignatureInfo `json:"methods"`
}

// SignatureInfo is one versioned method signature in a DeviceInfo dump.
type SignatureInfo struct {
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
	Version string   `json:"version"`
}

// DumpDeviceInfo serializes the capability manifest as indented JSON.
// Connect must have run first.
func (d *Device) DumpDeviceInfo() ([]byte, error) {
	info := DeviceInfo{
		Endpoint: d.endpoint.String(),
		Services: make(map[string]ServiceInfo),
	}
	for _, name := range d.registry.Services() {
		svc, err := d.registry.Service(name)
		if err != nil {
			continue
		}
		si := ServiceInfo{
			Protocols: svc.Protocols,
			Methods:   make(map[string][]SignatureInfo),
		}
		for _, n := range svc.Notifications {
			si.Notifications = append(si.Notifications, n.Name)
		}
		for _, method := range svc.Methods() {
			for _, sig := range svc.Signatures(method) {
				si.Methods[method] = append(si.Methods[method], SignatureInfo{
					Inputs:  sig.Inputs,
					Outputs: sig.Outputs,
					Version: sig.Version,
				})
			}
		}
		info.Services[name] = si
	}
	return json.MarshalIndent(info, "", "  ")
}
