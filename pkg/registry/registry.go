// ABOUTME: Per-device registry of services, methods and signature versions
// ABOUTME: Built from the device self-description, queried at call time
// Package registry holds the capability manifest of a single device.
//
// A device advertises its callable surface at runtime: a list of
// services, each with versioned method signatures and notification
// names. The registry caches that manifest and resolves (service,
// method, version) triples into concrete signatures.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Transport identifiers advertised per service in the self-description.
const (
	ProtocolWebSocket = "websocket:jsonizer"
	ProtocolXHRPost   = "xhrpost:jsonizer"
)

// UnknownServiceError reports a lookup for a service the device does
// not advertise.
type UnknownServiceError struct {
	Service string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("device has no service %q", e.Service)
}

// UnknownMethodError reports a lookup for a method absent from an
// advertised service.
type UnknownMethodError struct {
	Service string
	Method  string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("service %q has no method %q", e.Service, e.Method)
}

// UnsupportedVersionError reports an explicit version request the
// device does not advertise for that method.
type UnsupportedVersionError struct {
	Service   string
	Method    string
	Version   string
	Available []string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("method %s.%s has no version %q (available: %v)",
		e.Service, e.Method, e.Version, e.Available)
}

// Service is the registry's view of one logical subsystem ("system",
// "audio", "avContent", ...). Handles stay valid across a manifest
// refresh; the method table is guarded so readers never race a reload.
type Service struct {
	Name          string
	Protocols     []string
	Notifications []NotificationDescription

	mu      sync.RWMutex
	methods map[string][]Signature
}

// SupportsWebSocket reports whether the service advertises the duplex
// websocket protocol.
func (s *Service) SupportsWebSocket() bool {
	for _, p := range s.Protocols {
		if p == ProtocolWebSocket {
			return true
		}
	}
	return false
}

// Methods returns the advertised method names, sorted.
func (s *Service) Methods() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.methods))
	for name := range s.methods {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Signatures returns every advertised signature for a method, sorted
// by descending version.
func (s *Service) Signatures(method string) []Signature {
	s.mu.RLock()
	sigs := make([]Signature, len(s.methods[method]))
	copy(sigs, s.methods[method])
	s.mu.RUnlock()

	sort.Slice(sigs, func(i, j int) bool {
		return compareVersions(sigs[i].Version, sigs[j].Version) > 0
	})
	return sigs
}

// Registry caches the capability manifest of one device. Load replaces
// the whole manifest; resolution is read-only. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	services map[string]*Service
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{services: make(map[string]*Service)}
}

// Load replaces the registry contents with the given service
// descriptions. Method tables start empty; fill them per service with
// SetSignatures once the signature documents have been fetched.
func (r *Registry) Load(descs []ServiceDescription) {
	services := make(map[string]*Service, len(descs))
	for _, desc := range descs {
		services[desc.Service] = &Service{
			Name:          desc.Service,
			Protocols:     desc.Protocols,
			Notifications: desc.Notifications,
			methods:       make(map[string][]Signature),
		}
	}

	r.mu.Lock()
	r.services = services
	r.mu.Unlock()
}

// SetSignatures installs the method table for a service, replacing any
// prior table. Within one method name, one signature per version is
// kept; the first occurrence of a duplicated version wins, matching
// device behavior.
func (r *Registry) SetSignatures(service string, sigs []Signature) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[service]
	if !ok {
		return &UnknownServiceError{Service: service}
	}

	methods := make(map[string][]Signature)
	for _, sig := range sigs {
		if hasVersion(methods[sig.Method], sig.Version) {
			continue
		}
		methods[sig.Method] = append(methods[sig.Method], sig)
	}

	svc.mu.Lock()
	svc.methods = methods
	svc.mu.Unlock()
	return nil
}

func hasVersion(sigs []Signature, version string) bool {
	for _, sig := range sigs {
		if sig.Version == version {
			return true
		}
	}
	return false
}

// Service returns the named service.
func (r *Registry) Service(name string) (*Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[name]
	if !ok {
		return nil, &UnknownServiceError{Service: name}
	}
	return svc, nil
}

// Services returns the advertised service names, sorted.
func (r *Registry) Services() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.services))
	for name := range r.services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the signature for a (service, method, version)
// triple. An empty version selects the numerically-highest advertised
// version; an explicit version must match exactly.
func (r *Registry) Resolve(service, method, version string) (Signature, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	svc, ok := r.services[service]
	if !ok {
		return Signature{}, &UnknownServiceError{Service: service}
	}

	sigs, ok := svc.methods[method]
	if !ok {
		return Signature{}, &UnknownMethodError{Service: service, Method: method}
	}

	if version == "" {
		best := sigs[0]
		for _, sig := range sigs[1:] {
			if compareVersions(sig.Version, best.Version) > 0 {
				best = sig
			}
		}
		return best, nil
	}

	for _, sig := range sigs {
		if sig.Version == version {
			return sig, nil
		}
	}

	available := make([]string, len(sigs))
	for i, sig := range sigs {
		available[i] = sig.Version
	}
	return Signature{}, &UnsupportedVersionError{
		Service:   service,
		Method:    method,
		Version:   version,
		Available: available,
	}
}
