// ABOUTME: SSDP discovery of SongPal devices on the local network
// ABOUTME: Sends M-SEARCH probes and resolves responders via their UPnP descriptions
package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

// ScalarWebAPIService is the UPnP service type SongPal devices answer to.
const ScalarWebAPIService = "urn:schemas-sony-com:service:ScalarWebAPI:1"

const (
	ssdpAddr        = "239.255.255.250:1900"
	defaultMX       = 3
	responseBufSize = 4096
)

// Config holds discovery configuration
type Config struct {
	// Timeout bounds one search round. Zero means 5 seconds.
	Timeout time.Duration
	// HTTPClient fetches UPnP description documents; nil gets a default.
	HTTPClient *http.Client
}

// DeviceInfo describes a discovered SongPal device
type DeviceInfo struct {
	Name        string
	ModelNumber string
	UDN         string
	Endpoint    string
	Version     string
	Services    []string
	Location    string
}

// Manager handles SSDP search rounds
type Manager struct {
	config  Config
	ctx     context.Context
	cancel  context.CancelFunc
	devices chan *DeviceInfo
}

// NewManager creates a discovery manager
func NewManager(config Config) *Manager {
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
		devices: make(chan *DeviceInfo, 10),
	}
}

// Browse runs one search round in the background. Discovered devices
// arrive on Devices; the channel closes when the round ends.
func (m *Manager) Browse() error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return fmt.Errorf("failed to open search socket: %w", err)
	}

	if err := sendSearch(conn); err != nil {
		conn.Close()
		return err
	}

	go m.browseLoop(conn)
	return nil
}

// Devices returns the channel of discovered devices
func (m *Manager) Devices() <-chan *DeviceInfo {
	return m.devices
}

// Stop stops the discovery manager
func (m *Manager) Stop() {
	m.cancel()
}

// sendSearch multicasts the M-SEARCH probe.
func sendSearch(conn *net.UDPConn) error {
	dst, err := net.ResolveUDPAddr("udp4", ssdpAddr)
	if err != nil {
		return err
	}

	probe := strings.Join([]string{
		"M-SEARCH * HTTP/1.1",
		"HOST: " + ssdpAddr,
		"MAN: \"ssdp:discover\"",
		fmt.Sprintf("MX: %d", defaultMX),
		"ST: " + ScalarWebAPIService,
		"", "",
	}, "\r\n")

	if _, err := conn.WriteTo([]byte(probe), dst); err != nil {
		return fmt.Errorf("failed to send search probe: %w", err)
	}
	return nil
}

// browseLoop collects responses until the round times out, resolving
// each responder's description document.
func (m *Manager) browseLoop(conn *net.UDPConn) {
	defer conn.Close()
	defer close(m.devices)

	deadline := time.Now().Add(m.config.Timeout)
	conn.SetReadDeadline(deadline)

	seen := make(map[string]bool)
	buf := make([]byte, responseBufSize)

	for {
		select {
		case <-m.ctx.Done():
			return
		default:
		}

		n, _, err := conn.ReadFrom(buf)
		if err != nil {
			return
		}

		location := ParseSearchResponse(string(buf[:n]))
		if location == "" || seen[location] {
			continue
		}
		seen[location] = true

		device, err := m.resolve(location)
		if err != nil {
			log.Printf("songpal: skipping responder %s: %v", location, err)
			continue
		}

		log.Printf("Discovered device: %s at %s", device.Name, device.Endpoint)

		select {
		case m.devices <- device:
		case <-m.ctx.Done():
			return
		}
	}
}

// ParseSearchResponse extracts the LOCATION header from one SSDP
// response, or "" when the datagram is not a usable response.
func ParseSearchResponse(data string) string {
	lines := strings.Split(data, "\r\n")
	if len(lines) == 0 || !strings.Contains(lines[0], "200") {
		return ""
	}
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "location") {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// resolve fetches and parses the responder's UPnP description.
func (m *Manager) resolve(location string) (*DeviceInfo, error) {
	ctx, cancel := context.WithTimeout(m.ctx, m.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, err
	}
	resp, err := m.config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch description: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}

	device, err := ParseDescription(data)
	if err != nil {
		return nil, err
	}
	device.Location = location
	return device, nil
}

// upnpDescription mirrors the parts of the UPnP device description the
// devices fill in, including Sony's ScalarWebAPI extension elements in
// the urn:schemas-sony-com:av namespace.
type upnpDescription struct {
	Device struct {
		FriendlyName string `xml:"friendlyName"`
		ModelNumber  string `xml:"modelNumber"`
		UDN          string `xml:"UDN"`
		ScalarInfo   struct {
			BaseURL      string   `xml:"X_ScalarWebAPI_BaseURL"`
			Version      string   `xml:"X_ScalarWebAPI_Version"`
			ServiceTypes []string `xml:"X_ScalarWebAPI_ServiceList>X_ScalarWebAPI_ServiceType"`
		} `xml:"X_ScalarWebAPI_DeviceInfo"`
	} `xml:"device"`
}

// ParseDescription extracts the SongPal endpoint from a UPnP device
// description document.
func ParseDescription(data []byte) (*DeviceInfo, error) {
	var desc upnpDescription
	if err := xml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse description XML: %w", err)
	}
	if desc.Device.ScalarInfo.BaseURL == "" {
		return nil, fmt.Errorf("description has no X_ScalarWebAPI_BaseURL")
	}

	return &DeviceInfo{
		Name:        desc.Device.FriendlyName,
		ModelNumber: desc.Device.ModelNumber,
		UDN:         desc.Device.UDN,
		Endpoint:    desc.Device.ScalarInfo.BaseURL,
		Version:     desc.Device.ScalarInfo.Version,
		Services:    desc.Device.ScalarInfo.ServiceTypes,
	}, nil
}
