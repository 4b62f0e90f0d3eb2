// ABOUTME: Tests for SSDP discovery
// ABOUTME: Tests search response parsing and description extraction
package discovery

import (
	"testing"
	"time"
)

func TestNewManager(t *testing.T) {
	mgr := NewManager(Config{Timeout: time.Second})
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}
	mgr.Stop()
}

func TestParseSearchResponse(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\n" +
		"CACHE-CONTROL: max-age=1800\r\n" +
		"EXT:\r\n" +
		"LOCATION: http://192.168.1.40:64321/dmr.xml\r\n" +
		"ST: urn:schemas-sony-com:service:ScalarWebAPI:1\r\n" +
		"USN: uuid:00000000-0000-1010-8000-000000000000\r\n\r\n"

	location := ParseSearchResponse(response)
	if location != "http://192.168.1.40:64321/dmr.xml" {
		t.Errorf("unexpected location: %q", location)
	}
}

func TestParseSearchResponseIgnoresNonResponses(t *testing.T) {
	for _, data := range []string{
		"",
		"NOTIFY * HTTP/1.1\r\nLOCATION: http://x/desc.xml\r\n\r\n",
		"HTTP/1.1 200 OK\r\nEXT:\r\n\r\n", // no location
	} {
		if got := ParseSearchResponse(data); got != "" {
			t.Errorf("expected no location for %q, got %q", data, got)
		}
	}
}

func TestParseDescription(t *testing.T) {
	doc := `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0" xmlns:av="urn:schemas-sony-com:av">
  <device>
    <friendlyName>SRS-X88</friendlyName>
    <modelNumber>1.0</modelNumber>
    <UDN>uuid:00000000-0000-1010-8000-000000000000</UDN>
    <av:X_ScalarWebAPI_DeviceInfo>
      <av:X_ScalarWebAPI_Version>1.0</av:X_ScalarWebAPI_Version>
      <av:X_ScalarWebAPI_BaseURL>http://192.168.1.40:10000/sony</av:X_ScalarWebAPI_BaseURL>
      <av:X_ScalarWebAPI_ServiceList>
        <av:X_ScalarWebAPI_ServiceType>guide</av:X_ScalarWebAPI_ServiceType>
        <av:X_ScalarWebAPI_ServiceType>system</av:X_ScalarWebAPI_ServiceType>
        <av:X_ScalarWebAPI_ServiceType>audio</av:X_ScalarWebAPI_ServiceType>
      </av:X_ScalarWebAPI_ServiceList>
    </av:X_ScalarWebAPI_DeviceInfo>
  </device>
</root>`

	device, err := ParseDescription([]byte(doc))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if device.Name != "SRS-X88" {
		t.Errorf("unexpected name: %q", device.Name)
	}
	if device.Endpoint != "http://192.168.1.40:10000/sony" {
		t.Errorf("unexpected endpoint: %q", device.Endpoint)
	}
	if len(device.Services) != 3 || device.Services[2] != "audio" {
		t.Errorf("unexpected services: %v", device.Services)
	}
}

func TestParseDescriptionWithoutScalarInfo(t *testing.T) {
	doc := `<?xml version="1.0"?>
<root xmlns="urn:schemas-upnp-org:device-1-0">
  <device><friendlyName>Some Other Device</friendlyName></device>
</root>`

	if _, err := ParseDescription([]byte(doc)); err == nil {
		t.Fatal("expected non-SongPal description to be rejected")
	}
}
