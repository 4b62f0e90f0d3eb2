// ABOUTME: Tests for the one-shot HTTP transport
// ABOUTME: Uses httptest-hosted fake devices, including mislabeled bodies
package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/songpal-go/pkg/protocol"
)

func TestHTTPCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		// Real devices are known to mislabel the content type.
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`{"result": [{"status": "active"}], "id": 1}`))
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, nil)
	resp, err := tr.Call(context.Background(), &protocol.Request{
		Method: "getPowerStatus", Version: "1.0", ID: 1,
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if resp.ID != 1 {
		t.Errorf("expected id 1, got %d", resp.ID)
	}
	if len(resp.Result) != 1 {
		t.Errorf("expected one result, got %d", len(resp.Result))
	}
}

func TestHTTPCallDeviceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": [3, "Illegal Argument"], "id": 2}`))
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, nil)
	resp, err := tr.Call(context.Background(), &protocol.Request{
		Method: "setPowerStatus", Version: "1.0", ID: 2,
	})
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if resp.Error == nil {
		t.Fatal("expected a device error")
	}
	if resp.Error.Code != protocol.ErrorCodeIllegalArgument {
		t.Errorf("expected code 3, got %d", resp.Error.Code)
	}
}

func TestHTTPCallBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, nil)
	_, err := tr.Call(context.Background(), &protocol.Request{Method: "getPowerStatus", ID: 3})

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", terr.Status)
	}
}

func TestHTTPCallConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	tr := NewHTTP(srv.URL, nil)
	_, err := tr.Call(context.Background(), &protocol.Request{Method: "getPowerStatus", ID: 4})

	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if terr.Status != 0 {
		t.Errorf("expected no status on network failure, got %d", terr.Status)
	}
}

func TestHTTPCallMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer srv.Close()

	tr := NewHTTP(srv.URL, nil)
	_, err := tr.Call(context.Background(), &protocol.Request{Method: "getPowerStatus", ID: 5})

	var malformed *protocol.MalformedMessageError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedMessageError, got %v", err)
	}
}
