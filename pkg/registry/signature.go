// ABOUTME: Self-description document parsing and version ordering
// ABOUTME: Parses getSupportedApiInfo and getMethodTypes payloads
package registry

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ServiceDescription is one entry of the getSupportedApiInfo result.
type ServiceDescription struct {
	Service       string                    `json:"service"`
	Protocols     []string                  `json:"protocols"`
	Notifications []NotificationDescription `json:"notifications"`
}

// NotificationDescription names one notification a service can push,
// with the versions the device supports for it.
type NotificationDescription struct {
	Name     string                `json:"name"`
	Versions []NotificationVersion `json:"versions"`
}

// NotificationVersion is a single advertised notification version.
type NotificationVersion struct {
	Version string `json:"version"`
}

// LatestVersion returns the numerically-highest advertised version for
// the notification, or "1.0" when none is declared.
func (n NotificationDescription) LatestVersion() string {
	best := ""
	for _, v := range n.Versions {
		if v.Version == "" {
			continue
		}
		if best == "" || compareVersions(v.Version, best) > 0 {
			best = v.Version
		}
	}
	if best == "" {
		return "1.0"
	}
	return best
}

// Signature is one versioned method signature from getMethodTypes.
// Inputs and Outputs carry the device's parameter shape strings, e.g.
// `{"status":"string"}` or plain scalar type names.
type Signature struct {
	Method  string
	Inputs  []string
	Outputs []string
	Version string
}

// ExpectsParams reports whether the signature declares any input
// parameter shape.
func (s Signature) ExpectsParams() bool {
	return len(s.Inputs) > 0
}

// ParseSignatures parses the result rows of a getMethodTypes call.
// Each row is a four-element array: name, input shapes, output shapes,
// version.
func ParseSignatures(rows []json.RawMessage) ([]Signature, error) {
	sigs := make([]Signature, 0, len(rows))
	for _, row := range rows {
		sig, err := parseSignature(row)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func parseSignature(row json.RawMessage) (Signature, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(row, &parts); err != nil {
		return Signature{}, fmt.Errorf("signature row is not an array: %w", err)
	}
	if len(parts) != 4 {
		return Signature{}, fmt.Errorf("signature row has %d elements, want 4", len(parts))
	}

	var sig Signature
	if err := json.Unmarshal(parts[0], &sig.Method); err != nil {
		return Signature{}, fmt.Errorf("signature method name: %w", err)
	}
	if err := json.Unmarshal(parts[1], &sig.Inputs); err != nil {
		return Signature{}, fmt.Errorf("signature inputs for %q: %w", sig.Method, err)
	}
	if err := json.Unmarshal(parts[2], &sig.Outputs); err != nil {
		return Signature{}, fmt.Errorf("signature outputs for %q: %w", sig.Method, err)
	}
	if err := json.Unmarshal(parts[3], &sig.Version); err != nil {
		return Signature{}, fmt.Errorf("signature version for %q: %w", sig.Method, err)
	}
	return sig, nil
}

// compareVersions orders "major.minor" version strings numerically, so
// that "1.10" sorts above "1.9". Non-numeric segments count as zero;
// missing segments compare as zero.
func compareVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(as[i])
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(bs[i])
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}
