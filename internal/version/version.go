// ABOUTME: Version constants for the songpal client
// ABOUTME: Reported in CLI output and user agent strings
package version

const (
	Version      = "0.1.0"
	Product      = "songpal-go"
	Manufacturer = "harperreed"
)
