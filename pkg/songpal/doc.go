// ABOUTME: Public SongPal client API
// ABOUTME: Device sessions, method invocation and notification subscriptions
// Package songpal is the entry point for controlling a SongPal device.
//
// A Device session bootstraps from the device's API endpoint URL,
// fetches the capability manifest and then routes named method calls
// over HTTP or a persistent websocket, depending on what each service
// advertises.
//
// Example:
//
//	dev, err := songpal.NewDevice("http://192.168.1.40:10000/sony")
//	if err != nil { ... }
//	if err := dev.Connect(ctx); err != nil { ... }
//	defer dev.Close()
//
//	power, err := dev.GetPowerStatus(ctx)
package songpal
