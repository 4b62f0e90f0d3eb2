// ABOUTME: SongPal wire protocol package
// ABOUTME: Defines the JSON envelope codec and device error taxonomy
// Package protocol implements the SongPal wire envelope.
//
// Every exchange with a device is a JSON body carrying a method name,
// a parameter list, a signature version and a request id. Responses
// echo the id with either a result list or an (code, message) error
// tuple. Notifications look like requests sent by the device and carry
// no id.
//
// Example:
//
//	req := &protocol.Request{Method: "getPowerStatus", Version: "1.0", ID: 1}
//	body, err := req.Encode()
package protocol
