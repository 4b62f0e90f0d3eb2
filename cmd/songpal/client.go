// ABOUTME: Shared session setup for the CLI commands
// ABOUTME: Builds a connected Device from flags and environment
package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/pkg/songpal"
)

// connect builds a Device from the configured endpoint and runs the
// capability bootstrap.
func connect(ctx context.Context, v *viper.Viper) (*songpal.Device, error) {
	endpoint := v.GetString("endpoint")
	if endpoint == "" {
		return nil, fmt.Errorf("no endpoint configured; pass --endpoint or set SONGPAL_ENDPOINT")
	}

	var opts []songpal.Option
	if v.GetBool("force_http") {
		opts = append(opts, songpal.ForceHTTP())
	}

	dev, err := songpal.NewDevice(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	if err := dev.Connect(ctx); err != nil {
		dev.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}
	return dev, nil
}
