// ABOUTME: songpal listen command
// ABOUTME: Subscribes to device notifications and prints them as they arrive
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/pkg/notification"
	"github.com/harperreed/songpal-go/pkg/protocol"
)

func newListenCmd(v *viper.Viper) *cobra.Command {
	var services []string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Stream device notifications to stdout",
		Long: `Stream device notifications to stdout until interrupted.

Subscribes to every notification on the selected services (all
websocket-capable services by default).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(services) == 0 {
				services = dev.Services()
			}

			print := func(n *protocol.Notification) {
				line, _ := json.Marshal(map[string]any{
					"service": n.Service,
					"name":    n.Name,
					"payload": json.RawMessage(n.Payload),
				})
				fmt.Println(string(line))
			}

			subscribed := 0
			for _, service := range services {
				if _, err := dev.Subscribe(ctx, service, notification.Wildcard, print); err != nil {
					fmt.Fprintf(os.Stderr, "skipping %s: %v\n", service, err)
					continue
				}
				subscribed++
			}
			if subscribed == 0 {
				return fmt.Errorf("no service accepted a subscription")
			}

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt)
			select {
			case <-stop:
			case <-ctx.Done():
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&services, "service", nil, "services to listen on (default: all)")
	return cmd
}
