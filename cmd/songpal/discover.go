// ABOUTME: songpal discover command
// ABOUTME: Searches the local network for SongPal devices over SSDP
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harperreed/songpal-go/internal/discovery"
)

func newDiscoverCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Find SongPal devices on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := discovery.NewManager(discovery.Config{Timeout: timeout})
			defer mgr.Stop()

			if err := mgr.Browse(); err != nil {
				return err
			}

			found := 0
			for dev := range mgr.Devices() {
				found++
				fmt.Printf("%s (%s)\n", dev.Name, dev.ModelNumber)
				fmt.Printf("  endpoint: %s\n", dev.Endpoint)
				fmt.Printf("  services: %v\n", dev.Services)
			}
			if found == 0 {
				fmt.Println("No devices found")
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "how long to wait for responses")
	return cmd
}
