// ABOUTME: songpal monitor command
// ABOUTME: Live TUI showing device state driven by notifications
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/internal/ui"
	"github.com/harperreed/songpal-go/pkg/notification"
	"github.com/harperreed/songpal-go/pkg/protocol"
	"github.com/harperreed/songpal-go/pkg/songpal"
)

func newMonitorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Live view of the device state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			program, err := ui.Run(dev.Endpoint())
			if err != nil {
				return err
			}

			go seedState(ctx, dev, program)

			forward := func(n *protocol.Notification) {
				program.Send(ui.EventMsg(fmt.Sprintf("%s/%s", n.Service, n.Name)))
				program.Send(changeToStatus(n))
			}
			for _, service := range dev.Services() {
				if _, err := dev.Subscribe(ctx, service, notification.Wildcard, forward); err != nil {
					fmt.Fprintf(os.Stderr, "no notifications from %s: %v\n", service, err)
				}
			}

			_, err = program.Run()
			return err
		},
	}
}

// seedState fills the TUI with the current device state before any
// notification arrives.
func seedState(ctx context.Context, dev *songpal.Device, program *tea.Program) {
	connected := true
	status := ui.StatusMsg{Connected: &connected}

	if iface, err := dev.GetInterfaceInformation(ctx); err == nil {
		status.ModelName = iface.ModelName
	}
	if power, err := dev.GetPowerStatus(ctx); err == nil {
		status.Power = power.Status
	}
	if volumes, err := dev.GetVolumeInformation(ctx); err == nil && len(volumes) > 0 {
		volume := volumes[0].Volume
		muted := volumes[0].Muted()
		status.Volume = &volume
		status.Muted = &muted
	}
	if play, err := dev.GetPlayInfo(ctx); err == nil {
		status.Playing = play.Title
		status.Input = play.URI
	}

	program.Send(status)
}

// changeToStatus maps a notification onto a TUI status update.
func changeToStatus(n *protocol.Notification) ui.StatusMsg {
	change, err := notification.ParseChange(n)
	if err != nil {
		return ui.StatusMsg{}
	}

	switch c := change.(type) {
	case *notification.PowerChange:
		return ui.StatusMsg{Power: c.Status}
	case *notification.VolumeChange:
		volume := c.Volume
		muted := c.Muted()
		return ui.StatusMsg{Volume: &volume, Muted: &muted}
	case *notification.ContentChange:
		return ui.StatusMsg{Input: c.URI}
	default:
		return ui.StatusMsg{}
	}
}
