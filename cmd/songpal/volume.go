// ABOUTME: songpal volume command
// ABOUTME: Reads and sets volume and mute per output
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newVolumeCmd(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "volume [level|mute|unmute]",
		Short: "Show or set the volume",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 0 {
				volumes, err := dev.GetVolumeInformation(ctx)
				if err != nil {
					return err
				}
				for _, vol := range volumes {
					mute := ""
					if vol.Muted() {
						mute = " (muted)"
					}
					fmt.Printf("%s: %d (%d-%d)%s\n",
						vol.Output, vol.Volume, vol.MinVolume, vol.MaxVolume, mute)
				}
				return nil
			}

			switch args[0] {
			case "mute":
				return dev.SetMute(ctx, output, true)
			case "unmute":
				return dev.SetMute(ctx, output, false)
			default:
				level, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("volume must be a number, mute or unmute")
				}
				return dev.SetVolume(ctx, output, level)
			}
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "output to target (default: the device default)")
	return cmd
}
