// ABOUTME: songpal status command
// ABOUTME: Prints power, volume, input and playback state in one shot
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the device state",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if iface, err := dev.GetInterfaceInformation(ctx); err == nil {
				fmt.Printf("%s (%s)\n", iface.ModelName, iface.ProductCategory)
			}

			power, err := dev.GetPowerStatus(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Power: %s\n", power.Status)

			if volumes, err := dev.GetVolumeInformation(ctx); err == nil {
				for _, vol := range volumes {
					mute := ""
					if vol.Muted() {
						mute = " (muted)"
					}
					fmt.Printf("Volume: %d/%d%s %s\n", vol.Volume, vol.MaxVolume, mute, vol.Output)
				}
			}

			if play, err := dev.GetPlayInfo(ctx); err == nil && play.Playing() {
				fmt.Printf("Playing: %s - %s\n", play.Artist, play.Title)
			}

			return nil
		},
	}
}
