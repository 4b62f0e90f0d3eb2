// ABOUTME: songpal sound command
// ABOUTME: Lists and changes sound and speaker settings
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/pkg/songpal"
)

func newSoundCmd(v *viper.Viper) *cobra.Command {
	var speaker bool

	cmd := &cobra.Command{
		Use:   "sound [target] [value]",
		Short: "Show or change sound settings",
		Long: `Show or change sound settings.

With no arguments, lists every sound setting with its current value
and candidates. With a target and value, changes that setting:

  songpal sound                      # list all settings
  songpal sound soundField movie     # switch the sound field
  songpal sound --speaker            # list speaker settings`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 2 {
				if speaker {
					return dev.SetSpeakerSetting(ctx, args[0], args[1])
				}
				return dev.SetSoundSetting(ctx, args[0], args[1])
			}

			target := ""
			if len(args) == 1 {
				target = args[0]
			}

			var settings []songpal.Setting
			if speaker {
				settings, err = dev.GetSpeakerSettings(ctx)
			} else {
				settings, err = dev.GetSoundSettings(ctx, target)
			}
			if err != nil {
				return err
			}

			for _, s := range settings {
				fmt.Printf("%s (%s): %s\n", s.Title, s.Target, s.CurrentValue)
				for _, c := range s.Candidates {
					marker := " "
					if c.Value == s.CurrentValue {
						marker = "*"
					}
					fmt.Printf("  %s %s (%s)\n", marker, c.Title, c.Value)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&speaker, "speaker", false, "operate on speaker settings instead")
	return cmd
}
