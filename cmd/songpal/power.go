// ABOUTME: songpal power command
// ABOUTME: Reads and toggles the device power state
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPowerCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:       "power [on|off]",
		Short:     "Show or set the power state",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 0 {
				power, err := dev.GetPowerStatus(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("Power: %s\n", power.Status)
				return nil
			}

			on := args[0] == "on"
			if err := dev.SetPowerStatus(ctx, on); err != nil {
				return err
			}
			fmt.Printf("Power set to %s\n", args[0])
			return nil
		},
	}
}
