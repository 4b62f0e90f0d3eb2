// ABOUTME: songpal input command
// ABOUTME: Lists selectable inputs and switches between them
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInputCmd(v *viper.Viper) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "input [uri]",
		Short: "List inputs or switch to one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			if len(args) == 0 {
				inputs, err := dev.GetInputs(ctx)
				if err != nil {
					return err
				}
				for _, in := range inputs {
					marker := " "
					if in.IsActive() {
						marker = "*"
					}
					fmt.Printf("%s %s (%s)\n", marker, in.Title, in.URI)
				}
				return nil
			}

			if err := dev.SetInput(ctx, args[0], output); err != nil {
				return err
			}
			fmt.Printf("Switched to %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "zone", "", "output zone URI to switch (default: the device default)")
	return cmd
}
