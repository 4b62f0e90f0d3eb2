// ABOUTME: songpal dump-devinfo command
// ABOUTME: Writes the full capability manifest as JSON for bug reports
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDumpDevinfoCmd(v *viper.Viper) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "dump-devinfo",
		Short: "Dump the device capability manifest as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			data, err := dev.DumpDeviceInfo()
			if err != nil {
				return err
			}

			if file != "" {
				if err := os.WriteFile(file, data, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", file, err)
				}
				fmt.Printf("Wrote %s\n", file)
				return nil
			}
			fmt.Println(string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "output file (default: stdout)")
	return cmd
}
