// ABOUTME: songpal settings command
// ABOUTME: Walks and prints the device settings tree
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/pkg/songpal"
)

func newSettingsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the device settings tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			tree, err := dev.GetSettingsTree(ctx)
			if err != nil {
				return err
			}
			printSettings(tree, 0)
			return nil
		},
	}
}

func printSettings(entries []songpal.SettingsEntry, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, e := range entries {
		if e.IsDirectory() {
			fmt.Printf("%s%s/\n", indent, e.Title)
			printSettings(e.Settings, depth+1)
			continue
		}
		target := ""
		if e.APIMapping != nil {
			target = fmt.Sprintf(" [%s:%s]", e.APIMapping.Service, e.APIMapping.Target)
		}
		fmt.Printf("%s%s%s\n", indent, e.Title, target)
	}
}
