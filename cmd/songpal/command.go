// ABOUTME: songpal command command
// ABOUTME: Invokes an arbitrary API method with raw JSON arguments
package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCommandCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "command <service> <method> [json-args]",
		Short: "Invoke a raw API method",
		Long: `Invoke any API method by service and method name. The optional
third argument is parsed as JSON and passed as the parameter:

  songpal command system getPowerStatus
  songpal command audio setAudioVolume '{"volume":"20","output":""}'`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			dev, err := connect(ctx, v)
			if err != nil {
				return err
			}
			defer dev.Close()

			var callArgs any
			if len(args) == 3 {
				if err := json.Unmarshal([]byte(args[2]), &callArgs); err != nil {
					return fmt.Errorf("arguments are not valid JSON: %w", err)
				}
			}

			result, err := dev.RawCommand(ctx, args[0], args[1], callArgs)
			if err != nil {
				return err
			}
			for _, part := range result {
				var pretty json.RawMessage = part
				out, err := json.MarshalIndent(pretty, "", "  ")
				if err != nil {
					out = part
				}
				fmt.Println(string(out))
			}
			return nil
		},
	}
}
