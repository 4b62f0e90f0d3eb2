// ABOUTME: songpal CLI entry point
// ABOUTME: Wires cobra commands and viper configuration
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/harperreed/songpal-go/internal/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	v := viper.New()
	v.SetEnvPrefix("songpal")
	v.AutomaticEnv()

	rootCmd := &cobra.Command{
		Use:     "songpal",
		Short:   "Control Sony SongPal devices over the local network",
		Version: version.Version,
		Long: `songpal controls Sony audio devices speaking the SongPal protocol.

Point it at a device API endpoint with --endpoint or the
SONGPAL_ENDPOINT environment variable, e.g.
http://192.168.1.40:10000/sony. Use "songpal discover" to find
devices on the local network.`,
	}

	rootCmd.PersistentFlags().String("endpoint", "", "device API endpoint URL (or SONGPAL_ENDPOINT)")
	_ = v.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))

	rootCmd.PersistentFlags().Bool("force-http", false, "use one-shot HTTP even where websocket is available")
	_ = v.BindPFlag("force_http", rootCmd.PersistentFlags().Lookup("force-http"))

	rootCmd.PersistentFlags().String("log-file", "", "append logs to a file instead of stderr")
	_ = v.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logFile := v.GetString("log_file")
		if logFile == "" {
			return nil
		}
		f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		log.SetOutput(f)
		return nil
	}

	rootCmd.AddCommand(newDiscoverCmd())
	rootCmd.AddCommand(newStatusCmd(v))
	rootCmd.AddCommand(newPowerCmd(v))
	rootCmd.AddCommand(newVolumeCmd(v))
	rootCmd.AddCommand(newInputCmd(v))
	rootCmd.AddCommand(newSoundCmd(v))
	rootCmd.AddCommand(newSettingsCmd(v))
	rootCmd.AddCommand(newListenCmd(v))
	rootCmd.AddCommand(newMonitorCmd(v))
	rootCmd.AddCommand(newCommandCmd(v))
	rootCmd.AddCommand(newDumpDevinfoCmd(v))

	return rootCmd.ExecuteContext(context.Background())
}
