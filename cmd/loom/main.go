// SPDX-License-Identifier: Unlicense OR MIT

// Command loom runs a demonstration application on the native event
// loop, either on an X server or headless from a replay script.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "0.1.0"
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "loom",
	Short: "Native event loop demo",
	Long:  `loom opens demo windows and dispatches native window system events to them.`,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the demo windows and run the event loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("loom v%s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/loom/loom.yaml)")

	flags := runCmd.Flags()
	flags.String("backend", "", "native event source: x11 or headless")
	flags.String("script", "", "replay script for the headless backend")
	flags.String("snapshot-dir", "", "directory for BMP snapshots of the windows at exit")
	flags.Int("windows", 0, "number of demo windows")
	v.BindPFlag("backend", flags.Lookup("backend"))
	v.BindPFlag("script", flags.Lookup("script"))
	v.BindPFlag("snapshot_dir", flags.Lookup("snapshot-dir"))
	v.BindPFlag("windows", flags.Lookup("windows"))

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
