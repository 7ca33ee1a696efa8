// Interlock-cfg inspects the configuration an interlock controller will load
// from its flash filesystem.
//
// It reads an unpacked flash image from a host directory through the same
// retrieval code the device runs, so a config.txt can be checked before it
// is flashed.
//
// Usage:
//
//	interlock-cfg [command] [flags]
//
// See 'interlock-cfg --help' for available commands.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/muurk/interlock/internal/logging"
	"github.com/muurk/interlock/internal/version"
)

// envPrefix is prepended to every flag when read from the environment,
// e.g. --lock-timeout becomes INTERLOCK_LOCK_TIMEOUT.
const envPrefix = "INTERLOCK"

func main() {
	err := rootCmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "interlock-cfg",
	Short: "Interlock configuration checker",
	Long: `Inspect the KEY=VALUE configuration file of an interlock or door
controller.

The flash filesystem is read from a host directory (--root) holding an
unpacked image. Every command opens the file read-only.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(viper.GetString("log-level"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

// initConfig binds flags to INTERLOCK_* environment variables.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	cobra.CheckErr(viper.BindPFlags(rootCmd.PersistentFlags()))
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "interlock-cfg %s\n", version.Full())
	},
}
