// Package cmd implements the CLI commands for gag-monitor.
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "gag-monitor",
		Short: "Monitor Grow A Garden shop stock",
		Long: "gag-monitor polls the Grow A Garden API for item availability,\n" +
			"prints a categorized stock listing, and sends a Discord webhook\n" +
			"notification when a watched item comes into stock.",
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.PersistentFlags().
		Bool("no-color", false, "disable terminal styling")

	cobra.CheckErr(viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color")))
}

func initViper() {
	// GAG_INTERVAL, GAG_METRICS_ADDR, GAG_NO_COLOR, ...
	viper.SetEnvPrefix("GAG")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
