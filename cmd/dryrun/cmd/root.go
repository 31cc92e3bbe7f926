package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dryrunbot/dryrun/config"
)

var rootCmd = &cobra.Command{
	Use:   "dryrun",
	Short: "A multi-strategy crypto paper-trading bot",
	Long: `Dryrun runs a roster of technical trading strategies against live
Binance market data without placing real orders. Each strategy manages
its own simulated capital; every fill, stop and target is tracked in a
crash-safe state file and a trade journal.`,
}

var cfgPath string

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgPath)
}
