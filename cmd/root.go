package cmd

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "trading-assistant",
	Short: "Market data aggregation with rule-based signals and portfolio risk",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the configuration file (default ./config.yaml)")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
