package main

import (
	"fmt"
	"os"

	"innkeep/config"
	"innkeep/shared/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "innkeep",
	Short: "Room holds, bookings and pricing for a small hotel",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.InitLogger()
		logger.SetLogLevel(config.Get())
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(serveCmd, sweepCmd, watchCmd, tokenCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("ERROR")+": "+err.Error())
		os.Exit(1)
	}
}
