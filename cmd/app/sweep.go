package main

import (
	"innkeep/di"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Reclaim every lapsed room hold once and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := di.InitializeApp()
		defer app.Kafka.Close() //nolint:errcheck

		count, err := app.Hold.Sweep(cmd.Context())
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Printf("reclaimed %d room(s)\n", count)

		return nil
	},
}
