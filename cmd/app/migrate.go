package main

import (
	"innkeep/config"
	"innkeep/helper"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down|step-up|drop>",
	Short:     "Apply the postgres schema migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{helper.ActionUp, helper.ActionDown, helper.ActionStepUp, helper.ActionDrop},
	RunE: func(_ *cobra.Command, args []string) error {
		return helper.Runner(config.Get(), args[0])
	},
}
