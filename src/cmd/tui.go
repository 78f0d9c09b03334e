package cmd

import (
	"github.com/spf13/cobra"

	"github.com/apimgr/pokedex/src/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive lookup",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(cmd.Context(), service)
	},
}
