package commands

import (
	"github.com/spf13/cobra"

	"github.com/ardalan-sia/signal-sim/pkg/console"
	"github.com/ardalan-sia/signal-sim/pkg/metrics"
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Shows the current state of every intersection in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := setup(cmd)
		s, err := openSession(ctx, metrics.Noop{})
		if err != nil {
			return err
		}
		return console.Display(cmd.OutOrStdout(), s.sim)
	},
}

func init() {
	AddCommand(displayCmd)
}
