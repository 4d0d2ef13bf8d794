package commands

import (
	"github.com/spf13/cobra"

	"github.com/ardalan-sia/signal-sim/pkg/console"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive display and simulate loop",
	Long: `Reads commands from standard input. "display" prints every intersection,
"simulate" runs one tick, prints the report and congestion alerts and saves
the output store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("out") {
			cfg.OutputPath, _ = cmd.Flags().GetString("out")
		}
		ctx, rec := setup(cmd)
		s, err := openSession(ctx, rec)
		if err != nil {
			return err
		}
		c := &console.Console{Sim: s.sim, Save: s.save, Out: cmd.OutOrStdout()}
		return c.Serve(ctx, cmd.InOrStdin())
	},
}

func init() {
	consoleCmd.Flags().StringP("out", "o", "", "Where to save the updated store")
	AddCommand(consoleCmd)
}
