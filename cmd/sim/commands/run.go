package commands

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/ardalan-sia/signal-sim/pkg/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the simulation for a fixed number of cycles",
	Long: `Loads the intersections from the store, runs the sense, adjust and
coordinate cycle for every intersection once per tick, prints each tick and
saves the final readings to the output store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("cycles") {
			cfg.Cycles, _ = cmd.Flags().GetInt("cycles")
		}
		if cmd.Flags().Changed("delay") {
			cfg.Delay, _ = cmd.Flags().GetDuration("delay")
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed, _ = cmd.Flags().GetUint64("seed")
		}
		if cmd.Flags().Changed("out") {
			cfg.OutputPath, _ = cmd.Flags().GetString("out")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, rec := setup(cmd)
		logger := logr.FromContextOrDiscard(ctx)
		s, err := openSession(ctx, rec)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		runErr := s.sim.Run(ctx, cfg.Cycles, func(t *report.Tick) error {
			return report.WriteTick(out, t)
		})
		if runErr != nil {
			logger.Info("Simulation stopped early", "ticks", s.sim.Ticks(), "reason", runErr.Error())
		}

		if err := s.save(ctx, s.sim); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated store saved as '%s'.\n", cfg.OutputPath)
		return runErr
	},
}

func init() {
	runCmd.Flags().IntP("cycles", "n", 10, "Number of ticks to simulate")
	runCmd.Flags().Duration("delay", 0, "Pause between ticks (default from config, 1s)")
	runCmd.Flags().Uint64("seed", 0, "Random seed; 0 derives one from the clock")
	runCmd.Flags().StringP("out", "o", "", "Where to save the updated store")
	AddCommand(runCmd)
}
