package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ardalan-sia/signal-sim/pkg/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a new store with empty traffic light records",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("intersections")
		force, _ := cmd.Flags().GetBool("force")
		if n <= 0 {
			return fmt.Errorf("intersections must be positive, got %d", n)
		}
		if _, err := os.Stat(cfg.StorePath); err == nil && !force {
			return fmt.Errorf("store %q already exists, use --force to overwrite", cfg.StorePath)
		}
		if err := store.Save(cfg.StorePath, store.Init(n)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d intersections to '%s'.\n", n, cfg.StorePath)
		return nil
	},
}

func init() {
	initCmd.Flags().IntP("intersections", "n", 4, "Number of traffic lights to create")
	initCmd.Flags().Bool("force", false, "Overwrite an existing store")
	AddCommand(initCmd)
}
