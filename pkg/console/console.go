// Package console provides the display and simulate actions as command
// handlers, plus a line-oriented loop that dispatches to them.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"

	logutil "github.com/ardalan-sia/signal-sim/pkg/logging"
	"github.com/ardalan-sia/signal-sim/pkg/report"
	"github.com/ardalan-sia/signal-sim/pkg/simulation"
)

// SaveFunc persists the simulator's controllers after a simulate action.
type SaveFunc func(ctx context.Context, sim *simulation.Simulator) error

// Display writes the current state of every intersection.
func Display(w io.Writer, sim *simulation.Simulator) error {
	return report.WriteState(w, sim.Snapshot())
}

// Simulate runs one tick, writes its report and alerts, then saves.
func Simulate(ctx context.Context, w io.Writer, sim *simulation.Simulator, save SaveFunc) (*report.Tick, error) {
	if err := report.Notice(w, "Simulation in progress..."); err != nil {
		return nil, err
	}
	t := sim.Tick(ctx)
	if err := report.WriteTick(w, t); err != nil {
		return t, err
	}
	if save != nil {
		if err := save(ctx, sim); err != nil {
			return t, fmt.Errorf("failed to save store: %w", err)
		}
	}
	return t, report.Notice(w, "Simulation complete and store updated.")
}

// Console reads commands and writes their output.
type Console struct {
	Sim  *simulation.Simulator
	Save SaveFunc
	Out  io.Writer
}

const help = `Commands:
  display   show the current state of every intersection
  simulate  run one tick, show alerts and save the store
  help      show this message
  quit      leave the console`

// Serve handles one command per line until quit, EOF or ctx is done.
// A failing save is reported and the loop keeps going.
func (c *Console) Serve(ctx context.Context, in io.Reader) error {
	logger := logr.FromContextOrDiscard(ctx)
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.Out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(c.Out)
			return scanner.Err()
		}
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))
		logger.V(logutil.DEBUG).Info("Console command", "command", cmd)

		switch cmd {
		case "":
		case "display", "d":
			if err := Display(c.Out, c.Sim); err != nil {
				return err
			}
		case "simulate", "s":
			if _, err := Simulate(ctx, c.Out, c.Sim, c.Save); err != nil {
				logger.Error(err, "Simulation step failed")
				fmt.Fprintf(c.Out, "error: %v\n", err)
			}
		case "help", "h", "?":
			fmt.Fprintln(c.Out, help)
		case "quit", "q", "exit":
			return nil
		default:
			fmt.Fprintf(c.Out, "unknown command %q, type help\n", cmd)
		}
	}
}
