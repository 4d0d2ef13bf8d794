package commands

import (
	"context"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/ardalan-sia/signal-sim/pkg/metrics"
	"github.com/ardalan-sia/signal-sim/pkg/simulation"
	"github.com/ardalan-sia/signal-sim/pkg/store"
	"github.com/ardalan-sia/signal-sim/pkg/traffic"
)

// session is the process state shared by the run and console commands.
type session struct {
	runID string
	doc   *store.Document
	sim   *simulation.Simulator
	rec   metrics.Recorder
}

func openSession(ctx context.Context, rec metrics.Recorder) (*session, error) {
	doc, err := store.Load(cfg.StorePath)
	if err != nil {
		return nil, err
	}

	seed := cfg.SeedOrNow()
	initial := traffic.NewUniform(traffic.InitialRange, seed)
	newSensor := func(id int) traffic.Sensor {
		return traffic.NewUniform(traffic.SensingRange, seed+uint64(id))
	}

	sim := simulation.NewSimulator(simulation.LoadControllers(ctx, doc, newSensor, initial))
	sim.Delay = cfg.Delay
	sim.Metrics = rec

	s := &session{runID: uuid.New().String(), doc: doc, sim: sim, rec: rec}
	logr.FromContextOrDiscard(ctx).Info("Session opened",
		"runID", s.runID, "store", cfg.StorePath, "intersections", len(sim.Controllers), "links", sim.Graph.Len(), "seed", seed)
	return s, nil
}

func (s *session) save(ctx context.Context, sim *simulation.Simulator) error {
	_, err := simulation.Persist(ctx, cfg.OutputPath, s.doc, sim.Controllers, s.rec, s.runID)
	return err
}
