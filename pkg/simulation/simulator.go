package simulation

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/ardalan-sia/signal-sim/pkg/agent"
	"github.com/ardalan-sia/signal-sim/pkg/graph"
	logutil "github.com/ardalan-sia/signal-sim/pkg/logging"
	"github.com/ardalan-sia/signal-sim/pkg/metrics"
	"github.com/ardalan-sia/signal-sim/pkg/report"
)

// Simulator owns the controller list and drives it one tick at a time.
// It is not safe for concurrent use.
type Simulator struct {
	Graph       *graph.Graph
	Controllers []*agent.Controller

	// Delay paces Run between ticks.
	Delay time.Duration

	Metrics metrics.Recorder

	byID  map[int]*agent.Controller
	ticks int
}

// NewSimulator links the controllers into a chain in list order.
func NewSimulator(controllers []*agent.Controller) *Simulator {
	s := &Simulator{
		Graph:   graph.New(),
		Metrics: metrics.Noop{},
		byID:    make(map[int]*agent.Controller, len(controllers)),
	}
	for _, c := range controllers {
		s.RegisterAgent(c)
	}
	return s
}

// RegisterAgent appends a controller and links it after the current tail.
func (s *Simulator) RegisterAgent(c *agent.Controller) {
	if n := len(s.Controllers); n > 0 {
		s.Graph.AddEdge(s.Controllers[n-1].ID, c.ID)
	} else {
		s.Graph.Nodes[c.ID] = struct{}{}
	}
	s.register(c)
}

func (s *Simulator) register(c *agent.Controller) {
	s.Controllers = append(s.Controllers, c)
	s.byID[c.ID] = c
}

// Ticks returns how many ticks have completed.
func (s *Simulator) Ticks() int { return s.ticks }

// Snapshot returns every controller's current status without changing it.
func (s *Simulator) Snapshot() []agent.Status {
	return lo.Map(s.Controllers, func(c *agent.Controller, _ int) agent.Status { return c.Status() })
}

// Tick senses, adjusts and checks coordination for every controller in
// list order. A neighbour is compared using whatever reading it holds when
// its predecessor is processed.
func (s *Simulator) Tick(ctx context.Context) *report.Tick {
	logger := logr.FromContextOrDiscard(ctx)
	s.ticks++
	t := &report.Tick{Number: s.ticks}

	for _, c := range s.Controllers {
		c.SenseTraffic()
		c.AdjustGreenTime()

		st := c.Status()
		t.Statuses = append(t.Statuses, st)
		s.Metrics.RecordIntersection(st.ID, st.Density, st.GreenTime, st.HighTraffic)
		logger.V(logutil.DEBUG).Info("Intersection updated",
			"tick", s.ticks, "intersection", st.ID, "density", st.Density, "greenTime", st.GreenTime)

		for _, e := range s.Graph.Neighbors(c.ID) {
			neighbor, ok := s.byID[e.To]
			if !ok {
				continue
			}
			if c.CoordinatesWith(neighbor) {
				t.Alerts = append(t.Alerts, report.Alert{From: c.ID, To: neighbor.ID})
				s.Metrics.RecordCoordination(c.ID, neighbor.ID)
				logger.V(logutil.VERBOSE).Info("Intersections coordinating to avoid congestion",
					"from", c.ID, "to", neighbor.ID)
			}
		}
	}

	s.Metrics.RecordTick()
	logger.V(logutil.VERBOSE).Info("Tick complete", "tick", s.ticks,
		"alerts", len(t.Alerts), "highTraffic", len(t.HighTraffic()))
	return t
}

// Run performs cycles ticks, handing each to onTick and waiting Delay
// between them. It stops early with ctx.Err() if ctx is cancelled while
// waiting.
func (s *Simulator) Run(ctx context.Context, cycles int, onTick func(*report.Tick) error) error {
	for i := 0; i < cycles; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && s.Delay > 0 {
			timer := time.NewTimer(s.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		t := s.Tick(ctx)
		if onTick != nil {
			if err := onTick(t); err != nil {
				return err
			}
		}
	}
	return nil
}
