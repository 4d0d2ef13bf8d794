package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/ardalan-sia/signal-sim/pkg/agent"
	logutil "github.com/ardalan-sia/signal-sim/pkg/logging"
	"github.com/ardalan-sia/signal-sim/pkg/metrics"
	"github.com/ardalan-sia/signal-sim/pkg/store"
	"github.com/ardalan-sia/signal-sim/pkg/traffic"
)

// Warning describes a value that could not be written back to the store.
// The in-memory value stays authoritative.
type Warning struct {
	Individual string
	Property   string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s property not found for %s", w.Property, w.Individual)
}

// LoadControllers creates one controller per traffic light in doc. The
// controller ID is the record's 1-based position among all records. A
// missing density is drawn from initial and a missing green time defaults
// to agent.DefaultGreenTime. newSensor is called once per controller.
func LoadControllers(ctx context.Context, doc *store.Document, newSensor func(id int) traffic.Sensor, initial traffic.Sensor) []*agent.Controller {
	logger := logr.FromContextOrDiscard(ctx)
	var controllers []*agent.Controller
	for i := range doc.Individuals {
		ind := &doc.Individuals[i]
		if !ind.IsTrafficLight() {
			continue
		}
		id := i + 1

		var density int
		if ind.TrafficDensity != nil {
			density = *ind.TrafficDensity
		} else {
			density = initial.Sense()
			logger.V(logutil.VERBOSE).Info("No persisted density, using default", "intersection", id, "density", density)
		}
		greenTime := agent.DefaultGreenTime
		if ind.GreenTime != nil {
			greenTime = *ind.GreenTime
		} else {
			logger.V(logutil.VERBOSE).Info("No persisted green time, using default", "intersection", id, "greenTime", greenTime)
		}
		if greenTime != agent.ClampGreenTime(greenTime) {
			logger.Info("Persisted green time out of range, clamping", "intersection", id, "greenTime", greenTime)
		}

		controllers = append(controllers, agent.New(id, ind.Name, density, greenTime, newSensor(id)))
	}
	logger.V(logutil.DEFAULT).Info("Controllers loaded", "count", len(controllers), "records", len(doc.Individuals))
	return controllers
}

// WriteBack copies every controller's density and green time into doc.
// Properties the document does not declare are skipped and reported as
// warnings; a declared but absent field is created.
func WriteBack(ctx context.Context, doc *store.Document, controllers []*agent.Controller, rec metrics.Recorder) []Warning {
	logger := logr.FromContextOrDiscard(ctx)
	if rec == nil {
		rec = metrics.Noop{}
	}
	var warnings []Warning
	for _, c := range controllers {
		idx := c.ID - 1
		if idx < 0 || idx >= len(doc.Individuals) {
			logger.Info("Controller has no backing record", "intersection", c.ID)
			continue
		}
		ind := &doc.Individuals[idx]

		fields := []struct {
			prop  string
			value int
			dst   **int
		}{
			{store.PropTrafficDensity, c.Density, &ind.TrafficDensity},
			{store.PropGreenTime, c.GreenTime, &ind.GreenTime},
		}
		for _, f := range fields {
			if !doc.Declares(f.prop) {
				w := Warning{Individual: ind.Name, Property: f.prop}
				warnings = append(warnings, w)
				rec.RecordStoreWarning(f.prop)
				logger.Info("Warning: "+w.String(), "intersection", c.ID)
				continue
			}
			v := f.value
			*f.dst = &v
		}
	}
	return warnings
}

// Persist writes the controllers back into doc, stamps it with runID and
// saves it to path.
func Persist(ctx context.Context, path string, doc *store.Document, controllers []*agent.Controller, rec metrics.Recorder, runID string) ([]Warning, error) {
	warnings := WriteBack(ctx, doc, controllers, rec)
	doc.Meta = store.Meta{RunID: runID, SavedAt: time.Now().UTC()}
	if err := store.Save(path, doc); err != nil {
		return warnings, err
	}
	logr.FromContextOrDiscard(ctx).V(logutil.DEFAULT).Info("Store saved", "path", path, "runID", runID, "warnings", len(warnings))
	return warnings, nil
}
