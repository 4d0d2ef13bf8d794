package agent

import (
	"github.com/ardalan-sia/signal-sim/pkg/traffic"
)

const (
	MinGreenTime     = 15
	MaxGreenTime     = 60
	DefaultGreenTime = 30
	GreenTimeStep    = 5

	// HighDensity is the reading above which green time grows and
	// neighbours coordinate.
	HighDensity = 30
	// LowDensity is the reading below which green time shrinks.
	LowDensity = 10

	// HighTrafficGreenTime is the green time above which an intersection
	// is flagged as under high traffic.
	HighTrafficGreenTime = 50
)

// Controller models one intersection's traffic light.
type Controller struct {
	ID   int
	Name string

	Density   int
	GreenTime int

	Sensor traffic.Sensor
}

// Status is a point-in-time copy of a controller.
type Status struct {
	ID          int
	Name        string
	Density     int
	GreenTime   int
	HighTraffic bool
}

// New builds a controller from persisted or default values. Green time is
// clamped to [MinGreenTime, MaxGreenTime] and density floored at zero.
func New(id int, name string, density, greenTime int, sensor traffic.Sensor) *Controller {
	return &Controller{
		ID:        id,
		Name:      name,
		Density:   max(density, 0),
		GreenTime: ClampGreenTime(greenTime),
		Sensor:    sensor,
	}
}

// ClampGreenTime bounds g to [MinGreenTime, MaxGreenTime].
func ClampGreenTime(g int) int {
	return min(MaxGreenTime, max(MinGreenTime, g))
}

// SenseTraffic replaces the density with a fresh sensor reading.
func (c *Controller) SenseTraffic() {
	c.Density = max(c.Sensor.Sense(), 0)
}

// AdjustGreenTime lengthens green under heavy traffic and shortens it under
// light traffic.
func (c *Controller) AdjustGreenTime() {
	switch {
	case c.Density > HighDensity:
		c.GreenTime = min(MaxGreenTime, c.GreenTime+GreenTimeStep)
	case c.Density < LowDensity:
		c.GreenTime = max(MinGreenTime, c.GreenTime-GreenTimeStep)
	}
}

// CoordinatesWith reports whether c and neighbor are both above HighDensity.
func (c *Controller) CoordinatesWith(neighbor *Controller) bool {
	if neighbor == nil {
		return false
	}
	return c.Density > HighDensity && neighbor.Density > HighDensity
}

// HighTraffic reports whether green time has grown past HighTrafficGreenTime.
func (c *Controller) HighTraffic() bool { return c.GreenTime > HighTrafficGreenTime }

// Status snapshots the controller for reporting.
func (c *Controller) Status() Status {
	return Status{
		ID:          c.ID,
		Name:        c.Name,
		Density:     c.Density,
		GreenTime:   c.GreenTime,
		HighTraffic: c.HighTraffic(),
	}
}
