// Package report renders simulator state as the human-readable lines shown
// by the CLI and the console.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/ardalan-sia/signal-sim/pkg/agent"
)

// Alert is raised when two adjacent intersections are both congested.
type Alert struct {
	From int
	To   int
}

// Tick is everything one simulation tick produced.
type Tick struct {
	Number   int
	Statuses []agent.Status
	Alerts   []Alert
}

// HighTraffic returns the statuses flagged as high traffic.
func (t *Tick) HighTraffic() []agent.Status {
	return lo.Filter(t.Statuses, func(s agent.Status, _ int) bool { return s.HighTraffic })
}

// Congested reports whether the tick raised any coordination alert.
func (t *Tick) Congested() bool { return len(t.Alerts) > 0 }

var (
	statusColor = color.New(color.FgGreen)
	alertColor  = color.New(color.FgRed, color.Bold)
	noticeColor = color.New(color.FgYellow)
)

// SetColor turns coloured output on or off for every writer.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// StateLine describes an intersection for the display action.
func StateLine(s agent.Status) string {
	return fmt.Sprintf("Intersection %d - Traffic Density: %d, Green Time: %d seconds", s.ID, s.Density, s.GreenTime)
}

// TickLine describes an intersection after a tick.
func TickLine(s agent.Status) string {
	return fmt.Sprintf("Intersection %d: Green light for %d seconds (Traffic: %d vehicles).", s.ID, s.GreenTime, s.Density)
}

// HighTrafficLine flags an intersection whose green time is above the high traffic mark.
func HighTrafficLine(s agent.Status) string {
	return fmt.Sprintf("!!! HIGH TRAFFIC ALERT at Intersection %d !!!", s.ID)
}

// AlertLine announces two adjacent intersections coordinating.
func AlertLine(a Alert) string {
	return fmt.Sprintf("!!! CONGESTION ALERT: Intersection %d coordinating with %d to avoid congestion !!!", a.From, a.To)
}

// WriteState writes one line per intersection describing its current state.
func WriteState(w io.Writer, statuses []agent.Status) error {
	for _, s := range statuses {
		if _, err := fmt.Fprintln(w, StateLine(s)); err != nil {
			return err
		}
	}
	return nil
}

// WriteTick writes the tick's per-intersection lines, high traffic flags
// inline, followed by the coordination alerts.
func WriteTick(w io.Writer, t *Tick) error {
	for _, s := range t.Statuses {
		if _, err := statusColor.Fprintln(w, TickLine(s)); err != nil {
			return err
		}
		if s.HighTraffic {
			if _, err := alertColor.Fprintln(w, HighTrafficLine(s)); err != nil {
				return err
			}
		}
	}
	return WriteAlerts(w, t.Alerts)
}

// WriteAlerts writes one line per coordination alert.
func WriteAlerts(w io.Writer, alerts []Alert) error {
	for _, a := range alerts {
		if _, err := alertColor.Fprintln(w, AlertLine(a)); err != nil {
			return err
		}
	}
	return nil
}

// Notice writes a status message such as progress or completion.
func Notice(w io.Writer, msg string) error {
	_, err := noticeColor.Fprintln(w, msg)
	return err
}
