package traffic

import "math/rand/v2"

// SensingRange bounds every density reading taken during a tick.
var SensingRange = Range{Min: 5, Max: 50}

// InitialRange bounds the density given to an intersection that has no
// persisted reading.
var InitialRange = Range{Min: 5, Max: 20}

// Range is an inclusive [Min, Max] vehicle count.
type Range struct {
	Min, Max int
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Sensor yields traffic density readings.
type Sensor interface {
	Sense() int
}

// Uniform draws readings uniformly from a Range. The zero value draws from
// a fixed seed. It is not safe for concurrent use.
type Uniform struct {
	Range Range

	rng *rand.Rand
}

// NewUniform returns a sensor over r seeded with seed.
func NewUniform(r Range, seed uint64) *Uniform {
	if r.Max < r.Min {
		r.Min, r.Max = r.Max, r.Min
	}
	return &Uniform{Range: r, rng: newRand(seed)}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Sense returns the next reading.
func (u *Uniform) Sense() int {
	if u.rng == nil {
		u.rng = newRand(0)
	}
	lo, hi := u.Range.Min, u.Range.Max
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + u.rng.IntN(hi-lo+1)
}

// Scripted replays fixed readings; once exhausted it keeps returning the
// last one. An empty script reads zero.
type Scripted struct {
	readings []int
	next     int
}

// NewScripted returns a sensor that replays readings in order.
func NewScripted(readings ...int) *Scripted {
	return &Scripted{readings: readings}
}

// Sense returns the next scripted reading.
func (s *Scripted) Sense() int {
	if len(s.readings) == 0 {
		return 0
	}
	if s.next >= len(s.readings) {
		return s.readings[len(s.readings)-1]
	}
	v := s.readings[s.next]
	s.next++
	return v
}
