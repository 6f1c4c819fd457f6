// Package metrics provides per-frame observers that summarise a
// deformation run: peak displacement, kinetic energy, contact time
// and settle time.
package metrics

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Frame is one observed step of a running session.
type Frame struct {
	T         float64
	Dt        float64
	Contact   bool
	Positions []r3.Vec
	Rest      []r3.Vec
	Velocity  []r3.Vec
}

// Metric accumulates a scalar over a sequence of frames.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Kinetic returns the total kinetic energy for unit-mass vertices.
func Kinetic(vel []r3.Vec) float64 {
	sum := 0.0
	for _, v := range vel {
		sum += 0.5 * r3.Dot(v, v)
	}
	return sum
}

// MaxFrameDisplacement returns the largest vertex displacement in f.
func MaxFrameDisplacement(f Frame) float64 {
	m := 0.0
	for i := range f.Positions {
		if d := r3.Norm(r3.Sub(f.Positions[i], f.Rest[i])); d > m {
			m = d
		}
	}
	return m
}

// MaxDisplacement tracks the peak vertex displacement seen so far.
type MaxDisplacement struct {
	peak float64
}

func NewMaxDisplacement() *MaxDisplacement { return &MaxDisplacement{} }

func (m *MaxDisplacement) Name() string { return "max_displacement" }

func (m *MaxDisplacement) Observe(f Frame) {
	if d := MaxFrameDisplacement(f); d > m.peak {
		m.peak = d
	}
}

func (m *MaxDisplacement) Value() float64 { return m.peak }
func (m *MaxDisplacement) Reset()         { m.peak = 0 }

// MeanKineticEnergy averages total kinetic energy across frames.
type MeanKineticEnergy struct {
	sum float64
	n   int
}

func NewMeanKineticEnergy() *MeanKineticEnergy { return &MeanKineticEnergy{} }

func (m *MeanKineticEnergy) Name() string { return "mean_kinetic_energy" }

func (m *MeanKineticEnergy) Observe(f Frame) {
	m.sum += Kinetic(f.Velocity)
	m.n++
}

func (m *MeanKineticEnergy) Value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}

func (m *MeanKineticEnergy) Reset() { m.sum, m.n = 0, 0 }

// ContactTime accumulates the total simulated time spent in contact.
type ContactTime struct {
	total float64
}

func NewContactTime() *ContactTime { return &ContactTime{} }

func (c *ContactTime) Name() string { return "contact_time" }

func (c *ContactTime) Observe(f Frame) {
	if f.Contact {
		c.total += f.Dt
	}
}

func (c *ContactTime) Value() float64 { return c.total }
func (c *ContactTime) Reset()         { c.total = 0 }

// SettleTime records the last time the peak displacement exceeded a
// threshold. A run that ends quiet settled at that time.
type SettleTime struct {
	Threshold float64
	last      float64
}

func NewSettleTime(threshold float64) *SettleTime {
	return &SettleTime{Threshold: threshold}
}

func (s *SettleTime) Name() string { return "settle_time" }

func (s *SettleTime) Observe(f Frame) {
	if MaxFrameDisplacement(f) > s.Threshold {
		s.last = f.T
	}
}

func (s *SettleTime) Value() float64 { return s.last }
func (s *SettleTime) Reset()         { s.last = 0 }

// Standard returns the default observer set for a session run.
func Standard() []Metric {
	return []Metric{
		NewMaxDisplacement(),
		NewMeanKineticEnergy(),
		NewContactTime(),
		NewSettleTime(1e-3),
	}
}
