package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func frame(t, dt float64, contact bool, pos, rest, vel []r3.Vec) Frame {
	return Frame{T: t, Dt: dt, Contact: contact, Positions: pos, Rest: rest, Velocity: vel}
}

func TestKinetic(t *testing.T) {
	vel := []r3.Vec{{X: 2}, {Y: 0, Z: 0}, {Z: -4}}
	got := Kinetic(vel)
	want := 0.5*4 + 0 + 0.5*16
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Kinetic = %v, want %v", got, want)
	}
}

func TestMaxDisplacementPeak(t *testing.T) {
	rest := []r3.Vec{{}, {X: 1}}
	m := NewMaxDisplacement()

	m.Observe(frame(0, 0.01, false, []r3.Vec{{Z: 0.5}, {X: 1}}, rest, nil))
	m.Observe(frame(0.01, 0.01, false, []r3.Vec{{Z: 2}, {X: 1}}, rest, nil))
	m.Observe(frame(0.02, 0.01, false, []r3.Vec{{}, {X: 1}}, rest, nil))

	if math.Abs(m.Value()-2) > 1e-12 {
		t.Fatalf("peak = %v, want 2", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Fatalf("after Reset peak = %v, want 0", m.Value())
	}
}

func TestMeanKineticEnergy(t *testing.T) {
	m := NewMeanKineticEnergy()
	if m.Value() != 0 {
		t.Fatalf("empty mean = %v, want 0", m.Value())
	}

	m.Observe(frame(0, 0.01, false, nil, nil, []r3.Vec{{X: 2}}))
	m.Observe(frame(0.01, 0.01, false, nil, nil, []r3.Vec{}))

	if math.Abs(m.Value()-1) > 1e-12 {
		t.Fatalf("mean = %v, want 1", m.Value())
	}
}

func TestContactTime(t *testing.T) {
	c := NewContactTime()
	c.Observe(frame(0, 0.02, true, nil, nil, nil))
	c.Observe(frame(0.02, 0.02, false, nil, nil, nil))
	c.Observe(frame(0.04, 0.02, true, nil, nil, nil))

	if math.Abs(c.Value()-0.04) > 1e-12 {
		t.Fatalf("contact time = %v, want 0.04", c.Value())
	}
}

func TestSettleTime(t *testing.T) {
	rest := []r3.Vec{{}}
	s := NewSettleTime(0.1)

	s.Observe(frame(0, 0.01, false, []r3.Vec{{Z: 1}}, rest, nil))
	s.Observe(frame(1, 0.01, false, []r3.Vec{{Z: 0.5}}, rest, nil))
	s.Observe(frame(2, 0.01, false, []r3.Vec{{Z: 0.01}}, rest, nil))

	if math.Abs(s.Value()-1) > 1e-12 {
		t.Fatalf("settle time = %v, want 1", s.Value())
	}
}

func TestStandardNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard() {
		if seen[m.Name()] {
			t.Fatalf("duplicate metric name %q", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"max_displacement", "mean_kinetic_energy", "contact_time", "settle_time"} {
		if !seen[name] {
			t.Fatalf("Standard missing %q", name)
		}
	}
}
