// Package session runs scripted probe passes over a deformation engine
// and collects per-frame traces and summary metrics.
package session

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/config"
)

// Sample is the probe state at one instant of a scripted path.
type Sample struct {
	Pos       r3.Vec
	Normal    r3.Vec
	HasNormal bool
	Active    bool
}

// ProbePath yields the probe sample at simulated time t.
type ProbePath interface {
	At(t float64) Sample
}

// Approach moves the probe from Start straight toward Target at Speed,
// holds at the target for Hold seconds, then retreats along the same
// line. After the retreat the probe is inactive.
type Approach struct {
	Start  r3.Vec
	Target r3.Vec
	Speed  float64
	Hold   float64
}

func (a *Approach) At(t float64) Sample {
	delta := r3.Sub(a.Target, a.Start)
	dist := r3.Norm(delta)
	if dist < 1e-12 || a.Speed <= 0 {
		return Sample{Pos: a.Target, Active: t <= a.Hold}
	}

	dir := r3.Unit(delta)
	travel := dist / a.Speed

	switch {
	case t < travel:
		return Sample{Pos: r3.Add(a.Start, r3.Scale(a.Speed*t, dir)), Normal: dir, HasNormal: true, Active: true}
	case t < travel+a.Hold:
		return Sample{Pos: a.Target, Normal: dir, HasNormal: true, Active: true}
	case t < 2*travel+a.Hold:
		back := t - travel - a.Hold
		return Sample{Pos: r3.Sub(a.Target, r3.Scale(a.Speed*back, dir)), Normal: dir, HasNormal: true, Active: true}
	default:
		return Sample{Pos: a.Start, Active: false}
	}
}

// Orbit circles the probe around Center in the XY plane at Radius, with
// tangential speed Speed. The probe points at the center and stays
// active for the whole run.
type Orbit struct {
	Center r3.Vec
	Radius float64
	Speed  float64
}

func (o *Orbit) At(t float64) Sample {
	omega := 0.0
	if o.Radius > 0 {
		omega = o.Speed / o.Radius
	}
	pos := r3.Add(o.Center, r3.Vec{
		X: o.Radius * math.Cos(omega*t),
		Y: o.Radius * math.Sin(omega*t),
	})
	inward := r3.Sub(o.Center, pos)
	s := Sample{Pos: pos, Active: true}
	if r3.Norm(inward) > 1e-12 {
		s.Normal = r3.Unit(inward)
		s.HasNormal = true
	}
	return s
}

func vecFromSlice(v []float64) (r3.Vec, error) {
	if len(v) != 3 {
		return r3.Vec{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

// PathFromConfig builds the scripted path described by pc.
func PathFromConfig(pc config.ProbeConfig) (ProbePath, error) {
	target, err := vecFromSlice(pc.Target)
	if err != nil {
		return nil, fmt.Errorf("probe target: %w", err)
	}

	switch pc.Path {
	case "approach":
		start, err := vecFromSlice(pc.Start)
		if err != nil {
			return nil, fmt.Errorf("probe start: %w", err)
		}
		return &Approach{Start: start, Target: target, Speed: pc.Speed, Hold: pc.Hold}, nil
	case "orbit":
		return &Orbit{Center: target, Radius: pc.Orbit, Speed: pc.Speed}, nil
	default:
		return nil, fmt.Errorf("unknown probe path %q", pc.Path)
	}
}
