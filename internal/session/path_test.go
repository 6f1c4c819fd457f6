package session

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/config"
)

func approxVec(t *testing.T, got, want r3.Vec, tol float64) {
	t.Helper()
	if r3.Norm(r3.Sub(got, want)) > tol {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApproachPhases(t *testing.T) {
	a := &Approach{
		Start:  r3.Vec{Y: -10},
		Target: r3.Vec{},
		Speed:  25,
		Hold:   0.5,
	}
	// Travel time is 0.4s each way.

	s := a.At(0)
	approxVec(t, s.Pos, r3.Vec{Y: -10}, 1e-12)
	if !s.Active || !s.HasNormal {
		t.Fatal("probe should be active with a heading at t=0")
	}
	approxVec(t, s.Normal, r3.Vec{Y: 1}, 1e-12)

	s = a.At(0.2)
	approxVec(t, s.Pos, r3.Vec{Y: -5}, 1e-9)

	s = a.At(0.6) // holding at target
	approxVec(t, s.Pos, r3.Vec{}, 1e-9)
	if !s.Active {
		t.Fatal("probe should be active during hold")
	}

	s = a.At(1.1) // retreating, 0.2s back out
	approxVec(t, s.Pos, r3.Vec{Y: -5}, 1e-9)

	s = a.At(5)
	if s.Active {
		t.Fatal("probe should be inactive after retreat")
	}
	approxVec(t, s.Pos, r3.Vec{Y: -10}, 1e-12)
}

func TestApproachDegenerate(t *testing.T) {
	a := &Approach{Start: r3.Vec{X: 1}, Target: r3.Vec{X: 1}, Speed: 25, Hold: 1}
	s := a.At(0.5)
	approxVec(t, s.Pos, r3.Vec{X: 1}, 1e-12)
	if !s.Active {
		t.Fatal("coincident approach should stay active through hold")
	}
	if s = a.At(2); s.Active {
		t.Fatal("coincident approach should deactivate after hold")
	}
}

func TestOrbitStaysOnCircle(t *testing.T) {
	o := &Orbit{Center: r3.Vec{Z: 2}, Radius: 6.5, Speed: 25}
	for _, tt := range []float64{0, 0.3, 1.7, 4.2} {
		s := o.At(tt)
		if !s.Active {
			t.Fatalf("orbit inactive at t=%v", tt)
		}
		r := r3.Norm(r3.Sub(s.Pos, o.Center))
		if math.Abs(r-6.5) > 1e-9 {
			t.Fatalf("orbit radius %v at t=%v, want 6.5", r, tt)
		}
		if !s.HasNormal {
			t.Fatalf("orbit sample missing inward normal at t=%v", tt)
		}
		approxVec(t, s.Normal, r3.Unit(r3.Sub(o.Center, s.Pos)), 1e-9)
	}
}

func TestPathFromConfig(t *testing.T) {
	p, err := PathFromConfig(config.ProbeConfig{
		Path:   "approach",
		Speed:  25,
		Start:  []float64{0, -10, 0},
		Target: []float64{0, 0, 0},
		Hold:   1,
	})
	if err != nil {
		t.Fatalf("approach: %v", err)
	}
	if _, ok := p.(*Approach); !ok {
		t.Fatalf("want *Approach, got %T", p)
	}

	p, err = PathFromConfig(config.ProbeConfig{
		Path:   "orbit",
		Speed:  25,
		Target: []float64{0, 0, 0},
		Orbit:  6.5,
	})
	if err != nil {
		t.Fatalf("orbit: %v", err)
	}
	if _, ok := p.(*Orbit); !ok {
		t.Fatalf("want *Orbit, got %T", p)
	}

	if _, err := PathFromConfig(config.ProbeConfig{Path: "spiral", Target: []float64{0, 0, 0}}); err == nil {
		t.Fatal("unknown path should error")
	}
	if _, err := PathFromConfig(config.ProbeConfig{Path: "approach", Start: []float64{1}, Target: []float64{0, 0, 0}}); err == nil {
		t.Fatal("short start vector should error")
	}
}
