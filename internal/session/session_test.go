package session

import (
	"context"
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/metrics"
	"github.com/san-kum/deformsim/internal/solver"
	"github.com/san-kum/deformsim/internal/tissue"
)

func testEngine(t *testing.T) *solver.Engine {
	t.Helper()
	eng := solver.NewEngine(contact.ForLiver(), tissue.ModeHard)
	pos := []r3.Vec{{}, {X: 50}}
	normals := []r3.Vec{{Z: 1}, {Z: 1}}
	if err := eng.LoadMesh(pos, normals); err != nil {
		t.Fatalf("LoadMesh: %v", err)
	}
	return eng
}

func TestRunCollectsContactTrace(t *testing.T) {
	eng := testEngine(t)
	path := &Approach{Start: r3.Vec{Y: -10}, Target: r3.Vec{}, Speed: 25, Hold: 0.5}
	s := New(eng, path, tissue.VolumetricProbe, 60)
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	res, err := s.Run(context.Background(), 1.0/60.0, 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.StepsTaken != 120 {
		t.Fatalf("steps = %d, want 120", res.StepsTaken)
	}
	if len(res.Times) != res.StepsTaken || len(res.Contacts) != res.StepsTaken {
		t.Fatalf("trace lengths %d/%d, want %d", len(res.Times), len(res.Contacts), res.StepsTaken)
	}

	touched := 0
	for _, c := range res.Contacts {
		if c {
			touched++
		}
	}
	if touched == 0 {
		t.Fatal("approach pass should touch the mesh")
	}

	if res.Metrics["contact_time"] <= 0 {
		t.Fatalf("contact_time = %v, want > 0", res.Metrics["contact_time"])
	}
	if res.Metrics["max_displacement"] <= 0 {
		t.Fatalf("max_displacement = %v, want > 0", res.Metrics["max_displacement"])
	}
}

func TestRunValidatesArguments(t *testing.T) {
	eng := testEngine(t)
	s := New(eng, &Orbit{Radius: 5, Speed: 25}, tissue.SurfacePick, 60)

	if _, err := s.Run(context.Background(), 0, 1); err == nil {
		t.Fatal("zero dt should error")
	}
	if _, err := s.Run(context.Background(), 0.01, -1); err == nil {
		t.Fatal("negative duration should error")
	}
}

func TestRunCancellation(t *testing.T) {
	eng := testEngine(t)
	s := New(eng, &Orbit{Radius: 5, Speed: 25}, tissue.SurfacePick, 60)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, 0.01, 10)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if res == nil || res.StepsTaken != 0 {
		t.Fatalf("cancelled run should return an empty partial result, got %+v", res)
	}
}

func TestRunWithoutMesh(t *testing.T) {
	eng := solver.NewEngine(contact.ForNose(), tissue.ModeSoft)
	s := New(eng, &Orbit{Radius: 5, Speed: 25}, tissue.SurfacePick, 60)

	_, err := s.Run(context.Background(), 0.01, 1)
	if !errors.Is(err, tissue.ErrNoMesh) {
		t.Fatalf("err = %v, want ErrNoMesh", err)
	}
}
