package session

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/metrics"
	"github.com/san-kum/deformsim/internal/solver"
	"github.com/san-kum/deformsim/internal/tissue"
)

// Session drives an engine along a scripted probe path.
type Session struct {
	engine  *solver.Engine
	path    ProbePath
	kind    tissue.ProbeKind
	force   float64
	metrics []metrics.Metric
}

// Result is the per-frame trace and summary of one run.
type Result struct {
	Times      []float64
	Contacts   []bool
	MaxDisp    []float64
	ProbePos   []r3.Vec
	StepsTaken int
	Metrics    map[string]float64
}

func New(engine *solver.Engine, path ProbePath, kind tissue.ProbeKind, force float64) *Session {
	return &Session{engine: engine, path: path, kind: kind, force: force}
}

func (s *Session) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

// Run steps the engine for duration seconds at dt, sampling the path
// each frame. Cancellation returns the partial result with ctx.Err().
func (s *Session) Run(ctx context.Context, dt, duration float64) (*Result, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %f", duration)
	}
	dt = solver.ClampDt(dt)

	steps := int(duration / dt)
	result := &Result{
		Times:    make([]float64, 0, steps),
		Contacts: make([]bool, 0, steps),
		MaxDisp:  make([]float64, 0, steps),
		ProbePos: make([]r3.Vec, 0, steps),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		sample := s.path.At(t)
		it := tissue.Interaction{
			ProbePos:  sample.Pos,
			Normal:    sample.Normal,
			HasNormal: sample.HasNormal,
			Kind:      s.kind,
			Active:    sample.Active,
			Force:     s.force,
		}
		if !sample.Active {
			it = tissue.Inactive()
		}

		touched, err := s.engine.Step(dt, it)
		if err != nil {
			s.finish(result)
			return result, err
		}

		t += dt
		result.StepsTaken++
		result.Times = append(result.Times, t)
		result.Contacts = append(result.Contacts, touched)
		result.MaxDisp = append(result.MaxDisp, s.engine.MaxDisplacement())
		result.ProbePos = append(result.ProbePos, sample.Pos)

		frame := metrics.Frame{
			T:         t,
			Dt:        dt,
			Contact:   touched,
			Positions: s.engine.Positions(),
			Rest:      s.engine.Rest(),
			Velocity:  s.engine.Velocities(),
		}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
	}

	s.finish(result)
	return result, nil
}

func (s *Session) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
