package solver

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/mesh"
	"github.com/san-kum/deformsim/internal/tissue"
)

// Engine is the per-frame facade over mesh state, contact resolution, and
// integration. The mutex is held only across a step or a mesh swap, never
// across frames, so mesh replacement cannot race an in-flight step.
type Engine struct {
	mu       sync.Mutex
	mesh     *mesh.State
	integ    *Integrator
	resolver contact.Resolver
	mode     tissue.StiffnessMode
	params   Params
	loaded   bool
}

func NewEngine(res contact.Resolver, mode tissue.StiffnessMode) *Engine {
	return &Engine{
		mesh:     mesh.New(),
		integ:    New(),
		resolver: res,
		mode:     mode,
		params:   ParamsFor(mode),
	}
}

// LoadMesh replaces the mesh wholesale. On invalid input the previous mesh
// survives untouched.
func (e *Engine) LoadMesh(positions, normals []r3.Vec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.mesh.Load(positions, normals); err != nil {
		return err
	}
	e.loaded = true
	return nil
}

// ResetToRest snaps the mesh back to its rest pose and zeroes velocities.
func (e *Engine) ResetToRest() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mesh.RestoreToRest()
}

// Step advances the simulation by dt and reports whether the probe touched
// any vertex. dt must be positive and pre-clamped to MaxDt by the caller.
func (e *Engine) Step(dt float64, it tissue.Interaction) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return false, tissue.ErrNoMesh
	}
	if dt <= 0 {
		return false, tissue.ErrInvalidStep
	}

	return e.integ.Step(e.mesh, e.resolver, it, e.mode, e.params, dt), nil
}

// Positions returns the live vertex positions. Read-only from the caller's
// side; valid between steps only.
func (e *Engine) Positions() []r3.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mesh.Positions()
}

// Rest returns the rest pose positions.
func (e *Engine) Rest() []r3.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mesh.Rest()
}

// Velocities returns the live vertex velocities.
func (e *Engine) Velocities() []r3.Vec {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mesh.Velocities()
}

func (e *Engine) VertexCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mesh.VertexCount()
}

// MaxDisplacement reports the current peak deviation from rest.
func (e *Engine) MaxDisplacement() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mesh.MaxDisplacement()
}

// SetStiffness switches the Hard/Soft preset, rederiving spring and
// damping. Takes effect on the next step.
func (e *Engine) SetStiffness(mode tissue.StiffnessMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
	e.params = ParamsFor(mode)
}

// SetParams overrides the derived integration scalars; organ presets that
// pin damping regardless of stiffness use this after SetStiffness.
func (e *Engine) SetParams(p Params) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.params = p
}

func (e *Engine) SetResolver(res contact.Resolver) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolver = res
}

func (e *Engine) Stiffness() tissue.StiffnessMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Engine) Params() Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

func (e *Engine) Resolver() contact.Resolver {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resolver
}
