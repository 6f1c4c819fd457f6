package solver

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/contact"
	"github.com/san-kum/deformsim/internal/mesh"
	"github.com/san-kum/deformsim/internal/tissue"
)

// MaxDt bounds the explicit Euler step; frame-time spikes above this blow
// the oscillator up, so callers clamp before stepping.
const MaxDt = 0.05

// ClampDt caps a frame time at MaxDt.
func ClampDt(dt float64) float64 {
	if dt > MaxDt {
		return MaxDt
	}
	return dt
}

// Params are the integration scalars in play for one step. Mass is fixed
// at 1, so these two alone set the response character.
type Params struct {
	SpringK float64
	Damping float64
}

// ParamsFor derives integration params from a stiffness preset.
func ParamsFor(mode tissue.StiffnessMode) Params {
	p := mode.Params()
	return Params{SpringK: p.SpringK(), Damping: p.Damping}
}

// Integrator steps every vertex of a mesh. It keeps no state between calls;
// position and velocity live in the mesh buffers it mutates.
type Integrator struct {
	// MinChunk is the smallest per-worker index range worth a goroutine.
	MinChunk int
}

func New() *Integrator {
	return &Integrator{MinChunk: 1024}
}

// Step advances all vertices by dt and reports whether any vertex was
// inside the probe's interaction radius this frame. The caller must hold
// exclusive access to the mesh for the duration of the call.
func (g *Integrator) Step(ms *mesh.State, res contact.Resolver, it tissue.Interaction, mode tissue.StiffnessMode, p Params, dt float64) bool {
	rest := ms.Rest()
	restNormals := ms.RestNormals()
	pos := ms.Positions()
	vel := ms.Velocities()

	n := len(rest)
	if len(restNormals) != n || len(pos) != n || len(vel) != n {
		panic(tissue.ErrIndexRange)
	}

	return tissue.ParallelReduce(n, g.MinChunk, func(start, end int) bool {
		hit := false
		for i := start; i < end; i++ {
			ext, inRange := res.VertexForce(rest[i], restNormals[i], it, mode)
			if inRange {
				hit = true
			}

			displacement := r3.Sub(pos[i], rest[i])
			spring := r3.Scale(-p.SpringK, displacement)
			damping := r3.Scale(-p.Damping, vel[i])

			// mass = 1, so acceleration is the force sum.
			acc := r3.Add(ext, r3.Add(spring, damping))
			vel[i] = r3.Add(vel[i], r3.Scale(dt, acc))
			pos[i] = r3.Add(pos[i], r3.Scale(dt, vel[i]))
		}
		return hit
	})
}
