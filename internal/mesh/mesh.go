// Package mesh owns the rest-pose snapshot and the live vertex buffers the
// solver mutates. It has no behavior beyond storage, validation, and
// restore-to-rest; deformation lives in the solver package.
package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/tissue"
)

// State holds four parallel vertex arrays: immutable rest positions and
// normals captured at load, and live positions/velocities the solver
// advances every step. All four are always the same length; the length only
// changes through Load, which replaces the arrays wholesale.
type State struct {
	rest        []r3.Vec
	restNormals []r3.Vec
	pos         []r3.Vec
	vel         []r3.Vec
}

func New() *State {
	return &State{}
}

// Load replaces all vertex arrays. Rest arrays copy the input, live
// positions copy rest, velocities start at zero. On invalid input the
// previous state is left untouched.
func (s *State) Load(positions, normals []r3.Vec) error {
	if len(positions) == 0 || len(positions) != len(normals) {
		return tissue.ErrInvalidMesh
	}

	n := len(positions)
	s.rest = make([]r3.Vec, n)
	s.restNormals = make([]r3.Vec, n)
	s.pos = make([]r3.Vec, n)
	s.vel = make([]r3.Vec, n)

	copy(s.rest, positions)
	copy(s.restNormals, normals)
	copy(s.pos, positions)

	return nil
}

// RestoreToRest snaps every live position back to its rest position and
// zeroes velocities. Idempotent; safe to call on an already-rested mesh.
func (s *State) RestoreToRest() {
	for i := range s.pos {
		s.pos[i] = s.rest[i]
		s.vel[i] = r3.Vec{}
	}
}

func (s *State) VertexCount() int { return len(s.rest) }

// Positions exposes the live position array. Callers treat it as read-only
// and must not touch it while a step is in flight.
func (s *State) Positions() []r3.Vec { return s.pos }

// Rest and RestNormals expose the immutable rest arrays.
func (s *State) Rest() []r3.Vec        { return s.rest }
func (s *State) RestNormals() []r3.Vec { return s.restNormals }

// Velocities exposes the live velocity array for the solver.
func (s *State) Velocities() []r3.Vec { return s.vel }

// MaxDisplacement returns the largest distance any vertex has moved from
// its rest position.
func (s *State) MaxDisplacement() float64 {
	max := 0.0
	for i := range s.pos {
		if d := r3.Norm(r3.Sub(s.pos[i], s.rest[i])); d > max {
			max = d
		}
	}
	return max
}
