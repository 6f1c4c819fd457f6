// Package sculpt implements carving a layered cylindrical surface with
// a spherical tool and exporting the result as ASCII PLY.
package sculpt

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/mesh"
)

const (
	// MaxCarveDepth is how far a fully carved vertex sinks below rest.
	MaxCarveDepth = 0.8

	muscleDepth = 0.2
	boneDepth   = 0.6
)

// Layer identifies the anatomical layer exposed at a vertex.
type Layer int

const (
	LayerSkin Layer = iota
	LayerMuscle
	LayerBone
)

func (l Layer) String() string {
	switch l {
	case LayerMuscle:
		return "muscle"
	case LayerBone:
		return "bone"
	default:
		return "skin"
	}
}

// Color returns the display color for the layer.
func (l Layer) Color() [3]uint8 {
	switch l {
	case LayerMuscle:
		return [3]uint8{190, 58, 58}
	case LayerBone:
		return [3]uint8{235, 233, 221}
	default:
		return [3]uint8{232, 190, 172}
	}
}

// Surface is a carvable quad mesh. Depth is the accumulated carve
// fraction per vertex in [0, 1].
type Surface struct {
	Pos     []r3.Vec
	Rest    []r3.Vec
	Normals []r3.Vec
	Faces   [][4]int
	Depth   []float64
}

// NewCylinder builds a carvable cylinder of res x res vertices.
func NewCylinder(radius, height float64, res int) *Surface {
	positions, normals, faces := mesh.Cylinder(radius, height, res)

	pos := make([]r3.Vec, len(positions))
	copy(pos, positions)

	return &Surface{
		Pos:     pos,
		Rest:    positions,
		Normals: normals,
		Faces:   faces,
		Depth:   make([]float64, len(positions)),
	}
}

// Carve sinks every vertex within radius of center along its inward
// normal. Intensity falls off linearly from the tool center and
// accumulates across strokes up to full depth. Returns the number of
// vertices affected by this stroke.
func (s *Surface) Carve(center r3.Vec, radius, strength float64) int {
	if radius <= 0 || strength <= 0 {
		return 0
	}

	affected := 0
	for i := range s.Pos {
		d := r3.Norm(r3.Sub(s.Pos[i], center))
		if d >= radius {
			continue
		}

		intensity := (radius - d) / radius * strength
		s.Depth[i] += intensity
		if s.Depth[i] > 1 {
			s.Depth[i] = 1
		}
		s.Pos[i] = r3.Sub(s.Rest[i], r3.Scale(s.Depth[i]*MaxCarveDepth, s.Normals[i]))
		affected++
	}
	return affected
}

// LayerAt reports the layer exposed at vertex i.
func (s *Surface) LayerAt(i int) Layer {
	switch d := s.Depth[i]; {
	case d >= boneDepth:
		return LayerBone
	case d >= muscleDepth:
		return LayerMuscle
	default:
		return LayerSkin
	}
}

// Colors returns the per-vertex layer colors.
func (s *Surface) Colors() [][3]uint8 {
	colors := make([][3]uint8, len(s.Pos))
	for i := range colors {
		colors[i] = s.LayerAt(i).Color()
	}
	return colors
}

// CarvedFraction reports the share of vertices carved past the skin.
func (s *Surface) CarvedFraction() float64 {
	if len(s.Depth) == 0 {
		return 0
	}
	n := 0
	for _, d := range s.Depth {
		if d >= muscleDepth {
			n++
		}
	}
	return float64(n) / float64(len(s.Depth))
}
