// Package contact turns the per-frame probe snapshot into per-vertex
// external forces. The resolver is stateless: configuration (falloff shape
// and push-direction rule) is fixed at construction, everything
// frame-varying arrives through the interaction snapshot.
package contact

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/deformsim/internal/tissue"
)

// Force-magnitude multipliers per direction rule. The rest-normal variant
// runs hotter because the Gaussian peak is narrower than the cubic one.
const (
	contactForceScale = 1.2
	radialForceScale  = 1.2
	normalForceScale  = 1.5
)

// Resolver computes external force contributions for one configured
// deployment variant.
type Resolver struct {
	Rule    tissue.DirectionRule
	Falloff tissue.Falloff
}

// ForLiver is the classic variant: cubic falloff, radial repel from the
// volumetric probe, contact-normal push for surface picks.
func ForLiver() Resolver {
	return Resolver{Rule: tissue.Radial, Falloff: tissue.Cubic}
}

// ForNose is the rest-normal variant: Gaussian falloff pushing each vertex
// inward along its own rest normal.
func ForNose() Resolver {
	return Resolver{Rule: tissue.RestNormal, Falloff: tissue.Gaussian}
}

// Radius returns the interaction radius for the mode and probe kind. The
// volumetric probe gets a pad to compensate for its visual size.
func Radius(mode tissue.StiffnessMode, kind tissue.ProbeKind) float64 {
	radius := mode.Params().BaseRadius
	if kind == tissue.VolumetricProbe {
		radius += tissue.VolumetricRadiusPad
	}
	return radius
}

// Influence maps distance to a [0,1] weight: 1 at the contact point, 0 at
// and beyond the radius. Distance exactly at the radius counts as outside.
func (r Resolver) Influence(d, radius float64) float64 {
	if d >= radius || radius <= 0 {
		return 0
	}
	if r.Falloff == tissue.Gaussian {
		sigma := radius / 3.0
		return math.Exp(-(d * d) / (2 * sigma * sigma))
	}
	f := 1.0 - d/radius
	return f * f * f
}

// VertexForce resolves the external force on one vertex, identified by its
// rest position and rest normal, and reports whether the vertex is inside
// the interaction radius. Outside-radius is the dominant case and returns
// before any falloff math.
func (r Resolver) VertexForce(rest, restNormal r3.Vec, it tissue.Interaction, mode tissue.StiffnessMode) (r3.Vec, bool) {
	if !it.Active {
		return r3.Vec{}, false
	}

	radius := Radius(mode, it.Kind)
	delta := r3.Sub(rest, it.ProbePos)
	d := r3.Norm(delta)
	if d >= radius {
		return r3.Vec{}, false
	}

	if it.Force == 0 {
		return r3.Vec{}, true
	}

	influence := r.Influence(d, radius)

	switch r.Rule {
	case tissue.RestNormal:
		return r3.Scale(-it.Force*normalForceScale*influence, restNormal), true

	case tissue.Radial:
		if d < 1e-12 {
			// Vertex coincides with the probe center; no defined direction.
			return r3.Vec{}, true
		}
		return r3.Scale(it.Force*radialForceScale*influence, r3.Unit(delta)), true

	default: // tissue.ContactNormal
		if !it.HasNormal {
			return r3.Vec{}, true
		}
		return r3.Scale(-it.Force*contactForceScale*influence, it.Normal), true
	}
}
