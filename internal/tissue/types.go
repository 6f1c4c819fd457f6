package tissue

import "gonum.org/v1/gonum/spatial/r3"

// StiffnessMode selects the spring/damping/radius preset for the tissue.
type StiffnessMode int

const (
	ModeHard StiffnessMode = iota
	ModeSoft
)

func (m StiffnessMode) String() string {
	if m == ModeSoft {
		return "soft"
	}
	return "hard"
}

// ParseMode maps config/CLI spellings to a mode. Unknown input gets hard.
func ParseMode(s string) StiffnessMode {
	if s == "soft" {
		return ModeSoft
	}
	return ModeHard
}

// StiffnessParams are the free scalars a mode selects. SpringK is derived
// as RecoverySpeed * SpringFactor; mass is fixed at 1 and not represented.
type StiffnessParams struct {
	RecoverySpeed float64
	Damping       float64
	BaseRadius    float64
}

const SpringFactor = 5.0

// SpringK returns the restoring spring constant for the preset.
func (p StiffnessParams) SpringK() float64 { return p.RecoverySpeed * SpringFactor }

// Params returns the preset scalars for the mode. Hard tissue recovers fast
// and stops dead; soft tissue jiggles with a wider touch radius.
func (m StiffnessMode) Params() StiffnessParams {
	if m == ModeSoft {
		return StiffnessParams{RecoverySpeed: 2.0, Damping: 3.0, BaseRadius: 4.0}
	}
	return StiffnessParams{RecoverySpeed: 8.0, Damping: 10.0, BaseRadius: 2.0}
}

// ProbeKind distinguishes a ray-cast surface pick from the free-floating
// volumetric cursor. The volumetric probe widens the interaction radius to
// compensate for its own size.
type ProbeKind int

const (
	SurfacePick ProbeKind = iota
	VolumetricProbe
)

// VolumetricRadiusPad is added to the interaction radius for a volumetric probe.
const VolumetricRadiusPad = 1.5

func (k ProbeKind) String() string {
	if k == VolumetricProbe {
		return "volumetric"
	}
	return "surface"
}

// ParseKind maps config/CLI spellings to a probe kind.
func ParseKind(s string) ProbeKind {
	if s == "volumetric" {
		return VolumetricProbe
	}
	return SurfacePick
}

// DirectionRule is the configured push-direction convention. Exactly one
// rule is active per deployment; it is not a per-frame decision.
type DirectionRule int

const (
	// ContactNormal pushes into the surface along the negated pick normal.
	ContactNormal DirectionRule = iota
	// RestNormal pushes each vertex inward along its own negated rest normal.
	RestNormal
	// Radial repels vertices away from the probe center.
	Radial
)

func (r DirectionRule) String() string {
	switch r {
	case RestNormal:
		return "rest_normal"
	case Radial:
		return "radial"
	default:
		return "contact_normal"
	}
}

// ParseRule maps config/CLI spellings to a rule.
func ParseRule(s string) DirectionRule {
	switch s {
	case "rest_normal":
		return RestNormal
	case "radial":
		return Radial
	default:
		return ContactNormal
	}
}

// Falloff is the influence-decay shape inside the interaction radius.
type Falloff int

const (
	Cubic Falloff = iota
	Gaussian
)

func (f Falloff) String() string {
	if f == Gaussian {
		return "gaussian"
	}
	return "cubic"
}

func ParseFalloff(s string) Falloff {
	if s == "gaussian" {
		return Gaussian
	}
	return Cubic
}

// Interaction is the per-frame probe snapshot the caller hands to the
// kernel. The kernel reads it and never retains it.
type Interaction struct {
	ProbePos  r3.Vec
	Normal    r3.Vec
	HasNormal bool
	Kind      ProbeKind
	Active    bool
	Force     float64
}

// Inactive returns the no-interaction snapshot used when the probe has
// withdrawn; only spring and damping act on the mesh.
func Inactive() Interaction {
	return Interaction{}
}
