package config

// Presets name the organ variants from the clinical build. The liver pins
// recovery/damping at 8/10 whatever the stiffness mode; the nose derives
// both from the mode. This divergence is kept as-is rather than unified.
var Presets = map[string]map[string]*Config{
	"liver": {
		"poke": {
			Organ: "liver", Mode: "hard", Rule: "contact_normal", Falloff: "cubic",
			Force: 60, Dt: DefaultDt, Duration: 8,
			Recovery: 8, Damping: 10,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "approach", Kind: "surface", Speed: DefaultSpeed,
				Start: []float64{0, -12, 1}, Target: []float64{0, -4.8, 1}, Hold: 2,
			},
		},
		"knead": {
			Organ: "liver", Mode: "hard", Rule: "radial", Falloff: "cubic",
			Force: 60, Dt: DefaultDt, Duration: 12,
			Recovery: 8, Damping: 10,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "orbit", Kind: "volumetric", Speed: DefaultSpeed,
				Target: []float64{0, 0, 0}, Orbit: 6.5,
			},
		},
		"squeeze": {
			Organ: "liver", Mode: "soft", Rule: "radial", Falloff: "cubic",
			Force: 120, Dt: DefaultDt, Duration: 10,
			Recovery: 8, Damping: 10,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "approach", Kind: "volumetric", Speed: DefaultSpeed,
				Start: []float64{0, -14, 0}, Target: []float64{0, -3, 0}, Hold: 4,
			},
		},
	},
	"nose": {
		"pinch": {
			Organ: "nose", Mode: "soft", Rule: "rest_normal", Falloff: "gaussian",
			Force: 60, Dt: DefaultDt, Duration: 10,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "approach", Kind: "volumetric", Speed: DefaultSpeed,
				Start: []float64{0, -12, 0}, Target: []float64{0, -3.5, 0}, Hold: 3,
			},
		},
		"press": {
			Organ: "nose", Mode: "soft", Rule: "rest_normal", Falloff: "gaussian",
			Force: 90, Dt: DefaultDt, Duration: 8,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "approach", Kind: "surface", Speed: DefaultSpeed,
				Start: []float64{0, -10, 2}, Target: []float64{0, -4, 2}, Hold: 2,
			},
		},
		"stiff": {
			Organ: "nose", Mode: "hard", Rule: "rest_normal", Falloff: "gaussian",
			Force: 60, Dt: DefaultDt, Duration: 8,
			Mesh: MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
			Probe: ProbeConfig{
				Path: "orbit", Kind: "volumetric", Speed: DefaultSpeed,
				Target: []float64{0, 0, 0}, Orbit: 5.5,
			},
		},
	},
}

func GetPreset(organ, preset string) *Config {
	organPresets, ok := Presets[organ]
	if !ok {
		return nil
	}
	cfg, ok := organPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(organ string) []string {
	organPresets, ok := Presets[organ]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(organPresets))
	for name := range organPresets {
		names = append(names, name)
	}
	return names
}

func ListOrgans() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
