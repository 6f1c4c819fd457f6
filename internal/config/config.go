package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultForce    = 60.0
	DefaultDt       = 1.0 / 60.0
	DefaultDuration = 10.0
	DefaultSpeed    = 25.0

	// Force slider bounds from the configuration surface; the kernel itself
	// never guards magnitude.
	MinForce = 0.0
	MaxForce = 200.0
)

type Config struct {
	Organ    string      `yaml:"organ"`
	Mode     string      `yaml:"mode"`
	Rule     string      `yaml:"rule"`
	Falloff  string      `yaml:"falloff"`
	Force    float64     `yaml:"force"`
	Dt       float64     `yaml:"dt"`
	Duration float64     `yaml:"duration"`
	Recovery float64     `yaml:"recovery,omitempty"`
	Damping  float64     `yaml:"damping,omitempty"`
	Mesh     MeshConfig  `yaml:"mesh"`
	Probe    ProbeConfig `yaml:"probe"`
}

type MeshConfig struct {
	Source   string  `yaml:"source"` // ellipsoid, cylinder, stl
	Path     string  `yaml:"path,omitempty"`
	Rings    int     `yaml:"rings,omitempty"`
	Segments int     `yaml:"segments,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`
	Height   float64 `yaml:"height,omitempty"`
	Res      int     `yaml:"res,omitempty"`
}

type ProbeConfig struct {
	Path   string    `yaml:"path"` // approach, orbit
	Kind   string    `yaml:"kind"` // surface, volumetric
	Speed  float64   `yaml:"speed"`
	Start  []float64 `yaml:"start,flow"`
	Target []float64 `yaml:"target,flow"`
	Hold   float64   `yaml:"hold,omitempty"`
	Orbit  float64   `yaml:"orbit_radius,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Organ:    "liver",
		Mode:     "hard",
		Rule:     "radial",
		Falloff:  "cubic",
		Force:    DefaultForce,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Mesh:     MeshConfig{Source: "ellipsoid", Rings: 24, Segments: 32},
		Probe: ProbeConfig{
			Path:   "approach",
			Kind:   "volumetric",
			Speed:  DefaultSpeed,
			Start:  []float64{0, -10, 0},
			Target: []float64{0, 0, 0},
			Hold:   2.0,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges the rest of the system assumes.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.Force < MinForce || c.Force > MaxForce {
		return fmt.Errorf("force %f outside [%v, %v]", c.Force, MinForce, MaxForce)
	}
	switch c.Mesh.Source {
	case "ellipsoid", "cylinder":
	case "stl":
		if c.Mesh.Path == "" {
			return fmt.Errorf("stl mesh source needs a path")
		}
	default:
		return fmt.Errorf("unknown mesh source: %s", c.Mesh.Source)
	}
	return nil
}

// ClampForce bounds the magnitude to the slider range.
func ClampForce(f float64) float64 {
	if f < MinForce {
		return MinForce
	}
	if f > MaxForce {
		return MaxForce
	}
	return f
}
