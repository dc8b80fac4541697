package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// Element types accepted in a system config
const (
	ElementSpherical = "spherical"
	ElementPlane     = "plane"
	ElementOutput    = "output"
)

var ErrInvalidConfig = errors.New("invalid system config")

// ElementCfg is the JSON form of one optical element
type ElementCfg struct {
	Type      string  `json:"type"`
	Z0        float64 `json:"z0"`
	Curvature float64 `json:"curvature,omitempty"`
	N1        float64 `json:"n1,omitempty"`
	N2        float64 `json:"n2,omitempty"`
	Aperture  float64 `json:"aperture,omitempty"`
	StrictTIR bool    `json:"strictTIR,omitempty"` // terminate without recording the TIR point
}

// Config is the JSON form of a scene
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Elements    []ElementCfg `json:"elements"`
	Beam        Beam         `json:"beam"`
}

// Build validates and constructs the element
func (e ElementCfg) Build() (optics.Element, error) {
	policy := optics.TIRRecord
	if e.StrictTIR {
		policy = optics.TIRStrict
	}

	switch e.Type {
	case ElementSpherical:
		s, err := optics.NewSphericalRefraction(e.Z0, e.Curvature, e.N1, e.N2, e.Aperture)
		if err != nil {
			return nil, err
		}
		return s.WithTIRPolicy(policy), nil
	case ElementPlane:
		p, err := optics.NewPlaneRefraction(e.Z0, e.N1, e.N2, e.Aperture)
		if err != nil {
			return nil, err
		}
		return p.WithTIRPolicy(policy), nil
	case ElementOutput:
		return optics.NewOutputPlane(e.Z0), nil
	default:
		return nil, fmt.Errorf("%w: unknown element type %q", ErrInvalidConfig, e.Type)
	}
}

// Build validates the config and constructs the scene
func (c Config) Build() (*Scene, error) {
	if len(c.Elements) == 0 {
		return nil, fmt.Errorf("%w: config has no elements", ErrInvalidConfig)
	}

	elements := make([]optics.Element, 0, len(c.Elements))
	for i, ec := range c.Elements {
		el, err := ec.Build()
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elements = append(elements, el)
	}

	if err := c.Beam.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	name := c.Name
	if name == "" {
		name = "custom"
	}
	return &Scene{
		Name:        name,
		Description: c.Description,
		System:      optics.NewSystem(elements...),
		Beam:        c.Beam,
	}, nil
}

// ParseConfig decodes a JSON system config
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// LoadConfig reads a JSON system config from disk
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
