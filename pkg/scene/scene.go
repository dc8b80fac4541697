package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/beam"
	"github.com/df07/go-optical-raytracer/pkg/core"
	"github.com/df07/go-optical-raytracer/pkg/optics"
)

// Scene contains an optical system and the beam that is traced through it
type Scene struct {
	Name        string
	Description string
	System      *optics.System
	Beam        Beam
}

// Beam describes a collimated input beam. When Counts is set the rays are
// laid out as a Bundle over Radii, otherwise as concentric rings.
type Beam struct {
	Rings     int       `json:"rings,omitempty"`     // Rings around the axial ray
	Radius    float64   `json:"radius,omitempty"`    // Radius of the outermost ring
	Counts    []int     `json:"counts,omitempty"`    // Points per circle (bundle form)
	Radii     []float64 `json:"radii,omitempty"`     // Circle radii (bundle form)
	Z         float64   `json:"z"`                   // Plane the rays start in
	Direction []float64 `json:"direction,omitempty"` // Defaults to +z
}

// direction returns the beam direction, +z when unset
func (b Beam) direction() (core.Vec3, error) {
	if len(b.Direction) == 0 {
		return core.NewVec3(0, 0, 1), nil
	}
	return core.Normalize(b.Direction)
}

// Validate reports a beam that cannot produce rays
func (b Beam) Validate() error {
	if _, err := b.direction(); err != nil {
		return fmt.Errorf("beam direction: %w", err)
	}
	if len(b.Counts) > 0 {
		if len(b.Radii) == 0 {
			return fmt.Errorf("beam has counts but no radii")
		}
		_, err := beam.BundleSize(b.Counts, len(b.Radii))
		return err
	}
	if b.Rings < 0 {
		return beam.ErrInvalidRings
	}
	if b.Rings > beam.MaxRings {
		return fmt.Errorf("%w: %d rings, limit is %d", beam.ErrTooManyRays, b.Rings, beam.MaxRings)
	}
	if b.Rings > 0 && !(b.Radius > 0) {
		return beam.ErrInvalidRadius
	}
	return nil
}

// Rays creates a fresh set of rays for the beam. Every call returns new rays
// so a scene can be traced more than once.
func (b Beam) Rays() ([]*core.Ray, error) {
	dir, err := b.direction()
	if err != nil {
		return nil, fmt.Errorf("beam direction: %w", err)
	}
	if len(b.Counts) > 0 {
		return beam.Bundle(b.Counts, b.Radii, b.Z, dir)
	}
	return beam.ConcentricRings(b.Rings, b.Radius, b.Z, dir)
}

// Size returns the number of rays Rays will produce, saturating at
// math.MaxInt for beams too large to count
func (b Beam) Size() int {
	if len(b.Counts) > 0 {
		n, err := beam.BundleSize(b.Counts, len(b.Radii))
		if err != nil {
			return math.MaxInt
		}
		return n
	}
	if b.Rings > beam.MaxRings {
		return math.MaxInt
	}
	return beam.RingCount(b.Rings)
}

// Detector returns the output plane at the end of the scene's system
func (s *Scene) Detector() (*optics.OutputPlane, bool) {
	return s.System.Detector()
}

// must is used by the built-in scenes, whose parameters are constants
func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
