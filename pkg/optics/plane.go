package optics

import (
	"fmt"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// PlaneRefraction is a flat interface perpendicular to the optical axis
type PlaneRefraction struct {
	z0             float64
	n1, n2         float64
	apertureRadius float64
	tir            TIRPolicy
}

// NewPlaneRefraction creates a flat refracting surface at z0
func NewPlaneRefraction(z0, n1, n2, apertureRadius float64) (*PlaneRefraction, error) {
	if err := validateMedia(n1, n2, apertureRadius); err != nil {
		return nil, fmt.Errorf("plane surface at z=%g: %w", z0, err)
	}
	return &PlaneRefraction{z0: z0, n1: n1, n2: n2, apertureRadius: apertureRadius}, nil
}

// WithTIRPolicy returns a copy of the surface using the given TIR policy
func (p *PlaneRefraction) WithTIRPolicy(policy TIRPolicy) *PlaneRefraction {
	c := *p
	c.tir = policy
	return &c
}

func (p *PlaneRefraction) Z0() float64             { return p.z0 }
func (p *PlaneRefraction) N1() float64             { return p.n1 }
func (p *PlaneRefraction) N2() float64             { return p.n2 }
func (p *PlaneRefraction) ApertureRadius() float64 { return p.apertureRadius }
func (p *PlaneRefraction) TIRPolicy() TIRPolicy    { return p.tir }

func (p *PlaneRefraction) Name() string {
	return fmt.Sprintf("plane(z0=%g, n=%g->%g, a=%g)", p.z0, p.n1, p.n2, p.apertureRadius)
}

// Intercept returns the point where the ray crosses the plane inside the aperture
func (p *PlaneRefraction) Intercept(ray *core.Ray) (core.Vec3, bool) {
	point, ok := interceptPlane(ray.Position(), ray.Direction(), p.z0)
	if !ok || point.RadialSquared() > p.apertureRadius*p.apertureRadius {
		return core.Vec3{}, false
	}
	return point, true
}

// PropagateRay moves the ray to the plane and refracts it
func (p *PlaneRefraction) PropagateRay(ray *core.Ray) Result {
	if ray.IsTerminated() {
		return skipped(ray)
	}

	point, ok := p.Intercept(ray)
	if !ok {
		return missed(ray)
	}

	return refractAt(ray, point, axisNormal(ray.Direction()), p.n1, p.n2, p.tir)
}

// interceptPlane solves position + L·direction = z0 on the z component.
// Rays parallel to the plane, or with the plane behind them, do not intercept.
func interceptPlane(position, direction core.Vec3, z0 float64) (core.Vec3, bool) {
	if direction.Z == 0 {
		return core.Vec3{}, false
	}
	length := (z0 - position.Z) / direction.Z
	if length < 0 {
		return core.Vec3{}, false
	}
	return position.Add(direction.Multiply(length)), true
}
