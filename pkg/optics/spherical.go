package optics

import (
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// SphericalRefraction is a spherical cap refracting from index N1 to N2.
// The cap's vertex sits on the optical axis at Z0; its center of curvature
// is at Z0 + 1/Curvature. A curvature of zero gives a flat interface.
type SphericalRefraction struct {
	z0             float64
	curvature      float64
	n1, n2         float64
	apertureRadius float64

	radius float64
	center core.Vec3
	tir    TIRPolicy
}

// NewSphericalRefraction creates a spherical refracting surface
func NewSphericalRefraction(z0, curvature, n1, n2, apertureRadius float64) (*SphericalRefraction, error) {
	if err := validateMedia(n1, n2, apertureRadius); err != nil {
		return nil, fmt.Errorf("spherical surface at z=%g: %w", z0, err)
	}

	s := &SphericalRefraction{
		z0:             z0,
		curvature:      curvature,
		n1:             n1,
		n2:             n2,
		apertureRadius: apertureRadius,
	}
	if curvature == 0 {
		s.radius = math.Inf(1)
		s.center = core.NewVec3(0, 0, z0)
	} else {
		s.radius = 1 / curvature
		s.center = core.NewVec3(0, 0, z0+s.radius)
	}
	return s, nil
}

// WithTIRPolicy returns a copy of the surface using the given TIR policy
func (s *SphericalRefraction) WithTIRPolicy(policy TIRPolicy) *SphericalRefraction {
	c := *s
	c.tir = policy
	return &c
}

func (s *SphericalRefraction) Z0() float64             { return s.z0 }
func (s *SphericalRefraction) Curvature() float64      { return s.curvature }
func (s *SphericalRefraction) N1() float64             { return s.n1 }
func (s *SphericalRefraction) N2() float64             { return s.n2 }
func (s *SphericalRefraction) ApertureRadius() float64 { return s.apertureRadius }
func (s *SphericalRefraction) Radius() float64         { return s.radius }
func (s *SphericalRefraction) Center() core.Vec3       { return s.center }
func (s *SphericalRefraction) TIRPolicy() TIRPolicy    { return s.tir }

func (s *SphericalRefraction) Name() string {
	return fmt.Sprintf("spherical(z0=%g, c=%g, n=%g->%g, a=%g)", s.z0, s.curvature, s.n1, s.n2, s.apertureRadius)
}

func (s *SphericalRefraction) flat() bool { return s.curvature == 0 }

// Intercept returns the point where the ray crosses the physical cap.
// The two line-sphere roots are tried in a fixed order, far root first;
// a root is accepted when it lies inside the aperture and between the
// vertex and the center of curvature.
func (s *SphericalRefraction) Intercept(ray *core.Ray) (core.Vec3, bool) {
	if s.flat() {
		point, ok := interceptPlane(ray.Position(), ray.Direction(), s.z0)
		if !ok || point.RadialSquared() > s.apertureRadius*s.apertureRadius {
			return core.Vec3{}, false
		}
		return point, true
	}

	p, k := ray.Position(), ray.Direction()
	r := p.Subtract(s.center)
	rk := r.Dot(k)

	discriminant := rk*rk - (r.LengthSquared() - s.radius*s.radius)
	if discriminant < 0 {
		return core.Vec3{}, false
	}
	sqrtD := math.Sqrt(discriminant)

	for _, length := range [2]float64{-rk + sqrtD, -rk - sqrtD} {
		// the surface must be ahead of the ray
		if length < 0 {
			continue
		}
		candidate := p.Add(k.Multiply(length))
		if s.onCap(candidate) {
			return candidate, true
		}
	}
	return core.Vec3{}, false
}

// onCap checks lateral confinement and that z lies between the vertex and
// the center of curvature, whichever side of the vertex the center is on
func (s *SphericalRefraction) onCap(point core.Vec3) bool {
	if point.RadialSquared() > s.apertureRadius*s.apertureRadius {
		return false
	}
	lo, hi := math.Min(s.z0, s.center.Z), math.Max(s.z0, s.center.Z)
	return lo <= point.Z && point.Z <= hi
}

// Normal returns the unit surface normal at point, pointing from the
// point toward the center of curvature and flipped if needed so that it
// faces along the direction of travel
func (s *SphericalRefraction) Normal(point, direction core.Vec3) core.Vec3 {
	if s.flat() {
		return axisNormal(direction)
	}
	normal := s.center.Subtract(point).Normalize()
	if normal.Dot(direction) < 0 {
		normal = normal.Negate()
	}
	return normal
}

// PropagateRay moves the ray to the surface and refracts it
func (s *SphericalRefraction) PropagateRay(ray *core.Ray) Result {
	if ray.IsTerminated() {
		return skipped(ray)
	}

	point, ok := s.Intercept(ray)
	if !ok {
		return missed(ray)
	}

	return refractAt(ray, point, s.Normal(point, ray.Direction()), s.n1, s.n2, s.tir)
}
