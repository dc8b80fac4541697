package analysis

import (
	"errors"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// ErrNoFocus is returned when rays never converge on the optical axis
var ErrNoFocus = errors.New("rays do not cross the optical axis")

// SingleSurfaceFocus returns the paraxial focus of one spherical refracting
// surface: z0 + n2 / ((n2 − n1)·c)
func SingleSurfaceFocus(z0, curvature, n1, n2 float64) (float64, error) {
	power := (n2 - n1) * curvature
	if power == 0 {
		return 0, ErrNoFocus
	}
	return z0 + n2/power, nil
}

// AxisCrossing returns the z at which the ray's current line passes closest
// to the optical axis. Rays travelling parallel to the axis never get closer
// and report false.
func AxisCrossing(ray *core.Ray) (float64, bool) {
	p, k := ray.Position(), ray.Direction()
	lateral := k.X*k.X + k.Y*k.Y
	if lateral == 0 {
		return 0, false
	}
	t := -(p.X*k.X + p.Y*k.Y) / lateral
	return p.Z + t*k.Z, true
}

// ParaxialFocus estimates the focus as the mean axis crossing of the
// surviving rays. Trace a bundle close to the axis first.
func ParaxialFocus(rays []*core.Ray) (float64, error) {
	sum, n := 0.0, 0
	for _, r := range rays {
		if r.IsTerminated() {
			continue
		}
		if z, ok := AxisCrossing(r); ok {
			sum += z
			n++
		}
	}
	if n == 0 {
		return 0, ErrNoFocus
	}
	return sum / float64(n), nil
}
