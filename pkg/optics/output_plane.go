package optics

import (
	"fmt"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// OutputPlane is a non-refracting detector plane at Z0. It has no aperture:
// every ray that is not parallel to it reaches it.
type OutputPlane struct {
	z0 float64
}

// NewOutputPlane creates a detector plane at z0
func NewOutputPlane(z0 float64) *OutputPlane {
	return &OutputPlane{z0: z0}
}

func (o *OutputPlane) Z0() float64 { return o.z0 }

func (o *OutputPlane) Name() string {
	return fmt.Sprintf("output(z0=%g)", o.z0)
}

// Intercept returns position + L·direction with L = (z0 − z)/k_z.
// Only a ray travelling parallel to the plane fails.
func (o *OutputPlane) Intercept(ray *core.Ray) (core.Vec3, bool) {
	p, k := ray.Position(), ray.Direction()
	if k.Z == 0 {
		return core.Vec3{}, false
	}
	length := (o.z0 - p.Z) / k.Z
	return p.Add(k.Multiply(length)), true
}

// PropagateRay moves the ray to the plane without changing its direction.
// Terminated rays are returned untouched.
func (o *OutputPlane) PropagateRay(ray *core.Ray) Result {
	if ray.IsTerminated() {
		return skipped(ray)
	}

	point, ok := o.Intercept(ray)
	if !ok {
		return missed(ray)
	}

	_ = ray.Append(point, ray.Direction())
	return Result{Status: Advanced, Vertices: ray.Vertices()}
}
