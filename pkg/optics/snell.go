package optics

import (
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// Below this length the incident × normal cross product is treated as zero
const degenerateAxis = 1e-12

// Snell refracts a unit incident direction at a surface whose unit normal
// points into the second medium (incident·normal ≥ 0). The refracted
// direction is the normal rotated by the refraction angle in the plane of
// incidence. ok is false on total internal reflection.
func Snell(incident, normal core.Vec3, n1, n2 float64) (refracted core.Vec3, ok bool) {
	cosI := incident.Dot(normal)
	sinI := math.Sqrt(math.Max(0, 1-cosI*cosI))

	// axis of the plane of incidence; at normal incidence no rotation
	// happens, so any axis will do
	axis := incident.Cross(normal)
	if axis.Length() < degenerateAxis {
		axis = core.NewVec3(0, 0, 1)
		sinI = 0
	} else {
		axis = axis.Normalize()
	}

	sinR := sinI * n1 / n2
	if sinR > 1 {
		return core.Vec3{}, false
	}
	thetaR := math.Asin(sinR)

	return core.Rotate(core.RotationMatrix(-thetaR, axis), normal), true
}

// refractAt moves the ray to point and bends it with Snell's law. On total
// internal reflection the ray is terminated according to policy.
func refractAt(ray *core.Ray, point, normal core.Vec3, n1, n2 float64, policy TIRPolicy) Result {
	refracted, ok := Snell(ray.Direction(), normal, n1, n2)
	if !ok {
		ray.Terminate()
		if policy == TIRRecord {
			// direction is already unit length, Append cannot fail
			_ = ray.Append(point, ray.Direction())
		}
		return Result{Status: TotalInternalReflection, Vertices: ray.Vertices()}
	}

	_ = ray.Append(point, refracted)
	return Result{Status: Advanced, Vertices: ray.Vertices()}
}

// axisNormal is the normal of a surface perpendicular to the optical axis,
// oriented along the ray's sense of travel
func axisNormal(direction core.Vec3) core.Vec3 {
	if direction.Z < 0 {
		return core.NewVec3(0, 0, -1)
	}
	return core.NewVec3(0, 0, 1)
}
