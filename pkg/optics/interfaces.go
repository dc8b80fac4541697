package optics

import (
	"errors"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

var (
	// ErrNoIntercept reports that a ray missed an element's physical surface.
	ErrNoIntercept = errors.New("ray has no intercept with element")
	// ErrTotalInternalReflection reports that refraction is forbidden at the incidence angle.
	ErrTotalInternalReflection = errors.New("total internal reflection")
	// ErrInvalidIndex is returned when a refractive index is not positive.
	ErrInvalidIndex = errors.New("refractive index must be > 0")
	// ErrInvalidAperture is returned when an aperture radius is not positive.
	ErrInvalidAperture = errors.New("aperture radius must be > 0")
)

// Element is a surface in a sequential optical system. Elements hold only
// configuration, so one element may propagate many rays concurrently as
// long as each ray is owned by a single goroutine.
type Element interface {
	// PropagateRay advances the ray to this element, mutating it in place.
	// Geometric failures terminate the ray and are reported in the Result.
	PropagateRay(ray *core.Ray) Result
	// Z0 returns the element's position on the optical axis
	Z0() float64
	// Name returns a short human readable description
	Name() string
}

// Compile time checks that every surface variant implements Element
var (
	_ Element = (*SphericalRefraction)(nil)
	_ Element = (*PlaneRefraction)(nil)
	_ Element = (*OutputPlane)(nil)
)

// Status is the outcome of propagating one ray through one element
type Status int

const (
	// Advanced means the ray reached the element and continues from it
	Advanced Status = iota
	// Skipped means the ray was already terminated and was left untouched
	Skipped
	// NoIntercept means the ray missed the surface and has been terminated
	NoIntercept
	// TotalInternalReflection means refraction failed and the ray has been terminated
	TotalInternalReflection
)

func (s Status) String() string {
	switch s {
	case Advanced:
		return "advanced"
	case Skipped:
		return "skipped"
	case NoIntercept:
		return "no-intercept"
	case TotalInternalReflection:
		return "total-internal-reflection"
	default:
		return "unknown"
	}
}

// Result is returned by Element.PropagateRay
type Result struct {
	Status   Status
	Vertices []core.Vec3 // ray history after propagation
}

// Terminated reports whether this propagation stopped the ray
func (r Result) Terminated() bool {
	return r.Status == NoIntercept || r.Status == TotalInternalReflection
}

// Err returns the sentinel error matching a terminating status, or nil
func (r Result) Err() error {
	switch r.Status {
	case NoIntercept:
		return ErrNoIntercept
	case TotalInternalReflection:
		return ErrTotalInternalReflection
	default:
		return nil
	}
}

// TIRPolicy selects what a refracting surface records on total internal reflection
type TIRPolicy int

const (
	// TIRRecord terminates the ray and appends the intercept with the
	// unrefracted incoming direction, so the last vertex is the point of failure.
	TIRRecord TIRPolicy = iota
	// TIRStrict terminates the ray without appending anything.
	TIRStrict
)

func skipped(ray *core.Ray) Result {
	return Result{Status: Skipped, Vertices: ray.Vertices()}
}

func missed(ray *core.Ray) Result {
	ray.Terminate()
	return Result{Status: NoIntercept, Vertices: ray.Vertices()}
}

func validateMedia(n1, n2, apertureRadius float64) error {
	if !(n1 > 0) || !(n2 > 0) {
		return ErrInvalidIndex
	}
	if !(apertureRadius > 0) {
		return ErrInvalidAperture
	}
	return nil
}
