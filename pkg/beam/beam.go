// Package beam builds bundles of rays for tracing through an optical system.
package beam

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// PointsPerRing is the number of rays added on each successive ring of a
// concentric-ring beam: ring i (1-based) carries PointsPerRing·i rays.
const PointsPerRing = 6

// MaxRings bounds the ring count so RingCount cannot overflow an int
const MaxRings = 1 << 20

var (
	ErrInvalidRings  = errors.New("ring count must be >= 0")
	ErrInvalidRadius = errors.New("beam radius must be > 0")
	ErrInvalidCount  = errors.New("points per circle must be >= 1")
	ErrTooManyRays   = errors.New("beam has too many rays")
)

// RingCount returns the number of rays ConcentricRings produces for k rings.
// k must not exceed MaxRings.
func RingCount(k int) int {
	return 3*k*(k+1) + 1
}

// ConcentricRings returns a collimated beam in the plane z: one axial ray
// plus k rings evenly spaced out to maxRadius, ring i carrying 6i rays.
// The result has exactly 3k(k+1)+1 rays.
func ConcentricRings(k int, maxRadius, z float64, direction core.Vec3) ([]*core.Ray, error) {
	if k < 0 {
		return nil, ErrInvalidRings
	}
	if k > MaxRings {
		return nil, fmt.Errorf("%w: %d rings, limit is %d", ErrTooManyRays, k, MaxRings)
	}
	if k > 0 && !(maxRadius > 0) {
		return nil, ErrInvalidRadius
	}

	rays := make([]*core.Ray, 0, RingCount(k))
	axial, err := core.NewRay(core.NewVec3(0, 0, z), direction)
	if err != nil {
		return nil, err
	}
	rays = append(rays, axial)

	for ring := 1; ring <= k; ring++ {
		radius := maxRadius * float64(ring) / float64(k)
		n := PointsPerRing * ring
		for i := 0; i < n; i++ {
			phi := 2 * math.Pi * float64(i) / float64(n)
			ray, err := core.NewRay(core.NewVec3(radius*math.Cos(phi), radius*math.Sin(phi), z), direction)
			if err != nil {
				return nil, err
			}
			rays = append(rays, ray)
		}
	}
	return rays, nil
}

// Circle returns n rays placed on a circle of the given radius in the plane z.
// Angles follow linspace(0, 2π, n), so for n > 1 the first and last ray coincide.
func Circle(n int, radius, z float64, direction core.Vec3) ([]*core.Ray, error) {
	if n < 1 {
		return nil, ErrInvalidCount
	}
	rays := make([]*core.Ray, 0, n)
	for _, phi := range Linspace(0, 2*math.Pi, n) {
		ray, err := core.NewRay(core.NewVec3(radius*math.Cos(phi), radius*math.Sin(phi), z), direction)
		if err != nil {
			return nil, err
		}
		rays = append(rays, ray)
	}
	return rays, nil
}

// Bundle places rays on circles: for each entry of counts, that many
// linspace angles are combined with every radius in radii.
func Bundle(counts []int, radii []float64, z float64, direction core.Vec3) ([]*core.Ray, error) {
	size, err := BundleSize(counts, len(radii))
	if err != nil {
		return nil, err
	}
	rays := make([]*core.Ray, 0, size)
	for _, n := range counts {
		for _, phi := range Linspace(0, 2*math.Pi, n) {
			x, y := math.Cos(phi), math.Sin(phi)
			for _, r := range radii {
				ray, err := core.NewRay(core.NewVec3(r*x, r*y, z), direction)
				if err != nil {
					return nil, err
				}
				rays = append(rays, ray)
			}
		}
	}
	return rays, nil
}

// BundleSize returns the number of rays Bundle produces for counts over
// numRadii circles, or ErrTooManyRays when the total does not fit in an int.
func BundleSize(counts []int, numRadii int) (int, error) {
	size := 0
	for _, n := range counts {
		if n < 1 {
			return 0, fmt.Errorf("%w: got %d", ErrInvalidCount, n)
		}
		if numRadii > 0 && n > (math.MaxInt-size)/numRadii {
			return 0, ErrTooManyRays
		}
		size += n * numRadii
	}
	return size, nil
}

// Linspace returns n evenly spaced values from start to stop inclusive
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
