// Package analysis computes aggregate statistics over traced ray bundles.
// It only reads ray vertex histories and terminated flags.
package analysis

import (
	"errors"
	"math"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// ErrEmptySpot is returned when no ray reached the detector
var ErrEmptySpot = errors.New("no surviving rays in spot")

// Spot is the set of final positions of the rays that were not terminated
type Spot struct {
	Points     []core.Vec3
	Terminated int // rays excluded because they were terminated
}

// SpotOf collects the final positions of every surviving ray
func SpotOf(rays []*core.Ray) Spot {
	var spot Spot
	for _, r := range rays {
		if r.IsTerminated() {
			spot.Terminated++
			continue
		}
		spot.Points = append(spot.Points, r.Position())
	}
	return spot
}

// Centroid returns the mean position of the spot
func (s Spot) Centroid() (core.Vec3, error) {
	if len(s.Points) == 0 {
		return core.Vec3{}, ErrEmptySpot
	}
	var sum core.Vec3
	for _, p := range s.Points {
		sum = sum.Add(p)
	}
	return sum.Multiply(1 / float64(len(s.Points))), nil
}

// RMSRadius returns sqrt(mean(x²+y²)), the RMS lateral distance from the optical axis
func (s Spot) RMSRadius() (float64, error) {
	return rms(s.Points, core.Vec3{})
}

// RMSRadiusAboutCentroid returns the RMS lateral distance from the spot centroid
func (s Spot) RMSRadiusAboutCentroid() (float64, error) {
	c, err := s.Centroid()
	if err != nil {
		return 0, err
	}
	return rms(s.Points, c)
}

// MaxRadius returns the largest lateral distance from the optical axis
func (s Spot) MaxRadius() (float64, error) {
	if len(s.Points) == 0 {
		return 0, ErrEmptySpot
	}
	maxR2 := 0.0
	for _, p := range s.Points {
		maxR2 = math.Max(maxR2, p.RadialSquared())
	}
	return math.Sqrt(maxR2), nil
}

func rms(points []core.Vec3, center core.Vec3) (float64, error) {
	if len(points) == 0 {
		return 0, ErrEmptySpot
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Subtract(center).RadialSquared()
	}
	return math.Sqrt(sum / float64(len(points))), nil
}
