package beam

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

var axis = core.NewVec3(0, 0, 1)

func TestConcentricRings_Count(t *testing.T) {
	tests := []struct {
		k        int
		expected int
	}{
		{0, 1},
		{1, 7},
		{2, 19},
		{5, 91},
		{10, 331},
	}

	for _, tt := range tests {
		rays, err := ConcentricRings(tt.k, 5, 0, axis)
		if err != nil {
			t.Fatalf("k=%d: unexpected error: %v", tt.k, err)
		}
		if len(rays) != tt.expected || RingCount(tt.k) != tt.expected {
			t.Errorf("k=%d: expected %d rays, got %d (RingCount %d)", tt.k, tt.expected, len(rays), RingCount(tt.k))
		}
	}
}

func TestConcentricRings_Layout(t *testing.T) {
	rays, err := ConcentricRings(3, 6, -5, axis)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if rays[0].Position() != core.NewVec3(0, 0, -5) {
		t.Errorf("Expected axial ray first, got %v", rays[0].Position())
	}

	// ring i has 6i rays at radius 2i
	counts := map[int]int{}
	for _, r := range rays[1:] {
		p := r.Position()
		if p.Z != -5 {
			t.Errorf("Ray off the start plane: %v", p)
		}
		radius := math.Sqrt(p.RadialSquared())
		ring := int(math.Round(radius / 2))
		if math.Abs(radius-2*float64(ring)) > 1e-9 {
			t.Errorf("Ray not on a ring: radius %f", radius)
		}
		counts[ring]++
		if r.Direction() != axis {
			t.Errorf("Expected collimated rays, got direction %v", r.Direction())
		}
	}
	for ring := 1; ring <= 3; ring++ {
		if counts[ring] != 6*ring {
			t.Errorf("Ring %d: expected %d rays, got %d", ring, 6*ring, counts[ring])
		}
	}
}

func TestConcentricRings_Validation(t *testing.T) {
	if _, err := ConcentricRings(-1, 5, 0, axis); !errors.Is(err, ErrInvalidRings) {
		t.Errorf("Expected ErrInvalidRings, got %v", err)
	}
	if _, err := ConcentricRings(2, 0, 0, axis); !errors.Is(err, ErrInvalidRadius) {
		t.Errorf("Expected ErrInvalidRadius, got %v", err)
	}
	if _, err := ConcentricRings(2, 5, 0, core.Vec3{}); !errors.Is(err, core.ErrZeroVector) {
		t.Errorf("Expected ErrZeroVector, got %v", err)
	}
	if _, err := ConcentricRings(2_000_000_000, 5, 0, axis); !errors.Is(err, ErrTooManyRays) {
		t.Errorf("Expected ErrTooManyRays, got %v", err)
	}
}

func TestBundleSize(t *testing.T) {
	testCases := []struct {
		name     string
		counts   []int
		numRadii int
		want     int
		target   error
	}{
		{"collimated layout", []int{3, 10, 20, 30, 40, 50}, 6, 153 * 6, nil},
		{"no radii", []int{5}, 0, 0, nil},
		{"zero count", []int{4, 0}, 2, 0, ErrInvalidCount},
		{"product overflows", []int{math.MaxInt / 2}, 3, 0, ErrTooManyRays},
		{"sum overflows", []int{math.MaxInt / 2, math.MaxInt / 2, 2}, 1, 0, ErrTooManyRays},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BundleSize(tc.counts, tc.numRadii)
			if tc.target != nil {
				if !errors.Is(err, tc.target) {
					t.Errorf("Expected %v, got %v", tc.target, err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("BundleSize() = %d, %v; want %d", got, err, tc.want)
			}
		})
	}
}

func TestCircle(t *testing.T) {
	rays, err := Circle(5, 2, 0, axis)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rays) != 5 {
		t.Fatalf("Expected 5 rays, got %d", len(rays))
	}
	for _, r := range rays {
		if math.Abs(math.Sqrt(r.Position().RadialSquared())-2) > 1e-12 {
			t.Errorf("Ray not on radius 2: %v", r.Position())
		}
	}
	// linspace includes both endpoints
	if !rays[0].Position().ApproxEqual(rays[4].Position(), 1e-12) {
		t.Errorf("Expected first and last rays to coincide: %v %v", rays[0].Position(), rays[4].Position())
	}

	if _, err := Circle(0, 2, 0, axis); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
}

func TestBundle(t *testing.T) {
	counts := []int{3, 10, 20}
	radii := Linspace(1, 5, 3)
	rays, err := Bundle(counts, radii, 0, axis)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if want := (3 + 10 + 20) * 3; len(rays) != want {
		t.Errorf("Expected %d rays, got %d", want, len(rays))
	}

	if _, err := Bundle([]int{3, 0}, radii, 0, axis); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(1, 5, 6)
	want := []float64{1, 1.8, 2.6, 3.4, 4.2, 5}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("Linspace[%d]: expected %f, got %f", i, want[i], got[i])
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("Expected [3], got %v", got)
	}
	if got := Linspace(0, 1, 0); got != nil {
		t.Errorf("Expected nil, got %v", got)
	}
}
