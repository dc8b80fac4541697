package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	ray, err := NewRay(NewVec3(1, 1, 0), NewVec3(0, 0, 3))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ray.Direction() != NewVec3(0, 0, 1) {
		t.Errorf("Expected direction [0 0 1], got %v", ray.Direction())
	}
	if ray.Position() != NewVec3(1, 1, 0) {
		t.Errorf("Expected position [1 1 0], got %v", ray.Position())
	}
	vertices := ray.Vertices()
	if len(vertices) != 1 || vertices[0] != NewVec3(1, 1, 0) {
		t.Errorf("Expected history to start at the initial position, got %v", vertices)
	}
	if ray.IsTerminated() {
		t.Error("New ray should not be terminated")
	}
}

func TestNewRay_ZeroDirection(t *testing.T) {
	if _, err := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 0)); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Expected ErrZeroVector, got %v", err)
	}
}

func TestNewRayFromSlices(t *testing.T) {
	tests := []struct {
		name      string
		position  []float64
		direction []float64
		wantErr   bool
	}{
		{"valid", []float64{0, 0, 0}, []float64{0, 0, 1}, false},
		{"4-component position", []float64{5, 5, 4, 5}, []float64{4, 8, 9}, true},
		{"2-component direction", []float64{0, 0, 0}, []float64{0, 1}, true},
		{"empty position", nil, []float64{0, 0, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray, err := NewRayFromSlices(tt.position, tt.direction)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimension) {
					t.Errorf("Expected ErrInvalidDimension, got %v", err)
				}
				if ray != nil {
					t.Errorf("Expected nil ray, got %v", ray)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
		})
	}
}

func TestRay_AppendKeepsUnitDirectionAndGrowsHistory(t *testing.T) {
	ray, _ := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	steps := []struct {
		position  Vec3
		direction Vec3
	}{
		{NewVec3(1, 1, 1), NewVec3(5, 6, 3)},
		{NewVec3(2, 2, 2), NewVec3(8, 5, 4)},
		{NewVec3(2, 2, 7), NewVec3(0, 0, 0.001)},
	}

	for i, step := range steps {
		if err := ray.Append(step.position, step.direction); err != nil {
			t.Fatalf("Append %d: unexpected error: %v", i, err)
		}
		if ray.Len() != i+2 {
			t.Errorf("Append %d: expected %d vertices, got %d", i, i+2, ray.Len())
		}
		if math.Abs(ray.Direction().Length()-1) > 1e-12 {
			t.Errorf("Append %d: direction not unit: %v", i, ray.Direction())
		}
		if ray.Position() != step.position {
			t.Errorf("Append %d: expected position %v, got %v", i, step.position, ray.Position())
		}
	}

	last := ray.Vertices()[ray.Len()-1]
	if last != NewVec3(2, 2, 7) {
		t.Errorf("Expected last vertex [2 2 7], got %v", last)
	}
}

func TestRay_AppendSlicesRejectsBadDimensions(t *testing.T) {
	ray, _ := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	if err := ray.AppendSlices([]float64{1, 2}, []float64{0, 0, 1}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension for position, got %v", err)
	}
	if err := ray.AppendSlices([]float64{1, 2, 3}, []float64{0, 0, 1, 0}); !errors.Is(err, ErrInvalidDimension) {
		t.Errorf("Expected ErrInvalidDimension for direction, got %v", err)
	}
	if ray.Len() != 1 {
		t.Errorf("Failed appends must not touch history, got %d vertices", ray.Len())
	}
}

func TestRay_VerticesIsACopy(t *testing.T) {
	ray, _ := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	vertices := ray.Vertices()
	vertices[0] = NewVec3(9, 9, 9)

	if ray.Vertices()[0] != NewVec3(0, 0, 0) {
		t.Error("Mutating the returned slice changed the ray history")
	}
}

func TestRay_Terminate(t *testing.T) {
	ray, _ := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))
	ray.Terminate()
	ray.Terminate()
	if !ray.IsTerminated() {
		t.Error("Expected ray to be terminated")
	}
}
