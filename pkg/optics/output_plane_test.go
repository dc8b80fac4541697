package optics

import (
	"testing"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

func TestOutputPlane_PassThrough(t *testing.T) {
	out := NewOutputPlane(100)
	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(0.1, 0.1, 1))
	direction := ray.Direction()

	result := out.PropagateRay(ray)
	if result.Status != Advanced {
		t.Fatalf("Expected advanced, got %v", result.Status)
	}
	if !ray.Position().ApproxEqual(core.NewVec3(10, 10, 100), 1e-9) {
		t.Errorf("Expected vertex [10 10 100], got %v", ray.Position())
	}
	if ray.Direction() != direction {
		t.Errorf("Output plane must not change direction: %v -> %v", direction, ray.Direction())
	}
}

func TestOutputPlane_HasNoAperture(t *testing.T) {
	out := NewOutputPlane(100)
	ray := mustRay(t, core.NewVec3(1e6, -1e6, 0), core.NewVec3(0, 0, 1))

	if result := out.PropagateRay(ray); result.Status != Advanced {
		t.Fatalf("Expected advanced far off axis, got %v", result.Status)
	}
	if ray.Position() != core.NewVec3(1e6, -1e6, 100) {
		t.Errorf("Expected vertex [1e6 -1e6 100], got %v", ray.Position())
	}
}

func TestOutputPlane_LeavesTerminatedRayUnchanged(t *testing.T) {
	out := NewOutputPlane(100)
	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	_ = ray.Append(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, 1))
	ray.Terminate()

	result := out.PropagateRay(ray)
	if result.Status != Skipped {
		t.Errorf("Expected skipped, got %v", result.Status)
	}
	if ray.Len() != 2 || ray.Position() != core.NewVec3(0, 0, 5) {
		t.Errorf("Terminated ray was mutated: %v", ray.Vertices())
	}
}

func TestOutputPlane_ParallelRay(t *testing.T) {
	out := NewOutputPlane(100)
	ray := mustRay(t, core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))

	if result := out.PropagateRay(ray); result.Status != NoIntercept {
		t.Errorf("Expected no-intercept for a ray parallel to the plane, got %v", result.Status)
	}
	if !ray.IsTerminated() {
		t.Error("Expected ray to be terminated")
	}
}
