package optics

import (
	"strings"

	"github.com/df07/go-optical-raytracer/pkg/core"
)

// System is an ordered sequence of elements a ray is pushed through
type System struct {
	elements []Element
}

// NewSystem creates a system from elements in propagation order
func NewSystem(elements ...Element) *System {
	return &System{elements: append([]Element(nil), elements...)}
}

// Elements returns the elements in propagation order
func (s *System) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// Len returns the number of elements
func (s *System) Len() int { return len(s.elements) }

// Detector returns the last element if it is an output plane
func (s *System) Detector() (*OutputPlane, bool) {
	if len(s.elements) == 0 {
		return nil, false
	}
	out, ok := s.elements[len(s.elements)-1].(*OutputPlane)
	return out, ok
}

func (s *System) String() string {
	names := make([]string, len(s.elements))
	for i, e := range s.elements {
		names[i] = e.Name()
	}
	return strings.Join(names, " -> ")
}

// Outcome summarizes one ray's trip through a system
type Outcome struct {
	Status  Status // Advanced if the ray passed every element
	Element int    // index of the element that terminated the ray, -1 otherwise
}

// Err returns the sentinel error for a terminating outcome, or nil
func (o Outcome) Err() error {
	return Result{Status: o.Status}.Err()
}

// Trace propagates the ray through every element in order, stopping at
// the first element that terminates it
func (s *System) Trace(ray *core.Ray) Outcome {
	if ray.IsTerminated() {
		return Outcome{Status: Skipped, Element: -1}
	}
	for i, element := range s.elements {
		result := element.PropagateRay(ray)
		if result.Terminated() {
			return Outcome{Status: result.Status, Element: i}
		}
	}
	return Outcome{Status: Advanced, Element: -1}
}

// TraceAll traces each ray in turn. A terminated ray never stops the batch.
func (s *System) TraceAll(rays []*core.Ray) []Outcome {
	outcomes := make([]Outcome, len(rays))
	for i, ray := range rays {
		outcomes[i] = s.Trace(ray)
	}
	return outcomes
}
