package core

import "fmt"

// Ray is a traced line of light: a current position and unit direction,
// the ordered history of every position it has visited, and a one-way
// terminated flag. A Ray must only be mutated by one goroutine at a time.
type Ray struct {
	position   Vec3
	direction  Vec3
	vertices   []Vec3
	terminated bool
}

// NewRay creates a ray at position travelling along direction.
// The direction is normalized; it must be non-zero.
func NewRay(position, direction Vec3) (*Ray, error) {
	if direction.Length() == 0 {
		return nil, ErrZeroVector
	}
	return &Ray{
		position:  position,
		direction: direction.Normalize(),
		vertices:  []Vec3{position},
	}, nil
}

// NewRayFromSlices creates a ray from untyped component slices
func NewRayFromSlices(position, direction []float64) (*Ray, error) {
	p, err := FromSlice(position)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	k, err := FromSlice(direction)
	if err != nil {
		return nil, fmt.Errorf("direction: %w", err)
	}
	return NewRay(p, k)
}

// Position returns the current position
func (r *Ray) Position() Vec3 { return r.position }

// Direction returns the current unit direction
func (r *Ray) Direction() Vec3 { return r.direction }

// Append moves the ray to a new position with a new direction and records
// the position in its history. It does not check IsTerminated; callers guard that.
func (r *Ray) Append(position, direction Vec3) error {
	if direction.Length() == 0 {
		return ErrZeroVector
	}
	r.position = position
	r.direction = direction.Normalize()
	r.vertices = append(r.vertices, position)
	return nil
}

// AppendSlices is Append for untyped component slices
func (r *Ray) AppendSlices(position, direction []float64) error {
	p, err := FromSlice(position)
	if err != nil {
		return fmt.Errorf("position: %w", err)
	}
	k, err := FromSlice(direction)
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	return r.Append(p, k)
}

// Vertices returns a copy of every position the ray has visited, starting
// with its initial position
func (r *Ray) Vertices() []Vec3 {
	out := make([]Vec3, len(r.vertices))
	copy(out, r.vertices)
	return out
}

// Len returns the number of recorded vertices
func (r *Ray) Len() int { return len(r.vertices) }

// Terminate marks the ray as stopped. There is no way back.
func (r *Ray) Terminate() { r.terminated = true }

// IsTerminated reports whether the ray has been stopped by an element
func (r *Ray) IsTerminated() bool { return r.terminated }

func (r *Ray) String() string {
	return fmt.Sprintf("Ray(point=%v, direction=%v)", r.position, r.direction)
}
