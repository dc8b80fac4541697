package tracer

import "github.com/df07/go-optical-raytracer/pkg/optics"

// TraceStats counts how a batch of rays left the system
type TraceStats struct {
	TotalRays               int // Total number of rays traced
	Advanced                int // Rays that passed every element
	NoIntercept             int // Rays that missed a surface
	TotalInternalReflection int // Rays stopped by total internal reflection
	Skipped                 int // Rays that were already terminated on entry
}

// Add records one ray outcome
func (s *TraceStats) Add(outcome optics.Outcome) {
	s.TotalRays++
	switch outcome.Status {
	case optics.Advanced:
		s.Advanced++
	case optics.NoIntercept:
		s.NoIntercept++
	case optics.TotalInternalReflection:
		s.TotalInternalReflection++
	case optics.Skipped:
		s.Skipped++
	}
}

// Merge adds the counts of other into s
func (s *TraceStats) Merge(other TraceStats) {
	s.TotalRays += other.TotalRays
	s.Advanced += other.Advanced
	s.NoIntercept += other.NoIntercept
	s.TotalInternalReflection += other.TotalInternalReflection
	s.Skipped += other.Skipped
}

// Terminated returns the number of rays stopped inside the system
func (s TraceStats) Terminated() int {
	return s.NoIntercept + s.TotalInternalReflection
}

// SurvivalRate returns the fraction of rays that passed every element
func (s TraceStats) SurvivalRate() float64 {
	if s.TotalRays == 0 {
		return 0
	}
	return float64(s.Advanced) / float64(s.TotalRays)
}
