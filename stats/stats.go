// Package stats keeps running summary statistics without storing
// samples, using Welford's online algorithm.
package stats

import "math"

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates one measured quantity across solve attempts.
type Statistic struct {
	iterations int
	last       float64
	min, max   float64

	mean float64
	m2   float64
}

func (s *Statistic) Push(val float64) {
	s.iterations++
	s.last = val
	if s.iterations == 1 {
		s.min, s.max = val, val
	} else {
		s.min = math.Min(s.min, val)
		s.max = math.Max(s.max, val)
	}
	delta := val - s.mean
	s.mean += delta / float64(s.iterations)
	s.m2 += delta * (val - s.mean)
}

func (s *Statistic) Mean() float64 {
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.iterations <= 1 {
		return 0.0
	}
	return s.m2 / float64(s.iterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError returns the standard error of the mean.
func (s *Statistic) StandardError() float64 {
	if s.iterations == 0 {
		return 0.0
	}
	return math.Sqrt(s.Variance() / float64(s.iterations))
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Min() float64 {
	return s.min
}

func (s *Statistic) Max() float64 {
	return s.max
}

func (s *Statistic) Iterations() int {
	return s.iterations
}
