package score

import "math"

// Stats is a mergeable partial aggregate over a set of observations.
// It carries raw power sums so that any two disjoint partials combine
// with Merge into exactly the aggregate over the union, in any order.
// Derived statistics (mean through kurtosis) are computed on demand.
type Stats struct {
	Count    int64
	Sum      float64
	SumSq    float64
	SumCube  float64
	SumQuart float64
	Min      float64
	Max      float64
}

// Observe folds a single value into the partial state.
func (s *Stats) Observe(v float64) {
	if s.Count == 0 {
		s.Min = v
		s.Max = v
	} else {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	s.SumCube += v * v * v
	s.SumQuart += v * v * v * v
}

// Merge combines another partial state into this one. Merge is
// commutative and associative, so folds may arrive in any order and
// from any number of concurrent workers.
func (s *Stats) Merge(other Stats) {
	if other.Count == 0 {
		return
	}
	if s.Count == 0 {
		*s = other
		return
	}
	s.Min = math.Min(s.Min, other.Min)
	s.Max = math.Max(s.Max, other.Max)
	s.Count += other.Count
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.SumCube += other.SumCube
	s.SumQuart += other.SumQuart
}

func (s Stats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the population variance.
func (s Stats) Variance() float64 {
	if s.Count == 0 {
		return 0
	}
	n := float64(s.Count)
	m := s.Sum / n
	v := s.SumSq/n - m*m
	if v < 0 {
		// floating point cancellation on near-constant inputs
		return 0
	}
	return v
}

func (s Stats) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// Skewness returns the population skewness, 0 for degenerate inputs.
func (s Stats) Skewness() float64 {
	if s.Count == 0 {
		return 0
	}
	n := float64(s.Count)
	m := s.Sum / n
	m2 := s.Variance()
	if m2 == 0 {
		return 0
	}
	m3 := s.SumCube/n - 3*m*s.SumSq/n + 2*m*m*m
	return m3 / math.Pow(m2, 1.5)
}

// Kurtosis returns the population kurtosis (not excess), 0 for
// degenerate inputs.
func (s Stats) Kurtosis() float64 {
	if s.Count == 0 {
		return 0
	}
	n := float64(s.Count)
	m := s.Sum / n
	m2 := s.Variance()
	if m2 == 0 {
		return 0
	}
	m4 := s.SumQuart/n - 4*m*s.SumCube/n + 6*m*m*s.SumSq/n - 3*m*m*m*m
	return m4 / (m2 * m2)
}
