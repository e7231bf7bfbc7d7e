package floats

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Slice is the series type used for indicator inputs and outputs.
type Slice []float64

func New(a ...float64) Slice {
	return Slice(a)
}

// NaNs returns a slice of length n filled with NaN.
func NaNs(n int) Slice {
	s := make(Slice, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

func (s *Slice) Push(v float64) {
	*s = append(*s, v)
}

func (s *Slice) Append(vs ...float64) {
	*s = append(*s, vs...)
}

func (s Slice) Length() int {
	return len(s)
}

// Last returns the i-th value counting back from the newest one, 0 is the newest.
func (s Slice) Last(i int) float64 {
	length := len(s)
	if i < 0 || length-1-i < 0 {
		return 0.0
	}
	return s[length-1-i]
}

// Truncate keeps the newest size elements
func (s Slice) Truncate(size int) Slice {
	if size < 0 || len(s) <= size {
		return s
	}

	return s[len(s)-size:]
}

// Tail returns a copy of the newest size elements
func (s Slice) Tail(size int) Slice {
	length := len(s)
	if length <= size {
		win := make(Slice, length)
		copy(win, s)
		return win
	}

	win := make(Slice, size)
	copy(win, s[length-size:])
	return win
}

func (s Slice) Clone() Slice {
	if s == nil {
		return nil
	}
	c := make(Slice, len(s))
	copy(c, s)
	return c
}

func (s Slice) Sub(b Slice) (c Slice) {
	for i := 0; i < len(s) && i < len(b); i++ {
		c = append(c, s[i]-b[i])
	}
	return c
}

func (s Slice) MulScalar(x float64) Slice {
	c := make(Slice, len(s))
	for i, v := range s {
		c[i] = v * x
	}
	return c
}

func (s Slice) Sum() float64 {
	return floats.Sum(s)
}

func (s Slice) Mean() float64 {
	if len(s) == 0 {
		return 0.0
	}
	return s.Sum() / float64(len(s))
}

func (s Slice) Max() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return floats.Max(s)
}

func (s Slice) Min() float64 {
	if len(s) == 0 {
		return math.NaN()
	}
	return floats.Min(s)
}

// FirstValid returns the index of the first non-NaN value, or -1.
func (s Slice) FirstValid() int {
	for i, v := range s {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}

// Valid returns the values after the NaN prefix.
func (s Slice) Valid() Slice {
	i := s.FirstValid()
	if i < 0 {
		return Slice{}
	}
	return s[i:]
}

// EqualNaN reports whether a and b are equal element-wise, treating NaN == NaN.
func EqualNaN(a, b Slice) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MaxAbsDiff returns the largest absolute difference of the finite pairs of a and b,
// and the index where it occurs. NaN positions must line up, otherwise the diff is +Inf.
func MaxAbsDiff(a, b Slice) (float64, int) {
	if len(a) != len(b) {
		return math.Inf(1), -1
	}

	maxDiff, at := 0.0, -1
	for i := range a {
		an, bn := math.IsNaN(a[i]), math.IsNaN(b[i])
		if an && bn {
			continue
		}
		if an != bn {
			return math.Inf(1), i
		}
		if d := math.Abs(a[i] - b[i]); d > maxDiff || at < 0 {
			maxDiff, at = d, i
		}
	}
	return maxDiff, at
}
