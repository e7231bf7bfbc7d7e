package indicator

import (
	"encoding/json"
	"math"
)

// Ring is a fixed-capacity window over the most recent samples.
// The zero value has capacity 0. Copies share the backing array, use Clone
// to detach one.
type Ring struct {
	buf  []float64
	head int // position of the oldest element
	size int
}

func NewRing(capacity int) Ring {
	if capacity < 0 {
		capacity = 0
	}
	return Ring{buf: make([]float64, capacity)}
}

// RingOf returns a full ring holding a copy of values, oldest first.
func RingOf(values ...float64) Ring {
	buf := make([]float64, len(values))
	copy(buf, values)
	return Ring{buf: buf, size: len(values)}
}

func (r *Ring) Cap() int { return len(r.buf) }

func (r *Ring) Len() int { return r.size }

func (r *Ring) Full() bool { return r.size == len(r.buf) }

// Push appends v. When the ring is full the oldest value is dropped and returned.
func (r *Ring) Push(v float64) (evicted float64, ok bool) {
	n := len(r.buf)
	if n == 0 {
		return v, true
	}

	if r.size < n {
		r.buf[(r.head+r.size)%n] = v
		r.size++
		return 0, false
	}

	evicted = r.buf[r.head]
	r.buf[r.head] = v
	r.head = (r.head + 1) % n
	return evicted, true
}

// At returns the i-th element, 0 is the oldest.
func (r *Ring) At(i int) float64 {
	if i < 0 || i >= r.size {
		panic("indicator: ring index out of range")
	}
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *Ring) Oldest() float64 { return r.At(0) }

func (r *Ring) Newest() float64 { return r.At(r.size - 1) }

// Values returns the elements oldest first.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.size)
	for i := range out {
		out[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	return out
}

func (r *Ring) Clone() Ring {
	buf := make([]float64, len(r.buf))
	copy(buf, r.buf)
	return Ring{buf: buf, head: r.head, size: r.size}
}

// Max and Min scan the whole window.
func (r *Ring) Max() float64 {
	m := math.Inf(-1)
	for i := 0; i < r.size; i++ {
		if v := r.At(i); v > m {
			m = v
		}
	}
	return m
}

func (r *Ring) Min() float64 {
	m := math.Inf(1)
	for i := 0; i < r.size; i++ {
		if v := r.At(i); v < m {
			m = v
		}
	}
	return m
}

// firstNonFinite returns the position of the first NaN/Inf element, or -1.
func (r *Ring) firstNonFinite() int {
	for i := 0; i < r.size; i++ {
		if !isFinite(r.At(i)) {
			return i
		}
	}
	return -1
}

// MarshalJSON encodes the window as an array, oldest first.
func (r Ring) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Values())
}

// UnmarshalJSON restores a full ring from an oldest-first array.
func (r *Ring) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*r = RingOf(values...)
	return nil
}
