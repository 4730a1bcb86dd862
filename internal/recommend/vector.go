package recommend

import (
	"fmt"
	"math"
	"sort"
)

// Vector is a sparse row in the corpus term space. Indices are strictly increasing.
type Vector struct {
	Dim     int
	Indices []int
	Values  []float64
}

func NewSparseVector(dim int, indices []int, values []float64) (Vector, error) {
	if len(indices) != len(values) {
		return Vector{}, fmt.Errorf("sparse vector: %d indices but %d values", len(indices), len(values))
	}
	idx := append([]int(nil), indices...)
	val := append([]float64(nil), values...)
	if !sort.IntsAreSorted(idx) {
		sort.Sort(byIndex{idx, val})
	}
	for i, j := range idx {
		if j < 0 || j >= dim {
			return Vector{}, fmt.Errorf("sparse vector: index %d out of range [0,%d)", j, dim)
		}
		if i > 0 && idx[i-1] == j {
			return Vector{}, fmt.Errorf("sparse vector: duplicate index %d", j)
		}
	}
	return Vector{Dim: dim, Indices: idx, Values: val}, nil
}

// DenseVector converts a dense row, dropping zero entries.
func DenseVector(vals []float32) Vector {
	v := Vector{Dim: len(vals)}
	for i, x := range vals {
		if x != 0 {
			v.Indices = append(v.Indices, i)
			v.Values = append(v.Values, float64(x))
		}
	}
	return v
}

func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	var s float64
	for _, x := range v.Values {
		s += x * x
	}
	return math.Sqrt(s)
}

// Dot is a merge join over the two index lists.
func (v Vector) Dot(o Vector) float64 {
	var s float64
	i, j := 0, 0
	for i < len(v.Indices) && j < len(o.Indices) {
		switch {
		case v.Indices[i] == o.Indices[j]:
			s += v.Values[i] * o.Values[j]
			i++
			j++
		case v.Indices[i] < o.Indices[j]:
			i++
		default:
			j++
		}
	}
	return s
}

func (v Vector) normalized() Vector {
	n := v.Norm()
	if n == 0 {
		return v
	}
	out := Vector{Dim: v.Dim, Indices: v.Indices, Values: make([]float64, len(v.Values))}
	for i, x := range v.Values {
		out.Values[i] = x / n
	}
	return out
}

type byIndex struct {
	idx []int
	val []float64
}

func (b byIndex) Len() int           { return len(b.idx) }
func (b byIndex) Less(i, j int) bool { return b.idx[i] < b.idx[j] }
func (b byIndex) Swap(i, j int) {
	b.idx[i], b.idx[j] = b.idx[j], b.idx[i]
	b.val[i], b.val[j] = b.val[j], b.val[i]
}
