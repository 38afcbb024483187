// Package linalg provides the homogeneous affine transform helpers used by
// the sampling grid package. A homogeneous transform is stored as a dense
// D x (D+1) matrix whose left DxD block is the linear part and whose last
// column is the translation. A plain DxD matrix is treated as a linear map
// with zero translation wherever both forms are accepted.
package linalg

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Identity returns the d x d identity matrix.
func Identity(d int) *mat.Dense {
	m := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Diag returns a square matrix with v on its main diagonal.
func Diag(v []float64) *mat.Dense {
	d := len(v)
	m := mat.NewDense(d, d, nil)
	for i, x := range v {
		m.Set(i, i, x)
	}
	return m
}

// Homogeneous combines a DxD linear map and a translation into a D x (D+1)
// homogeneous transform matrix.
func Homogeneous(linear *mat.Dense, offset []float64) *mat.Dense {
	d, _ := linear.Dims()
	m := mat.NewDense(d, d+1, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			m.Set(i, j, linear.At(i, j))
		}
		m.Set(i, d, offset[i])
	}
	return m
}

// Linear returns the DxD linear block of a homogeneous or square matrix.
func Linear(m *mat.Dense) *mat.Dense {
	d, _ := m.Dims()
	out := mat.NewDense(d, d, nil)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, m.At(i, j))
		}
	}
	return out
}

// Offset returns the translation column of a homogeneous matrix, or a zero
// vector when given a square matrix.
func Offset(m *mat.Dense) []float64 {
	d, c := m.Dims()
	t := make([]float64, d)
	if c == d+1 {
		for i := 0; i < d; i++ {
			t[i] = m.At(i, d)
		}
	}
	return t
}

// Compose returns the homogeneous transform a∘b, i.e. the map which first
// applies b and then a. Either argument may be square (zero translation).
// The result is always D x (D+1).
func Compose(a, b *mat.Dense) *mat.Dense {
	la, lb := Linear(a), Linear(b)
	ta, tb := Offset(a), Offset(b)
	d, _ := la.Dims()
	var lin mat.Dense
	lin.Mul(la, lb)
	off := make([]float64, d)
	for i := 0; i < d; i++ {
		s := ta[i]
		for j := 0; j < d; j++ {
			s += la.At(i, j) * tb[j]
		}
		off[i] = s
	}
	return Homogeneous(&lin, off)
}

// Translate composes a with a pure pre-translation by t, yielding the map
// x -> A(x + t) + t_a.
func Translate(a *mat.Dense, t []float64) *mat.Dense {
	la := Linear(a)
	ta := Offset(a)
	d, _ := la.Dims()
	off := make([]float64, d)
	for i := 0; i < d; i++ {
		s := ta[i]
		for j := 0; j < d; j++ {
			s += la.At(i, j) * t[j]
		}
		off[i] = s
	}
	return Homogeneous(la, off)
}

// Apply maps a batch of D-vectors through a homogeneous or linear transform.
// Square matrices apply the linear part only, suitable for displacement
// vectors; D x (D+1) matrices additionally add the translation.
func Apply(m *mat.Dense, points [][]float64) [][]float64 {
	d, _ := m.Dims()
	lin := Linear(m)
	off := Offset(m)
	out := make([][]float64, len(points))
	for k, p := range points {
		q := make([]float64, d)
		for i := 0; i < d; i++ {
			s := off[i]
			for j := 0; j < d; j++ {
				s += lin.At(i, j) * p[j]
			}
			q[i] = s
		}
		out[k] = q
	}
	return out
}

// MatVec multiplies a DxD matrix with a D-vector.
func MatVec(m *mat.Dense, v []float64) []float64 {
	d, _ := m.Dims()
	out := make([]float64, d)
	for i := 0; i < d; i++ {
		s := 0.0
		for j := 0; j < d; j++ {
			s += m.At(i, j) * v[j]
		}
		out[i] = s
	}
	return out
}

// RoundTo rounds x to the given number of decimal digits.
func RoundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}

// RoundPoints rounds every coordinate of a point batch in place.
func RoundPoints(points [][]float64, decimals int) {
	for _, p := range points {
		for i, x := range p {
			p[i] = RoundTo(x, decimals)
		}
	}
}

// AllClose reports whether a and b are elementwise equal within
// |a-b| <= atol + rtol*|b|.
func AllClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			return false
		}
		if math.Abs(a[i]-b[i]) > atol+rtol*math.Abs(b[i]) {
			return false
		}
	}
	return true
}

// MatAllClose reports whether two matrices are elementwise close under the
// same tolerance rule as AllClose.
func MatAllClose(a, b mat.Matrix, rtol, atol float64) bool {
	ra, ca := a.Dims()
	rb, cb := b.Dims()
	if ra != rb || ca != cb {
		return false
	}
	for i := 0; i < ra; i++ {
		for j := 0; j < ca; j++ {
			x, y := a.At(i, j), b.At(i, j)
			if math.IsNaN(x) || math.IsNaN(y) {
				return false
			}
			if math.Abs(x-y) > atol+rtol*math.Abs(y) {
				return false
			}
		}
	}
	return true
}

// Linspace returns n evenly spaced values spanning [start, end] inclusive.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	dst := make([]float64, n)
	floats.Span(dst, start, end)
	return dst
}

// IsRotation reports whether m is square with a determinant whose magnitude
// deviates from one by at most tol.
func IsRotation(m *mat.Dense, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	det := mat.Det(m)
	return math.Abs(math.Abs(det)-1) <= tol
}

// CheckRotation returns a descriptive error when m is not a valid rotation.
func CheckRotation(m *mat.Dense, tol float64) error {
	if !IsRotation(m, tol) {
		return fmt.Errorf("matrix with determinant %v is not a valid rotation", mat.Det(m))
	}
	return nil
}
