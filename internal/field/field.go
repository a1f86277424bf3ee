// Package field lifts scalar kernels over elementwise numeric containers.
//
// A field is any gonum mat.Matrix. A 1×1 matrix acts as a scalar and is
// broadcast against fields of any shape; all other arguments of one call must
// share the same shape. Results are always freshly allocated *mat.Dense.
package field

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch is returned when non-scalar arguments differ in shape.
var ErrShapeMismatch = errors.New("field shapes do not match")

// parallelMinElements is the size below which maps run on the calling goroutine.
const parallelMinElements = 1 << 14

// Scalar returns a 1×1 field holding v.
func Scalar(v float64) *mat.Dense {
	return mat.NewDense(1, 1, []float64{v})
}

// Constant returns an r×c field filled with v.
func Constant(r, c int, v float64) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = v
	}
	return mat.NewDense(r, c, data)
}

// FromRows builds a field from a rectangular slice of rows.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("field must have at least one row and one column")
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// IsScalar reports whether m is a 1×1 field.
func IsScalar(m mat.Matrix) bool {
	r, c := m.Dims()
	return r == 1 && c == 1
}

// Broadcast returns the common shape of the given fields.
func Broadcast(ms ...mat.Matrix) (r, c int, err error) {
	r, c = 1, 1
	shaped := false
	for i, m := range ms {
		if IsScalar(m) {
			continue
		}
		mr, mc := m.Dims()
		if !shaped {
			r, c, shaped = mr, mc, true
			continue
		}
		if mr != r || mc != c {
			return 0, 0, fmt.Errorf("%w: argument %d is %dx%d, expected %dx%d", ErrShapeMismatch, i, mr, mc, r, c)
		}
	}
	return r, c, nil
}

// at reads element (i, j), broadcasting scalars.
func at(m mat.Matrix, i, j int) float64 {
	if IsScalar(m) {
		return m.At(0, 0)
	}
	return m.At(i, j)
}

// Map1 applies f to every element of a.
func Map1(f func(float64) float64, a mat.Matrix) *mat.Dense {
	r, c := a.Dims()
	return fill(r, c, func(i, j int) float64 {
		return f(a.At(i, j))
	})
}

// Map2 applies f elementwise over a and b.
func Map2(f func(a, b float64) float64, a, b mat.Matrix) (*mat.Dense, error) {
	r, c, err := Broadcast(a, b)
	if err != nil {
		return nil, err
	}
	return fill(r, c, func(i, j int) float64 {
		return f(at(a, i, j), at(b, i, j))
	}), nil
}

// Map3 applies f elementwise over a, b and c.
func Map3(f func(a, b, c float64) float64, a, b, c mat.Matrix) (*mat.Dense, error) {
	rows, cols, err := Broadcast(a, b, c)
	if err != nil {
		return nil, err
	}
	return fill(rows, cols, func(i, j int) float64 {
		return f(at(a, i, j), at(b, i, j), at(c, i, j))
	}), nil
}

// fill allocates an r×c field and sets every element from fn. Large fields
// are split into row bands evaluated concurrently; fn must not depend on
// anything but (i, j).
func fill(r, c int, fn func(i, j int) float64) *mat.Dense {
	if r == 0 || c == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(r, c, nil)

	fillRows := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			row := out.RawRowView(i)
			for j := range row {
				row[j] = fn(i, j)
			}
		}
	}

	if r*c < parallelMinElements || r == 1 {
		fillRows(0, r)
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	band := (r + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < r; lo += band {
		lo := lo
		hi := min(lo+band, r)
		wg.Add(1)
		go func() {
			defer wg.Done()
			fillRows(lo, hi)
		}()
	}
	wg.Wait()

	return out
}
