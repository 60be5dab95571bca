package geo

import (
	"fmt"
	"math"
)

// ErrOutOfRange is returned when a location index is unknown to a Matrix.
var ErrOutOfRange = fmt.Errorf("geo: location index out of range")

// Point is a 2-D coordinate in an abstract plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Matrix is a dense symmetric distance matrix over n locations.
// It is built once at startup and read-only afterwards.
type Matrix struct {
	n int
	d []float64 // row-major n*n
}

// NewEuclidean precomputes all pairwise Euclidean distances between points.
func NewEuclidean(points []Point) *Matrix {
	n := len(points)
	m := &Matrix{n: n, d: make([]float64, n*n)}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			dist := math.Hypot(dx, dy)
			m.d[i*n+j] = dist
			m.d[j*n+i] = dist
		}
	}
	return m
}

// FromRows builds a Matrix from precomputed rows. The input must be square
// and symmetric with a zero diagonal and no negative or NaN entries.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	m := &Matrix{n: n, d: make([]float64, n*n)}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("geo: row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("geo: NaN distance at (%d,%d)", i, j)
			}
			if v < 0 {
				return nil, fmt.Errorf("geo: negative distance %v at (%d,%d)", v, i, j)
			}
			if i == j && v != 0 {
				return nil, fmt.Errorf("geo: nonzero diagonal %v at %d", v, i)
			}
			m.d[i*n+j] = v
		}
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if m.d[i*n+j] != m.d[j*n+i] {
				return nil, fmt.Errorf("geo: asymmetric entries at (%d,%d)", i, j)
			}
		}
	}
	return m, nil
}

// Len returns the number of locations covered by the matrix.
func (m *Matrix) Len() int { return m.n }

// Distance returns the distance between locations a and b, or ErrOutOfRange
// if either index is unknown.
func (m *Matrix) Distance(a, b int) (float64, error) {
	if a < 0 || a >= m.n || b < 0 || b >= m.n {
		return 0, fmt.Errorf("%w: (%d,%d) with %d locations", ErrOutOfRange, a, b, m.n)
	}
	return m.d[a*m.n+b], nil
}

// At is the unchecked O(1) lookup used by evaluation hot loops. Callers must
// pass indices already validated against Len.
func (m *Matrix) At(a, b int) float64 { return m.d[a*m.n+b] }
