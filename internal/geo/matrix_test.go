package geo

import (
	"errors"
	"math"
	"testing"
)

func TestEuclideanMatrix(t *testing.T) {
	pts := []Point{{0, 0}, {3, 4}, {3, 0}}
	m := NewEuclidean(pts)
	if m.Len() != 3 {
		t.Fatalf("len = %d, want 3", m.Len())
	}
	d, err := m.Distance(0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != 5 {
		t.Fatalf("d(0,1) = %v, want 5", d)
	}
	for i := 0; i < 3; i++ {
		if m.At(i, i) != 0 {
			t.Fatalf("diagonal at %d = %v, want 0", i, m.At(i, i))
		}
		for j := 0; j < 3; j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Fatalf("asymmetric at (%d,%d)", i, j)
			}
		}
	}
}

func TestDistanceOutOfRange(t *testing.T) {
	m := NewEuclidean([]Point{{0, 0}, {1, 1}})
	if _, err := m.Distance(0, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
	if _, err := m.Distance(-1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("got %v, want ErrOutOfRange", err)
	}
}

func TestFromRowsValidation(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
	}{
		{"ragged", [][]float64{{0, 1}, {1}}},
		{"nan", [][]float64{{0, math.NaN()}, {math.NaN(), 0}}},
		{"negative", [][]float64{{0, -1}, {-1, 0}}},
		{"diagonal", [][]float64{{1, 2}, {2, 0}}},
		{"asymmetric", [][]float64{{0, 1}, {2, 0}}},
	}
	for _, tc := range cases {
		if _, err := FromRows(tc.rows); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	m, err := FromRows([][]float64{{0, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	if err != nil {
		t.Fatalf("valid rows rejected: %v", err)
	}
	if m.At(1, 2) != 4 {
		t.Fatalf("At(1,2) = %v, want 4", m.At(1, 2))
	}
}
