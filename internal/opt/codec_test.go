package opt

import (
	"math/rand"
	"testing"
)

func TestSplitRoutesEvenPartition(t *testing.T) {
	chrom := []int{4, 2, 0, 7, 1, 5, 3, 6, 9, 8}
	segs := SplitRoutes(chrom, 3)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	// 10 stops over 3 vehicles: remainder goes to the first segments
	wantLens := []int{4, 3, 3}
	for v, seg := range segs {
		if len(seg) != wantLens[v] {
			t.Fatalf("segment %d has %d stops, want %d", v, len(seg), wantLens[v])
		}
	}
}

func TestSplitRoutesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.Intn(40)
		v := 1 + rng.Intn(8)
		chrom := rng.Perm(n)
		segs := SplitRoutes(chrom, v)

		flat := make([]int, 0, n)
		for _, seg := range segs {
			flat = append(flat, seg...)
		}
		if len(flat) != n {
			t.Fatalf("n=%d v=%d: flattened %d stops, want %d", n, v, len(flat), n)
		}
		// contiguous split preserves order exactly, not just set equality
		for i, g := range flat {
			if g != chrom[i] {
				t.Fatalf("n=%d v=%d: position %d = %d, want %d", n, v, i, g, chrom[i])
			}
		}
		seen := make([]bool, n)
		for _, g := range flat {
			if g < 0 || g >= n || seen[g] {
				t.Fatalf("n=%d v=%d: invalid or duplicate gene %d", n, v, g)
			}
			seen[g] = true
		}
	}
}

func TestSplitRoutesFewerStopsThanVehicles(t *testing.T) {
	segs := SplitRoutes([]int{1, 0}, 5)
	if len(segs) != 5 {
		t.Fatalf("got %d segments, want 5", len(segs))
	}
	nonEmpty := 0
	for _, seg := range segs {
		if len(seg) > 1 {
			t.Fatalf("segment too long: %v", seg)
		}
		if len(seg) == 1 {
			nonEmpty++
		}
	}
	if nonEmpty != 2 {
		t.Fatalf("got %d non-empty segments, want 2", nonEmpty)
	}
}
