package opt

// SplitRoutes partitions a chromosome (a permutation of delivery indices)
// into contiguous per-vehicle segments, as evenly as possible: segment
// lengths are ceil(n/v) or floor(n/v), with the remainder going to the
// first segments. The split is a pure function of the chromosome and the
// vehicle count; the evolutionary search only permutes the order, never
// the split points.
//
// With fewer deliveries than vehicles the surplus vehicles get empty
// segments, which decode to empty routes (no depot round trip).
func SplitRoutes(chrom []int, vehicles int) [][]int {
	out := make([][]int, vehicles)
	n := len(chrom)
	base := n / vehicles
	rem := n % vehicles
	start := 0
	for v := range out {
		size := base
		if v < rem {
			size++
		}
		out[v] = chrom[start : start+size : start+size]
		start += size
	}
	return out
}
