package opt

import "darwindispatch/internal/geo"

// NearestNeighborOrder builds a giant-tour permutation greedily: starting
// from the depot, always visit the closest unvisited delivery. It is the
// deterministic baseline the GA result is measured against, and a cheap
// seed for callers that want one.
func NearestNeighborOrder(m *geo.Matrix) []int {
	n := m.Len() - 1 // depot occupies index 0
	if n <= 0 {
		return nil
	}
	order := make([]int, 0, n)
	visited := make([]bool, n)
	cur := 0 // depot
	for len(order) < n {
		next := -1
		bestD := 0.0
		for i := 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d := m.At(cur, i+1)
			if next == -1 || d < bestD {
				next = i
				bestD = d
			}
		}
		visited[next] = true
		order = append(order, next)
		cur = next + 1
	}
	return order
}

// ImproveOrder2Opt applies 2-opt segment reversals to a single route
// segment until no reversal shortens it, up to the given number of sweeps.
// The segment holds delivery indices; depot legs at both ends are included
// in the length being minimized.
func ImproveOrder2Opt(m *geo.Matrix, seg []int, sweeps int) []int {
	if sweeps <= 0 {
		sweeps = 1
	}
	ev := evaluator{m: m, vehicles: 1}
	best := append([]int(nil), seg...)
	bestLen := ev.routeLength(best)
	n := len(best)
	for s := 0; s < sweeps; s++ {
		improved := false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				cand := twoOptSwap(best, i, k)
				if d := ev.routeLength(cand); d+1e-9 < bestLen {
					best = cand
					bestLen = d
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

// twoOptSwap reverses positions i..k.
func twoOptSwap(ord []int, i, k int) []int {
	out := make([]int, len(ord))
	copy(out, ord[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = ord[j]
		pos++
	}
	copy(out[pos:], ord[k+1:])
	return out
}
