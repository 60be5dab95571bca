package opt

import "math/rand"

// Genetic operators over the permutation representation. All of them take
// an explicit *rand.Rand so runs are reproducible under a fixed seed; none
// touch the decoded routes.

// indPb is the per-position swap rate inside shuffleMutate.
const indPb = 0.05

// randomPermutation returns a fresh permutation of 0..n-1.
func randomPermutation(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}

// tournamentSelect samples k distinct individuals and returns the index of
// the one with the lowest scalar fitness. Sampling is without replacement
// within a tournament; successive tournaments draw independently.
func tournamentSelect(pop []individual, k int, rng *rand.Rand) int {
	best := -1
	picked := make([]int, 0, k)
	for len(picked) < k {
		c := rng.Intn(len(pop))
		dup := false
		for _, p := range picked {
			if p == c {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		picked = append(picked, c)
		if best == -1 || pop[c].scalar < pop[best].scalar {
			best = c
		}
	}
	return best
}

// pmxCrossover produces one child by partially matched crossover: a random
// cut segment is copied verbatim from parent a, the remaining positions are
// filled from parent b, with values that collide with the segment resolved
// through the segment's position correspondence. The child is always a
// valid permutation of the parents' elements.
//
// Chromosomes shorter than 2 have no cut points and yield a copy of a.
func pmxCrossover(a, b []int, rng *rand.Rand) []int {
	n := len(a)
	if n < 2 {
		return append([]int(nil), a...)
	}
	c1 := rng.Intn(n)
	c2 := rng.Intn(n - 1)
	if c2 >= c1 {
		c2++
	} else {
		c1, c2 = c2, c1
	}
	// segment is [c1, c2)

	child := make([]int, n)
	for i := range child {
		child[i] = -1
	}
	inSeg := make([]bool, n)  // value -> copied from a's segment
	posInB := make([]int, n)  // value -> position in b
	for i, v := range b {
		posInB[v] = i
	}
	for i := c1; i < c2; i++ {
		child[i] = a[i]
		inSeg[a[i]] = true
	}
	// place b's segment values displaced by a's segment
	for i := c1; i < c2; i++ {
		v := b[i]
		if inSeg[v] {
			continue
		}
		j := i
		for child[j] != -1 {
			j = posInB[a[j]]
		}
		child[j] = v
	}
	// remaining positions come straight from b
	for i, v := range b {
		if child[i] == -1 {
			child[i] = v
		}
	}
	return child
}

// shuffleMutate swaps each position, with probability indPb, with another
// random position. Only positions move, never values, so the multiset is
// preserved by construction. The chromosome is mutated in place.
func shuffleMutate(chrom []int, rng *rand.Rand) {
	n := len(chrom)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		if rng.Float64() >= indPb {
			continue
		}
		j := rng.Intn(n - 1)
		if j >= i {
			j++
		}
		chrom[i], chrom[j] = chrom[j], chrom[i]
	}
}
