package opt

import (
	"math"

	"darwindispatch/internal/geo"
)

// objectives carries the two raw objective values for one chromosome.
type objectives struct {
	total     float64 // sum of all route lengths including depot legs
	imbalance float64 // dispersion of per-route lengths
}

// evaluator scores chromosomes against fixed problem data. The matrix
// indexes the depot at 0 and delivery i at i+1.
type evaluator struct {
	m        *geo.Matrix
	vehicles int
	lambda   float64
}

// scalar folds both objectives into a single minimized score.
func (e evaluator) scalar(o objectives) float64 {
	return o.total + e.lambda*o.imbalance
}

// evaluate decodes the chromosome, sums per-route distances and measures
// workload imbalance as the population standard deviation of the per-route
// lengths. Empty routes count as zero-length. Pure function of the
// chromosome and the fixed problem data.
func (e evaluator) evaluate(chrom []int) objectives {
	segs := SplitRoutes(chrom, e.vehicles)
	lengths := make([]float64, len(segs))
	total := 0.0
	for v, seg := range segs {
		d := e.routeLength(seg)
		lengths[v] = d
		total += d
	}
	return objectives{total: total, imbalance: stddev(lengths)}
}

// routeLength sums the legs depot -> seg[0] -> ... -> seg[k] -> depot.
func (e evaluator) routeLength(seg []int) float64 {
	if len(seg) == 0 {
		return 0
	}
	d := e.m.At(0, seg[0]+1)
	for i := 0; i < len(seg)-1; i++ {
		d += e.m.At(seg[i]+1, seg[i+1]+1)
	}
	d += e.m.At(seg[len(seg)-1]+1, 0)
	return d
}

func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	varsum := 0.0
	for _, x := range xs {
		dx := x - mean
		varsum += dx * dx
	}
	return math.Sqrt(varsum / float64(len(xs)))
}
