package opt

import (
	"math"
	"testing"

	"darwindispatch/internal/geo"
)

// fourCornerMatrix covers a depot at the origin and four stops on the axes.
func fourCornerMatrix() *geo.Matrix {
	return geo.NewEuclidean([]geo.Point{
		{X: 0, Y: 0},  // depot
		{X: 3, Y: 0},  // stop 0
		{X: 0, Y: 4},  // stop 1
		{X: -3, Y: 0}, // stop 2
		{X: 0, Y: -4}, // stop 3
	})
}

func TestEvaluateTotalDistance(t *testing.T) {
	ev := evaluator{m: fourCornerMatrix(), vehicles: 2, lambda: 0}
	// vehicle 0: depot -> (3,0) -> (0,4) -> depot = 3 + 5 + 4 = 12
	// vehicle 1: depot -> (-3,0) -> (0,-4) -> depot = 3 + 5 + 4 = 12
	got := ev.evaluate([]int{0, 1, 2, 3})
	if math.Abs(got.total-24) > 1e-9 {
		t.Fatalf("total = %v, want 24", got.total)
	}
	if got.imbalance > 1e-9 {
		t.Fatalf("imbalance = %v, want 0 for equal routes", got.imbalance)
	}
}

func TestImbalanceGrowsWithDispersion(t *testing.T) {
	ev := evaluator{m: fourCornerMatrix(), vehicles: 2, lambda: 1}
	balanced := ev.evaluate([]int{0, 1, 2, 3})
	// vehicle 0 takes three stops, vehicle 1 only one: clearly lopsided
	lopsided := ev.evaluate([]int{0, 2, 1, 3})
	if lopsided.imbalance <= balanced.imbalance {
		t.Fatalf("imbalance %v not greater than balanced %v", lopsided.imbalance, balanced.imbalance)
	}
}

func TestScalarWeighting(t *testing.T) {
	o := objectives{total: 10, imbalance: 4}
	if got := (evaluator{lambda: 0}).scalar(o); got != 10 {
		t.Fatalf("lambda=0 scalar = %v, want 10", got)
	}
	if got := (evaluator{lambda: 2}).scalar(o); got != 18 {
		t.Fatalf("lambda=2 scalar = %v, want 18", got)
	}
}

func TestEmptyRouteHasZeroLength(t *testing.T) {
	ev := evaluator{m: fourCornerMatrix(), vehicles: 2}
	if d := ev.routeLength(nil); d != 0 {
		t.Fatalf("empty route length = %v, want 0", d)
	}
	// single stop route: depot -> (3,0) -> depot
	if d := ev.routeLength([]int{0}); math.Abs(d-6) > 1e-9 {
		t.Fatalf("single-stop route length = %v, want 6", d)
	}
}
