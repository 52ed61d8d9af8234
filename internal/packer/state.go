// Package packer implements the constructive pack-by-order algorithm
// (spec.md §4.E) and its supporting pieces: per-placed-box state and load
// budget (§4.B), the bounded candidate-point store (§4.C), and the
// support/crush kernel (§4.D).
package packer

import "github.com/cargoloader/truckpack/internal/model"

const loadEps = 1e-8

// maxStackMultiplier and maxPressure are the two crush-limit terms from
// spec.md §4.B; the stricter one wins.
const (
	maxStackMultiplier = 6.0
	maxPressure        = 2500.0
)

// placedState is the per-accepted-box bookkeeping the support/crush kernel
// and the packer mutate as the search proceeds: the chosen AABB, the id and
// weight that were placed, the load budget computed at placement time, and
// the load currently resting on top of it.
type placedState struct {
	box        model.AABB
	id         string
	weight     float64
	maxLoad    float64
	loadOnTop  float64
}

// maxLoadFor computes the crush limit of a supporting box per spec.md §4.B:
// the stricter of a weight-proportional cap and a base-area pressure cap.
func maxLoadFor(weight, baseArea float64) float64 {
	byWeight := weight * maxStackMultiplier
	byPressure := baseArea * maxPressure
	limit := byWeight
	if byPressure < limit {
		limit = byPressure
	}
	if limit < loadEps {
		return loadEps
	}
	return limit
}

func baseArea(w, d float64) float64 {
	a := w * d
	if a < loadEps {
		return loadEps
	}
	return a
}
