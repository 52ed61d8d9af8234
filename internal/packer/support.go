package packer

import (
	"math"

	"github.com/cargoloader/truckpack/internal/geometry"
	"github.com/cargoloader/truckpack/internal/model"
)

const (
	floorEps       = 1e-8
	yFaceEps       = 1e-6
	minSupportArea = 1e-8
	coverageRatio  = 0.90
	loadSlack      = 1e-9
	coverageSlack  = 1e-9
)

// loadDelta is one (supporting-box index, load added) pair; replaying the
// full slice in reverse rolls a tentative placement back.
type loadDelta struct {
	index int
	added float64
}

// supportCheckAndApply implements the support & crush kernel of spec.md
// §4.D. A box on the floor (candidate.Y <= 1e-8) is always supported. A
// box resting on others must pass both the centroid test and the 90%
// coverage test against the set of placed boxes whose top face matches
// candidate.Y, and every support must be able to absorb its load share
// without exceeding its crush budget. On success the load shares are
// committed into placed[i].loadOnTop and returned as deltas the caller can
// roll back; on failure no state is mutated.
func supportCheckAndApply(candidate model.AABB, weight float64, placed []placedState) (ok bool, applied []loadDelta) {
	if candidate.Y <= floorEps {
		return true, nil
	}

	base := baseArea(candidate.W, candidate.D)
	cx := candidate.X + candidate.W/2.0
	cz := candidate.Z + candidate.D/2.0

	var supportedArea float64
	centroidSupported := false
	type support struct {
		index int
		area  float64
	}
	var supports []support

	for i := range placed {
		s := &placed[i]
		topY := s.box.Y + s.box.H
		if math.Abs(topY-candidate.Y) > yFaceEps {
			continue
		}
		area := geometry.OverlapAreaXZ(candidate, s.box)
		if area <= minSupportArea {
			continue
		}
		supportedArea += area
		supports = append(supports, support{i, area})
		if !centroidSupported && geometry.PointInOverlapXZ(cx, cz, candidate, s.box) {
			centroidSupported = true
		}
	}

	if !centroidSupported {
		return false, nil
	}
	if supportedArea+coverageSlack < coverageRatio*base {
		return false, nil
	}

	deltas := make([]loadDelta, 0, len(supports))
	for _, s := range supports {
		share := clamp01(s.area / base)
		added := weight * share
		if placed[s.index].loadOnTop+added > placed[s.index].maxLoad+loadSlack {
			return false, nil
		}
		deltas = append(deltas, loadDelta{s.index, added})
	}

	for _, d := range deltas {
		placed[d.index].loadOnTop += d.added
	}

	return true, deltas
}

// rollbackLoads undoes a set of load deltas previously applied by
// supportCheckAndApply, in reverse order.
func rollbackLoads(placed []placedState, applied []loadDelta) {
	for i := len(applied) - 1; i >= 0; i-- {
		d := applied[i]
		placed[d.index].loadOnTop -= d.added
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
