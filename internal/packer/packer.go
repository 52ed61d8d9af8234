package packer

import (
	"github.com/cargoloader/truckpack/internal/geometry"
	"github.com/cargoloader/truckpack/internal/model"
)

const weightEps = 1e-9

// PackByOrder deterministically packs boxes in the given permutation order,
// choosing one position and orientation per box greedily (spec.md §4.E).
// order must be a permutation of [0, len(boxes)).
func PackByOrder(truck model.Truck, boxes []model.Box, order []int) model.Result {
	result := model.Result{}
	for _, b := range boxes {
		result.TotalVolume += b.Volume()
	}

	placed := make([]placedState, 0, len(order))
	store := newCandidateStore()
	remainingWeight := truck.MaxWeight

	collidesAny := func(a model.AABB) bool {
		for _, p := range placed {
			if geometry.Intersects(a, p.box) {
				return true
			}
		}
		return false
	}

	better := func(a, b model.AABB) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	}

	for _, idx := range order {
		box := boxes[idx]

		if box.Weight > remainingWeight+weightEps {
			result.Unplaced = append(result.Unplaced, box.ID)
			continue
		}

		store.normalize()

		found := false
		var best model.AABB
		var bestLoads []loadDelta

		for _, c := range store.points {
			for _, o := range geometry.Orientations(box.W, box.H, box.D) {
				cand := model.AABB{X: c.x, Y: c.y, Z: c.z, W: o.W, H: o.H, D: o.D}

				if !geometry.InsideTruck(truck, cand) {
					continue
				}
				if collidesAny(cand) {
					continue
				}

				ok, applied := supportCheckAndApply(cand, box.Weight, placed)
				if !ok {
					continue
				}

				if !found || better(cand, best) {
					if found {
						rollbackLoads(placed, bestLoads)
					}
					found = true
					best = cand
					bestLoads = applied
				} else {
					rollbackLoads(placed, applied)
				}
			}
		}

		if !found {
			result.Unplaced = append(result.Unplaced, box.ID)
			continue
		}

		placed = append(placed, placedState{
			box:     best,
			id:      box.ID,
			weight:  box.Weight,
			maxLoad: maxLoadFor(box.Weight, baseArea(best.W, best.D)),
		})

		result.Placed = append(result.Placed, model.Placement{ID: box.ID, AABB: best})
		result.UsedVolume += best.W * best.H * best.D
		result.TotalWeight += box.Weight
		remainingWeight -= box.Weight

		store.add(best.X+best.W, best.Y, best.Z)
		store.add(best.X, best.Y, best.Z+best.D)
		store.add(best.X, best.Y+best.H, best.Z)
	}

	if truck.Volume() > 0 {
		result.Utilization = result.UsedVolume / truck.Volume()
	}
	return result
}
