package packer

import (
	"testing"

	"github.com/cargoloader/truckpack/internal/model"
)

func TestSupportFloorIsAlwaysSupported(t *testing.T) {
	cand := model.AABB{X: 0, Y: 0, Z: 0, W: 1, H: 1, D: 1}
	ok, applied := supportCheckAndApply(cand, 5, nil)
	if !ok || applied != nil {
		t.Fatalf("floor placement must always succeed with no load applied")
	}
}

func TestSupportRejectsWhenCentroidUnsupported(t *testing.T) {
	base := placedState{
		box:     model.AABB{X: 0, Y: 0, Z: 0, W: 1, H: 1, D: 1},
		weight:  10,
		maxLoad: maxLoadFor(10, 1),
	}
	placed := []placedState{base}

	// Candidate overhangs far enough that its centroid falls outside the
	// support's footprint even though there is some overlap area.
	cand := model.AABB{X: 0.9, Y: 1, Z: 0, W: 1, H: 1, D: 1}
	ok, _ := supportCheckAndApply(cand, 5, placed)
	if ok {
		t.Fatalf("centroid outside the overlap rectangle must reject")
	}
}

func TestSupportRejectsOnCrushLimit(t *testing.T) {
	base := placedState{
		box:     model.AABB{X: 0, Y: 0, Z: 0, W: 1, H: 1, D: 1},
		weight:  1,
		maxLoad: maxLoadFor(1, 1), // min(6, 2500) = 6
	}
	placed := []placedState{base}

	cand := model.AABB{X: 0, Y: 1, Z: 0, W: 1, H: 1, D: 1}
	ok, applied := supportCheckAndApply(cand, 1000, placed)
	if ok {
		t.Fatalf("1000kg box should exceed the 6kg crush budget")
	}
	if applied != nil {
		t.Fatalf("rejected placement must not return deltas")
	}
	if placed[0].loadOnTop != 0 {
		t.Fatalf("rejected placement must not mutate load state")
	}
}

func TestSupportCommitsAndRollsBack(t *testing.T) {
	base := placedState{
		box:     model.AABB{X: 0, Y: 0, Z: 0, W: 1, H: 1, D: 1},
		weight:  10,
		maxLoad: maxLoadFor(10, 1),
	}
	placed := []placedState{base}

	cand := model.AABB{X: 0, Y: 1, Z: 0, W: 1, H: 1, D: 1}
	ok, applied := supportCheckAndApply(cand, 3, placed)
	if !ok {
		t.Fatalf("expected placement to succeed")
	}
	if placed[0].loadOnTop != 3 {
		t.Fatalf("expected load_on_top = 3, got %v", placed[0].loadOnTop)
	}

	rollbackLoads(placed, applied)
	if placed[0].loadOnTop != 0 {
		t.Fatalf("expected load_on_top rolled back to 0, got %v", placed[0].loadOnTop)
	}
}

func TestSupportSplitsLoadAcrossMultipleSupports(t *testing.T) {
	left := placedState{
		box:     model.AABB{X: 0, Y: 0, Z: 0, W: 1, H: 1, D: 1},
		weight:  10,
		maxLoad: maxLoadFor(10, 1),
	}
	right := placedState{
		box:     model.AABB{X: 1, Y: 0, Z: 0, W: 1, H: 1, D: 1},
		weight:  10,
		maxLoad: maxLoadFor(10, 1),
	}
	placed := []placedState{left, right}

	// Spans both supports evenly: 1x1 over each.
	cand := model.AABB{X: 0, Y: 1, Z: 0, W: 2, H: 1, D: 1}
	ok, applied := supportCheckAndApply(cand, 4, placed)
	if !ok {
		t.Fatalf("expected placement spanning two supports to succeed")
	}
	if len(applied) != 2 {
		t.Fatalf("expected load applied to both supports, got %d deltas", len(applied))
	}
	if placed[0].loadOnTop != 2 || placed[1].loadOnTop != 2 {
		t.Fatalf("expected the 4kg load split evenly, got %v and %v", placed[0].loadOnTop, placed[1].loadOnTop)
	}
}
