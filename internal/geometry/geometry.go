// Package geometry implements the AABB primitives the packer and the
// support/crush kernel are built on: intersection, containment, 1-D and
// xz-plane overlap, and the six axis-aligned orientations of a box.
package geometry

import "github.com/cargoloader/truckpack/internal/model"

// nonNegEps bounds the zero/non-negativity tests in spec.md §7.
const nonNegEps = 1e-8

// Intersects reports whether two AABBs overlap on all three axes. Touching
// faces (a.hi == b.lo) are treated as non-intersecting.
func Intersects(a, b model.AABB) bool {
	sepX := a.X+a.W <= b.X || b.X+b.W <= a.X
	sepY := a.Y+a.H <= b.Y || b.Y+b.H <= a.Y
	sepZ := a.Z+a.D <= b.Z || b.Z+b.D <= a.Z
	return !(sepX || sepY || sepZ)
}

// InsideTruck reports whether b lies within the truck envelope: all
// origins non-negative, all far faces at or inside the truck's extents.
func InsideTruck(t model.Truck, b model.AABB) bool {
	return b.X >= 0 && b.Y >= 0 && b.Z >= 0 &&
		b.X+b.W <= t.W && b.Y+b.H <= t.H && b.Z+b.D <= t.D
}

// Overlap1D returns the clipped overlap length of [a0,a1) and [b0,b1), or
// zero when they don't overlap.
func Overlap1D(a0, a1, b0, b1 float64) float64 {
	lo := max(a0, b0)
	hi := min(a1, b1)
	if hi-lo < 0 {
		return 0
	}
	return hi - lo
}

// OverlapAreaXZ returns the area of the xz-plane overlap between top's and
// bottom's footprints.
func OverlapAreaXZ(top, bottom model.AABB) float64 {
	ox := Overlap1D(top.X, top.X+top.W, bottom.X, bottom.X+bottom.W)
	oz := Overlap1D(top.Z, top.Z+top.D, bottom.Z, bottom.Z+bottom.D)
	return ox * oz
}

// PointInOverlapXZ reports whether (px, pz) lies within the closed xz
// rectangle shared by top and bottom's footprints, tolerant by 1e-8.
func PointInOverlapXZ(px, pz float64, top, bottom model.AABB) bool {
	x0 := max(top.X, bottom.X)
	x1 := min(top.X+top.W, bottom.X+bottom.W)
	z0 := max(top.Z, bottom.Z)
	z1 := min(top.Z+top.D, bottom.Z+bottom.D)
	return px+nonNegEps >= x0 && px-nonNegEps <= x1 &&
		pz+nonNegEps >= z0 && pz-nonNegEps <= z1
}

// Orientation is one of the six axis permutations of a box's (w, h, d).
type Orientation struct {
	W, H, D float64
}

// Orientations enumerates the six axis-aligned orientations of a box in
// the fixed order spec.md §4.A requires: implementations must preserve
// this order since ties in the packer's placement comparator are broken
// by enumeration order alone.
func Orientations(w, h, d float64) [6]Orientation {
	return [6]Orientation{
		{w, h, d},
		{w, d, h},
		{h, w, d},
		{h, d, w},
		{d, w, h},
		{d, h, w},
	}
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
