// Package model holds the request-scoped data types shared by the packer,
// the GA driver, and the adapter: boxes, the truck envelope, and the
// placement result.
package model

// Box is a single item to be loaded. Dimensions are in meters, weight in
// kilograms. Boxes are immutable once built and never mutated by the
// packer or the GA.
type Box struct {
	ID       string
	W, H, D  float64
	Weight   float64
	Priority int
}

// Volume returns the box's w*h*d volume, independent of orientation.
func (b Box) Volume() float64 {
	return b.W * b.H * b.D
}

// Truck is the rectangular cargo volume and its weight cap. Dimensions are
// in meters, MaxWeight in kilograms. Y is the up axis.
type Truck struct {
	W, H, D   float64
	MaxWeight float64
}

// Volume returns the truck's cargo volume.
func (t Truck) Volume() float64 {
	return t.W * t.H * t.D
}

// AABB is an axis-aligned bounding box: an origin and three positive
// extents. Origin and extents are non-negative in any AABB that has been
// accepted by the packer.
type AABB struct {
	X, Y, Z    float64
	W, H, D    float64
}

// Placement is a single accepted box and the AABB it was placed at.
type Placement struct {
	ID      string
	AABB    AABB
}

// Result is the outcome of one pack_by_order or GA run: the accepted
// placements in placement order, the ids that could not be placed (in
// attempt order), and the aggregate metrics defined in spec.md §3.
type Result struct {
	Placed       []Placement
	Unplaced     []string
	UsedVolume   float64
	TotalVolume  float64
	Utilization  float64
	TotalWeight  float64

	// Score is the GA fitness of this result (spec.md §4.F); zero for a
	// Result produced directly by PackByOrder outside the GA.
	Score float64
}
