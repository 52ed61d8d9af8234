package packer

import (
	"math"
	"sort"
)

// maxCandidates is the deliberate capacity bound on the candidate-point
// set (spec.md §4.C): points biased toward the floor and the rear survive
// truncation.
const maxCandidates = 350

// quantizeScale sets the candidate dedup tolerance (1e-5, per spec.md §7).
const quantizeScale = 1e5

// candidate is a corner coordinate eligible as the next box's origin.
type candidate struct {
	x, y, z float64
}

// candidateStore holds the bounded, deduplicated set of extreme points the
// packer tries as placement origins.
type candidateStore struct {
	points []candidate
}

func newCandidateStore() *candidateStore {
	return &candidateStore{points: []candidate{{0, 0, 0}}}
}

// add appends a newly exposed extreme point. Points with any coordinate
// below -1e-8 are silently dropped, matching
// the reference engine's add_candidate guard.
func (s *candidateStore) add(x, y, z float64) {
	const eps = 1e-8
	if x < -eps || y < -eps || z < -eps {
		return
	}
	s.points = append(s.points, candidate{x, y, z})
}

type quantKey struct {
	x, y, z int64
}

func quantize(v float64) int64 {
	return int64(math.Round(v * quantizeScale))
}

func keyOf(c candidate) quantKey {
	return quantKey{quantize(c.x), quantize(c.y), quantize(c.z)}
}

// normalize deduplicates by quantized key and, if the set has grown past
// maxCandidates, stable-sorts by (y, z, x) ascending and truncates — the
// floor-and-rear bias spec.md §4.C requires.
func (s *candidateStore) normalize() {
	sort.Slice(s.points, func(i, j int) bool {
		ki, kj := keyOf(s.points[i]), keyOf(s.points[j])
		if ki.x != kj.x {
			return ki.x < kj.x
		}
		if ki.y != kj.y {
			return ki.y < kj.y
		}
		return ki.z < kj.z
	})

	deduped := s.points[:0]
	var lastKey quantKey
	hasLast := false
	for _, c := range s.points {
		k := keyOf(c)
		if hasLast && k == lastKey {
			continue
		}
		deduped = append(deduped, c)
		lastKey = k
		hasLast = true
	}
	s.points = deduped

	if len(s.points) > maxCandidates {
		sort.SliceStable(s.points, func(i, j int) bool {
			a, b := s.points[i], s.points[j]
			if a.y != b.y {
				return a.y < b.y
			}
			if a.z != b.z {
				return a.z < b.z
			}
			return a.x < b.x
		})
		s.points = s.points[:maxCandidates]
	}
}
