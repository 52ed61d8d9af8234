package rng

import "testing"

// Reference output sequence for the canonical MT19937 seed 5489 (the
// generator's own default seed in the reference mt19937ar.c
// implementation), used here only to confirm the tempering/twist
// recurrence matches the standard algorithm bit-for-bit.
func TestMT19937ReferenceSequence(t *testing.T) {
	want := []uint32{3499211612, 581869302, 3890346734, 3586334585, 545404204}

	g := New(5489)
	for i, w := range want {
		got := g.NextUint32()
		if got != w {
			t.Fatalf("output %d: got %d, want %d", i, got, w)
		}
	}
}

func TestDeterministicForSameSeed(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 100; i++ {
		if a.NextUint32() != b.NextUint32() {
			t.Fatalf("same seed produced divergent streams at draw %d", i)
		}
	}
}

func TestNextFloat64In01Range(t *testing.T) {
	g := New(1)
	for i := 0; i < 1000; i++ {
		v := g.NextFloat64In01()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestNextIntnRange(t *testing.T) {
	g := New(7)
	for i := 0; i < 1000; i++ {
		v := g.NextIntn(5)
		if v < 0 || v >= 5 {
			t.Fatalf("draw %d out of [0,5): %v", i, v)
		}
	}
}

func TestShufflePermIsAPermutation(t *testing.T) {
	g := New(42)
	values := []int{0, 1, 2, 3, 4, 5, 6, 7}
	g.ShufflePerm(values)

	seen := make(map[int]bool)
	for _, v := range values {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle dropped or duplicated elements: %v", values)
	}
}
