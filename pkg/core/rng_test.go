package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 32; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v != %v", i, x, y)
		}
	}
}

func TestRangesStayInBounds(t *testing.T) {
	r := NewRNG(42)
	for i := 0; i < 1000; i++ {
		if v := r.Range(1, 50); v < 1 || v >= 50 {
			t.Fatalf("Range out of bounds: %v", v)
		}
		if v := r.IntRange(3, 5); v < 3 || v >= 5 {
			t.Fatalf("IntRange out of bounds: %d", v)
		}
		if v := r.IntInclusive(10, 99); v < 10 || v > 99 {
			t.Fatalf("IntInclusive out of bounds: %d", v)
		}
	}
}

func TestEmptyRangesReturnLow(t *testing.T) {
	r := NewRNG(1)
	if v := r.Range(4, 4); v != 4 {
		t.Fatalf("Range(4,4) = %v", v)
	}
	if v := r.IntRange(9, 2); v != 9 {
		t.Fatalf("IntRange(9,2) = %d", v)
	}
}

func TestSequenceReplays(t *testing.T) {
	seq := &Sequence{Floats: []float64{0.25, 0.5}, Ints: []int{2, 7}}
	r := FromSource(seq)
	if v := r.Float64(); v != 0.25 {
		t.Fatalf("first float = %v", v)
	}
	if v := r.Float64(); v != 0.5 {
		t.Fatalf("second float = %v", v)
	}
	if v := r.Float64(); v != 0.25 {
		t.Fatalf("wrapped float = %v", v)
	}
	if v := r.IntInclusive(1, 4); v != 3 {
		t.Fatalf("IntInclusive(1,4) with script 2 = %d", v)
	}
	if v := r.IntRange(0, 5); v != 2 {
		t.Fatalf("IntRange(0,5) with script 7 = %d", v)
	}
}
