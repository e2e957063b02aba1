package prng

import "testing"

func TestDeterministicUnderSameSeed(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if got, want := a.Uniform01(), b.Uniform01(); got != want {
			t.Fatalf("draw %d: got %v, want %v", i, got, want)
		}
	}
}

func TestBernoulliBounds(t *testing.T) {
	s := New(1)
	if s.Bernoulli(0) {
		t.Error("p=0 must never succeed")
	}
	if !s.Bernoulli(1) {
		t.Error("p=1 must always succeed")
	}
}

func TestUniformRangeBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.UniformRange(2, 5)
		if v < 2 || v >= 5 {
			t.Fatalf("draw %v out of [2,5)", v)
		}
	}
}

func TestChoiceIndexBounds(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		idx := s.ChoiceIndex(10)
		if idx < 0 || idx >= 10 {
			t.Fatalf("index %d out of [0,10)", idx)
		}
	}
}
