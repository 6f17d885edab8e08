package clock

import (
	"math"
	"testing"
)

func TestAdvanceMonotonic(t *testing.T) {
	c := New(1)
	prev := c.Elapsed()
	for i := 0; i < 100; i++ {
		c.Advance(1.0 / 60)
		if c.Elapsed() <= prev {
			t.Fatalf("elapsed not monotonic at step %d", i)
		}
		prev = c.Elapsed()
	}
	// Non-positive deltas never rewind.
	c.Advance(-5)
	c.Advance(0)
	if c.Elapsed() != prev {
		t.Fatalf("elapsed changed on non-positive dt: %v vs %v", c.Elapsed(), prev)
	}
}

func TestSampleStableWithinTick(t *testing.T) {
	c := New(7)
	c.Advance(0.25)
	p1, s1 := c.Sample()
	p2, s2 := c.Sample()
	if p1 != p2 || s1 != s2 {
		t.Fatal("two reads in the same tick disagree")
	}
}

func TestStrengthEnvelopeAndSmoothness(t *testing.T) {
	c := New(42)
	_, prev := c.Sample()
	for i := 0; i < 5000; i++ {
		c.Advance(1.0 / 60)
		_, s := c.Sample()
		if s < strengthBase-strengthSwing || s > strengthBase+strengthSwing {
			t.Fatalf("strength %v outside envelope at step %d", s, i)
		}
		if math.Abs(s-prev) > 0.02 {
			t.Fatalf("strength jumped %v in one frame at step %d", math.Abs(s-prev), i)
		}
		prev = s
	}
}

func TestDeterministicAcrossInstances(t *testing.T) {
	a := New(99)
	b := New(99)
	for i := 0; i < 500; i++ {
		a.Advance(1.0 / 30)
		b.Advance(1.0 / 30)
	}
	pa, sa := a.Sample()
	pb, sb := b.Sample()
	if pa != pb || sa != sb {
		t.Fatalf("same-seed clocks diverged: (%v,%v) vs (%v,%v)", pa, sa, pb, sb)
	}
}

func TestDirectionUnit(t *testing.T) {
	x, y := New(1).Direction()
	if math.Abs(math.Hypot(x, y)-1) > 1e-9 {
		t.Fatalf("direction (%v,%v) not unit length", x, y)
	}
}
