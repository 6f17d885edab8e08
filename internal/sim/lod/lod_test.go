package lod

import "testing"

func defaultAssigner(t *testing.T) Assigner {
	t.Helper()
	a, err := New(100, 300, 600)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func TestNewRejectsNonAscending(t *testing.T) {
	for _, c := range [][3]float64{
		{0, 300, 600},
		{300, 100, 600},
		{100, 100, 600},
		{100, 300, 300},
	} {
		if _, err := New(c[0], c[1], c[2]); err == nil {
			t.Fatalf("breakpoints %v accepted", c)
		}
	}
}

func TestBands(t *testing.T) {
	a := defaultAssigner(t)
	cases := []struct {
		d    float64
		want Level
	}{
		{0, 0},
		{99.999, 0},
		{100, 1}, // boundary maps to the higher band
		{299.999, 1},
		{300, 2},
		{599.999, 2},
		{600, 3},
		{10000, 3},
	}
	for _, c := range cases {
		if got := a.Level(c.d); got != c.want {
			t.Fatalf("Level(%v) = %d, want %d", c.d, got, c.want)
		}
	}
}

func TestMonotonic(t *testing.T) {
	a := defaultAssigner(t)
	prev := Level(0)
	for d := 0.0; d < 1000; d += 0.5 {
		cur := a.Level(d)
		if cur < prev {
			t.Fatalf("Level not monotonic at %v: %d after %d", d, cur, prev)
		}
		prev = cur
	}
}

func TestLevelAt(t *testing.T) {
	a := defaultAssigner(t)
	// 3-4-5 triangle: distance 500 from camera.
	if got := a.LevelAt(0, 0, 300, 400); got != 2 {
		t.Fatalf("LevelAt = %d, want 2", got)
	}
	if got := a.LevelAt(10, 10, 10, 10); got != 0 {
		t.Fatalf("LevelAt same point = %d, want 0", got)
	}
}
