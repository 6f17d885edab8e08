package world

import (
	"testing"

	"tileworld.ai/internal/sim/lod"
	"tileworld.ai/internal/sim/props"
	"tileworld.ai/internal/sim/spatial"
	"tileworld.ai/internal/sim/tuning"
)

func testConfig() Config {
	return Config{
		Width:           96,
		Height:          96,
		Seed:            42,
		ChunkSize:       32,
		RenderDistance:  100,
		LODDistances:    [3]float64{100, 300, 600},
		SpatialCellSize: 64,
	}
}

func newReady(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := w.WaitReady(); err != nil {
		t.Fatalf("WaitReady: %v", err)
	}
	return w
}

func TestNewRejectsBadLODBreakpoints(t *testing.T) {
	cfg := testConfig()
	cfg.LODDistances = [3]float64{300, 100, 600}
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for descending breakpoints")
	}
}

func TestConfigFromTuningDefaults(t *testing.T) {
	cfg, err := ConfigFromTuning(tuning.Default())
	if err != nil {
		t.Fatalf("ConfigFromTuning: %v", err)
	}
	if cfg.Width != 1000 || cfg.ChunkSize != 32 || cfg.RenderDistance != 800 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LODDistances != [3]float64{100, 300, 600} {
		t.Fatalf("lod distances: %v", cfg.LODDistances)
	}
}

func TestGridAvailableAfterWait(t *testing.T) {
	w := newReady(t, testConfig())
	if !w.Ready() {
		t.Fatalf("Ready=false after WaitReady")
	}
	g, err := w.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if g.Width() != 96 || g.Height() != 96 {
		t.Fatalf("grid dims: %dx%d", g.Width(), g.Height())
	}
}

func TestRegisterDeregisterNeighbors(t *testing.T) {
	w := newReady(t, testConfig())

	if err := w.Attach("a", 10, 10); err != nil {
		t.Fatalf("Attach a: %v", err)
	}
	if err := w.Attach("b", 40, 10); err != nil {
		t.Fatalf("Attach b: %v", err)
	}
	id, err := w.Register(500, 500)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if id == "" {
		t.Fatalf("empty minted id")
	}
	if w.EntityCount() != 3 {
		t.Fatalf("count=%d want=3", w.EntityCount())
	}

	got := w.Neighbors(10, 10, 35)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("neighbors=%v", got)
	}

	if err := w.Deregister("b"); err != nil {
		t.Fatalf("Deregister: %v", err)
	}
	if _, ok := w.LevelOf("b"); ok {
		t.Fatalf("level survived deregister")
	}
	if got := w.Neighbors(10, 10, 35); len(got) != 1 || got[0] != "a" {
		t.Fatalf("neighbors after remove=%v", got)
	}

	if err := w.Deregister("b"); err == nil {
		t.Fatalf("expected error deregistering twice")
	}
}

func TestStepAssignsLODBands(t *testing.T) {
	w := newReady(t, testConfig())
	if err := w.Attach("near", 10, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.Attach("mid", 200, 0); err != nil {
		t.Fatal(err)
	}
	if err := w.Attach("far", 700, 0); err != nil {
		t.Fatal(err)
	}

	res := w.Step(1.0/60, 0, 0)
	if res.Tick != 1 {
		t.Fatalf("tick=%d want=1", res.Tick)
	}
	if res.Levels["near"] != 0 || res.Levels["mid"] != 1 || res.Levels["far"] != 3 {
		t.Fatalf("levels=%v", res.Levels)
	}

	// Moving the camera reassigns on the next step, not immediately.
	res = w.Step(1.0/60, 700, 0)
	if res.Levels["far"] != 0 {
		t.Fatalf("far level after camera move: %d", res.Levels["far"])
	}
}

func TestStepLoadsChunksAroundCamera(t *testing.T) {
	w := newReady(t, testConfig())

	res := w.Step(1.0/60, 16, 16)
	if len(res.Loaded) == 0 {
		t.Fatalf("no chunks loaded on first step")
	}
	if len(res.Unloaded) != 0 {
		t.Fatalf("unloaded on first step: %v", res.Unloaded)
	}
	// Same camera, no residency change.
	res = w.Step(1.0/60, 16, 16)
	if len(res.Loaded) != 0 || len(res.Unloaded) != 0 {
		t.Fatalf("residency churn without camera move: +%v -%v", res.Loaded, res.Unloaded)
	}
}

func TestStepDeterminism(t *testing.T) {
	run := func() []StepResult {
		w := newReady(t, testConfig())
		ids := []spatial.EntityID{"e1", "e2", "e3"}
		pos := [][2]float64{{5, 5}, {60, 20}, {90, 90}}
		for i, id := range ids {
			if err := w.Attach(id, pos[i][0], pos[i][1]); err != nil {
				t.Fatal(err)
			}
		}
		var out []StepResult
		camX := 0.0
		for i := 0; i < 20; i++ {
			camX += 8
			if err := w.MoveEntity("e1", 5+float64(i), 5); err != nil {
				t.Fatal(err)
			}
			out = append(out, w.Step(1.0/60, camX, 16))
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i].Tick != b[i].Tick || a[i].Phase != b[i].Phase || a[i].Strength != b[i].Strength {
			t.Fatalf("step %d: clock diverged", i)
		}
		if len(a[i].Loaded) != len(b[i].Loaded) || len(a[i].Unloaded) != len(b[i].Unloaded) {
			t.Fatalf("step %d: chunk residency diverged", i)
		}
		for j := range a[i].Loaded {
			if a[i].Loaded[j] != b[i].Loaded[j] {
				t.Fatalf("step %d: loaded order diverged", i)
			}
		}
		for id, lv := range a[i].Levels {
			if b[i].Levels[id] != lv {
				t.Fatalf("step %d: level for %s diverged", i, id)
			}
		}
	}
}

func TestRestoreSkipsGeneration(t *testing.T) {
	w := newReady(t, testConfig())
	g, err := w.Grid()
	if err != nil {
		t.Fatal(err)
	}

	r, err := Restore(testConfig(), g)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !r.Ready() {
		t.Fatalf("restored world not ready")
	}
	rg, err := r.Grid()
	if err != nil {
		t.Fatalf("Grid: %v", err)
	}
	if rg.Digest() != g.Digest() {
		t.Fatalf("restored grid digest differs")
	}
}

func TestPropsAtDeterministic(t *testing.T) {
	w := newReady(t, testConfig())

	total := 0
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			a, err := w.PropsAt(x, y)
			if err != nil {
				t.Fatalf("PropsAt(%d,%d): %v", x, y, err)
			}
			b, _ := w.PropsAt(x, y)
			if len(a) != len(b) {
				t.Fatalf("props not stable at (%d,%d)", x, y)
			}
			total += len(a)
		}
	}
	if total == 0 {
		t.Fatalf("no props anywhere on a 96x96 world")
	}
}

func TestSwayAngleTracksClock(t *testing.T) {
	w := newReady(t, testConfig())
	a := w.SwayAngleAt(props.Grass, 0.5)
	w.Step(0.5, 0, 0)
	b := w.SwayAngleAt(props.Grass, 0.5)
	if a == b {
		t.Fatalf("sway angle frozen across clock advance")
	}
}

func TestLevelOfBeforeFirstStep(t *testing.T) {
	w := newReady(t, testConfig())
	if err := w.Attach("a", 0, 0); err != nil {
		t.Fatal(err)
	}
	lv, ok := w.LevelOf("a")
	if !ok {
		t.Fatalf("no level for attached entity")
	}
	if lv != lod.LevelCount-1 {
		t.Fatalf("initial level=%d want coarsest", lv)
	}
}
