package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Default()
	if d.WorldWidth != 1000 || d.WorldHeight != 1000 {
		t.Fatalf("world extents: %dx%d", d.WorldWidth, d.WorldHeight)
	}
	if d.ChunkSize != 32 {
		t.Fatalf("chunk_size: %d", d.ChunkSize)
	}
	if d.RenderDistance != 800 {
		t.Fatalf("render_distance: %v", d.RenderDistance)
	}
	if len(d.LODDistances) != 3 || d.LODDistances[0] != 100 || d.LODDistances[1] != 300 || d.LODDistances[2] != 600 {
		t.Fatalf("lod_distances: %v", d.LODDistances)
	}
	if d.SpatialCellSize != 64 {
		t.Fatalf("spatial_cell_size: %v", d.SpatialCellSize)
	}
	if d.SampleResolution != 8 {
		t.Fatalf("sample_resolution: %d", d.SampleResolution)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	body := "world_width: 200\nseed: 42\nchunk_size: 16\nlod_distances: [50, 150, 400]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.WorldWidth != 200 || got.Seed != 42 || got.ChunkSize != 16 {
		t.Fatalf("overrides not applied: %+v", got)
	}
	// Unset fields fall back to defaults.
	if got.WorldHeight != 1000 || got.RenderDistance != 800 || got.SampleResolution != 8 {
		t.Fatalf("defaults not applied: %+v", got)
	}
	if got.LODDistances[2] != 400 {
		t.Fatalf("lod_distances: %v", got.LODDistances)
	}
}

func TestValidateRejectsBadBreakpoints(t *testing.T) {
	bad := Default()
	bad.LODDistances = []float64{100, 100, 600}
	if err := bad.Validate(); err == nil {
		t.Fatal("non-ascending breakpoints accepted")
	}
	bad.LODDistances = []float64{100, 300}
	if err := bad.Validate(); err == nil {
		t.Fatal("two breakpoints accepted")
	}
}
