package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the startup-overridable constants for the spatial core.
// All distances are in world units; one tile is one world unit.
type Tuning struct {
	WorldWidth  int   `yaml:"world_width"`
	WorldHeight int   `yaml:"world_height"`
	Seed        int64 `yaml:"seed"`

	ChunkSize        int       `yaml:"chunk_size"`
	RenderDistance   float64   `yaml:"render_distance"`
	LODDistances     []float64 `yaml:"lod_distances"`
	SpatialCellSize  float64   `yaml:"spatial_cell_size"`
	SampleResolution int       `yaml:"sample_resolution"`

	TickRateHz int `yaml:"tick_rate_hz"`
}

func Default() Tuning {
	var t Tuning
	t.applyDefaults()
	return t
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return t, err
	}
	return t, nil
}

func (t *Tuning) applyDefaults() {
	if t.WorldWidth <= 0 {
		t.WorldWidth = 1000
	}
	if t.WorldHeight <= 0 {
		t.WorldHeight = 1000
	}
	if t.ChunkSize <= 0 {
		t.ChunkSize = 32
	}
	if t.RenderDistance <= 0 {
		t.RenderDistance = 800
	}
	if len(t.LODDistances) == 0 {
		t.LODDistances = []float64{100, 300, 600}
	}
	if t.SpatialCellSize <= 0 {
		t.SpatialCellSize = 64
	}
	if t.SampleResolution <= 0 {
		t.SampleResolution = 8
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = 60
	}
}

func (t Tuning) Validate() error {
	if len(t.LODDistances) != 3 {
		return fmt.Errorf("lod_distances: want 3 breakpoints, got %d", len(t.LODDistances))
	}
	prev := 0.0
	for i, d := range t.LODDistances {
		if d <= prev {
			return fmt.Errorf("lod_distances: breakpoint %d (%v) not ascending", i, d)
		}
		prev = d
	}
	return nil
}
