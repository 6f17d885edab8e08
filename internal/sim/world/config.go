package world

import (
	"fmt"

	"tileworld.ai/internal/sim/tuning"
)

// Config collects everything needed to stand up one world instance.
type Config struct {
	Width  int
	Height int
	Seed   int64

	ChunkSize        int
	RenderDistance   float64
	LODDistances     [3]float64
	SpatialCellSize  float64
	SampleResolution int
}

func (c *Config) applyDefaults() {
	def := tuning.Default()
	if c.Width <= 0 {
		c.Width = def.WorldWidth
	}
	if c.Height <= 0 {
		c.Height = def.WorldHeight
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = def.ChunkSize
	}
	if c.RenderDistance <= 0 {
		c.RenderDistance = def.RenderDistance
	}
	if c.LODDistances == [3]float64{} {
		copy(c.LODDistances[:], def.LODDistances)
	}
	if c.SpatialCellSize <= 0 {
		c.SpatialCellSize = def.SpatialCellSize
	}
	if c.SampleResolution <= 0 {
		c.SampleResolution = def.SampleResolution
	}
}

// ConfigFromTuning maps a loaded tuning file onto a world config.
func ConfigFromTuning(t tuning.Tuning) (Config, error) {
	if err := t.Validate(); err != nil {
		return Config{}, fmt.Errorf("tuning: %w", err)
	}
	c := Config{
		Width:            t.WorldWidth,
		Height:           t.WorldHeight,
		Seed:             t.Seed,
		ChunkSize:        t.ChunkSize,
		RenderDistance:   t.RenderDistance,
		SpatialCellSize:  t.SpatialCellSize,
		SampleResolution: t.SampleResolution,
	}
	copy(c.LODDistances[:], t.LODDistances)
	c.applyDefaults()
	return c, nil
}
