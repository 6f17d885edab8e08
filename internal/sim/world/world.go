// Package world wires the simulation into one facade: terrain generation,
// chunk streaming, entity indexing, LOD assignment and the shared animation
// clock, stepped in a fixed order every tick.
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tileworld.ai/internal/sim/chunk"
	"tileworld.ai/internal/sim/clock"
	"tileworld.ai/internal/sim/grid"
	"tileworld.ai/internal/sim/lod"
	"tileworld.ai/internal/sim/props"
	"tileworld.ai/internal/sim/spatial"
)

var ErrNotReady = errors.New("world: generation still running")

// World owns all runtime state. Accessed only from the world loop
// goroutine, except Ready/Grid which observe the background generation.
type World struct {
	cfg Config

	gen  *grid.Generation
	grid *grid.Grid

	clock  *clock.Clock
	chunks *chunk.Manager
	index  *spatial.Index
	lod    lod.Assigner

	tick   uint64
	levels map[spatial.EntityID]lod.Level
}

// StepResult reports what one tick changed.
type StepResult struct {
	Tick     uint64
	Loaded   []chunk.Key
	Unloaded []chunk.Key
	Levels   map[spatial.EntityID]lod.Level
	Phase    float64
	Strength float64
}

// New validates the config and kicks off terrain generation in the
// background. The world is usable for entity and clock operations
// immediately; tile queries return ErrNotReady until generation finishes.
func New(cfg Config) (*World, error) {
	w, err := assemble(cfg)
	if err != nil {
		return nil, err
	}
	w.gen = grid.StartGeneration(grid.Config{
		Width:            w.cfg.Width,
		Height:           w.cfg.Height,
		Seed:             w.cfg.Seed,
		SampleResolution: w.cfg.SampleResolution,
	})
	return w, nil
}

// Restore builds a world around an already generated grid, e.g. one
// loaded from a snapshot. No generation is started.
func Restore(cfg Config, g *grid.Grid) (*World, error) {
	cfg.Width = g.Width()
	cfg.Height = g.Height()
	cfg.Seed = g.Seed()
	cfg.SampleResolution = g.SampleResolution()
	w, err := assemble(cfg)
	if err != nil {
		return nil, err
	}
	w.grid = g
	return w, nil
}

func assemble(cfg Config) (*World, error) {
	cfg.applyDefaults()

	chunks, err := chunk.NewManager(cfg.ChunkSize, cfg.RenderDistance, cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("chunks: %w", err)
	}
	index, err := spatial.NewIndex(cfg.SpatialCellSize)
	if err != nil {
		return nil, fmt.Errorf("spatial: %w", err)
	}
	assigner, err := lod.New(cfg.LODDistances[0], cfg.LODDistances[1], cfg.LODDistances[2])
	if err != nil {
		return nil, fmt.Errorf("lod: %w", err)
	}

	return &World{
		cfg:    cfg,
		clock:  clock.New(cfg.Seed),
		chunks: chunks,
		index:  index,
		lod:    assigner,
		levels: make(map[spatial.EntityID]lod.Level),
	}, nil
}

func (w *World) Config() Config { return w.cfg }

// Ready reports whether the terrain grid is available.
func (w *World) Ready() bool {
	if w.grid != nil {
		return true
	}
	return w.gen != nil && w.gen.Ready()
}

// Grid returns the terrain grid, or ErrNotReady while generation runs.
// A generation failure is returned as-is and is permanent.
func (w *World) Grid() (*grid.Grid, error) {
	if w.grid != nil {
		return w.grid, nil
	}
	if w.gen == nil {
		return nil, ErrNotReady
	}
	g, err := w.gen.Grid()
	if errors.Is(err, grid.ErrGenerationPending) {
		return nil, ErrNotReady
	}
	if err != nil {
		return nil, err
	}
	w.grid = g
	return g, nil
}

// WaitReady blocks until generation completes.
func (w *World) WaitReady() (*grid.Grid, error) {
	if w.grid != nil {
		return w.grid, nil
	}
	if w.gen == nil {
		return nil, ErrNotReady
	}
	g, err := w.gen.Wait()
	if err != nil {
		return nil, err
	}
	w.grid = g
	return g, nil
}

// Register mints an id for a new entity and inserts it at (x, y).
func (w *World) Register(x, y float64) (spatial.EntityID, error) {
	id := spatial.EntityID(uuid.New().String())
	if err := w.index.Insert(id, x, y); err != nil {
		return "", err
	}
	w.levels[id] = lod.LevelCount - 1
	return id, nil
}

// Attach inserts an entity under a caller-chosen id.
func (w *World) Attach(id spatial.EntityID, x, y float64) error {
	if err := w.index.Insert(id, x, y); err != nil {
		return err
	}
	w.levels[id] = lod.LevelCount - 1
	return nil
}

func (w *World) Deregister(id spatial.EntityID) error {
	if err := w.index.Remove(id); err != nil {
		return err
	}
	delete(w.levels, id)
	return nil
}

func (w *World) MoveEntity(id spatial.EntityID, x, y float64) error {
	return w.index.Move(id, x, y)
}

// Neighbors returns entities within r of (x, y), sorted by id.
func (w *World) Neighbors(x, y, r float64) []spatial.EntityID {
	return w.index.QueryRadius(x, y, r)
}

func (w *World) EntityCount() int { return w.index.Len() }

// LevelOf returns the LOD band assigned to id on the last Step.
func (w *World) LevelOf(id spatial.EntityID) (lod.Level, bool) {
	lv, ok := w.levels[id]
	return lv, ok
}

func (w *World) Chunks() *chunk.Manager { return w.chunks }
func (w *World) Clock() *clock.Clock    { return w.clock }

// Step advances one tick: clock first, then chunk residency around the
// camera, then LOD bands for every registered entity. The order is fixed
// so two worlds stepped with identical inputs stay byte-identical.
func (w *World) Step(dt, camX, camY float64) StepResult {
	w.tick++
	w.clock.Advance(dt)

	loaded, unloaded := w.chunks.Update(camX, camY)

	for id := range w.levels {
		x, y, err := w.index.Position(id)
		if err != nil {
			continue
		}
		w.levels[id] = w.lod.LevelAt(camX, camY, x, y)
	}

	phase, strength := w.clock.Sample()
	out := StepResult{
		Tick:     w.tick,
		Loaded:   loaded,
		Unloaded: unloaded,
		Levels:   make(map[spatial.EntityID]lod.Level, len(w.levels)),
		Phase:    phase,
		Strength: strength,
	}
	for id, lv := range w.levels {
		out.Levels[id] = lv
	}
	return out
}

func (w *World) Tick() uint64 { return w.tick }

// PropsAt returns the decorations seeded on one tile. Requires the grid.
func (w *World) PropsAt(x, y int) ([]props.Kind, error) {
	g, err := w.Grid()
	if err != nil {
		return nil, err
	}
	b, err := g.BiomeAt(x, y)
	if err != nil {
		return nil, err
	}
	return props.At(w.cfg.Seed, b, x, y), nil
}

// SwayAngleAt evaluates a prop's sway under the current clock sample.
// phaseOffset decorrelates neighbors so a field does not move in lockstep.
func (w *World) SwayAngleAt(k props.Kind, phaseOffset float64) float64 {
	phase, strength := w.clock.Sample()
	return props.SwayAngle(phase, strength, k, phaseOffset)
}
