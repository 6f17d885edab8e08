package grid

import (
	"errors"

	"tileworld.ai/internal/sim/biome"
	"tileworld.ai/internal/sim/noise"
)

// ErrGenerationPending is returned when a grid is requested from a
// generation that has not completed yet.
var ErrGenerationPending = errors.New("world generation pending")

// Generate runs classification over every coordinate and returns a fully
// populated grid. It either succeeds completely or fails before any grid
// exists; callers never see partial state.
func Generate(cfg Config) (*Grid, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	field := noise.New(cfg.Seed, cfg.Height)
	w, h, stride := cfg.Width, cfg.Height, cfg.SampleResolution
	sampleW := (w + stride - 1) / stride
	sampleH := (h + stride - 1) / stride

	raw := make([]biome.Biome, w*h)
	g := &Grid{
		width:       w,
		height:      h,
		seed:        cfg.Seed,
		stride:      stride,
		sampleW:     sampleW,
		sampleH:     sampleH,
		biomes:      make([]byte, (w*h+1)/2),
		elevation:   make([]float32, sampleW*sampleH),
		temperature: make([]float32, sampleW*sampleH),
		moisture:    make([]float32, sampleW*sampleH),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			e, t, m := field.At(x, y)
			b, err := biome.Classify(e, t, m)
			if err != nil {
				// The rule table is total over [0,1]^3; reaching this means a
				// rule-table gap and must surface, not default silently.
				return nil, err
			}
			raw[y*w+x] = b
			if x%stride == 0 && y%stride == 0 {
				si := (y/stride)*sampleW + x/stride
				g.elevation[si] = float32(e)
				g.temperature[si] = float32(t)
				g.moisture[si] = float32(m)
			}
		}
	}

	biome.Smooth(raw, w, h)

	for i, b := range raw {
		if i&1 == 1 {
			g.biomes[i>>1] |= byte(b) << 4
		} else {
			g.biomes[i>>1] |= byte(b)
		}
	}
	return g, nil
}

// Generation is a one-shot background generation task: pending until Done
// closes, then permanently ready (or failed). At most one should be in
// flight per world instance; the World facade enforces that.
type Generation struct {
	done chan struct{}
	grid *Grid
	err  error
}

// StartGeneration runs Generate on a background goroutine. The grid is
// published only after it is wholly built.
func StartGeneration(cfg Config) *Generation {
	gen := &Generation{done: make(chan struct{})}
	go func() {
		defer close(gen.done)
		gen.grid, gen.err = Generate(cfg)
	}()
	return gen
}

// Done closes when the task finishes, successfully or not.
func (g *Generation) Done() <-chan struct{} { return g.done }

// Ready polls for completion without blocking.
func (g *Generation) Ready() bool {
	select {
	case <-g.done:
		return true
	default:
		return false
	}
}

// Grid returns the finished grid, or ErrGenerationPending while the task is
// still running.
func (g *Generation) Grid() (*Grid, error) {
	if !g.Ready() {
		return nil, ErrGenerationPending
	}
	return g.grid, g.err
}

// Wait blocks until completion and returns the result.
func (g *Generation) Wait() (*Grid, error) {
	<-g.done
	return g.grid, g.err
}
