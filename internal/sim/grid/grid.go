package grid

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"tileworld.ai/internal/sim/biome"
)

var (
	ErrInvalidGenerationParams = errors.New("invalid generation parameters")
	ErrOutOfBounds             = errors.New("tile out of bounds")
)

// Config are the parameters of one world generation run.
type Config struct {
	Width  int
	Height int
	Seed   int64

	// SampleResolution is the tile stride of the sparse environmental
	// samples. Zero means the default of 8.
	SampleResolution int
}

func (c *Config) applyDefaults() {
	if c.SampleResolution <= 0 {
		c.SampleResolution = 8
	}
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: extents %dx%d", ErrInvalidGenerationParams, c.Width, c.Height)
	}
	return nil
}

// Tile is the immutable per-coordinate record handed to consumers. The
// scalar channels are the nearest sparse sample, not full-resolution values.
type Tile struct {
	Biome       biome.Biome
	Elevation   float32
	Temperature float32
	Moisture    float32
	Resources   []biome.Resource
}

// Grid owns all tile memory for one generated world. Immutable once built,
// so it is freely shared for concurrent reads without locking.
//
// Biomes are packed two per byte in row-major order (even linear index in
// the low nibble); elevation/temperature/moisture are retained only every
// stride-th tile per axis.
type Grid struct {
	width  int
	height int
	seed   int64
	stride int

	biomes []byte

	sampleW     int
	sampleH     int
	elevation   []float32
	temperature []float32
	moisture    []float32
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Seed() int64 { return g.seed }

// SampleResolution returns the tile stride of the sparse samples.
func (g *Grid) SampleResolution() int { return g.stride }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// BiomeAt unpacks the biome for one tile.
func (g *Grid) BiomeAt(x, y int) (biome.Biome, error) {
	if !g.inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return g.biomeAt(x, y), nil
}

func (g *Grid) biomeAt(x, y int) biome.Biome {
	i := y*g.width + x
	packed := g.biomes[i>>1]
	if i&1 == 1 {
		return biome.Biome(packed >> 4)
	}
	return biome.Biome(packed & 0x0F)
}

// TileAt assembles the full tile record for a coordinate.
func (g *Grid) TileAt(x, y int) (Tile, error) {
	if !g.inBounds(x, y) {
		return Tile{}, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	b := g.biomeAt(x, y)
	e, t, m := g.sampleAt(x, y)
	return Tile{
		Biome:       b,
		Elevation:   e,
		Temperature: t,
		Moisture:    m,
		Resources:   b.Resources(),
	}, nil
}

// SampleAt returns the nearest retained environmental sample for a tile.
// Exact at sampled coordinates (x and y multiples of the stride).
func (g *Grid) SampleAt(x, y int) (elevation, temperature, moisture float32, err error) {
	if !g.inBounds(x, y) {
		return 0, 0, 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	e, t, m := g.sampleAt(x, y)
	return e, t, m, nil
}

func (g *Grid) sampleAt(x, y int) (float32, float32, float32) {
	i := (y/g.stride)*g.sampleW + x/g.stride
	return g.elevation[i], g.temperature[i], g.moisture[i]
}

// InterpolatedAt reconstructs a continuous scalar estimate by bilinear
// interpolation between the four surrounding samples. Precision loss against
// the original field is bounded by the stride and documented, not hidden:
// consumers that need exact values must read sampled coordinates.
func (g *Grid) InterpolatedAt(x, y int) (elevation, temperature, moisture float64, err error) {
	if !g.inBounds(x, y) {
		return 0, 0, 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	gx := float64(x) / float64(g.stride)
	gy := float64(y) / float64(g.stride)
	x0 := int(gx)
	y0 := int(gy)
	x1 := x0 + 1
	y1 := y0 + 1
	if x1 > g.sampleW-1 {
		x1 = g.sampleW - 1
	}
	if y1 > g.sampleH-1 {
		y1 = g.sampleH - 1
	}
	tx := gx - float64(x0)
	ty := gy - float64(y0)

	lerp2 := func(s []float32) float64 {
		v00 := float64(s[y0*g.sampleW+x0])
		v10 := float64(s[y0*g.sampleW+x1])
		v01 := float64(s[y1*g.sampleW+x0])
		v11 := float64(s[y1*g.sampleW+x1])
		top := v00 + (v10-v00)*tx
		bot := v01 + (v11-v01)*tx
		return top + (bot-top)*ty
	}
	return lerp2(g.elevation), lerp2(g.temperature), lerp2(g.moisture), nil
}

// PackedBiomes returns a copy of the packed biome bytes.
func (g *Grid) PackedBiomes() []byte {
	out := make([]byte, len(g.biomes))
	copy(out, g.biomes)
	return out
}

// Samples returns copies of the sparse scalar planes.
func (g *Grid) Samples() (elevation, temperature, moisture []float32) {
	e := make([]float32, len(g.elevation))
	t := make([]float32, len(g.temperature))
	m := make([]float32, len(g.moisture))
	copy(e, g.elevation)
	copy(t, g.temperature)
	copy(m, g.moisture)
	return e, t, m
}

// Digest hashes the full packed state. Two grids with equal digests hold
// identical tile data.
func (g *Grid) Digest() [32]byte {
	h := sha256.New()
	var hdr [8]byte
	for _, v := range []int{g.width, g.height, g.stride} {
		binary.LittleEndian.PutUint64(hdr[:], uint64(int64(v)))
		h.Write(hdr[:])
	}
	binary.LittleEndian.PutUint64(hdr[:], uint64(g.seed))
	h.Write(hdr[:])
	h.Write(g.biomes)
	var tmp [4]byte
	for _, plane := range [][]float32{g.elevation, g.temperature, g.moisture} {
		for _, v := range plane {
			binary.LittleEndian.PutUint32(tmp[:], math.Float32bits(v))
			h.Write(tmp[:])
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// FromParts rebuilds a grid from its serialized pieces, validating shapes
// and biome ids. Used by the snapshot codec.
func FromParts(width, height int, seed int64, stride int, packed []byte, elevation, temperature, moisture []float32) (*Grid, error) {
	cfg := Config{Width: width, Height: height, Seed: seed, SampleResolution: stride}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.SampleResolution != stride {
		return nil, fmt.Errorf("%w: sample resolution %d", ErrInvalidGenerationParams, stride)
	}
	wantPacked := (width*height + 1) / 2
	if len(packed) != wantPacked {
		return nil, fmt.Errorf("packed biomes: got %d bytes, want %d", len(packed), wantPacked)
	}
	for i := 0; i < width*height; i++ {
		var id biome.Biome
		if i&1 == 1 {
			id = biome.Biome(packed[i>>1] >> 4)
		} else {
			id = biome.Biome(packed[i>>1] & 0x0F)
		}
		if !id.Valid() {
			return nil, fmt.Errorf("packed biomes: invalid id %d at tile %d", id, i)
		}
	}
	sampleW := (width + stride - 1) / stride
	sampleH := (height + stride - 1) / stride
	want := sampleW * sampleH
	if len(elevation) != want || len(temperature) != want || len(moisture) != want {
		return nil, fmt.Errorf("sample planes: got %d/%d/%d values, want %d",
			len(elevation), len(temperature), len(moisture), want)
	}

	g := &Grid{
		width:   width,
		height:  height,
		seed:    seed,
		stride:  stride,
		sampleW: sampleW,
		sampleH: sampleH,
	}
	g.biomes = make([]byte, len(packed))
	copy(g.biomes, packed)
	g.elevation = make([]float32, want)
	g.temperature = make([]float32, want)
	g.moisture = make([]float32, want)
	copy(g.elevation, elevation)
	copy(g.temperature, temperature)
	copy(g.moisture, moisture)
	return g, nil
}
