package noise

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Per-field base frequencies and octave shaping. Elevation uses a 4-octave
// fractal sum; temperature and moisture ride a single low-frequency octave.
const (
	elevationScale   = 0.01
	temperatureScale = 0.005
	moistureScale    = 0.008

	elevationOctaves = 4
	persistence      = 0.5

	latitudeNoiseWeight = 0.3
)

// Field produces the three environmental scalars over tile coordinates.
// Same seed and coordinate always give bit-identical output; the three
// channels run on independently seeded sources (seed, seed+1, seed+2).
type Field struct {
	elevation   *perlin.Perlin
	temperature *perlin.Perlin
	moisture    *perlin.Perlin
	height      int
}

// New creates a field for a world of the given height in tiles. The height
// drives the temperature latitude gradient.
func New(seed int64, height int) *Field {
	return &Field{
		elevation:   perlin.NewPerlin(2, 2, 1, seed),
		temperature: perlin.NewPerlin(2, 2, 1, seed+1),
		moisture:    perlin.NewPerlin(2, 2, 1, seed+2),
		height:      height,
	}
}

// Elevation returns terrain height in [0,1] at a tile coordinate.
func (f *Field) Elevation(x, y int) float64 {
	sum := 0.0
	norm := 0.0
	amp := 1.0
	freq := elevationScale
	for o := 0; o < elevationOctaves; o++ {
		sum += f.elevation.Noise2D(float64(x)*freq, float64(y)*freq) * amp
		norm += amp
		amp *= persistence
		freq *= 2
	}
	return clamp01((sum/norm + 1) / 2)
}

// Temperature returns [0,1]: a north-hot/south-cold latitude gradient with a
// low-frequency noise perturbation on top.
func (f *Field) Temperature(x, y int) float64 {
	latitude := 1 - float64(y)/float64(f.height)
	n := f.temperature.Noise2D(float64(x)*temperatureScale, float64(y)*temperatureScale)
	return clamp01(latitude + n*latitudeNoiseWeight)
}

// Moisture returns [0,1] from a single low-frequency octave.
func (f *Field) Moisture(x, y int) float64 {
	n := f.moisture.Noise2D(float64(x)*moistureScale, float64(y)*moistureScale)
	return clamp01((n + 1) / 2)
}

// At returns all three scalars for a tile.
func (f *Field) At(x, y int) (elevation, temperature, moisture float64) {
	return f.Elevation(x, y), f.Temperature(x, y), f.Moisture(x, y)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	if math.IsNaN(v) {
		return 0
	}
	return v
}
