package props

import (
	"math"

	"tileworld.ai/internal/sim/biome"
)

// Kind is a decorative environment element placed on a tile. Placement is a
// pure function of (seed, biome, coordinate); the renderer owns everything
// else about these.
type Kind uint8

const (
	Tree Kind = iota
	Grass
	Rock
	Cactus
	Bush
	Flower
	Mushroom
	DeadTree

	KindCount = 8
)

var kindNames = [KindCount]string{
	"TREE", "GRASS", "ROCK", "CACTUS", "BUSH", "FLOWER", "MUSHROOM", "DEAD_TREE",
}

func (k Kind) String() string {
	if k >= KindCount {
		return "INVALID"
	}
	return kindNames[k]
}

// Sways reports whether the element participates in wind animation.
func (k Kind) Sways() bool {
	switch k {
	case Tree, Grass, Bush, Flower, Cactus:
		return true
	}
	return false
}

// SwayProfile returns rotation amplitude (radians) and frequency for
// swaying kinds, zeros otherwise.
func (k Kind) SwayProfile() (amplitude, frequency float64) {
	switch k {
	case Tree:
		return 0.05, 1.0
	case Grass:
		return 0.1, 3.0
	case Bush:
		return 0.03, 1.5
	case Flower:
		return 0.08, 2.5
	case Cactus:
		return 0.02, 0.8
	}
	return 0, 0
}

// Size returns the sprite footprint in world units.
func (k Kind) Size() (w, h float64) {
	switch k {
	case Tree:
		return 3.0, 4.0
	case Grass:
		return 1.0, 2.0
	case Rock:
		return 2.0, 1.5
	case Cactus:
		return 1.5, 3.0
	case Bush:
		return 2.0, 1.5
	case Flower:
		return 0.8, 1.0
	case Mushroom:
		return 1.0, 1.0
	case DeadTree:
		return 2.5, 3.5
	}
	return 0, 0
}

type placement struct {
	kind     Kind
	permille uint64
}

// Per-biome spawn chances. Ocean and Coastal carry no land elements.
var placementTable = [biome.Count][]placement{
	biome.Forest:             {{Tree, 300}, {Bush, 400}, {Mushroom, 200}},
	biome.TropicalRainforest: {{Tree, 500}, {Bush, 600}, {Flower, 100}},
	biome.Grasslands:         {{Grass, 700}, {Flower, 100}, {Rock, 50}},
	biome.Savanna:            {{Grass, 500}, {Tree, 100}, {Rock, 100}},
	biome.Desert:             {{Cactus, 100}, {Rock, 150}, {DeadTree, 50}},
	biome.Mountain:           {{Rock, 300}, {DeadTree, 100}},
	biome.Alpine:             {{Rock, 400}},
	biome.Wetlands:           {{Grass, 600}, {Bush, 200}, {Mushroom, 100}},
	biome.Tundra:             {{Rock, 100}},
	biome.Badlands:           {{Rock, 200}, {DeadTree, 50}},
	biome.Volcanic:           {{Rock, 250}},
	biome.Caves:              {{Mushroom, 300}, {Rock, 400}},
}

// At returns the elements present on a tile. Deterministic: each slot rolls
// an independent hash of (seed, coordinate, slot).
func At(seed int64, b biome.Biome, x, y int) []Kind {
	if !b.Valid() {
		return nil
	}
	var out []Kind
	for slot, p := range placementTable[b] {
		if hash3(seed, x, y, slot)%1000 < p.permille {
			out = append(out, p.kind)
		}
	}
	return out
}

// SwayAngle computes the rotation offset for one element under the shared
// wind sample. phaseOffset desynchronizes elements of the same kind.
func SwayAngle(phase, strength float64, k Kind, phaseOffset float64) float64 {
	amp, freq := k.SwayProfile()
	if amp == 0 {
		return 0
	}
	return math.Sin((phase+phaseOffset)*freq) * amp * strength
}

func mix64(z uint64) uint64 {
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func hash3(seed int64, x, y, slot int) uint64 {
	ux := uint64(uint32(int32(x)))
	uy := uint64(uint32(int32(y)))
	us := uint64(uint32(int32(slot)))
	v := uint64(seed) ^ (ux * 0x9e3779b97f4a7c15) ^ (uy * 0xc2b2ae3d27d4eb4f) ^ (us * 0xbf58476d1ce4e5b9)
	return mix64(v)
}
