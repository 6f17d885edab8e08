package lod

import (
	"fmt"
	"math"
)

// Level is the discrete detail tier: 0 is full detail, 3 is minimal.
// Recomputed every tick, never persisted.
type Level uint8

const LevelCount = 4

// Assigner maps camera distance to a level over three fixed ascending
// breakpoints. Bands are left-closed/right-open: a distance exactly on a
// breakpoint belongs to the higher-index band.
type Assigner struct {
	breaks [3]float64
}

func New(d0, d1, d2 float64) (Assigner, error) {
	if !(d0 > 0 && d1 > d0 && d2 > d1) {
		return Assigner{}, fmt.Errorf("breakpoints not ascending: %v %v %v", d0, d1, d2)
	}
	return Assigner{breaks: [3]float64{d0, d1, d2}}, nil
}

// Level assigns the tier for a distance.
func (a Assigner) Level(distance float64) Level {
	switch {
	case distance < a.breaks[0]:
		return 0
	case distance < a.breaks[1]:
		return 1
	case distance < a.breaks[2]:
		return 2
	default:
		return 3
	}
}

// LevelAt assigns the tier for an entity position against the camera.
func (a Assigner) LevelAt(camX, camY, x, y float64) Level {
	return a.Level(math.Hypot(x-camX, y-camY))
}
