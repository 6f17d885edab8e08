package biome

import "errors"

// ErrUnclassifiableSample means the rule table did not cover an input.
// The classifier never falls back to an arbitrary biome.
var ErrUnclassifiableSample = errors.New("unclassifiable environment sample")

// Classify maps an (elevation, temperature, moisture) triple in [0,1]^3 to
// exactly one biome. Rules are evaluated in a fixed priority order, so
// overlapping regions always resolve the same way:
//
//  1. water: elevation below 0.30 is Ocean, below 0.35 Coastal
//  2. high ground: elevation above 0.80 splits by temperature into
//     Alpine / Mountain / Volcanic
//  3. extreme cold: temperature below 0.10 is Tundra
//  4. hot row (temperature above 0.70): Desert / Savanna / TropicalRainforest
//     by rising moisture
//  5. moderate row: Wetlands / Forest / Grasslands by falling moisture
//  6. remaining cold band is Tundra
//
// Caves and Badlands are never produced here: Caves is underground-only and
// Badlands only appears through adjacency smoothing between Volcanic and
// Desert country.
func Classify(elevation, temperature, moisture float64) (Biome, error) {
	if !in01(elevation) || !in01(temperature) || !in01(moisture) {
		return 0, ErrUnclassifiableSample
	}

	switch {
	case elevation < 0.30:
		return Ocean, nil
	case elevation < 0.35:
		return Coastal, nil
	}

	if elevation > 0.80 {
		switch {
		case temperature < 0.30:
			return Alpine, nil
		case temperature < 0.70:
			return Mountain, nil
		default:
			return Volcanic, nil
		}
	}

	if temperature < 0.10 {
		return Tundra, nil
	}

	switch {
	case temperature > 0.70 && moisture < 0.30:
		return Desert, nil
	case temperature > 0.70 && moisture < 0.60:
		return Savanna, nil
	case temperature > 0.70:
		return TropicalRainforest, nil
	case temperature > 0.30 && moisture > 0.80:
		return Wetlands, nil
	case temperature > 0.30 && moisture > 0.55:
		return Forest, nil
	case temperature > 0.30:
		return Grasslands, nil
	case temperature <= 0.30:
		return Tundra, nil
	}

	return 0, ErrUnclassifiableSample
}

func in01(v float64) bool {
	// Also rejects NaN.
	return v >= 0 && v <= 1
}
