package biome

// Smooth rewrites a row-major biome grid in place so every 4-connected pair
// is legal per CanTransition. Single deterministic pass in row-major order:
// each tile keeps its raw biome when it is already legal against the
// finalized left and top neighbors, otherwise it takes the candidate biome
// that satisfies both neighbors and minimizes HopDistance from the raw
// biome, ties broken by lowest id.
//
// A satisfying candidate always exists for non-Caves tiles: the finalized
// left and top neighbors are each within one hop of their shared diagonal
// neighbor, so that diagonal's biome is legal against both. Caves tiles are
// left untouched (isolated by definition).
func Smooth(biomes []Biome, width, height int) {
	if width <= 0 || height <= 0 || len(biomes) != width*height {
		return
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			cur := biomes[i]
			if cur == Caves {
				continue
			}

			hasLeft := x > 0
			hasTop := y > 0
			var left, top Biome
			if hasLeft {
				left = biomes[i-1]
			}
			if hasTop {
				top = biomes[i-width]
			}

			if legalAgainst(cur, left, hasLeft) && legalAgainst(cur, top, hasTop) {
				continue
			}

			best := cur
			bestDist := maxHops + 1
			for cand := Biome(0); cand < Count; cand++ {
				if cand == Caves {
					continue
				}
				if !legalAgainst(cand, left, hasLeft) || !legalAgainst(cand, top, hasTop) {
					continue
				}
				if d := HopDistance(cur, cand); d < bestDist {
					best = cand
					bestDist = d
				}
			}
			biomes[i] = best
		}
	}
}

func legalAgainst(b, neighbor Biome, has bool) bool {
	if !has || neighbor == Caves {
		return true
	}
	return CanTransition(b, neighbor)
}
