package biome

// Biome is the per-tile terrain classification. Ids are stable and fit in
// 4 bits; the packed grid layout depends on this ordering never changing.
type Biome uint8

const (
	Ocean Biome = iota
	Coastal
	Desert
	Savanna
	Grasslands
	Forest
	TropicalRainforest
	Mountain
	Alpine
	Tundra
	Wetlands
	Caves
	Volcanic
	Badlands

	Count = 14
)

var biomeNames = [Count]string{
	"OCEAN", "COASTAL", "DESERT", "SAVANNA", "GRASSLANDS", "FOREST",
	"TROPICAL_RAINFOREST", "MOUNTAIN", "ALPINE", "TUNDRA", "WETLANDS",
	"CAVES", "VOLCANIC", "BADLANDS",
}

func (b Biome) String() string {
	if !b.Valid() {
		return "INVALID"
	}
	return biomeNames[b]
}

func (b Biome) Valid() bool { return b < Count }

// Resource is a kind of natural resource a biome can carry.
type Resource uint8

const (
	Water Resource = iota
	Wood
	Stone
	Fish
	Berries
	Herbs
	Minerals
	Salt
	Ice
	Mushrooms
	Clay
	Sulfur

	ResourceCount = 12
)

var resourceNames = [ResourceCount]string{
	"WATER", "WOOD", "STONE", "FISH", "BERRIES", "HERBS",
	"MINERALS", "SALT", "ICE", "MUSHROOMS", "CLAY", "SULFUR",
}

func (r Resource) String() string {
	if r >= ResourceCount {
		return "INVALID"
	}
	return resourceNames[r]
}

// Resource assignment is a static table keyed by biome, never random.
var resourceTable = [Count][]Resource{
	Ocean:              {Water, Fish, Salt},
	Coastal:            {Water, Fish, Salt, Clay},
	Desert:             {Stone, Minerals, Salt},
	Savanna:            {Herbs, Stone},
	Grasslands:         {Herbs, Berries},
	Forest:             {Wood, Berries, Herbs},
	TropicalRainforest: {Wood, Berries, Water},
	Mountain:           {Stone, Minerals, Water},
	Alpine:             {Stone, Ice, Herbs},
	Tundra:             {Ice, Fish},
	Wetlands:           {Water, Clay, Fish},
	Caves:              {Minerals, Stone, Mushrooms},
	Volcanic:           {Minerals, Sulfur, Stone},
	Badlands:           {Stone, Minerals},
}

// Resources returns the full allowed resource set for a biome.
func (b Biome) Resources() []Resource {
	if !b.Valid() {
		return nil
	}
	out := make([]Resource, len(resourceTable[b]))
	copy(out, resourceTable[b])
	return out
}

// AllowsResource reports whether r belongs to the biome's allowed set.
func (b Biome) AllowsResource(r Resource) bool {
	if !b.Valid() {
		return false
	}
	for _, have := range resourceTable[b] {
		if have == r {
			return true
		}
	}
	return false
}

var colorTable = [Count][3]uint8{
	Ocean:              {0, 76, 204},
	Coastal:            {204, 204, 153},
	Desert:             {229, 204, 102},
	Savanna:            {178, 178, 76},
	Grasslands:         {102, 204, 76},
	Forest:             {51, 153, 51},
	TropicalRainforest: {25, 102, 25},
	Mountain:           {127, 127, 127},
	Alpine:             {178, 178, 204},
	Tundra:             {204, 229, 229},
	Wetlands:           {76, 127, 102},
	Caves:              {51, 51, 51},
	Volcanic:           {153, 51, 25},
	Badlands:           {153, 102, 76},
}

// Color returns the debug RGB used for map previews.
func (b Biome) Color() (r, g, bl uint8) {
	if !b.Valid() {
		return 0, 0, 0
	}
	c := colorTable[b]
	return c[0], c[1], c[2]
}

// Undirected transition edges. Caves has none: it is underground-only and
// never legal next to a surface biome.
var transitionEdges = [][2]Biome{
	{Ocean, Coastal},
	{Coastal, Grasslands},
	{Coastal, Wetlands},
	{Desert, Savanna},
	{Desert, Badlands},
	{Savanna, Grasslands},
	{Grasslands, Forest},
	{Grasslands, Tundra},
	{Forest, Mountain},
	{Forest, TropicalRainforest},
	{Forest, Wetlands},
	{TropicalRainforest, Wetlands},
	{Mountain, Alpine},
	{Mountain, Volcanic},
	{Alpine, Tundra},
	{Volcanic, Badlands},
}

var (
	adjacent [Count][Count]bool
	// BFS hop distance on the transition graph; unreachable pairs hold maxHops.
	hopDist [Count][Count]uint8
)

const maxHops = 0xFF

func init() {
	for _, e := range transitionEdges {
		adjacent[e[0]][e[1]] = true
		adjacent[e[1]][e[0]] = true
	}
	for from := Biome(0); from < Count; from++ {
		for to := Biome(0); to < Count; to++ {
			hopDist[from][to] = maxHops
		}
		hopDist[from][from] = 0
		queue := []Biome{from}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for next := Biome(0); next < Count; next++ {
				if adjacent[cur][next] && hopDist[from][next] == maxHops {
					hopDist[from][next] = hopDist[from][cur] + 1
					queue = append(queue, next)
				}
			}
		}
	}
}

// CanTransition reports whether two biomes may sit on 4-connected tiles.
// A biome is always legal next to itself.
func CanTransition(a, b Biome) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}
	return a == b || adjacent[a][b]
}

// HopDistance returns the transition-graph distance between two biomes,
// or maxHops when no path exists (Caves against anything else).
func HopDistance(a, b Biome) int {
	if !a.Valid() || !b.Valid() {
		return maxHops
	}
	return int(hopDist[a][b])
}
