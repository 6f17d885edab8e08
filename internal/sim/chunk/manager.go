package chunk

import (
	"fmt"
	"math"
	"sort"
)

// Key identifies one chunk on the fixed lattice. Chunk (CX,CY) spans tiles
// [CX*size, (CX+1)*size) x [CY*size, (CY+1)*size), clamped to world extents
// on the far edge.
type Key struct {
	CX int
	CY int
}

// Listener is the capability interface for the external layer that owns
// chunk-level derived caches (batching groups, sprite sets). The manager
// only tells it when to build and release them.
type Listener interface {
	ChunkLoaded(Key)
	ChunkUnloaded(Key)
}

// Manager owns the set of currently-loaded chunk identifiers. Chunk tile
// data is always a read-only view into the world grid; nothing is copied
// here. Accessed only from the tick goroutine, no locks.
type Manager struct {
	size           int
	renderDistance float64
	worldW         int
	worldH         int
	chunksX        int
	chunksY        int

	loaded   map[Key]struct{}
	listener Listener
}

// NewManager builds a manager for a world of worldWidth x worldHeight tiles
// partitioned into size x size chunks, with visibility out to renderDistance
// world units (one tile is one world unit).
func NewManager(size int, renderDistance float64, worldWidth, worldHeight int) (*Manager, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size %d", size)
	}
	if renderDistance <= 0 || math.IsNaN(renderDistance) {
		return nil, fmt.Errorf("render distance %v", renderDistance)
	}
	if worldWidth <= 0 || worldHeight <= 0 {
		return nil, fmt.Errorf("world extents %dx%d", worldWidth, worldHeight)
	}
	return &Manager{
		size:           size,
		renderDistance: renderDistance,
		worldW:         worldWidth,
		worldH:         worldHeight,
		chunksX:        (worldWidth + size - 1) / size,
		chunksY:        (worldHeight + size - 1) / size,
		loaded:         map[Key]struct{}{},
	}, nil
}

func (m *Manager) SetListener(l Listener) { m.listener = l }

// Size returns the chunk edge length in tiles.
func (m *Manager) Size() int { return m.size }

// ChunkOf returns the key of the chunk containing a tile coordinate.
func (m *Manager) ChunkOf(x, y int) Key {
	return Key{CX: floorDiv(x, m.size), CY: floorDiv(y, m.size)}
}

// Bounds returns the tile extent [x0,x1) x [y0,y1) of a chunk, clamped to
// the world.
func (m *Manager) Bounds(k Key) (x0, y0, x1, y1 int) {
	x0 = k.CX * m.size
	y0 = k.CY * m.size
	x1 = x0 + m.size
	y1 = y0 + m.size
	if x1 > m.worldW {
		x1 = m.worldW
	}
	if y1 > m.worldH {
		y1 = m.worldH
	}
	return x0, y0, x1, y1
}

// VisibleChunks returns exactly the chunks whose bounding box intersects the
// disk of renderDistance around the camera, sorted for determinism.
func (m *Manager) VisibleChunks(camX, camY float64) []Key {
	r := m.renderDistance
	cx0 := int(math.Floor((camX - r) / float64(m.size)))
	cx1 := int(math.Floor((camX + r) / float64(m.size)))
	cy0 := int(math.Floor((camY - r) / float64(m.size)))
	cy1 := int(math.Floor((camY + r) / float64(m.size)))
	cx0, cx1 = clampRange(cx0, cx1, m.chunksX)
	cy0, cy1 = clampRange(cy0, cy1, m.chunksY)

	var out []Key
	for cy := cy0; cy <= cy1; cy++ {
		for cx := cx0; cx <= cx1; cx++ {
			k := Key{CX: cx, CY: cy}
			if m.distanceTo(k, camX, camY) <= r {
				out = append(out, k)
			}
		}
	}
	sortKeys(out)
	return out
}

// Update recomputes the loaded set against the camera. Chunks entering the
// visible set load, chunks leaving unload; a chunk is never loaded twice
// without an intervening unload. Idempotent for an unchanged camera.
func (m *Manager) Update(camX, camY float64) (loaded, unloaded []Key) {
	visible := m.VisibleChunks(camX, camY)
	inView := make(map[Key]struct{}, len(visible))
	for _, k := range visible {
		inView[k] = struct{}{}
	}

	for k := range m.loaded {
		if _, ok := inView[k]; !ok {
			unloaded = append(unloaded, k)
		}
	}
	sortKeys(unloaded)
	for _, k := range unloaded {
		delete(m.loaded, k)
		if m.listener != nil {
			m.listener.ChunkUnloaded(k)
		}
	}

	for _, k := range visible {
		if _, ok := m.loaded[k]; ok {
			continue
		}
		m.loaded[k] = struct{}{}
		loaded = append(loaded, k)
		if m.listener != nil {
			m.listener.ChunkLoaded(k)
		}
	}
	return loaded, unloaded
}

// Loaded returns the current loaded set, sorted.
func (m *Manager) Loaded() []Key {
	out := make([]Key, 0, len(m.loaded))
	for k := range m.loaded {
		out = append(out, k)
	}
	sortKeys(out)
	return out
}

func (m *Manager) IsLoaded(k Key) bool {
	_, ok := m.loaded[k]
	return ok
}

func (m *Manager) LoadedCount() int { return len(m.loaded) }

// MaxLoaded is the hard bound on the loaded-set size, independent of total
// world size: (2*renderDistance/size + 1)^2 chunks.
func (m *Manager) MaxLoaded() int {
	edge := int(2*m.renderDistance/float64(m.size)) + 1
	return edge * edge
}

// distanceTo is the exact distance from a point to the chunk's bounding box,
// zero when the point is inside.
func (m *Manager) distanceTo(k Key, px, py float64) float64 {
	x0 := float64(k.CX * m.size)
	y0 := float64(k.CY * m.size)
	x1 := x0 + float64(m.size)
	y1 := y0 + float64(m.size)
	dx := math.Max(math.Max(x0-px, 0), px-x1)
	dy := math.Max(math.Max(y0-py, 0), py-y1)
	return math.Hypot(dx, dy)
}

func clampRange(lo, hi, n int) (int, int) {
	if lo < 0 {
		lo = 0
	}
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

func sortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CY != keys[j].CY {
			return keys[i].CY < keys[j].CY
		}
		return keys[i].CX < keys[j].CX
	})
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	if a%b < 0 {
		q--
	}
	return q
}
