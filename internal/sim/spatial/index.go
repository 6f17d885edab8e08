package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrUnknownEntity reports an update against an identifier the index has
	// never seen (or that was removed). Not fatal: the caller decides
	// whether to insert first.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrEntityExists reports an Insert for an identifier already present;
	// position changes go through Move.
	ErrEntityExists = errors.New("entity already present")
)

// EntityID identifies a dynamic entity. The entity system owns the entity
// and its true position; the index only tracks identifiers and the cell
// each was last reported under.
type EntityID string

type cellKey struct {
	cx int
	cy int
}

// Index is a uniform grid over world-space positions. Insert, Remove and
// Move are O(1) amortized; QueryRadius is O(k) in the entities of the cells
// overlapping the query disk, independent of total entity count.
//
// Mutated and read on the world tick goroutine; no locks. If entity updates
// are ever fanned out across goroutines, cell mutation must be serialized
// (single writer per tick).
type Index struct {
	cellSize float64
	cells    map[cellKey]map[EntityID]struct{}
	entities map[EntityID]entityRecord
}

type entityRecord struct {
	x, y float64
	cell cellKey
}

func NewIndex(cellSize float64) (*Index, error) {
	if cellSize <= 0 || math.IsNaN(cellSize) {
		return nil, fmt.Errorf("cell size %v", cellSize)
	}
	return &Index{
		cellSize: cellSize,
		cells:    map[cellKey]map[EntityID]struct{}{},
		entities: map[EntityID]entityRecord{},
	}, nil
}

func (ix *Index) cellOf(x, y float64) cellKey {
	return cellKey{
		cx: int(math.Floor(x / ix.cellSize)),
		cy: int(math.Floor(y / ix.cellSize)),
	}
}

// Insert registers an entity at a position.
func (ix *Index) Insert(id EntityID, x, y float64) error {
	if _, ok := ix.entities[id]; ok {
		return fmt.Errorf("%w: %s", ErrEntityExists, id)
	}
	ix.add(id, x, y)
	return nil
}

// Remove unregisters an entity.
func (ix *Index) Remove(id EntityID) error {
	rec, ok := ix.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	ix.drop(id, rec.cell)
	return nil
}

// Move updates an entity's position. Remove-then-insert with no observable
// in-between state: both map updates complete before Move returns and
// nothing reads the index concurrently (single tick goroutine).
func (ix *Index) Move(id EntityID, x, y float64) error {
	rec, ok := ix.entities[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	next := ix.cellOf(x, y)
	if next == rec.cell {
		rec.x, rec.y = x, y
		ix.entities[id] = rec
		return nil
	}
	ix.drop(id, rec.cell)
	ix.add(id, x, y)
	return nil
}

// Position returns the entity's last reported position.
func (ix *Index) Position(id EntityID) (x, y float64, err error) {
	rec, ok := ix.entities[id]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrUnknownEntity, id)
	}
	return rec.x, rec.y, nil
}

func (ix *Index) Contains(id EntityID) bool {
	_, ok := ix.entities[id]
	return ok
}

func (ix *Index) Len() int { return len(ix.entities) }

// QueryRadius returns every entity within Euclidean distance r of the
// center: no duplicates, no omissions, sorted by id for determinism. It
// visits the cells of the query disk's bounding square expanded by one cell
// each way, then filters by exact distance.
func (ix *Index) QueryRadius(centerX, centerY, r float64) []EntityID {
	if r < 0 || math.IsNaN(r) {
		return nil
	}
	lo := ix.cellOf(centerX-r, centerY-r)
	hi := ix.cellOf(centerX+r, centerY+r)

	var out []EntityID
	r2 := r * r
	for cy := lo.cy - 1; cy <= hi.cy+1; cy++ {
		for cx := lo.cx - 1; cx <= hi.cx+1; cx++ {
			for id := range ix.cells[cellKey{cx: cx, cy: cy}] {
				rec := ix.entities[id]
				dx := rec.x - centerX
				dy := rec.y - centerY
				if dx*dx+dy*dy <= r2 {
					out = append(out, id)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (ix *Index) add(id EntityID, x, y float64) {
	k := ix.cellOf(x, y)
	cell := ix.cells[k]
	if cell == nil {
		cell = make(map[EntityID]struct{})
		ix.cells[k] = cell
	}
	cell[id] = struct{}{}
	ix.entities[id] = entityRecord{x: x, y: y, cell: k}
}

func (ix *Index) drop(id EntityID, k cellKey) {
	if cell := ix.cells[k]; cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(ix.cells, k)
		}
	}
	delete(ix.entities, id)
}
