package town

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// entityEntry pairs an entity with the sequence number it was added under.
// The sequence breaks depth ties and orders queries.
type entityEntry struct {
	e   Entity
	seq uint64
}

// EntityManager is the registry of live entities. Entries keep insertion
// order; the render order is the entries sorted by (depth, insertion order)
// and is rebuilt lazily after any depth change.
type EntityManager struct {
	byID    map[string]*entityEntry
	entries []*entityEntry
	nextSeq uint64

	render  []*entityEntry
	sortBuf []*entityEntry
	dirty   bool
}

// NewEntityManager creates an empty registry.
func NewEntityManager() *EntityManager {
	return &EntityManager{byID: make(map[string]*entityEntry)}
}

// Add registers e. An entity with the same id is destroyed and replaced, and
// a warning is logged. Adding an entity that is already registered is a no-op.
func (m *EntityManager) Add(e Entity) {
	if e == nil {
		return
	}
	id := e.ID()
	if old, ok := m.byID[id]; ok {
		if old.e == e {
			logger.Warn("town: entity already registered", "id", id)
			return
		}
		logger.Warn("town: duplicate entity id, replacing", "id", id)
		m.detach(old)
		old.e.Destroy()
	}
	entry := &entityEntry{e: e, seq: m.nextSeq}
	m.nextSeq++
	m.byID[id] = entry
	m.entries = append(m.entries, entry)
	e.base().onDepthChange = m.markDirty
	m.dirty = true
}

// Remove unregisters the entity with the given id and returns it, or nil if
// no such entity exists. The entity is not destroyed; the caller owns it.
func (m *EntityManager) Remove(id string) Entity {
	entry, ok := m.byID[id]
	if !ok {
		return nil
	}
	m.detach(entry)
	return entry.e
}

func (m *EntityManager) detach(entry *entityEntry) {
	delete(m.byID, entry.e.ID())
	for i, x := range m.entries {
		if x == entry {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	entry.e.base().onDepthChange = nil
	m.dirty = true
}

// Get returns the entity with the given id, or nil.
func (m *EntityManager) Get(id string) Entity {
	if entry, ok := m.byID[id]; ok {
		return entry.e
	}
	return nil
}

// Has reports whether an entity with the given id is registered.
func (m *EntityManager) Has(id string) bool {
	_, ok := m.byID[id]
	return ok
}

// Len returns the number of registered entities.
func (m *EntityManager) Len() int { return len(m.entries) }

// All returns the entities in insertion order.
func (m *EntityManager) All() []Entity {
	out := make([]Entity, len(m.entries))
	for i, entry := range m.entries {
		out[i] = entry.e
	}
	return out
}

// At returns the entities whose grid position is (gx, gy), in insertion order.
func (m *EntityManager) At(gx, gy int) []Entity {
	var out []Entity
	for _, entry := range m.entries {
		if entry.e.GridX() == gx && entry.e.GridY() == gy {
			out = append(out, entry.e)
		}
	}
	return out
}

// InRect returns the entities whose grid position lies in r (inclusive).
func (m *EntityManager) InRect(r GridRect) []Entity {
	var out []Entity
	for _, entry := range m.entries {
		if r.Contains(entry.e.GridX(), entry.e.GridY()) {
			out = append(out, entry.e)
		}
	}
	return out
}

// Nearest returns the entity closest to (gx, gy) by Euclidean grid distance.
// Ties go to the entity added first. Returns nil when the registry is empty.
func (m *EntityManager) Nearest(gx, gy int) Entity {
	var best Entity
	bestDist := math.Inf(1)
	for _, entry := range m.entries {
		dx := float64(entry.e.GridX() - gx)
		dy := float64(entry.e.GridY() - gy)
		d := dx*dx + dy*dy
		if d < bestDist {
			best, bestDist = entry.e, d
		}
	}
	return best
}

// UpdateAllDepths recomputes every entity's depth. Entities resting on a tile
// are re-derived from the grid; moving and free-placed ones keep their screen
// point.
func (m *EntityManager) UpdateAllDepths() {
	for _, entry := range m.entries {
		entry.e.base().refreshDepth()
	}
	m.dirty = true
}

// reprojectAll moves every entity onto the camera's current view.
func (m *EntityManager) reprojectAll(old CameraView) {
	for _, entry := range m.entries {
		entry.e.reproject(old)
	}
	m.dirty = true
}

// Update advances every entity in insertion order.
func (m *EntityManager) Update(dtMs float64) {
	for _, entry := range m.entries {
		entry.e.Update(dtMs)
	}
}

// RenderOrder returns the entities sorted for drawing: ascending depth, with
// equal depths in insertion order.
func (m *EntityManager) RenderOrder() []Entity {
	m.sortIfDirty()
	out := make([]Entity, len(m.render))
	for i, entry := range m.render {
		out[i] = entry.e
	}
	return out
}

// Draw renders every entity in render order.
func (m *EntityManager) Draw(dst *ebiten.Image) {
	m.sortIfDirty()
	for _, entry := range m.render {
		entry.e.Draw(dst)
	}
}

// Clear destroys and removes every entity.
func (m *EntityManager) Clear() {
	for _, entry := range m.entries {
		entry.e.base().onDepthChange = nil
		entry.e.Destroy()
	}
	m.entries = m.entries[:0]
	m.render = m.render[:0]
	clear(m.byID)
	m.dirty = false
}

// Destroy clears the registry and releases its buffers.
func (m *EntityManager) Destroy() {
	m.Clear()
	m.entries = nil
	m.render = nil
	m.sortBuf = nil
}

func (m *EntityManager) markDirty() { m.dirty = true }

func (m *EntityManager) sortIfDirty() {
	if !m.dirty {
		return
	}
	m.render = append(m.render[:0], m.entries...)
	m.mergeSort()
	m.dirty = false
}

// mergeSort sorts m.render in place using m.sortBuf as scratch space.
// Bottom-up merge sort: stable, and allocation-free once the buffer has grown.
func (m *EntityManager) mergeSort() {
	n := len(m.render)
	if n <= 1 {
		return
	}
	if cap(m.sortBuf) < n {
		m.sortBuf = make([]*entityEntry, n)
	}
	m.sortBuf = m.sortBuf[:n]

	a := m.render
	b := m.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(m.render, m.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []*entityEntry, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if entryLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}

func entryLessOrEqual(a, b *entityEntry) bool {
	da, db := a.e.Depth(), b.e.Depth()
	if da != db {
		return da < db
	}
	return a.seq <= b.seq
}
