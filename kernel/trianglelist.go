package kernel

// TriangleList is the slab-allocated arena of triangles plus the directed
// edge map that indexes them. It is the only place that creates or destroys
// triangle identity; the Delaunay/frontal kernel mutates topology only
// through AddTriangle/DeleteTriangle.
//
// The source this is reimplemented from uses a raw doubly-linked list of
// heap nodes as triangle handles. Rather than translate that pointer graph
// directly, triangles live in a growable slice (the arena) and are
// addressed by a stable uint32 index; deletion marks a tombstone instead of
// freeing anything, and Compact rebuilds the arena and edge map to reclaim
// tombstoned slots. The kernel itself never calls Compact, so tombstoned
// slots stay in the arena until a caller does. This trades a little memory for a handle type
// that is trivially comparable, zero-value-safe, and cheap to pass around.
type TriangleList struct {
	arena []Triangle
	edges *edgeMap
	head  uint32 // nilHandle if empty
	tail  uint32
	count int
}

func newTriangleList() *TriangleList {
	return &TriangleList{edges: newEdgeMap(), head: nilHandle, tail: nilHandle}
}

// Count returns the number of live (non-tombstoned) triangles.
func (l *TriangleList) Count() int { return l.count }

// Get returns a pointer to the triangle with the given handle. The pointer
// is invalidated by the next call to Compact.
func (l *TriangleList) Get(handle uint32) *Triangle { return &l.arena[handle] }

// AddTriangle creates a new CCW triangle (u, v, w) and inserts its three
// directed edges into the edge map. It panics with a TopologyInvariantViolation
// if any of the three edges is already present, since that indicates the
// mesh already has a conflicting triangle and the caller must not proceed.
func (l *TriangleList) AddTriangle(u, v, w uint32) uint32 {
	handle := uint32(len(l.arena))
	t := Triangle{id: handle, U: u, V: v, W: w, prev: l.tail, next: nilHandle, live: true}
	l.arena = append(l.arena, t)

	keys := l.arena[handle].edges()
	for i, key := range keys {
		if !l.edges.insert(key, handle) {
			// Roll back the edges we already inserted so the map doesn't end
			// up half-consistent, then fail loudly: this is a bug, not a bad
			// input.
			for j := 0; j < i; j++ {
				l.edges.remove(keys[j])
			}
			l.arena[handle].live = false
			fatalf(ErrTopologyInvariantViolation, "directed edge (%d,%d) already present while adding triangle (%d,%d,%d)",
				key.A, key.B, u, v, w)
		}
	}

	if l.head == nilHandle {
		l.head = handle
	} else {
		l.arena[l.tail].next = handle
	}
	l.tail = handle
	l.count++
	return handle
}

// DeleteTriangle unlinks handle from the list and removes its three directed
// edges from the edge map. It is safe to call exactly once per handle.
func (l *TriangleList) DeleteTriangle(handle uint32) {
	t := &l.arena[handle]
	if !t.live {
		return
	}
	for _, key := range t.edges() {
		l.edges.remove(key)
	}
	if t.prev != nilHandle {
		l.arena[t.prev].next = t.next
	} else {
		l.head = t.next
	}
	if t.next != nilHandle {
		l.arena[t.next].prev = t.prev
	} else {
		l.tail = t.prev
	}
	t.live = false
	l.count--
}

// Complete looks up the triangle with directed edge (a, b), returning
// (0, false) for boundary edges (no such triangle).
func (l *TriangleList) Complete(a, b uint32) (uint32, bool) {
	return l.edges.lookup(edgeKey{a, b})
}

// HasEdge reports whether directed edge (a, b) is present in the map at all
// (as opposed to Complete, whose zero value is ambiguous with handle 0).
func (l *TriangleList) HasEdge(a, b uint32) bool {
	_, ok := l.edges.lookup(edgeKey{a, b})
	return ok
}

// Range calls fn for every live triangle handle, in list order. fn must not
// add or delete triangles while ranging.
func (l *TriangleList) Range(fn func(handle uint32)) {
	for h := l.head; h != nilHandle; h = l.arena[h].next {
		fn(h)
	}
}

// Sweep permanently removes every triangle whose Status is DeleteMe. Unlike
// DeleteTriangle (which is called mid-algorithm for a single cavity
// triangle), Sweep is the bulk pass run after classification and after
// super-point removal.
func (l *TriangleList) Sweep() {
	var toDelete []uint32
	l.Range(func(h uint32) {
		if l.arena[h].Status == DeleteMe {
			toDelete = append(toDelete, h)
		}
	})
	for _, h := range toDelete {
		l.DeleteTriangle(h)
	}
}

// Compact rebuilds the arena and edge map, discarding tombstoned slots and
// renumbering handles densely. Any handle held before calling Compact (other
// than through a PointStore hint, which is refreshed lazily) is invalidated.
func (l *TriangleList) Compact() map[uint32]uint32 {
	remap := make(map[uint32]uint32, l.count)
	newArena := make([]Triangle, 0, l.count)
	l.Range(func(h uint32) {
		t := l.arena[h]
		newID := uint32(len(newArena))
		remap[h] = newID
		t.id = newID
		newArena = append(newArena, t)
	})

	newEdges := newEdgeMap()
	for i := range newArena {
		newArena[i].prev = nilHandle
		newArena[i].next = nilHandle
		if i > 0 {
			newArena[i].prev = uint32(i - 1)
			newArena[i-1].next = uint32(i)
		}
		for _, key := range newArena[i].edges() {
			newEdges.insert(key, uint32(i))
		}
	}

	l.arena = newArena
	l.edges = newEdges
	if len(newArena) == 0 {
		l.head, l.tail = nilHandle, nilHandle
	} else {
		l.head = 0
		l.tail = uint32(len(newArena) - 1)
	}
	return remap
}
