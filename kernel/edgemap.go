package kernel

// edgeMap is a hash table mapping directed edges (a, b) to the id of the
// triangle that lies to their left. It is implemented as open addressing by
// chaining (a slice of buckets, each a slice of entries) rather than using
// Go's built-in map, so the hash mix and resize policy are under our
// control rather than whatever Go's runtime map happens to do internally.
type edgeMap struct {
	buckets  [][]edgeEntry
	numElems int
}

type edgeEntry struct {
	key edgeKey
	tri uint32
}

const initialBucketCount = 16

func newEdgeMap() *edgeMap {
	return &edgeMap{buckets: make([][]edgeEntry, initialBucketCount)}
}

// mixEdgeHash combines two 32-bit point ids into a well-distributed 32-bit
// hash. This is a 64->32 avalanche mix (splitmix64's finalizer, truncated),
// which is more than sufficient quality for an edge key that is just two
// small integers.
func mixEdgeHash(a, b uint32) uint32 {
	x := uint64(a)<<32 | uint64(b)
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return uint32(x)
}

func (m *edgeMap) bucketIndex(key edgeKey) int {
	return int(mixEdgeHash(key.A, key.B)) & (len(m.buckets) - 1)
}

// insert adds key -> tri. Returns false if key is already present (the
// caller must treat this as a topology bug, per TopologyInvariantViolation).
func (m *edgeMap) insert(key edgeKey, tri uint32) bool {
	idx := m.bucketIndex(key)
	for _, e := range m.buckets[idx] {
		if e.key == key {
			return false
		}
	}
	m.buckets[idx] = append(m.buckets[idx], edgeEntry{key, tri})
	m.numElems++
	if m.numElems > 10*len(m.buckets) {
		m.resize()
	}
	return true
}

// remove deletes key from the map. It is not an error to remove a key that
// isn't present (deleteTriangle calls this for all three edges even if one
// was never successfully inserted during a partially-failed addTriangle).
func (m *edgeMap) remove(key edgeKey) {
	idx := m.bucketIndex(key)
	bucket := m.buckets[idx]
	for i, e := range bucket {
		if e.key == key {
			m.buckets[idx] = append(bucket[:i], bucket[i+1:]...)
			m.numElems--
			return
		}
	}
}

// lookup returns the triangle id for directed edge key, if present.
func (m *edgeMap) lookup(key edgeKey) (uint32, bool) {
	idx := m.bucketIndex(key)
	for _, e := range m.buckets[idx] {
		if e.key == key {
			return e.tri, true
		}
	}
	return 0, false
}

func (m *edgeMap) resize() {
	old := m.buckets
	m.buckets = make([][]edgeEntry, len(old)*2)
	for _, bucket := range old {
		for _, e := range bucket {
			idx := m.bucketIndex(e.key)
			m.buckets[idx] = append(m.buckets[idx], e)
		}
	}
}
