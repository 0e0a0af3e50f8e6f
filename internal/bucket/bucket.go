// Package bucket implements the gain-bucket table of spec.md §4.3.1: a
// structure offering O(1) insert/remove/update and amortized O(1)
// find-best via a high-bucket pointer. The spec explicitly scopes this
// component "specified only by their contract" (§1 Non-goals), so it is
// built directly on a doubly-linked list per bucket — the idiomatic Go
// shape for a bucket queue — rather than reaching for a third-party
// priority-queue dependency the retrieval pack never wires in for this
// purpose.
package bucket

// Table is a gain-bucket priority structure over a fixed gain range
// [-width, +width]. Vertices are identified by an opaque int32 id the
// caller assigns (typically a graph vertex index). Insert places a vertex
// at the head of its bucket, so among vertices of equal gain Best returns
// the most recently inserted one (LIFO); insertion order is not kept FIFO.
type Table struct {
	width int // buckets run from -width to +width inclusive
	heads []int32
	prev  map[int32]int32
	next  map[int32]int32
	gain  map[int32]int
	high  int // index (0..2*width) of the highest non-empty bucket, -1 if empty
}

const empty = int32(-1)

// NewTable builds an empty gain-bucket table for gains in [-width, width].
func NewTable(width int) *Table {
	n := 2*width + 1
	heads := make([]int32, n)
	for i := range heads {
		heads[i] = empty
	}
	return &Table{
		width: width,
		heads: heads,
		prev:  map[int32]int32{},
		next:  map[int32]int32{},
		gain:  map[int32]int{},
		high:  -1,
	}
}

func (t *Table) index(g int) int {
	if g < -t.width {
		g = -t.width
	}
	if g > t.width {
		g = t.width
	}
	return g + t.width
}

// Insert adds vertex v with the given gain. v must not already be present.
func (t *Table) Insert(v int32, gain int) {
	idx := t.index(gain)
	head := t.heads[idx]
	t.prev[v] = empty
	t.next[v] = head
	if head != empty {
		t.prev[head] = v
	}
	t.heads[idx] = v
	t.gain[v] = gain
	if idx > t.high {
		t.high = idx
	}
}

// Remove deletes v from the table. v must be present.
func (t *Table) Remove(v int32) {
	idx := t.index(t.gain[v])
	p, n := t.prev[v], t.next[v]
	if p != empty {
		t.next[p] = n
	} else {
		t.heads[idx] = n
	}
	if n != empty {
		t.prev[n] = p
	}
	delete(t.prev, v)
	delete(t.next, v)
	delete(t.gain, v)
	if t.heads[idx] == empty && idx == t.high {
		t.lowerHigh()
	}
}

// Update changes v's gain, removing and reinserting it. v must be present.
func (t *Table) Update(v int32, newGain int) {
	t.Remove(v)
	t.Insert(v, newGain)
}

func (t *Table) lowerHigh() {
	for i := t.high; i >= 0; i-- {
		if t.heads[i] != empty {
			t.high = i
			return
		}
	}
	t.high = -1
}

// Best returns the vertex with the highest gain and the gain of its
// bucket (the vertex's gain clamped to [-width, width]), or (0, 0, false)
// if the table is empty. O(1): Insert raises the high-bucket pointer and
// Remove lowers it when the highest bucket empties.
func (t *Table) Best() (v int32, gain int, ok bool) {
	if t.high < 0 {
		return 0, 0, false
	}
	return t.heads[t.high], t.high - t.width, true
}

// Contains reports whether v is currently present in the table.
func (t *Table) Contains(v int32) bool {
	_, ok := t.gain[v]
	return ok
}

// Gain returns v's current gain. v must be present.
func (t *Table) Gain(v int32) int { return t.gain[v] }

// Len returns the number of vertices currently held.
func (t *Table) Len() int { return len(t.gain) }
