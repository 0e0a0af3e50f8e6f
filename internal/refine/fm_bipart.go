// Package refine implements the Fiduccia-Mattheyses gain-bucket local
// search and the diffusion-based global refiner of spec.md §4.3, both
// operating on the active graphs of internal/active under a balance
// envelope (and, for mapping, a target-architecture distance).
//
// Grounded on spec §4.3.1/§4.3.2 directly; the gain-bucket skeleton comes
// from internal/bucket (itself contract-only per §1/§9). No example repo
// in the retrieval pack implements FM or diffusion, so the package shape
// (plain functions registered as strat.Method closures) follows the same
// convention internal/coarsen established.
package refine

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/bucket"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/strat"
)

// FMBipartMethod returns the "f" method (spec §4.3.1 FM on a bipartition
// graph), reading `pass` (max passes, default 10) and `move` (max trial
// moves per pass, default vertex count) from params.
func FMBipartMethod() strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		b, ok := a.(*active.Bgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "FM bipartition method applied to a non-Bgraph active object")
		}
		passnbr := int(params.Num("pass", 10))
		movenbr := int(params.Num("move", b.Graph.NumVertices()))
		fmBipart(b, passnbr, movenbr)
		return nil
	}
}

// fmBipart runs up to passnbr FM passes over b (spec §4.3.1). Each pass
// performs up to movenbr trial moves, tracks the running-minimum commload
// across the pass, and rolls back to that prefix at the end of the pass.
// The pass loop itself stops early once a pass makes no net improvement.
func fmBipart(b *active.Bgraph, passnbr, movenbr int) {
	for pass := 0; pass < passnbr; pass++ {
		startCommload := b.Commload
		improved := fmPass(b, movenbr)
		if !improved && b.Commload >= startCommload {
			break
		}
	}
}

// fmPass performs one FM pass: locks vertices as they move, tracks the
// running-minimum commload, and rolls back to the best prefix (classical
// FM hill-climbing with rollback). Returns whether the pass improved
// commload relative to its start.
func fmPass(b *active.Bgraph, movenbr int) bool {
	table := bucket.NewTable(fmGainWidth(b))
	locked := make(map[int32]bool, len(b.Frontab))
	seedBucket(b, table, locked)
	frontier := newFrontierSet(b.Frontab)

	type moveRecord struct {
		vertex  int32
		partout []int32 // Parttab snapshot immediately after this move
	}
	startCommload := b.Commload
	startPart := append([]int32(nil), b.Parttab...)
	best := startCommload
	bestMoveIdx := -1
	history := make([]moveRecord, 0, movenbr)

	for move := 0; move < movenbr; move++ {
		v, gain, ok := bestLegalMove(b, table, locked)
		if !ok {
			break
		}
		b.Move(v)
		// Only v and its immediate neighbors can have changed cut/boundary
		// status, so commload and frontab are updated from that
		// neighborhood directly rather than by a full Refresh (spec
		// §4.3.1 "update the gains of all its neighbors, and recompute
		// frontab/commload incrementally"), matching resyncNeighborGains's
		// scope.
		b.Commload -= int64(gain)
		frontier.update(b, v)
		start, end := b.Graph.EdgeRange(int(v))
		for e := start; e < end; e++ {
			frontier.update(b, b.Graph.Edgetab[e])
		}
		b.Frontab = frontier.arr
		locked[v] = true
		resyncNeighborGains(b, table, locked, v)

		history = append(history, moveRecord{vertex: v, partout: append([]int32(nil), b.Parttab...)})
		if b.Commload < best {
			best = b.Commload
			bestMoveIdx = len(history) - 1
		}
	}

	if len(history) == 0 {
		return false
	}
	if bestMoveIdx < 0 {
		// No prefix improved on the starting state: roll all the way back.
		b.Parttab = startPart
		b.Refresh()
		return false
	}
	b.Parttab = history[bestMoveIdx].partout
	b.Refresh()
	return best < startCommload
}

// fmGainWidth bounds the gain-bucket range by the graph's maximum degree
// times its total edge load Edlosum (at least 1), which is no smaller than
// the largest magnitude a single move's gain can take.
func fmGainWidth(b *active.Bgraph) int {
	w := int(b.Graph.Degrmax) * int(maxInt64(b.Graph.Edlosum, 1))
	if w < 1 {
		w = 1
	}
	return w
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// seedBucket initializes gains for every boundary vertex and its
// one-ring neighbors (spec §4.3.1 step 1).
func seedBucket(b *active.Bgraph, table *bucket.Table, locked map[int32]bool) {
	seen := make(map[int32]bool)
	insert := func(v int32) {
		if seen[v] || locked[v] {
			return
		}
		seen[v] = true
		table.Insert(v, int(b.Gain(v)))
	}
	for _, v := range b.Frontab {
		insert(v)
		start, end := b.Graph.EdgeRange(int(v))
		for e := start; e < end; e++ {
			insert(b.Graph.Edgetab[e])
		}
	}
}

// bestLegalMove scans from the bucket table's highest gain downward for
// the first vertex whose move keeps compload0 within the envelope (spec
// §4.3.1 step 2 "pick the vertex with highest gain whose move keeps
// compload0 inside the envelope"). Candidates are tried in gain order,
// most are usually legal, so this degrades gracefully from O(1).
func bestLegalMove(b *active.Bgraph, table *bucket.Table, locked map[int32]bool) (int32, int, bool) {
	type skipped struct {
		v    int32
		gain int
	}
	var rejected []skipped
	defer func() {
		for _, r := range rejected {
			table.Insert(r.v, r.gain)
		}
	}()

	for {
		v, gain, ok := table.Best()
		if !ok {
			return 0, 0, false
		}
		table.Remove(v)
		if legalMove(b, v) {
			return v, gain, true
		}
		rejected = append(rejected, skipped{v, gain})
	}
}

func legalMove(b *active.Bgraph, v int32) bool {
	side := b.Parttab[v]
	load := b.Graph.VertexLoad(int(v))
	var newLoad int64
	if side == 0 {
		newLoad = b.Compload0 - load
	} else {
		newLoad = b.Compload0 + load
	}
	return newLoad >= b.Compload0min && newLoad <= b.Compload0max
}

// isBoundary reports whether v has at least one neighbor on the other
// side of the cut, i.e. whether v belongs in Frontab.
func isBoundary(b *active.Bgraph, v int32) bool {
	start, end := b.Graph.EdgeRange(int(v))
	for e := start; e < end; e++ {
		if b.Parttab[b.Graph.Edgetab[e]] != b.Parttab[v] {
			return true
		}
	}
	return false
}

// frontierSet maintains Bgraph.Frontab incrementally: update(v) re-tests
// only v's own boundary status and adds or removes it from arr in O(1)
// amortized (swap-remove), avoiding the O(n+m) full rescan a Refresh
// would cost per move.
type frontierSet struct {
	arr []int32
	pos map[int32]int // v -> index in arr, for vertices currently in arr
}

func newFrontierSet(frontab []int32) *frontierSet {
	fs := &frontierSet{
		arr: append([]int32(nil), frontab...),
		pos: make(map[int32]int, len(frontab)),
	}
	for i, v := range fs.arr {
		fs.pos[v] = i
	}
	return fs
}

// update re-tests v's boundary status and adds or removes it from arr to
// match, called after any move that could have changed it.
func (fs *frontierSet) update(b *active.Bgraph, v int32) {
	_, inSet := fs.pos[v]
	onBoundary := isBoundary(b, v)
	switch {
	case onBoundary && !inSet:
		fs.pos[v] = len(fs.arr)
		fs.arr = append(fs.arr, v)
	case !onBoundary && inSet:
		fs.remove(v)
	}
}

func (fs *frontierSet) remove(v int32) {
	i := fs.pos[v]
	last := len(fs.arr) - 1
	fs.arr[i] = fs.arr[last]
	fs.pos[fs.arr[i]] = i
	fs.arr = fs.arr[:last]
	delete(fs.pos, v)
}

// resyncNeighborGains recomputes and re-seeds the gains of v's unlocked
// neighbors after v moved (spec §4.3.1 step "update the gains of all its
// neighbors").
func resyncNeighborGains(b *active.Bgraph, table *bucket.Table, locked map[int32]bool, v int32) {
	start, end := b.Graph.EdgeRange(int(v))
	for e := start; e < end; e++ {
		j := b.Graph.Edgetab[e]
		if locked[j] {
			continue
		}
		newGain := int(b.Gain(j))
		if table.Contains(j) {
			table.Update(j, newGain)
		} else {
			table.Insert(j, newGain)
		}
	}
}
