package refine

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/bucket"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/strat"
)

// FMSeparatorMethod returns the vertex-separator FM variant sharing the
// bucket skeleton of FMBipartMethod (spec §4.3.1 "Variants": "gain =
// separator-load decrease"). A move here migrates a separator vertex (part
// 2) into the side of part 0/1 with the higher sepGain (part 0 on a tie),
// shrinking the separator by one; only moves with positive gain are made.
// The loads of parts 0 and 1 are not checked against any balance bound.
func FMSeparatorMethod() strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		v, ok := a.(*active.Vgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "FM separator method applied to a non-Vgraph active object")
		}
		passnbr := int(params.Num("pass", 10))
		movenbr := int(params.Num("move", v.Graph.NumVertices()))
		fmSeparator(v, passnbr, movenbr)
		return nil
	}
}

func fmSeparator(v *active.Vgraph, passnbr, movenbr int) {
	for pass := 0; pass < passnbr; pass++ {
		start := len(v.Frontab)
		if !fmSeparatorPass(v, movenbr) && len(v.Frontab) >= start {
			break
		}
	}
}

// sepGain returns the decrease in separator size from moving separator
// vertex i into side (0 or 1): +1 if none of i's neighbors sit in the
// opposite side (i can leave the separator cleanly), 0 otherwise (i would
// have to stay, or a neighbor would need to follow — treated as no gain
// under this conservative single-vertex move rule).
func sepGain(v *active.Vgraph, i int32, side int32) int {
	other := int32(1 - side)
	start, end := v.Graph.EdgeRange(int(i))
	for e := start; e < end; e++ {
		if v.Parttab[v.Graph.Edgetab[e]] == other {
			return 0
		}
	}
	return 1
}

func fmSeparatorPass(v *active.Vgraph, movenbr int) bool {
	table := bucket.NewTable(1)
	locked := make(map[int32]bool)
	bestSide := make(map[int32]int32)

	for _, i := range v.Frontab {
		g0, g1 := sepGain(v, i, 0), sepGain(v, i, 1)
		if g0 >= g1 {
			table.Insert(i, g0)
			bestSide[i] = 0
		} else {
			table.Insert(i, g1)
			bestSide[i] = 1
		}
	}

	startFron := len(v.Frontab)
	moved := false
	for move := 0; move < movenbr; move++ {
		vi, gain, ok := table.Best()
		if !ok || gain <= 0 {
			break
		}
		table.Remove(vi)
		locked[vi] = true
		side := bestSide[vi]
		v.Move(vi, side)
		v.Refresh()
		moved = true

		// Newly exposed boundary vertices on the other side may now need
		// to join the separator; re-derive frontab fully (cheap relative
		// to correctness) rather than track incrementally.
		for _, j := range v.Frontab {
			if locked[j] || table.Contains(j) {
				continue
			}
			g0, g1 := sepGain(v, j, 0), sepGain(v, j, 1)
			if g0 >= g1 {
				table.Insert(j, g0)
				bestSide[j] = 0
			} else {
				table.Insert(j, g1)
				bestSide[j] = 1
			}
		}
	}
	return moved && len(v.Frontab) < startFron
}
