package coarsen

import (
	"github.com/yourusername/scotch/internal/active"
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/ctx"
	"github.com/yourusername/scotch/internal/errs"
	"github.com/yourusername/scotch/internal/mapping"
	"github.com/yourusername/scotch/internal/strat"
)

// matchPolicy maps the `type` strategy parameter's bareword value to a
// Policy (spec §4.2 table: "h heavy-edge, s supernode, n network-based").
func matchPolicy(val string) Policy {
	switch val {
	case "s":
		return Supernode
	case "n":
		return Network
	default:
		return HeavyEdge
	}
}

// defaultLevels bounds recursion depth when the `levl` parameter is
// absent, standing in for "no cap" without risking an int overflow on
// the comparison.
const defaultLevels = 1 << 20

// BipartMethod returns the "m" multilevel method (spec §4.2) specialized
// to Bgraph, closing over c for RNG/worker access and registry for
// recursive strategy application (sLow/sAsc and the recursive "m" call
// on the coarse graph all dispatch back through the same registry).
func BipartMethod(c *ctx.Context, registry strat.Registry) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		b, ok := a.(*active.Bgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "multilevel bipartition method applied to a non-Bgraph active object")
		}
		tolerance := bgraphTolerance(b)
		return multilevelBipart(c, b, params, registry, 0, tolerance)
	}
}

func bgraphTolerance(b *active.Bgraph) float64 {
	if b.Compload0avg == 0 {
		return 0.05
	}
	return float64(b.Compload0max-b.Compload0avg) / float64(b.Compload0avg)
}

func multilevelBipart(c *ctx.Context, b *active.Bgraph, params *strat.Params, registry strat.Registry, level int, tolerance float64) error {
	vertThresh := int(params.Num("vert", 100))
	ratThresh := params.Num("rat", 0.8)
	levlCap := int(params.Num("levl", defaultLevels))
	policy := matchPolicy(params.Case("type", "h"))
	sLow := params.Strat("low")
	sAsc := params.Strat("asc")

	n := b.Graph.NumVertices()
	if n <= vertThresh || level >= levlCap {
		return strat.Apply(sLow, b, registry)
	}

	matetab, coarvertnbr := Match(b.Graph, policy, c.RNG())
	if coarvertnbr == 0 || float64(coarvertnbr)/float64(n) > ratThresh {
		// Coarsening stalled or produced nothing smaller: spec §4.2 step 3
		// treats this as a graceful fallback, not an error.
		return strat.Apply(sLow, b, registry)
	}

	coarseGraph, multtab := Build(b.Graph, matetab, coarvertnbr)
	coarseB := active.NewBgraph(coarseGraph, tolerance)
	coarseB.Domndist = b.Domndist
	coarseB.Refresh()

	child := c.Clone(uint64(level))
	if err := multilevelBipart(child, coarseB, params, registry, level+1, tolerance); err != nil {
		return err
	}

	fineParttab := make([]int32, n)
	ProjectInt32(multtab, coarseB.Parttab, fineParttab)
	b.Parttab = fineParttab
	b.Refresh()

	return strat.Apply(sAsc, b, registry)
}

// SeparateMethod is the Vgraph instantiation of the same multilevel
// method body (spec §4.2's "vertex separation" incarnation).
func SeparateMethod(c *ctx.Context, registry strat.Registry) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		v, ok := a.(*active.Vgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "multilevel separation method applied to a non-Vgraph active object")
		}
		return multilevelSeparate(c, v, params, registry, 0)
	}
}

func multilevelSeparate(c *ctx.Context, v *active.Vgraph, params *strat.Params, registry strat.Registry, level int) error {
	vertThresh := int(params.Num("vert", 100))
	ratThresh := params.Num("rat", 0.8)
	levlCap := int(params.Num("levl", defaultLevels))
	policy := matchPolicy(params.Case("type", "h"))
	sLow := params.Strat("low")
	sAsc := params.Strat("asc")

	n := v.Graph.NumVertices()
	if n <= vertThresh || level >= levlCap {
		return strat.Apply(sLow, v, registry)
	}

	matetab, coarvertnbr := Match(v.Graph, policy, c.RNG())
	if coarvertnbr == 0 || float64(coarvertnbr)/float64(n) > ratThresh {
		return strat.Apply(sLow, v, registry)
	}

	coarseGraph, multtab := Build(v.Graph, matetab, coarvertnbr)
	coarseV := active.NewVgraph(coarseGraph)
	coarseV.Wght = v.Wght
	coarseV.Refresh()

	child := c.Clone(uint64(level))
	if err := multilevelSeparate(child, coarseV, params, registry, level+1); err != nil {
		return err
	}

	fineParttab := make([]int32, n)
	ProjectInt32(multtab, coarseV.Parttab, fineParttab)
	v.Parttab = fineParttab
	v.Refresh()

	return strat.Apply(sAsc, v, registry)
}

// MapMethod is the Kgraph instantiation of the same multilevel method
// body (spec §4.2's k-way mapping incarnation). The coarse Mapping shares
// the fine Mapping's Arch and Domntab; only Parttab is rebuilt per level.
func MapMethod(c *ctx.Context, registry strat.Registry) strat.Method {
	return func(a strat.Active, params *strat.Params) error {
		k, ok := a.(*active.Kgraph)
		if !ok {
			return errs.New(errs.CodeStrategyRuntime, "multilevel mapping method applied to a non-Kgraph active object")
		}
		return multilevelMap(c, k, params, registry, 0)
	}
}

func multilevelMap(c *ctx.Context, k *active.Kgraph, params *strat.Params, registry strat.Registry, level int) error {
	vertThresh := int(params.Num("vert", 100))
	ratThresh := params.Num("rat", 0.8)
	levlCap := int(params.Num("levl", defaultLevels))
	policy := matchPolicy(params.Case("type", "h"))
	sLow := params.Strat("low")
	sAsc := params.Strat("asc")

	n := k.Graph.NumVertices()
	if n <= vertThresh || level >= levlCap {
		return strat.Apply(sLow, k, registry)
	}

	matetab, coarvertnbr := Match(k.Graph, policy, c.RNG())
	if coarvertnbr == 0 || float64(coarvertnbr)/float64(n) > ratThresh {
		return strat.Apply(sLow, k, registry)
	}

	coarseGraph, multtab := Build(k.Graph, matetab, coarvertnbr)
	coarseMapping := newCoarseMapping(k.Mapping, coarvertnbr)
	coarseK := active.NewKgraph(coarseGraph, coarseMapping)

	child := c.Clone(uint64(level))
	if err := multilevelMap(child, coarseK, params, registry, level+1); err != nil {
		return err
	}

	fineParttab := make([]int32, n)
	ProjectInt32(multtab, coarseK.Mapping.Parttab, fineParttab)
	k.Mapping.Parttab = fineParttab
	k.Refresh()

	return strat.Apply(sAsc, k, registry)
}

func newCoarseMapping(parent *mapping.Mapping, coarvertnbr int) *mapping.Mapping {
	return &mapping.Mapping{
		Arch:    parent.Arch,
		Domntab: append([]arch.Dom(nil), parent.Domntab...),
		Parttab: make([]int32, coarvertnbr),
	}
}
