package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/scotch/internal/errs"
)

// Ownership records whether an active object's backing array is owned
// (and must be freed/GC'd with it) or merely borrowed from a parent it
// was derived from. This replaces the packed per-array "flag" word of the
// original design (spec.md §9 "Tagged flag word") with an explicit type;
// in Go the only observable effect of ownership is which object is
// responsible for *mutating* a shared slice — borrowed slices must be
// treated as read-only.
type Ownership int

const (
	// Owned means this object allocated the array and may mutate it.
	Owned Ownership = iota
	// Borrowed means the array is shared read-only with a parent object.
	Borrowed
)

// Graph is the compressed-adjacency representation shared by every active
// object in the engine (spec.md §3). Vertex and edge arrays are stored
// 0-based internally; Baseval only affects the externally visible vertex
// numbering (file format, Vlbltab) per the "based arrays" design note
// (§9) — Degree and Neighbors take and return baseval-shifted indices,
// while EdgeRange, VertexLoad, and EdgeLoad take 0-based slice indices.
type Graph struct {
	Baseval int // smallest externally visible vertex index (0 or 1)

	// Verttab[i] and Vendtab[i] bound the neighbor list of 0-based vertex
	// i in Edgetab: Edgetab[Verttab[i]:Vendtab[i]]. For a compact graph
	// Vendtab[i] == Verttab[i+1] and len(Verttab) == vertnbr+1; otherwise
	// (halo graphs, induced subgraphs) the two arrays are independent and
	// each has length vertnbr.
	Verttab []int32
	Vendtab []int32
	Edgetab []int32 // 0-based end-vertex index of each directed edge

	Velotab []int32 // vertex loads, nil => unit weight
	Edlotab []int32 // edge loads (parallel to Edgetab), nil => unit weight
	Vlbltab []int32 // optional original external labels, nil => identity

	// VertOwn/EdgeOwn record whether this Graph's array-bearing fields
	// were allocated for it or are borrowed (shared read-only) from a
	// parent it was derived from, e.g. by induction or coarsening.
	VertOwn Ownership
	EdgeOwn Ownership

	// Cached invariants, recomputed by Refresh.
	Degrmax int64
	Velosum int64
	Edlosum int64
}

// NewGraph builds a Graph from a compact CSR adjacency (Verttab of length
// vertnbr+1, matching the teacher's NewGraph(xadj, adjncy) constructor),
// defaulting Baseval to 0 and recomputing the cached invariants.
func NewGraph(verttab, edgetab []int32) *Graph {
	g := &Graph{
		Verttab: verttab,
		Vendtab: verttab[1:],
		Edgetab: edgetab,
		VertOwn: Owned,
		EdgeOwn: Owned,
	}
	g.Refresh()
	return g
}

// compact reports whether Vendtab is exactly Verttab shifted by one,
// i.e. the neighbor lists partition Edgetab with no gaps.
func (g *Graph) compact() bool {
	return len(g.Vendtab) == len(g.Verttab)-1
}

// NumVertices returns vertnbr, the number of vertices in the graph.
func (g *Graph) NumVertices() int {
	if g.compact() {
		return len(g.Verttab) - 1
	}
	return len(g.Verttab)
}

// NumEdges returns edgenbr/2, the number of undirected edges (each
// undirected edge is stored twice in the directed representation).
func (g *Graph) NumEdges() int {
	return len(g.Edgetab) / 2
}

// vi converts an externally visible (baseval-shifted) vertex index to a
// 0-based slice index.
func (g *Graph) vi(v int) int { return v - g.Baseval }

// Degree returns the degree of externally-visible vertex v.
func (g *Graph) Degree(v int) int {
	i := g.vi(v)
	return int(g.vendAt(i) - g.Verttab[i])
}

func (g *Graph) vendAt(i int) int32 {
	if g.compact() {
		return g.Verttab[i+1]
	}
	return g.Vendtab[i]
}

// Neighbors returns the (baseval-shifted) neighbor ids of vertex v.
func (g *Graph) Neighbors(v int) []int32 {
	i := g.vi(v)
	start := g.Verttab[i]
	end := g.vendAt(i)
	raw := g.Edgetab[start:end]
	if g.Baseval == 0 {
		return raw
	}
	shifted := make([]int32, len(raw))
	for k, e := range raw {
		shifted[k] = e + int32(g.Baseval)
	}
	return shifted
}

// EdgeRange returns the 0-based [start, end) bounds into Edgetab/Edlotab
// for 0-based vertex index i — the accessor internal packages use instead
// of touching Verttab/Vendtab directly.
func (g *Graph) EdgeRange(i int) (start, end int32) {
	return g.Verttab[i], g.vendAt(i)
}

// VertexLoad returns the load (weight) of 0-based vertex i, 1 if Velotab
// is absent.
func (g *Graph) VertexLoad(i int) int64 {
	if g.Velotab == nil {
		return 1
	}
	return int64(g.Velotab[i])
}

// EdgeLoad returns the load of the directed edge at 0-based Edgetab index
// e, 1 if Edlotab is absent.
func (g *Graph) EdgeLoad(e int32) int64 {
	if g.Edlotab == nil {
		return 1
	}
	return int64(g.Edlotab[e])
}

// Induced builds the 0-based, 0-baseval subgraph covering exactly the
// given 0-based vertex indices, keeping only edges with both endpoints
// in members (spec §4.5 "recursion into the induced subgraph of each
// side of a separator"). Vlbltab on the result records, for each new
// vertex, its index in g — the mechanism nested-dissection recursion
// uses to translate a child ordering back into g's own numbering.
func Induced(g *Graph, members []int32) *Graph {
	newIndex := make(map[int32]int32, len(members))
	for i, v := range members {
		newIndex[v] = int32(i)
	}

	verttab := make([]int32, len(members)+1)
	var edgetab []int32
	var velotab []int32
	var edlotab []int32
	if g.Velotab != nil {
		velotab = make([]int32, len(members))
	}
	hasEdloads := g.Edlotab != nil

	for i, v := range members {
		verttab[i] = int32(len(edgetab))
		start, end := g.EdgeRange(int(v))
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			nj, ok := newIndex[j]
			if !ok {
				continue
			}
			edgetab = append(edgetab, nj)
			if hasEdloads {
				edlotab = append(edlotab, g.Edlotab[e])
			}
		}
		if velotab != nil {
			velotab[i] = int32(g.VertexLoad(int(v)))
		}
	}
	verttab[len(members)] = int32(len(edgetab))

	sub := NewGraph(verttab, edgetab)
	sub.Velotab = velotab
	sub.Edlotab = edlotab
	sub.Vlbltab = append([]int32(nil), members...)
	sub.Refresh()
	return sub
}

// Refresh recomputes Degrmax, Velosum, and Edlosum from the current
// arrays. Every algorithm that mutates Graph arrays in place must call
// Refresh before relying on the cached invariants again.
func (g *Graph) Refresh() {
	n := g.NumVertices()
	var degrmax, velosum, edlosum int64
	for i := 0; i < n; i++ {
		d := int64(g.vendAt(i) - g.Verttab[i])
		if d > degrmax {
			degrmax = d
		}
		velosum += g.VertexLoad(i)
	}
	for e := range g.Edgetab {
		edlosum += g.EdgeLoad(int32(e))
	}
	g.Degrmax = degrmax
	g.Velosum = velosum
	g.Edlosum = edlosum / 2 // each undirected edge counted twice
}

// Check validates the structural invariants spec.md §3/§8 require of
// every Graph: reciprocal edges with equal load, no self-loops, no
// duplicate edges, and index bounds. Intended for use in tests and in
// debug-mode assertions, not on the hot path.
func (g *Graph) Check() error {
	n := g.NumVertices()
	neighborSet := make(map[int32]bool)
	// Build a lookup from (u,v) directed edge -> load, to check reciprocity.
	loadOf := make(map[[2]int32]int64)
	for u := 0; u < n; u++ {
		start, end := g.EdgeRange(u)
		for k := range neighborSet {
			delete(neighborSet, k)
		}
		for e := start; e < end; e++ {
			v := g.Edgetab[e]
			if int(v) == u {
				return errs.Wrap(errs.CodeInvalidInput, "self-loop detected", fmt.Errorf("vertex %d", u+g.Baseval))
			}
			if int(v) < 0 || int(v) >= n {
				return errs.Wrap(errs.CodeInvalidInput, "edge endpoint out of range", fmt.Errorf("vertex %d -> %d", u+g.Baseval, v+int32(g.Baseval)))
			}
			if neighborSet[v] {
				return errs.Wrap(errs.CodeInvalidInput, "duplicate edge detected", fmt.Errorf("vertex %d -> %d", u+g.Baseval, v+int32(g.Baseval)))
			}
			neighborSet[v] = true
			loadOf[[2]int32{int32(u), v}] = g.EdgeLoad(e)
		}
	}
	for uv, load := range loadOf {
		vu := [2]int32{uv[1], uv[0]}
		rload, ok := loadOf[vu]
		if !ok {
			return errs.Wrap(errs.CodeInvalidInput, "missing reciprocal edge", fmt.Errorf("%d -> %d has no reverse", uv[0]+int32(g.Baseval), uv[1]+int32(g.Baseval)))
		}
		if rload != load {
			return errs.Wrap(errs.CodeInvalidInput, "asymmetric edge load", fmt.Errorf("%d<->%d: %d vs %d", uv[0]+int32(g.Baseval), uv[1]+int32(g.Baseval), load, rload))
		}
	}
	return nil
}

// graphFlags is the three-bit "VL EL W" field of the text file format
// header (spec.md §6): vertex labels present, edge loads present, vertex
// loads present.
type graphFlags struct {
	hasVertexLabels bool
	hasEdgeLoads    bool
	hasVertexLoads  bool
}

func parseGraphFlags(raw int) graphFlags {
	return graphFlags{
		hasVertexLabels: (raw/100)%10 == 1,
		hasEdgeLoads:    (raw/10)%10 == 1,
		hasVertexLoads:  raw%10 == 1,
	}
}

func (f graphFlags) encode() int {
	v := 0
	if f.hasVertexLabels {
		v += 100
	}
	if f.hasEdgeLoads {
		v += 10
	}
	if f.hasVertexLoads {
		v += 1
	}
	return v
}

// ReadGraphFile reads the text graph file format of spec.md §6:
//
//	0 vertnbr edgenbr baseval flagval
//	<label?> <load?> degree neighbor[load]...   (one line per vertex)
//
// It verifies symmetry of the edge relation and of edge loads, and errors
// on self-loops, per the format's stated contract. Grounded on the
// teacher's ReadGraphFile (graph.go), generalized to the full header and
// to the spec's exact flag semantics.
func ReadGraphFile(r io.Reader) (*Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), 1<<24)

	if !scanner.Scan() {
		return nil, errs.New(errs.CodeInvalidInput, "empty graph file")
	}
	header := strings.Fields(scanner.Text())
	if len(header) < 1 {
		return nil, errs.New(errs.CodeInvalidInput, "invalid graph file header")
	}
	if header[0] != "0" {
		return nil, errs.Wrap(errs.CodeInvalidInput, "unsupported graph file version", fmt.Errorf("got %q", header[0]))
	}
	if len(header) < 5 {
		return nil, errs.New(errs.CodeInvalidInput, "graph file header must have 5 fields: version vertnbr edgenbr baseval flagval")
	}
	vertnbr, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "invalid vertnbr", err)
	}
	edgenbr, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "invalid edgenbr", err)
	}
	baseval, err := strconv.Atoi(header[3])
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "invalid baseval", err)
	}
	flagraw, err := strconv.Atoi(header[4])
	if err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "invalid flagval", err)
	}
	flags := parseGraphFlags(flagraw)

	verttab := make([]int32, vertnbr+1)
	edgetab := make([]int32, 0, edgenbr)
	var velotab, edlotab, vlbltab []int32
	if flags.hasVertexLoads {
		velotab = make([]int32, vertnbr)
	}
	if flags.hasEdgeLoads {
		edlotab = make([]int32, 0, edgenbr)
	}
	if flags.hasVertexLabels {
		vlbltab = make([]int32, vertnbr)
	}

	for i := 0; i < vertnbr; i++ {
		if !scanner.Scan() {
			return nil, errs.Wrap(errs.CodeInvalidInput, "unexpected EOF", fmt.Errorf("at vertex %d", i))
		}
		fields := strings.Fields(scanner.Text())
		idx := 0
		if flags.hasVertexLabels {
			lbl, err := strconv.Atoi(fields[idx])
			if err != nil {
				return nil, errs.Wrap(errs.CodeInvalidInput, "invalid vertex label", err)
			}
			vlbltab[i] = int32(lbl)
			idx++
		}
		if flags.hasVertexLoads {
			w, err := strconv.Atoi(fields[idx])
			if err != nil {
				return nil, errs.Wrap(errs.CodeInvalidInput, "invalid vertex load", err)
			}
			velotab[i] = int32(w)
			idx++
		}
		degree, err := strconv.Atoi(fields[idx])
		if err != nil {
			return nil, errs.Wrap(errs.CodeInvalidInput, "invalid degree", err)
		}
		idx++
		for k := 0; k < degree; k++ {
			nbr, err := strconv.Atoi(fields[idx])
			if err != nil {
				return nil, errs.Wrap(errs.CodeInvalidInput, "invalid neighbor id", err)
			}
			idx++
			edgetab = append(edgetab, int32(nbr-baseval))
			if flags.hasEdgeLoads {
				w, err := strconv.Atoi(fields[idx])
				if err != nil {
					return nil, errs.Wrap(errs.CodeInvalidInput, "invalid edge load", err)
				}
				idx++
				edlotab = append(edlotab, int32(w))
			}
		}
		verttab[i+1] = int32(len(edgetab))
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.Wrap(errs.CodeInvalidInput, "error reading graph file", err)
	}

	g := &Graph{
		Baseval: baseval,
		Verttab: verttab,
		Vendtab: verttab[1:],
		Edgetab: edgetab,
		Velotab: velotab,
		Edlotab: edlotab,
		Vlbltab: vlbltab,
		VertOwn: Owned,
		EdgeOwn: Owned,
	}
	g.Refresh()
	if err := g.Check(); err != nil {
		return nil, err
	}
	return g, nil
}

// WriteGraphFile writes g in the text format ReadGraphFile parses.
func WriteGraphFile(w io.Writer, g *Graph) error {
	flags := graphFlags{
		hasVertexLabels: g.Vlbltab != nil,
		hasEdgeLoads:    g.Edlotab != nil,
		hasVertexLoads:  g.Velotab != nil,
	}
	n := g.NumVertices()
	if _, err := fmt.Fprintf(w, "0 %d %d %d %d\n", n, len(g.Edgetab), g.Baseval, flags.encode()); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		var b strings.Builder
		if flags.hasVertexLabels {
			fmt.Fprintf(&b, "%d ", g.Vlbltab[i])
		}
		if flags.hasVertexLoads {
			fmt.Fprintf(&b, "%d ", g.Velotab[i])
		}
		start, end := g.EdgeRange(i)
		fmt.Fprintf(&b, "%d", end-start)
		for e := start; e < end; e++ {
			fmt.Fprintf(&b, " %d", g.Edgetab[e]+int32(g.Baseval))
			if flags.hasEdgeLoads {
				fmt.Fprintf(&b, " %d", g.Edlotab[e])
			}
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// WritePartitioning writes a partition/mapping array, one value per
// vertex, matching the teacher's WritePartitioning.
func WritePartitioning(w io.Writer, part []int32) error {
	for _, p := range part {
		if _, err := fmt.Fprintf(w, "%d\n", p); err != nil {
			return err
		}
	}
	return nil
}

// CalculateEdgeCut returns the dilation-less edge cut of a partitioning:
// the sum of edge loads crossing between different parts. For the
// general mapping case with architecture dilation, see Mapping.CommLoad.
func CalculateEdgeCut(g *Graph, part []int32) int64 {
	var cut int64
	n := g.NumVertices()
	for i := 0; i < n; i++ {
		start, end := g.EdgeRange(i)
		for e := start; e < end; e++ {
			j := g.Edgetab[e]
			if part[i] != part[j] {
				cut += g.EdgeLoad(e)
			}
		}
	}
	return cut / 2
}

// CalculatePartitionBalance returns the min/max/avg part weight across
// nparts parts, using Velotab if present (unit weight otherwise).
func CalculatePartitionBalance(g *Graph, part []int32, nparts int32) (min, max, avg float64) {
	partWeights := make([]int64, nparts)
	n := g.NumVertices()
	for i := 0; i < n; i++ {
		partWeights[part[i]] += g.VertexLoad(i)
	}
	var total int64
	minW, maxW := partWeights[0], partWeights[0]
	for _, w := range partWeights {
		total += w
		if w < minW {
			minW = w
		}
		if w > maxW {
			maxW = w
		}
	}
	return float64(minW), float64(maxW), float64(total) / float64(nparts)
}
