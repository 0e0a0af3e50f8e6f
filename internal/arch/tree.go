package arch

// Tree is a fixed-arity tree architecture: terminals are its leaves,
// internal nodes are 1-indexed heap-style (root = 1, children of node i
// are arity*i-arity+2 .. arity*i+1). A Dom is the union of childCount
// (coords[1]) sibling subtrees rooted at consecutive nodes starting at
// firstNode (coords[0]) — childCount == 1 for a single whole subtree,
// and > 1 for a group of siblings produced by bipartitioning one such
// subtree's children directly rather than descending one child at a
// time, so that an arity > 2 node's bipartition still covers every
// child. Distance is the number of tree edges between two leaves,
// optionally weighted per level.
type Tree struct {
	arity     int
	levels    int
	linkCosts []int64 // per-level edge weight, length levels; nil => unit
}

// NewTree builds an arity-ary tree of the given depth (levels edges from
// root to leaf), unit edge costs.
func NewTree(arity, levels int) *Tree {
	return &Tree{arity: arity, levels: levels}
}

// NewTreeWeighted builds a tree whose edges at level i (0 = nearest the
// root) cost linkCosts[i].
func NewTreeWeighted(arity, levels int, linkCosts []int64) *Tree {
	return &Tree{arity: arity, levels: levels, linkCosts: append([]int64(nil), linkCosts...)}
}

func (tr *Tree) Name() string { return "tree" }

func (tr *Tree) nodeDepth(node int32) int {
	depth := 0
	n := int64(node)
	for n > 1 {
		n = (n - 2) / int64(tr.arity) + 1
		depth++
	}
	return depth
}

func (tr *Tree) DomFrst() Dom {
	return Dom{coords: [6]int32{1, 1}, size: int32(tr.leafCount())}
}

func (tr *Tree) leafCount() int {
	n := 1
	for i := 0; i < tr.levels; i++ {
		n *= tr.arity
	}
	return n
}

// DomSize returns the total leaf count of all childCount sibling
// subtrees the domain spans.
func (tr *Tree) DomSize(d Dom) int {
	depth := tr.nodeDepth(d.coords[0])
	perSubtree := 1
	for i := depth; i < tr.levels; i++ {
		perSubtree *= tr.arity
	}
	count := int(d.coords[1])
	if count == 0 {
		count = 1
	}
	return perSubtree * count
}

func (tr *Tree) DomWght(d Dom) int64 { return int64(tr.DomSize(d)) }

// DomBipart splits d into two domains that together cover every one of
// d's terminals. If d already spans more than one sibling subtree
// (coords[1] > 1), it splits that sibling span in two. Otherwise d is a
// single subtree: its own firstChild..firstChild+arity-1 children are
// split into two consecutive groups of ⌈arity/2⌉ and arity-⌈arity/2⌉
// siblings, so every child — not just the first two — ends up covered
// by one side or the other.
func (tr *Tree) DomBipart(d Dom) (Dom, Dom, error) {
	if tr.DomSize(d) < 2 {
		return Dom{}, Dom{}, errNotBipartable(tr.Name())
	}
	count := int(d.coords[1])
	if count == 0 {
		count = 1
	}
	if count > 1 {
		half := (count + 1) / 2
		left := Dom{coords: [6]int32{d.coords[0], int32(half)}}
		right := Dom{coords: [6]int32{d.coords[0] + int32(half), int32(count - half)}}
		left.size = int32(tr.DomSize(left))
		right.size = int32(tr.DomSize(right))
		return left, right, nil
	}

	depth := tr.nodeDepth(d.coords[0])
	if depth >= tr.levels {
		return Dom{}, Dom{}, errNotBipartable(tr.Name())
	}
	firstChild := int64(d.coords[0])*int64(tr.arity) - int64(tr.arity) + 2
	half := (tr.arity + 1) / 2
	left := Dom{coords: [6]int32{int32(firstChild), int32(half)}}
	right := Dom{coords: [6]int32{int32(firstChild) + int32(half), int32(tr.arity - half)}}
	left.size = int32(tr.DomSize(left))
	right.size = int32(tr.DomSize(right))
	return left, right, nil
}

func (tr *Tree) levelCost(level int) int64 {
	if tr.linkCosts == nil {
		return 1
	}
	if level < len(tr.linkCosts) {
		return tr.linkCosts[level]
	}
	return 1
}

func (tr *Tree) ancestorAtDepth(node int32, depth, targetDepth int) int32 {
	n := int64(node)
	for depth > targetDepth {
		n = (n-2)/int64(tr.arity) + 1
		depth--
	}
	return int32(n)
}

func (tr *Tree) DomDist(a, b Dom) int {
	if a == b {
		return 0
	}
	da := tr.nodeDepth(a.coords[0])
	db := tr.nodeDepth(b.coords[0])
	na, nb := a.coords[0], b.coords[0]
	depth := da
	if db > depth {
		depth = db
	}
	na = tr.ancestorAtDepth(na, da, depth)
	nb = tr.ancestorAtDepth(nb, db, depth)
	var dist int64
	for na != nb && depth > 0 {
		dist += 2 * tr.levelCost(depth-1)
		na = int32((int64(na)-2)/int64(tr.arity) + 1)
		nb = int32((int64(nb)-2)/int64(tr.arity) + 1)
		depth--
	}
	return int(dist)
}

func (tr *Tree) DomTerm(t int) (Dom, error) {
	n := tr.leafCount()
	if t < 0 || t >= n {
		return Dom{}, errTermOutOfRange(tr.Name(), t, n)
	}
	// Nodes before level L total (arity^L - 1)/(arity - 1) in the
	// 1-indexed heap numbering (or L when arity == 1, a degenerate
	// chain).
	pow := int64(1)
	for i := 0; i < tr.levels; i++ {
		pow *= int64(tr.arity)
	}
	var before int64
	if tr.arity > 1 {
		before = (pow - 1) / int64(tr.arity-1)
	} else {
		before = int64(tr.levels)
	}
	leaf := before + int64(t) + 1
	return Dom{coords: [6]int32{int32(leaf), 1}, size: 1, term: true}, nil
}
