// Package arch implements the target architectures of spec.md §3/§4.4:
// the tagged domain (Dom) representation and the Arch interface every
// built-in topology (complete graph, mesh, torus, hypercube, tree, and
// the two decomposition-defined variants) satisfies. Grounded directly on
// spec §3's operation table; this is a closed tagged union the spec
// itself fully enumerates, so no external graph-topology library is
// pulled in for it (the domain math is a handful of integer formulas per
// topology, not the kind of thing a dependency earns its keep for).
package arch

import "fmt"

// Dom is an opaque handle to a sub-domain of a target architecture. Its
// interpretation is architecture-specific; callers never inspect its
// fields directly, only pass it back through the Arch interface.
type Dom struct {
	// kind-specific packed coordinates. For Complete and Decomp: [lo, hi)
	// terminal range. For Mesh: [dim0lo, dim0hi, dim1lo, dim1hi, ...].
	// For Hypercube: [bitmask, unused, fixed-bit count]. For Tree:
	// [firstNode, childCount]. Interpretation is owned entirely by the
	// Arch implementation that produced it.
	coords [6]int32
	size   int32 // domSize cached at construction
	term   bool  // true if this Dom is a single terminal (domTerm result)
}

// Arch is the tagged union of spec §3: "domFrst → Dom, domSize(Dom),
// domWght(Dom), domBipart(Dom) → (Dom, Dom), domDist(Dom, Dom) → Anum,
// domTerm(t) → Dom".
type Arch interface {
	// Name identifies the architecture kind, used in strategy parameters
	// and diagnostics (e.g. "cmplt", "mesh2d", "hcub", "tree").
	Name() string

	// DomFrst returns the root domain, covering every terminal.
	DomFrst() Dom

	// DomSize returns the number of terminals covered by d.
	DomSize(d Dom) int

	// DomWght returns the total weight of terminals covered by d (unit
	// weight architectures return the same value as DomSize).
	DomWght(d Dom) int64

	// DomBipart splits d into two (near-)balanced sub-domains. Calling it
	// on a single-terminal domain is an error.
	DomBipart(d Dom) (Dom, Dom, error)

	// DomDist returns the non-negative routing distance between two
	// domains; domDist(a,a)=0 always, but it need not satisfy the
	// triangle inequality (spec §3).
	DomDist(a, b Dom) int

	// DomTerm returns the single-terminal domain for terminal index t,
	// 0 <= t < DomSize(DomFrst()).
	DomTerm(t int) (Dom, error)
}

func errNotBipartable(name string) error {
	return fmt.Errorf("arch %s: cannot bipartition a single-terminal domain", name)
}

func errTermOutOfRange(name string, t, n int) error {
	return fmt.Errorf("arch %s: terminal %d out of range [0,%d)", name, t, n)
}
