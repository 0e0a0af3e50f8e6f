// Package order implements the nested-dissection separator tree of
// spec.md §3/§4.5 (Order/OrderCblk), kept internal so the multilevel
// driver and nested-dissection leaf solvers can build it without
// importing the root package.
package order

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yourusername/scotch/internal/errs"
)

// Cblk is a node of the separator tree the nested-dissection driver
// builds (spec §4.5): an internal node holds its two side children and
// its separator child; a leaf stores the permutation, as based vertex
// labels, that it computed over its own vertices. Grounded directly on spec §3's "Ordering" data model,
// styled after katalvlaran-lvlath/core's accessor-heavy node types.
type Cblk struct {
	VertLo, VertHi int // VertHi-VertLo is the number of vertices this node covers; nested dissection sets VertLo to 0

	// Leaf holds the permutation for a leaf node (len == VertHi-VertLo),
	// nil for internal nodes.
	Leaf []int32

	// Left and Right are the two side children of a separation (parts 0
	// and 1); Sep is the separator child recording its own vertex range,
	// ordered last among the three per spec §4.5.
	Left, Right, Sep *Cblk
}

func (c *Cblk) IsLeaf() bool { return c.Leaf != nil }

// Order is the root handle of a nested-dissection ordering: a disjoint
// forest rooted at a single Cblk covering the whole vertex range (spec
// §3 "Order").
type Order struct {
	Baseval int
	Root    *Cblk
}

// Permutation flattens the tree into the final permutation array (spec
// §4.5 invariant: "the in-order traversal of leaves, followed by
// separator nodes in bottom-up order, produces a permutation that
// numbers each separator after its descendants").
func (o *Order) Permutation() []int32 {
	perm := make([]int32, 0, o.Root.VertHi-o.Root.VertLo)
	appendOrder(o.Root, &perm)
	return perm
}

func appendOrder(c *Cblk, perm *[]int32) {
	if c == nil {
		return
	}
	if c.IsLeaf() {
		*perm = append(*perm, c.Leaf...)
		return
	}
	appendOrder(c.Left, perm)
	appendOrder(c.Right, perm)
	appendOrder(c.Sep, perm)
}

// Check validates the permutation invariant: every based vertex index in
// [Baseval, Baseval+n) appears exactly once across the leaves (spec §3:
// "the multiset of per-leaf vertex indices equals the original vertex
// set").
func (o *Order) Check() error {
	perm := o.Permutation()
	n := o.Root.VertHi - o.Root.VertLo
	if len(perm) != n {
		return errs.New(errs.CodeInternal, fmt.Sprintf("ordering permutation has %d entries, want %d", len(perm), n))
	}
	seen := make(map[int32]bool, n)
	for _, v := range perm {
		if int(v) < o.Baseval || int(v) >= o.Baseval+n {
			return errs.Wrap(errs.CodeInternal, "ordering permutation entry out of range", fmt.Errorf("vertex %d", v))
		}
		if seen[v] {
			return errs.Wrap(errs.CodeInternal, "ordering permutation has a duplicate entry", fmt.Errorf("vertex %d", v))
		}
		seen[v] = true
	}
	return nil
}

// ReadFile reads the "vertnbr then vertnbr (label, value) pairs"
// mapping/ordering file format of spec §6.
func ReadFile(r io.Reader) (labels, values []int32, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<16), 1<<24)
	if !scanner.Scan() {
		return nil, nil, errs.New(errs.CodeInvalidInput, "empty ordering file")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, nil, errs.Wrap(errs.CodeInvalidInput, "invalid vertnbr in ordering file", err)
	}
	labels = make([]int32, n)
	values = make([]int32, n)
	for i := 0; i < n; i++ {
		if !scanner.Scan() {
			return nil, nil, errs.Wrap(errs.CodeInvalidInput, "unexpected EOF in ordering file", fmt.Errorf("at record %d", i))
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			return nil, nil, errs.New(errs.CodeInvalidInput, "ordering record must have exactly (label, value)")
		}
		label, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, nil, errs.Wrap(errs.CodeInvalidInput, "invalid label", err)
		}
		value, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, errs.Wrap(errs.CodeInvalidInput, "invalid value", err)
		}
		labels[i] = int32(label)
		values[i] = int32(value)
	}
	return labels, values, nil
}

// WriteFile writes the mapping/ordering file format paired (label,
// value) records, matching ReadFile.
func WriteFile(w io.Writer, labels, values []int32) error {
	if len(labels) != len(values) {
		return errs.New(errs.CodeInvalidInput, "labels and values must have the same length")
	}
	if _, err := fmt.Fprintln(w, len(labels)); err != nil {
		return err
	}
	for i := range labels {
		if _, err := fmt.Fprintf(w, "%d %d\n", labels[i], values[i]); err != nil {
			return err
		}
	}
	return nil
}
