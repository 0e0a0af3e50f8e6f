/*
Package scotch is a toolkit for static mapping, graph partitioning, and
sparse-matrix nested-dissection reordering on large sparse graphs (spec.md
§1).

It covers three tightly related combinatorial problems:

  - Static mapping: assigning the vertices of a weighted source graph to
    the vertices of a weighted target architecture so as to minimize a
    dilation-weighted communication cost while keeping per-target load
    within a tolerance.
  - Graph partitioning: the special case of mapping onto a complete graph
    of k equally weighted targets.
  - Sparse matrix reordering: producing a nested-dissection vertex
    ordering of a symmetric sparse matrix so that Cholesky factorization
    incurs few fill-in nonzeros.

# Overview

The engine is a pipeline of four cooperating layers, lower layers being
leaves of the ones above:

  - A strategy interpreter (package internal/strat) compiles a small
    embedded language — concat, select (best-of-two), cond
    (test?s1:s2), and typed method invocation — into a tree that drives
    every other layer.
  - A multilevel driver (internal/coarsen) coarsens a graph by repeated
    vertex matching, recurses on the smaller graph, then projects the
    result back up and refines at every level.
  - Active graph objects (internal/active) hold the bipartition,
    vertex-separation, and k-way mapped graph state the refinement
    kernels mutate.
  - Refinement kernels (internal/refine) — Fiduccia-Mattheyses gain-bucket
    local search and diffusion-based refinement — improve an active
    object's partition under a balance constraint.

# Basic usage

	g, err := scotch.ReadGraphFile(r)
	part, err := scotch.GraphPart(g, 4, "")   // partition into 4 parts, default strategy

	order, err := scotch.GraphOrder(g, "", 0) // nested-dissection ordering

	m, err := scotch.GraphMap(g, scotch.NewHypercube(4), "")

An empty strategy string selects a safe, well-balanced default (spec §6);
a non-empty one is parsed by ParseStrategy and interpreted over the
resulting active object.

# Graph format

Graphs are represented as based compressed-adjacency arrays (spec §3,
§9 "based arrays"): Baseval records the smallest externally visible
vertex index (0 or 1); every other array is addressed relative to it.

# Error handling

Every exported entry point returns an *Error carrying one of a closed set
of Codes (CodeInvalidInput, CodeOutOfMemory, CodeStrategyParse,
CodeStrategyRuntime, CodeNumericFailure, CodeInternal — spec §7).
*/
package scotch
