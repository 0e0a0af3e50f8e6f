package scotch

import "github.com/yourusername/scotch/internal/graph"

// Graph, Ownership, and the graph file format are implemented in
// internal/graph so that every other internal package (internal/active,
// internal/coarsen, internal/refine, internal/leaf) can operate on them
// without importing this root package. These are re-exports of the same
// types, grounded on the teacher's graph.go (Graph{Xadj,Adjncy,Vwgt,
// Adjwgt}, ReadGraphFile, WritePartitioning, CalculateEdgeCut,
// CalculatePartitionBalance), generalized per spec §3.

type Graph = graph.Graph

type Ownership = graph.Ownership

const (
	Owned    = graph.Owned
	Borrowed = graph.Borrowed
)

var (
	NewGraph                  = graph.NewGraph
	ReadGraphFile             = graph.ReadGraphFile
	WriteGraphFile            = graph.WriteGraphFile
	WritePartitioning         = graph.WritePartitioning
	CalculateEdgeCut          = graph.CalculateEdgeCut
	CalculatePartitionBalance = graph.CalculatePartitionBalance
)
