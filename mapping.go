package scotch

import (
	"github.com/yourusername/scotch/internal/arch"
	"github.com/yourusername/scotch/internal/mapping"
)

// Mapping is implemented in internal/mapping so internal/active can use
// it without importing this root package; this is a re-export of the
// same type.
type Mapping = mapping.Mapping

// NewMapping builds an initial (unmapped) Mapping over g for architecture
// a, with every vertex assigned to the architecture's root domain.
func NewMapping(g *Graph, a arch.Arch) *Mapping {
	return mapping.New(g, a)
}

// Arch is the target-architecture interface of spec §3, re-exported from
// internal/arch for public API use alongside Mapping.
type Arch = arch.Arch

// Dom is an opaque target-architecture domain handle, re-exported from
// internal/arch.
type Dom = arch.Dom

// NewComplete, NewCompleteWeighted, and NewHypercube build the concrete
// target architectures of spec §3's "target architectures" (complete
// graph of k equally weighted or per-terminal-weighted targets, and the
// binary hypercube), re-exported from internal/arch for public API use
// alongside Arch and Dom.
var (
	NewComplete         = arch.NewComplete
	NewCompleteWeighted = arch.NewCompleteWeighted
	NewHypercube        = arch.NewHypercube
)
