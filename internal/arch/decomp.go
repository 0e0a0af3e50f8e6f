package arch

// Decomp is a "decomposition-defined" architecture (spec §3): one built
// not from a closed-form topology but from an explicit recursive
// bisection of an arbitrary terminal set, recorded as a binary tree of
// Dom ranges over a user-supplied distance matrix. This covers both of
// the spec's decomposition-defined variants — the matrix can encode a
// physical distance table or a pre-computed domain-distance table
// captured from a prior mapping run.
type Decomp struct {
	n    int
	dist [][]int64 // n x n terminal distance table
}

// NewDecomp builds a decomposition-defined architecture over n terminals
// whose pairwise distances are given by dist (dist[i][i] must be 0).
func NewDecomp(dist [][]int64) *Decomp {
	return &Decomp{n: len(dist), dist: dist}
}

func (dc *Decomp) Name() string { return "deco" }

func (dc *Decomp) DomFrst() Dom {
	return Dom{coords: [6]int32{0, int32(dc.n)}, size: int32(dc.n)}
}

func (dc *Decomp) DomSize(d Dom) int { return int(d.coords[1] - d.coords[0]) }

func (dc *Decomp) DomWght(d Dom) int64 { return int64(dc.DomSize(d)) }

// DomBipart splits the terminal range in half by index. Construction of
// a Decomp from an arbitrary terminal set is expected to have already
// ordered terminals so that adjacent indices are close under dist (e.g.
// via a prior clustering pass); DomBipart itself performs no reordering,
// matching the spec's description of this variant as built "by recursive
// bisection" of an already-decomposed set.
func (dc *Decomp) DomBipart(d Dom) (Dom, Dom, error) {
	lo, hi := d.coords[0], d.coords[1]
	if hi-lo < 2 {
		return Dom{}, Dom{}, errNotBipartable(dc.Name())
	}
	mid := lo + (hi-lo+1)/2
	left := Dom{coords: [6]int32{lo, mid}, size: mid - lo}
	right := Dom{coords: [6]int32{mid, hi}, size: hi - mid}
	return left, right, nil
}

// DomDist returns the average pairwise distance between the terminals
// covered by a and those covered by b (a single number is required by
// the Arch contract even though the underlying table is per-terminal).
func (dc *Decomp) DomDist(a, b Dom) int {
	if a == b {
		return 0
	}
	var sum int64
	var count int64
	for i := a.coords[0]; i < a.coords[1]; i++ {
		for j := b.coords[0]; j < b.coords[1]; j++ {
			sum += dc.dist[i][j]
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(sum / count)
}

func (dc *Decomp) DomTerm(t int) (Dom, error) {
	if t < 0 || t >= dc.n {
		return Dom{}, errTermOutOfRange(dc.Name(), t, dc.n)
	}
	return Dom{coords: [6]int32{int32(t), int32(t + 1)}, size: 1, term: true}, nil
}
