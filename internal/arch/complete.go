package arch

// Complete is the complete-graph architecture: every pair of distinct
// terminals is equidistant, and partitioning is the special case of
// mapping used by plain graph partitioning (spec §1, "the special case
// of mapping onto a complete graph of k equally weighted targets").
// coords[0]/coords[1] hold the [lo, hi) terminal range a Dom covers.
type Complete struct {
	size   int
	weight []int64 // optional per-terminal weight, nil => unit
}

// NewComplete builds an unweighted complete graph of n terminals.
func NewComplete(n int) *Complete {
	return &Complete{size: n}
}

// NewCompleteWeighted builds a complete graph whose terminals carry the
// given per-terminal weights (len(weight) == n).
func NewCompleteWeighted(weight []int64) *Complete {
	return &Complete{size: len(weight), weight: append([]int64(nil), weight...)}
}

func (c *Complete) Name() string { return "cmplt" }

func (c *Complete) DomFrst() Dom {
	d := Dom{size: int32(c.size)}
	d.coords[0] = 0
	d.coords[1] = int32(c.size)
	return d
}

func (c *Complete) DomSize(d Dom) int { return int(d.coords[1] - d.coords[0]) }

func (c *Complete) DomWght(d Dom) int64 {
	if c.weight == nil {
		return int64(c.DomSize(d))
	}
	var sum int64
	for i := d.coords[0]; i < d.coords[1]; i++ {
		sum += c.weight[i]
	}
	return sum
}

func (c *Complete) DomBipart(d Dom) (Dom, Dom, error) {
	lo, hi := d.coords[0], d.coords[1]
	if hi-lo < 2 {
		return Dom{}, Dom{}, errNotBipartable(c.Name())
	}
	mid := c.splitPoint(lo, hi)
	left := Dom{coords: [6]int32{lo, mid}, size: mid - lo}
	right := Dom{coords: [6]int32{mid, hi}, size: hi - mid}
	return left, right, nil
}

// splitPoint chooses the bipartition boundary: an even terminal-count
// split when unweighted, or the weight-balanced boundary when weighted.
func (c *Complete) splitPoint(lo, hi int32) int32 {
	if c.weight == nil {
		return lo + (hi-lo+1)/2
	}
	var total int64
	for i := lo; i < hi; i++ {
		total += c.weight[i]
	}
	half := total / 2
	var acc int64
	for i := lo; i < hi; i++ {
		acc += c.weight[i]
		if acc >= half {
			if i+1 < hi {
				return i + 1
			}
			return i
		}
	}
	return lo + (hi-lo+1)/2
}

func (c *Complete) DomDist(a, b Dom) int {
	if a.coords[0] == b.coords[0] && a.coords[1] == b.coords[1] {
		return 0
	}
	return 1
}

func (c *Complete) DomTerm(t int) (Dom, error) {
	if t < 0 || t >= c.size {
		return Dom{}, errTermOutOfRange(c.Name(), t, c.size)
	}
	return Dom{coords: [6]int32{int32(t), int32(t + 1)}, size: 1, term: true}, nil
}
