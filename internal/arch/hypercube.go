package arch

// Hypercube is the binary-hypercube architecture of dimension ndim
// (2^ndim terminals). A Dom is a (mask, fixedBits) pair: fixedBits of
// the low-order bits of a terminal index are pinned to the value stored
// in mask, the remaining bits are free. domBipart fixes one more bit.
type Hypercube struct {
	ndim int
}

// NewHypercube builds a hypercube of 2^ndim terminals.
func NewHypercube(ndim int) *Hypercube {
	return &Hypercube{ndim: ndim}
}

func (h *Hypercube) Name() string { return "hcub" }

func (h *Hypercube) DomFrst() Dom {
	return Dom{coords: [6]int32{0, 0, 0}, size: int32(1) << uint(h.ndim)}
}

// pinned and fixedBits decode a Dom's packed fields: coords[0] is the
// fixed-bit pattern, coords[2] is the number of fixed low-order bits.
func pinned(d Dom) (mask, fixed int32) { return d.coords[0], d.coords[2] }

func (h *Hypercube) DomSize(d Dom) int {
	_, fixed := pinned(d)
	return 1 << uint(h.ndim-int(fixed))
}

func (h *Hypercube) DomWght(d Dom) int64 { return int64(h.DomSize(d)) }

func (h *Hypercube) DomBipart(d Dom) (Dom, Dom, error) {
	mask, fixed := pinned(d)
	if int(fixed) >= h.ndim {
		return Dom{}, Dom{}, errNotBipartable(h.Name())
	}
	bit := int32(1) << uint(fixed)
	left := Dom{coords: [6]int32{mask, 0, fixed + 1}}
	right := Dom{coords: [6]int32{mask | bit, 0, fixed + 1}}
	left.size = int32(h.DomSize(left))
	right.size = int32(h.DomSize(right))
	return left, right, nil
}

func (h *Hypercube) DomDist(a, b Dom) int {
	if !a.term || !b.term {
		// Non-terminal domains: distance between their fixed-bit
		// patterns restricted to the bits both have fixed, zero
		// otherwise (no canonical distance between regions of
		// differing free-bit sets).
		am, af := pinned(a)
		bm, bf := pinned(b)
		common := af
		if bf < common {
			common = bf
		}
		cmask := (int32(1) << uint(common)) - 1
		return popcount32((am & cmask) ^ (bm & cmask))
	}
	am, _ := pinned(a)
	bm, _ := pinned(b)
	return popcount32(am ^ bm)
}

func popcount32(v int32) int {
	n := 0
	u := uint32(v)
	for u != 0 {
		n += int(u & 1)
		u >>= 1
	}
	return n
}

func (h *Hypercube) DomTerm(t int) (Dom, error) {
	n := 1 << uint(h.ndim)
	if t < 0 || t >= n {
		return Dom{}, errTermOutOfRange(h.Name(), t, n)
	}
	return Dom{coords: [6]int32{int32(t), 0, int32(h.ndim)}, size: 1, term: true}, nil
}
