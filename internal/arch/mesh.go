package arch

// Mesh is a 2D or 3D mesh (or torus, if wraparound is set) architecture.
// A Dom's coords pack [lo0,hi0, lo1,hi1, lo2,hi2] box bounds; unused
// trailing dimensions are left as [0,1). Grounded on spec §3's "2D/3D
// meshes and tori" built-in variant list.
type Mesh struct {
	dims  [3]int
	torus bool
	ndim  int
}

// NewMesh2D builds a dimx*dimy mesh (or torus if torus is true).
func NewMesh2D(dimx, dimy int, torus bool) *Mesh {
	return &Mesh{dims: [3]int{dimx, dimy, 1}, torus: torus, ndim: 2}
}

// NewMesh3D builds a dimx*dimy*dimz mesh (or torus if torus is true).
func NewMesh3D(dimx, dimy, dimz int, torus bool) *Mesh {
	return &Mesh{dims: [3]int{dimx, dimy, dimz}, torus: torus, ndim: 3}
}

func (m *Mesh) Name() string {
	if m.torus {
		if m.ndim == 3 {
			return "tleaf3"
		}
		return "tleaf2"
	}
	if m.ndim == 3 {
		return "mesh3d"
	}
	return "mesh2d"
}

func (m *Mesh) DomFrst() Dom {
	var d Dom
	for i := 0; i < 3; i++ {
		d.coords[2*i] = 0
		d.coords[2*i+1] = int32(m.dims[i])
	}
	d.size = int32(m.dims[0] * m.dims[1] * m.dims[2])
	return d
}

func (m *Mesh) DomSize(d Dom) int {
	n := 1
	for i := 0; i < 3; i++ {
		n *= int(d.coords[2*i+1] - d.coords[2*i])
	}
	return n
}

func (m *Mesh) DomWght(d Dom) int64 { return int64(m.DomSize(d)) }

// widestAxis returns the dimension index with the largest extent,
// preferring the lowest index on ties (deterministic, matching the
// spec's "no tie-break randomness" posture for Select but applied here
// to keep repeated bipartitions reproducible).
func (m *Mesh) widestAxis(d Dom) int {
	best, bestExt := 0, int32(-1)
	for i := 0; i < 3; i++ {
		ext := d.coords[2*i+1] - d.coords[2*i]
		if ext > bestExt {
			best, bestExt = i, ext
		}
	}
	return best
}

func (m *Mesh) DomBipart(d Dom) (Dom, Dom, error) {
	if m.DomSize(d) < 2 {
		return Dom{}, Dom{}, errNotBipartable(m.Name())
	}
	axis := m.widestAxis(d)
	lo, hi := d.coords[2*axis], d.coords[2*axis+1]
	mid := lo + (hi-lo+1)/2

	left, right := d, d
	left.coords[2*axis+1] = mid
	right.coords[2*axis] = mid
	left.size = int32(m.DomSize(left))
	right.size = int32(m.DomSize(right))
	return left, right, nil
}

func axisDist(lo1, hi1, lo2, hi2, dim int32, torus bool) int32 {
	// Distance between two half-open intervals on one axis: 0 if they
	// overlap, otherwise the distance between their nearest cells (1 for
	// adjacent intervals); with torus wraparound, the shorter of the
	// direct and wrapped distance.
	var gap int32
	switch {
	case hi1 <= lo2:
		gap = lo2 - hi1 + 1
	case hi2 <= lo1:
		gap = lo1 - hi2 + 1
	default:
		gap = 0
	}
	if !torus || gap == 0 {
		return gap
	}
	wrapped := dim - gap
	if wrapped < gap {
		return wrapped
	}
	return gap
}

func (m *Mesh) DomDist(a, b Dom) int {
	if a == b {
		return 0
	}
	var dist int32
	for i := 0; i < 3; i++ {
		dist += axisDist(a.coords[2*i], a.coords[2*i+1], b.coords[2*i], b.coords[2*i+1], int32(m.dims[i]), m.torus)
	}
	return int(dist)
}

func (m *Mesh) DomTerm(t int) (Dom, error) {
	n := m.dims[0] * m.dims[1] * m.dims[2]
	if t < 0 || t >= n {
		return Dom{}, errTermOutOfRange(m.Name(), t, n)
	}
	x := t % m.dims[0]
	y := (t / m.dims[0]) % m.dims[1]
	z := t / (m.dims[0] * m.dims[1])
	return Dom{
		coords: [6]int32{int32(x), int32(x + 1), int32(y), int32(y + 1), int32(z), int32(z + 1)},
		size:   1,
		term:   true,
	}, nil
}
