package scotch

import (
	"io"

	"github.com/yourusername/scotch/internal/order"
)

// OrderCblk and Order are implemented in internal/order so the
// multilevel driver and leaf solvers can build them without importing
// this root package; these are re-exports of the same types.
type OrderCblk = order.Cblk

type Order = order.Order

// ReadOrderFile reads the "vertnbr then vertnbr (label, value) pairs"
// mapping/ordering file format of spec §6.
func ReadOrderFile(r io.Reader) ([]int32, []int32, error) {
	return order.ReadFile(r)
}

// WriteOrderFile writes the mapping/ordering file format paired
// (label, value) records, matching ReadOrderFile.
func WriteOrderFile(w io.Writer, labels, values []int32) error {
	return order.WriteFile(w, labels, values)
}
