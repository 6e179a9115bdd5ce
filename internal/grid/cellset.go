package grid

import "sort"

// CellSet is a set of linear cell indices.
type CellSet map[int]struct{}

func NewCellSet(indices ...int) CellSet {
	s := make(CellSet, len(indices))
	for _, i := range indices {
		s[i] = struct{}{}
	}
	return s
}

func (s CellSet) Add(i int) {
	s[i] = struct{}{}
}

func (s CellSet) Remove(i int) {
	delete(s, i)
}

func (s CellSet) Has(i int) bool {
	_, ok := s[i]
	return ok
}

func (s CellSet) Clone() CellSet {
	out := make(CellSet, len(s))
	for i := range s {
		out[i] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending order.
func (s CellSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s CellSet) Equal(other CellSet) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if !other.Has(i) {
			return false
		}
	}
	return true
}
