package universe

import (
	"encoding/json"
	"slices"
)

// Resources maps a resource to a whole-unit quantity. Absent entries read as zero.
type Resources map[ResourceType]uint64

func (r Resources) Get(t ResourceType) uint64 {
	if r == nil {
		return 0
	}
	return r[t]
}

func (r Resources) Clone() Resources {
	out := make(Resources, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r Resources) Total() uint64 {
	var total uint64
	for _, v := range r {
		total += v
	}
	return total
}

// IDSet is a set of entity ids. It encodes as a sorted JSON array.
type IDSet map[uint64]struct{}

func NewIDSet(ids ...uint64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Add(id uint64) { s[id] = struct{}{} }

func (s IDSet) Has(id uint64) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) Sorted() []uint64 {
	out := make([]uint64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (s IDSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IDSet) UnmarshalJSON(data []byte) error {
	var ids []uint64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIDSet(ids...)
	return nil
}
