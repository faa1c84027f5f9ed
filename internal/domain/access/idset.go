package access

import "slices"

// IDSet conjunto inmutable de IDs: ordenado y sin duplicados.
// El valor cero es el conjunto vacío.
type IDSet struct {
	ids []int64
}

// NewIDSet copia ids, los ordena y elimina duplicados.
func NewIDSet(ids ...int64) IDSet {
	if len(ids) == 0 {
		return IDSet{}
	}
	cp := slices.Clone(ids)
	slices.Sort(cp)
	return IDSet{ids: slices.Compact(cp)}
}

// Len número de elementos.
func (s IDSet) Len() int { return len(s.ids) }

// Empty indica si el conjunto no tiene elementos.
func (s IDSet) Empty() bool { return len(s.ids) == 0 }

// Contains indica si id pertenece al conjunto.
func (s IDSet) Contains(id int64) bool {
	_, ok := slices.BinarySearch(s.ids, id)
	return ok
}

// ContainsAny indica si algún elemento de ids pertenece al conjunto (intersección no vacía).
func (s IDSet) ContainsAny(ids []int64) bool {
	for _, id := range ids {
		if s.Contains(id) {
			return true
		}
	}
	return false
}

// Slice devuelve una copia ordenada de los elementos; nunca nil.
func (s IDSet) Slice() []int64 {
	out := make([]int64, len(s.ids))
	copy(out, s.ids)
	return out
}
