package rulegen

import "strconv"

// Predicate names a relation with a fixed argument count.
// Two predicates denote the same relation iff name and arity both match;
// matching is by value, so independently constructed predicates compare
// equal. Used downstream as the sole key for matching atoms to facts.
type Predicate struct {
	Name  string
	Arity int
}

// Equal reports whether p and other name the same relation.
func (p Predicate) Equal(other Predicate) bool {
	return p.Name == other.Name && p.Arity == other.Arity
}

// Key returns a "name/arity" string usable as a map key.
func (p Predicate) Key() string {
	return p.Name + "/" + strconv.Itoa(p.Arity)
}

func (p Predicate) String() string {
	return p.Name
}
