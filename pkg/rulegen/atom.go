package rulegen

import (
	"fmt"
	"strings"
)

// Term is an opaque argument of an atom. The generator never inspects term
// content; numeric constants are carried as their literal text.
type Term string

// Atom applies a predicate to an ordered sequence of terms. Perm records how
// the current term order relates to the canonical order: the atom was built
// with Terms[i] = canonical[Perm[i]]. A freshly constructed atom carries the
// identity mapping. Atoms are value objects; Permute returns a new atom and
// never mutates the receiver.
type Atom struct {
	Pred  Predicate
	Terms []Term
	Perm  []int
}

// NewAtom builds an atom, checking the term count against the predicate
// arity. The recorded permutation is the identity.
func NewAtom(pred Predicate, terms ...Term) (Atom, error) {
	if len(terms) != pred.Arity {
		return Atom{}, fmt.Errorf("atom %s: %d terms for arity %d: %w",
			pred.Name, len(terms), pred.Arity, ErrArityMismatch)
	}
	return Atom{
		Pred:  pred,
		Terms: append([]Term(nil), terms...),
		Perm:  identity(pred.Arity),
	}, nil
}

// MustAtom is NewAtom that panics on arity mismatch. Intended for literals
// in tests and examples.
func MustAtom(pred Predicate, terms ...Term) Atom {
	a, err := NewAtom(pred, terms...)
	if err != nil {
		panic(err)
	}
	return a
}

// Permute returns a new atom whose terms are reordered by order:
// result.Terms[i] = a.Terms[order[i]]. The order becomes the new atom's
// recorded permutation, which the generator later reads back to propagate
// the same reordering to matching facts and heads.
func (a Atom) Permute(order []int) (Atom, error) {
	if len(order) != len(a.Terms) {
		return Atom{}, fmt.Errorf("atom %s: order length %d != arity %d: %w",
			a.Pred.Name, len(order), len(a.Terms), ErrArityMismatch)
	}
	terms := make([]Term, len(order))
	for i, j := range order {
		terms[i] = a.Terms[j]
	}
	return Atom{
		Pred:  a.Pred,
		Terms: terms,
		Perm:  append([]int(nil), order...),
	}, nil
}

// String renders the canonical text form: name(t1, t2, ...).
func (a Atom) String() string {
	parts := make([]string, len(a.Terms))
	for i, t := range a.Terms {
		parts[i] = string(t)
	}
	return a.Pred.String() + "(" + strings.Join(parts, ", ") + ")"
}

// identity returns the identity order 0..n-1.
func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
