package rulegen

import (
	"fmt"
	"strings"
)

// Rule derives a head atom from a conjunction of body atoms. An empty body
// denotes a ground fact. Rules are value objects; the permute methods return
// new rules and leave the receiver untouched.
type Rule struct {
	Head Atom
	Body []Atom
}

// NewRule builds a rule from a head and body atoms.
func NewRule(head Atom, body ...Atom) Rule {
	return Rule{Head: head, Body: append([]Atom(nil), body...)}
}

// Fact builds a ground fact: a rule with an empty body.
func Fact(head Atom) Rule {
	return Rule{Head: head}
}

// IsFact reports whether the rule has an empty body.
func (r Rule) IsFact() bool {
	return len(r.Body) == 0
}

// PermuteBody returns a rule whose body atoms are reordered by position:
// result.Body[i] = r.Body[order[i]]. Term order inside each atom is
// untouched.
func (r Rule) PermuteBody(order []int) (Rule, error) {
	if len(order) != len(r.Body) {
		return Rule{}, fmt.Errorf("rule body: order length %d != body length %d: %w",
			len(order), len(r.Body), ErrArityMismatch)
	}
	body := make([]Atom, len(order))
	for i, j := range order {
		body[i] = r.Body[j]
	}
	return Rule{Head: r.Head, Body: body}, nil
}

// PermuteHead returns a rule whose head terms are reordered by order.
func (r Rule) PermuteHead(order []int) (Rule, error) {
	head, err := r.Head.Permute(order)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Head: head, Body: r.Body}, nil
}

// String renders the canonical text form: "head." for facts, otherwise
// "head :- a1, a2, ... .".
func (r Rule) String() string {
	if r.IsFact() {
		return r.Head.String() + "."
	}
	parts := make([]string, len(r.Body))
	for i, a := range r.Body {
		parts[i] = a.String()
	}
	return r.Head.String() + " :- " + strings.Join(parts, ", ") + "."
}
