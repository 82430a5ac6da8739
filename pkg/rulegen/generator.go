package rulegen

// Variant is one emitted point of the enumeration: the input facts permuted
// to match the combination, plus the rule rebuilt from the combination.
type Variant struct {
	Facts []Rule
	Rule  Rule
}

// Option configures Generate.
type Option func(*genOptions)

type genOptions struct {
	bodyOrder []int
}

// WithBodyOrder fixes the body-position order applied to the rule before
// enumeration. The order is applied once; it does not vary across the
// output sequence. Defaults to the identity.
func WithBodyOrder(order []int) Option {
	return func(o *genOptions) {
		o.bodyOrder = append([]int(nil), order...)
	}
}

// Variants enumerates, one at a time, every combination of per-atom term
// permutations across the rule body, propagating each combination to the
// matching facts and head. The sequence is a pure function of the inputs:
// Reset restarts it from the beginning and the originals are never mutated.
//
// When two distinct body atoms share a predicate, each is permuted and
// propagated independently; no cross-atom consistency is enforced, so a
// fact matching both atoms is emitted once per match.
type Variants struct {
	head       Atom
	facts      []Rule
	candidates [][]Atom // per body position, all arity! term permutations
	counters   []int    // mixed-radix counter, digit i < len(candidates[i])
	done       bool
}

// Generate prepares the variant enumeration for rule against facts. Facts
// are rules with empty bodies; a fact whose head predicate matches no body
// atom of a combination is not carried into that combination's output.
// Returns an error only when a WithBodyOrder option does not match the body
// length.
func Generate(rule Rule, facts []Rule, opts ...Option) (*Variants, error) {
	var o genOptions
	for _, opt := range opts {
		opt(&o)
	}

	fixed := rule
	if o.bodyOrder != nil {
		var err error
		fixed, err = rule.PermuteBody(o.bodyOrder)
		if err != nil {
			return nil, err
		}
	}

	candidates := make([][]Atom, len(fixed.Body))
	for i, atom := range fixed.Body {
		orders := permutations(atom.Pred.Arity)
		variants := make([]Atom, len(orders))
		for j, order := range orders {
			// order length equals the arity by construction
			variants[j], _ = atom.Permute(order)
		}
		candidates[i] = variants
	}

	return &Variants{
		head:       fixed.Head,
		facts:      append([]Rule(nil), facts...),
		candidates: candidates,
		counters:   make([]int, len(candidates)),
	}, nil
}

// Count returns the total number of variants: the product over body atoms
// of their arity factorial. An empty body counts one variant.
func (v *Variants) Count() int {
	total := 1
	for _, c := range v.candidates {
		total *= len(c)
	}
	return total
}

// Reset restarts the enumeration from the first combination.
func (v *Variants) Reset() {
	for i := range v.counters {
		v.counters[i] = 0
	}
	v.done = false
}

// Next materializes the next combination, or reports false when the
// enumeration is exhausted. Only one combination is live at a time; memory
// stays bounded by the body length regardless of the total count.
func (v *Variants) Next() (Variant, bool) {
	if v.done {
		return Variant{}, false
	}

	combo := make([]Atom, len(v.candidates))
	for i, c := range v.candidates {
		combo[i] = c[v.counters[i]]
	}

	// Advance with the rightmost digit fastest.
	for i := len(v.counters) - 1; ; i-- {
		if i < 0 {
			v.done = true
			break
		}
		v.counters[i]++
		if v.counters[i] < len(v.candidates[i]) {
			break
		}
		v.counters[i] = 0
	}

	return v.emit(combo), true
}

// emit propagates the combination's recorded permutations to the facts and
// the head, then assembles the output pair.
func (v *Variants) emit(combo []Atom) Variant {
	var facts []Rule
	for _, fact := range v.facts {
		for _, atom := range combo {
			if fact.Head.Pred.Equal(atom.Pred) {
				permuted, _ := fact.PermuteHead(atom.Perm)
				facts = append(facts, permuted)
			}
		}
	}

	head := v.head
	for _, atom := range combo {
		if head.Pred.Equal(atom.Pred) {
			head, _ = head.Permute(atom.Perm)
		}
	}

	body := make([]Atom, len(combo))
	copy(body, combo)
	return Variant{Facts: facts, Rule: Rule{Head: head, Body: body}}
}

// permutations enumerates every order of 0..n-1 in lexicographic order.
// n <= 1 yields only the identity.
func permutations(n int) [][]int {
	if n <= 1 {
		return [][]int{identity(n)}
	}
	var out [][]int
	used := make([]bool, n)
	current := make([]int, 0, n)

	var build func()
	build = func() {
		if len(current) == n {
			out = append(out, append([]int(nil), current...))
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			current = append(current, i)
			build()
			current = current[:len(current)-1]
			used[i] = false
		}
	}
	build()
	return out
}
