package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/rulegen"
)

// Experiment is the YAML description of one fuzzing input: the predicate
// declarations, the rule under test, the ground facts, and an optional fixed
// body-position order. It is structured data, not Datalog text; atoms refer
// to predicates by name.
type Experiment struct {
	Predicates []PredicateDef `yaml:"predicates"`
	Rule       RuleDef        `yaml:"rule"`
	Facts      []AtomDef      `yaml:"facts"`
	BodyOrder  []int          `yaml:"body_order"`
}

// PredicateDef declares a predicate.
type PredicateDef struct {
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

// AtomDef applies a declared predicate to terms.
type AtomDef struct {
	Pred  string   `yaml:"pred"`
	Terms []string `yaml:"terms"`
}

// RuleDef is a head atom with body atoms.
type RuleDef struct {
	Head AtomDef   `yaml:"head"`
	Body []AtomDef `yaml:"body"`
}

// Load reads an experiment from a YAML file.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load experiment: %w", err)
	}

	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("load experiment: %w", err)
	}

	return &exp, nil
}

// Build validates the experiment and constructs the rule and fact values.
// Atom construction failures wrap rulegen.ErrArityMismatch.
func (e *Experiment) Build() (rulegen.Rule, []rulegen.Rule, error) {
	preds := make(map[string]rulegen.Predicate, len(e.Predicates))
	for _, def := range e.Predicates {
		if def.Name == "" {
			return rulegen.Rule{}, nil, fmt.Errorf("predicate with empty name")
		}
		if def.Arity <= 0 {
			return rulegen.Rule{}, nil, fmt.Errorf("predicate %s: arity must be positive, got %d",
				def.Name, def.Arity)
		}
		if _, ok := preds[def.Name]; ok {
			return rulegen.Rule{}, nil, fmt.Errorf("predicate %s declared twice", def.Name)
		}
		preds[def.Name] = rulegen.Predicate{Name: def.Name, Arity: def.Arity}
	}

	head, err := buildAtom(preds, e.Rule.Head)
	if err != nil {
		return rulegen.Rule{}, nil, fmt.Errorf("rule head: %w", err)
	}
	body := make([]rulegen.Atom, len(e.Rule.Body))
	for i, def := range e.Rule.Body {
		if body[i], err = buildAtom(preds, def); err != nil {
			return rulegen.Rule{}, nil, fmt.Errorf("body atom %d: %w", i, err)
		}
	}

	facts := make([]rulegen.Rule, len(e.Facts))
	for i, def := range e.Facts {
		atom, err := buildAtom(preds, def)
		if err != nil {
			return rulegen.Rule{}, nil, fmt.Errorf("fact %d: %w", i, err)
		}
		facts[i] = rulegen.Fact(atom)
	}

	if e.BodyOrder != nil {
		if err := validOrder(e.BodyOrder, len(body)); err != nil {
			return rulegen.Rule{}, nil, fmt.Errorf("body_order: %w", err)
		}
	}

	return rulegen.NewRule(head, body...), facts, nil
}

func buildAtom(preds map[string]rulegen.Predicate, def AtomDef) (rulegen.Atom, error) {
	pred, ok := preds[def.Pred]
	if !ok {
		return rulegen.Atom{}, fmt.Errorf("unknown predicate %q", def.Pred)
	}
	terms := make([]rulegen.Term, len(def.Terms))
	for i, t := range def.Terms {
		terms[i] = rulegen.Term(t)
	}
	return rulegen.NewAtom(pred, terms...)
}

// validOrder checks that order is a permutation of 0..n-1.
func validOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("length %d != body length %d", len(order), n)
	}
	seen := make([]bool, n)
	for _, v := range order {
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("%v is not a permutation of 0..%d", order, n-1)
		}
		seen[v] = true
	}
	return nil
}
