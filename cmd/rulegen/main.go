// Command rulegen enumerates the argument- and atom-order variants of a
// rule described by an experiment file, printing each variant's permuted
// facts followed by the permuted rule.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/rulegen"
	"github.com/CasperDN/flix-datalog-rewrite/pkg/rulegen/config"
)

func main() {
	var (
		expPath   = flag.String("experiment", "", "Path to experiment YAML (required)")
		max       = flag.Int("max", 0, "Stop after this many variants (0 = all)")
		countOnly = flag.Bool("count", false, "Print only the total variant count")
	)
	flag.Parse()

	if *expPath == "" {
		log.Fatal("--experiment required")
	}

	exp, err := config.Load(*expPath)
	if err != nil {
		log.Fatal(err)
	}
	rule, facts, err := exp.Build()
	if err != nil {
		log.Fatal(err)
	}

	var opts []rulegen.Option
	if exp.BodyOrder != nil {
		opts = append(opts, rulegen.WithBodyOrder(exp.BodyOrder))
	}
	gen, err := rulegen.Generate(rule, facts, opts...)
	if err != nil {
		log.Fatal(err)
	}

	if *countOnly {
		fmt.Println(gen.Count())
		return
	}

	fmt.Println("Permutations:")
	fmt.Println()
	emitted := 0
	for {
		if *max > 0 && emitted >= *max {
			break
		}
		variant, ok := gen.Next()
		if !ok {
			break
		}
		for _, fact := range variant.Facts {
			fmt.Println(fact)
		}
		fmt.Println(variant.Rule)
		fmt.Println()
		emitted++
	}
}
