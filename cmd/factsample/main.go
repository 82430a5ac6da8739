// Command factsample shuffles a newline-delimited fact file and truncates
// it to a requested number of facts, writing the sample next to the input.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/factfile"
)

func main() {
	var (
		input = flag.String("input", "", "Path to fact file (required)")
		count = flag.Int("count", 0, "Number of facts to keep (required)")
		seed  = flag.Int64("seed", 0, "Random seed (0 = time-based)")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *count <= 0 {
		log.Fatal("--count must be positive")
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	outPath, err := factfile.Sample(*input, *count, rng)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(outPath)
}
