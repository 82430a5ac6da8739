// Command benchstats aggregates a benchmark timing log into per-block
// metric averages, printing them and optionally persisting them as runs in
// a SQLite store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/benchlog"
	"github.com/CasperDN/flix-datalog-rewrite/pkg/results/sqlite"
)

func main() {
	var (
		input   = flag.String("input", "", "Path to timing log (required)")
		join    = flag.Bool("join", false, "Log includes join timestamps")
		repeats = flag.Int("repeats", benchlog.DefaultRepeats, "Timing repeats per block")
		metrics = flag.String("metrics", "", "Comma-separated metrics to keep (default all)")
		dbPath  = flag.String("db", "", "Optional: SQLite database to persist runs into")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	blocks, err := benchlog.ReadTimingsRepeats(f, *join, *repeats)
	if err != nil {
		log.Fatal(err)
	}
	if *metrics != "" {
		blocks = benchlog.Project(blocks, strings.Split(*metrics, ","))
	}

	descs := make([]string, 0, len(blocks))
	for desc := range blocks {
		descs = append(descs, desc)
	}
	sort.Strings(descs)

	for _, desc := range descs {
		fmt.Println(desc)
		m := blocks[desc]
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %s: %.2f\n", k, m[k])
		}
	}

	if *dbPath == "" {
		return
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	for _, desc := range descs {
		run, err := st.SaveRun(ctx, desc, blocks[desc])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("saved %s as run %s\n", desc, run.ID)
	}
}
