// Command benchchart renders benchmark runs as grouped terminal bar
// charts. Without a database it shows the recorded interpretation-time
// comparison of the optimization configurations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/CasperDN/flix-datalog-rewrite/pkg/chart"
	"github.com/CasperDN/flix-datalog-rewrite/pkg/results"
	"github.com/CasperDN/flix-datalog-rewrite/pkg/results/sqlite"
)

func main() {
	var (
		dbPath  = flag.String("db", "", "SQLite database of benchmark runs")
		metrics = flag.String("metrics", "total,avg_ms", "Comma-separated metrics to chart")
		title   = flag.String("title", "Benchmark Runs", "Chart title")
		unit    = flag.String("unit", "", "Value unit suffix")
		width   = flag.Int("width", chart.DefaultWidth, "Bar width in cells")
	)
	flag.Parse()

	if *dbPath == "" {
		fmt.Print(builtinChart(*width).Render())
		return
	}

	ctx := context.Background()
	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

	runs, err := st.ListRuns(ctx, 0)
	if err != nil {
		log.Fatal(err)
	}
	if len(runs) == 0 {
		log.Fatal("no runs recorded")
	}

	fmt.Print(runChart(runs, strings.Split(*metrics, ","), *title, *unit, *width).Render())
}

// runChart plots the newest run per description, one series per metric.
func runChart(runs []results.Run, metrics []string, title, unit string, width int) chart.BarChart {
	newest := make(map[string]results.Run)
	var categories []string
	for _, run := range runs { // newest first
		if _, ok := newest[run.Desc]; ok {
			continue
		}
		newest[run.Desc] = run
		categories = append(categories, run.Desc)
	}
	sort.Strings(categories)

	series := make([]chart.Series, 0, len(metrics))
	for i, metric := range metrics {
		values := make(map[string]float64)
		for desc, run := range newest {
			if v, ok := run.Metrics[metric]; ok {
				values[desc] = v
			}
		}
		series = append(series, chart.Series{
			Label:  metric,
			Color:  chart.DefaultPalette[i%len(chart.DefaultPalette)],
			Values: values,
		})
	}

	return chart.BarChart{
		Title:      title,
		Unit:       unit,
		Width:      width,
		Categories: categories,
		Series:     series,
	}
}

// builtinChart is the recorded interpretation-time comparison across the
// optimization configurations; the shuffled road dataset times out under
// the baseline.
func builtinChart(width int) chart.BarChart {
	categories := []string{"Road", "Road Shuffled", "Page Link", "Page Link Shuffled"}
	return chart.BarChart{
		Title:      "Interpretation Time",
		Unit:       "s",
		Width:      width,
		Categories: categories,
		Series: []chart.Series{
			{
				Label: "Parallel",
				Color: chart.DefaultPalette[0],
				Values: map[string]float64{
					"Road": 37.1, "Road Shuffled": 37.1,
					"Page Link": 31.4, "Page Link Shuffled": 31.4,
				},
			},
			{
				Label: "Join Optimization",
				Color: chart.DefaultPalette[1],
				Values: map[string]float64{
					"Road": 81.9, "Road Shuffled": 76.0,
					"Page Link": 70.3, "Page Link Shuffled": 63.4,
				},
			},
			{
				Label: "Index Selection",
				Color: chart.DefaultPalette[2],
				Values: map[string]float64{
					"Road": 83.2, "Road Shuffled": 128,
					"Page Link": 80.5, "Page Link Shuffled": 81.3,
				},
			},
			{
				Label: "Baseline",
				Color: chart.DefaultPalette[3],
				Values: map[string]float64{
					"Road": 83.9, "Road Shuffled": math.Inf(1),
					"Page Link": 81.4, "Page Link Shuffled": 81.3,
				},
			},
		},
	}
}
