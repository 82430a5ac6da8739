package benchlog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// DescPair is one "key : value" description line of an order-experiment
// block.
type DescPair struct {
	Key string
	Val int
}

// Result is one order-experiment block: its description pairs and the
// average of its measurement vector.
type Result struct {
	Desc []DescPair
	Avg  int
}

// Has reports whether the result's description carries key with val.
func (r Result) Has(key string, val int) bool {
	for _, d := range r.Desc {
		if d.Key == key && d.Val == val {
			return true
		}
	}
	return false
}

// ReadResults parses an order-experiment log: one header line, then blocks
// of descNum "key : value" description lines followed by a measurement
// vector line, either "Vector([v1, v2, ...])" or a bare comma-separated
// list. The vector is averaged with integer division.
func ReadResults(r io.Reader, descNum int) ([]Result, error) {
	if descNum <= 0 {
		return nil, fmt.Errorf("descNum must be positive, got %d", descNum)
	}

	lr := newLineReader(r)
	lr.next() // header

	var out []Result
	for {
		first, ok := lr.next()
		if !ok {
			break
		}
		if strings.TrimSpace(first) == "" {
			continue
		}

		desc := make([]DescPair, 0, descNum)
		line := first
		for i := 0; i < descNum; i++ {
			if i > 0 {
				line, ok = lr.next()
				if !ok {
					return nil, fmt.Errorf("line %d: unexpected end of input in description", lr.line)
				}
			}
			pair, err := parseDescPair(line, lr.line)
			if err != nil {
				return nil, err
			}
			desc = append(desc, pair)
		}

		vecLine, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("line %d: unexpected end of input before vector", lr.line)
		}
		avg, err := parseVector(vecLine, lr.line)
		if err != nil {
			return nil, err
		}

		out = append(out, Result{Desc: desc, Avg: avg})
	}

	if err := lr.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Filter keeps the results whose description carries key with val.
func Filter(results []Result, key string, val int) []Result {
	var out []Result
	for _, r := range results {
		if r.Has(key, val) {
			out = append(out, r)
		}
	}
	return out
}

// Project keeps only the named metrics of every entry. Metrics absent from
// an entry are left out rather than zero-filled.
func Project(metrics map[string]Metrics, keys []string) map[string]Metrics {
	keep := mapset.NewSet(keys...)
	out := make(map[string]Metrics, len(metrics))
	for desc, m := range metrics {
		projected := make(Metrics)
		for k, v := range m {
			if keep.Contains(k) {
				projected[k] = v
			}
		}
		out[desc] = projected
	}
	return out
}

func parseDescPair(line string, lineNum int) (DescPair, error) {
	parts := strings.SplitN(strings.ReplaceAll(line, " ", ""), ":", 2)
	if len(parts) != 2 {
		return DescPair{}, fmt.Errorf("line %d: malformed description %q", lineNum, line)
	}
	val, err := strconv.Atoi(parts[1])
	if err != nil {
		return DescPair{}, fmt.Errorf("line %d: bad description value %q: %w", lineNum, parts[1], err)
	}
	return DescPair{Key: parts[0], Val: val}, nil
}

// parseVector averages a measurement vector line with integer division.
func parseVector(line string, lineNum int) (int, error) {
	vals := strings.TrimSpace(line)
	if strings.HasPrefix(vals, "Vector(") {
		vals = strings.TrimPrefix(vals, "Vector(")
		vals = strings.TrimSuffix(vals, ")")
	}
	vals = strings.Trim(vals, "[]")

	parts := strings.Split(strings.ReplaceAll(vals, " ", ""), ",")
	if len(parts) == 0 || parts[0] == "" {
		return 0, fmt.Errorf("line %d: empty vector", lineNum)
	}

	sum := 0
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("line %d: bad vector element %q: %w", lineNum, p, err)
		}
		sum += v
	}
	return sum / len(parts), nil
}
