// Package benchlog parses the fixed-format timing logs produced by the
// engine benchmark harness and aggregates them into numeric metric maps.
package benchlog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultRepeats is the number of timing repeats recorded per block.
const DefaultRepeats = 5

// Metrics maps a metric name to its value, averaged across repeats.
type Metrics map[string]float64

// ReadTimings parses timing blocks with DefaultRepeats repeats per block.
// See ReadTimingsRepeats for the block format.
func ReadTimings(r io.Reader, withJoin bool) (map[string]Metrics, error) {
	return ReadTimingsRepeats(r, withJoin, DefaultRepeats)
}

// ReadTimingsRepeats parses timing blocks keyed by description. A block is:
//
//	Description : <label>
//	<repeats> groups of timestamp lines ("label : nanos"), each group being
//	start, [join start, join end,] interpret start, interpret end, marshall
//	end,
//	a separator line,
//	"  <n> ms ..." with the harness's own average,
//	a trailing separator line.
//
// Per repeat the derived metrics are compile_time (interpret start - start),
// inter_time, marshall_time, total (marshall end - interpret start) and,
// with withJoin, join_time. Repeats are averaged; avg_ms carries the
// harness average through unchanged.
func ReadTimingsRepeats(r io.Reader, withJoin bool, repeats int) (map[string]Metrics, error) {
	if repeats <= 0 {
		return nil, fmt.Errorf("repeats must be positive, got %d", repeats)
	}

	lr := newLineReader(r)
	out := make(map[string]Metrics)

	for {
		line, ok := lr.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		desc, err := fieldValue(line, lr.line)
		if err != nil {
			return nil, err
		}

		sums := make(Metrics)
		for i := 0; i < repeats; i++ {
			m, err := readRepeat(lr, withJoin)
			if err != nil {
				return nil, fmt.Errorf("block %s, repeat %d: %w", desc, i+1, err)
			}
			for k, v := range m {
				sums[k] += v
			}
		}

		if _, ok := lr.next(); !ok {
			return nil, fmt.Errorf("line %d: unexpected end of input before average", lr.line)
		}
		avgLine, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("line %d: unexpected end of input before average", lr.line)
		}
		fields := strings.Fields(avgLine)
		if len(fields) == 0 {
			return nil, fmt.Errorf("line %d: empty average line", lr.line)
		}
		avgMS, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad average %q: %w", lr.line, fields[0], err)
		}
		lr.next() // trailing separator; EOF here is fine

		metrics := make(Metrics, len(sums)+1)
		for k, v := range sums {
			metrics[k] = v / float64(repeats)
		}
		metrics["avg_ms"] = float64(avgMS)
		out[desc] = metrics
	}

	if err := lr.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// readRepeat consumes one group of timestamp lines and derives its metrics.
func readRepeat(lr *lineReader, withJoin bool) (Metrics, error) {
	start, err := readTimestamp(lr)
	if err != nil {
		return nil, err
	}
	m := Metrics{"start": float64(start)}

	if withJoin {
		joinStart, err := readTimestamp(lr)
		if err != nil {
			return nil, err
		}
		joinEnd, err := readTimestamp(lr)
		if err != nil {
			return nil, err
		}
		m["join_time"] = float64(joinEnd - joinStart)
	}

	interStart, err := readTimestamp(lr)
	if err != nil {
		return nil, err
	}
	interEnd, err := readTimestamp(lr)
	if err != nil {
		return nil, err
	}
	marshallEnd, err := readTimestamp(lr)
	if err != nil {
		return nil, err
	}

	m["compile_time"] = float64(interStart - start)
	m["inter_time"] = float64(interEnd - interStart)
	m["marshall_time"] = float64(marshallEnd - interEnd)
	m["total"] = float64(marshallEnd - interStart)
	return m, nil
}

// readTimestamp parses one "label : value" line into its integer value.
func readTimestamp(lr *lineReader) (int64, error) {
	line, ok := lr.next()
	if !ok {
		return 0, fmt.Errorf("line %d: unexpected end of input", lr.line)
	}
	value, err := fieldValue(line, lr.line)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: bad timestamp %q: %w", lr.line, value, err)
	}
	return n, nil
}

// fieldValue extracts the part after the colon of a "key : value" line,
// with all spaces removed.
func fieldValue(line string, lineNum int) (string, error) {
	parts := strings.SplitN(strings.ReplaceAll(line, " ", ""), ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("line %d: malformed field %q", lineNum, line)
	}
	return parts[1], nil
}

// lineReader tracks line numbers over a bufio.Scanner.
type lineReader struct {
	s    *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{s: s}
}

func (lr *lineReader) next() (string, bool) {
	if !lr.s.Scan() {
		return "", false
	}
	lr.line++
	return lr.s.Text(), true
}

func (lr *lineReader) err() error {
	return lr.s.Err()
}
