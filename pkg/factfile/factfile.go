// Package factfile subsamples newline-delimited fact files so large
// benchmark inputs can be cut down to a requested size.
package factfile

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Sample reads the fact file at path, shuffles its lines, keeps at most n of
// them and writes the result next to the input as "<base>-<n>.<ext>". The
// output path is returned. A nil rng falls back to a time-seeded source;
// pass a seeded one for reproducible samples.
func Sample(path string, n int, rng *rand.Rand) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("sample %s: negative count %d", path, n)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("sample: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("sample %s: %w", path, err)
	}

	rng.Shuffle(len(lines), func(i, j int) {
		lines[i], lines[j] = lines[j], lines[i]
	})
	if n < len(lines) {
		lines = lines[:n]
	}

	outPath := outputPath(path, n)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("sample: %w", err)
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return "", fmt.Errorf("sample %s: %w", outPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("sample %s: %w", outPath, err)
	}
	return outPath, nil
}

// outputPath inserts "-<n>" before the extension: facts.txt -> facts-100.txt.
func outputPath(path string, n int) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "-" + strconv.Itoa(n) + ext
}
