package factfile

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFacts(t *testing.T, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facts.txt")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestSampleTruncates(t *testing.T) {
	input := []string{"P(1, 2).", "P(2, 3).", "P(3, 4).", "P(4, 5).", "P(5, 6)."}
	path := writeFacts(t, input)

	outPath, err := Sample(path, 3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "facts-3.txt"), outPath)

	got := readLines(t, outPath)
	assert.Len(t, got, 3)

	// Every sampled line must come from the input, without duplication.
	inputSet := mapset.NewSet(input...)
	gotSet := mapset.NewSet(got...)
	assert.Equal(t, 3, gotSet.Cardinality())
	assert.True(t, gotSet.IsSubset(inputSet))
}

func TestSampleCountExceedsLines(t *testing.T) {
	input := []string{"P(1, 2).", "P(2, 3)."}
	path := writeFacts(t, input)

	outPath, err := Sample(path, 10, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "facts-10.txt"), outPath)
	assert.ElementsMatch(t, input, readLines(t, outPath))
}

func TestSampleDeterministicUnderSeed(t *testing.T) {
	input := []string{"a.", "b.", "c.", "d.", "e.", "f."}

	first, err := Sample(writeFacts(t, input), 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	second, err := Sample(writeFacts(t, input), 4, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, readLines(t, first), readLines(t, second))
}

func TestSampleMissingFile(t *testing.T) {
	_, err := Sample(filepath.Join(t.TempDir(), "nope.txt"), 3, nil)
	assert.Error(t, err)
}

func TestSampleNegativeCount(t *testing.T) {
	_, err := Sample(writeFacts(t, []string{"a."}), -1, nil)
	assert.Error(t, err)
}
