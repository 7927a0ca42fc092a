// Package testutil provides shared test infrastructure for the rack simulator.
// It has no dependency on sim/ so that package-internal tests can use it.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// WriteCSV writes a CSV file with a date,category header followed by rows of
// "date,category" pairs and returns its path.
func WriteCSV(t *testing.T, dir, name string, rows ...string) string {
	t.Helper()
	content := "date,category\n" + strings.Join(rows, "\n") + "\n"
	return WriteFile(t, dir, name, content)
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// Repeat returns n copies of row.
func Repeat(row string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = row
	}
	return out
}
