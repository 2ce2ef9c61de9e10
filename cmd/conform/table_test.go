package main

import (
	"strings"
	"testing"
)

func TestRenderTableAlignsNumericColumns(t *testing.T) {
	out := renderTable(
		[]string{"Name", "Count"},
		[][]string{{"alpha", "10"}, {"beta", "7"}},
		1,
	)
	if !strings.Contains(out, "Name") || !strings.Contains(out, "alpha") {
		t.Fatalf("output = %q", out)
	}
	// Count column is as wide as its header, so right-aligned values carry
	// leading padding.
	if !strings.Contains(out, "   10 ") {
		t.Fatalf("count column not right-aligned: %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"A", "B", "C"},
		[][]string{{"only"}},
	)
	if !strings.Contains(out, "only") {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	if out := renderTable(nil, nil); out != "" {
		t.Fatalf("expected empty string, got %q", out)
	}
}
