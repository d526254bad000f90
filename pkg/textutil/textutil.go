// Package textutil provides text measurement utilities for tome.
//
// The reader displays CJK text and combining sequences, so anything
// that cuts or measures strings must work on grapheme clusters, not
// bytes or runes. All helpers here are uniseg-based.
package textutil

import "github.com/rivo/uniseg"

// Graphemes splits s into grapheme clusters.
func Graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Truncate cuts s to at most max grapheme clusters, appending an
// ellipsis when anything was removed. Cuts never split a cluster.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if uniseg.GraphemeClusterCount(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}

	var out string
	kept := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() && kept < max-1 {
		out += g.Str()
		kept++
	}
	return out + "…"
}

// DisplayWidth returns the monospace cell width of s, counting wide
// CJK clusters as two cells.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}
