package tui

import (
	"github.com/fennwick/tome/internal/doc"
	"github.com/fennwick/tome/pkg/textutil"
)

// ────────────────────────────────────────────────────────────
// Marker scanning
// ────────────────────────────────────────────────────────────

// markerRef points at one activated marker in a mounted tree.
type markerRef struct {
	node *doc.Node
	key  string
}

// activeMarkers lists the activated markers under root in document
// order. The list is recomputed on demand; the tree is the single
// source of truth while a reveal is still appending to it.
func activeMarkers(root *doc.Node) []markerRef {
	var refs []markerRef
	root.Walk(func(n *doc.Node) bool {
		if n.Kind == doc.KindMarker && n.Active {
			refs = append(refs, markerRef{node: n, key: n.Key})
		}
		return true
	})
	return refs
}

// blockContaining returns the index of the top-level child of root
// whose subtree holds target, or -1.
func blockContaining(root, target *doc.Node) int {
	for i, block := range root.Children {
		found := false
		block.Walk(func(n *doc.Node) bool {
			if n == target {
				found = true
				return false
			}
			return true
		})
		if found {
			return i
		}
	}
	return -1
}

// ────────────────────────────────────────────────────────────
// String helpers
// ────────────────────────────────────────────────────────────

// truncate cuts a string to maxLen grapheme clusters with an ellipsis.
func truncate(s string, maxLen int) string {
	return textutil.Truncate(s, maxLen)
}

// clamp restricts val to [lo, hi].
func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
