// Package doc holds the rich-text document model for tome.
//
// A chapter or annotation body is parsed by goldmark and converted into
// this package's Node tree. The tree is the unit everything downstream
// works with: the tokenizer flattens it into a token stream, a reveal
// session replays that stream onto a mount node, and the TUI renders
// whatever is mounted at any instant.
package doc

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// NodeKind identifies the element a Node represents.
type NodeKind int

const (
	KindDocument NodeKind = iota
	KindHeading
	KindParagraph
	KindBlockQuote
	KindList
	KindListItem
	KindEmphasis
	KindStrong
	KindCodeSpan
	KindLink
	KindMarker
	KindText
	KindBreak
	KindCodeBlock
	KindImage
	KindRule
	KindAnnotation
	KindOpaque
)

// MarkerScheme is the URL scheme that turns a link into an annotation
// marker during conversion.
const MarkerScheme = "annotation:"

// Node is one element of a rich-text tree.
//
// Nodes are mutable while a tree is being mounted by a reveal session;
// after that only the marker Active flag changes.
type Node struct {
	Kind NodeKind

	Text    string // KindText content, KindCodeBlock literal, KindImage alt
	Level   int    // KindHeading level (1-6)
	Ordered bool   // KindList

	Dest     string // KindLink target, KindImage source
	External bool   // KindLink: opens outside the reader

	// Key is the content key a marker refers to. The marker references
	// its target, it does not own it.
	Key string

	// Active reports whether a marker is ready for interaction.
	// Set by the reveal monitor once the marker is fully mounted.
	Active bool

	Children []*Node
}

// NewNode returns a childless node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// AppendChild attaches child as the last child of n.
// Adjacent text children are merged so the tree has a canonical form.
func (n *Node) AppendChild(child *Node) {
	if child.Kind == KindText && len(n.Children) > 0 {
		if last := n.Children[len(n.Children)-1]; last.Kind == KindText {
			last.Text += child.Text
			return
		}
	}
	n.Children = append(n.Children, child)
}

// Shape returns a childless copy of n carrying every attribute except
// reveal state. Open tokens carry shapes so that replaying a stream
// reconstructs elements without sharing nodes with the source tree.
func (n *Node) Shape() *Node {
	return &Node{
		Kind:     n.Kind,
		Text:     n.Text,
		Level:    n.Level,
		Ordered:  n.Ordered,
		Dest:     n.Dest,
		External: n.External,
		Key:      n.Key,
	}
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	c := n.Shape()
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// PlainText concatenates all text content under n using an explicit
// worklist, in document order.
func (n *Node) PlainText() string {
	var b strings.Builder
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Kind == KindText {
			b.WriteString(cur.Text)
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
	return b.String()
}

// Walk visits every node of the subtree in pre-order using an explicit
// worklist. Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(cur) {
			return
		}
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Equal reports structural equivalence: same nesting, same kinds and
// attributes, same text. Marker Active state is ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Text != b.Text || a.Level != b.Level ||
		a.Ordered != b.Ordered || a.Dest != b.Dest ||
		a.External != b.External || a.Key != b.Key {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// ────────────────────────────────────────────────────────────
// Conversion from the external parser
// ────────────────────────────────────────────────────────────

// Convert maps a goldmark AST onto this package's tree. Node kinds the
// converter does not recognize degrade to opaque leaves carrying their
// plain text, so a surprising parse can never abort a reveal.
func Convert(root ast.Node, source []byte) *Node {
	out := NewNode(KindDocument)
	convertChildren(out, root, source)
	return out
}

func convertChildren(parent *Node, src ast.Node, source []byte) {
	for c := src.FirstChild(); c != nil; c = c.NextSibling() {
		convertNode(parent, c, source)
	}
}

func convertNode(parent *Node, src ast.Node, source []byte) {
	switch v := src.(type) {
	case *ast.Heading:
		n := NewNode(KindHeading)
		n.Level = v.Level
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.Paragraph:
		n := NewNode(KindParagraph)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.TextBlock:
		// Loose list item bodies parse as text blocks.
		n := NewNode(KindParagraph)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.Blockquote:
		n := NewNode(KindBlockQuote)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.List:
		n := NewNode(KindList)
		n.Ordered = v.IsOrdered()
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.ListItem:
		n := NewNode(KindListItem)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.Emphasis:
		kind := KindEmphasis
		if v.Level >= 2 {
			kind = KindStrong
		}
		n := NewNode(kind)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.CodeSpan:
		n := NewNode(KindCodeSpan)
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.Link:
		dest := string(v.Destination)
		if key, ok := strings.CutPrefix(dest, MarkerScheme); ok {
			n := NewNode(KindMarker)
			n.Key = key
			convertChildren(n, v, source)
			parent.AppendChild(n)
			return
		}
		n := NewNode(KindLink)
		n.Dest = dest
		convertChildren(n, v, source)
		parent.AppendChild(n)

	case *ast.AutoLink:
		n := NewNode(KindLink)
		n.Dest = string(v.URL(source))
		text := NewNode(KindText)
		text.Text = n.Dest
		n.AppendChild(text)
		parent.AppendChild(n)

	case *ast.Image:
		n := NewNode(KindImage)
		n.Dest = string(v.Destination)
		n.Text = nodeText(v, source)
		parent.AppendChild(n)

	case *ast.Text:
		t := NewNode(KindText)
		t.Text = string(v.Segment.Value(source))
		parent.AppendChild(t)
		if v.HardLineBreak() {
			parent.AppendChild(NewNode(KindBreak))
		} else if v.SoftLineBreak() {
			sp := NewNode(KindText)
			sp.Text = " "
			parent.AppendChild(sp)
		}

	case *ast.String:
		t := NewNode(KindText)
		t.Text = string(v.Value)
		parent.AppendChild(t)

	case *ast.FencedCodeBlock:
		parent.AppendChild(codeBlock(v, source))

	case *ast.CodeBlock:
		parent.AppendChild(codeBlock(v, source))

	case *ast.ThematicBreak:
		parent.AppendChild(NewNode(KindRule))

	default:
		n := NewNode(KindOpaque)
		n.Text = nodeText(v, source)
		parent.AppendChild(n)
	}
}

func codeBlock(v ast.Node, source []byte) *Node {
	n := NewNode(KindCodeBlock)
	var b strings.Builder
	lines := v.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	n.Text = strings.TrimRight(b.String(), "\n")
	return n
}

// nodeText extracts the raw text spanned by an AST node, used for image
// alt text and for opaque fallbacks.
func nodeText(src ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(src, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
