package doc

import "github.com/rivo/uniseg"

// Tokenize flattens the children of root into an ordered token stream.
// The order is a deterministic pre-order traversal of the tree, driven
// by an explicit stack rather than recursion so that emission order is
// independent of call depth and safe on deeply nested content.
//
// Text nodes decompose into one glyph token per grapheme cluster.
// Container elements become a balanced Open/Close pair around their
// children. Leaves with externally loaded or preformatted content, and
// any node kind the tokenizer does not recognize, emit as a single
// atomic token.
func Tokenize(root *Node) []Token {
	type frame struct {
		node    *Node
		closing bool
	}

	var tokens []Token
	var stack []frame

	for i := len(root.Children) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: root.Children[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.closing {
			tokens = append(tokens, Token{Kind: TokenClose})
			continue
		}

		n := f.node
		switch {
		case n.Kind == KindText:
			g := uniseg.NewGraphemes(n.Text)
			for g.Next() {
				tokens = append(tokens, Token{Kind: TokenGlyph, Glyph: g.Str()})
			}

		case isContainer(n.Kind):
			tokens = append(tokens, Token{Kind: TokenOpen, Shape: n.Shape()})
			stack = append(stack, frame{node: n, closing: true})
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: n.Children[i]})
			}

		default:
			tokens = append(tokens, Token{Kind: TokenAtomic, Node: n.Clone()})
		}
	}

	return tokens
}

// isContainer reports whether a kind opens a frame in the token stream.
// Everything else, including kinds added by a future parser that this
// switch has never heard of, is treated as an indivisible leaf.
func isContainer(k NodeKind) bool {
	switch k {
	case KindDocument, KindHeading, KindParagraph, KindBlockQuote,
		KindList, KindListItem, KindEmphasis, KindStrong,
		KindCodeSpan, KindLink, KindMarker:
		return true
	}
	return false
}
