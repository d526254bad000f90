package doc

// TokenKind discriminates the token variant. Every consumer switches
// over all four kinds; there is no loosely-shaped token.
type TokenKind int

const (
	// TokenOpen starts a container element. Shape carries the element
	// attributes without children.
	TokenOpen TokenKind = iota
	// TokenClose ends the most recently opened container.
	TokenClose
	// TokenGlyph is one grapheme cluster of text content.
	TokenGlyph
	// TokenAtomic is a complete subtree that mounts in a single step,
	// so stateful or preformatted content never appears half-rendered.
	TokenAtomic
)

// Token is one atomic unit of a flattened rich-text tree.
type Token struct {
	Kind  TokenKind
	Shape *Node  // TokenOpen
	Glyph string // TokenGlyph
	Node  *Node  // TokenAtomic
}

func (k TokenKind) String() string {
	switch k {
	case TokenOpen:
		return "open"
	case TokenClose:
		return "close"
	case TokenGlyph:
		return "glyph"
	case TokenAtomic:
		return "atomic"
	default:
		return "unknown"
	}
}
