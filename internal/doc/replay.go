package doc

// Builder replays a token stream onto a mount node, one token at a
// time. The mount itself is the initial open frame, so the partial tree
// under it is well-formed after every Apply: Open and Close are whole
// steps and are never split.
type Builder struct {
	mount *Node
	stack []*Node
}

// NewBuilder returns a builder whose open stack holds only the mount.
func NewBuilder(mount *Node) *Builder {
	return &Builder{mount: mount, stack: []*Node{mount}}
}

// Reset discards any partial structure and re-arms the builder on an
// empty mount.
func (b *Builder) Reset() {
	b.mount.Children = nil
	b.stack = b.stack[:0]
	b.stack = append(b.stack, b.mount)
}

// Apply mounts a single token. For Close it returns the element that
// just became structurally complete; for Atomic it returns the mounted
// subtree. Open and Glyph return nil.
func (b *Builder) Apply(t Token) *Node {
	top := b.stack[len(b.stack)-1]

	switch t.Kind {
	case TokenOpen:
		child := t.Shape.Shape()
		top.Children = append(top.Children, child)
		b.stack = append(b.stack, child)
		return nil

	case TokenClose:
		if len(b.stack) == 1 {
			// Unbalanced stream; the mount frame never pops.
			return nil
		}
		closed := top
		b.stack = b.stack[:len(b.stack)-1]
		return closed

	case TokenGlyph:
		if n := len(top.Children); n > 0 && top.Children[n-1].Kind == KindText {
			top.Children[n-1].Text += t.Glyph
			return nil
		}
		text := NewNode(KindText)
		text.Text = t.Glyph
		top.Children = append(top.Children, text)
		return nil

	case TokenAtomic:
		mounted := t.Node.Clone()
		top.Children = append(top.Children, mounted)
		return mounted
	}
	return nil
}

// Depth returns the number of open frames above the mount. Zero means
// no element is currently open.
func (b *Builder) Depth() int {
	return len(b.stack) - 1
}
