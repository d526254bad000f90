package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fennwick/tome/internal/doc"
)

// renderCtx carries per-frame rendering state down the tree walk.
type renderCtx struct {
	width int
	// selected is the marker under the cursor, matched by node
	// identity so duplicate keys highlight independently.
	selected *doc.Node
	// openKey is the key of the currently open annotation.
	openKey string
	// Inline annotation presentation, used when the tree contains a
	// spliced KindAnnotation node.
	annoTitle    string
	annoExpanded bool
	annoBody     string
}

// renderDocument turns a mounted tree into styled terminal text. The
// tree may be mid-reveal; every prefix the builder produces is
// well-formed, so no special casing is needed for partial content.
func renderDocument(root *doc.Node, ctx renderCtx) string {
	var blocks []string
	for _, child := range root.Children {
		if b := renderBlock(child, ctx); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n *doc.Node, ctx renderCtx) string {
	switch n.Kind {
	case doc.KindHeading:
		text := renderInlines(n.Children, ctx)
		if n.Level <= 1 {
			return headingStyle.Width(ctx.width).Render(text)
		}
		return subheadingStyle.Width(ctx.width).Render(text)

	case doc.KindParagraph:
		return paragraphStyle.Width(ctx.width).Render(renderInlines(n.Children, ctx))

	case doc.KindBlockQuote:
		inner := ctx
		inner.width = ctx.width - 2
		if inner.width < 10 {
			inner.width = 10
		}
		var parts []string
		for _, child := range n.Children {
			body := renderBlock(child, inner)
			for _, line := range strings.Split(body, "\n") {
				parts = append(parts, quoteBarStyle.Render("│ ")+blockquoteStyle.Render(line))
			}
		}
		return strings.Join(parts, "\n")

	case doc.KindList:
		return renderList(n, ctx)

	case doc.KindCodeBlock:
		lines := strings.Split(strings.TrimRight(n.Text, "\n"), "\n")
		for i, line := range lines {
			lines[i] = codeBlockStyle.Render(line)
		}
		return strings.Join(lines, "\n")

	case doc.KindRule:
		w := clamp(ctx.width, 1, 40)
		return ruleStyle.Render(strings.Repeat("─", w))

	case doc.KindImage:
		label := n.Text
		if label == "" {
			label = n.Dest
		}
		return imageStyle.Render(fmt.Sprintf("[image: %s]", label))

	case doc.KindAnnotation:
		return renderInlineAnnotation(n, ctx)

	case doc.KindOpaque:
		return paragraphStyle.Width(ctx.width).Render(opaqueText(n))

	default:
		// A stray inline at block level still renders as prose.
		return paragraphStyle.Width(ctx.width).Render(renderInline(n, ctx))
	}
}

func renderList(n *doc.Node, ctx renderCtx) string {
	inner := ctx
	inner.width = ctx.width - 3
	if inner.width < 10 {
		inner.width = 10
	}

	var items []string
	for i, item := range n.Children {
		bullet := "• "
		if n.Ordered {
			bullet = fmt.Sprintf("%d. ", i+1)
		}

		var bodyParts []string
		for _, child := range item.Children {
			bodyParts = append(bodyParts, renderBlock(child, inner))
		}
		body := strings.Join(bodyParts, "\n")

		lines := strings.Split(body, "\n")
		pad := strings.Repeat(" ", lipgloss.Width(bullet))
		for j, line := range lines {
			if j == 0 {
				lines[j] = listBulletStyle.Render(bullet) + line
			} else {
				lines[j] = pad + line
			}
		}
		items = append(items, strings.Join(lines, "\n"))
	}
	return strings.Join(items, "\n")
}

// renderInlineAnnotation draws a spliced annotation block: a title row
// with key hints, and the annotation body when expanded.
func renderInlineAnnotation(n *doc.Node, ctx renderCtx) string {
	title := ctx.annoTitle
	if title == "" {
		title = n.Key
	}

	head := inlineAnnoTitleStyle.Render("◆ " + title)
	if ctx.annoExpanded {
		head += inlineAnnoHintStyle.Render("   z collapse · esc close")
	} else {
		head += inlineAnnoHintStyle.Render("   z expand · esc close")
	}

	if !ctx.annoExpanded {
		return inlineAnnoStyle.Width(ctx.width).Render(head)
	}
	return inlineAnnoStyle.Width(ctx.width).Render(head + "\n" + ctx.annoBody)
}

// renderInlines renders a run of sibling inline nodes.
func renderInlines(nodes []*doc.Node, ctx renderCtx) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(renderInline(n, ctx))
	}
	return sb.String()
}

func renderInline(n *doc.Node, ctx renderCtx) string {
	switch n.Kind {
	case doc.KindText:
		return n.Text

	case doc.KindBreak:
		return "\n"

	case doc.KindEmphasis:
		return emphasisStyle.Render(plainInlines(n.Children))

	case doc.KindStrong:
		return strongStyle.Render(plainInlines(n.Children))

	case doc.KindCodeSpan:
		return codeSpanStyle.Render(plainInlines(n.Children))

	case doc.KindLink:
		text := plainInlines(n.Children)
		if n.External {
			return linkExternalStyle.Render(text) + linkStyle.Render("↗")
		}
		return linkStyle.Render(text)

	case doc.KindMarker:
		return renderMarker(n, ctx)

	default:
		return n.PlainText()
	}
}

// renderMarker styles an annotation marker by its lifecycle: plain
// prose until activated, link-like once active, highlighted when under
// the cursor or open.
func renderMarker(n *doc.Node, ctx renderCtx) string {
	text := plainInlines(n.Children)
	switch {
	case !n.Active:
		return markerIdleStyle.Render(text)
	case n == ctx.selected:
		return markerSelectedStyle.Render(text)
	case n.Key == ctx.openKey:
		return markerOpenStyle.Render(text)
	default:
		return markerActiveStyle.Render(text)
	}
}

// plainInlines flattens nested inline content to its text. Styling does
// not nest across spans; the outermost span wins.
func plainInlines(nodes []*doc.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(n.PlainText())
	}
	return sb.String()
}

// opaqueText returns an opaque node's captured text, falling back to
// whatever text its subtree holds.
func opaqueText(n *doc.Node) string {
	if n.Text != "" {
		return n.Text
	}
	return n.PlainText()
}
