package tui

// Surface is where an annotation renders.
type Surface int

const (
	// SurfacePanel shows the annotation beside the chapter text.
	SurfacePanel Surface = iota
	// SurfaceInline splices the annotation into the chapter flow,
	// directly under the block holding its marker.
	SurfaceInline
)

func (s Surface) String() string {
	if s == SurfacePanel {
		return "panel"
	}
	return "inline"
}

// selectSurface picks the annotation surface for a terminal width. The
// choice is made when the annotation opens; an open annotation migrates
// on resize rather than restarting.
func selectSurface(width, panelMinWidth int) Surface {
	if width >= panelMinWidth {
		return SurfacePanel
	}
	return SurfaceInline
}

// panelWidth returns the column split for the side panel layout.
func panelWidth(total int) (body, panel int) {
	panel = total * 35 / 100
	if panel > 48 {
		panel = 48
	}
	return total - panel, panel
}
