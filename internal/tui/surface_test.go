package tui

import "testing"

func TestSelectSurface(t *testing.T) {
	const min = 110

	cases := []struct {
		width int
		want  Surface
	}{
		{200, SurfacePanel},
		{110, SurfacePanel},
		{109, SurfaceInline},
		{60, SurfaceInline},
	}
	for _, c := range cases {
		if got := selectSurface(c.width, min); got != c.want {
			t.Errorf("selectSurface(%d, %d) = %v, want %v", c.width, min, got, c.want)
		}
	}
}

func TestPanelWidthSplit(t *testing.T) {
	body, panel := panelWidth(120)
	if body+panel != 120 {
		t.Errorf("split loses columns: %d + %d", body, panel)
	}
	if panel <= 0 || panel >= body {
		t.Errorf("panel share out of proportion: body %d, panel %d", body, panel)
	}

	// Very wide terminals cap the panel.
	_, panel = panelWidth(400)
	if panel > 48 {
		t.Errorf("panel width = %d, want capped at 48", panel)
	}
}
