package textutil

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 4, "hel…"},
		{"hello", 1, "…"},
		{"hello", 0, ""},
		{"日本語テキスト", 4, "日本語…"},
	}
	for _, c := range cases {
		if got := Truncate(c.in, c.max); got != c.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", c.in, c.max, got, c.want)
		}
	}
}

func TestGraphemeCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"日本語", 3},
		{"e\u0301", 1}, // e plus combining acute is one cluster
	}
	for _, c := range cases {
		if got := GraphemeCount(c.in); got != c.want {
			t.Errorf("GraphemeCount(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestDisplayWidth(t *testing.T) {
	if w := DisplayWidth("abc"); w != 3 {
		t.Errorf("DisplayWidth(abc) = %d, want 3", w)
	}
	if w := DisplayWidth("日本"); w != 4 {
		t.Errorf("DisplayWidth(日本) = %d, want 4", w)
	}
}
