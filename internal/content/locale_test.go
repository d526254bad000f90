package content

import "testing"

func TestLocaleFallbackChain(t *testing.T) {
	if p, ok := LocaleJA.Fallback(); !ok || p != LocaleZH {
		t.Errorf("ja fallback = %q, %v", p, ok)
	}
	if p, ok := LocaleZH.Fallback(); !ok || p != LocaleEN {
		t.Errorf("zh fallback = %q, %v", p, ok)
	}
	if _, ok := LocaleEN.Fallback(); ok {
		t.Error("en must be the chain root")
	}
}

func TestParseLocale(t *testing.T) {
	for _, loc := range Locales {
		got, err := ParseLocale(string(loc))
		if err != nil || got != loc {
			t.Errorf("ParseLocale(%q) = %q, %v", loc, got, err)
		}
	}
	if _, err := ParseLocale("fr"); err == nil {
		t.Error("ParseLocale accepted an unknown locale")
	}
}

func TestLocaleNextCycles(t *testing.T) {
	seen := map[Locale]bool{}
	loc := LocaleEN
	for range Locales {
		seen[loc] = true
		loc = loc.Next()
	}
	if loc != LocaleEN {
		t.Errorf("cycle did not return to en, ended at %q", loc)
	}
	if len(seen) != len(Locales) {
		t.Errorf("cycle visited %d locales, want %d", len(seen), len(Locales))
	}
}
