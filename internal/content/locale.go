package content

import "fmt"

// Locale selects a human-language variant of the book. The set is
// closed and each non-primary locale has a fixed fallback parent, so a
// missing translation degrades along the chain ja → zh → en instead of
// failing.
type Locale string

const (
	// LocaleEN is the primary locale. Its files sit at the collection
	// root with no locale subpath.
	LocaleEN Locale = "en"
	// LocaleZH falls back to LocaleEN.
	LocaleZH Locale = "zh"
	// LocaleJA falls back to LocaleZH.
	LocaleJA Locale = "ja"
)

// Locales lists every valid locale in fallback-root-first order.
var Locales = []Locale{LocaleEN, LocaleZH, LocaleJA}

// ParseLocale validates a locale string from flags or preferences.
func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleEN, LocaleZH, LocaleJA:
		return Locale(s), nil
	}
	return "", fmt.Errorf("unknown locale %q", s)
}

// Fallback returns the locale consulted next when content is missing.
// ok is false at the primary locale, where a miss is terminal.
func (l Locale) Fallback() (parent Locale, ok bool) {
	switch l {
	case LocaleJA:
		return LocaleZH, true
	case LocaleZH:
		return LocaleEN, true
	default:
		return "", false
	}
}

// Subpath returns the directory segment for this locale within a
// collection. The primary locale has none.
func (l Locale) Subpath() string {
	if l == LocaleEN {
		return ""
	}
	return string(l)
}

// Next cycles through the locale set, used by the locale toggle key.
func (l Locale) Next() Locale {
	for i, cur := range Locales {
		if cur == l {
			return Locales[(i+1)%len(Locales)]
		}
	}
	return LocaleEN
}

// Label returns the locale's display name for the header bar.
func (l Locale) Label() string {
	switch l {
	case LocaleZH:
		return "中文"
	case LocaleJA:
		return "日本語"
	default:
		return "English"
	}
}
