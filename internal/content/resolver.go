package content

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmtext "github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/fennwick/tome/internal/doc"
)

// Resolved is the immutable outcome of resolving a (key, locale) pair.
// Locale records the locale that was requested, which may differ from
// the locale that actually supplied the raw text.
type Resolved struct {
	Key    string
	Locale Locale
	Title  string
	Tree   *doc.Node
}

// NotFoundError reports an exhausted fallback chain. Transport-level
// fetch failures are logged and folded into this error, since the
// presentation for both is the same placeholder and there is no
// automatic retry.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no content for %s/%s in any locale", e.Collection, e.Key)
}

type cacheKey struct {
	collection string
	key        string
	locale     Locale
}

// Resolver resolves content keys against a store with locale fallback
// and a write-once cache. It owns its cache and is safe for use from
// concurrent loader commands; duplicate resolutions of the same key
// compute equal results, so the first cached write wins and later ones
// are discarded.
type Resolver struct {
	fetcher Fetcher
	md      goldmark.Markdown
	log     *zap.Logger

	mu    sync.Mutex
	cache map[cacheKey]*Resolved
}

// NewResolver builds a resolver over a content store.
func NewResolver(fetcher Fetcher, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		fetcher: fetcher,
		md:      goldmark.New(),
		log:     log,
		cache:   make(map[cacheKey]*Resolved),
	}
}

// Resolve returns the content for (collection, key) at the requested
// locale, walking the fallback chain on a miss. The result is cached
// under the requested locale, so repeated requests never re-probe the
// chain. Entries are never evicted or mutated.
func (r *Resolver) Resolve(collection, key string, loc Locale) (*Resolved, error) {
	ck := cacheKey{collection: collection, key: key, locale: loc}

	r.mu.Lock()
	if res, ok := r.cache[ck]; ok {
		r.mu.Unlock()
		return res, nil
	}
	r.mu.Unlock()

	raw, err := r.fetchChain(collection, key, loc)
	if err != nil {
		return nil, err
	}

	res := r.build(key, loc, raw)

	r.mu.Lock()
	defer r.mu.Unlock()
	if prior, ok := r.cache[ck]; ok {
		// A concurrent duplicate got here first; results are equal.
		return prior, nil
	}
	r.cache[ck] = res
	return res, nil
}

// fetchChain attempts the store path for loc, then recurses through
// fallback parents. A miss at the primary locale is terminal.
func (r *Resolver) fetchChain(collection, key string, loc Locale) ([]byte, error) {
	for {
		raw, err := r.fetcher.Fetch(storePath(collection, key, loc))
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, ErrNotFound) {
			r.log.Warn("content fetch failed",
				zap.String("collection", collection),
				zap.String("key", key),
				zap.String("locale", string(loc)),
				zap.Error(err))
			return nil, &NotFoundError{Collection: collection, Key: key}
		}
		parent, ok := loc.Fallback()
		if !ok {
			return nil, &NotFoundError{Collection: collection, Key: key}
		}
		loc = parent
	}
}

// build turns raw markdown into a Resolved: marker pre-scan, generic
// parse, external-link retargeting, title extraction.
func (r *Resolver) build(key string, loc Locale, raw []byte) *Resolved {
	src := rewriteBareMarkers(raw)

	root := r.md.Parser().Parse(gmtext.NewReader(src))
	tree := doc.Convert(root, src)
	retargetExternalLinks(tree)

	title := extractTitle(raw)
	if title == "" {
		title = Humanize(key)
	}

	return &Resolved{Key: key, Locale: loc, Title: title, Tree: tree}
}

// bareMarkerRe matches annotation:KEY references that are not already
// the target of a bracketed link (those are preceded by an opening
// parenthesis).
var bareMarkerRe = regexp.MustCompile(`(^|[^(])annotation:([a-z0-9-]+)`)

// rewriteBareMarkers normalizes bare annotation:KEY references into the
// bracketed inline notation before generic parsing, so both spellings
// reach the parser as links and convert to marker nodes.
func rewriteBareMarkers(raw []byte) []byte {
	return bareMarkerRe.ReplaceAll(raw, []byte("$1[$2](annotation:$2)"))
}

// retargetExternalLinks marks absolute foreign-origin links so the
// presentation layer gives them open-in-a-new-context semantics.
func retargetExternalLinks(tree *doc.Node) {
	tree.Walk(func(n *doc.Node) bool {
		if n.Kind == doc.KindLink &&
			(strings.HasPrefix(n.Dest, "http://") || strings.HasPrefix(n.Dest, "https://")) {
			n.External = true
		}
		return true
	})
}

// extractTitle returns the text of the first top-level heading line of
// the raw text, or "" when none exists.
func extractTitle(raw []byte) string {
	for _, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if after, ok := strings.CutPrefix(trimmed, "# "); ok {
			return strings.TrimSpace(after)
		}
	}
	return ""
}

// Humanize turns a content key into a display title: "rule-30" → "Rule 30".
func Humanize(key string) string {
	words := strings.Split(key, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
