package index

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/TheCodeHarbor/valvoline-pds-api/constants"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/common"
)

var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeKey canonicalizes a free-form product name or filename into a
// comparable key: lowercase, diacritics stripped, and everything but ASCII
// letters and digits removed. "SynPower ENV C2 5W-30" and
// "EUR_Val_SynENVC2_5W30_MO_EN" deliberately land near each other under
// this mapping. Idempotent.
func NormalizeKey(raw string) string {
	lowered := strings.ToLower(raw)
	stripped, _, err := transform.String(deaccent, lowered)
	if err != nil {
		stripped = lowered
	}
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Resolve maps a query string to a document identifier. Every stored key
// plus the filename stem of every stored identifier is normalized into a
// working list; an exact normalized match wins, otherwise the first key
// (in store order) containing the normalized query as a substring wins.
// First match, not best match: short queries can resolve unpredictably,
// and that is the documented contract. Fails with ErrEmptyIndex when the
// store has no entries and ErrNotFound when nothing matches.
func Resolve(ctx context.Context, query string, store Store) (string, error) {
	entries, err := store.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("index snapshot: %w", err)
	}
	if len(entries) == 0 {
		return "", common.ErrEmptyIndex
	}

	type candidate struct {
		key        string
		documentID string
	}
	candidates := make([]candidate, 0, len(entries)*2)
	seen := make(map[string]struct{}, len(entries)*2)
	add := func(key, documentID string) {
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		candidates = append(candidates, candidate{key, documentID})
	}
	for _, e := range entries {
		add(NormalizeKey(e.Key), e.DocumentID)
	}
	// Filename stems are always matchable, even when never indexed.
	for _, e := range entries {
		add(NormalizeKey(constants.FileStem(e.DocumentID)), e.DocumentID)
	}

	q := NormalizeKey(query)
	if q == "" {
		return "", fmt.Errorf("query %q normalizes to nothing: %w", query, common.ErrNotFound)
	}
	for _, c := range candidates {
		if c.key == q {
			return c.documentID, nil
		}
	}
	for _, c := range candidates {
		if strings.Contains(c.key, q) {
			return c.documentID, nil
		}
	}
	return "", fmt.Errorf("no index entry matches %q: %w", query, common.ErrNotFound)
}
