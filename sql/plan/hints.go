package plan

import "github.com/vectorsql/engine/internal/similartext"

// knownHints is the closed set of Scan hints recognizes
// (connector capability hints, not MySQL index hints).
var knownHints = []string{
	"NO_PARTITION_PRUNE",
	"NO_PUSHDOWN",
	"NO_CACHE",
}

// ValidateHints reports any hint names that aren't in knownHints, paired
// with a fuzzy suggestion (empty if nothing is close enough) — a "did you
// mean" UX for typo'd hints.
func ValidateHints(hints []string) (unknown map[string]string) {
	for _, h := range hints {
		known := false
		for _, k := range knownHints {
			if k == h {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if unknown == nil {
			unknown = make(map[string]string)
		}
		unknown[h] = similartext.Find(knownHints, h)
	}
	return unknown
}
