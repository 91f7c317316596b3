package municipio

// DefaultMaxDistance is the fuzzy-match budget. Catalog names run from
// ~5 to ~35 characters; distance 2 tolerates a typo or two without
// conflating genuinely distinct short names.
const DefaultMaxDistance = 2

// MatchKind tags the outcome of a resolution.
type MatchKind int

const (
	// MatchNone means no catalog entry was within the distance budget.
	MatchNone MatchKind = iota
	// MatchExact means the input normalized to a catalog entry.
	MatchExact
	// MatchSuggested means the closest entry was within the budget but
	// not an exact hit; callers decide whether to confirm or apply it.
	MatchSuggested
)

// MatchResult is the outcome of resolving one input. Name carries the
// canonical (display) form for Exact and Suggested; Distance is only
// meaningful for Suggested.
type MatchResult struct {
	Kind     MatchKind
	Name     string
	Distance int
}

// Matcher resolves free text against a fixed canonical list. It holds
// no mutable state and is safe for concurrent use.
type Matcher struct {
	names       []string
	keys        []string
	maxDistance int
}

// NewMatcher builds a matcher over the given catalog. List order is
// preserved: ties in the fuzzy pass go to the earliest entry. A
// negative maxDistance falls back to DefaultMaxDistance.
func NewMatcher(catalog []string, maxDistance int) *Matcher {
	if maxDistance < 0 {
		maxDistance = DefaultMaxDistance
	}
	m := &Matcher{
		names:       make([]string, len(catalog)),
		keys:        make([]string, len(catalog)),
		maxDistance: maxDistance,
	}
	for i, name := range catalog {
		m.names[i] = name
		m.keys[i] = Normalize(name)
	}
	return m
}

// Resolve maps rawText to a catalog entry. It first looks for an exact
// normalized match, then for the closest entry by edit distance within
// the budget. Empty effective input and out-of-budget input both yield
// MatchNone; Resolve never fails.
func (m *Matcher) Resolve(rawText string) MatchResult {
	key := Normalize(rawText)
	if key == "" {
		return MatchResult{Kind: MatchNone}
	}

	for i, k := range m.keys {
		if k == key {
			return MatchResult{Kind: MatchExact, Name: m.names[i]}
		}
	}

	best := -1
	bestDist := m.maxDistance + 1
	for i, k := range m.keys {
		if d := Distance(key, k); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return MatchResult{Kind: MatchNone}
	}
	return MatchResult{Kind: MatchSuggested, Name: m.names[best], Distance: bestDist}
}

// MaxDistance returns the configured fuzzy budget.
func (m *Matcher) MaxDistance() int { return m.maxDistance }

// Len returns the number of catalog entries.
func (m *Matcher) Len() int { return len(m.names) }
