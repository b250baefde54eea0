package matching

import "strings"

// Pool is the normalized set of ingredient names a user has on hand for one
// request: the query terms plus the pantry.
type Pool struct {
	entries []poolEntry
}

type poolEntry struct {
	text   string
	tokens []string
}

// NewPool normalizes and de-duplicates names. Names that normalize to nothing
// are dropped.
func NewPool(names ...string) Pool {
	seen := make(map[string]struct{}, len(names))
	p := Pool{entries: make([]poolEntry, 0, len(names))}
	for _, name := range names {
		n := Normalize(name)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		p.entries = append(p.entries, poolEntry{text: n, tokens: tokens(n)})
	}
	return p
}

// Names returns the normalized names in insertion order.
func (p Pool) Names() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.text
	}
	return out
}

// Len is the number of distinct names in the pool.
func (p Pool) Len() int {
	return len(p.entries)
}

// MatchPolicy decides whether an ingredient name is present in a pool.
type MatchPolicy interface {
	HasMatch(name string, pool Pool) bool
}

// minTokenLen is the shortest ingredient-name token that takes part in token
// overlap; shorter tokens are ignored.
const minTokenLen = 3

// TokenOverlapPolicy is the permissive matcher. A name is present when it
// contains a pool entry or is contained by one, or when any of its tokens of
// three or more letters overlaps a pool token by containment in either
// direction. "chicken breast" is therefore present in a pool holding
// "chicken thighs".
type TokenOverlapPolicy struct{}

func (TokenOverlapPolicy) HasMatch(name string, pool Pool) bool {
	n := Normalize(name)
	if n == "" {
		return false
	}

	var significant []string
	for _, t := range tokens(n) {
		if len([]rune(t)) >= minTokenLen {
			significant = append(significant, t)
		}
	}

	for _, e := range pool.entries {
		if strings.Contains(n, e.text) || strings.Contains(e.text, n) {
			return true
		}
		for _, t := range significant {
			for _, ct := range e.tokens {
				if strings.Contains(t, ct) || strings.Contains(ct, t) {
					return true
				}
			}
		}
	}
	return false
}
