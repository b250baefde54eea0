package matching

// MatchType records how a recipe ingredient was satisfied.
type MatchType string

const (
	MatchExact      MatchType = "exact"
	MatchSubstitute MatchType = "substitute"
	// MatchPartial is part of the result vocabulary but the resolver never
	// produces it.
	MatchPartial MatchType = "partial"
	MatchNone    MatchType = "none"
)

// MatchResult is the outcome for one recipe ingredient. MatchedWith is set only
// for substitute matches and names the alternate that was found.
type MatchResult struct {
	Ingredient  Ingredient `json:"ingredient"`
	MatchType   MatchType  `json:"match_type"`
	MatchedWith string     `json:"matched_with,omitempty"`
}

// Resolver classifies a single ingredient against a pool.
type Resolver struct {
	policy MatchPolicy
	index  SubstitutionIndex
}

// NewResolver returns a Resolver. A nil policy means TokenOverlapPolicy.
func NewResolver(policy MatchPolicy, index SubstitutionIndex) Resolver {
	if policy == nil {
		policy = TokenOverlapPolicy{}
	}
	return Resolver{policy: policy, index: index}
}

// Resolve tries, in order, the ingredient itself, its own substitutes and the
// substitution index. Base ingredients are always treated as present.
func (r Resolver) Resolve(ing Ingredient, pool Pool) MatchResult {
	if ing.Category == CategoryBase {
		return MatchResult{Ingredient: ing, MatchType: MatchExact}
	}
	if r.policy.HasMatch(ing.Name, pool) {
		return MatchResult{Ingredient: ing, MatchType: MatchExact}
	}
	for _, alt := range ing.Substitutes {
		if r.policy.HasMatch(alt, pool) {
			return MatchResult{Ingredient: ing, MatchType: MatchSubstitute, MatchedWith: alt}
		}
	}
	for _, alt := range r.index.Lookup(ing.Name) {
		if r.policy.HasMatch(alt, pool) {
			return MatchResult{Ingredient: ing, MatchType: MatchSubstitute, MatchedWith: alt}
		}
	}
	return MatchResult{Ingredient: ing, MatchType: MatchNone}
}

// Suggestions lists up to limit alternates for an ingredient: its own
// substitutes first, then the index entry, without repeats.
func (r Resolver) Suggestions(ing Ingredient, limit int) []string {
	out := make([]string, 0, limit)
	if limit <= 0 {
		return out
	}
	seen := make(map[string]struct{})
	add := func(alts []string) bool {
		for _, alt := range alts {
			key := Normalize(alt)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, alt)
			if len(out) == limit {
				return false
			}
		}
		return true
	}
	if add(ing.Substitutes) {
		add(r.index.Lookup(ing.Name))
	}
	return out
}
