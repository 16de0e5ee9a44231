package stoplist

import "sort"

// defaultStops are common English function words: articles, conjunctions,
// prepositions, auxiliary verbs and pronouns.
var defaultStops = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "can", "must", "shall", "this", "that",
	"these", "those", "i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
}

// Default returns a fresh copy of the built-in stopword list.
func Default() []string {
	out := make([]string, len(defaultStops))
	copy(out, defaultStops)
	return out
}

// Manager holds the active stopword set
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a new stoplist manager
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string) {
	m.stops[token] = struct{}{}
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, token)
}

// All returns all stopwords, sorted
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Stats holds roster-level statistics for one token
type Stats struct {
	Token     string
	DF        int64   // number of descriptions containing the token
	DFPercent float64 // DF as a percentage of all descriptions
}

// Candidate represents a candidate stopword
type Candidate struct {
	Token string
	Stats Stats
	Score float64 // confidence score
}

// Thresholds defines criteria for stopword identification
type Thresholds struct {
	DFPercent float64 // e.g. 50% - appears in half of all descriptions
	MinDocs   int64   // ignore rosters smaller than this
}

// DefaultThresholds returns sensible default thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DFPercent: 50.0,
		MinDocs:   4,
	}
}

// CollectStats computes document frequency for every token across the given
// per-description token lists. Duplicates within one description count once.
func CollectStats(docs [][]string) []Stats {
	total := len(docs)
	if total == 0 {
		return nil
	}

	df := make(map[string]int64)
	for _, tokens := range docs {
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if tok == "" {
				continue
			}
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	stats := make([]Stats, 0, len(df))
	for tok, n := range df {
		stats = append(stats, Stats{
			Token:     tok,
			DF:        n,
			DFPercent: float64(n) * 100.0 / float64(total),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].DF != stats[j].DF {
			return stats[i].DF > stats[j].DF
		}
		return stats[i].Token < stats[j].Token
	})
	return stats
}

// SuggestCandidates suggests tokens that are so common across the roster
// that they cannot tell two people apart.
func (m *Manager) SuggestCandidates(stats []Stats, thresholds Thresholds) []Candidate {
	if thresholds.DFPercent <= 0 {
		thresholds.DFPercent = DefaultThresholds().DFPercent
	}

	var candidates []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) {
			continue // already a stopword
		}
		if s.DF < thresholds.MinDocs {
			continue
		}
		if s.DFPercent <= thresholds.DFPercent {
			continue
		}
		candidates = append(candidates, Candidate{
			Token: s.Token,
			Stats: s,
			Score: s.DFPercent / 100.0,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Token < candidates[j].Token
	})
	return candidates
}
