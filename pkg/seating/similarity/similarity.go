// Package similarity scores how alike two attendees are and how diverse a
// group of attendees is, based on keyword overlap.
package similarity

import (
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
)

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets score 0, not NaN.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Diversity returns 1 minus the mean pairwise similarity of n members, where
// sim(i, j) scores members i and j. Pairs are visited in (i, j>i) order.
// Groups with fewer than two members score 0.
func Diversity(n int, sim func(i, j int) float64) float64 {
	if n <= 1 {
		return 0
	}

	total := 0.0
	comparisons := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += sim(i, j)
			comparisons++
		}
	}
	return 1 - total/float64(comparisons)
}

// Scorer compares people through their extracted keywords
type Scorer struct {
	extractor *keywords.Extractor
}

// NewScorer creates a scorer backed by the given extractor
func NewScorer(extractor *keywords.Extractor) *Scorer {
	if extractor == nil {
		extractor = keywords.Default()
	}
	return &Scorer{extractor: extractor}
}

// Similarity returns the Jaccard similarity of two people's keyword sets
func (s *Scorer) Similarity(a, b roster.Person) float64 {
	return Jaccard(s.extractor.Set(a.Description), s.extractor.Set(b.Description))
}

// Diversity scores a candidate table
func (s *Scorer) Diversity(people []roster.Person) float64 {
	sets := make([]map[string]struct{}, len(people))
	for i, p := range people {
		sets[i] = s.extractor.Set(p.Description)
	}
	return Diversity(len(people), func(i, j int) float64 {
		return Jaccard(sets[i], sets[j])
	})
}
