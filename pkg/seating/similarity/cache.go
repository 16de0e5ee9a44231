package similarity

import (
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
)

// Cache scores people by their position in a roster. Keyword sets are
// extracted once per person and pair similarities are memoized, so repeated
// diversity evaluations during table construction stay cheap.
type Cache struct {
	sets  []map[string]struct{}
	pairs map[int64]float64
}

// NewCache extracts keyword sets for every person in the roster
func NewCache(extractor *keywords.Extractor, people []roster.Person) *Cache {
	if extractor == nil {
		extractor = keywords.Default()
	}
	sets := make([]map[string]struct{}, len(people))
	for i, p := range people {
		sets[i] = extractor.Set(p.Description)
	}
	return &Cache{
		sets:  sets,
		pairs: make(map[int64]float64),
	}
}

// Len returns the number of people in the cache
func (c *Cache) Len() int {
	return len(c.sets)
}

// Keywords returns the keyword set of the person at index i
func (c *Cache) Keywords(i int) map[string]struct{} {
	return c.sets[i]
}

// Similarity returns the similarity of the people at positions i and j
func (c *Cache) Similarity(i, j int) float64 {
	if i > j {
		i, j = j, i
	}
	key := int64(i)*int64(len(c.sets)) + int64(j)
	if v, ok := c.pairs[key]; ok {
		return v
	}
	v := Jaccard(c.sets[i], c.sets[j])
	c.pairs[key] = v
	return v
}

// Diversity scores the group formed by the given roster positions
func (c *Cache) Diversity(members []int) float64 {
	return Diversity(len(members), func(i, j int) float64 {
		return c.Similarity(members[i], members[j])
	})
}
