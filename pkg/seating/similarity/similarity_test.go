package similarity

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
)

func set(tokens ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		out[t] = struct{}{}
	}
	return out
}

func TestJaccard(t *testing.T) {
	assert.Equal(t, 1.0, Jaccard(set("chess", "books"), set("books", "chess")))
	assert.Equal(t, 0.0, Jaccard(set("chess"), set("cooking")))
	assert.InDelta(t, 1.0/3.0, Jaccard(set("chess", "books"), set("chess", "travel")), 1e-12)
}

func TestJaccardEmptyUnionIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Jaccard(set(), set()))
	assert.Equal(t, 0.0, Jaccard(nil, nil))
	assert.Equal(t, 0.0, Jaccard(set(), set("chess")))
}

func TestScorerSimilarity(t *testing.T) {
	s := NewScorer(nil)

	a := roster.Person{Name: "A", Description: "likes chess and books"}
	b := roster.Person{Name: "B", Description: "enjoys chess tournaments"}
	empty := roster.Person{Name: "E", Description: "the and of"}

	// {likes, chess, books} vs {enjoys, chess, tournaments}
	assert.InDelta(t, 1.0/5.0, s.Similarity(a, b), 1e-12)
	assert.Equal(t, 0.0, s.Similarity(empty, empty))
}

func randomPeople(r *rand.Rand, n int) []roster.Person {
	vocab := []string{"chess", "books", "cooking", "travel", "hiking", "music", "jazz",
		"python", "golang", "rust", "painting", "running", "the", "and", "a", "of"}
	people := make([]roster.Person, n)
	for i := range people {
		words := r.IntN(8)
		desc := ""
		for w := 0; w < words; w++ {
			desc += vocab[r.IntN(len(vocab))] + " "
		}
		people[i] = roster.Person{Name: fmt.Sprintf("P%d", i), Description: desc}
	}
	return people
}

func TestSimilaritySymmetricAndBounded(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 7))
	s := NewScorer(keywords.Default())
	people := randomPeople(r, 40)

	for i := range people {
		for j := range people {
			ab := s.Similarity(people[i], people[j])
			ba := s.Similarity(people[j], people[i])
			require.Equal(t, ab, ba, "similarity must be symmetric for %d,%d", i, j)
			require.GreaterOrEqual(t, ab, 0.0)
			require.LessOrEqual(t, ab, 1.0)
		}
	}
}

func TestDiversityNeutralForSmallGroups(t *testing.T) {
	s := NewScorer(nil)

	assert.Equal(t, 0.0, s.Diversity(nil))
	assert.Equal(t, 0.0, s.Diversity([]roster.Person{{Name: "A", Description: "chess"}}))
}

func TestDiversityValues(t *testing.T) {
	s := NewScorer(nil)

	same := []roster.Person{
		{Name: "A", Description: "chess books"},
		{Name: "B", Description: "books chess"},
	}
	assert.Equal(t, 0.0, s.Diversity(same))

	disjoint := []roster.Person{
		{Name: "A", Description: "chess"},
		{Name: "B", Description: "cooking"},
		{Name: "C", Description: "travel"},
	}
	assert.Equal(t, 1.0, s.Diversity(disjoint))
}

func TestDiversityBoundedAndDeterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(11, 3))
	s := NewScorer(nil)

	for trial := 0; trial < 50; trial++ {
		people := randomPeople(r, 1+r.IntN(10))
		d := s.Diversity(people)
		require.GreaterOrEqual(t, d, 0.0)
		require.LessOrEqual(t, d, 1.0)
		require.Equal(t, d, s.Diversity(people))
	}
}

func TestCacheMatchesScorer(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 9))
	people := randomPeople(r, 25)

	ext := keywords.Default()
	s := NewScorer(ext)
	c := NewCache(ext, people)
	require.Equal(t, len(people), c.Len())

	for i := range people {
		for j := range people {
			require.Equal(t, s.Similarity(people[i], people[j]), c.Similarity(i, j))
		}
	}

	members := []int{3, 0, 17, 8, 24}
	group := make([]roster.Person, len(members))
	for i, m := range members {
		group[i] = people[m]
	}
	assert.Equal(t, s.Diversity(group), c.Diversity(members))
}

func TestCacheDuplicatePeopleByPosition(t *testing.T) {
	p := roster.Person{Name: "Twin", Description: "chess books"}
	c := NewCache(nil, []roster.Person{p, p})

	assert.Equal(t, 1.0, c.Similarity(0, 1))
	assert.Equal(t, 0.0, c.Diversity([]int{0, 1}))
}
