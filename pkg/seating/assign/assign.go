// Package assign partitions a roster into fixed-capacity tables, greedily
// maximizing the topical diversity of each table.
package assign

import (
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
	"github.com/cognicore/seating/pkg/seating/similarity"
)

const (
	// DefaultMaxTableSize is the seat count of every table.
	DefaultMaxTableSize = 10

	// DefaultEvenFillBonus is added to every candidate's score once the
	// remaining attendees fit into the current table, so the tail of the
	// roster fills out partial tables instead of leaving singletons.
	DefaultEvenFillBonus = 0.1
)

// Table is one group of seated attendees. The first member is the seed.
type Table struct {
	ID      int
	Members []roster.Person
}

// Source picks the seed of each table. *math/rand/v2.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// Builder assigns people to tables
type Builder struct {
	maxTableSize  int
	evenFillBonus float64
	extractor     *keywords.Extractor
	rand          Source
}

// Options configures a Builder
type Options struct {
	MaxTableSize  int     // seats per table; values < 1 use DefaultMaxTableSize
	EvenFillBonus float64 // zero uses DefaultEvenFillBonus; negative disables the bonus
	Extractor     *keywords.Extractor
	Rand          Source
}

// New creates a table builder. A nil Rand makes seeding deterministic
// (always the first unassigned person).
func New(opts Options) *Builder {
	if opts.MaxTableSize < 1 {
		opts.MaxTableSize = DefaultMaxTableSize
	}
	switch {
	case opts.EvenFillBonus == 0:
		opts.EvenFillBonus = DefaultEvenFillBonus
	case opts.EvenFillBonus < 0:
		opts.EvenFillBonus = 0
	}
	if opts.Extractor == nil {
		opts.Extractor = keywords.Default()
	}
	return &Builder{
		maxTableSize:  opts.MaxTableSize,
		evenFillBonus: opts.EvenFillBonus,
		extractor:     opts.Extractor,
		rand:          opts.Rand,
	}
}

// MaxTableSize returns the configured seat count
func (b *Builder) MaxTableSize() int {
	return b.maxTableSize
}

// Build partitions people into tables. Every person lands in exactly one
// table; people is not modified. Identity is by position, so duplicate
// entries are seated independently.
func (b *Builder) Build(people []roster.Person) []Table {
	if len(people) == 0 {
		return []Table{}
	}

	cache := similarity.NewCache(b.extractor, people)

	unassigned := make([]int, len(people))
	for i := range unassigned {
		unassigned[i] = i
	}

	var tables []Table
	for len(unassigned) > 0 {
		seed := b.pickSeed(len(unassigned))
		current := []int{unassigned[seed]}
		unassigned = removeAt(unassigned, seed)

		for len(current) < b.maxTableSize && len(unassigned) > 0 {
			best := b.bestCandidate(cache, current, unassigned)
			if best < 0 {
				break
			}
			current = append(current, unassigned[best])
			unassigned = removeAt(unassigned, best)
		}

		members := make([]roster.Person, len(current))
		for i, idx := range current {
			members[i] = people[idx]
		}
		tables = append(tables, Table{
			ID:      len(tables) + 1,
			Members: members,
		})
	}

	return tables
}

// bestCandidate returns the index into unassigned of the candidate that makes
// the most diverse table, or -1 if none qualifies. The first strictly higher
// score wins ties.
func (b *Builder) bestCandidate(cache *similarity.Cache, current, unassigned []int) int {
	bestIndex := -1
	bestScore := -1.0

	trial := make([]int, len(current)+1)
	copy(trial, current)

	for i, candidate := range unassigned {
		trial[len(current)] = candidate
		score := cache.Diversity(trial)

		if len(unassigned) <= b.maxTableSize && len(current) < b.maxTableSize {
			score += b.evenFillBonus
		}

		if score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	return bestIndex
}

func (b *Builder) pickSeed(n int) int {
	if b.rand == nil {
		return 0
	}
	return b.rand.IntN(n)
}

func removeAt(s []int, i int) []int {
	return append(s[:i], s[i+1:]...)
}
