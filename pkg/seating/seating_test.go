package seating

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/internalerr"
	"github.com/cognicore/seating/pkg/seating/roster"
	"github.com/cognicore/seating/pkg/seating/store/memstore"
)

func attendees(n int) []roster.Person {
	topics := []string{"chess", "cooking", "travel", "jazz", "golang", "painting", "hiking"}
	people := make([]roster.Person, n)
	for i := range people {
		people[i] = roster.Person{
			Name:        fmt.Sprintf("Guest %d", i+1),
			Description: topics[i%len(topics)] + " " + topics[(i*3)%len(topics)],
		}
	}
	return people
}

func TestAssignWithoutStore(t *testing.T) {
	p := New(Options{})
	defer p.Close()

	run, err := p.Assign(context.Background(), attendees(25), 7)
	require.NoError(t, err)

	require.Len(t, run.Tables, 3)
	assert.Equal(t, uint64(7), run.Seed)
	assert.Equal(t, 10, run.MaxTableSize)

	_, err = ulid.Parse(run.ID)
	assert.NoError(t, err, "run id should be a ULID")

	_, err = p.History(context.Background(), 10)
	assert.ErrorIs(t, err, internalerr.ErrStoreUnavailable)
}

func TestAssignDeterministicPerSeed(t *testing.T) {
	p := New(Options{MaxTableSize: 4})
	people := attendees(17)

	a, err := p.Assign(context.Background(), people, 99)
	require.NoError(t, err)
	b, err := p.Assign(context.Background(), people, 99)
	require.NoError(t, err)

	assert.Equal(t, a.Tables, b.Tables)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestAssignPersistsAndReassigns(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	clock := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	p := New(Options{
		Store:        st,
		MaxTableSize: 3,
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	})
	defer p.Close()

	first, err := p.Assign(ctx, attendees(8), 1)
	require.NoError(t, err)

	stored, err := p.Run(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Tables, stored.Tables)

	second, err := p.Reassign(ctx, first.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, first.People, second.People)
	assert.Len(t, second.Tables, 3)

	history, err := p.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, 8, history[0].People)
}

func TestReassignUnknownRun(t *testing.T) {
	p := New(Options{Store: memstore.New()})

	_, err := p.Reassign(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, internalerr.ErrNotFound)
}

func TestAssignEmptyRoster(t *testing.T) {
	p := New(Options{})

	run, err := p.Assign(context.Background(), nil, 1)
	require.NoError(t, err)
	assert.Empty(t, run.Tables)

	s := p.Summarize(run.Tables)
	assert.Equal(t, Summary{Diversity: []float64{}}, s)
}

func TestSummarize(t *testing.T) {
	p := New(Options{MaxTableSize: 3})

	tables := []assign.Table{
		{ID: 1, Members: []roster.Person{
			{Name: "A", Description: "chess"},
			{Name: "B", Description: "cooking"},
			{Name: "C", Description: "travel"},
		}},
		{ID: 2, Members: []roster.Person{
			{Name: "D", Description: "chess books"},
			{Name: "E", Description: "chess books"},
		}},
		{ID: 3, Members: []roster.Person{
			{Name: "F", Description: "jazz"},
		}},
	}

	s := p.Summarize(tables)
	assert.Equal(t, 6, s.People)
	assert.Equal(t, 3, s.Tables)
	assert.Equal(t, 2, s.Undersized)
	assert.Equal(t, []float64{1, 0, 0}, s.Diversity)
	assert.InDelta(t, 0.5, s.MeanDiversity, 1e-12)
}

func TestRandomSeedVaries(t *testing.T) {
	seen := make(map[uint64]struct{})
	for i := 0; i < 8; i++ {
		seen[RandomSeed()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}
