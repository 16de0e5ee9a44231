package seating

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/internalerr"
	"github.com/cognicore/seating/pkg/seating/keywords"
	"github.com/cognicore/seating/pkg/seating/roster"
	"github.com/cognicore/seating/pkg/seating/similarity"
	"github.com/cognicore/seating/pkg/seating/store"
)

// Planner is the seating engine facade
type Planner struct {
	store         store.Store
	extractor     *keywords.Extractor
	maxTableSize  int
	evenFillBonus float64
	newRand       func(seed uint64) assign.Source
	now           func() time.Time

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Planner
type Options struct {
	Store         store.Store // optional; runs are not persisted without one
	Extractor     *keywords.Extractor
	MaxTableSize  int
	EvenFillBonus float64 // see assign.Options
	NewRand       func(seed uint64) assign.Source
	Now           func() time.Time
}

// New creates a Planner with the given dependencies
func New(opts Options) *Planner {
	if opts.Extractor == nil {
		opts.Extractor = keywords.Default()
	}
	if opts.MaxTableSize < 1 {
		opts.MaxTableSize = assign.DefaultMaxTableSize
	}
	if opts.NewRand == nil {
		opts.NewRand = NewRand
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Planner{
		store:         opts.Store,
		extractor:     opts.Extractor,
		maxTableSize:  opts.MaxTableSize,
		evenFillBonus: opts.EvenFillBonus,
		newRand:       opts.NewRand,
		now:           opts.Now,
		entropy:       ulid.Monotonic(rand.Reader, 0),
	}
}

// NewRand returns a PCG generator seeded with seed
func NewRand(seed uint64) assign.Source {
	return mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomSeed draws a seed from crypto/rand
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint64(time.Now().UnixNano())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Close cleanly shuts down the Planner
func (p *Planner) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// MaxTableSize returns the seat count per table
func (p *Planner) MaxTableSize() int {
	return p.maxTableSize
}

// Assign seats people at tables using a generator seeded with seed. The
// same roster and seed always produce the same arrangement. The run is
// saved when the Planner has a store.
func (p *Planner) Assign(ctx context.Context, people []roster.Person, seed uint64) (store.Run, error) {
	builder := assign.New(assign.Options{
		MaxTableSize:  p.maxTableSize,
		EvenFillBonus: p.evenFillBonus,
		Extractor:     p.extractor,
		Rand:          p.newRand(seed),
	})

	now := p.now()
	run := store.Run{
		ID:           p.newID(now),
		CreatedAt:    now,
		Seed:         seed,
		MaxTableSize: p.maxTableSize,
		People:       people,
		Tables:       builder.Build(people),
	}

	if p.store != nil {
		if err := p.store.SaveRun(ctx, run); err != nil {
			return store.Run{}, fmt.Errorf("save run: %w", err)
		}
	}
	return run, nil
}

// Reassign seats the roster of a stored run again with a new seed,
// producing a fresh arrangement saved as a new run.
func (p *Planner) Reassign(ctx context.Context, runID string, seed uint64) (store.Run, error) {
	prev, err := p.Run(ctx, runID)
	if err != nil {
		return store.Run{}, err
	}
	return p.Assign(ctx, prev.People, seed)
}

// Run loads a stored run
func (p *Planner) Run(ctx context.Context, runID string) (store.Run, error) {
	if p.store == nil {
		return store.Run{}, fmt.Errorf("%w: no run store configured", internalerr.ErrStoreUnavailable)
	}
	run, ok, err := p.store.GetRun(ctx, runID)
	if err != nil {
		return store.Run{}, fmt.Errorf("load run: %w", err)
	}
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", runID, internalerr.ErrNotFound)
	}
	return run, nil
}

// History lists the most recent stored runs
func (p *Planner) History(ctx context.Context, limit int) ([]store.RunInfo, error) {
	if p.store == nil {
		return nil, fmt.Errorf("%w: no run store configured", internalerr.ErrStoreUnavailable)
	}
	return p.store.ListRuns(ctx, limit)
}

// Summary describes an arrangement
type Summary struct {
	People        int
	Tables        int
	MeanDiversity float64   // average over tables with at least two members
	Diversity     []float64 // per table, in table order
	Undersized    int       // tables with fewer than MaxTableSize members
}

// Summarize scores every table of an arrangement
func (p *Planner) Summarize(tables []assign.Table) Summary {
	scorer := similarity.NewScorer(p.extractor)

	s := Summary{
		Tables:    len(tables),
		Diversity: make([]float64, len(tables)),
	}
	scored := 0
	for i, t := range tables {
		s.People += len(t.Members)
		if len(t.Members) < p.maxTableSize {
			s.Undersized++
		}
		s.Diversity[i] = scorer.Diversity(t.Members)
		if len(t.Members) > 1 {
			s.MeanDiversity += s.Diversity[i]
			scored++
		}
	}
	if scored > 0 {
		s.MeanDiversity /= float64(scored)
	}
	return s
}

func (p *Planner) newID(now time.Time) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(now), p.entropy).String()
}
