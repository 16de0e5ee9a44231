package store

import (
	"context"
	"time"

	"github.com/cognicore/seating/pkg/seating/assign"
	"github.com/cognicore/seating/pkg/seating/roster"
)

// Store persists assignment runs so they can be listed, exported again or
// reassigned later
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	ListRuns(ctx context.Context, limit int) ([]RunInfo, error)
}

// Run is one assignment of a roster to tables
type Run struct {
	ID           string
	CreatedAt    time.Time
	Seed         uint64
	MaxTableSize int
	People       []roster.Person // roster in input order
	Tables       []assign.Table
}

// RunInfo summarizes a stored run
type RunInfo struct {
	ID        string
	CreatedAt time.Time
	People    int
	Tables    int
}

// Info returns the summary of a run
func (r Run) Info() RunInfo {
	return RunInfo{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		People:    len(r.People),
		Tables:    len(r.Tables),
	}
}

// CopyRun returns a deep copy of r
func CopyRun(r Run) Run {
	out := r
	out.People = append([]roster.Person(nil), r.People...)
	out.Tables = make([]assign.Table, len(r.Tables))
	for i, t := range r.Tables {
		out.Tables[i] = assign.Table{
			ID:      t.ID,
			Members: append([]roster.Person(nil), t.Members...),
		}
	}
	return out
}
