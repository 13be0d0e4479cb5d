package orchestrator

import (
	"time"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

// Summary collects the results of one run in execution order.
type Summary struct {
	Started  time.Time
	Duration time.Duration
	Results  []*importer.Result
	Tracked  map[entity.Kind]int
	// Interrupted is set when the context ended before the plan finished.
	Interrupted bool
}

type Totals struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
}

func (s *Summary) Totals() Totals {
	var t Totals
	for _, r := range s.Results {
		t.Imported += r.Imported
		t.Skipped += r.Skipped
		t.Errors += len(r.Errors)
		t.Warnings += len(r.Warnings)
	}
	return t
}

// Failed returns the names of importers that reported errors.
func (s *Summary) Failed() []string {
	var out []string
	for _, r := range s.Results {
		if !r.Success {
			out = append(out, r.Name)
		}
	}
	return out
}

// Success is false when any importer failed or the run was interrupted.
func (s *Summary) Success() bool {
	return !s.Interrupted && len(s.Failed()) == 0
}
