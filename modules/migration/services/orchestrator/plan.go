package orchestrator

import (
	"fmt"
	"strings"

	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
)

// Selection narrows the registry. Only wins over StartAt/StopAt; both
// bounds are inclusive.
type Selection struct {
	Only    []string
	StartAt string
	StopAt  string
}

// Empty reports whether every importer runs.
func (s Selection) Empty() bool {
	return len(s.Only) == 0 && s.StartAt == "" && s.StopAt == ""
}

// Phase is a group of importers that run one after another.
type Phase struct {
	Number  int
	Entries []importers.Entry
}

// Plan is the ordered work of one run. Skipped lists registered importers
// left out by the selection.
type Plan struct {
	Phases  []Phase
	Skipped []importers.Entry
}

// Len returns the number of importers that will run.
func (p Plan) Len() int {
	n := 0
	for _, ph := range p.Phases {
		n += len(ph.Entries)
	}
	return n
}

// Keys returns the keys of the importers that will run, in order.
func (p Plan) Keys() []string {
	out := make([]string, 0, p.Len())
	for _, ph := range p.Phases {
		for _, e := range ph.Entries {
			out = append(out, e.Key)
		}
	}
	return out
}

// Build applies sel to registry and groups the result by phase. Unknown
// keys are rejected before anything runs.
func Build(registry []importers.Entry, sel Selection) (Plan, error) {
	index := make(map[string]int, len(registry))
	for i, e := range registry {
		index[e.Key] = i
	}
	position := func(key string) (int, error) {
		i, ok := index[strings.TrimSpace(key)]
		if !ok {
			return 0, fmt.Errorf("Unknown importer: %s", key) //nolint:staticcheck
		}
		return i, nil
	}

	only := map[string]bool{}
	for _, k := range sel.Only {
		if strings.TrimSpace(k) == "" {
			continue
		}
		if _, err := position(k); err != nil {
			return Plan{}, err
		}
		only[strings.TrimSpace(k)] = true
	}
	start, stop := 0, len(registry)-1
	var err error
	if sel.StartAt != "" {
		if start, err = position(sel.StartAt); err != nil {
			return Plan{}, err
		}
	}
	if sel.StopAt != "" {
		if stop, err = position(sel.StopAt); err != nil {
			return Plan{}, err
		}
	}
	if start > stop {
		return Plan{}, fmt.Errorf("start-at %s comes after stop-at %s", sel.StartAt, sel.StopAt)
	}

	var plan Plan
	for i, e := range registry {
		run := i >= start && i <= stop
		if len(only) > 0 {
			run = only[e.Key]
		}
		if !run {
			plan.Skipped = append(plan.Skipped, e)
			continue
		}
		if n := len(plan.Phases); n == 0 || plan.Phases[n-1].Number != e.Phase {
			plan.Phases = append(plan.Phases, Phase{Number: e.Phase})
		}
		last := &plan.Phases[len(plan.Phases)-1]
		last.Entries = append(last.Entries, e)
	}
	return plan, nil
}
