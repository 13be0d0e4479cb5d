// Package orchestrator runs the registered importers phase by phase.
package orchestrator

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
	"github.com/iota-uz/legacy-migrate/pkg/metrics"
)

// Observer is told about run progress. The run reporter implements it.
type Observer interface {
	RunStarted(plan Plan, opts importer.Options)
	PhaseStarted(phase Phase)
	ImporterStarted(e importers.Entry)
	ImporterFinished(e importers.Entry, res *importer.Result)
	RunFinished(s *Summary)
}

type Options struct {
	Selection Selection
	// Warmup loads every stored canonical key into the tracker before the
	// first importer when the strategy can list them.
	Warmup   bool
	Observer Observer
	// Registry defaults to importers.Registry().
	Registry []importers.Entry
}

type Orchestrator struct {
	deps *importer.Deps
	opts Options
	log  logrus.FieldLogger
}

func New(deps *importer.Deps, opts Options) (*Orchestrator, error) {
	if deps == nil {
		return nil, errors.New("orchestrator: deps are required")
	}
	if deps.Strategy == nil || deps.Tracker == nil {
		return nil, errors.New("orchestrator: strategy and tracker are required")
	}
	if opts.Registry == nil {
		opts.Registry = importers.Registry()
	}
	if deps.Links == nil {
		deps.Links = entity.NewLinkQueue()
	}
	log := deps.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
		deps.Log = l
	}
	return &Orchestrator{deps: deps, opts: opts, log: log.WithField("component", "orchestrator")}, nil
}

func (o *Orchestrator) Plan() (Plan, error) {
	return Build(o.opts.Registry, o.opts.Selection)
}

// Run executes the plan. A failing or panicking importer is recorded and the
// run moves on. The returned error is only set when the plan is invalid;
// importer failures are reported through Summary.Success.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	plan, err := o.Plan()
	if err != nil {
		return nil, err
	}
	sum := &Summary{Started: time.Now()}
	o.notify(func(ob Observer) { ob.RunStarted(plan, o.deps.Options) })

	if o.opts.Warmup {
		o.warmup(ctx)
	}

	for _, phase := range plan.Phases {
		if ctx.Err() != nil {
			sum.Interrupted = true
			break
		}
		o.log.WithField("phase", phase.Number).Infof("Phase %d: %d importer(s)", phase.Number, len(phase.Entries))
		o.notify(func(ob Observer) { ob.PhaseStarted(phase) })

		for _, e := range phase.Entries {
			if ctx.Err() != nil {
				sum.Interrupted = true
				break
			}
			o.notify(func(ob Observer) { ob.ImporterStarted(e) })
			res := o.runOne(ctx, e)
			sum.Results = append(sum.Results, res)
			o.observeTracked()
			o.notify(func(ob Observer) { ob.ImporterFinished(e, res) })
		}
	}

	sum.Duration = time.Since(sum.Started)
	sum.Tracked = o.deps.Tracker.Count()
	o.notify(func(ob Observer) { ob.RunFinished(sum) })
	return sum, nil
}

// runOne builds and runs a single importer. A panic becomes an error on
// the importer's result.
func (o *Orchestrator) runOne(ctx context.Context, e importers.Entry) (res *importer.Result) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.log.WithField("importer", e.Key).Errorf("importer panicked: %v\n%s", r, debug.Stack())
			if res == nil {
				res = importer.NewResult(e.Key)
			}
			res.AddError("", fmt.Errorf("panic: %v", r))
			res.Success = false
			res.Duration = time.Since(started)
			metrics.ObserveImporter(e.Key, res.Duration, true)
		}
	}()
	res = e.New(o.deps).Import(ctx)
	if res == nil {
		res = importer.NewResult(e.Key)
		res.AddError("", errors.New("importer returned no result"))
		res.Duration = time.Since(started)
	}
	return res
}

func (o *Orchestrator) warmup(ctx context.Context) {
	snap, ok := o.deps.Strategy.(domain.Snapshotter)
	if !ok {
		o.log.Debug("strategy cannot list keys, tracker warms lazily")
		return
	}
	for _, kind := range entity.Kinds {
		rows, err := snap.Snapshot(ctx, kind)
		if err != nil {
			o.log.WithError(err).WithField("kind", kind).Warn("tracker warmup failed, continuing lazily")
			continue
		}
		for _, r := range rows {
			o.deps.Tracker.Register(kind, r.Key, r.ID)
		}
	}
	o.log.Infof("Tracker warmed with %d entities", o.deps.Tracker.Len())
	o.observeTracked()
}

func (o *Orchestrator) observeTracked() {
	for kind, n := range o.deps.Tracker.Count() {
		metrics.SetTracked(kind.String(), n)
	}
}

func (o *Orchestrator) notify(fn func(Observer)) {
	if o.opts.Observer != nil {
		fn(o.opts.Observer)
	}
}
