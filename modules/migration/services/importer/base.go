// Package importer holds the per-row cycle shared by every legacy importer:
// resolve the canonical key, skip what exists, create what does not, and
// record the outcome without ever aborting the run on a single row.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/samples"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/helpers"
	"github.com/iota-uz/legacy-migrate/pkg/metrics"
)

// Importer migrates one legacy entity family.
type Importer interface {
	Name() string
	Import(ctx context.Context) *Result
}

// Row is one unit of work for Process.
type Row struct {
	Kind entity.Kind
	Key  string
	// Describe is a short human label for logs.
	Describe string
	// Record is validated before anything is written.
	Record any
	// Sample is the raw legacy row kept by the sample collector.
	Sample   any
	Language string
	Create   func(ctx context.Context) (string, error)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

type Base struct {
	name  string
	deps  *Deps
	log   logrus.FieldLogger
	state State
	start time.Time

	tags    *helpers.TagHelper
	authors *helpers.AuthorHelper
	artists *helpers.ArtistHelper
}

func NewBase(name string, d *Deps) Base {
	log := d.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	b := Base{name: name, deps: d, log: log.WithField("importer", name), state: StateIdle}
	hd := b.helperDeps()
	b.tags = helpers.NewTagHelper(hd)
	b.authors = helpers.NewAuthorHelper(hd)
	b.artists = helpers.NewArtistHelper(hd)
	return b
}

func (b *Base) Name() string                   { return b.name }
func (b *Base) State() State                   { return b.state }
func (b *Base) Deps() *Deps                    { return b.deps }
func (b *Base) Log() logrus.FieldLogger        { return b.log }
func (b *Base) Tags() *helpers.TagHelper       { return b.tags }
func (b *Base) Authors() *helpers.AuthorHelper { return b.authors }
func (b *Base) Artists() *helpers.ArtistHelper { return b.artists }

func (b *Base) helperDeps() helpers.Deps {
	return helpers.Deps{Tracker: b.deps.Tracker, Strategy: b.deps.Strategy, DryRun: !b.deps.Options.Mutating()}
}

// Begin moves to Fetching and returns a fresh result.
func (b *Base) Begin() *Result {
	b.state = StateFetching
	b.start = time.Now()
	b.log.Info("starting")
	return NewResult(b.name)
}

// Rows marks the first row read.
func (b *Base) Rows() {
	b.state = StateRows
}

// Finish closes the run. A non-nil err is a fetch failure: it is recorded
// and the importer ends Failed.
func (b *Base) Finish(res *Result, err error) *Result {
	if err != nil {
		res.AddError("", errors.Wrap(err, "query failed"))
	}
	res.finish(time.Since(b.start))
	if res.Success {
		b.state = StateCompleted
	} else {
		b.state = StateFailed
	}
	metrics.ObserveImporter(b.name, res.Duration, !res.Success)
	b.log.WithFields(logrus.Fields{
		"imported": res.Imported,
		"skipped":  res.Skipped,
		"errors":   len(res.Errors),
		"warnings": len(res.Warnings),
	}).Info("finished")
	return res
}

// Process runs the find-or-create cycle for one row and returns the id the
// row resolves to ("" on error).
func (b *Base) Process(ctx context.Context, res *Result, row Row) (string, Outcome) {
	if b.state != StateRows {
		b.Rows()
	}
	if strings.TrimSpace(row.Key) == "" {
		b.Fail(res, row.Describe, errors.New("missing canonical key"))
		return "", Failed
	}
	if row.Record != nil {
		if err := Validate(row.Record); err != nil {
			b.Fail(res, row.Key, err)
			b.sample(row, samples.ReasonEdge, "invalid")
			return "", Failed
		}
	}

	d := b.deps
	if id, ok := d.Tracker.Lookup(row.Kind, row.Key); ok {
		b.MarkSkipped(res)
		return id, Skipped
	}
	id, found, err := d.Strategy.FindByCanonicalKey(ctx, row.Kind, row.Key)
	if err != nil {
		b.Fail(res, row.Key, errors.Wrap(err, "lookup"))
		return "", Failed
	}
	if found {
		d.Tracker.Register(row.Kind, row.Key, id)
		b.MarkSkipped(res)
		return id, Skipped
	}

	if !d.Options.Mutating() {
		id = tracker.Placeholder(row.Key)
		d.Tracker.Register(row.Kind, row.Key, id)
		b.log.Debugf("%s Would create %s %s", d.Options.Prefix(), row.Kind, row.Key)
		b.sample(row, samples.ReasonSuccess, "")
		b.MarkImported(res)
		return id, Imported
	}

	id, err = row.Create(ctx)
	if err == nil {
		d.Tracker.Register(row.Kind, row.Key, id)
		b.sample(row, samples.ReasonSuccess, "")
		b.MarkImported(res)
		return id, Imported
	}
	if !errors.Is(err, domain.ErrDuplicate) {
		b.Fail(res, row.Key, err)
		return "", Failed
	}

	id, found, ferr := d.Strategy.FindByCanonicalKey(ctx, row.Kind, row.Key)
	switch {
	case ferr != nil:
		b.Fail(res, row.Key, errors.Wrap(ferr, "re-find after duplicate"))
		return "", Failed
	case !found:
		b.Fail(res, row.Key, fmt.Errorf("create reported duplicate but entity not found: %w", helpers.ErrInconsistent))
		return "", Failed
	}
	d.Tracker.Register(row.Kind, row.Key, id)
	b.MarkSkipped(res)
	return id, Skipped
}

// Ensure resolves a dependent entity (translation, context, alias) that is
// not itself a counted row.
func (b *Base) Ensure(ctx context.Context, kind entity.Kind, key string, record any, create func(context.Context) (string, error)) (string, bool, error) {
	if record != nil {
		if err := Validate(record); err != nil {
			return "", false, errors.Wrapf(err, "%s %s", kind, key)
		}
	}
	id, created, err := helpers.Ensure(ctx, b.helperDeps(), kind, key, create)
	if err == nil && created && !b.deps.Options.Mutating() {
		b.log.Debugf("%s Would create %s %s", b.deps.Options.Prefix(), kind, key)
	}
	return id, created, err
}

// Resolve looks a dependency up by key without creating it.
func (b *Base) Resolve(ctx context.Context, kind entity.Kind, key string) (string, bool, error) {
	if id, ok := b.deps.Tracker.Lookup(kind, key); ok {
		return id, true, nil
	}
	id, found, err := b.deps.Strategy.FindByCanonicalKey(ctx, kind, key)
	if err != nil || !found {
		return "", false, err
	}
	b.deps.Tracker.Register(kind, key, id)
	return id, true, nil
}

// Attach links children unless the run is non-mutating or a parent or
// child is a placeholder.
func (b *Base) Attach(ctx context.Context, parentID string, childIDs []string, rel entity.Relation) error {
	if len(childIDs) == 0 {
		return nil
	}
	if !b.deps.Options.Mutating() {
		b.log.Debugf("%s Would attach %d %s to %s", b.deps.Options.Prefix(), len(childIDs), rel, parentID)
		return nil
	}
	return b.deps.Strategy.Attach(ctx, parentID, childIDs, rel)
}

// MarkImported counts a row handled outside Process.
func (b *Base) MarkImported(res *Result) {
	res.Imported++
	b.tick(Imported)
}

func (b *Base) MarkSkipped(res *Result) {
	res.Skipped++
	b.tick(Skipped)
}

// Fail records a row error under key.
func (b *Base) Fail(res *Result, key string, err error) {
	res.AddError(key, err)
	b.log.WithField("key", key).WithError(err).Warn("row failed")
	b.tick(Failed)
}

// Warn records a non-fatal problem; the row outcome is unchanged.
func (b *Base) Warn(res *Result, format string, args ...any) {
	res.AddWarning(format, args...)
	metrics.ObserveRow(b.name, metrics.OutcomeWarning)
	b.log.Warnf(format, args...)
}

// WarnSample is Warn that also keeps the offending row as a warning sample.
func (b *Base) WarnSample(res *Result, entityType string, sample any, details string, format string, args ...any) {
	b.Warn(res, format, args...)
	b.Collect(entityType, sample, samples.ReasonWarning, details, "")
}

// Collect stores a raw row with an explicit reason.
func (b *Base) Collect(entityType string, data any, reason samples.Reason, details, lang string) {
	b.deps.Samples.Collect(samples.Sample{EntityType: entityType, Data: data, Reason: reason, Details: details, Language: lang})
}

func (b *Base) sample(row Row, reason samples.Reason, details string) {
	if row.Sample == nil {
		return
	}
	b.Collect(string(row.Kind), row.Sample, reason, details, row.Language)
}

func (b *Base) tick(o Outcome) {
	metrics.ObserveRow(b.name, o.String())
	if b.deps.Progress != nil {
		b.deps.Progress.Tick(o)
	}
}

// Validate checks a record's `validate` tags and flattens the failures into
// one message.
func Validate(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid record: %s", strings.Join(parts, ", "))
}
