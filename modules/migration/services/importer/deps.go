package importer

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/codes"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/samples"
)

// Options are the run switches every importer honours.
type Options struct {
	DryRun     bool
	SampleOnly bool
	// DefaultLanguage is the target language id whose row names an item.
	DefaultLanguage string
	ImageRoot       string
}

// Mutating reports whether Create*/Attach/Update/Delete may be called.
func (o Options) Mutating() bool {
	return !o.DryRun && !o.SampleOnly
}

// Prefix is the log marker for non-mutating runs.
func (o Options) Prefix() string {
	switch {
	case o.SampleOnly:
		return "[SAMPLE]"
	case o.DryRun:
		return "[DRY-RUN]"
	}
	return ""
}

// Progress receives one tick per finished row.
type Progress interface {
	Tick(Outcome)
}

// Deps is shared by all importers of one run.
type Deps struct {
	Source   *legacy.Source
	Strategy domain.Strategy
	Tracker  *tracker.Tracker
	Codes    *codes.Mapper
	Links    *entity.LinkQueue
	Samples  *samples.Collector
	Log      logrus.FieldLogger
	Progress Progress
	Options  Options
}
