// Package report renders a run to the console, the run log file and the
// run artefacts (metrics textfile, error workbook).
package report

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/orchestrator"
	"github.com/iota-uz/legacy-migrate/pkg/metrics"
)

const (
	defaultMaxErrors = 5
	defaultWidth     = 80
	rule             = "================================================================================"
)

type Options struct {
	// Console defaults to stdout. io.Discard silences it.
	Console io.Writer
	// Log is the run log. A nil Log drops file output.
	Log logrus.FieldLogger
	// MetricsPath and WorkbookPath enable the artefacts when set.
	MetricsPath  string
	WorkbookPath string
	// MaxErrors is how many errors per importer the console shows.
	MaxErrors int
	// Width is the number of progress characters per console line.
	Width int
}

// Reporter implements orchestrator.Observer and importer.Progress.
type Reporter struct {
	opts    Options
	console io.Writer
	log     logrus.FieldLogger
	col     int
	errs    []error
}

var (
	_ orchestrator.Observer = (*Reporter)(nil)
	_ importer.Progress     = (*Reporter)(nil)
)

func New(opts Options) *Reporter {
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
	if opts.MaxErrors <= 0 {
		opts.MaxErrors = defaultMaxErrors
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Reporter{opts: opts, console: opts.Console, log: log}
}

// Tick prints one progress character per finished row.
func (r *Reporter) Tick(o importer.Outcome) {
	var ch string
	switch o {
	case importer.Imported:
		ch = pterm.Green(".")
	case importer.Skipped:
		ch = pterm.Gray("s")
	default:
		ch = pterm.Red("×")
	}
	pterm.Fprint(r.console, ch)
	r.col++
	if r.col >= r.opts.Width {
		r.endLine()
	}
}

func (r *Reporter) endLine() {
	if r.col > 0 {
		pterm.Fprintln(r.console)
		r.col = 0
	}
}

func mode(o importer.Options) string {
	switch {
	case o.SampleOnly:
		return "sample-only"
	case o.DryRun:
		return "dry-run"
	}
	return "live"
}

func (r *Reporter) RunStarted(plan orchestrator.Plan, opts importer.Options) {
	now := time.Now()
	r.log.Info(rule)
	r.log.Info("LEGACY IMPORT")
	r.log.Info(rule)
	r.log.Infof("Start time: %s", now.Format(time.RFC3339))
	r.log.Infof("Mode: %s", mode(opts))
	r.log.Infof("Importers: %s", strings.Join(plan.Keys(), ", "))
	for _, e := range plan.Skipped {
		r.log.Infof("Skipping %s", e.Key)
	}

	pterm.Fprintln(r.console, pterm.Bold.Sprint(rule))
	pterm.Fprintln(r.console, pterm.Bold.Sprint(pterm.Cyan("LEGACY IMPORT")))
	pterm.Fprintln(r.console, pterm.Bold.Sprint(rule))
	pterm.Fprintln(r.console, pterm.Gray(fmt.Sprintf("Start time: %s", now.Format(time.RFC3339))))
	pterm.Fprintln(r.console, pterm.Gray(fmt.Sprintf("Mode: %s", mode(opts))))
	if opts.DryRun || opts.SampleOnly {
		pterm.Fprintln(r.console, pterm.Yellow(fmt.Sprintf("%s no data will be written", opts.Prefix())))
	}
}

func (r *Reporter) PhaseStarted(phase orchestrator.Phase) {
	keys := make([]string, 0, len(phase.Entries))
	for _, e := range phase.Entries {
		keys = append(keys, e.Key)
	}
	r.endLine()
	r.log.Infof("PHASE %d: %s", phase.Number, strings.Join(keys, ", "))
	pterm.Fprintln(r.console)
	pterm.Fprintln(r.console, pterm.Bold.Sprint(pterm.Cyan(fmt.Sprintf("PHASE %d", phase.Number))))
}

func (r *Reporter) ImporterStarted(e importers.Entry) {
	r.log.Infof("Starting %s: %s", e.Key, e.Description)
	pterm.Fprintln(r.console, pterm.Cyan(fmt.Sprintf("▶  Starting %s...", e.Description)))
}

// CompletedLine is the per-importer line of the run log.
func CompletedLine(res *importer.Result) string {
	return fmt.Sprintf("Completed %s: %d imported, %d skipped, %d errors (%.2fs)",
		res.Name, res.Imported, res.Skipped, len(res.Errors), res.Duration.Seconds())
}

func (r *Reporter) ImporterFinished(e importers.Entry, res *importer.Result) {
	r.endLine()
	entry := r.log.WithField("importer", e.Key)
	for _, msg := range res.Errors {
		entry.Error(msg)
	}
	for _, msg := range res.Warnings {
		entry.Warn(msg)
	}
	r.log.Info(CompletedLine(res))

	if len(res.Errors) > 0 {
		pterm.Fprintln(r.console, pterm.Red(fmt.Sprintf("   ✗ %s completed with %d errors", e.Key, len(res.Errors))))
		shown := res.Errors
		if len(shown) > r.opts.MaxErrors {
			shown = shown[:r.opts.MaxErrors]
		}
		for _, msg := range shown {
			pterm.Fprintln(r.console, pterm.Red("      - "+msg))
		}
		if more := len(res.Errors) - len(shown); more > 0 {
			pterm.Fprintln(r.console, pterm.Red(fmt.Sprintf("      ... and %d more errors", more)))
		}
	} else {
		pterm.Fprintln(r.console, pterm.Green(fmt.Sprintf("   ✓ %s completed: %d imported, %d skipped (%.2fs)",
			e.Key, res.Imported, res.Skipped, res.Duration.Seconds())))
	}
	if n := len(res.Warnings); n > 0 {
		pterm.Fprintln(r.console, pterm.Yellow(fmt.Sprintf("   ⚠  %d warnings", n)))
	}
}

func (r *Reporter) RunFinished(s *orchestrator.Summary) {
	r.endLine()
	t := s.Totals()
	lines := []string{
		rule,
		"IMPORT SUMMARY",
		rule,
		fmt.Sprintf("Importers: %d run, %d failed", len(s.Results), len(s.Failed())),
		fmt.Sprintf("Imported: %d", t.Imported),
		fmt.Sprintf("Skipped:  %d", t.Skipped),
		fmt.Sprintf("Errors:   %d", t.Errors),
		fmt.Sprintf("Warnings: %d", t.Warnings),
		fmt.Sprintf("Duration: %.2fs", s.Duration.Seconds()),
	}
	if s.Interrupted {
		lines = append(lines, "Run interrupted before all importers finished")
	}
	for _, l := range lines {
		r.log.Info(l)
	}

	pterm.Fprintln(r.console)
	pterm.Fprintln(r.console, pterm.Bold.Sprint(rule))
	pterm.Fprintln(r.console, pterm.Bold.Sprint(pterm.Cyan("IMPORT SUMMARY")))
	pterm.Fprintln(r.console, pterm.Bold.Sprint(rule))
	pterm.Fprintln(r.console, pterm.Green(fmt.Sprintf("✓ Imported: %d", t.Imported)))
	pterm.Fprintln(r.console, pterm.Gray(fmt.Sprintf("⏭ Skipped:  %d", t.Skipped)))
	if t.Errors > 0 {
		pterm.Fprintln(r.console, pterm.Red(fmt.Sprintf("✗ Errors:   %d (%s)", t.Errors, strings.Join(s.Failed(), ", "))))
	}
	if t.Warnings > 0 {
		pterm.Fprintln(r.console, pterm.Yellow(fmt.Sprintf("⚠  Warnings: %d", t.Warnings)))
	}
	pterm.Fprintln(r.console, pterm.Gray(fmt.Sprintf("⏱  Duration: %.2fs", s.Duration.Seconds())))

	if r.opts.MetricsPath != "" {
		if err := metrics.WriteTextfile(r.opts.MetricsPath, s.Started.Add(s.Duration)); err != nil {
			r.fail(fmt.Errorf("write metrics: %w", err))
		} else {
			r.log.Infof("Metrics written to %s", r.opts.MetricsPath)
		}
	}
	if r.opts.WorkbookPath != "" {
		if err := WriteWorkbook(r.opts.WorkbookPath, s); err != nil {
			r.fail(fmt.Errorf("write workbook: %w", err))
		} else {
			r.log.Infof("Workbook written to %s", r.opts.WorkbookPath)
			pterm.Fprintln(r.console, pterm.Gray("Workbook: "+r.opts.WorkbookPath))
		}
	}
}

func (r *Reporter) fail(err error) {
	r.errs = append(r.errs, err)
	r.log.Error(err.Error())
	pterm.Fprintln(r.console, pterm.Red(err.Error()))
}

// Errs returns artefact write failures. They never change the run outcome.
func (r *Reporter) Errs() []error {
	return r.errs
}
