package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/codes"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/samples"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/orchestrator"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/report"
	"github.com/iota-uz/legacy-migrate/pkg/configuration"
)

type importOptions struct {
	dryRun        bool
	sampleOnly    bool
	limit         int
	chunkSize     int
	strategy      string
	only          []string
	startAt       string
	stopAt        string
	listImporters bool
	logDir        string
	xlsx          bool
	json          bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Run the import",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listImporters {
				return printImporters(cmd.OutOrStdout())
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer cfg.Unload()
			if err := applyFlags(cmd, cfg, opts); err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd, cfg, opts)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.dryRun, "dry-run", false, "Simulate the import without writing to the target")
	f.BoolVar(&opts.sampleOnly, "sample-only", false, "Collect samples only; no writes to the target")
	f.IntVar(&opts.limit, "limit", 0, "Maximum records per importer (0 = no limit)")
	f.IntVar(&opts.chunkSize, "chunk-size", 0, "Rows fetched per legacy query (default IMPORT_CHUNK_SIZE)")
	f.StringVar(&opts.strategy, "strategy", "", "Target strategy: db|api|memory (default IMPORT_STRATEGY)")
	f.StringSliceVar(&opts.only, "only", nil, "Run only these importers (comma separated)")
	f.StringVar(&opts.startAt, "start-at", "", "Start from this importer")
	f.StringVar(&opts.stopAt, "stop-at", "", "Stop after this importer")
	f.BoolVar(&opts.listImporters, "list-importers", false, "List importers and exit")
	f.StringVar(&opts.logDir, "log-dir", "", "Directory for run logs and artefacts (default LOG_DIR)")
	f.BoolVar(&opts.xlsx, "xlsx", false, "Write an xlsx workbook with the run summary and errors")
	f.BoolVar(&opts.json, "json", false, "Print one JSON line per importer result to stdout")
	return cmd
}

// applyFlags overrides environment values with explicitly set flags and
// re-validates the result.
func applyFlags(cmd *cobra.Command, cfg *configuration.Configuration, opts importOptions) error {
	f := cmd.Flags()
	if f.Changed("dry-run") {
		cfg.Import.DryRun = opts.dryRun
	}
	if f.Changed("sample-only") {
		cfg.Import.SampleOnly = opts.sampleOnly
	}
	if f.Changed("limit") {
		cfg.Import.RowLimit = opts.limit
	}
	if f.Changed("chunk-size") {
		cfg.Import.ChunkSize = opts.chunkSize
	}
	if f.Changed("strategy") {
		cfg.Import.Strategy = opts.strategy
	}
	if f.Changed("log-dir") {
		cfg.LogDir = opts.logDir
	}
	if err := cfg.Validate(); err != nil {
		return withCode(exitUsage, err)
	}
	return nil
}

func selection(opts importOptions) orchestrator.Selection {
	return orchestrator.Selection{Only: opts.only, StartAt: strings.TrimSpace(opts.startAt), StopAt: strings.TrimSpace(opts.stopAt)}
}

func runImport(ctx context.Context, cmd *cobra.Command, cfg *configuration.Configuration, opts importOptions) error {
	sel := selection(opts)
	if _, err := orchestrator.Build(importers.Registry(), sel); err != nil {
		return withCode(exitUsage, err)
	}

	mapper, err := codes.LoadOverrides(cfg.Import.CodeMapFile)
	if err != nil {
		return withCode(exitValidation, err)
	}

	started := time.Now()
	logPath, runLog, err := cfg.OpenRunLog(started)
	if err != nil {
		return withCode(exitWrite, err)
	}
	console := cmd.OutOrStdout()
	if opts.json {
		console = cmd.ErrOrStderr()
	}
	cfg.Logger().Infof("Run log: %s", logPath)

	legacyDB, err := connectLegacy(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = legacyDB.Close() }()

	strategy, release, err := openStrategy(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	var collector *samples.Collector
	if path := samplePath(cfg); path != "" {
		collector, err = samples.Open(path, cfg.Sample.SuccessLimit, runLog)
		if err != nil {
			return withCode(exitWrite, err)
		}
		defer func() { _ = collector.Close() }()
	}

	rep := report.New(report.Options{
		Console:      console,
		Log:          runLog,
		MetricsPath:  cfg.RunLogPath(started, "prom"),
		WorkbookPath: workbookPath(cfg, started, opts.xlsx),
	})
	deps := &importer.Deps{
		Source:   legacy.NewSource(legacyDB, cfg.Import.ChunkSize, cfg.Import.RowLimit),
		Strategy: strategy,
		Tracker:  tracker.New(),
		Codes:    mapper,
		Links:    entity.NewLinkQueue(),
		Samples:  collector,
		Log:      runLog,
		Progress: rep,
		Options: importer.Options{
			DryRun:          cfg.Import.DryRun,
			SampleOnly:      cfg.Import.SampleOnly,
			DefaultLanguage: cfg.Import.DefaultLanguage,
			ImageRoot:       cfg.Import.ImageRoot,
		},
	}
	orch, err := orchestrator.New(deps, orchestrator.Options{
		Selection: sel,
		Warmup:    cfg.Import.TrackerWarmup,
		Observer:  rep,
	})
	if err != nil {
		return err
	}

	sum, err := orch.Run(ctx)
	if err != nil {
		return withCode(exitUsage, err)
	}
	if collector != nil {
		logSampleStats(runLog, collector)
	}
	if opts.json {
		if err := writeResults(cmd.OutOrStdout(), sum); err != nil {
			return err
		}
	}
	return summaryError(sum)
}

type sampleStats interface {
	Stats() (map[string]int, error)
}

func logSampleStats(log logrus.FieldLogger, src sampleStats) {
	stats, err := src.Stats()
	if err != nil {
		log.WithError(err).Warn("Sample stats unavailable")
		return
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Infof("Samples %s: %d", k, stats[k])
	}
}

func samplePath(cfg *configuration.Configuration) string {
	if cfg.Sample.DBPath != "" {
		return cfg.Sample.DBPath
	}
	if cfg.Import.SampleOnly {
		return filepath.Join(cfg.LogDir, "samples.sqlite")
	}
	return ""
}

func workbookPath(cfg *configuration.Configuration, started time.Time, enabled bool) string {
	if !enabled {
		return ""
	}
	return cfg.RunLogPath(started, "xlsx")
}

type summaryLine struct {
	Summary     orchestrator.Totals `json:"summary"`
	Success     bool                `json:"success"`
	Failed      []string            `json:"failed"`
	Interrupted bool                `json:"interrupted"`
	DurationMS  int64               `json:"duration_ms"`
}

func writeResults(w io.Writer, sum *orchestrator.Summary) error {
	for _, r := range sum.Results {
		if err := writeJSONLine(w, r); err != nil {
			return err
		}
	}
	failed := sum.Failed()
	if failed == nil {
		failed = []string{}
	}
	return writeJSONLine(w, summaryLine{
		Summary:     sum.Totals(),
		Success:     sum.Success(),
		Failed:      failed,
		Interrupted: sum.Interrupted,
		DurationMS:  sum.Duration.Milliseconds(),
	})
}

func summaryError(sum *orchestrator.Summary) error {
	if sum.Success() {
		return nil
	}
	if sum.Interrupted {
		return withCode(exitImportErrors, fmt.Errorf("import interrupted after %d importer(s)", len(sum.Results)))
	}
	return withCode(exitImportErrors, fmt.Errorf("import finished with %d error(s) in: %s",
		sum.Totals().Errors, strings.Join(sum.Failed(), ", ")))
}
