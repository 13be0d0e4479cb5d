package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importers"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/orchestrator"
	"github.com/iota-uz/legacy-migrate/pkg/logging"
)

func result(name string, imported, skipped, errs int) *importer.Result {
	r := importer.NewResult(name)
	r.Imported, r.Skipped = imported, skipped
	for i := 0; i < errs; i++ {
		r.AddError("mwnf3:objects:ISL:eg:12:"+string(rune('a'+i)), errors.New("missing partner"))
	}
	r.Success = errs == 0
	r.Duration = 1500 * time.Millisecond
	return r
}

func newLog() (*bytes.Buffer, *logrus.Logger) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logging.LineFormatter{})
	return &buf, l
}

func plain(b *bytes.Buffer) string {
	return pterm.RemoveColorFromString(b.String())
}

func TestCompletedLine(t *testing.T) {
	require.Equal(t, "Completed partner: 12 imported, 3 skipped, 1 errors (1.50s)", CompletedLine(result("partner", 12, 3, 1)))
}

func TestReporter_Progress(t *testing.T) {
	var console bytes.Buffer
	r := New(Options{Console: &console, Width: 4})
	for _, o := range []importer.Outcome{importer.Imported, importer.Skipped, importer.Failed, importer.Imported, importer.Imported} {
		r.Tick(o)
	}
	r.ImporterFinished(importers.Entry{Key: "glossary"}, result("glossary", 3, 1, 0))

	lines := strings.Split(plain(&console), "\n")
	require.Equal(t, ".s×.", lines[0])
	require.Equal(t, ".", lines[1])
	require.Contains(t, lines[2], "✓ glossary completed: 3 imported, 1 skipped")
}

func TestReporter_ErrorsAreTruncatedOnConsole(t *testing.T) {
	var console bytes.Buffer
	buf, log := newLog()
	r := New(Options{Console: &console, Log: log})

	r.ImporterFinished(importers.Entry{Key: "object"}, result("object", 1, 0, 8))

	out := plain(&console)
	require.Contains(t, out, "object completed with 8 errors")
	require.Equal(t, 5, strings.Count(out, "      - "))
	require.Contains(t, out, "... and 3 more errors")

	// the log keeps every error
	require.Equal(t, 8, strings.Count(buf.String(), "ERROR"))
	require.Contains(t, buf.String(), "Completed object: 1 imported, 0 skipped, 8 errors (1.50s)")
}

func TestReporter_RunLog(t *testing.T) {
	buf, log := newLog()
	r := New(Options{Console: &bytes.Buffer{}, Log: log})

	plan, err := orchestrator.Build(importers.Registry(), orchestrator.Selection{Only: []string{"glossary", "glossary-translation"}})
	require.NoError(t, err)
	r.RunStarted(plan, importer.Options{DryRun: true})
	r.PhaseStarted(plan.Phases[0])
	r.ImporterFinished(plan.Phases[0].Entries[0], result("glossary", 4, 0, 0))
	r.RunFinished(&orchestrator.Summary{
		Results:  []*importer.Result{result("glossary", 4, 0, 0), result("glossary-translation", 2, 1, 1)},
		Duration: 3 * time.Second,
	})

	out := buf.String()
	for _, want := range []string{
		"LEGACY IMPORT",
		"Mode: dry-run",
		"Importers: glossary, glossary-translation",
		"Skipping language",
		"PHASE 4: glossary, glossary-translation",
		"Completed glossary: 4 imported, 0 skipped, 0 errors (1.50s)",
		"IMPORT SUMMARY",
		"Importers: 2 run, 1 failed",
		"Imported: 6",
		"Errors:   1",
		"Duration: 3.00s",
	} {
		require.Contains(t, out, want)
	}
}

func TestReporter_WritesArtefacts(t *testing.T) {
	dir := t.TempDir()
	r := New(Options{
		Console:      &bytes.Buffer{},
		MetricsPath:  filepath.Join(dir, "import.prom"),
		WorkbookPath: filepath.Join(dir, "out", "import.xlsx"),
	})
	r.RunFinished(&orchestrator.Summary{
		Started:  time.Now(),
		Results:  []*importer.Result{result("partner", 2, 0, 0), result("object", 1, 0, 2)},
		Duration: time.Second,
	})
	require.Empty(t, r.Errs())

	prom, err := os.ReadFile(filepath.Join(dir, "import.prom"))
	require.NoError(t, err)
	require.Contains(t, string(prom), "legacy_import_last_run_timestamp_seconds")

	f, err := excelize.OpenFile(filepath.Join(dir, "out", "import.xlsx"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetSummary)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, []string{"object", "failed", "1", "0", "2", "0", "1.5"}, rows[2])
	require.Equal(t, "Total", rows[3][0])

	errRows, err := f.GetRows(sheetErrors)
	require.NoError(t, err)
	require.Len(t, errRows, 3)
	require.Equal(t, "object", errRows[1][0])
	require.Contains(t, errRows[1][1], "missing partner")
}

func TestReporter_ArtefactFailureIsRecorded(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	r := New(Options{Console: &bytes.Buffer{}, WorkbookPath: filepath.Join(blocker, "nested", "x.xlsx")})
	r.RunFinished(&orchestrator.Summary{})
	require.Len(t, r.Errs(), 1)
}
