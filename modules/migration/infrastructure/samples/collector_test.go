package samples

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func openTestCollector(t *testing.T, limit int) *Collector {
	t.Helper()
	log, _ := test.NewNullLogger()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "samples.db"), limit, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCollector_SuccessQuota(t *testing.T) {
	c := openTestCollector(t, 2)
	for i := 0; i < 5; i++ {
		c.Collect(Sample{EntityType: "object", Data: map[string]int{"n": i}, Reason: ReasonSuccess})
	}
	for i := 0; i < 3; i++ {
		c.Collect(Sample{EntityType: "object", Data: map[string]int{"w": i}, Reason: ReasonWarning, Details: "missing_name"})
	}

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, map[string]int{
		"object:success":              2,
		"object:warning:missing_name": 3,
	}, stats)
}

func TestCollector_FoundationIsUncapped(t *testing.T) {
	c := openTestCollector(t, 1)
	for _, code := range []string{"en", "fr", "ar"} {
		c.Collect(Sample{EntityType: "language", Data: map[string]string{"lang_id": code}, Reason: ReasonSuccess})
	}
	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, 3, stats["language:success"])
}

func TestCollector_DeduplicatesRawRows(t *testing.T) {
	c := openTestCollector(t, 10)
	row := map[string]string{"word_id": "1"}
	c.Collect(Sample{EntityType: "glossary", Data: row, Reason: ReasonSuccess})
	c.Collect(Sample{EntityType: "glossary", Data: row, Reason: ReasonEdge})

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, map[string]int{"glossary:success": 1}, stats)
}

func TestCollector_UnserialisableIsLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	c, err := Open(filepath.Join(t.TempDir(), "s.db"), 5, log)
	require.NoError(t, err)
	defer c.Close()

	c.Collect(Sample{EntityType: "object", Data: make(chan int), Reason: ReasonSuccess})
	require.Len(t, hook.Entries, 1)
	require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestCollector_NilIsNoop(t *testing.T) {
	var c *Collector
	c.Collect(Sample{EntityType: "object", Data: 1, Reason: ReasonSuccess})
	require.NoError(t, c.Close())
}
