package importers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

func TestRegistry_Order(t *testing.T) {
	entries := Registry()
	require.NotEmpty(t, entries)

	seen := map[string]bool{}
	pos := map[string]int{}
	for i, e := range entries {
		require.False(t, seen[e.Key], "duplicate key %s", e.Key)
		seen[e.Key] = true
		pos[e.Key] = i
		require.NotNil(t, e.New, e.Key)
		require.NotEmpty(t, e.Description, e.Key)
		if i > 0 {
			require.GreaterOrEqual(t, e.Phase, entries[i-1].Phase, e.Key)
		}
	}

	require.Less(t, pos["language"], pos["project"])
	require.Less(t, pos["project"], pos["object"])
	require.Less(t, pos["partner"], pos["object"])
	require.Less(t, pos["object"], pos["object-picture"])
	require.Less(t, pos["partner"], pos["sh-partner"])
	require.Less(t, pos["monument-detail"], pos["monument-detail-picture"])
	require.Less(t, pos["sh-project"], pos["sh-object"])
	require.Less(t, pos["sh-partner"], pos["sh-partner-logo"])
	require.Less(t, pos["sh-partner"], pos["sh-object"])
	require.Less(t, pos["sh-monument"], pos["sh-monument-detail"])
	require.Less(t, pos["sh-monument"], pos["sh-monument-picture"])
	require.Less(t, pos["sh-monument-detail"], pos["sh-monument-detail-picture"])
	require.Less(t, pos["glossary"], pos["glossary-translation"])

	last := entries[len(entries)-2:]
	require.Equal(t, "partner-monument-link", last[0].Key)
	require.Equal(t, "project-cleanup", last[1].Key)
	require.Equal(t, FinalPhase, last[0].Phase)
	require.Equal(t, FinalPhase, last[1].Phase)
}

func TestRegistry_NamesMatchKeys(t *testing.T) {
	h := newHarness(t, memory.New(), importer.Options{})
	for _, e := range Registry() {
		require.Equal(t, e.Key, e.New(h.deps).Name())
	}
}
