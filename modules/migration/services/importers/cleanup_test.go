package importers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

func TestProjectCleanup_RemovesOnlyEmptyProjects(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	_, fullCollection, _ := seedProject(t, s, "ISL")
	seedProject(t, s, "EMPTY")
	_, err := s.CreateItem(ctx, entity.Item{Type: entity.ItemObject, InternalName: "Bowl", CollectionID: &fullCollection, BackwardCompatibility: "mwnf3:objects:ISL:eg:1:1"})
	require.NoError(t, err)

	dry := newHarness(t, s, importer.Options{DryRun: true})
	res := NewProjectCleanup(dry.deps).Import(ctx)
	requireCounts(t, res, 1, 1, 0)
	require.Zero(t, s.Calls()["Delete"])

	h := newHarness(t, s, importer.Options{})
	res = NewProjectCleanup(h.deps).Import(ctx)
	requireCounts(t, res, 1, 1, 0)
	require.Equal(t, 1, s.Len(entity.KindProject))
	require.Equal(t, 1, s.Len(entity.KindCollection))
	_, ok := s.Get(entity.KindProject, "mwnf3:projects:EMPTY")
	require.False(t, ok)
	// contexts are kept
	require.Equal(t, 2, s.Len(entity.KindContext))
}

func TestProjectCleanup_FinishesAfterInterruptedRun(t *testing.T) {
	s := memory.New()
	seedProject(t, s, "EMP")
	key := identity.Projects.MustKey("EMP")

	s.DeleteErr[entity.KindProject] = fmt.Errorf("connection reset")
	first := newHarness(t, s, importer.Options{})
	res := NewProjectCleanup(first.deps).Import(context.Background())
	requireCounts(t, res, 0, 0, 1)

	_, ok := s.Get(entity.KindCollection, key)
	require.False(t, ok, "collection goes first")
	_, ok = s.Get(entity.KindProject, key)
	require.True(t, ok)

	delete(s.DeleteErr, entity.KindProject)
	second := newHarness(t, s, importer.Options{})
	res = NewProjectCleanup(second.deps).Import(context.Background())
	requireCounts(t, res, 1, 0, 0)
	_, ok = s.Get(entity.KindProject, key)
	require.False(t, ok)
}
