package importers

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/codes"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/memory"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

const testChunk = 100

type harness struct {
	deps  *importer.Deps
	mock  sqlmock.Sqlmock
	store *memory.Strategy
}

func newHarness(t *testing.T, store *memory.Strategy, opts importer.Options) *harness {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "eng"
	}
	log, _ := test.NewNullLogger()
	return &harness{
		deps: &importer.Deps{
			Source:   legacy.NewSource(sqlx.NewDb(db, "mysql"), testChunk, 0),
			Strategy: store,
			Tracker:  tracker.New(),
			Codes:    codes.New(),
			Links:    entity.NewLinkQueue(),
			Log:      log,
			Options:  opts,
		},
		mock:  mock,
		store: store,
	}
}

// expect queues a single short chunk for query.
func (h *harness) expect(query string, rows *sqlmock.Rows) {
	h.mock.ExpectQuery(fmt.Sprintf("%s LIMIT %d OFFSET 0", query, testChunk)).WillReturnRows(rows)
}

func requireCounts(t *testing.T, res *importer.Result, imported, skipped, errs int) {
	t.Helper()
	require.Equal(t, imported, res.Imported, "imported; errors=%v", res.Errors)
	require.Equal(t, skipped, res.Skipped, "skipped; errors=%v", res.Errors)
	require.Len(t, res.Errors, errs, "errors=%v", res.Errors)
	require.Equal(t, imported+skipped+errs, res.Examined())
}

// seedProject stores the context, collection and project of a legacy
// project the way the project importer does.
func seedProject(t *testing.T, s *memory.Strategy, projectID string) (contextID, collectionID, projectDBID string) {
	t.Helper()
	ctx := context.Background()
	key := identity.Projects.MustKey(projectID)
	var err error
	contextID, err = s.CreateContext(ctx, entity.Context{InternalName: projectID, BackwardCompatibility: key})
	require.NoError(t, err)
	collectionID, err = s.CreateCollection(ctx, entity.Collection{ContextID: contextID, LanguageID: "eng", Type: collectionType, InternalName: projectID, BackwardCompatibility: key})
	require.NoError(t, err)
	projectDBID, err = s.CreateProject(ctx, entity.Project{ContextID: contextID, LanguageID: "eng", InternalName: projectID, BackwardCompatibility: key})
	require.NoError(t, err)
	return contextID, collectionID, projectDBID
}

func seedPartner(t *testing.T, s *memory.Strategy, key string, typ entity.PartnerType) string {
	t.Helper()
	id, err := s.CreatePartner(context.Background(), entity.Partner{Type: typ, InternalName: key, BackwardCompatibility: key, Visible: true})
	require.NoError(t, err)
	return id
}

func seedDefaultContext(t *testing.T, s *memory.Strategy) string {
	t.Helper()
	id, err := s.CreateContext(context.Background(), entity.Context{InternalName: "default", BackwardCompatibility: identity.DefaultContextKey, IsDefault: true})
	require.NoError(t, err)
	return id
}
