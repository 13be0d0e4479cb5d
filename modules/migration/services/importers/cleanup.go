package importers

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/tracker"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
)

// ProjectCleanup removes the project and root collection of every project
// whose collection ended up without items. Contexts, partners and items are
// never touched. A removed project counts as imported, a kept one as
// skipped.
type ProjectCleanup struct{ importer.Base }

func NewProjectCleanup(d *importer.Deps) importer.Importer {
	return &ProjectCleanup{importer.NewBase("project-cleanup", d)}
}

func (i *ProjectCleanup) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	projects := d.Tracker.AllForKind(entity.KindProject)
	if len(projects) == 0 {
		if snap, ok := d.Strategy.(domain.Snapshotter); ok {
			var err error
			if projects, err = snap.Snapshot(ctx, entity.KindProject); err != nil {
				return i.Finish(res, err)
			}
		}
	}

	for _, p := range projects {
		i.clean(ctx, res, p)
	}
	return i.Finish(res, nil)
}

func (i *ProjectCleanup) clean(ctx context.Context, res *importer.Result, p entity.Tracked) {
	d := i.Deps()
	if tracker.IsPlaceholder(p.ID) {
		i.MarkSkipped(res)
		return
	}
	collectionID, ok, err := i.Resolve(ctx, entity.KindCollection, p.Key)
	if err != nil {
		i.Fail(res, p.Key, err)
		return
	}
	if ok && tracker.IsPlaceholder(collectionID) {
		i.MarkSkipped(res)
		return
	}
	if ok {
		n, err := d.Strategy.CountCollectionItems(ctx, collectionID)
		if err != nil {
			i.Fail(res, p.Key, err)
			return
		}
		if n > 0 {
			i.MarkSkipped(res)
			return
		}
	}
	// !ok: the collection went in an earlier, interrupted cleanup.
	if !d.Options.Mutating() {
		i.Log().Infof("%s Would delete empty project %s", d.Options.Prefix(), p.Key)
		i.MarkImported(res)
		return
	}
	// Collection first; the project row is what the next run finds.
	if ok {
		if err := d.Strategy.Delete(ctx, entity.KindCollection, collectionID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			i.Fail(res, p.Key, err)
			return
		}
	}
	if err := d.Strategy.Delete(ctx, entity.KindProject, p.ID); err != nil {
		i.Fail(res, p.Key, err)
		return
	}
	i.Log().WithField("key", p.Key).Info("removed empty project")
	i.MarkImported(res)
}
