package importers

import (
	"context"
	"strings"
	"time"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/identity"
	"github.com/iota-uz/legacy-migrate/modules/migration/infrastructure/legacy"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/importer"
	"github.com/iota-uz/legacy-migrate/modules/migration/services/transform"
)

// collectionType is the type given to project root collections.
const collectionType = "collection"

// projectSource is the shape shared by mwnf3 and sharing-history projects.
type projectSource struct {
	key          string
	internalName string
	launchDate   string
	enabled      bool
	names        []projectTitle
	sample       any
}

type projectTitle struct {
	lang        string
	title       string
	description string
	sample      any
}

// ProjectImporter turns each legacy project into a context, a root
// collection and a project, all stored under the project's key.
type ProjectImporter struct{ importer.Base }

func NewProjectImporter(d *importer.Deps) importer.Importer {
	return &ProjectImporter{importer.NewBase("project", d)}
}

func (i *ProjectImporter) Import(ctx context.Context) *importer.Result {
	res := i.Begin()
	d := i.Deps()

	names, err := legacy.All[legacy.ProjectName](ctx, d.Source, legacy.QueryProjectNames)
	if err != nil {
		return i.Finish(res, err)
	}
	byProject := map[string][]projectTitle{}
	for _, n := range names {
		byProject[n.ProjectID] = append(byProject[n.ProjectID], projectTitle{
			lang:        n.Lang,
			title:       transform.Inline(str(n.Name)),
			description: transform.HTMLToText(str(n.Description)),
			sample:      n,
		})
	}

	err = legacy.Each(ctx, d.Source, legacy.QueryProjects, func(row legacy.Project) error {
		key, err := identity.Projects.Key(row.ProjectID)
		if err != nil {
			i.Fail(res, "", err)
			return nil
		}
		enabled := true
		if row.Active != nil {
			enabled = transform.Flag(*row.Active)
		}
		importProject(ctx, &i.Base, res, projectSource{
			key:          key,
			internalName: firstNonEmpty(transform.Inline(str(row.Name)), row.ProjectID),
			launchDate:   str(row.LaunchDate),
			enabled:      enabled,
			names:        byProject[row.ProjectID],
			sample:       row,
		})
		return nil
	})
	return i.Finish(res, err)
}

func importProject(ctx context.Context, b *importer.Base, res *importer.Result, p projectSource) {
	d := b.Deps()
	lang := d.Options.DefaultLanguage

	ctxRec := entity.Context{InternalName: p.internalName, BackwardCompatibility: p.key}
	contextID, _, err := b.Ensure(ctx, entity.KindContext, p.key, ctxRec, func(ctx context.Context) (string, error) {
		return d.Strategy.CreateContext(ctx, ctxRec)
	})
	if err != nil {
		b.Fail(res, p.key, err)
		return
	}

	colRec := entity.Collection{
		ContextID:             contextID,
		LanguageID:            lang,
		Type:                  collectionType,
		InternalName:          p.internalName,
		BackwardCompatibility: p.key,
	}
	collectionID, _, err := b.Ensure(ctx, entity.KindCollection, p.key, colRec, func(ctx context.Context) (string, error) {
		return d.Strategy.CreateCollection(ctx, colRec)
	})
	if err != nil {
		b.Fail(res, p.key, err)
		return
	}

	launch := launchDate(p.launchDate)
	rec := entity.Project{
		ContextID:             contextID,
		LanguageID:            lang,
		InternalName:          p.internalName,
		LaunchDate:            launch,
		IsLaunched:            launch != nil,
		IsEnabled:             p.enabled,
		BackwardCompatibility: p.key,
	}
	_, outcome := b.Process(ctx, res, importer.Row{
		Kind: entity.KindProject, Key: p.key, Describe: p.internalName, Record: rec, Sample: p.sample,
		Create: func(ctx context.Context) (string, error) { return d.Strategy.CreateProject(ctx, rec) },
	})
	if outcome == importer.Failed {
		return
	}

	for _, n := range p.names {
		language, err := d.Codes.Language(n.lang)
		if err != nil {
			b.Warn(res, "%s: translation %s: %v", p.key, n.lang, err)
			continue
		}
		tr := entity.CollectionTranslation{
			CollectionID:          collectionID,
			LanguageID:            language,
			ContextID:             contextID,
			Title:                 firstNonEmpty(n.title, p.internalName),
			Description:           ptr(n.description),
			BackwardCompatibility: translationKey(p.key, n.lang),
		}
		_, _, err = b.Ensure(ctx, entity.KindCollectionTrans, tr.BackwardCompatibility, tr, func(ctx context.Context) (string, error) {
			return d.Strategy.CreateCollectionTranslation(ctx, tr)
		})
		if err != nil {
			b.Warn(res, "%s: %v", tr.BackwardCompatibility, err)
		}
	}
}

// launchDate keeps real dates only; the legacy store holds zero dates such
// as 0000-00-00.
func launchDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if len(raw) < 10 {
		return nil
	}
	t, err := time.Parse(time.DateOnly, raw[:10])
	if err != nil || t.Year() <= 1970 {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}
