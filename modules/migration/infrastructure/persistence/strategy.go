// Package persistence writes migrated entities straight into the target
// PostgreSQL database.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/iota-uz/legacy-migrate/modules/migration/domain"
	"github.com/iota-uz/legacy-migrate/modules/migration/domain/entity"
)

const connectTimeout = 10 * time.Second

// Strategy implements domain.Strategy over sqlx. Every write runs in its
// own statement; only Attach uses a transaction.
type Strategy struct {
	db *sqlx.DB
}

var (
	_ domain.Strategy    = (*Strategy)(nil)
	_ domain.Snapshotter = (*Strategy)(nil)
	_ domain.Pinger      = (*Strategy)(nil)
)

// Open connects to the target database through the pgx stdlib driver.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect target db: %w", err)
	}
	return db, nil
}

func NewStrategy(db *sqlx.DB) *Strategy {
	return &Strategy{db: db}
}

func (s *Strategy) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Strategy) FindByCanonicalKey(ctx context.Context, kind entity.Kind, key string) (string, bool, error) {
	t, err := lookupTable(kind)
	if err != nil {
		return "", false, err
	}
	var id string
	err = s.db.GetContext(ctx, &id, t.findSQL(kind), key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find %s %s: %w", kind, key, mapPgError(err))
	}
	return id, true, nil
}

func (s *Strategy) Snapshot(ctx context.Context, kind entity.Kind) ([]entity.Tracked, error) {
	t, err := lookupTable(kind)
	if err != nil {
		return nil, err
	}
	var rows []struct {
		Key string `db:"key"`
		ID  string `db:"id"`
	}
	if err := s.db.SelectContext(ctx, &rows, t.snapshotSQL(kind)); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", kind, mapPgError(err))
	}
	out := make([]entity.Tracked, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.Tracked{Kind: kind, Key: r.Key, ID: r.ID})
	}
	return out, nil
}

func (s *Strategy) insert(ctx context.Context, kind entity.Kind, id string, rec any) (string, error) {
	t, err := lookupTable(kind)
	if err != nil {
		return "", err
	}
	if _, err := s.db.NamedExecContext(ctx, t.insertSQL(), rec); err != nil {
		return "", fmt.Errorf("insert %s: %w", kind, mapPgError(err))
	}
	return id, nil
}

func (s *Strategy) CreateLanguage(ctx context.Context, rec entity.Language) (string, error) {
	return s.insert(ctx, entity.KindLanguage, rec.ID, rec)
}

func (s *Strategy) CreateLanguageTranslation(ctx context.Context, rec entity.LanguageTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindLanguageTranslation, rec.ID, rec)
}

func (s *Strategy) CreateCountry(ctx context.Context, rec entity.Country) (string, error) {
	return s.insert(ctx, entity.KindCountry, rec.ID, rec)
}

func (s *Strategy) CreateCountryTranslation(ctx context.Context, rec entity.CountryTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindCountryTranslation, rec.ID, rec)
}

func (s *Strategy) CreateContext(ctx context.Context, rec entity.Context) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindContext, rec.ID, rec)
}

func (s *Strategy) CreateCollection(ctx context.Context, rec entity.Collection) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindCollection, rec.ID, rec)
}

func (s *Strategy) CreateCollectionTranslation(ctx context.Context, rec entity.CollectionTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindCollectionTrans, rec.ID, rec)
}

func (s *Strategy) CreateProject(ctx context.Context, rec entity.Project) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindProject, rec.ID, rec)
}

func (s *Strategy) CreatePartner(ctx context.Context, rec entity.Partner) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindPartner, rec.ID, rec)
}

func (s *Strategy) CreatePartnerTranslation(ctx context.Context, rec entity.PartnerTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindPartnerTranslation, rec.ID, rec)
}

func (s *Strategy) CreateItem(ctx context.Context, rec entity.Item) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindItem, rec.ID, rec)
}

func (s *Strategy) CreateItemTranslation(ctx context.Context, rec entity.ItemTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindItemTranslation, rec.ID, rec)
}

func (s *Strategy) CreateTag(ctx context.Context, rec entity.Tag) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindTag, rec.ID, rec)
}

func (s *Strategy) CreateAuthor(ctx context.Context, rec entity.Author) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindAuthor, rec.ID, rec)
}

func (s *Strategy) CreateArtist(ctx context.Context, rec entity.Artist) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindArtist, rec.ID, rec)
}

func (s *Strategy) CreateItemImage(ctx context.Context, rec entity.Image) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindItemImage, rec.ID, rec)
}

func (s *Strategy) CreatePartnerImage(ctx context.Context, rec entity.Image) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindPartnerImage, rec.ID, rec)
}

func (s *Strategy) CreateGlossary(ctx context.Context, rec entity.Glossary) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindGlossary, rec.ID, rec)
}

func (s *Strategy) CreateGlossaryTranslation(ctx context.Context, rec entity.GlossaryTranslation) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindGlossaryTranslation, rec.ID, rec)
}

func (s *Strategy) CreateGlossarySpelling(ctx context.Context, rec entity.GlossarySpelling) (string, error) {
	rec.ID = uuid.NewString()
	return s.insert(ctx, entity.KindGlossarySpelling, rec.ID, rec)
}

func (s *Strategy) Attach(ctx context.Context, parentID string, childIDs []string, rel entity.Relation) error {
	p, ok := pivots[rel]
	if !ok {
		return fmt.Errorf("no pivot for relation %q", rel)
	}
	if len(childIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		p.name, p.parent, p.child,
	)
	if p.extra != "" {
		query = fmt.Sprintf(
			"INSERT INTO %s (%s, %s, collection_type) VALUES ($1, $2, %s) ON CONFLICT DO NOTHING",
			p.name, p.parent, p.child, p.extra,
		)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("attach %s: %w", rel, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, child := range childIDs {
		if _, err := tx.ExecContext(ctx, query, parentID, child); err != nil {
			return fmt.Errorf("attach %s %s->%s: %w", rel, parentID, child, mapPgError(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("attach %s: %w", rel, err)
	}
	return nil
}

func (s *Strategy) UpdatePartnerMonumentItem(ctx context.Context, partnerID, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE partners SET monument_item_id = $1, updated_at = now() WHERE id = $2",
		itemID, partnerID,
	)
	if err != nil {
		return fmt.Errorf("update partner %s: %w", partnerID, mapPgError(err))
	}
	return requireAffected(res, entity.KindPartner, partnerID)
}

// CountCollectionItems counts items owned by the collection plus items
// attached through the pivot.
func (s *Strategy) CountCollectionItems(ctx context.Context, collectionID string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT
	(SELECT count(*) FROM items WHERE collection_id = $1) +
	(SELECT count(*) FROM collection_item WHERE collection_id = $1)`, collectionID)
	if err != nil {
		return 0, fmt.Errorf("count collection %s items: %w", collectionID, mapPgError(err))
	}
	return n, nil
}

func (s *Strategy) Delete(ctx context.Context, kind entity.Kind, id string) error {
	t, err := lookupTable(kind)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.name), id)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", kind, id, mapPgError(err))
	}
	return requireAffected(res, kind, id)
}

func requireAffected(res sql.Result, kind entity.Kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return nil
}
