// Package samples captures raw legacy rows into a SQLite file for use as
// test fixtures. Collection never influences an import outcome.
package samples

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type Reason string

const (
	ReasonSuccess Reason = "success"
	ReasonWarning Reason = "warning"
	ReasonEdge    Reason = "edge"
)

const DefaultSuccessLimit = 20

const schema = `
CREATE TABLE IF NOT EXISTS legacy_samples (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	source_db TEXT,
	raw_data TEXT NOT NULL,
	sample_reason TEXT NOT NULL,
	language TEXT,
	collected_at TEXT NOT NULL,
	record_hash TEXT NOT NULL UNIQUE
);
CREATE INDEX IF NOT EXISTS idx_samples_entity ON legacy_samples(entity_type);
CREATE INDEX IF NOT EXISTS idx_samples_entity_reason ON legacy_samples(entity_type, sample_reason);
`

// foundation entity types are collected in full; later fixtures depend on them.
var foundation = map[string]bool{
	"language":             true,
	"language_translation": true,
	"country":              true,
	"country_translation":  true,
}

// Sample is one captured row.
type Sample struct {
	EntityType string
	SourceDB   string
	Data       any
	Reason     Reason
	Details    string
	Language   string
}

type Collector struct {
	db           *sqlx.DB
	log          logrus.FieldLogger
	successLimit int
	now          func() time.Time

	mu      sync.Mutex
	counts  map[string]int
	written map[string]bool
}

// Open creates the sample database at path, including missing parent
// directories, and prepares its schema.
func Open(path string, successLimit int, log logrus.FieldLogger) (*Collector, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sample dir: %w", err)
		}
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sample db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sample schema: %w", err)
	}
	if successLimit <= 0 {
		successLimit = DefaultSuccessLimit
	}
	return &Collector{
		db:           db,
		log:          log,
		successLimit: successLimit,
		now:          time.Now,
		counts:       map[string]int{},
		written:      map[string]bool{},
	}, nil
}

func (c *Collector) Close() error {
	if c == nil {
		return nil
	}
	return c.db.Close()
}

// Collect stores s unless its success quota is used up or the same raw row
// was already stored. Failures are logged and swallowed. A nil collector is
// a no-op.
func (c *Collector) Collect(s Sample) {
	if c == nil {
		return
	}
	reason := string(s.Reason)
	if s.Details != "" {
		reason += ":" + s.Details
	}
	category := s.EntityType + ":" + reason

	raw, err := json.Marshal(s.Data)
	if err != nil {
		c.log.WithError(err).WithField("entity_type", s.EntityType).Warn("sample not serialisable")
		return
	}
	sum := sha256.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.written[hash] {
		return
	}
	if s.Reason == ReasonSuccess && !foundation[s.EntityType] && c.counts[category] >= c.successLimit {
		return
	}

	source := s.SourceDB
	if source == "" {
		source = "mwnf3"
	}
	var lang *string
	if s.Language != "" {
		lang = &s.Language
	}
	_, err = c.db.Exec(`INSERT OR IGNORE INTO legacy_samples
	(entity_type, source_db, raw_data, sample_reason, language, collected_at, record_hash)
	VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.EntityType, source, string(raw), reason, lang, c.now().UTC().Format(time.RFC3339), hash,
	)
	if err != nil {
		c.log.WithError(err).WithField("entity_type", s.EntityType).Warn("failed to collect sample")
		return
	}
	c.written[hash] = true
	c.counts[category]++
}

// Stats returns stored sample counts keyed by "entity_type:reason".
func (c *Collector) Stats() (map[string]int, error) {
	var rows []struct {
		EntityType string `db:"entity_type"`
		Reason     string `db:"sample_reason"`
		Count      int    `db:"count"`
	}
	err := c.db.Select(&rows, `SELECT entity_type, sample_reason, COUNT(*) AS count
FROM legacy_samples GROUP BY entity_type, sample_reason ORDER BY entity_type, sample_reason`)
	if err != nil {
		return nil, fmt.Errorf("sample stats: %w", err)
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.EntityType+":"+r.Reason] = r.Count
	}
	return out, nil
}
