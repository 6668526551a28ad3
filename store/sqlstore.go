package store

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/CTAG07/wisp"
)

const schemaTemplates = `
CREATE TABLE IF NOT EXISTS templates (
    name       TEXT PRIMARY KEY,
    source     TEXT NOT NULL,
    revision   TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);
`

// SetupSchema creates the templates table if it doesn't already exist. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaTemplates); err != nil {
		return fmt.Errorf("wisp/store: could not create schema: %w", err)
	}
	return nil
}

// SQLStore is a wisp.Registry backed by a SQL database, keyed by template
// name. It parses on write (Add/Replace) so a syntactically invalid template
// never reaches storage, and caches nothing itself: every Get is a fresh
// parse of the row it finds. Callers that render frequently should sit a
// Manager (which caches parsed trees) in front of a SQLStore rather than use
// it directly as a Renderer's Registry.
type SQLStore struct {
	db *sql.DB

	stmtGet      *sql.Stmt
	stmtList     *sql.Stmt
	stmtInsert   *sql.Stmt
	stmtUpdate   *sql.Stmt
	stmtDelete   *sql.Stmt
	stmtExists   *sql.Stmt
	stmtCorpus   *sql.Stmt
	stmtRevision *sql.Stmt

	logger *slog.Logger
}

// OpenSQLStore opens (or creates) a sqlite database at dataSource using the
// build-tag-selected driver, sets up its schema, and returns a ready
// SQLStore.
func OpenSQLStore(dataSource string, logger *slog.Logger) (*SQLStore, error) {
	db, err := openDB(dataSource)
	if err != nil {
		return nil, fmt.Errorf("wisp/store: open database: %w", err)
	}
	if err := SetupSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLStore(db, logger)
}

// NewSQLStore wraps an already-open, already-migrated *sql.DB. It prepares
// all the statements SQLStore needs, returning an error if any preparation
// fails.
func NewSQLStore(db *sql.DB, logger *slog.Logger) (*SQLStore, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &SQLStore{db: db, logger: logger}

	prep := func(query string) (*sql.Stmt, error) {
		return db.Prepare(query)
	}
	var err error
	if s.stmtGet, err = prep(`SELECT source FROM templates WHERE name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtList, err = prep(`SELECT name FROM templates ORDER BY name;`); err != nil {
		return nil, err
	}
	if s.stmtInsert, err = prep(`INSERT INTO templates (name, source, revision, updated_at) VALUES (?, ?, ?, ?);`); err != nil {
		return nil, err
	}
	if s.stmtUpdate, err = prep(`UPDATE templates SET source = ?, revision = ?, updated_at = ? WHERE name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtDelete, err = prep(`DELETE FROM templates WHERE name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtExists, err = prep(`SELECT 1 FROM templates WHERE name = ?;`); err != nil {
		return nil, err
	}
	if s.stmtCorpus, err = prep(`SELECT coalesce(SUM(LENGTH(source)), 0) FROM templates;`); err != nil {
		return nil, err
	}
	if s.stmtRevision, err = prep(`SELECT revision FROM templates WHERE name = ?;`); err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases all prepared statements held by the SQLStore. It does not
// close the underlying *sql.DB, which the caller opened and owns.
func (s *SQLStore) Close() {
	for _, stmt := range []*sql.Stmt{
		s.stmtGet, s.stmtList, s.stmtInsert, s.stmtUpdate,
		s.stmtDelete, s.stmtExists, s.stmtCorpus, s.stmtRevision,
	} {
		_ = stmt.Close()
	}
}

// Get implements wisp.Registry by parsing the stored source for name on
// every call.
func (s *SQLStore) Get(name string) (*wisp.Template, bool) {
	var source string
	if err := s.stmtGet.QueryRow(name).Scan(&source); err != nil {
		return nil, false
	}
	tmpl, err := wisp.Parse(source)
	if err != nil {
		s.logger.Error("stored template failed to parse", "name", name, "error", err)
		return nil, false
	}
	return tmpl, true
}

// Source returns the raw, unparsed template source stored under name.
func (s *SQLStore) Source(name string) (string, bool) {
	var source string
	if err := s.stmtGet.QueryRow(name).Scan(&source); err != nil {
		return "", false
	}
	return source, true
}

// List implements wisp.Lister, returning stored template names in
// lexicographic order.
func (s *SQLStore) List() []string {
	rows, err := s.stmtList.Query()
	if err != nil {
		s.logger.Error("failed to list templates", "error", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			s.logger.Error("failed to scan template name", "error", err)
			return names
		}
		names = append(names, name)
	}
	return names
}

// Revision returns the current revision UUID stored for name.
func (s *SQLStore) Revision(name string) (string, bool) {
	var rev string
	if err := s.stmtRevision.QueryRow(name).Scan(&rev); err != nil {
		return "", false
	}
	return rev, true
}

// Add parses source and inserts it under name, failing with a
// *wisp.RenderError of KindDuplicateTemplate if name is already present, or
// a *wisp.ParseError if source doesn't parse. A bad template never reaches
// the database.
func (s *SQLStore) Add(name, source string) error {
	if _, err := wisp.Parse(source); err != nil {
		return err
	}
	var exists int
	if err := s.stmtExists.QueryRow(name).Scan(&exists); err == nil {
		return &wisp.RenderError{Template: name, Kind: wisp.KindDuplicateTemplate}
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("wisp/store: check existing template: %w", err)
	}
	rev := uuid.NewString()
	if _, err := s.stmtInsert.Exec(name, source, rev, time.Now().Unix()); err != nil {
		return fmt.Errorf("wisp/store: insert template %q: %w", name, err)
	}
	s.logger.Info("template added", "name", name, "revision", rev)
	return nil
}

// Replace parses source and inserts or overwrites it under name
// unconditionally, stamping a fresh revision UUID either way.
func (s *SQLStore) Replace(name, source string) error {
	if _, err := wisp.Parse(source); err != nil {
		return err
	}
	rev := uuid.NewString()
	now := time.Now().Unix()

	var exists int
	err := s.stmtExists.QueryRow(name).Scan(&exists)
	switch {
	case err == nil:
		if _, err := s.stmtUpdate.Exec(source, rev, now, name); err != nil {
			return fmt.Errorf("wisp/store: update template %q: %w", name, err)
		}
	case err == sql.ErrNoRows:
		if _, err := s.stmtInsert.Exec(name, source, rev, now); err != nil {
			return fmt.Errorf("wisp/store: insert template %q: %w", name, err)
		}
	default:
		return fmt.Errorf("wisp/store: check existing template: %w", err)
	}
	s.logger.Info("template replaced", "name", name, "revision", rev)
	return nil
}

// Remove deletes name from the store, if present.
func (s *SQLStore) Remove(name string) error {
	if _, err := s.stmtDelete.Exec(name); err != nil {
		return fmt.Errorf("wisp/store: delete template %q: %w", name, err)
	}
	return nil
}

// corpusBytes returns the total byte size of all stored template sources.
func (s *SQLStore) corpusBytes() int64 {
	var total int64
	if err := s.stmtCorpus.QueryRow().Scan(&total); err != nil {
		return 0
	}
	return total
}
