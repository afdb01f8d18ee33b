package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS styles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	document   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_styles_name ON styles(name);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveStyle(ctx context.Context, name string, style theme.Style) (*SavedStyle, error) {
	if name == "" {
		return nil, eris.New("sqlite: style name is required")
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	doc, err := json.Marshal(style)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal style")
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO styles (id, name, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		id, name, string(doc), now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: save style %s", name)
	}

	return s.GetStyle(ctx, name)
}

func (s *SQLiteStore) GetStyle(ctx context.Context, name string) (*SavedStyle, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM styles WHERE name = ?`, name)

	saved, err := scanStyle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("style not found: %s", name)
		}
		return nil, eris.Wrapf(err, "sqlite: get style %s", name)
	}
	return saved, nil
}

func (s *SQLiteStore) ListStyles(ctx context.Context) ([]SavedStyle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, document, created_at, updated_at FROM styles ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list styles")
	}
	defer rows.Close() //nolint:errcheck

	var styles []SavedStyle
	for rows.Next() {
		saved, err := scanStyle(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan style")
		}
		styles = append(styles, *saved)
	}
	return styles, eris.Wrap(rows.Err(), "sqlite: list styles")
}

func (s *SQLiteStore) DeleteStyle(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM styles WHERE name = ?`, name)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete style %s", name)
	}
	return checkRowsAffected(res, "style", name)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanStyle(row scannable) (*SavedStyle, error) {
	var saved SavedStyle
	var doc string
	if err := row.Scan(&saved.ID, &saved.Name, &doc, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		return nil, err
	}
	saved.Style = theme.DefaultStyle()
	if err := json.Unmarshal([]byte(doc), &saved.Style); err != nil {
		return nil, eris.Wrapf(err, "parse style document %s", saved.Name)
	}
	return &saved, nil
}

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}
