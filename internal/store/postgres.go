package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/choropleth-cli/internal/theme"
)

// Pool is the subset of pgxpool.Pool the postgres store needs; pgxmock's
// PgxPoolIface satisfies it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS styles (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveStyle(ctx context.Context, name string, style theme.Style) (*SavedStyle, error) {
	if name == "" {
		return nil, eris.New("postgres: style name is required")
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	doc, err := json.Marshal(style)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal style")
	}

	id := uuid.New().String()
	now := time.Now().UTC()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO styles (id, name, document, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET document = EXCLUDED.document, updated_at = EXCLUDED.updated_at`,
		id, name, doc, now, now,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: save style %s", name)
	}

	return s.GetStyle(ctx, name)
}

func (s *PostgresStore) GetStyle(ctx context.Context, name string) (*SavedStyle, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, document, created_at, updated_at FROM styles WHERE name = $1`, name)

	saved, err := scanPostgresStyle(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Errorf("style not found: %s", name)
		}
		return nil, eris.Wrapf(err, "postgres: get style %s", name)
	}
	return saved, nil
}

func (s *PostgresStore) ListStyles(ctx context.Context) ([]SavedStyle, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, document, created_at, updated_at FROM styles ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list styles")
	}
	defer rows.Close()

	var styles []SavedStyle
	for rows.Next() {
		saved, err := scanPostgresStyle(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan style")
		}
		styles = append(styles, *saved)
	}
	return styles, eris.Wrap(rows.Err(), "postgres: list styles")
}

func (s *PostgresStore) DeleteStyle(ctx context.Context, name string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM styles WHERE name = $1`, name)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete style %s", name)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("style not found: %s", name)
	}
	return nil
}

func scanPostgresStyle(row pgx.Row) (*SavedStyle, error) {
	var saved SavedStyle
	var doc []byte
	if err := row.Scan(&saved.ID, &saved.Name, &doc, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		return nil, err
	}
	saved.Style = theme.DefaultStyle()
	if err := json.Unmarshal(doc, &saved.Style); err != nil {
		return nil, eris.Wrapf(err, "parse style document %s", saved.Name)
	}
	return &saved, nil
}
