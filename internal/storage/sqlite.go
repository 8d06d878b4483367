package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"chartspec/internal/graph"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS builds (
			id TEXT PRIMARY KEY,
			chart TEXT,
			created_at INTEGER,
			options TEXT,
			spec JSON,
			skipped INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS nodes (
			build_id TEXT,
			id TEXT,
			kind TEXT,
			name TEXT,
			ord INTEGER,
			PRIMARY KEY (build_id, id)
		);`,
		`CREATE TABLE IF NOT EXISTS edges (
			build_id TEXT,
			from_id TEXT,
			to_id TEXT,
			kind TEXT,
			PRIMARY KEY (build_id, from_id, to_id, kind)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_builds_chart ON builds(chart, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- BuildStore Implementation ---

func (s *SQLiteStore) SaveBuild(ctx context.Context, b Build) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (id, chart, created_at, options, spec, skipped)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			chart=excluded.chart,
			created_at=excluded.created_at,
			options=excluded.options,
			spec=excluded.spec,
			skipped=excluded.skipped
	`, b.ID, b.Chart, b.CreatedAt.UnixNano(), string(b.Options), string(b.Spec), b.Skipped)
	return err
}

func (s *SQLiteStore) GetBuild(ctx context.Context, id string) (Build, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, chart, created_at, options, spec, skipped FROM builds WHERE id = ?", id)
	b, err := scanBuild(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, err
}

func (s *SQLiteStore) ListBuilds(ctx context.Context, chart string) ([]Build, error) {
	query := "SELECT id, chart, created_at, options, spec, skipped FROM builds"
	var args []any
	if chart != "" {
		query += " WHERE chart = ?"
		args = append(args, chart)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		b, err := scanBuild(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (Build, error) {
	var b Build
	var created int64
	var opts, spec string
	if err := row.Scan(&b.ID, &b.Chart, &created, &opts, &spec, &b.Skipped); err != nil {
		return Build{}, err
	}
	b.CreatedAt = time.Unix(0, created)
	b.Options = []byte(opts)
	b.Spec = []byte(spec)
	return b, nil
}

// --- GraphStore Implementation ---

func (s *SQLiteStore) SaveGraph(ctx context.Context, buildID string, g *graph.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// 1. Drop the previous snapshot
	for _, q := range []string{"DELETE FROM nodes WHERE build_id = ?", "DELETE FROM edges WHERE build_id = ?"} {
		if _, err := tx.ExecContext(ctx, q, buildID); err != nil {
			return err
		}
	}

	// 2. Save Nodes
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO nodes (build_id, id, kind, name, ord) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, node := range g.Nodes {
		if _, err := stmt.ExecContext(ctx, buildID, node.ID, string(node.Kind), node.Name, node.Order); err != nil {
			return err
		}
	}

	// 3. Save Edges
	// The same reference can be recorded more than once (e.g. a scale used by
	// two encode channels of one mark).
	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (build_id, from_id, to_id, kind) VALUES (?, ?, ?, ?)
		ON CONFLICT(build_id, from_id, to_id, kind) DO NOTHING
	`)
	if err != nil {
		return err
	}
	defer edgeStmt.Close()

	for _, edge := range g.Edges {
		if _, err := edgeStmt.ExecContext(ctx, buildID, edge.From, edge.To, string(edge.Kind)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadGraph(ctx context.Context, buildID string) (*graph.Graph, error) {
	g := graph.NewGraph()

	// 1. Load Nodes
	rows, err := s.db.QueryContext(ctx, "SELECT id, kind, name, ord FROM nodes WHERE build_id = ?", buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query nodes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n graph.Node
		var kind string
		if err := rows.Scan(&n.ID, &kind, &n.Name, &n.Order); err != nil {
			return nil, fmt.Errorf("failed to scan node: %w", err)
		}
		n.Kind = graph.NodeKind(kind)
		g.Nodes[n.ID] = &n
	}

	// 2. Load Edges
	edgeRows, err := s.db.QueryContext(ctx, "SELECT from_id, to_id, kind FROM edges WHERE build_id = ? ORDER BY rowid", buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var edge graph.Edge
		var kind string
		if err := edgeRows.Scan(&edge.From, &edge.To, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edge.Kind = graph.RelationKind(kind)
		g.Edges = append(g.Edges, edge)
	}

	return g, nil
}
