package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hypermesh/internal/domain"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Repository persists mesh run history and node state using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

// Close closes the underlying database
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS node_states (
		address INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		repository_count INTEGER NOT NULL DEFAULT 0,
		user_count INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		heartbeat_pattern TEXT NOT NULL DEFAULT '',
		last_sync_time DATETIME,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS propagation_runs (
		id TEXT PRIMARY KEY,
		source_address INTEGER NOT NULL,
		visited_count INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sync_records (
		id TEXT PRIMARY KEY,
		pattern TEXT NOT NULL,
		synced_count INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS metrics_snapshots (
		id TEXT PRIMARY KEY,
		node_count INTEGER NOT NULL,
		active_node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL,
		total_repositories INTEGER NOT NULL,
		total_users INTEGER NOT NULL,
		network_density REAL NOT NULL,
		propagation_efficiency REAL NOT NULL,
		heartbeat_sync_ratio REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_propagation_runs_created ON propagation_runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_metrics_snapshots_created ON metrics_snapshots(created_at);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveNodeStates upserts the mutable state of every node in the topology
func (r *Repository) SaveNodeStates(ctx context.Context, t *domain.Topology) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO node_states (address, name, category, repository_count, user_count, active, heartbeat_pattern, last_sync_time, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(address) DO UPDATE SET
			name = excluded.name,
			category = excluded.category,
			repository_count = excluded.repository_count,
			user_count = excluded.user_count,
			active = excluded.active,
			heartbeat_pattern = excluded.heartbeat_pattern,
			last_sync_time = excluded.last_sync_time,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, n := range t.Nodes {
		_, err := stmt.ExecContext(ctx,
			n.Address, n.Name, n.Category, n.RepositoryCount, n.UserCount,
			boolToInt(n.Active), n.HeartbeatPattern, timePtrToNull(n.LastSyncTime))
		if err != nil {
			return fmt.Errorf("failed to save node %d: %w", n.Address, err)
		}
	}

	return tx.Commit()
}

// LoadNodeStates applies persisted mutable state onto matching addresses of
// a freshly built topology. Addresses without a persisted row are left
// untouched; persisted rows beyond the topology size are ignored.
func (r *Repository) LoadNodeStates(ctx context.Context, t *domain.Topology) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT address, active, heartbeat_pattern, last_sync_time
		FROM node_states
	`)
	if err != nil {
		return fmt.Errorf("failed to query node states: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var address, active int
		var pattern string
		var syncTime sql.NullTime

		if err := rows.Scan(&address, &active, &pattern, &syncTime); err != nil {
			return fmt.Errorf("failed to scan node state: %w", err)
		}

		node := t.Node(address)
		if node == nil {
			continue
		}
		node.Active = active != 0
		node.HeartbeatPattern = pattern
		node.LastSyncTime = nullToTimePtr(syncTime)
	}

	return rows.Err()
}

// RecordPropagation stores one propagation run and returns its ID
func (r *Repository) RecordPropagation(ctx context.Context, result *domain.PropagationResult, nodeCount int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO propagation_runs (id, source_address, visited_count, node_count)
		VALUES (?, ?, ?, ?)
	`, id, result.SourceAddress, len(result.Visited), nodeCount)
	if err != nil {
		return "", fmt.Errorf("failed to record propagation: %w", err)
	}
	return id, nil
}

// RecordSync stores one heartbeat synchronization and returns its ID
func (r *Repository) RecordSync(ctx context.Context, pattern string, syncedCount int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sync_records (id, pattern, synced_count)
		VALUES (?, ?, ?)
	`, id, pattern, syncedCount)
	if err != nil {
		return "", fmt.Errorf("failed to record sync: %w", err)
	}
	return id, nil
}

// SaveMetricsSnapshot stores one metrics snapshot and returns its ID
func (r *Repository) SaveMetricsSnapshot(ctx context.Context, m domain.NetworkMetrics) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metrics_snapshots (id, node_count, active_node_count, edge_count,
			total_repositories, total_users, network_density, propagation_efficiency, heartbeat_sync_ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, m.NodeCount, m.ActiveNodeCount, m.EdgeCount,
		m.TotalRepositories, m.TotalUsers, m.NetworkDensity, m.PropagationEfficiency, m.HeartbeatSyncRatio)
	if err != nil {
		return "", fmt.Errorf("failed to save metrics snapshot: %w", err)
	}
	return id, nil
}

// LatestMetrics returns the most recent metrics snapshot, or nil if none exists
func (r *Repository) LatestMetrics(ctx context.Context) (*domain.NetworkMetrics, error) {
	var m domain.NetworkMetrics
	err := r.db.QueryRowContext(ctx, `
		SELECT node_count, active_node_count, edge_count, total_repositories,
			total_users, network_density, propagation_efficiency, heartbeat_sync_ratio
		FROM metrics_snapshots
		ORDER BY rowid DESC
		LIMIT 1
	`).Scan(&m.NodeCount, &m.ActiveNodeCount, &m.EdgeCount, &m.TotalRepositories,
		&m.TotalUsers, &m.NetworkDensity, &m.PropagationEfficiency, &m.HeartbeatSyncRatio)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest metrics: %w", err)
	}
	return &m, nil
}

// PropagationRun is one persisted propagation record
type PropagationRun struct {
	ID            string    `json:"id"`
	SourceAddress int       `json:"source_address"`
	VisitedCount  int       `json:"visited_count"`
	NodeCount     int       `json:"node_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ListPropagationRuns returns the most recent propagation runs, newest first
func (r *Repository) ListPropagationRuns(ctx context.Context, limit int) ([]PropagationRun, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_address, visited_count, node_count, created_at
		FROM propagation_runs
		ORDER BY rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query propagation runs: %w", err)
	}
	defer rows.Close()

	var runs []PropagationRun
	for rows.Next() {
		var run PropagationRun
		if err := rows.Scan(&run.ID, &run.SourceAddress, &run.VisitedCount, &run.NodeCount, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan propagation run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
