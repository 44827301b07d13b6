package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/rdom/internal/dom"
	"github.com/roach88/rdom/internal/snapshot"
)

// ErrNotFound is returned when a snapshot hash is not stored.
var ErrNotFound = errors.New("snapshot not found")

// ReadSnapshot returns the snapshot stored under hash.
func (s *Store) ReadSnapshot(ctx context.Context, hash string) (snapshot.Snapshot, error) {
	var canonical string
	err := s.db.QueryRowContext(ctx, `
		SELECT canonical FROM snapshots WHERE hash = ?
	`, hash).Scan(&canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return snapshot.Snapshot{}, fmt.Errorf("read snapshot %s: %w", hash, ErrNotFound)
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("read snapshot %s: %w", hash, err)
	}

	snap, err := snapshot.Parse([]byte(canonical))
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("read snapshot %s: %w", hash, err)
	}
	return snap, nil
}

// ListSnapshots returns every label in insertion order.
//
// Returns an empty slice (not nil) when nothing is stored.
func (s *Store) ListSnapshots(ctx context.Context) ([]Label, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.seq, l.label, l.snapshot_hash, l.sandbox_id, s.node_count
		FROM snapshot_labels l
		JOIN snapshots s ON s.hash = l.snapshot_hash
		ORDER BY l.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query labels: %w", err)
	}
	defer rows.Close()

	labels := []Label{}
	for rows.Next() {
		var l Label
		if err := rows.Scan(&l.ID, &l.Seq, &l.Label, &l.SnapshotHash, &l.SandboxID, &l.NodeCount); err != nil {
			return nil, fmt.Errorf("scan label: %w", err)
		}
		labels = append(labels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate labels: %w", err)
	}
	return labels, nil
}

// FindByName returns the stored entries named name (an element tag name,
// "#text", ...) across all snapshots, ordered by snapshot hash then
// pre-order position. Keys are snapshot hashes.
func (s *Store) FindByName(ctx context.Context, name string) (map[string][]snapshot.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT snapshot_hash, path, node_type, name, data
		FROM snapshot_nodes
		WHERE name = ?
		ORDER BY snapshot_hash COLLATE BINARY ASC, ord ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query nodes: %w", err)
	}
	defer rows.Close()

	found := make(map[string][]snapshot.Entry)
	for rows.Next() {
		var (
			hash     string
			e        snapshot.Entry
			nodeType int
		)
		if err := rows.Scan(&hash, &e.Path, &nodeType, &e.Name, &e.Data); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		e.Type = dom.NodeType(nodeType)
		found[hash] = append(found[hash], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return found, nil
}
