package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/rdom/internal/snapshot"
)

// Label records one WriteSnapshot call.
type Label struct {
	ID           string `json:"id"`
	Seq          int64  `json:"seq"`
	Label        string `json:"label"`
	SnapshotHash string `json:"snapshot_hash"`
	SandboxID    string `json:"sandbox_id"`
	NodeCount    int    `json:"node_count"`
}

// WriteSnapshot stores snap under label and returns its hash.
//
// Idempotent: a snapshot that is already stored is not written again, and a
// label/hash pair that already exists is left as is. The snapshot, its node
// rows and the label are written in one transaction.
func (s *Store) WriteSnapshot(ctx context.Context, label, sandboxID string, snap snapshot.Snapshot) (string, error) {
	canonical, err := snap.Canonical()
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	hash, err := snap.Hash()
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("write snapshot: begin: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	res, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (hash, canonical, version, node_count)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING
	`, hash, string(canonical), snap.Version, len(snap.Entries))
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if inserted == 1 {
		for i, e := range snap.Entries {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO snapshot_nodes (snapshot_hash, ord, path, node_type, name, data)
				VALUES (?, ?, ?, ?, ?, ?)
			`, hash, i, e.Path, int(e.Type), e.Name, e.Data)
			if err != nil {
				return "", fmt.Errorf("write snapshot node %d: %w", i, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_labels (id, label, snapshot_hash, sandbox_id)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(label, snapshot_hash) DO NOTHING
	`, uuid.Must(uuid.NewV7()).String(), label, hash, sandboxID)
	if err != nil {
		return "", fmt.Errorf("write snapshot label: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("write snapshot: commit: %w", err)
	}
	return hash, nil
}
