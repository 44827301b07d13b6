// Package store provides SQLite-backed storage for tree snapshots.
//
// Snapshots are content-addressed: the primary key is the snapshot hash, so
// writing the same tree twice stores it once. Each snapshot is kept twice
// over, as its canonical JSON and as one snapshot_nodes row per node, which
// lets callers search stored trees by tag name in SQL.
//
// Labels attach a human name and the producing sandbox ID to a snapshot.
// Every label row gets a UUIDv7 ID; listing orders by insertion sequence,
// never by wall-clock time.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// PRAGMA user_version holds SchemaVersion. Open stamps unversioned files and
// refuses files from a newer schema with ErrSchemaTooNew.
package store
