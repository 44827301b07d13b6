package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/rdom/internal/snapshot"
	"github.com/roach88/rdom/internal/store"
)

// SnapshotOptions holds flags for the snapshot command.
type SnapshotOptions struct {
	*RootOptions
	Database string
	Label    string
	List     bool
	Diff     string // stored hash to compare against
}

// SnapshotWriteResult is printed after a snapshot is stored.
type SnapshotWriteResult struct {
	Hash      string `json:"hash"`
	Label     string `json:"label"`
	Nodes     int    `json:"nodes"`
	SandboxID string `json:"sandbox_id"`
	Diff      string `json:"diff,omitempty"`
}

// WriteText prints the hash and label, then the diff if one was requested.
func (r SnapshotWriteResult) WriteText(w io.Writer) error {
	fmt.Fprintf(w, "%s  %s (%d nodes)\n", r.Hash, r.Label, r.Nodes)
	if r.Diff != "" {
		fmt.Fprint(w, r.Diff)
	}
	return nil
}

// SnapshotListResult lists stored labels.
type SnapshotListResult struct {
	Labels []store.Label `json:"labels"`
}

// WriteText prints one label per line.
func (r SnapshotListResult) WriteText(w io.Writer) error {
	if len(r.Labels) == 0 {
		_, err := fmt.Fprintln(w, "No snapshots stored.")
		return err
	}
	for _, l := range r.Labels {
		fmt.Fprintf(w, "%4d  %s  %s (%d nodes)\n", l.Seq, l.SnapshotHash[:12], l.Label, l.NodeCount)
	}
	return nil
}

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshot [fixture]",
		Short: "Store the tree built from a fixture",
		Long: `Build a fixture and store a snapshot of the document in a SQLite
database. Snapshots are content-addressed; storing the same tree again is
a no-op apart from the label.

Exit codes:
  0 - Stored (or listed), and --diff found no differences
  1 - --diff found differences
  2 - Command error (missing fixture, database error, etc.)

Examples:
  rdom snapshot page.yaml --db snaps.db
  rdom snapshot page.yaml --db snaps.db --label before-fix
  rdom snapshot page.yaml --db snaps.db --diff 3f2a...
  rdom snapshot --db snaps.db --list`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.List {
				return runSnapshotList(opts, cmd)
			}
			if len(args) != 1 {
				return NewExitError(ExitCommandError, "a fixture is required unless --list is given")
			}
			return runSnapshotWrite(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label for the snapshot (default: fixture file name)")
	cmd.Flags().BoolVar(&opts.List, "list", false, "list stored snapshots")
	cmd.Flags().StringVar(&opts.Diff, "diff", "", "compare against the stored snapshot with this hash")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSnapshotWrite(opts *SnapshotOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	sb, doc, err := loadDocument(opts.RootOptions, cmd, f, path)
	if err != nil {
		return err
	}
	defer sb.Close()

	st, err := store.Open(opts.Database)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	label := opts.Label
	if label == "" {
		base := filepath.Base(path)
		label = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ctx := cmd.Context()
	snap := snapshot.Take(doc)
	hash, err := st.WriteSnapshot(ctx, label, sb.ID(), snap)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeWriteFailed, "failed to store snapshot", err)
	}
	f.Notef("stored %s as %s", label, hash)

	result := SnapshotWriteResult{Hash: hash, Label: label, Nodes: len(snap.Entries), SandboxID: sb.ID()}
	if opts.Diff != "" {
		other, err := st.ReadSnapshot(ctx, opts.Diff)
		if errors.Is(err, store.ErrNotFound) {
			return fail(f, ExitCommandError, ErrCodeNotFound, "no stored snapshot "+opts.Diff, nil)
		}
		if err != nil {
			return fail(f, ExitCommandError, ErrCodeStore, "failed to read snapshot", err)
		}
		result.Diff = snapshot.Diff(other, snap)
	}

	if err := f.Success(result); err != nil {
		return err
	}
	if result.Diff != "" {
		return NewExitError(ExitFailure, "snapshot differs from "+opts.Diff)
	}
	return nil
}

func runSnapshotList(opts *SnapshotOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	labels, err := st.ListSnapshots(cmd.Context())
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeStore, "failed to list snapshots", err)
	}
	return f.Success(SnapshotListResult{Labels: labels})
}
