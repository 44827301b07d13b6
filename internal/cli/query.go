package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rdom/internal/dom"
	"github.com/roach88/rdom/internal/snapshot"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	All  bool   // use QuerySelectorAll
	Root string // selector for the search root; empty means the document
}

// QueryResult is the query command's result.
type QueryResult struct {
	Selector string              `json:"selector"`
	Count    int                 `json:"count"`
	Matches  []snapshot.Snapshot `json:"matches"`
}

// WriteText prints each match as an outline, separated by blank lines.
func (r QueryResult) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d match(es) for %s\n", r.Count, r.Selector); err != nil {
		return err
	}
	for _, m := range r.Matches {
		fmt.Fprintln(w)
		if err := m.WriteText(w); err != nil {
			return err
		}
	}
	return nil
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <fixture> <selector>",
		Short: "Find elements by tag name",
		Long: `Build a fixture and run querySelector (or querySelectorAll with --all)
on the document. The selector is a single tag name; letters and digits only,
matched case-insensitively.

Exit codes:
  0 - At least one element matched
  1 - No match, or the selector is invalid
  2 - Command error (missing fixture, etc.)

Examples:
  rdom query page.yaml button
  rdom query page.yaml button --all
  rdom query page.html span --root body --format json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "return every match in document order")
	cmd.Flags().StringVar(&opts.Root, "root", "", "search under the first element matching this selector")

	return cmd
}

func runQuery(opts *QueryOptions, path, selector string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	sel, err := dom.ParseSelector(selector)
	if err != nil {
		return fail(f, ExitFailure, ErrCodeSelector, "invalid selector", err)
	}

	sb, doc, err := loadDocument(opts.RootOptions, cmd, f, path)
	if err != nil {
		return err
	}
	defer sb.Close()

	root := doc.Any()
	if opts.Root != "" {
		el, ok, err := doc.QuerySelector(opts.Root)
		if err != nil {
			return fail(f, ExitFailure, ErrCodeSelector, "invalid root selector", err)
		}
		if !ok {
			return fail(f, ExitFailure, ErrCodeNotFound, "root not found: "+opts.Root, nil)
		}
		root = el.Any()
	}

	matches, err := query(root, selector, opts.All)
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeGeneric, "query failed", err)
	}

	result := QueryResult{Selector: sel.String(), Count: len(matches), Matches: make([]snapshot.Snapshot, 0, len(matches))}
	for _, m := range matches {
		result.Matches = append(result.Matches, snapshot.Take(m))
	}
	if err := f.Success(result); err != nil {
		return err
	}

	if result.Count == 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("no element matches %s", result.Selector))
	}
	return nil
}

func query(root dom.AnyNode, selector string, all bool) ([]dom.AnyNode, error) {
	if all {
		list, err := root.QuerySelectorAll(selector)
		if err != nil {
			return nil, err
		}
		var out []dom.AnyNode
		for _, n := range list.All() {
			out = append(out, n)
		}
		return out, nil
	}

	el, ok, err := root.QuerySelector(selector)
	if err != nil || !ok {
		return nil, err
	}
	return []dom.AnyNode{el.Any()}, nil
}
