package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/rdom/internal/dom"
	"github.com/roach88/rdom/internal/snapshot"
)

// TreeOptions holds flags for the tree command.
type TreeOptions struct {
	*RootOptions
	NoColor bool
}

// NewTreeCommand creates the tree command.
func NewTreeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TreeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "tree <fixture>",
		Short: "Build a fixture and print its node tree",
		Long: `Build a fixture (.yaml, .cue or .html) into a fresh document and print
the resulting tree in pre-order, one node per line.

Text output is colored when writing to a terminal.

Examples:
  rdom tree page.yaml
  rdom tree page.html --no-color
  rdom tree page.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "disable colored output")

	return cmd
}

func runTree(opts *TreeOptions, path string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	sb, doc, err := loadDocument(opts.RootOptions, cmd, f, path)
	if err != nil {
		return err
	}
	defer sb.Close()

	snap := snapshot.Take(doc)
	hash, err := snap.Hash()
	if err != nil {
		return fail(f, ExitCommandError, ErrCodeGeneric, "failed to hash tree", err)
	}

	return f.Success(outline{
		Snapshot: snap,
		Hash:     hash,
		color:    !opts.NoColor && useColor(cmd.OutOrStdout()),
	})
}

// outline is the tree command's result.
type outline struct {
	Snapshot snapshot.Snapshot `json:"snapshot"`
	Hash     string            `json:"hash"`
	color    bool
}

// WriteText renders the outline, colored when o.color is set.
func (o outline) WriteText(w io.Writer) error {
	if !o.color {
		return o.Snapshot.WriteText(w)
	}

	element := color.New(color.FgCyan, color.Bold)
	other := color.New(color.FgHiBlack)
	data := color.New(color.FgGreen)
	for _, c := range []*color.Color{element, other, data} {
		c.EnableColor()
	}

	for _, e := range o.Snapshot.Entries {
		var b strings.Builder
		b.WriteString(strings.Repeat("  ", e.Depth()))
		if e.Type == dom.ElementNodeType {
			b.WriteString(element.Sprint(e.Name))
		} else {
			b.WriteString(other.Sprint(e.Name))
		}
		if e.Data != "" {
			b.WriteString(" " + data.Sprint(strconv.Quote(e.Data)))
		}
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

// useColor reports whether w is a terminal and NO_COLOR is unset.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
