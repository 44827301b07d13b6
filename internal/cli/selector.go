package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/rdom/internal/dom"
)

// SelectorResult is the selector command's result.
type SelectorResult struct {
	Input   string `json:"input"`
	TagName string `json:"tag_name"`
}

// WriteText prints the normalized tag name.
func (r SelectorResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.TagName)
	return err
}

// NewSelectorCommand creates the selector command.
func NewSelectorCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "selector <selector>",
		Short: "Validate a selector and print its tag name",
		Long: `Validate a query selector without building a document.

Exit codes:
  0 - Valid selector
  1 - Invalid selector

Examples:
  rdom selector button     # BUTTON
  rdom selector "div.x"    # error`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)
			sel, err := dom.ParseSelector(args[0])
			if err != nil {
				return fail(f, ExitFailure, ErrCodeSelector, "invalid selector", err)
			}
			return f.Success(SelectorResult{Input: args[0], TagName: sel.String()})
		},
	}
	return cmd
}
