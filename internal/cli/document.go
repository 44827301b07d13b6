package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rdom/internal/dom"
	"github.com/roach88/rdom/internal/fixture"
)

// loadDocument creates a sandbox from the global flags and applies the
// fixture at path to its document. The caller must Close the sandbox.
func loadDocument(opts *RootOptions, cmd *cobra.Command, f *OutputFormatter, path string) (*dom.Sandbox, dom.DocumentNode, error) {
	metrics, err := opts.screenMetrics()
	if err != nil {
		return nil, dom.DocumentNode{}, fail(f, ExitCommandError, ErrCodeConfig, "invalid metrics config", err)
	}

	trees, err := fixture.LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, dom.DocumentNode{}, fail(f, ExitCommandError, ErrCodeNotFound, "fixture not found: "+path, nil)
	}
	if err != nil {
		return nil, dom.DocumentNode{}, fail(f, ExitCommandError, ErrCodeFixture, "failed to load fixture", err)
	}

	logger := opts.logger(cmd.ErrOrStderr())
	sb := dom.New(metrics, dom.WithLogger(logger))
	doc := sb.Window().Document()
	f.SandboxID = sb.ID()

	created, err := fixture.Apply(doc, trees...)
	if err != nil {
		sb.Close()
		return nil, dom.DocumentNode{}, fail(f, ExitCommandError, ErrCodeFixture, "failed to apply fixture", err)
	}
	logger.Debug("fixture applied", "path", path, "nodes", created, "sandbox", sb.ID())

	return sb, doc, nil
}
