package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/rdom/internal/config"
	"github.com/roach88/rdom/internal/dom"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewSandbox creates a quiet sandbox with a fixed ID and default metrics.
// The sandbox is closed when the test finishes.
func NewSandbox(t testing.TB) *dom.Sandbox {
	t.Helper()
	sb := dom.New(config.Default(),
		dom.WithLogger(DiscardLogger()),
		dom.WithIDGenerator(NewFixedIDGenerator("")),
	)
	t.Cleanup(sb.Close)
	return sb
}

// NewDocument returns the document of a fresh test sandbox. The sandbox is
// returned too so the caller keeps it alive.
func NewDocument(t testing.TB) (*dom.Sandbox, dom.DocumentNode) {
	t.Helper()
	sb := NewSandbox(t)
	return sb, sb.Window().Document()
}
