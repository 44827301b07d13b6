package dom

import (
	"log/slog"
	"sync/atomic"
	"weak"

	"github.com/google/uuid"

	"github.com/roach88/rdom/internal/config"
)

// IDGenerator produces opaque sandbox identities.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 sandbox IDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Sandbox is the isolated domain a node tree belongs to. It owns the
// window, which owns the document; nodes only refer back to it weakly.
type Sandbox struct {
	id      string
	metrics config.ScreenMetrics
	logger  *slog.Logger
	window  *Window
	closed  atomic.Bool
}

// Option configures a Sandbox.
type Option func(*sandboxOptions)

type sandboxOptions struct {
	logger *slog.Logger
	ids    IDGenerator
}

// WithLogger sets the logger used for sandbox diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *sandboxOptions) { o.logger = logger }
}

// WithIDGenerator overrides how the sandbox identity is generated.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *sandboxOptions) { o.ids = ids }
}

// New creates a sandbox together with its window and document.
func New(metrics config.ScreenMetrics, opts ...Option) *Sandbox {
	o := sandboxOptions{
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	sb := &Sandbox{
		id:      o.ids.Generate(),
		metrics: metrics,
		logger:  o.logger,
	}
	// The window needs a weak reference to a sandbox that already has an
	// address, so it is attached after allocation.
	sb.window = newWindow(weak.Make(sb))

	sb.logger.Debug("sandbox created", "sandbox", sb.id)
	return sb
}

// ID returns the sandbox identity.
func (s *Sandbox) ID() string {
	return s.id
}

// Metrics returns the screen metrics the sandbox was created with.
func (s *Sandbox) Metrics() config.ScreenMetrics {
	return s.metrics
}

// Window returns the sandbox's window.
func (s *Sandbox) Window() *Window {
	return s.window
}

// Logger returns the sandbox logger.
func (s *Sandbox) Logger() *slog.Logger {
	return s.logger
}

// Context returns s itself, or ErrSandboxDropped once s has been closed.
// It lets a Sandbox be used wherever a Member is expected.
func (s *Sandbox) Context() (*Sandbox, error) {
	if s == nil || s.closed.Load() {
		return nil, ErrSandboxDropped
	}
	return s, nil
}

// Close tears the sandbox down. Afterwards every node created in it fails
// sandbox-dependent operations with ErrSandboxDropped, exactly as if the
// sandbox had been collected. Close is idempotent.
func (s *Sandbox) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.logger.Info("sandbox closed", "sandbox", s.id)
	}
}

// Closed reports whether Close has been called.
func (s *Sandbox) Closed() bool {
	return s.closed.Load()
}

// resolveSandbox upgrades a weak sandbox reference.
func resolveSandbox(ref weak.Pointer[Sandbox]) (*Sandbox, error) {
	return ref.Value().Context()
}
