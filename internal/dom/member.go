package dom

import (
	"fmt"
	"weak"
)

// Member is anything that belongs to a sandbox and can reach it.
// Sandbox, Window and every node handle implement it.
type Member interface {
	Context() (*Sandbox, error)
}

// SandboxMember is the context-access capability: a weak reference to the
// sandbox a node was created in.
type SandboxMember struct {
	context weak.Pointer[Sandbox]
}

// NewSandboxMember returns a delegate referring weakly to sb.
func NewSandboxMember(sb *Sandbox) SandboxMember {
	return SandboxMember{context: weak.Make(sb)}
}

// Context resolves the sandbox, failing with ErrSandboxDropped if it has been
// collected or closed.
func (m *SandboxMember) Context() (*Sandbox, error) {
	return resolveSandbox(m.context)
}

// WeakContext returns the unresolved sandbox reference.
func (m *SandboxMember) WeakContext() weak.Pointer[Sandbox] {
	return m.context
}

// Template builds a value inside a live sandbox. Templates are the only way
// outside code creates nodes.
type Template[T any] interface {
	Build(sb *Sandbox) T
}

// Build resolves m's sandbox and runs tpl in it.
func Build[T any](m Member, tpl Template[T]) (T, error) {
	var zero T
	sb, err := m.Context()
	if err != nil {
		return zero, err
	}
	built := tpl.Build(sb)
	sb.logger.Debug("template built", "sandbox", sb.id, "template", fmt.Sprintf("%T", tpl))
	return built, nil
}
