package dom

import "weak"

// record is the shared per-node state: one delegate per capability plus the
// payload. Record and payload are created together and live as long as any
// handle or parent child sequence references the record.
type record struct {
	SandboxMember
	NodeGraph
	ParentNode

	store Store
}

// newRecord allocates a record in two phases. The empty allocation is made
// first so its weak self-descriptor exists before the delegates that carry
// it are built; the record is then filled in a single assignment.
func newRecord(context weak.Pointer[Sandbox], store Store) *record {
	if store == nil {
		panic("dom: node created without a store")
	}

	r := new(record)
	self := weak.Make(r)
	*r = record{
		SandboxMember: SandboxMember{context: context},
		NodeGraph:     NodeGraph{self: self, context: context},
		ParentNode:    ParentNode{self: self},
		store:         store,
	}
	return r
}

// Handle is implemented by every node handle, erased or concrete.
type Handle interface {
	Any() AnyNode
}

// AnyNode is the erased handle: a reference to a node of any kind. Recover a
// concrete handle with AsElement, AsText, ... or Cast.
//
// The zero AnyNode refers to no node. Handles are comparable; two handles
// are == exactly when they refer to the same node.
type AnyNode struct {
	*record
}

// Any returns the erased handle for the node.
func (r *record) Any() AnyNode {
	return AnyNode{record: r}
}

// IsZero reports whether the handle refers to no node.
func (n AnyNode) IsZero() bool {
	return n.record == nil
}

// IsSameNode reports whether other refers to the same node as r.
func (r *record) IsSameNode(other Handle) bool {
	if other == nil {
		return false
	}
	o := other.Any()
	return o.record != nil && o.record == r
}

// NodeType returns the immutable kind tag.
func (r *record) NodeType() NodeType {
	return r.store.NodeType()
}

// NodeName returns the DOM nodeName: the tag name for elements, the name for
// attributes, doctypes and processing instructions, and "#text",
// "#comment", ... for the rest.
func (r *record) NodeName() string {
	return r.store.nodeName()
}

// Payload returns the node's store. Type-switch on it, or use Cast, to get at
// kind-specific data.
func (r *record) Payload() Store {
	return r.store
}

// CloneNode returns a new node in the same sandbox with a copy of this
// node's payload and no children. Children are deliberately not copied.
func (r *record) CloneNode() AnyNode {
	return AnyNode{record: newRecord(r.SandboxMember.context, r.store.cloneStore())}
}

// tagName returns the element tag name, or "" for non-elements.
func (r *record) tagName() string {
	if el, ok := r.store.(*ElementStore); ok {
		return el.TagName()
	}
	return ""
}
