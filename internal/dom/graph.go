package dom

import "weak"

// NodeGraph is the parent/child capability. It owns the node's children in
// document order and carries the node's weak self-descriptor, from which
// live child lists are built.
type NodeGraph struct {
	self     weak.Pointer[record]
	context  weak.Pointer[Sandbox]
	children []AnyNode
}

// FirstChild returns the first child, if any.
func (g *NodeGraph) FirstChild() (AnyNode, bool) {
	if len(g.children) == 0 {
		return AnyNode{}, false
	}
	return g.children[0], true
}

// LastChild returns the last child, if any.
func (g *NodeGraph) LastChild() (AnyNode, bool) {
	if len(g.children) == 0 {
		return AnyNode{}, false
	}
	return g.children[len(g.children)-1], true
}

// HasChildNodes reports whether the node has any children.
func (g *NodeGraph) HasChildNodes() bool {
	return len(g.children) > 0
}

// AppendChild appends child as the new last child. The child sequence keeps
// the child alive from then on. Nothing checks for cycles: appending a node
// to itself or to one of its descendants is a caller bug.
func (g *NodeGraph) AppendChild(child Handle) {
	if child == nil || child.Any().record == nil {
		panic("dom: AppendChild called with an empty node handle")
	}
	g.children = append(g.children, child.Any())
}

// ChildNodes returns a live list of this node's children. The list
// re-reads the children on every call and does not keep the node alive.
func (g *NodeGraph) ChildNodes() *NodeList {
	return newLiveNodeList(g.context, childNodesQuery{of: g.self})
}

// staticChildNodes returns the current children. The slice is shared with
// the graph and must not be modified.
func (g *NodeGraph) staticChildNodes() []AnyNode {
	return g.children
}
