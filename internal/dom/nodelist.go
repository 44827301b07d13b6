package dom

import (
	"iter"
	"slices"
	"weak"
)

// NodeList is a DOM NodeList, either static or live.
//
// A static list owns a snapshot of handles taken when it was created and
// never changes. A live list owns only a query and re-runs it on every
// call, so it reflects mutations made after it was created. A live list
// does not keep the node it queries alive; if that node is gone the list
// is simply empty.
type NodeList struct {
	context weak.Pointer[Sandbox]
	static  []AnyNode
	query   Query
}

// Query describes what a live NodeList re-evaluates.
// Sealed: the only query today is the children of a node.
type Query interface {
	nodes() []AnyNode
}

type childNodesQuery struct {
	of weak.Pointer[record]
}

func (q childNodesQuery) nodes() []AnyNode {
	r := q.of.Value()
	if r == nil {
		return nil
	}
	return r.staticChildNodes()
}

// NewStaticNodeList returns a frozen list of nodes. The slice is copied.
func NewStaticNodeList(context weak.Pointer[Sandbox], nodes []AnyNode) *NodeList {
	return &NodeList{context: context, static: slices.Clone(nodes)}
}

func newLiveNodeList(context weak.Pointer[Sandbox], query Query) *NodeList {
	return &NodeList{context: context, query: query}
}

// IsLive reports whether the list re-evaluates its query on each call.
func (l *NodeList) IsLive() bool {
	return l.query != nil
}

// Context resolves the sandbox the list belongs to.
func (l *NodeList) Context() (*Sandbox, error) {
	return resolveSandbox(l.context)
}

func (l *NodeList) current() []AnyNode {
	if l.query != nil {
		return l.query.nodes()
	}
	return l.static
}

// Length returns the number of nodes in the list.
func (l *NodeList) Length() int {
	return len(l.current())
}

// Item returns the node at index, if there is one.
func (l *NodeList) Item(index int) (AnyNode, bool) {
	nodes := l.current()
	if index < 0 || index >= len(nodes) {
		return AnyNode{}, false
	}
	return nodes[index], true
}

// All iterates over the list. A live list is evaluated once, when iteration
// starts.
func (l *NodeList) All() iter.Seq2[int, AnyNode] {
	return func(yield func(int, AnyNode) bool) {
		for i, n := range l.current() {
			if !yield(i, n) {
				return
			}
		}
	}
}
