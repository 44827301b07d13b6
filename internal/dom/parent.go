package dom

import "weak"

// ParentNode is the capability for searching a node's subtree.
// Its operations resolve the node and its sandbox first and fail with
// ErrSandboxDropped when either is gone.
type ParentNode struct {
	self weak.Pointer[record]
}

func (p *ParentNode) resolve() (*record, error) {
	r := p.self.Value()
	if r == nil {
		return nil, ErrSandboxDropped
	}
	if _, err := r.Context(); err != nil {
		return nil, err
	}
	return r, nil
}

// ChildElementCount counts the children that are elements.
func (p *ParentNode) ChildElementCount() (int, error) {
	r, err := p.resolve()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, child := range r.staticChildNodes() {
		if child.NodeType() == ElementNodeType {
			count++
		}
	}
	return count, nil
}

// QuerySelector returns the first descendant element, in pre-order, whose
// tag name matches selectors. The node itself is never matched.
func (p *ParentNode) QuerySelector(selectors string) (ElementNode, bool, error) {
	return p.querySelector(selectors, false)
}

// QuerySelectorInclusive is QuerySelector except that the node itself is
// checked first and may be returned.
func (p *ParentNode) QuerySelectorInclusive(selectors string) (ElementNode, bool, error) {
	return p.querySelector(selectors, true)
}

func (p *ParentNode) querySelector(selectors string, inclusive bool) (ElementNode, bool, error) {
	sel, err := ParseSelector(selectors)
	if err != nil {
		return ElementNode{}, false, err
	}
	r, err := p.resolve()
	if err != nil {
		return ElementNode{}, false, err
	}

	found, ok := queryFirst(r, sel, inclusive)
	return found, ok, nil
}

// QuerySelectorAll returns a static list of every descendant element
// matching selectors, in pre-order. The node itself is never included.
func (p *ParentNode) QuerySelectorAll(selectors string) (*NodeList, error) {
	sel, err := ParseSelector(selectors)
	if err != nil {
		return nil, err
	}
	r, err := p.resolve()
	if err != nil {
		return nil, err
	}

	var matches []AnyNode
	queryAll(r, sel, &matches)
	return NewStaticNodeList(r.SandboxMember.context, matches), nil
}
