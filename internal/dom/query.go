package dom

// queryFirst walks the subtree under root in pre-order and returns the first
// matching element. With inclusive set, root itself is checked before its
// children.
func queryFirst(root *record, sel Selector, inclusive bool) (ElementNode, bool) {
	if inclusive {
		if el, ok := matchElement(root, sel); ok {
			return el, true
		}
	}
	for _, child := range root.staticChildNodes() {
		if el, ok := queryFirst(child.record, sel, true); ok {
			return el, true
		}
	}
	return ElementNode{}, false
}

// queryAll appends every matching descendant of root, in pre-order.
func queryAll(root *record, sel Selector, out *[]AnyNode) {
	for _, child := range root.staticChildNodes() {
		if sel.MatchesTagName(child.tagName()) {
			*out = append(*out, child)
		}
		queryAll(child.record, sel, out)
	}
}

func matchElement(r *record, sel Selector) (ElementNode, bool) {
	store, ok := r.store.(*ElementStore)
	if !ok || !sel.MatchesTagName(store.TagName()) {
		return ElementNode{}, false
	}
	return ElementNode{Node[*ElementStore]{record: r, contents: store}}, true
}
