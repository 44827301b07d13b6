package dom

import "weak"

// Window is the sandbox's global object. It owns the document.
type Window struct {
	context  weak.Pointer[Sandbox]
	document DocumentNode
}

func newWindow(context weak.Pointer[Sandbox]) *Window {
	w := &Window{context: context}
	w.document = newDocument(context, &DocumentStore{defaultView: weak.Make(w)})
	return w
}

// Document returns the window's document.
func (w *Window) Document() DocumentNode {
	return w.document
}

// Context returns the sandbox the window belongs to.
func (w *Window) Context() (*Sandbox, error) {
	return resolveSandbox(w.context)
}
