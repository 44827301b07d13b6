package dom

import "weak"

// Node is a statically typed handle to a node whose payload is S.
// It shares its record with every other handle to the same node; Any
// erases it without copying.
type Node[S Store] struct {
	*record
	contents S
}

// Contents returns the typed payload.
func (n Node[S]) Contents() S {
	return n.contents
}

// IsZero reports whether the handle refers to no node.
func (n Node[S]) IsZero() bool {
	return n.record == nil
}

// Cast recovers a typed handle from an erased one. It fails with
// ErrNodeCastFail unless the node's payload is an S.
func Cast[S Store](n AnyNode) (Node[S], error) {
	if n.record == nil {
		var want S
		return Node[S]{}, newCastError(want.NodeType(), n)
	}
	store, ok := n.store.(S)
	if !ok {
		return Node[S]{}, newCastError(store.NodeType(), n)
	}
	return Node[S]{record: n.record, contents: store}, nil
}

func newNode[S Store](context weak.Pointer[Sandbox], store S) Node[S] {
	return Node[S]{record: newRecord(context, store), contents: store}
}

// Concrete handles, one per kind.
type (
	ElementNode               struct{ Node[*ElementStore] }
	AttributeNode             struct{ Node[*AttributeStore] }
	TextNode                  struct{ Node[*TextStore] }
	CDataSectionNode          struct{ Node[*CDataSectionStore] }
	ProcessingInstructionNode struct{ Node[*ProcessingInstructionStore] }
	CommentNode               struct{ Node[*CommentStore] }
	DocumentNode              struct{ Node[*DocumentStore] }
	DocumentTypeNode          struct{ Node[*DocumentTypeStore] }
	DocumentFragmentNode      struct{ Node[*DocumentFragmentStore] }
)

// AsElement casts n to an ElementNode.
func AsElement(n AnyNode) (ElementNode, error) {
	h, err := Cast[*ElementStore](n)
	return ElementNode{h}, err
}

// AsAttribute casts n to an AttributeNode.
func AsAttribute(n AnyNode) (AttributeNode, error) {
	h, err := Cast[*AttributeStore](n)
	return AttributeNode{h}, err
}

// AsText casts n to a TextNode.
func AsText(n AnyNode) (TextNode, error) {
	h, err := Cast[*TextStore](n)
	return TextNode{h}, err
}

// AsCDataSection casts n to a CDataSectionNode.
func AsCDataSection(n AnyNode) (CDataSectionNode, error) {
	h, err := Cast[*CDataSectionStore](n)
	return CDataSectionNode{h}, err
}

// AsProcessingInstruction casts n to a ProcessingInstructionNode.
func AsProcessingInstruction(n AnyNode) (ProcessingInstructionNode, error) {
	h, err := Cast[*ProcessingInstructionStore](n)
	return ProcessingInstructionNode{h}, err
}

// AsComment casts n to a CommentNode.
func AsComment(n AnyNode) (CommentNode, error) {
	h, err := Cast[*CommentStore](n)
	return CommentNode{h}, err
}

// AsDocument casts n to a DocumentNode.
func AsDocument(n AnyNode) (DocumentNode, error) {
	h, err := Cast[*DocumentStore](n)
	return DocumentNode{h}, err
}

// AsDocumentType casts n to a DocumentTypeNode.
func AsDocumentType(n AnyNode) (DocumentTypeNode, error) {
	h, err := Cast[*DocumentTypeStore](n)
	return DocumentTypeNode{h}, err
}

// AsDocumentFragment casts n to a DocumentFragmentNode.
func AsDocumentFragment(n AnyNode) (DocumentFragmentNode, error) {
	h, err := Cast[*DocumentFragmentStore](n)
	return DocumentFragmentNode{h}, err
}

// TagName returns the element's uppercase tag name.
func (n ElementNode) TagName() string { return n.contents.TagName() }

// Name returns the attribute name.
func (n AttributeNode) Name() string { return n.contents.Name }

// Value returns the attribute value.
func (n AttributeNode) Value() string { return n.contents.Value }

// Data returns the text content.
func (n TextNode) Data() string { return n.contents.Data }

// Data returns the section content.
func (n CDataSectionNode) Data() string { return n.contents.Data }

// Target returns the instruction target.
func (n ProcessingInstructionNode) Target() string { return n.contents.Target }

// Data returns the instruction content.
func (n ProcessingInstructionNode) Data() string { return n.contents.Data }

// Data returns the comment content.
func (n CommentNode) Data() string { return n.contents.Data }

// Name returns the doctype name, e.g. "html".
func (n DocumentTypeNode) Name() string { return n.contents.Name }

// PublicID returns the public identifier, empty when absent.
func (n DocumentTypeNode) PublicID() string { return n.contents.PublicID }

// SystemID returns the system identifier, empty when absent.
func (n DocumentTypeNode) SystemID() string { return n.contents.SystemID }

func newDocument(context weak.Pointer[Sandbox], store *DocumentStore) DocumentNode {
	return DocumentNode{newNode(context, store)}
}

// DefaultView returns the window owning the document.
func (d DocumentNode) DefaultView() (*Window, error) {
	if _, err := d.Context(); err != nil {
		return nil, err
	}
	w := d.contents.defaultView.Value()
	if w == nil {
		return nil, ErrSandboxDropped
	}
	return w, nil
}

// CreateTextNode creates a text node in the document's sandbox. The node is
// not attached anywhere.
func (d DocumentNode) CreateTextNode(data string) TextNode {
	return TextNode{newNode(d.WeakContext(), &TextStore{Data: data})}
}

// CreateComment creates a detached comment node in the document's sandbox.
func (d DocumentNode) CreateComment(data string) CommentNode {
	return CommentNode{newNode(d.WeakContext(), &CommentStore{Data: data})}
}

// CreateElement creates a detached element for tag, looked up in the HTML
// catalog. Unknown tags produce HTMLUnknown elements.
func (d DocumentNode) CreateElement(tag string) ElementNode {
	return ElementNode{newNode(d.WeakContext(), &ElementStore{Element: NewHTMLElement(tag)})}
}

// CreateDocumentFragment creates a detached document fragment.
func (d DocumentNode) CreateDocumentFragment() DocumentFragmentNode {
	return DocumentFragmentNode{newNode(d.WeakContext(), &DocumentFragmentStore{})}
}
