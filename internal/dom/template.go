package dom

import "weak"

// Templates for every node kind. Pass them to Build with any sandbox
// member:
//
//	body, err := dom.Build(doc, dom.HTMLBodyTemplate{})

// HTMLHtmlTemplate builds an <html> element.
type HTMLHtmlTemplate struct{}

func (HTMLHtmlTemplate) Build(sb *Sandbox) ElementNode {
	return newElement(sb, HTMLHtml{})
}

// HTMLBodyTemplate builds a <body> element.
type HTMLBodyTemplate struct{}

func (HTMLBodyTemplate) Build(sb *Sandbox) ElementNode {
	return newElement(sb, HTMLBody{})
}

// HTMLButtonTemplate builds a <button> element.
type HTMLButtonTemplate struct{}

func (HTMLButtonTemplate) Build(sb *Sandbox) ElementNode {
	return newElement(sb, HTMLButton{})
}

// ElementTemplate builds the catalog element for Tag, or an HTMLUnknown.
type ElementTemplate struct {
	Tag string
}

func (t ElementTemplate) Build(sb *Sandbox) ElementNode {
	return newElement(sb, NewHTMLElement(t.Tag))
}

// AttributeTemplate builds an attribute node.
type AttributeTemplate struct {
	Name  string
	Value string
}

func (t AttributeTemplate) Build(sb *Sandbox) AttributeNode {
	return AttributeNode{newNode(weak.Make(sb), &AttributeStore{Name: t.Name, Value: t.Value})}
}

// TextTemplate builds a text node.
type TextTemplate struct {
	Data string
}

func (t TextTemplate) Build(sb *Sandbox) TextNode {
	return TextNode{newNode(weak.Make(sb), &TextStore{Data: t.Data})}
}

// CDataSectionTemplate builds a CDATA section.
type CDataSectionTemplate struct {
	Data string
}

func (t CDataSectionTemplate) Build(sb *Sandbox) CDataSectionNode {
	return CDataSectionNode{newNode(weak.Make(sb), &CDataSectionStore{Data: t.Data})}
}

// ProcessingInstructionTemplate builds a processing instruction.
type ProcessingInstructionTemplate struct {
	Target string
	Data   string
}

func (t ProcessingInstructionTemplate) Build(sb *Sandbox) ProcessingInstructionNode {
	return ProcessingInstructionNode{newNode(weak.Make(sb), &ProcessingInstructionStore{Target: t.Target, Data: t.Data})}
}

// CommentTemplate builds a comment.
type CommentTemplate struct {
	Data string
}

func (t CommentTemplate) Build(sb *Sandbox) CommentNode {
	return CommentNode{newNode(weak.Make(sb), &CommentStore{Data: t.Data})}
}

// DocumentTypeTemplate builds a doctype.
type DocumentTypeTemplate struct {
	Name     string
	PublicID string
	SystemID string
}

func (t DocumentTypeTemplate) Build(sb *Sandbox) DocumentTypeNode {
	return DocumentTypeNode{newNode(weak.Make(sb), &DocumentTypeStore{
		Name:     t.Name,
		PublicID: t.PublicID,
		SystemID: t.SystemID,
	})}
}

// DocumentFragmentTemplate builds an empty document fragment.
type DocumentFragmentTemplate struct{}

func (DocumentFragmentTemplate) Build(sb *Sandbox) DocumentFragmentNode {
	return DocumentFragmentNode{newNode(weak.Make(sb), &DocumentFragmentStore{})}
}

func newElement(sb *Sandbox, el HTMLElement) ElementNode {
	return ElementNode{newNode(weak.Make(sb), &ElementStore{Element: el})}
}
