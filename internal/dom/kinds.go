package dom

import (
	"strconv"
	"weak"
)

// NodeType is the DOM Node.nodeType value of a node.
type NodeType int

// The values match the DOM Node.nodeType constants.
const (
	ElementNodeType               NodeType = 1
	AttributeNodeType             NodeType = 2
	TextNodeType                  NodeType = 3
	CDataSectionNodeType          NodeType = 4
	ProcessingInstructionNodeType NodeType = 5
	CommentNodeType               NodeType = 6
	DocumentNodeType              NodeType = 7
	DocumentTypeNodeType          NodeType = 8
	DocumentFragmentNodeType      NodeType = 9
)

var nodeTypeNames = map[NodeType]string{
	ElementNodeType:               "Element",
	AttributeNodeType:             "Attribute",
	TextNodeType:                  "Text",
	CDataSectionNodeType:          "CDataSection",
	ProcessingInstructionNodeType: "ProcessingInstruction",
	CommentNodeType:               "Comment",
	DocumentNodeType:              "Document",
	DocumentTypeNodeType:          "DocumentType",
	DocumentFragmentNodeType:      "DocumentFragment",
}

// String returns the kind name, e.g. "Element".
func (t NodeType) String() string {
	if name, ok := nodeTypeNames[t]; ok {
		return name
	}
	return "NodeType(" + strconv.Itoa(int(t)) + ")"
}

// Store is the kind-specific payload of a node.
//
// This is a sealed interface: only the nine *XStore types in this package
// implement it, so a type switch over Store is exhaustive.
type Store interface {
	// NodeType returns the fixed kind tag. It does not read the receiver,
	// so it is safe on a nil store.
	NodeType() NodeType

	nodeName() string
	cloneStore() Store
}

// ElementStore is the payload of an element node.
type ElementStore struct {
	Element HTMLElement
}

// TagName returns the element's uppercase tag name.
func (s *ElementStore) TagName() string {
	if s.Element == nil {
		return ""
	}
	return s.Element.TagName()
}

func (*ElementStore) NodeType() NodeType  { return ElementNodeType }
func (s *ElementStore) nodeName() string  { return s.TagName() }
func (s *ElementStore) cloneStore() Store { return &ElementStore{Element: s.Element} }

// AttributeStore is the payload of an attribute node.
type AttributeStore struct {
	Name  string
	Value string
}

func (*AttributeStore) NodeType() NodeType  { return AttributeNodeType }
func (s *AttributeStore) nodeName() string  { return s.Name }
func (s *AttributeStore) cloneStore() Store { return &AttributeStore{Name: s.Name, Value: s.Value} }

// TextStore is the payload of a text node.
type TextStore struct {
	Data string
}

func (*TextStore) NodeType() NodeType  { return TextNodeType }
func (*TextStore) nodeName() string    { return "#text" }
func (s *TextStore) cloneStore() Store { return &TextStore{Data: s.Data} }

// CDataSectionStore is the payload of a CDATA section node.
type CDataSectionStore struct {
	Data string
}

func (*CDataSectionStore) NodeType() NodeType  { return CDataSectionNodeType }
func (*CDataSectionStore) nodeName() string    { return "#cdata-section" }
func (s *CDataSectionStore) cloneStore() Store { return &CDataSectionStore{Data: s.Data} }

// ProcessingInstructionStore is the payload of a processing instruction.
type ProcessingInstructionStore struct {
	Target string
	Data   string
}

func (*ProcessingInstructionStore) NodeType() NodeType  { return ProcessingInstructionNodeType }
func (s *ProcessingInstructionStore) nodeName() string  { return s.Target }
func (s *ProcessingInstructionStore) cloneStore() Store { return &ProcessingInstructionStore{Target: s.Target, Data: s.Data} }

// CommentStore is the payload of a comment node.
type CommentStore struct {
	Data string
}

func (*CommentStore) NodeType() NodeType  { return CommentNodeType }
func (*CommentStore) nodeName() string    { return "#comment" }
func (s *CommentStore) cloneStore() Store { return &CommentStore{Data: s.Data} }

// DocumentStore is the payload of a document node. It points back at the
// window that owns the document without keeping it alive.
type DocumentStore struct {
	defaultView weak.Pointer[Window]
}

func (*DocumentStore) NodeType() NodeType  { return DocumentNodeType }
func (*DocumentStore) nodeName() string    { return "#document" }
func (s *DocumentStore) cloneStore() Store { return &DocumentStore{defaultView: s.defaultView} }

// DocumentTypeStore is the payload of a doctype node.
type DocumentTypeStore struct {
	Name     string
	PublicID string
	SystemID string
}

func (*DocumentTypeStore) NodeType() NodeType  { return DocumentTypeNodeType }
func (s *DocumentTypeStore) nodeName() string  { return s.Name }
func (s *DocumentTypeStore) cloneStore() Store { return &DocumentTypeStore{Name: s.Name, PublicID: s.PublicID, SystemID: s.SystemID} }

// DocumentFragmentStore is the payload of a document fragment.
type DocumentFragmentStore struct{}

func (*DocumentFragmentStore) NodeType() NodeType { return DocumentFragmentNodeType }
func (*DocumentFragmentStore) nodeName() string   { return "#document-fragment" }
func (*DocumentFragmentStore) cloneStore() Store  { return &DocumentFragmentStore{} }
