package fixture

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Node kinds accepted in fixtures. The document itself is never a fixture
// node; Apply appends under an existing document.
const (
	KindElement               = "element"
	KindAttribute             = "attribute"
	KindText                  = "text"
	KindCDataSection          = "cdata"
	KindProcessingInstruction = "processing_instruction"
	KindComment               = "comment"
	KindDocumentType          = "doctype"
	KindDocumentFragment      = "fragment"
)

// File is the top-level shape of a YAML or CUE fixture.
type File struct {
	Nodes []Tree `yaml:"nodes" json:"nodes"`
}

// Tree describes one node and its children.
type Tree struct {
	Kind     string `yaml:"kind" json:"kind"`
	Tag      string `yaml:"tag,omitempty" json:"tag,omitempty"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"`
	Value    string `yaml:"value,omitempty" json:"value,omitempty"`
	Target   string `yaml:"target,omitempty" json:"target,omitempty"`
	Data     string `yaml:"data,omitempty" json:"data,omitempty"`
	PublicID string `yaml:"public_id,omitempty" json:"public_id,omitempty"`
	SystemID string `yaml:"system_id,omitempty" json:"system_id,omitempty"`
	Children []Tree `yaml:"children,omitempty" json:"children,omitempty"`
}

// Validate checks the tree recursively. path locates the tree in error
// messages, e.g. "nodes[0].children[2]".
func (t Tree) Validate(path string) error {
	switch t.Kind {
	case KindElement:
		if t.Tag == "" {
			return fmt.Errorf("%s: element requires a tag", path)
		}
	case KindAttribute, KindDocumentType:
		if t.Name == "" {
			return fmt.Errorf("%s: %s requires a name", path, t.Kind)
		}
	case KindProcessingInstruction:
		if t.Target == "" {
			return fmt.Errorf("%s: processing_instruction requires a target", path)
		}
	case KindText, KindCDataSection, KindComment, KindDocumentFragment:
	case "":
		return fmt.Errorf("%s: missing kind", path)
	default:
		return fmt.Errorf("%s: unknown kind %q", path, t.Kind)
	}
	if t.Kind != KindDocumentType && (t.PublicID != "" || t.SystemID != "") {
		return fmt.Errorf("%s: public_id and system_id are only valid on a doctype", path)
	}

	for i, child := range t.Children {
		if err := child.Validate(fmt.Sprintf("%s.children[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes in the tree, including t.
func (t Tree) Count() int {
	n := 1
	for _, child := range t.Children {
		n += child.Count()
	}
	return n
}

func (t Tree) normalized() Tree {
	t.Tag = norm.NFC.String(t.Tag)
	t.Name = norm.NFC.String(t.Name)
	t.Value = norm.NFC.String(t.Value)
	t.Target = norm.NFC.String(t.Target)
	t.Data = norm.NFC.String(t.Data)
	t.PublicID = norm.NFC.String(t.PublicID)
	t.SystemID = norm.NFC.String(t.SystemID)
	return t
}

func validateAll(trees []Tree) error {
	for i, t := range trees {
		if err := t.Validate(fmt.Sprintf("nodes[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}
