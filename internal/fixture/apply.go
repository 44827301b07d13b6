package fixture

import (
	"fmt"

	"github.com/roach88/rdom/internal/dom"
)

type appender interface {
	AppendChild(child dom.Handle)
}

// Apply builds each tree in doc's sandbox and appends it under doc, in
// order. It returns the number of nodes created.
//
// Trees are validated before anything is built, so an invalid fixture
// leaves the document untouched.
func Apply(doc dom.DocumentNode, trees ...Tree) (int, error) {
	if err := validateAll(trees); err != nil {
		return 0, err
	}

	created := 0
	for _, t := range trees {
		n, err := applyTree(doc, doc, t.normalized())
		created += n
		if err != nil {
			return created, err
		}
	}
	return created, nil
}

func applyTree(doc dom.DocumentNode, parent appender, t Tree) (int, error) {
	node, err := build(doc, t)
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", t.Kind, err)
	}
	parent.AppendChild(node)

	created := 1
	for _, child := range t.Children {
		n, err := applyTree(doc, node, child.normalized())
		created += n
		if err != nil {
			return created, err
		}
	}
	return created, nil
}

func build(doc dom.DocumentNode, t Tree) (dom.AnyNode, error) {
	switch t.Kind {
	case KindElement:
		return buildAny(doc, dom.ElementTemplate{Tag: t.Tag})
	case KindAttribute:
		return buildAny(doc, dom.AttributeTemplate{Name: t.Name, Value: t.Value})
	case KindText:
		return buildAny(doc, dom.TextTemplate{Data: t.Data})
	case KindCDataSection:
		return buildAny(doc, dom.CDataSectionTemplate{Data: t.Data})
	case KindProcessingInstruction:
		return buildAny(doc, dom.ProcessingInstructionTemplate{Target: t.Target, Data: t.Data})
	case KindComment:
		return buildAny(doc, dom.CommentTemplate{Data: t.Data})
	case KindDocumentType:
		return buildAny(doc, dom.DocumentTypeTemplate{Name: t.Name, PublicID: t.PublicID, SystemID: t.SystemID})
	case KindDocumentFragment:
		return buildAny(doc, dom.DocumentFragmentTemplate{})
	default:
		return dom.AnyNode{}, fmt.Errorf("unknown kind %q", t.Kind)
	}
}

func buildAny[T dom.Handle](doc dom.DocumentNode, tpl dom.Template[T]) (dom.AnyNode, error) {
	n, err := dom.Build(doc, tpl)
	if err != nil {
		return dom.AnyNode{}, err
	}
	return n.Any(), nil
}
