package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// LoadFile reads a fixture and dispatches on its extension.
func LoadFile(path string) ([]Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var trees []Tree
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		trees, err = ParseYAML(data)
	case ".cue":
		trees, err = ParseCUE(data)
	case ".html", ".htm":
		trees, err = ParseHTML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return trees, nil
}

// ParseYAML decodes a YAML fixture. Unknown fields are rejected.
func ParseYAML(data []byte) ([]Tree, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml fixture: %w", err)
	}
	if err := validateAll(f.Nodes); err != nil {
		return nil, err
	}
	return f.Nodes, nil
}

// ParseCUE compiles a CUE fixture and decodes its "nodes" field. The value
// must be concrete; CUE constraints in the file are resolved first.
func ParseCUE(data []byte) ([]Tree, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename("fixture.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile cue fixture: %s", cueerrors.Details(err, nil))
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate cue fixture: %s", cueerrors.Details(err, nil))
	}

	nodesVal := v.LookupPath(cue.ParsePath("nodes"))
	if !nodesVal.Exists() {
		return nil, fmt.Errorf("cue fixture: missing nodes field")
	}

	var trees []Tree
	if err := nodesVal.Decode(&trees); err != nil {
		return nil, fmt.Errorf("decode cue fixture: %w", err)
	}
	if err := validateAll(trees); err != nil {
		return nil, err
	}
	return trees, nil
}

// ParseHTML parses an HTML document and converts its children to trees.
// The parser inserts the implied html, head and body elements. Element
// attributes are dropped but doctype identifiers are kept. Whitespace-only
// text is skipped.
func ParseHTML(data []byte) ([]Tree, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html fixture: %w", err)
	}
	return convertChildren(root), nil
}

func convertChildren(n *html.Node) []Tree {
	var out []Tree
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t, ok := convertHTML(c); ok {
			out = append(out, t)
		}
	}
	return out
}

func convertHTML(n *html.Node) (Tree, bool) {
	switch n.Type {
	case html.ElementNode:
		return Tree{Kind: KindElement, Tag: n.Data, Children: convertChildren(n)}, true
	case html.TextNode:
		if strings.TrimSpace(n.Data) == "" {
			return Tree{}, false
		}
		return Tree{Kind: KindText, Data: n.Data}, true
	case html.CommentNode:
		return Tree{Kind: KindComment, Data: n.Data}, true
	case html.DoctypeNode:
		t := Tree{Kind: KindDocumentType, Name: n.Data}
		for _, a := range n.Attr {
			switch a.Key {
			case "public":
				t.PublicID = a.Val
			case "system":
				t.SystemID = a.Val
			}
		}
		return t, true
	default:
		return Tree{}, false
	}
}
