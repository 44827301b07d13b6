// Package snapshot records the shape of a node tree as a flat, pre-order
// list of entries with a canonical JSON form and a content hash.
//
// Two trees with the same kinds, names and data in the same order produce
// byte-identical canonical JSON and therefore the same hash, regardless of
// which sandbox they were built in.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/rdom/internal/dom"
)

// Domain separates snapshot hashes from any other SHA-256 use. The version
// suffix changes whenever the canonical form does.
const Domain = "rdom/snapshot/v1"

// Version is written into every canonical snapshot.
const Version = 1

// Entry is one node. Path is the dot-separated child index chain from the
// snapshot root, which itself is "0".
//
// Fields are declared in key order so encoding/json emits sorted keys.
type Entry struct {
	Data string       `json:"data"`
	Name string       `json:"name"`
	Path string       `json:"path"`
	Type dom.NodeType `json:"type"`
}

// Depth returns the number of ancestors between the entry and the root.
func (e Entry) Depth() int {
	return strings.Count(e.Path, ".")
}

// Snapshot is the pre-order list of entries under a root.
type Snapshot struct {
	Entries []Entry `json:"entries"`
	Version int     `json:"version"`
}

// Take walks root in pre-order. It only touches the node graph, so it works
// whether or not the sandbox is still alive.
func Take(root dom.Handle) Snapshot {
	snap := Snapshot{Version: Version}
	if root == nil || root.Any().IsZero() {
		return snap
	}
	walk(root.Any(), "0", &snap.Entries)
	return snap
}

func walk(n dom.AnyNode, path string, out *[]Entry) {
	*out = append(*out, Entry{
		Data: dataOf(n),
		Name: n.NodeName(),
		Path: path,
		Type: n.NodeType(),
	})
	for i, child := range n.ChildNodes().All() {
		walk(child, path+"."+strconv.Itoa(i), out)
	}
}

func dataOf(n dom.AnyNode) string {
	switch s := n.Payload().(type) {
	case *dom.TextStore:
		return s.Data
	case *dom.CDataSectionStore:
		return s.Data
	case *dom.CommentStore:
		return s.Data
	case *dom.ProcessingInstructionStore:
		return s.Data
	case *dom.AttributeStore:
		return s.Value
	default:
		return ""
	}
}

// Canonical returns the canonical JSON encoding: sorted keys, NFC strings,
// no HTML escaping and no trailing newline.
func (s Snapshot) Canonical() ([]byte, error) {
	normalized := Snapshot{Version: s.Version, Entries: make([]Entry, len(s.Entries))}
	for i, e := range s.Entries {
		normalized.Entries[i] = Entry{
			Data: norm.NFC.String(e.Data),
			Name: norm.NFC.String(e.Name),
			Path: e.Path,
			Type: e.Type,
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Hash returns the hex SHA-256 of Domain, a zero byte, and the canonical
// JSON.
func (s Snapshot) Hash() (string, error) {
	canonical, err := s.Canonical()
	if err != nil {
		return "", err
	}
	return hashWithDomain(Domain, canonical), nil
}

func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Parse decodes a canonical snapshot.
func Parse(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Version != Version {
		return Snapshot{}, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	return s, nil
}

// Diff returns a human-readable diff from a to b, or "" when they are equal.
func Diff(a, b Snapshot) string {
	return cmp.Diff(a, b)
}
