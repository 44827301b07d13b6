package dom

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveNodeList_ReflectsLaterMutations(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})

	list := body.ChildNodes()
	require.True(t, list.IsLive())
	assert.Equal(t, 0, list.Length())

	body.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))
	body.AppendChild(mustBuild(t, sb, TextTemplate{Data: "label"}))

	assert.Equal(t, 2, list.Length(), "same list value sees new children")
	second, ok := list.Item(1)
	require.True(t, ok)
	assert.Equal(t, TextNodeType, second.NodeType())
}

func TestStaticNodeList_IsFrozen(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	body.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))

	var nodes []AnyNode
	for _, n := range body.ChildNodes().All() {
		nodes = append(nodes, n)
	}
	list := NewStaticNodeList(body.WeakContext(), nodes)
	nodes[0] = AnyNode{}

	body.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))

	assert.False(t, list.IsLive())
	assert.Equal(t, 1, list.Length())
	first, ok := list.Item(0)
	require.True(t, ok)
	assert.False(t, first.IsZero(), "the list owns a copy of the input slice")
}

func TestNodeList_ItemOutOfRange(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()
	doc.AppendChild(doc.CreateTextNode("only"))
	list := doc.ChildNodes()

	_, ok := list.Item(-1)
	assert.False(t, ok)
	_, ok = list.Item(1)
	assert.False(t, ok)
	_, ok = list.Item(0)
	assert.True(t, ok)
}

func TestNodeList_AllStopsEarly(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()
	for _, s := range []string{"a", "b", "c"} {
		doc.AppendChild(doc.CreateTextNode(s))
	}

	var seen []string
	for i, n := range doc.ChildNodes().All() {
		text, err := AsText(n)
		require.NoError(t, err)
		seen = append(seen, text.Data())
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestNodeList_Context(t *testing.T) {
	sb := newTestSandbox(t)
	list := sb.Window().Document().ChildNodes()

	ctx, err := list.Context()
	require.NoError(t, err)
	assert.Same(t, sb, ctx)

	sb.Close()
	_, err = list.Context()
	assert.True(t, IsSandboxDropped(err))
}

// liveListOverDetachedNode returns a live list whose node has no other
// references once this function returns.
//
//go:noinline
func liveListOverDetachedNode(doc DocumentNode) *NodeList {
	el := doc.CreateElement("div")
	el.AppendChild(doc.CreateTextNode("child"))
	return el.ChildNodes()
}

func TestLiveNodeList_DoesNotRetainNode(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()
	list := liveListOverDetachedNode(doc)

	runtime.GC()
	runtime.GC()

	assert.Equal(t, 0, list.Length(), "a collected target enumerates as empty")
	_, ok := list.Item(0)
	assert.False(t, ok)
}
