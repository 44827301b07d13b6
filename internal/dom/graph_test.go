package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChild_GrowsByOneAndBecomesLast(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()

	for i := 0; i < 5; i++ {
		before := doc.ChildNodes().Length()
		child := doc.CreateTextNode("x")
		doc.AppendChild(child)

		assert.Equal(t, before+1, doc.ChildNodes().Length())
		last, ok := doc.LastChild()
		require.True(t, ok)
		assert.True(t, last.IsSameNode(child))
	}
}

func TestFirstLastChild_Empty(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()

	_, ok := doc.FirstChild()
	assert.False(t, ok)
	_, ok = doc.LastChild()
	assert.False(t, ok)
	assert.False(t, doc.HasChildNodes())
}

func TestFirstLastChild_Order(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	html := mustBuild(t, sb, HTMLHtmlTemplate{})
	body := mustBuild(t, sb, HTMLBodyTemplate{})

	doc.AppendChild(html)
	doc.AppendChild(body)

	first, _ := doc.FirstChild()
	last, _ := doc.LastChild()
	assert.True(t, first.IsSameNode(html))
	assert.True(t, last.IsSameNode(body))
}

func TestAppendChild_EmptyHandlePanics(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()
	const msg = "dom: AppendChild called with an empty node handle"
	assert.PanicsWithValue(t, msg, func() { doc.AppendChild(AnyNode{}) })
	assert.PanicsWithValue(t, msg, func() { doc.AppendChild(ElementNode{}) })
	assert.PanicsWithValue(t, msg, func() { doc.AppendChild(nil) })

	var g NodeGraph
	assert.PanicsWithValue(t, msg, func() { g.AppendChild(nil) })
	assert.False(t, doc.HasChildNodes())
}

func TestAppendChild_KeepsChildAlive(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()

	func() {
		// The only external handle goes out of scope here.
		doc.AppendChild(doc.CreateComment("kept"))
	}()

	child, ok := doc.FirstChild()
	require.True(t, ok)
	comment, err := AsComment(child)
	require.NoError(t, err)
	assert.Equal(t, "kept", comment.Data())
}

func TestNodeGraph_StandaloneDelegate(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()

	var g NodeGraph
	assert.False(t, g.HasChildNodes())
	assert.Equal(t, 0, g.ChildNodes().Length(), "no self-descriptor means an empty live list")

	a := doc.CreateTextNode("a")
	b := doc.CreateTextNode("b")
	g.AppendChild(a)
	g.AppendChild(b)

	first, _ := g.FirstChild()
	last, _ := g.LastChild()
	assert.True(t, first.IsSameNode(a))
	assert.True(t, last.IsSameNode(b))
}

func TestGraphOperations_SurviveSandboxDrop(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	sb.Close()

	doc.AppendChild(body)
	children := doc.ChildNodes()
	assert.Equal(t, 1, children.Length())
	first, ok := doc.FirstChild()
	require.True(t, ok)
	assert.True(t, first.IsSameNode(body))
	last, ok := doc.LastChild()
	require.True(t, ok)
	assert.True(t, last.IsSameNode(body))
}
