package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySelector_Siblings(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	button := mustBuild(t, sb, HTMLButtonTemplate{})
	body := mustBuild(t, sb, HTMLBodyTemplate{})

	doc.AppendChild(button)
	doc.AppendChild(body)

	qbody, ok, err := doc.QuerySelector("BODY")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, qbody.IsSameNode(body))

	qbutton, ok, err := doc.QuerySelector("BUTTON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, qbutton.IsSameNode(button))
}

func TestQuerySelector_Nested(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	button := mustBuild(t, sb, HTMLButtonTemplate{})

	doc.AppendChild(body)
	body.AppendChild(button)

	qbutton, ok, err := doc.QuerySelector("BUTTON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, qbutton.IsSameNode(button))
	assert.Same(t, button.Contents(), qbutton.Contents())

	qbody, ok, err := doc.QuerySelector("body")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, qbody.IsSameNode(body))
}

func TestQuerySelector_PreOrderFirstMatch(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()

	// doc
	// ├── html
	// │   └── body
	// │       └── button (deep)
	// └── button (shallow, later sibling)
	html := mustBuild(t, sb, HTMLHtmlTemplate{})
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	deep := mustBuild(t, sb, HTMLButtonTemplate{})
	shallow := mustBuild(t, sb, HTMLButtonTemplate{})
	doc.AppendChild(html)
	html.AppendChild(body)
	body.AppendChild(deep)
	doc.AppendChild(shallow)

	found, ok, err := doc.QuerySelector("button")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.IsSameNode(deep), "the earlier subtree is searched before later siblings")
}

func TestQuerySelector_DeepChain(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()

	parent := doc.Any()
	for i := 0; i < 200; i++ {
		div := doc.CreateElement("div")
		parent.AppendChild(div)
		parent = div.Any()
	}
	target := doc.CreateElement("button")
	parent.AppendChild(target)

	found, ok, err := doc.QuerySelector("BUTTON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.IsSameNode(target))
}

func TestQuerySelector_NoMatch(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	doc.AppendChild(mustBuild(t, sb, HTMLBodyTemplate{}))
	doc.AppendChild(doc.CreateTextNode("BUTTON"))

	found, ok, err := doc.QuerySelector("BUTTON")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, found.IsZero())
}

func TestQuerySelector_InvalidSelector(t *testing.T) {
	doc := newTestSandbox(t).Window().Document()

	_, _, err := doc.QuerySelector("btn!")
	require.Error(t, err)
	assert.True(t, IsInvalidQuerySelector(err))

	_, err = doc.QuerySelectorAll("a>b")
	assert.True(t, IsInvalidQuerySelector(err))
}

func TestQuerySelector_RootNeverMatches(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})

	_, ok, err := body.QuerySelector("BODY")
	require.NoError(t, err)
	assert.False(t, ok, "QuerySelector only searches descendants")

	nested := mustBuild(t, sb, HTMLBodyTemplate{})
	body.AppendChild(nested)
	found, ok, err := body.QuerySelector("BODY")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.IsSameNode(nested))
}

func TestQuerySelectorInclusive_RootMatches(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	body.AppendChild(mustBuild(t, sb, HTMLBodyTemplate{}))

	found, ok, err := body.QuerySelectorInclusive("BODY")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.IsSameNode(body), "the root is checked before its children")
}

func TestQuerySelectorInclusive_RootDoesNotMatch(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	button := mustBuild(t, sb, HTMLButtonTemplate{})
	body.AppendChild(button)

	found, ok, err := body.QuerySelectorInclusive("BUTTON")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, found.IsSameNode(button))
}

func TestQuerySelectorAll_PreOrderStatic(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	b1 := mustBuild(t, sb, HTMLButtonTemplate{})
	inner := mustBuild(t, sb, HTMLButtonTemplate{})
	b2 := mustBuild(t, sb, HTMLButtonTemplate{})

	doc.AppendChild(body)
	body.AppendChild(b1)
	b1.AppendChild(inner)
	body.AppendChild(b2)

	list, err := doc.QuerySelectorAll("button")
	require.NoError(t, err)
	assert.False(t, list.IsLive())
	require.Equal(t, 3, list.Length())

	want := []Handle{b1, inner, b2}
	for i, n := range list.All() {
		assert.True(t, n.IsSameNode(want[i]), "index %d", i)
	}

	body.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))
	assert.Equal(t, 3, list.Length(), "static lists do not see later mutations")
}

func TestChildElementCount(t *testing.T) {
	sb := newTestSandbox(t)
	body := mustBuild(t, sb, HTMLBodyTemplate{})
	body.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))
	body.AppendChild(mustBuild(t, sb, TextTemplate{Data: "x"}))
	body.AppendChild(mustBuild(t, sb, CommentTemplate{Data: "y"}))
	inner := mustBuild(t, sb, ElementTemplate{Tag: "span"})
	inner.AppendChild(mustBuild(t, sb, HTMLButtonTemplate{}))
	body.AppendChild(inner)

	count, err := body.ChildElementCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "only direct element children are counted")
}

func TestParentNode_SandboxDropped(t *testing.T) {
	sb := newTestSandbox(t)
	doc := sb.Window().Document()
	doc.AppendChild(mustBuild(t, sb, HTMLBodyTemplate{}))
	sb.Close()

	_, err := doc.ChildElementCount()
	assert.True(t, IsSandboxDropped(err))

	_, _, err = doc.QuerySelector("BODY")
	assert.True(t, IsSandboxDropped(err))

	_, err = doc.QuerySelectorAll("BODY")
	assert.True(t, IsSandboxDropped(err))
}
