package dom

import "strings"

// HTMLElement identifies which HTML element an ElementStore holds.
// Sealed: the catalog is HTMLHtml, HTMLBody, HTMLButton and HTMLUnknown.
type HTMLElement interface {
	// TagName returns the uppercase tag name.
	TagName() string

	htmlElement()
}

// HTMLHtml is the <html> element.
type HTMLHtml struct{}

// HTMLBody is the <body> element.
type HTMLBody struct{}

// HTMLButton is the <button> element.
type HTMLButton struct{}

// HTMLUnknown is any element whose tag is not in the catalog.
// Tag is stored uppercase; use NewHTMLElement rather than building it
// directly.
type HTMLUnknown struct {
	Tag string
}

func (HTMLHtml) TagName() string      { return "HTML" }
func (HTMLBody) TagName() string      { return "BODY" }
func (HTMLButton) TagName() string    { return "BUTTON" }
func (u HTMLUnknown) TagName() string { return u.Tag }

func (HTMLHtml) htmlElement()    {}
func (HTMLBody) htmlElement()    {}
func (HTMLButton) htmlElement()  {}
func (HTMLUnknown) htmlElement() {}

// NewHTMLElement returns the catalog entry for tag, matched
// case-insensitively, or an HTMLUnknown carrying the uppercased tag.
func NewHTMLElement(tag string) HTMLElement {
	upper := strings.ToUpper(tag)
	switch upper {
	case "HTML":
		return HTMLHtml{}
	case "BODY":
		return HTMLBody{}
	case "BUTTON":
		return HTMLButton{}
	default:
		return HTMLUnknown{Tag: upper}
	}
}
