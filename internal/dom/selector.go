package dom

import "strings"

// Selector is a validated, uppercase tag-name selector.
//
// The grammar is a single token of ASCII letters and digits, compared
// case-insensitively. Classes, ids, attributes and combinators are not
// supported. The empty selector is valid and matches nothing.
type Selector struct {
	tag string
}

// ParseSelector validates s and returns its uppercase form. Validation
// happens before upper-casing, so non-ASCII letters are rejected even when
// they upper-case to ASCII.
func ParseSelector(s string) (Selector, error) {
	for i, r := range s {
		if !isSelectorRune(r) {
			return Selector{}, newSelectorError(s, i, r)
		}
	}
	return Selector{tag: strings.ToUpper(s)}, nil
}

// MustParseSelector is ParseSelector for constant selectors. It panics on
// invalid input.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

func isSelectorRune(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

// String returns the uppercase tag name.
func (s Selector) String() string {
	return s.tag
}

// Matches reports whether n is an element whose tag name equals the
// selector.
func (s Selector) Matches(n Handle) bool {
	if n == nil {
		return false
	}
	r := n.Any().record
	return r != nil && s.tag != "" && r.tagName() == s.tag
}

// MatchesTagName reports whether tagName equals the selector exactly.
func (s Selector) MatchesTagName(tagName string) bool {
	return s.tag != "" && tagName == s.tag
}
