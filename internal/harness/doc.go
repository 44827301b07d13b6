// Package harness runs scripted query scenarios against a freshly built
// document and records what each step observed.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: nested_button
//	description: "querySelector finds a button inside body"
//	fixture: fixtures/page.yaml    # optional, relative to the scenario file
//	nodes:                         # optional inline trees, applied after fixture
//	  - kind: comment
//	    data: footer
//	steps:
//	  - op: query
//	    selector: button
//	    expect: { found: true, name: BUTTON }
//	  - op: child_element_count
//	    root: body
//	    expect: { count: 2 }
//	  - op: selector
//	    selector: "btn!"
//	    expect: { error: INVALID_QUERY_SELECTOR }
//
// # Step Operations
//
//   - query: QuerySelector on the root; expect found, name
//   - query_all: QuerySelectorAll on the root; expect count
//   - count: length of the root's live child list; expect count
//   - child_element_count: ChildElementCount on the root; expect count
//   - selector: ParseSelector alone; expect name (the upper-cased tag) or error
//   - cast: cast the root to kind; expect name or error
//
// A step's root is the first element matching its root selector, or the
// document when root is empty. Expect clauses are subset matches: only the
// fields given are checked.
//
// # Deterministic Testing
//
// Every scenario runs in its own sandbox with a fixed sandbox ID and a
// step counter starting at 1, so traces are byte-identical across runs and
// can be compared against golden files with RunWithGolden.
package harness
