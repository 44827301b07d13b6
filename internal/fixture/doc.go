// Package fixture loads node trees from files and builds them into a
// sandbox document.
//
// Three source formats are supported and all decode to the same []Tree:
//
//   - YAML (.yaml, .yml): a top-level "nodes" list
//   - CUE (.cue): a top-level "nodes" list, validated as concrete
//   - HTML (.html, .htm): parsed with golang.org/x/net/html
//
// A YAML fixture looks like:
//
//	nodes:
//	  - kind: element
//	    tag: body
//	    children:
//	      - kind: element
//	        tag: button
//	      - kind: text
//	        data: "Click"
//
// Apply builds every tree through dom.Build and appends it under the
// document, so a fixture never outlives its sandbox. Text payloads are NFC
// normalized on the way in.
package fixture
