package snapshot

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/rdom/internal/dom"
)

// WriteText renders the snapshot as an indented outline, one entry per
// line:
//
//	#document
//	  HTML
//	    BODY
//	      #comment "toolbar"
//	      BUTTON
func (s Snapshot) WriteText(w io.Writer) error {
	for _, e := range s.Entries {
		line := strings.Repeat("  ", e.Depth()) + e.Name
		switch e.Type {
		case dom.TextNodeType, dom.CDataSectionNodeType, dom.CommentNodeType,
			dom.ProcessingInstructionNodeType, dom.AttributeNodeType:
			line += " " + strconv.Quote(e.Data)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
