package convert

import (
	"fmt"

	"github.com/gerunddev/orgco/internal/parser"
	"github.com/google/uuid"
)

// headerAnchors gives every header of doc a stable id. The id only depends
// on the position and text of the header, so the same input always renders
// the same anchors.
func headerAnchors(doc *parser.Document) map[*parser.Header]string {
	anchors := make(map[*parser.Header]string)
	index := 0
	for _, thing := range doc.Things {
		h, ok := thing.(*parser.Header)
		if !ok {
			continue
		}
		id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("%d:%s", index, h.Text)))
		anchors[h] = "sec-" + id.String()[:8]
		index++
	}
	return anchors
}

func htmlTOC(w *writer) {
	sections := parser.Outline(w.doc)
	if len(sections) == 0 {
		return
	}
	w.line(`<nav id="table-of-contents">`)
	writeHTMLSections(w, sections)
	w.line("</nav>")
	w.line("")
}

func writeHTMLSections(w *writer, sections []*parser.Section) {
	w.line("<ul>")
	for _, sec := range sections {
		link := fmt.Sprintf(`<a href="#%s">%s</a>`, w.anchors[sec.Header], w.inline(sec.Header.Text))
		if len(sec.Children) == 0 {
			w.linef("<li>%s</li>", link)
			continue
		}
		w.linef("<li>%s", link)
		writeHTMLSections(w, sec.Children)
		w.line("</li>")
	}
	w.line("</ul>")
}

func rstTOC(w *writer) {
	w.line(".. contents::")
	w.line("")
}
