package convert

import (
	"strings"

	"github.com/gerunddev/orgco/internal/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	escapeHTML = strings.NewReplacer(
		"&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;",
	).Replace

	// linkPolicy drops unsafe link targets such as javascript: URLs
	linkPolicy = bluemonday.UGCPolicy()
)

var htmlRules = &ruleSet{
	begin:       htmlBegin,
	end:         htmlEnd,
	header:      htmlHeader,
	paragraph:   htmlParagraph,
	list:        htmlList,
	table:       htmlTable,
	definitions: htmlDefinitions,
	code:        htmlCode,
	span:        htmlSpan,
}

var htmlInlineTags = map[parser.SpanKind][2]string{
	parser.Bold:      {"<b>", "</b>"},
	parser.Italic:    {"<i>", "</i>"},
	parser.Underline: {"<u>", "</u>"},
	parser.Strike:    {"<del>", "</del>"},
}

func htmlBegin(w *writer) {
	if w.opts.Standalone {
		w.line("<!DOCTYPE html>")
		w.line("<html>")
		w.line("<head>")
		w.line(`<meta charset="utf-8">`)
		w.linef("<title>%s</title>", escapeHTML(w.doc.Keyword("TITLE")))
		w.line("</head>")
		w.line("<body>")
	}
	if w.opts.TOC {
		htmlTOC(w)
	}
}

func htmlEnd(w *writer) {
	if w.opts.Standalone {
		w.line("</body>")
		w.line("</html>")
	}
}

func htmlHeader(w *writer, h *parser.Header) {
	if id, ok := w.anchors[h]; ok {
		w.linef(`<h%d id="%s">%s</h%d>`, h.Level, id, w.inline(h.Text), h.Level)
	} else {
		w.linef("<h%d>%s</h%d>", h.Level, w.inline(h.Text), h.Level)
	}
	w.line("")
}

func htmlParagraph(w *writer, p *parser.Paragraph) {
	w.line("<p>")
	for _, line := range p.Lines {
		w.line(w.inline(line))
	}
	w.line("</p>")
	w.line("")
}

func htmlList(w *writer, l *parser.List) {
	writeHTMLList(w, l)
	w.line("")
}

func writeHTMLList(w *writer, l *parser.List) {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}

	w.linef("<%s>", tag)
	for _, item := range l.Items {
		if item.Sub == nil {
			w.linef("<li>%s</li>", w.inline(item.Text))
			continue
		}
		w.linef("<li>%s", w.inline(item.Text))
		writeHTMLList(w, item.Sub)
		w.line("</li>")
	}
	w.linef("</%s>", tag)
}

func htmlTable(w *writer, t *parser.Table) {
	w.line("<table>")
	for _, row := range t.Rows {
		cell := "td"
		if row.IsHeader {
			cell = "th"
		}
		w.line("<tr>")
		for _, col := range row.Cols {
			w.linef("<%s>%s</%s>", cell, w.inline(col), cell)
		}
		w.line("</tr>")
	}
	w.line("</table>")
	w.line("")
}

func htmlDefinitions(w *writer, l *parser.DefinitionList) {
	writeHTMLDefinitions(w, l)
	w.line("")
}

func writeHTMLDefinitions(w *writer, l *parser.DefinitionList) {
	w.line("<dl>")
	for _, item := range l.Items {
		w.linef("<dt>%s</dt>", w.inline(item.Term))
		if item.Sub == nil {
			w.linef("<dd>%s</dd>", w.inline(item.Description))
			continue
		}
		w.linef("<dd>%s", w.inline(item.Description))
		writeHTMLDefinitions(w, item.Sub)
		w.line("</dd>")
	}
	w.line("</dl>")
}

func htmlCode(w *writer, c *parser.CodeBlock) {
	if w.opts.Highlighter != nil {
		if out, err := w.opts.Highlighter.Highlight(c.Language, c.Content); err == nil {
			for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
				w.line(line)
			}
			w.line("")
			return
		}
	}

	open := "<pre>"
	if c.Language != "" {
		open = `<pre class="src src-` + escapeHTML(c.Language) + `">`
	}
	lines := strings.Split(c.Content, "\n")
	for i, line := range lines {
		out := escapeHTML(line)
		if i == 0 {
			out = open + out
		}
		if i == len(lines)-1 {
			out += "</pre>"
		}
		w.line(out)
	}
	w.line("")
}

func htmlSpan(w *writer, s parser.Span) string {
	switch s.Kind {
	case parser.Bold, parser.Italic, parser.Underline, parser.Strike:
		tags := htmlInlineTags[s.Kind]
		return tags[0] + w.inline(s.Content) + tags[1]
	case parser.Code, parser.Verbatim:
		return "<code>" + escapeHTML(s.Content) + "</code>"
	case parser.Link:
		desc := escapeHTML(s.Target)
		if s.Content != "" {
			desc = w.inline(s.Content)
		}
		a := `<a href="` + escapeHTML(s.Target) + `">` + desc + "</a>"
		if w.opts.Sanitize {
			return linkPolicy.Sanitize(a)
		}
		return a
	default:
		return escapeHTML(s.Content)
	}
}
