package convert

import (
	"strconv"
	"strings"

	"github.com/gerunddev/orgco/internal/parser"
	"github.com/gerunddev/orgco/internal/textutil"
)

var rstReplacer = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "`", "\\`", "|", `\|`,
)

// escapeRST escapes inline markup characters of plain text. An underscore
// ending a word would make the word a hyperlink reference.
func escapeRST(s string) string {
	s = rstReplacer.Replace(s)
	if !strings.Contains(s, "_") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '_' && (i+1 == len(s) || isSpace(s[i+1])) {
			sb.WriteString(`\_`)
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

var rstRules = &ruleSet{
	begin:       rstBegin,
	end:         func(*writer) {},
	header:      rstHeader,
	paragraph:   rstParagraph,
	list:        rstList,
	table:       rstTable,
	definitions: rstDefinitions,
	code:        rstCode,
	span:        rstSpan,
}

// Section underline characters by header level, the last one repeats
var rstUnderlines = []byte{'=', '-', '~', '^'}

func rstBegin(w *writer) {
	if w.opts.Standalone {
		if title := w.doc.Keyword("TITLE"); title != "" {
			rule := strings.Repeat("=", textutil.DisplayWidth(title))
			w.line(rule)
			w.line(title)
			w.line(rule)
			w.line("")
		}
	}
	if w.opts.TOC {
		rstTOC(w)
	}
}

func rstHeader(w *writer, h *parser.Header) {
	text := w.inline(h.Text)
	level := h.Level
	if level > len(rstUnderlines) {
		level = len(rstUnderlines)
	}
	w.line(text)
	w.line(strings.Repeat(string(rstUnderlines[level-1]), max(textutil.DisplayWidth(text), 1)))
	w.line("")
}

func rstParagraph(w *writer, p *parser.Paragraph) {
	for _, line := range p.Lines {
		w.line(w.inline(line))
	}
	w.line("")
}

func rstList(w *writer, l *parser.List) {
	writeRSTList(w, l, "")
	w.blank()
}

func writeRSTList(w *writer, l *parser.List, indent string) {
	for i, item := range l.Items {
		marker := "- "
		if l.Ordered {
			marker = strconv.Itoa(i+1) + ". "
		}
		w.line(indent + marker + w.inline(item.Text))
		if item.Sub != nil {
			w.blank()
			writeRSTList(w, item.Sub, indent+strings.Repeat(" ", len(marker)))
			w.blank()
		}
	}
}

func rstTable(w *writer, t *parser.Table) {
	ncols := 0
	for _, row := range t.Rows {
		ncols = max(ncols, len(row.Cols))
	}

	cells := make([][]string, len(t.Rows))
	widths := make([]int, ncols)
	for i := range widths {
		widths[i] = 1
	}
	for i, row := range t.Rows {
		cells[i] = make([]string, ncols)
		for j, col := range row.Cols {
			cells[i][j] = w.inline(col)
			widths[j] = max(widths[j], textutil.DisplayWidth(cells[i][j]))
		}
	}

	border := func(fill string) string {
		var sb strings.Builder
		sb.WriteString("+")
		for _, width := range widths {
			sb.WriteString(strings.Repeat(fill, width+2))
			sb.WriteString("+")
		}
		return sb.String()
	}

	w.line(border("-"))
	headed := false
	for i, row := range t.Rows {
		var sb strings.Builder
		sb.WriteString("|")
		for j, cell := range cells[i] {
			sb.WriteString(" ")
			sb.WriteString(textutil.PadRight(cell, widths[j]))
			sb.WriteString(" |")
		}
		w.line(sb.String())

		// Only one header separator is allowed in a grid table
		if row.IsHeader && !headed {
			w.line(border("="))
			headed = true
		} else {
			w.line(border("-"))
		}
	}
	w.line("")
}

func rstDefinitions(w *writer, l *parser.DefinitionList) {
	writeRSTDefinitions(w, l, "")
	w.blank()
}

func writeRSTDefinitions(w *writer, l *parser.DefinitionList, indent string) {
	for _, item := range l.Items {
		w.line(indent + w.inline(item.Term))
		if item.Description != "" {
			w.line(indent + "  " + w.inline(item.Description))
		}
		if item.Sub != nil {
			w.blank()
			writeRSTDefinitions(w, item.Sub, indent+"  ")
			w.blank()
		}
	}
}

func rstCode(w *writer, c *parser.CodeBlock) {
	if w.opts.Highlighter != nil && c.Language != "" {
		w.line(".. code-block:: " + c.Language)
	} else {
		w.line("::")
	}
	w.line("")
	for _, line := range strings.Split(c.Content, "\n") {
		if line == "" {
			w.line("")
			continue
		}
		w.line("    " + line)
	}
	w.blank()
}

func rstSpan(w *writer, s parser.Span) string {
	switch s.Kind {
	case parser.Bold:
		return "**" + escapeRST(s.Content) + "**"
	case parser.Italic:
		return "*" + escapeRST(s.Content) + "*"
	case parser.Underline, parser.Strike:
		return w.inline(s.Content)
	case parser.Code, parser.Verbatim:
		return "``" + s.Content + "``"
	case parser.Link:
		if s.Content == "" {
			return s.Target
		}
		return "`" + escapeRST(s.Content) + " <" + s.Target + ">`_"
	default:
		return escapeRST(s.Content)
	}
}
