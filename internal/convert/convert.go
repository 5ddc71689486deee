package convert

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gerunddev/orgco/internal/parser"
)

// Format represents an output markup format
type Format int

const (
	// HTML renders HTML fragments (or a full page with Options.Standalone)
	HTML Format = iota
	// RST renders reStructuredText
	RST
)

// ErrUnknownFormat is returned when a render is requested for a format
// that has no rule set
var ErrUnknownFormat = errors.New("unknown output format")

var formatNames = map[string]Format{
	"html": HTML,
	"rst":  RST,
}

// ParseFormat maps a format name such as "html" or "rst" to a Format
func ParseFormat(name string) (Format, error) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w %q: must be one of: %s", ErrUnknownFormat, name, strings.Join(FormatNames(), ", "))
	}
	return f, nil
}

// FormatNames lists the accepted format names
func FormatNames() []string {
	names := make([]string, 0, len(formatNames))
	for name := range formatNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Format) String() string {
	for name, v := range formatNames {
		if v == f {
			return name
		}
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext returns the file extension for output in this format
func (f Format) Ext() string {
	return "." + f.String()
}

// Highlighter turns source code into highlighted markup. Render falls back
// to verbatim output when it returns an error.
type Highlighter interface {
	Highlight(language, source string) (string, error)
}

// Options tune the output of RenderWith
type Options struct {
	Highlighter Highlighter
	Standalone  bool // wrap HTML in a complete page, add a title to RST
	TOC         bool // emit a table of contents before the body
	Sanitize    bool // run HTML links through a sanitizing policy
}

// ruleSet holds the emission rule of every node type for one format
type ruleSet struct {
	begin       func(w *writer)
	end         func(w *writer)
	header      func(w *writer, h *parser.Header)
	paragraph   func(w *writer, p *parser.Paragraph)
	list        func(w *writer, l *parser.List)
	table       func(w *writer, t *parser.Table)
	definitions func(w *writer, l *parser.DefinitionList)
	code        func(w *writer, c *parser.CodeBlock)
	span        func(w *writer, s parser.Span) string
}

var rules = map[Format]*ruleSet{
	HTML: htmlRules,
	RST:  rstRules,
}

// Render converts doc into lines of the given format with default options
func Render(doc *parser.Document, format Format) ([]string, error) {
	return RenderWith(doc, format, Options{})
}

// RenderWith converts doc into lines of the given format. Joining the lines
// with "\n" gives the output text.
func RenderWith(doc *parser.Document, format Format, opts Options) ([]string, error) {
	rs, ok := rules[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}

	w := &writer{rules: rs, opts: opts, doc: doc}
	if opts.TOC {
		w.anchors = headerAnchors(doc)
	}

	rs.begin(w)
	for _, thing := range doc.Things {
		switch n := thing.(type) {
		case *parser.Header:
			rs.header(w, n)
		case *parser.Paragraph:
			rs.paragraph(w, n)
		case *parser.List:
			rs.list(w, n)
		case *parser.Table:
			rs.table(w, n)
		case *parser.DefinitionList:
			rs.definitions(w, n)
		case *parser.CodeBlock:
			rs.code(w, n)
		}
	}
	rs.end(w)

	return w.lines, nil
}

// RenderString renders doc and joins the lines
func RenderString(doc *parser.Document, format Format, opts Options) (string, error) {
	lines, err := RenderWith(doc, format, opts)
	if err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

// writer collects output lines for one render call
type writer struct {
	rules   *ruleSet
	opts    Options
	doc     *parser.Document
	anchors map[*parser.Header]string
	lines   []string
}

func (w *writer) line(s string) {
	w.lines = append(w.lines, s)
}

func (w *writer) linef(format string, args ...interface{}) {
	w.line(fmt.Sprintf(format, args...))
}

// blank ends a block with an empty line unless one was just written
func (w *writer) blank() {
	if n := len(w.lines); n > 0 && w.lines[n-1] == "" {
		return
	}
	w.line("")
}

// inline renders text with the span rule of the current format
func (w *writer) inline(text string) string {
	var sb strings.Builder
	for _, span := range parser.Spans(text) {
		sb.WriteString(w.rules.span(w, span))
	}
	return sb.String()
}
