package parser

import (
	"regexp"
	"strings"

	"github.com/gerunddev/orgco/internal/textutil"
)

var (
	// Capture groups:
	// 1. Block kind (src or example)
	// 2. Language tag
	codeBeginRegexp = regexp.MustCompile(`(?i)^\s*#\+begin_(src|example)(?:\s+(\S+))?`)
	keywordRegexp   = regexp.MustCompile(`^#\+(\w+):\s*(.*)$`)
	headerRegexp    = regexp.MustCompile(`^(\*+)\s+(.*)$`)

	// Capture groups:
	// 1. Indent (tabs already expanded)
	// 2. Marker
	// 3. Item text
	listItemRegexp   = regexp.MustCompile(`^( *)([-+*]|\d+[.)])(?:\s+(.*))?$`)
	definitionRegexp = regexp.MustCompile(`^(.*?)\s+::(?:\s+(.*))?$`)
	separatorRegexp  = regexp.MustCompile(`^\|[-+|]*-[-+|]*$`)
)

type lineKind int

const (
	blankLine lineKind = iota
	commentLine
	codeLine
	keywordLine
	tableLine
	listLine
	definitionLine
	headerLine
	textLine
)

// Parse builds a document from the lines of an org file. It accepts any
// input: lines that fit no other block become paragraph text.
func Parse(lines []string) *Document {
	p := blockParser{
		lines: lines,
		doc:   &Document{Keywords: make(map[string]string)},
	}
	p.parse()
	return p.doc
}

// ParseString splits text into lines and parses it. A final newline ends
// the last line, it does not start an empty one.
func ParseString(text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return Parse(strings.Split(text, "\n"))
}

type blockParser struct {
	lines []string
	pos   int
	doc   *Document
}

func (p *blockParser) more() bool   { return p.pos < len(p.lines) }
func (p *blockParser) peek() string { return p.lines[p.pos] }

func (p *blockParser) add(n Node) {
	p.doc.Things = append(p.doc.Things, n)
}

func (p *blockParser) parse() {
	for p.more() {
		switch classify(p.peek()) {
		case blankLine, commentLine:
			p.pos++
		case codeLine:
			p.parseCodeBlock()
		case keywordLine:
			p.parseKeyword()
		case tableLine:
			p.parseTable()
		case listLine:
			p.parseList()
		case definitionLine:
			p.parseDefinitions()
		case headerLine:
			p.parseHeader()
		default:
			p.parseParagraph()
		}
	}
}

// classify decides which block a line starts. The order of the checks is
// the priority order of the block rules.
func classify(line string) lineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return blankLine
	case codeBeginRegexp.MatchString(line):
		return codeLine
	case keywordRegexp.MatchString(trimmed):
		return keywordLine
	case trimmed == "#" || strings.HasPrefix(trimmed, "# "):
		return commentLine
	case strings.HasPrefix(trimmed, "|"):
		return tableLine
	}

	if it, ok := matchItem(line); ok {
		if it.definition {
			return definitionLine
		}
		return listLine
	}
	if headerRegexp.MatchString(line) {
		return headerLine
	}
	return textLine
}

// item is a list or definition line split into its parts
type item struct {
	indent     int
	marker     string
	text       string
	definition bool
	term       string
	desc       string
}

func matchItem(line string) (item, bool) {
	expanded := strings.TrimRight(textutil.ExpandTabs(line, textutil.DefaultTabWidth), " \t\r")

	if m := listItemRegexp.FindStringSubmatch(expanded); m != nil {
		indent := len(m[1])
		// A star at column 0 starts a header, not a bullet
		if !(m[2] == "*" && indent == 0) {
			it := item{indent: indent, marker: m[2], text: strings.TrimSpace(m[3])}
			if d := definitionRegexp.FindStringSubmatch(it.text); d != nil {
				it.definition = true
				it.term = strings.TrimSpace(d[1])
				it.desc = strings.TrimSpace(d[2])
			}
			return it, true
		}
	}

	if headerRegexp.MatchString(expanded) {
		return item{}, false
	}
	trimmed := strings.TrimSpace(expanded)
	if d := definitionRegexp.FindStringSubmatch(trimmed); d != nil && strings.TrimSpace(d[1]) != "" {
		return item{
			indent:     textutil.Indent(expanded),
			definition: true,
			term:       strings.TrimSpace(d[1]),
			desc:       strings.TrimSpace(d[2]),
		}, true
	}
	return item{}, false
}

func isNumeric(marker string) bool {
	return marker != "" && marker[0] >= '0' && marker[0] <= '9'
}

// continues reports whether line carries on the text of an item whose
// marker sits at column indent
func continues(line string, indent int) bool {
	return classify(line) == textLine && textutil.Indent(line) > indent
}

func (p *blockParser) parseCodeBlock() {
	m := codeBeginRegexp.FindStringSubmatch(p.peek())
	kind, language := strings.ToLower(m[1]), m[2]
	p.pos++

	var body []string
	for p.more() {
		line := strings.TrimSuffix(p.peek(), "\r")
		p.pos++
		if strings.EqualFold(strings.TrimSpace(line), "#+end_"+kind) {
			break
		}
		body = append(body, line)
	}
	// An unterminated block runs to the end of input

	p.add(&CodeBlock{Language: language, Content: strings.Join(body, "\n")})
}

func (p *blockParser) parseKeyword() {
	m := keywordRegexp.FindStringSubmatch(strings.TrimSpace(p.peek()))
	p.doc.Keywords[strings.ToUpper(m[1])] = strings.TrimSpace(m[2])
	p.pos++
}

func (p *blockParser) parseHeader() {
	m := headerRegexp.FindStringSubmatch(p.peek())
	p.add(&Header{Level: len(m[1]), Text: strings.TrimSpace(m[2])})
	p.pos++
}

func (p *blockParser) parseTable() {
	table := &Table{}
	for p.more() && classify(p.peek()) == tableLine {
		line := strings.TrimSpace(p.peek())
		p.pos++

		if separatorRegexp.MatchString(line) {
			if n := len(table.Rows); n > 0 {
				table.Rows[n-1].IsHeader = true
			}
			continue
		}
		table.Rows = append(table.Rows, &TableRow{Cols: splitRow(line)})
	}

	// A table made only of separator rows has nothing to show
	if len(table.Rows) > 0 {
		p.add(table)
	}
}

func splitRow(line string) []string {
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cols := strings.Split(line, "|")
	for i, col := range cols {
		cols[i] = strings.TrimSpace(col)
	}
	return cols
}

type listFrame struct {
	indent int
	list   *List
}

func (p *blockParser) parseList() {
	first, _ := matchItem(p.peek())
	root := &List{Ordered: isNumeric(first.marker)}
	p.add(root)

	stack := []listFrame{{indent: first.indent, list: root}}
	for p.more() {
		line := p.peek()
		it, ok := matchItem(line)
		top := stack[len(stack)-1]
		if !ok {
			if continues(line, top.indent) && len(top.list.Items) > 0 {
				last := top.list.Items[len(top.list.Items)-1]
				last.Text = joinText(last.Text, strings.TrimSpace(line))
				p.pos++
				continue
			}
			break
		}
		if it.definition {
			break
		}
		depth := len(stack)
		for depth > 1 && it.indent < stack[depth-1].indent {
			depth--
		}
		// A root item with the other marker kind starts a new list
		if depth == 1 && it.indent <= stack[0].indent && isNumeric(it.marker) != root.Ordered {
			break
		}
		stack = stack[:depth]
		top = stack[depth-1]

		if it.indent > top.indent && len(top.list.Items) > 0 {
			parent := top.list.Items[len(top.list.Items)-1]
			if parent.Sub == nil {
				parent.Sub = &List{Ordered: isNumeric(it.marker)}
			}
			top = listFrame{indent: it.indent, list: parent.Sub}
			stack = append(stack, top)
		}
		top.list.Items = append(top.list.Items, &ListItem{Text: it.text})
		p.pos++
	}
}

type definitionFrame struct {
	indent int
	list   *DefinitionList
}

func (p *blockParser) parseDefinitions() {
	first, _ := matchItem(p.peek())
	root := &DefinitionList{}
	p.add(root)

	stack := []definitionFrame{{indent: first.indent, list: root}}
	for p.more() {
		line := p.peek()
		it, ok := matchItem(line)
		top := stack[len(stack)-1]
		if !ok {
			if continues(line, top.indent) && len(top.list.Items) > 0 {
				last := top.list.Items[len(top.list.Items)-1]
				last.Description = joinText(last.Description, strings.TrimSpace(line))
				p.pos++
				continue
			}
			break
		}
		if !it.definition {
			break
		}

		for len(stack) > 1 && it.indent < stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		top = stack[len(stack)-1]

		if it.indent > top.indent && len(top.list.Items) > 0 {
			parent := top.list.Items[len(top.list.Items)-1]
			if parent.Sub == nil {
				parent.Sub = &DefinitionList{}
			}
			top = definitionFrame{indent: it.indent, list: parent.Sub}
			stack = append(stack, top)
		}
		top.list.Items = append(top.list.Items, &DefinitionItem{Term: it.term, Description: it.desc})
		p.pos++
	}
}

func (p *blockParser) parseParagraph() {
	para := &Paragraph{}
	for p.more() {
		line := p.peek()
		if len(para.Lines) > 0 && classify(line) != textLine {
			break
		}
		para.Lines = append(para.Lines, strings.TrimSpace(line))
		p.pos++
	}
	p.add(para)
}

func joinText(text, more string) string {
	if text == "" {
		return more
	}
	return text + " " + more
}
