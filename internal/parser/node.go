package parser

// Node is a block of a parsed org document. The set of node types is closed:
// Header, Paragraph, List, Table, DefinitionList and CodeBlock.
type Node interface {
	node()
}

// Document is the parsed form of an org file. Headers are not nested; each
// carries its own level.
type Document struct {
	Things   []Node
	Keywords map[string]string // #+KEY: value lines, keys upper-cased
}

// Header is a "* text" line
type Header struct {
	Level int
	Text  string
}

// Paragraph is a run of plain lines terminated by a blank line
type Paragraph struct {
	Lines []string
}

// List is a bullet or numbered list
type List struct {
	Ordered bool
	Items   []*ListItem
}

// ListItem is a single list entry with an optional nested list
type ListItem struct {
	Text string
	Sub  *List
}

// Table is a contiguous block of |-delimited rows
type Table struct {
	Rows []*TableRow
}

// TableRow is one row of a table. IsHeader is set when a separator row
// follows it.
type TableRow struct {
	Cols     []string
	IsHeader bool
}

// DefinitionList is a list of "term :: description" items
type DefinitionList struct {
	Items []*DefinitionItem
}

// DefinitionItem is a single term with its description and an optional
// nested definition list
type DefinitionItem struct {
	Term        string
	Description string
	Sub         *DefinitionList
}

// CodeBlock is the verbatim body of a #+BEGIN_SRC or #+BEGIN_EXAMPLE block
type CodeBlock struct {
	Language string
	Content  string
}

func (*Header) node()         {}
func (*Paragraph) node()      {}
func (*List) node()           {}
func (*Table) node()          {}
func (*DefinitionList) node() {}
func (*CodeBlock) node()      {}

// Things returns the items of the list
func (l *List) Things() []*ListItem { return l.Items }

// Things returns the nested items of the list item, if any
func (i *ListItem) Things() []*ListItem {
	if i.Sub == nil {
		return nil
	}
	return i.Sub.Items
}

// Things returns the rows of the table
func (t *Table) Things() []*TableRow { return t.Rows }

// Things returns the items of the definition list
func (l *DefinitionList) Things() []*DefinitionItem { return l.Items }

// Things returns the nested items of the definition, if any
func (i *DefinitionItem) Things() []*DefinitionItem {
	if i.Sub == nil {
		return nil
	}
	return i.Sub.Items
}

// String returns the item text
func (i *ListItem) String() string { return i.Text }

// String returns the verbatim code
func (c *CodeBlock) String() string { return c.Content }

// Keyword returns the value of a #+KEY: line, or "" when absent
func (d *Document) Keyword(key string) string {
	return d.Keywords[key]
}
