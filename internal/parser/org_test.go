package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func load(t *testing.T, name string) *Document {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return ParseString(string(data))
}

func TestCode00(t *testing.T) {
	doc := load(t, "code00.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	code, ok := doc.Things[0].(*CodeBlock)
	if !ok {
		t.Fatalf("Expected *CodeBlock, got %T", doc.Things[0])
	}
	if code.Language != "emacs-lisp" {
		t.Errorf("Language = %q, want %q", code.Language, "emacs-lisp")
	}
	expected := "(defun org-xor (a b)\n  \"Exclusive or.\"\n  (if a (not b) b))"
	if code.String() != expected {
		t.Errorf("Content = %q, want %q", code.String(), expected)
	}
}

func TestCodeBlockVariants(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *CodeBlock
	}{
		{
			name:     "lower case markers",
			input:    "#+begin_src go\nx := 1\n#+end_src",
			expected: &CodeBlock{Language: "go", Content: "x := 1"},
		},
		{
			name:     "no language",
			input:    "#+BEGIN_SRC\nplain\n#+END_SRC",
			expected: &CodeBlock{Language: "", Content: "plain"},
		},
		{
			name:     "example block",
			input:    "#+BEGIN_EXAMPLE\n* not a header\n| not a table |\n#+END_EXAMPLE",
			expected: &CodeBlock{Content: "* not a header\n| not a table |"},
		},
		{
			name:     "src end does not close example",
			input:    "#+BEGIN_EXAMPLE\n#+END_SRC\n#+END_EXAMPLE",
			expected: &CodeBlock{Content: "#+END_SRC"},
		},
		{
			name:     "crlf line endings",
			input:    "#+BEGIN_SRC sh\r\necho hi\r\n#+END_SRC\r\n",
			expected: &CodeBlock{Language: "sh", Content: "echo hi"},
		},
		{
			name:     "blank lines are kept",
			input:    "#+BEGIN_SRC python\na = 1\n\nb = 2\n#+END_SRC",
			expected: &CodeBlock{Language: "python", Content: "a = 1\n\nb = 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.input)
			if len(doc.Things) != 1 {
				t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
			}
			if diff := cmp.Diff(Node(tt.expected), doc.Things[0]); diff != "" {
				t.Errorf("diff (-want +got):\n%s", diff)
			}
		})
	}
}

// An unterminated block swallows the rest of the input instead of being
// demoted to a paragraph.
func TestUnterminatedCodeBlock(t *testing.T) {
	doc := ParseString("* Title\n#+BEGIN_SRC c\nint main() {\n\n* not a header")

	if len(doc.Things) != 2 {
		t.Fatalf("Expected 2 things, got %d", len(doc.Things))
	}
	code, ok := doc.Things[1].(*CodeBlock)
	if !ok {
		t.Fatalf("Expected *CodeBlock, got %T", doc.Things[1])
	}
	if code.Content != "int main() {\n\n* not a header" {
		t.Errorf("Content = %q", code.Content)
	}
}

func TestDefinition00(t *testing.T) {
	doc := load(t, "definition00.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	dl := doc.Things[0].(*DefinitionList)
	expected := []*DefinitionItem{
		{Term: "short1", Description: "long1"},
		{Term: "short2", Description: "long2"},
		{Term: "short3", Description: "long3"},
	}
	if diff := cmp.Diff(expected, dl.Things()); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestDefinition01(t *testing.T) {
	doc := load(t, "definition01.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	dl := doc.Things[0].(*DefinitionList)
	if len(dl.Things()) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(dl.Things()))
	}
	if n := len(dl.Things()[1].Things()); n != 4 {
		t.Errorf("Expected 4 nested items, got %d", n)
	}
	if dl.Things()[1].Things()[3].Term != "sub4" {
		t.Errorf("Nested term = %q, want sub4", dl.Things()[1].Things()[3].Term)
	}
	if dl.Things()[0].Sub != nil || dl.Things()[2].Sub != nil {
		t.Error("Expected only the second item to have nested definitions")
	}
}

func TestDefinitionForms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []*DefinitionItem
	}{
		{
			name:  "without bullet",
			input: "term :: description",
			expected: []*DefinitionItem{
				{Term: "term", Description: "description"},
			},
		},
		{
			name:  "empty description",
			input: "- term ::",
			expected: []*DefinitionItem{
				{Term: "term"},
			},
		},
		{
			name:  "continuation line",
			input: "- term :: first part\n  second part",
			expected: []*DefinitionItem{
				{Term: "term", Description: "first part second part"},
			},
		},
		{
			name:  "dedent returns to outer list",
			input: "- a :: 1\n    - b :: 2\n        - c :: 3\n- d :: 4",
			expected: []*DefinitionItem{
				{Term: "a", Description: "1", Sub: &DefinitionList{Items: []*DefinitionItem{
					{Term: "b", Description: "2", Sub: &DefinitionList{Items: []*DefinitionItem{
						{Term: "c", Description: "3"},
					}}},
				}}},
				{Term: "d", Description: "4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.input)
			if len(doc.Things) != 1 {
				t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
			}
			dl, ok := doc.Things[0].(*DefinitionList)
			if !ok {
				t.Fatalf("Expected *DefinitionList, got %T", doc.Things[0])
			}
			if diff := cmp.Diff(tt.expected, dl.Items); diff != "" {
				t.Errorf("diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHeader00(t *testing.T) {
	doc := load(t, "header00.org")

	expected := []Node{&Header{Level: 1, Text: "header1"}}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestHeader01(t *testing.T) {
	doc := load(t, "header01.org")

	expected := []Node{
		&Header{Level: 1, Text: "header11"},
		&Header{Level: 1, Text: "header12"},
		&Header{Level: 2, Text: "header21"},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestHeaderLevels(t *testing.T) {
	tests := []struct {
		input string
		level int
		text  string
	}{
		{"* one", 1, "one"},
		{"** two", 2, "two"},
		{"***** five", 5, "five"},
		{"***   spaced   ", 3, "spaced"},
		{"* TODO [#A] keep everything :tag:", 1, "TODO [#A] keep everything :tag:"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := ParseString(tt.input)
			if len(doc.Things) != 1 {
				t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
			}
			h, ok := doc.Things[0].(*Header)
			if !ok {
				t.Fatalf("Expected *Header, got %T", doc.Things[0])
			}
			if h.Level != tt.level || h.Text != tt.text {
				t.Errorf("Header = (%d, %q), want (%d, %q)", h.Level, h.Text, tt.level, tt.text)
			}
		})
	}
}

func TestNotHeaders(t *testing.T) {
	tests := []string{
		"*bold* at the start",
		"***",
		" * indented star is a bullet",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			doc := ParseString(input)
			for _, thing := range doc.Things {
				if _, ok := thing.(*Header); ok {
					t.Errorf("Did not expect a header in %q", input)
				}
			}
		})
	}
}

func TestList00(t *testing.T) {
	doc := load(t, "list00.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	lst := doc.Things[0].(*List)
	if lst.Ordered {
		t.Error("Expected unordered list")
	}
	for i, want := range []string{"item1", "item2", "item3"} {
		if got := lst.Things()[i].String(); got != want {
			t.Errorf("Item %d = %q, want %q", i, got, want)
		}
	}
}

func TestList02(t *testing.T) {
	doc := load(t, "list02.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	lst := doc.Things[0].(*List)
	if len(lst.Things()) != 7 {
		t.Fatalf("Expected 7 items, got %d", len(lst.Things()))
	}

	nested := map[int]int{1: 2, 4: 2, 6: 1}
	for i, item := range lst.Things() {
		if got := len(item.Things()); got != nested[i] {
			t.Errorf("Item %d has %d nested items, want %d", i, got, nested[i])
		}
	}
	if !lst.Things()[6].Sub.Ordered {
		t.Error("Expected nested numeric list to be ordered")
	}
	if lst.Things()[4].Sub.Ordered {
		t.Error("Expected nested '+' list to be unordered")
	}
}

func TestList03(t *testing.T) {
	doc := load(t, "list03.org")

	if len(doc.Things) != 1 {
		t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
	}
	lst := doc.Things[0].(*List)
	if !lst.Ordered {
		t.Error("Expected ordered list")
	}
	for i, want := range []string{"item1", "item2", "item3", "item4"} {
		if got := lst.Things()[i].String(); got != want {
			t.Errorf("Item %d = %q, want %q", i, got, want)
		}
	}
}

// depth reports how many list levels hang below l
func depth(l *List) int {
	d := 1
	for _, item := range l.Items {
		if item.Sub != nil {
			if sub := depth(item.Sub) + 1; sub > d {
				d = sub
			}
		}
	}
	return d
}

func TestListNestingIgnoresAbsoluteColumns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		depth int
	}{
		{"flat", "- a\n- b", 1},
		{"two spaces", "- a\n  - b\n    - c", 3},
		{"wide steps", "- a\n        - b\n                - c", 3},
		{"tabs", "- a\n\t- b\n\t\t- c", 3},
		{"back to middle", "- a\n  - b\n    - c\n  - d", 3},
		{"indented root", "   - a\n      - b\n   - c", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.input)
			if len(doc.Things) != 1 {
				t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
			}
			if got := depth(doc.Things[0].(*List)); got != tt.depth {
				t.Errorf("depth = %d, want %d", got, tt.depth)
			}
		})
	}
}

func TestListStructure(t *testing.T) {
	doc := load(t, "list04.org")

	expected := []Node{
		&List{Ordered: true, Items: []*ListItem{
			{Text: "item1", Sub: &List{Items: []*ListItem{
				{Text: "item11", Sub: &List{Items: []*ListItem{
					{Text: "item111"},
				}}},
			}}},
			{Text: "item2"},
		}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestListContinuation(t *testing.T) {
	doc := load(t, "list05.org")

	lst := doc.Things[0].(*List)
	if got := lst.Items[0].Text; got != "item1 starts here and continues here" {
		t.Errorf("Item text = %q", got)
	}
	if len(lst.Items) != 2 {
		t.Errorf("Expected 2 items, got %d", len(lst.Items))
	}
}

func TestListBoundaries(t *testing.T) {
	doc := load(t, "list07.org")

	if len(doc.Things) != 3 {
		t.Fatalf("Expected 3 things, got %d", len(doc.Things))
	}
	if doc.Things[0].(*List).Ordered {
		t.Error("Expected first list unordered")
	}
	if !doc.Things[1].(*List).Ordered {
		t.Error("Expected second list ordered")
	}
	if _, ok := doc.Things[2].(*Paragraph); !ok {
		t.Errorf("Expected trailing *Paragraph, got %T", doc.Things[2])
	}
}

func TestMarkerKindChangeStartsNewList(t *testing.T) {
	doc := ParseString("- a\n- b\n1. c\n2. d")

	if len(doc.Things) != 2 {
		t.Fatalf("Expected 2 lists, got %d", len(doc.Things))
	}
	if doc.Things[0].(*List).Ordered || !doc.Things[1].(*List).Ordered {
		t.Error("Expected an unordered list followed by an ordered one")
	}
}

func TestParagraph00(t *testing.T) {
	doc := load(t, "paragraph00.org")

	if len(doc.Things) != 4 {
		t.Fatalf("Expected 4 things, got %d", len(doc.Things))
	}
	for i, want := range []int{4, 6, 6, 6} {
		if got := len(doc.Things[i].(*Paragraph).Lines); got != want {
			t.Errorf("Paragraph %d has %d lines, want %d", i, got, want)
		}
	}
}

func TestParagraphEndsAtBlock(t *testing.T) {
	doc := ParseString("some text\n  indented text\n* Header\nmore text\n| a | b |")

	expected := []Node{
		&Paragraph{Lines: []string{"some text", "indented text"}},
		&Header{Level: 1, Text: "Header"},
		&Paragraph{Lines: []string{"more text"}},
		&Table{Rows: []*TableRow{{Cols: []string{"a", "b"}}}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestTable00(t *testing.T) {
	doc := load(t, "table00.org")

	expected := []Node{
		&Table{Rows: []*TableRow{
			{Cols: []string{"td11", "td12"}},
			{Cols: []string{"td21", "td22"}},
		}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestTableCounts(t *testing.T) {
	tests := []struct {
		file string
		rows []int
	}{
		{"table01.org", []int{2, 2}},
		{"table02.org", []int{2, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			doc := load(t, tt.file)
			if len(doc.Things) != len(tt.rows) {
				t.Fatalf("Expected %d tables, got %d", len(tt.rows), len(doc.Things))
			}
			for i, want := range tt.rows {
				if got := len(doc.Things[i].(*Table).Things()); got != want {
					t.Errorf("Table %d has %d rows, want %d", i, got, want)
				}
			}
		})
	}
}

func TestTable03(t *testing.T) {
	doc := load(t, "table03.org")

	expected := []Node{
		&Table{Rows: []*TableRow{
			{Cols: []string{"th1", "th2"}, IsHeader: true},
			{Cols: []string{"td1", "td2"}},
		}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestTableSeparators(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		headers []bool
	}{
		{"leading border", "|---|\n| a |\n| b |", []bool{false, false}},
		{"trailing rule", "| a |\n| b |\n|---|", []bool{false, true}},
		{"plus separator", "| a | b |\n|---+---|\n| c | d |", []bool{true, false}},
		{"missing trailing pipe", "| a | b\n|---+---\n| c | d", []bool{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.input)
			table := doc.Things[0].(*Table)
			if len(table.Rows) != len(tt.headers) {
				t.Fatalf("Expected %d rows, got %d", len(tt.headers), len(table.Rows))
			}
			for i, want := range tt.headers {
				if table.Rows[i].IsHeader != want {
					t.Errorf("Row %d IsHeader = %v, want %v", i, table.Rows[i].IsHeader, want)
				}
			}
		})
	}
}

func TestOnlySeparatorsProducesNothing(t *testing.T) {
	doc := ParseString("|---+---|")
	if len(doc.Things) != 0 {
		t.Errorf("Expected no things, got %d", len(doc.Things))
	}
}

func TestUnterminatedCodeBlockFinalNewline(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"final newline", "#+BEGIN_SRC\nx\n", "x"},
		{"final crlf", "#+BEGIN_SRC\r\nx\r\n", "x"},
		{"trailing blank line kept", "#+BEGIN_SRC\nx\n\n", "x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.input)
			if len(doc.Things) != 1 {
				t.Fatalf("Expected 1 thing, got %d", len(doc.Things))
			}
			code := doc.Things[0].(*CodeBlock)
			if code.Content != tt.expected {
				t.Errorf("Content = %q, want %q", code.Content, tt.expected)
			}
		})
	}
}

// A definition indented under a list item is not nested in it: list items
// only hold sub-lists, so the definition starts a new top-level block.
func TestDefinitionUnderListItem(t *testing.T) {
	doc := ParseString("- a\n  - t :: d\n- b")

	expected := []Node{
		&List{Items: []*ListItem{{Text: "a"}}},
		&DefinitionList{Items: []*DefinitionItem{{Term: "t", Description: "d"}}},
		&List{Items: []*ListItem{{Text: "b"}}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestHashWithoutSpaceIsText(t *testing.T) {
	doc := ParseString("#hashtag line\n# dropped comment\nsecond")

	expected := []Node{
		&Paragraph{Lines: []string{"#hashtag line"}},
		&Paragraph{Lines: []string{"second"}},
	}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestKeywordsAndComments(t *testing.T) {
	doc := ParseString("#+TITLE: My notes\n#+author: Someone\n# a comment\n\nBody")

	if doc.Keyword("TITLE") != "My notes" {
		t.Errorf("TITLE = %q", doc.Keyword("TITLE"))
	}
	if doc.Keyword("AUTHOR") != "Someone" {
		t.Errorf("AUTHOR = %q", doc.Keyword("AUTHOR"))
	}
	expected := []Node{&Paragraph{Lines: []string{"Body"}}}
	if diff := cmp.Diff(expected, doc.Things); diff != "" {
		t.Errorf("diff (-want +got):\n%s", diff)
	}
}

func TestBlankLinesCollapse(t *testing.T) {
	for _, input := range []string{"", "\n", "   \n\t\n\n", "\r\n\r\n"} {
		if doc := ParseString(input); len(doc.Things) != 0 {
			t.Errorf("ParseString(%q) produced %d things", input, len(doc.Things))
		}
	}
}

func TestParseIsDeterministic(t *testing.T) {
	files := []string{"text00.org", "list02.org", "definition01.org", "paragraph00.org"}
	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			first := load(t, name)
			second := load(t, name)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Parse not deterministic:\n%s", diff)
			}
		})
	}
}

func TestText00(t *testing.T) {
	doc := load(t, "text00.org")

	if doc.Keyword("TITLE") != "Sample document" {
		t.Errorf("TITLE = %q", doc.Keyword("TITLE"))
	}
	kinds := []string{"*parser.Header", "*parser.Paragraph", "*parser.Header", "*parser.List", "*parser.Table", "*parser.CodeBlock"}
	if len(doc.Things) != len(kinds) {
		t.Fatalf("Expected %d things, got %d", len(kinds), len(doc.Things))
	}
	for i, thing := range doc.Things {
		if got := typeName(thing); got != kinds[i] {
			t.Errorf("Thing %d is %s, want %s", i, got, kinds[i])
		}
	}
}

func typeName(n Node) string {
	switch n.(type) {
	case *Header:
		return "*parser.Header"
	case *Paragraph:
		return "*parser.Paragraph"
	case *List:
		return "*parser.List"
	case *Table:
		return "*parser.Table"
	case *DefinitionList:
		return "*parser.DefinitionList"
	case *CodeBlock:
		return "*parser.CodeBlock"
	}
	return "unknown"
}
