package commands

import (
	"fmt"
	"strings"

	"github.com/gerunddev/orgco/internal/parser"
	"github.com/gerunddev/orgco/internal/source"
	"github.com/gerunddev/orgco/internal/styles"
	"github.com/k0kubun/pp"
)

// Tree prints the parsed document structure of an org file
func Tree(args []string) {
	f, err := parseFlags(args)
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "tree FILE [--no-color]")

	doc := parseFile(f.positional[0])
	if f.switches["no-color"] {
		pp.ColoringEnabled = false
	}
	if _, err := pp.Println(doc); err != nil {
		fail("Failed to print tree", err)
	}
}

// Outline prints the heading tree of an org file
func Outline(args []string) {
	f, err := parseFlags(args)
	if err != nil {
		fail("Invalid options", err)
	}
	needArgs(f, 1, "outline FILE")

	doc := parseFile(f.positional[0])
	if title := doc.Keyword("TITLE"); title != "" {
		fmt.Println(styles.TitleStyle.Render(title))
		fmt.Println()
	}

	lines := outlineLines(parser.Outline(doc), 0)
	if len(lines) == 0 {
		fmt.Println(styles.DimStyle.Render("No headings"))
		return
	}
	for _, line := range lines {
		fmt.Println(line)
	}
}

// outlineLines renders sections as an indented list, one heading per line
func outlineLines(sections []*parser.Section, depth int) []string {
	var lines []string
	for _, sec := range sections {
		text := styles.HeadingStyle(sec.Header.Level).Render(sec.Header.Text)
		lines = append(lines, strings.Repeat("  ", depth)+"• "+text)
		lines = append(lines, outlineLines(sec.Children, depth+1)...)
	}
	return lines
}

func parseFile(path string) *parser.Document {
	lines, err := source.ReadFile(path)
	if err != nil {
		fail("Cannot read org file", err)
	}
	return parser.Parse(lines)
}
