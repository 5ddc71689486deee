package commands

import (
	"fmt"
	"strings"

	"github.com/gerunddev/orgco/internal/highlight"
	"github.com/gerunddev/orgco/internal/styles"
)

// Languages lists the code block languages and styles the highlighter knows,
// optionally filtered by a substring
func Languages(args []string) {
	f, err := parseFlags(args)
	if err != nil {
		fail("Invalid options", err)
	}
	filter := ""
	if len(f.positional) > 0 {
		filter = f.positional[0]
	}

	fmt.Println(styles.TitleStyle.Render("Languages"))
	for _, name := range matching(highlight.Languages(), filter) {
		fmt.Println("  " + name)
	}
	fmt.Println()
	fmt.Println(styles.TitleStyle.Render("Styles"))
	for _, name := range matching(highlight.Styles(), filter) {
		fmt.Println("  " + name)
	}
}

// matching keeps the names containing filter, ignoring case
func matching(names []string, filter string) []string {
	if filter == "" {
		return names
	}
	filter = strings.ToLower(filter)
	var out []string
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), filter) {
			out = append(out, name)
		}
	}
	return out
}
