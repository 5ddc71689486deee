// Package highlight renders source code blocks as colored HTML with chroma
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style is configured
const DefaultStyle = "github"

var (
	// ErrNoLanguage is returned for code blocks without a language tag
	ErrNoLanguage = errors.New("no language given")
	// ErrUnknownLanguage is returned when chroma has no lexer for a language
	ErrUnknownLanguage = errors.New("unknown language")
)

// Highlighter formats code with a fixed chroma style. It is safe for
// concurrent use.
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New creates a highlighter for the named chroma style. Unknown styles fall
// back to chroma's default.
func New(style string) *Highlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &Highlighter{
		style:     styles.Get(style),
		formatter: html.New(html.TabWidth(8)),
	}
}

// Style returns the name of the style in use
func (h *Highlighter) Style() string {
	return h.style.Name
}

// Highlight returns source as a highlighted HTML <pre> block
func (h *Highlighter) Highlight(language, source string) (string, error) {
	if language == "" {
		return "", ErrNoLanguage
	}
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownLanguage, language)
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s source: %w", language, err)
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", fmt.Errorf("failed to format %s source: %w", language, err)
	}
	return sb.String(), nil
}

// Languages lists the language names chroma knows about
func Languages() []string {
	return lexers.Names(false)
}

// Styles lists the names of the registered chroma styles
func Styles() []string {
	return styles.Names()
}

// KnownStyle reports whether chroma has a style called name. New silently
// falls back to another style for unknown names.
func KnownStyle(name string) bool {
	return New(name).Style() == name
}
