package parser

import "strings"

const (
	// Characters that may open a markup span
	markupChars = "*/_=~+["
	// Characters allowed right before an opening emphasis marker
	preChars = "-({'\""
	// Characters allowed right after a closing emphasis marker
	postChars = "-.,:!?;'\")}["
)

// SpanKind identifies what a token returned by FindMarkup stands for
type SpanKind int

const (
	Text SpanKind = iota
	Bold
	Italic
	Underline
	Code
	Verbatim
	Strike
	Link
)

var emphasisKinds = map[byte]SpanKind{
	'*': Bold,
	'/': Italic,
	'_': Underline,
	'=': Code,
	'~': Verbatim,
	'+': Strike,
}

// Span is a decoded token of inline text
type Span struct {
	Kind    SpanKind
	Content string // inner text, or the description of a link
	Target  string // link target
}

// FindMarkup returns the token of text that begins at start and the index
// right after it. A token is either a complete markup span, a single markup
// character that opens nothing, or a run of plain text up to the next markup
// character. When no markup character is left from start on, it returns ""
// and len(text); the caller owns the plain tail text[start:].
func FindMarkup(text string, start int) (string, int) {
	if start < 0 {
		start = 0
	}
	if start >= len(text) {
		return "", len(text)
	}

	if isMarkupChar(text[start]) {
		if end := spanEnd(text, start); end > 0 {
			return text[start:end], end
		}
		return text[start : start+1], start + 1
	}

	next := strings.IndexAny(text[start:], markupChars)
	if next < 0 {
		return "", len(text)
	}
	return text[start : start+next], start + next
}

func spanEnd(text string, start int) int {
	if text[start] == '[' {
		return linkEnd(text, start)
	}
	return emphasisEnd(text, start)
}

// linkEnd finds the "]]" closing a "[[" at start
func linkEnd(text string, start int) int {
	if !strings.HasPrefix(text[start:], "[[") {
		return -1
	}
	i := strings.Index(text[start+2:], "]]")
	if i <= 0 {
		return -1
	}
	return start + 2 + i + 2
}

// emphasisEnd finds the shortest closing marker for the emphasis opened at
// start. Content is at least one character and may not start or end with
// whitespace.
func emphasisEnd(text string, start int) int {
	marker := text[start]
	if start > 0 && !isSpace(text[start-1]) && strings.IndexByte(preChars, text[start-1]) < 0 {
		return -1
	}
	if start+1 >= len(text) || isSpace(text[start+1]) {
		return -1
	}

	for j := start + 2; j < len(text); j++ {
		if text[j] != marker || isSpace(text[j-1]) {
			continue
		}
		if j+1 == len(text) || isSpace(text[j+1]) || strings.IndexByte(postChars, text[j+1]) >= 0 {
			return j + 1
		}
	}
	return -1
}

// ClassifySpan decodes a token returned by FindMarkup
func ClassifySpan(span string) Span {
	if len(span) > 4 && strings.HasPrefix(span, "[[") && strings.HasSuffix(span, "]]") {
		inner := span[2 : len(span)-2]
		if target, desc, ok := strings.Cut(inner, "]["); ok {
			return Span{Kind: Link, Target: target, Content: desc}
		}
		return Span{Kind: Link, Target: inner}
	}

	if len(span) >= 3 && span[0] == span[len(span)-1] {
		if kind, ok := emphasisKinds[span[0]]; ok {
			return Span{Kind: kind, Content: span[1 : len(span)-1]}
		}
	}
	return Span{Kind: Text, Content: span}
}

// Spans splits text into its tokens, including the plain tail that
// FindMarkup leaves to the caller. Neighbouring plain tokens are merged.
func Spans(text string) []Span {
	var spans []Span
	for i := 0; i < len(text); {
		token, next := FindMarkup(text, i)
		if token == "" {
			token = text[i:]
		}
		span := ClassifySpan(token)
		if n := len(spans); n > 0 && span.Kind == Text && spans[n-1].Kind == Text {
			spans[n-1].Content += span.Content
		} else {
			spans = append(spans, span)
		}
		i = next
	}
	return spans
}

func isMarkupChar(b byte) bool {
	return strings.IndexByte(markupChars, b) >= 0
}

// isSpace treats a carriage return like any other blank
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
