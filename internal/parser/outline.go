package parser

// Section is a header together with the headers of deeper levels that
// follow it
type Section struct {
	Header   *Header
	Children []*Section
}

// Outline groups the flat headers of doc into a tree by level. A header
// nests under the closest preceding header of a lower level.
func Outline(doc *Document) []*Section {
	var roots []*Section
	var stack []*Section

	for _, thing := range doc.Things {
		h, ok := thing.(*Header)
		if !ok {
			continue
		}
		sec := &Section{Header: h}

		for len(stack) > 0 && stack[len(stack)-1].Header.Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, sec)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, sec)
		}
		stack = append(stack, sec)
	}

	return roots
}
