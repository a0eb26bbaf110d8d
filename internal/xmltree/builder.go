package xmltree

// Element is a mutable element used while assembling a fragment top-down.
// Freeze it into a Node once assembly is done.
type Element struct {
	name     string
	text     string
	children []*Element
}

// NewElement creates a detached element.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// SubElement creates an element named name as the last child of parent.
func SubElement(parent *Element, name string) *Element {
	child := NewElement(name)
	parent.children = append(parent.children, child)
	return child
}

// SetText replaces the element's text content.
func (e *Element) SetText(text string) {
	e.text = text
}

// Freeze returns an immutable snapshot of e and its descendants. Later changes
// to e do not affect the returned Node.
func (e *Element) Freeze() Node {
	n := Node{name: e.name, text: e.text}
	if len(e.children) > 0 {
		n.children = make([]Node, len(e.children))
		for i, c := range e.children {
			n.children[i] = c.Freeze()
		}
	}
	return n
}
