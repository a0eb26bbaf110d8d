// Package xmltree models XML fragments as immutable tree values and renders
// them through encoding/xml.
//
// Structure and rendering are separate: entities build a Node, tests compare
// Nodes structurally, and only the serializer deals with escaping and layout.
// Attributes and namespaces are not modelled.
package xmltree

// Node is an element with optional text content and ordered children.
// Methods never modify the receiver; the zero Node has an empty name and is
// rejected by the serializer.
type Node struct {
	name     string
	text     string
	children []Node
}

// New returns an element named name with the given children.
func New(name string, children ...Node) Node {
	return Node{name: name, children: cloneNodes(children)}
}

// Leaf returns a childless element holding text.
func Leaf(name, text string) Node {
	return Node{name: name, text: text}
}

func (n Node) Name() string { return n.name }

func (n Node) Text() string { return n.text }

// Children returns a copy of the child list.
func (n Node) Children() []Node {
	return cloneNodes(n.children)
}

// Len returns the number of direct children.
func (n Node) Len() int { return len(n.children) }

// WithText returns a copy of n with its text replaced.
func (n Node) WithText(text string) Node {
	out := n.clone()
	out.text = text
	return out
}

// Append returns a copy of n with children added after the existing ones.
func (n Node) Append(children ...Node) Node {
	out := n.clone()
	out.children = append(out.children, cloneNodes(children)...)
	return out
}

// Child returns the first direct child named name.
func (n Node) Child(name string) (Node, bool) {
	for _, c := range n.children {
		if c.name == name {
			return c, true
		}
	}
	return Node{}, false
}

// ChildrenNamed returns every direct child named name, in order.
func (n Node) ChildrenNamed(name string) []Node {
	var out []Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c.clone())
		}
	}
	return out
}

// Equal reports whether n and o have the same name, text and children.
func (n Node) Equal(o Node) bool {
	if n.name != o.name || n.text != o.text || len(n.children) != len(o.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(o.children[i]) {
			return false
		}
	}
	return true
}

func (n Node) clone() Node {
	return Node{name: n.name, text: n.text, children: cloneNodes(n.children)}
}

func cloneNodes(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, c := range nodes {
		out[i] = c.clone()
	}
	return out
}
