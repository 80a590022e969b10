// Package envelope serializes report queries and creation commands into the
// engine's ENVELOPE XML dialect and parses raw response payloads into a
// generic node tree. It has no knowledge of the domain entities; that lives
// in the decode package.
package envelope

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/tallygate-dev/tallygate/internal/tallyerr"
)

// Node is one element of a decoded response tree.
type Node struct {
	el *etree.Element
}

// Decode parses a raw response payload. It fails only on XML that cannot be
// parsed; missing elements are legal (an empty report simply has no entity
// nodes) and are never an error here.
func Decode(payload []byte) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(payload); err != nil {
		return nil, &tallyerr.MalformedError{Err: err}
	}
	root := doc.Root()
	if root == nil {
		return nil, &tallyerr.MalformedError{Err: errors.New("document has no root element")}
	}
	return &Node{el: root}, nil
}

// Tag returns the element name, including any dotted suffix the engine uses
// (for example ALLLEDGERENTRIES.LIST).
func (n *Node) Tag() string {
	if n.el.Space != "" {
		return n.el.Space + ":" + n.el.Tag
	}
	return n.el.Tag
}

// Text returns the element's own character data, trimmed.
func (n *Node) Text() string {
	return strings.TrimSpace(n.el.Text())
}

// Attr returns the named attribute's value.
func (n *Node) Attr(name string) (string, bool) {
	if a := n.el.SelectAttr(name); a != nil {
		return strings.TrimSpace(a.Value), true
	}
	return "", false
}

// Child returns the first direct child element with the given tag.
func (n *Node) Child(tag string) (*Node, bool) {
	for _, c := range n.el.ChildElements() {
		if (&Node{el: c}).Tag() == tag {
			return &Node{el: c}, true
		}
	}
	return nil, false
}

// Children returns every direct child element with the given tag, in
// document order.
func (n *Node) Children(tag string) []*Node {
	var out []*Node
	for _, c := range n.el.ChildElements() {
		if (&Node{el: c}).Tag() == tag {
			out = append(out, &Node{el: c})
		}
	}
	return out
}

// All returns every element with the given tag in the subtree rooted at n,
// including n itself, in document order. Response layouts vary between
// engine versions, so collection decoding searches the whole tree rather
// than assuming a fixed nesting.
func (n *Node) All(tag string) []*Node {
	var out []*Node
	n.walk(func(e *Node) {
		if e.Tag() == tag {
			out = append(out, e)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.el.ChildElements() {
		(&Node{el: c}).walk(fn)
	}
}
