// Package xmlpatch implements the structural diff/patch engine: applying
// patch documents (a subset of RFC 5261), generating minimal patches
// between tree generations, and verifying generated patches by
// re-application.
//
// A patch document has root <diff> and children <add>, <remove> and
// <replace>, each addressing its target with a sel XPath attribute. The
// selector suffix picks the target class: "/@name" an attribute,
// "/text()" character data, anything else the node itself. Attribute
// additions carry a side type="@name" marker instead, since a selector
// cannot reference an attribute that does not exist yet.
package xmlpatch

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/xmltree"
)

// splitTarget classifies a selector by suffix and returns the element
// path portion.
func splitTarget(sel string) (path, attr string, text bool) {
	if strings.HasSuffix(sel, "/text()") {
		return sel[:len(sel)-len("/text()")], "", true
	}
	if i := strings.LastIndex(sel, "/@"); i >= 0 {
		name := sel[i+2:]
		if name != "" && !strings.ContainsAny(name, `/[]'"=`) {
			return sel[:i], name, false
		}
	}
	return sel, "", false
}

// rewriteSel turns an absolute document selector into one resolving
// relative to the super-root wrapper, whose single child element is the
// true document root.
func rewriteSel(path string) string {
	switch {
	case path == "":
		return "."
	case strings.HasPrefix(path, "/"):
		return "." + path
	default:
		return "./" + path
	}
}

// IsNoop reports whether a patch document carries no operations.
func IsNoop(patch *etree.Document) bool {
	root := patch.Root()
	return root == nil || len(root.ChildElements()) == 0
}

// OpCount returns the number of operations in a patch document.
func OpCount(patch *etree.Document) int {
	root := patch.Root()
	if root == nil {
		return 0
	}
	return len(root.ChildElements())
}

func firstChildElement(e *etree.Element) *etree.Element {
	for _, c := range e.Child {
		if el, ok := c.(*etree.Element); ok {
			return el
		}
	}
	return nil
}

// contentNodes copies an operation's payload: its element and comment
// children, in order. Character data between them is formatting.
func contentNodes(op *etree.Element) []etree.Token {
	var nodes []etree.Token
	for _, child := range op.Child {
		switch n := child.(type) {
		case *etree.Element:
			nodes = append(nodes, n.Copy())
		case *etree.Comment:
			nodes = append(nodes, &etree.Comment{Data: n.Data})
		}
	}
	return nodes
}

func fillNodes(ident *xmltree.Identifier, nodes []etree.Token) {
	for _, n := range nodes {
		switch t := n.(type) {
		case *etree.Element:
			ident.Fill(t)
		case *etree.Comment:
			ident.Assign(t)
		}
	}
}
