// Package xmltree carries the node-identity side channel and the
// structural helpers shared by the patch engine and the differs.
//
// Identity is an integer, unique for the lifetime of the process,
// attached to elements and comments through a side table keyed by node
// handle. It never appears in serialized output. Copies made through
// CopyWithIdentity share the identity of their source nodes, which is
// what lets the diff generator recognize "the same logical node" across
// tree generations.
package xmltree

import (
	"github.com/beevik/etree"
)

// Identifier hands out identities and remembers them. One Identifier is
// owned per service object (the resolver); tests construct their own.
type Identifier struct {
	next uint64
	ids  map[etree.Token]uint64
}

// NewIdentifier creates an empty identity table. Identities start at 1;
// 0 means "no identity assigned".
func NewIdentifier() *Identifier {
	return &Identifier{next: 1, ids: make(map[etree.Token]uint64)}
}

// ID returns the identity of a node, or 0 when none was assigned.
func (ir *Identifier) ID(tok etree.Token) uint64 {
	if ir == nil {
		return 0
	}
	return ir.ids[tok]
}

// Assign gives the node a fresh identity if it has none.
func (ir *Identifier) Assign(tok etree.Token) {
	if ir == nil || tok == nil {
		return
	}
	if _, ok := ir.ids[tok]; ok {
		return
	}
	ir.ids[tok] = ir.next
	ir.next++
}

// Fill walks the subtree under root and assigns identities to every
// element and comment that lacks one. Idempotent: already-identified
// nodes keep their identity, so Fill can re-run after subtree insertion
// to cover only the new material.
func (ir *Identifier) Fill(root *etree.Element) {
	if ir == nil || root == nil {
		return
	}
	ir.Assign(root)
	for _, child := range root.Child {
		switch n := child.(type) {
		case *etree.Element:
			ir.Fill(n)
		case *etree.Comment:
			ir.Assign(n)
		}
	}
}

// CopyWithIdentity deep-copies an element and maps every copied node to
// its source node's identity. Source nodes without identity produce
// copies without identity.
func (ir *Identifier) CopyWithIdentity(src *etree.Element) *etree.Element {
	if src == nil {
		return nil
	}
	dst := src.Copy()
	if ir != nil {
		ir.mirror(src, dst)
	}
	return dst
}

// CopyDocWithIdentity deep-copies a document, preserving its XML
// declaration and mapping root-subtree identities like CopyWithIdentity.
func (ir *Identifier) CopyDocWithIdentity(doc *etree.Document) *etree.Document {
	if doc == nil {
		return nil
	}
	dup := doc.Copy()
	if ir != nil {
		if src, dst := doc.Root(), dup.Root(); src != nil && dst != nil {
			ir.mirror(src, dst)
		}
	}
	return dup
}

// mirror walks src and dst in parallel. Copy preserves child token
// structure exactly, so positions line up one to one.
func (ir *Identifier) mirror(src, dst *etree.Element) {
	if id, ok := ir.ids[src]; ok {
		ir.ids[dst] = id
	}
	for i, child := range src.Child {
		switch s := child.(type) {
		case *etree.Element:
			if d, ok := dst.Child[i].(*etree.Element); ok {
				ir.mirror(s, d)
			}
		case *etree.Comment:
			if id, ok := ir.ids[s]; ok {
				if d, ok := dst.Child[i].(*etree.Comment); ok {
					ir.ids[d] = id
				}
			}
		}
	}
}
