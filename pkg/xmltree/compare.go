package xmltree

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// Text returns the element's leading character data with surrounding
// whitespace trimmed. Indentation is presentation, not content; every
// text comparison and text patch operation works on the trimmed form.
func Text(e *etree.Element) string {
	return strings.TrimSpace(e.Text())
}

// Equal reports whether two elements are structurally identical: same
// tag, same attribute set ignoring order, same trimmed text, and
// pairwise-equal element children in order. Comments and whitespace
// layout do not participate.
func Equal(a, b *etree.Element) bool {
	_, same := FirstDivergence(a, b)
	return same
}

// FirstDivergence compares two subtrees and describes the first point
// where they differ, as a human-readable path. same is true when the
// trees are structurally identical.
func FirstDivergence(a, b *etree.Element) (at string, same bool) {
	return diverge(a, b, "/"+a.Tag)
}

func diverge(a, b *etree.Element, at string) (string, bool) {
	if a.Tag != b.Tag || a.Space != b.Space {
		return at + ": tag", false
	}
	if !sameAttrs(a, b) {
		return at + ": attributes", false
	}
	if Text(a) != Text(b) {
		return at + ": text", false
	}
	ac, bc := a.ChildElements(), b.ChildElements()
	if len(ac) != len(bc) {
		return fmt.Sprintf("%s: child count %d != %d", at, len(ac), len(bc)), false
	}
	for i := range ac {
		childAt := fmt.Sprintf("%s/%s[%d]", at, ac[i].Tag, i+1)
		if where, same := diverge(ac[i], bc[i], childAt); !same {
			return where, false
		}
	}
	return "", true
}

func sameAttrs(a, b *etree.Element) bool {
	if len(a.Attr) != len(b.Attr) {
		return false
	}
	for _, attr := range a.Attr {
		other := b.SelectAttr(attr.FullKey())
		if other == nil || other.Value != attr.Value {
			return false
		}
	}
	return true
}

// AttrSignature renders an element's attribute set in a canonical
// order, so that attribute-order differences never register as change.
func AttrSignature(e *etree.Element) string {
	if len(e.Attr) == 0 {
		return ""
	}
	parts := make([]string, len(e.Attr))
	for i, a := range e.Attr {
		parts[i] = a.FullKey() + "=" + a.Value
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Hash returns a structural hash of the subtree: tag, trimmed text,
// element children in order, and, when withAttrs is set, the canonical
// attribute set. Two subtrees with equal hashes are treated as
// interchangeable by the heuristic differ's fallback matching.
func Hash(e *etree.Element, withAttrs bool) uint64 {
	h := fnv.New64a()
	hashInto(h, e, withAttrs)
	return h.Sum64()
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func hashInto(h hashWriter, e *etree.Element, withAttrs bool) {
	h.Write([]byte(e.FullTag()))
	h.Write([]byte{0})
	if withAttrs {
		h.Write([]byte(AttrSignature(e)))
		h.Write([]byte{0})
	}
	h.Write([]byte(Text(e)))
	h.Write([]byte{1})
	for _, child := range e.ChildElements() {
		hashInto(h, child, withAttrs)
	}
	h.Write([]byte{2})
}

// Serialize renders a document with two-space indentation, leaving the
// caller's tree untouched. Identity is never written.
func Serialize(doc *etree.Document) ([]byte, error) {
	dup := doc.Copy()
	dup.Indent(2)
	return dup.WriteToBytes()
}
