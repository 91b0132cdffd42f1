package xmlpatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
)

// priorityAttrs are tried first when disambiguating same-tag siblings.
// They are the attributes humans key on when reading game XML, so
// selectors built from them survive unrelated edits better than
// positional ones.
var priorityAttrs = []string{"id", "name", "ref", "macro"}

type attrPred struct {
	key   string
	value string
}

// selectorFor builds an absolute selector for a node in the working
// tree. The result uniquely addresses the node at build time; because
// generated operations are applied to the working tree immediately,
// replaying them in order resolves against the same shape.
func selectorFor(e *etree.Element) string {
	var segs []string
	for cur := e; cur != nil; cur = cur.Parent() {
		if cur.Parent() == nil {
			// The root is a single element; no predicate needed.
			segs = append(segs, cur.Tag)
		} else {
			segs = append(segs, segmentFor(cur))
		}
	}
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return "/" + strings.Join(segs, "/")
}

// segmentFor renders one path step, adding attribute predicates only
// until the step is unique among same-tag siblings and falling back to
// a positional index when attributes cannot disambiguate.
func segmentFor(e *etree.Element) string {
	siblings := sameTagSiblings(e)
	if len(siblings) == 1 {
		return e.Tag
	}

	var preds []attrPred
	for _, cand := range candidateAttrs(e) {
		preds = append(preds, cand)
		if matchCount(siblings, preds) == 1 {
			var b strings.Builder
			b.WriteString(e.Tag)
			for _, p := range preds {
				fmt.Fprintf(&b, "[@%s='%s']", p.key, p.value)
			}
			return b.String()
		}
	}

	pos := 1
	for _, s := range siblings {
		if s == e {
			break
		}
		pos++
	}
	return fmt.Sprintf("%s[%d]", e.Tag, pos)
}

// candidateAttrs orders an element's attributes for predicate use:
// the priority list first, then the rest shortest-first. Values the
// selector syntax cannot carry are skipped entirely.
func candidateAttrs(e *etree.Element) []attrPred {
	usable := func(v string) bool {
		return !strings.ContainsAny(v, `'"[]`)
	}

	var out []attrPred
	used := make(map[string]bool)
	for _, pk := range priorityAttrs {
		if a := e.SelectAttr(pk); a != nil && usable(a.Value) {
			out = append(out, attrPred{key: a.FullKey(), value: a.Value})
			used[a.FullKey()] = true
		}
	}

	var rest []attrPred
	for _, a := range e.Attr {
		if used[a.FullKey()] || !usable(a.Value) {
			continue
		}
		rest = append(rest, attrPred{key: a.FullKey(), value: a.Value})
	}
	sort.SliceStable(rest, func(i, j int) bool {
		li := len(rest[i].key) + len(rest[i].value)
		lj := len(rest[j].key) + len(rest[j].value)
		if li != lj {
			return li < lj
		}
		return rest[i].key < rest[j].key
	})
	return append(out, rest...)
}

func sameTagSiblings(e *etree.Element) []*etree.Element {
	parent := e.Parent()
	if parent == nil {
		return []*etree.Element{e}
	}
	var out []*etree.Element
	for _, s := range parent.ChildElements() {
		if s.Tag == e.Tag && s.Space == e.Space {
			out = append(out, s)
		}
	}
	return out
}

func matchCount(siblings []*etree.Element, preds []attrPred) int {
	n := 0
	for _, s := range siblings {
		ok := true
		for _, p := range preds {
			a := s.SelectAttr(p.key)
			if a == nil || a.Value != p.value {
				ok = false
				break
			}
		}
		if ok {
			n++
		}
	}
	return n
}
