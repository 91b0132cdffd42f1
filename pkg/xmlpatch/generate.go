package xmlpatch

import (
	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Correspondence decides whether two elements denote the same logical
// node across tree generations.
type Correspondence func(a, b *etree.Element) bool

// largeFamily disables the reappearance lookahead for sibling lists
// bigger than this. Mismatches in such families become replacements,
// which costs patch minimality but never correctness.
const largeFamily = 500

// Generate computes a patch document transforming original into
// modified, using shared node identity as the correspondence signal.
// The patch is verified by re-application before it is returned; a
// verification failure is an error, never a silently broken patch.
func Generate(original, modified *etree.Element, ident *xmltree.Identifier) (*etree.Document, error) {
	ident.Fill(original)
	ident.Fill(modified)
	same := func(a, b *etree.Element) bool {
		ia, ib := ident.ID(a), ident.ID(b)
		return ia != 0 && ia == ib
	}
	return GenerateWith(original, modified, ident, same)
}

// GenerateWith is Generate with a caller-supplied correspondence. The
// heuristic tree differ passes an alignment-backed one for trees that
// share no identity.
func GenerateWith(original, modified *etree.Element, ident *xmltree.Identifier, same Correspondence) (*etree.Document, error) {
	if original == nil || modified == nil {
		return nil, errors.New(errors.ErrInvalidInput, "cannot diff a nil tree")
	}

	g := &generator{
		ident:  ident,
		same:   same,
		diff:   etree.NewElement("diff"),
		logger: logging.GetLogger("xmlpatch.generate"),
	}

	work := ident.CopyWithIdentity(original)
	if work.Tag != modified.Tag || !same(work, modified) {
		// Nothing survives; replace the whole document.
		g.op("replace", "/"+work.Tag).AddChild(modified.Copy())
	} else {
		g.diffNode(work, modified)
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.SetRoot(g.diff)

	if err := Verify(original, doc, modified, ident); err != nil {
		return nil, err
	}
	g.logger.Debug().Int("ops", OpCount(doc)).Msg("Generated patch")
	return doc, nil
}

type generator struct {
	ident  *xmltree.Identifier
	same   Correspondence
	diff   *etree.Element
	logger zerolog.Logger
}

// op appends a new operation element to the patch being built.
func (g *generator) op(kind, sel string) *etree.Element {
	op := g.diff.CreateElement(kind)
	op.CreateAttr("sel", sel)
	return op
}

// diffNode reconciles one matched node pair: attributes, text, then the
// child walk. Every emitted operation mutates the working tree
// immediately, so selectors built later see earlier edits.
func (g *generator) diffNode(w, m *etree.Element) {
	g.diffAttrs(w, m)
	g.diffText(w, m)
	g.diffChildren(w, m)
}

func (g *generator) diffAttrs(w, m *etree.Element) {
	removed := make([]string, 0)
	for _, a := range w.Attr {
		if m.SelectAttr(a.FullKey()) == nil {
			removed = append(removed, a.FullKey())
		}
	}
	for _, key := range removed {
		g.op("remove", selectorFor(w)+"/@"+key)
		w.RemoveAttr(key)
	}

	for _, a := range m.Attr {
		cur := w.SelectAttr(a.FullKey())
		switch {
		case cur == nil:
			op := g.op("add", selectorFor(w))
			op.CreateAttr("type", "@"+a.FullKey())
			op.SetText(a.Value)
			w.CreateAttr(a.FullKey(), a.Value)
		case cur.Value != a.Value:
			op := g.op("replace", selectorFor(w)+"/@"+a.FullKey())
			op.SetText(a.Value)
			w.CreateAttr(a.FullKey(), a.Value)
		}
	}
}

func (g *generator) diffText(w, m *etree.Element) {
	tw, tm := xmltree.Text(w), xmltree.Text(m)
	switch {
	case tw == tm:
	case tw == "":
		g.op("add", selectorFor(w)).SetText(tm)
		w.SetText(tm)
	case tm == "":
		g.op("remove", selectorFor(w)+"/text()")
		w.SetText("")
	default:
		g.op("replace", selectorFor(w)+"/text()").SetText(tm)
		w.SetText(tm)
	}
}

// diffChildren walks both element-child lists in lock-step. On a
// correspondence mismatch, whether each side's candidate reappears in
// the other side's remainder classifies the discrepancy: insertion,
// removal, replacement, or a reorder, which degrades to remove+add
// since the patch grammar has no move operation.
func (g *generator) diffChildren(w, m *etree.Element) {
	lookahead := len(w.ChildElements())+len(m.ChildElements()) <= largeFamily

	i, j := 0, 0
	for {
		wkids := w.ChildElements()
		mkids := m.ChildElements()
		switch {
		case i >= len(wkids) && j >= len(mkids):
			return
		case i >= len(wkids):
			g.emitInsert(w, mkids[j], i)
			i++
			j++
		case j >= len(mkids):
			g.emitRemove(wkids[i])
		default:
			wk, mk := wkids[i], mkids[j]
			if g.same(wk, mk) {
				g.diffNode(wk, mk)
				i++
				j++
				continue
			}
			wkLater := lookahead && g.anySame(wk, mkids[j+1:])
			mkLater := lookahead && g.anySameRev(wkids[i+1:], mk)
			switch {
			case mkLater && !wkLater:
				g.emitRemove(wk)
			case wkLater && !mkLater:
				g.emitInsert(w, mk, i)
				i++
				j++
			case wkLater && mkLater:
				// Both reappear: a reorder.
				g.emitRemove(wk)
			default:
				g.emitReplace(wk, mk)
				i++
				j++
			}
		}
	}
}

func (g *generator) anySame(a *etree.Element, rest []*etree.Element) bool {
	for _, b := range rest {
		if g.same(a, b) {
			return true
		}
	}
	return false
}

func (g *generator) anySameRev(rest []*etree.Element, b *etree.Element) bool {
	for _, a := range rest {
		if g.same(a, b) {
			return true
		}
	}
	return false
}

// emitInsert adds a copy of mk as the elemIdx-th element child of w.
// Head insertions use pos="prepend", interior ones anchor pos="after"
// on the settled previous sibling, and tail insertions plain-append.
func (g *generator) emitInsert(w, mk *etree.Element, elemIdx int) {
	dup := g.ident.CopyWithIdentity(mk)
	wkids := w.ChildElements()
	switch {
	case elemIdx >= len(wkids):
		g.op("add", selectorFor(w)).AddChild(mk.Copy())
		w.AddChild(dup)
	case elemIdx == 0:
		op := g.op("add", selectorFor(w))
		op.CreateAttr("pos", "prepend")
		op.AddChild(mk.Copy())
		w.InsertChildAt(0, dup)
	default:
		prev := wkids[elemIdx-1]
		op := g.op("add", selectorFor(prev))
		op.CreateAttr("pos", "after")
		op.AddChild(mk.Copy())
		w.InsertChildAt(prev.Index()+1, dup)
	}
}

func (g *generator) emitRemove(wk *etree.Element) {
	g.op("remove", selectorFor(wk))
	wk.Parent().RemoveChild(wk)
}

func (g *generator) emitReplace(wk, mk *etree.Element) {
	op := g.op("replace", selectorFor(wk))
	op.AddChild(mk.Copy())

	dup := g.ident.CopyWithIdentity(mk)
	parent := wk.Parent()
	parent.InsertChildAt(wk.Index(), dup)
	parent.RemoveChild(wk)
}
