// Package treediff generates a patch between two independently
// authored XML trees. Nothing links their nodes, so correspondence is
// recovered heuristically: a line diff over flattened node signatures,
// back-propagation of child matches to unmatched parents, and
// structural hashing for the stragglers. The result feeds the same
// generator the identity-based differ uses.
//
// This is an authoring and diagnostic aid. The merge pipeline never
// calls it; there, node identity is tracked explicitly.
package treediff

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Diff computes a patch document transforming original into modified.
// The generated patch is verified by re-application before it is
// returned.
func Diff(original, modified *etree.Document) (*etree.Document, error) {
	if original == nil || original.Root() == nil || modified == nil || modified.Root() == nil {
		return nil, errors.New(errors.ErrInvalidInput, "cannot diff a document without a root element")
	}

	ident := xmltree.NewIdentifier()
	ident.Fill(original.Root())
	ident.Fill(modified.Root())

	al := align(original.Root(), modified.Root(), ident)
	logger := logging.GetLogger("treediff")
	logger.Debug().
		Int("pairs", len(al.pairs)).
		Msg("Aligned nodes across trees")

	return xmlpatch.GenerateWith(original.Root(), modified.Root(), ident, al.same)
}

// alignment records which original-tree node corresponds to which
// modified-tree node, keyed by identity.
type alignment struct {
	ident   *xmltree.Identifier
	pairs   map[uint64]uint64 // original id -> modified id
	claimed map[uint64]bool   // modified ids already owned by a pair
	byID    map[uint64]*etree.Element
}

// align runs the signature line diff and derives the pair table. Equal
// runs pair elements positionally; afterwards the roots are paired when
// their tags agree, and child pairs are propagated to parents.
func align(a, b *etree.Element, ident *xmltree.Identifier) *alignment {
	al := &alignment{
		ident:   ident,
		pairs:   make(map[uint64]uint64),
		claimed: make(map[uint64]bool),
		byID:    make(map[uint64]*etree.Element),
	}

	elsA, elsB := flatten(a), flatten(b)
	for _, e := range elsB {
		al.byID[ident.ID(e)] = e
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(signatureText(elsA), signatureText(elsB))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	i, j := 0, 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for k := 0; k < n; k++ {
				al.pair(elsA[i+k], elsB[j+k])
			}
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			i += n
		case diffmatchpatch.DiffInsert:
			j += n
		}
	}

	if a.Tag == b.Tag && a.Space == b.Space {
		al.pair(a, b)
	}
	al.backfill(elsA)
	return al
}

// pair records a correspondence unless either side is already spoken
// for.
func (al *alignment) pair(a, b *etree.Element) {
	ia, ib := al.ident.ID(a), al.ident.ID(b)
	if ia == 0 || ib == 0 {
		return
	}
	if _, dup := al.pairs[ia]; dup || al.claimed[ib] {
		return
	}
	al.pairs[ia] = ib
	al.claimed[ib] = true
}

// backfill propagates child pairs upward: when a paired child sits
// under unpaired parents with matching tags, the parents pair too. A
// node whose own signature changed but whose children survived is
// recovered this way. Each pass lifts pairs one level, so the loop runs
// to a fixpoint.
func (al *alignment) backfill(elsA []*etree.Element) {
	for changed := true; changed; {
		changed = false
		for _, a := range elsA {
			ib, ok := al.pairs[al.ident.ID(a)]
			if !ok {
				continue
			}
			b := al.byID[ib]
			pa, pb := a.Parent(), b.Parent()
			if pa == nil || pb == nil {
				continue
			}
			if pa.Tag != pb.Tag || pa.Space != pb.Space {
				continue
			}
			if _, has := al.pairs[al.ident.ID(pa)]; has || al.claimed[al.ident.ID(pb)] {
				continue
			}
			al.pair(pa, pb)
			changed = true
		}
	}
}

// same is the correspondence handed to the patch generator. Shared
// identity covers nodes the generator itself copied; the pair table
// covers aligned nodes; structural hashes catch nodes the aligner
// missed, first including attributes, then ignoring them so a lone
// attribute edit still pairs a leaf with its counterpart.
func (al *alignment) same(a, b *etree.Element) bool {
	ia, ib := al.ident.ID(a), al.ident.ID(b)
	if ia != 0 && ia == ib {
		return true
	}
	if mapped, ok := al.pairs[ia]; ok {
		return mapped == ib
	}
	if a.Tag != b.Tag || a.Space != b.Space {
		return false
	}
	if xmltree.Hash(a, true) == xmltree.Hash(b, true) {
		return true
	}
	return xmltree.Hash(a, false) == xmltree.Hash(b, false)
}

// flatten lists the subtree's elements in document order.
func flatten(root *etree.Element) []*etree.Element {
	out := []*etree.Element{root}
	for _, c := range root.ChildElements() {
		out = append(out, flatten(c)...)
	}
	return out
}

// signature renders one element as a single diffable line: tag,
// canonical attribute set, trimmed text. Newlines are escaped so one
// element stays one line.
func signature(e *etree.Element) string {
	sig := e.FullTag() + "|" + xmltree.AttrSignature(e) + "|" + xmltree.Text(e)
	return strings.ReplaceAll(sig, "\n", `\n`)
}

func signatureText(els []*etree.Element) string {
	var b strings.Builder
	for _, e := range els {
		b.WriteString(signature(e))
		b.WriteByte('\n')
	}
	return b.String()
}
