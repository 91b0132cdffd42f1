// Package document models one resolved game file as three
// ownership-distinct trees: original (as read from the base source),
// patched (the merge result, treated as the baseline), and working (a
// caller-mutable copy of patched). Only the working tree may be
// mutated; diffing working against patched is what produces an
// exportable patch. Binary documents carry opaque bytes instead.
package document

import (
	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/vpath"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Document is one virtual path's resolved content.
type Document struct {
	// Path is the display-case virtual path the document was resolved
	// under.
	Path string
	// Kind never changes after construction.
	Kind Kind
	// Data holds the payload of binary documents. Nil for XML kinds.
	Data []byte
	// Provenance lists, in application order, the ids of the
	// extensions whose content shaped the patched tree.
	Provenance []string

	ident    *xmltree.Identifier
	original *etree.Document
	patched  *etree.Document
	working  *etree.Document

	table map[string]map[string]string
	index map[string]string
	wares map[string]*etree.Element
}

// NewXML builds an XML document from its base tree. The original is
// retained as read; the patched baseline starts as an identity-sharing
// copy, ready for extension patches.
func NewXML(path string, original *etree.Document, ident *xmltree.Identifier) (*Document, error) {
	if original == nil || original.Root() == nil {
		return nil, errors.Newf(errors.ErrDocumentParse, "document %s has no root element", path)
	}
	kind := Classify(path)
	if kind == KindBinary {
		return nil, errors.Newf(errors.ErrInvalidInput, "path %s does not name an XML document", path)
	}
	ident.Fill(original.Root())
	return &Document{
		Path:     vpath.Normalize(path),
		Kind:     kind,
		ident:    ident,
		original: original,
		patched:  ident.CopyDocWithIdentity(original),
	}, nil
}

// NewBinary wraps opaque bytes.
func NewBinary(path string, data []byte) *Document {
	return &Document{
		Path: vpath.Normalize(path),
		Kind: KindBinary,
		Data: data,
	}
}

// IsXML reports whether the document carries a tree rather than bytes.
func (d *Document) IsXML() bool {
	return d.Kind != KindBinary
}

// Original returns the tree as read from the base source. Callers must
// not mutate it.
func (d *Document) Original() *etree.Document {
	return d.original
}

// Patched returns the post-merge baseline tree. Callers must not
// mutate it; it is what working copies reset to and what exports diff
// against.
func (d *Document) Patched() *etree.Document {
	return d.patched
}

// Working returns the caller-mutable tree, creating it from the
// patched baseline on first access.
func (d *Document) Working() *etree.Document {
	if d.working == nil && d.patched != nil {
		d.working = d.ident.CopyDocWithIdentity(d.patched)
	}
	return d.working
}

// ResetWorking discards caller edits; the next Working call starts
// from the patched baseline again.
func (d *Document) ResetWorking() {
	d.working = nil
	d.invalidate()
}

// ApplyPatch applies an extension's patch document to the patched
// baseline and records the extension in the provenance list. Operation
// failures inside the patch are skipped by the engine; only structural
// failures surface here.
func (d *Document) ApplyPatch(patch *etree.Document, extensionID string) error {
	if !d.IsXML() {
		return errors.Newf(errors.ErrInvalidInput, "cannot patch binary document %s", d.Path)
	}
	if err := xmlpatch.Apply(d.patched, patch, d.ident); err != nil {
		return err
	}
	d.Provenance = append(d.Provenance, extensionID)
	d.working = nil
	d.invalidate()
	return nil
}

// ReplaceWith supersedes the patched baseline with a full replacement
// tree from an extension. Provenance accumulated so far is kept; the
// replacing extension is appended.
func (d *Document) ReplaceWith(replacement *etree.Document, extensionID string) error {
	if !d.IsXML() {
		return errors.Newf(errors.ErrInvalidInput, "cannot replace binary document %s", d.Path)
	}
	if replacement == nil || replacement.Root() == nil {
		return errors.Newf(errors.ErrDocumentParse, "replacement for %s has no root element", d.Path)
	}
	d.ident.Fill(replacement.Root())
	d.patched = d.ident.CopyDocWithIdentity(replacement)
	d.Provenance = append(d.Provenance, extensionID)
	d.working = nil
	d.invalidate()
	return nil
}

// Serialize renders the working tree, or returns the raw bytes for a
// binary document.
func (d *Document) Serialize() ([]byte, error) {
	if !d.IsXML() {
		return d.Data, nil
	}
	return xmltree.Serialize(d.Working())
}

// ExportPatch generates a verified patch document carrying the caller's
// working-tree edits relative to the patched baseline. A document with
// no edits yields a no-op patch.
func (d *Document) ExportPatch() (*etree.Document, error) {
	if !d.IsXML() {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot diff binary document %s", d.Path)
	}
	return xmlpatch.Generate(d.patched.Root(), d.Working().Root(), d.ident)
}
