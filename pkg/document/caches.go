package document

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/vpath"
	"github.com/modfold/modfold/pkg/xmltree"
)

// textRef matches a {page,id} cross reference inside localized text.
var textRef = regexp.MustCompile(`\{\s*(\d+)\s*,\s*(\d+)\s*\}`)

// Refresh rebuilds the kind-specific lookup cache from the current
// working tree. Lookups also build lazily; Refresh exists for callers
// that mutated the working tree and want the cache current now.
func (d *Document) Refresh() {
	d.invalidate()
	switch d.Kind {
	case KindTextTable:
		d.refreshTable()
	case KindIndex:
		d.refreshIndex()
	case KindWares:
		d.refreshWares()
	}
}

func (d *Document) invalidate() {
	d.table, d.index, d.wares = nil, nil, nil
}

// Text resolves a page/text-id pair from a text-table document,
// following {page,id} references inside the looked-up string. Unknown
// references and reference cycles are left verbatim. The second return
// is false for missing entries and for non-table documents.
func (d *Document) Text(page, id string) (string, bool) {
	if d.Kind != KindTextTable {
		return "", false
	}
	if d.table == nil {
		d.refreshTable()
	}
	raw, ok := d.table[page][id]
	if !ok {
		return "", false
	}
	seen := map[[2]string]bool{{page, id}: true}
	return d.resolveRefs(raw, seen), true
}

func (d *Document) resolveRefs(s string, seen map[[2]string]bool) string {
	return textRef.ReplaceAllStringFunc(s, func(m string) string {
		g := textRef.FindStringSubmatch(m)
		key := [2]string{g[1], g[2]}
		if seen[key] {
			return m
		}
		raw, ok := d.table[g[1]][g[2]]
		if !ok {
			return m
		}
		seen[key] = true
		out := d.resolveRefs(raw, seen)
		delete(seen, key)
		return out
	})
}

func (d *Document) refreshTable() {
	d.table = make(map[string]map[string]string)
	root := d.Working().Root()
	if root == nil {
		return
	}
	pages := root.FindElements(".//page")
	if root.Tag == "page" {
		pages = append(pages, root)
	}
	for _, page := range pages {
		pageID := page.SelectAttrValue("id", "")
		if pageID == "" {
			continue
		}
		entries := d.table[pageID]
		if entries == nil {
			entries = make(map[string]string)
			d.table[pageID] = entries
		}
		for _, t := range page.SelectElements("t") {
			if textID := t.SelectAttrValue("id", ""); textID != "" {
				entries[textID] = xmltree.Text(t)
			}
		}
	}
}

// Entry resolves an index name to its normalized virtual path. Name
// lookup is case-insensitive; values without an extension refer to XML
// files.
func (d *Document) Entry(name string) (string, bool) {
	if d.Kind != KindIndex {
		return "", false
	}
	if d.index == nil {
		d.refreshIndex()
	}
	v, ok := d.index[strings.ToLower(name)]
	return v, ok
}

func (d *Document) refreshIndex() {
	d.index = make(map[string]string)
	root := d.Working().Root()
	if root == nil {
		return
	}

	// Entries may reference other entries by name, in any order. The
	// complete name table is collected before any link is chased, so a
	// reference to an entry defined further down still resolves.
	raw := make(map[string]string)
	for _, e := range root.FindElements(".//entry") {
		name := e.SelectAttrValue("name", "")
		value := e.SelectAttrValue("value", "")
		if name == "" || value == "" {
			continue
		}
		raw[strings.ToLower(name)] = value
	}

	for name, value := range raw {
		seen := map[string]bool{name: true}
		for {
			key := strings.ToLower(value)
			next, ok := raw[key]
			if !ok || seen[key] {
				break
			}
			seen[key] = true
			value = next
		}
		d.index[name] = normalizeIndexPath(value)
	}
}

func normalizeIndexPath(v string) string {
	p := vpath.Normalize(v)
	if p != "" && vpath.Ext(p) == "" {
		p += ".xml"
	}
	return p
}

// Ware returns the ware element with the given id from the working
// tree. The element is live working content and may be edited.
func (d *Document) Ware(id string) (*etree.Element, bool) {
	if d.Kind != KindWares {
		return nil, false
	}
	if d.wares == nil {
		d.refreshWares()
	}
	w, ok := d.wares[id]
	return w, ok
}

func (d *Document) refreshWares() {
	d.wares = make(map[string]*etree.Element)
	root := d.Working().Root()
	if root == nil {
		return
	}
	for _, ware := range root.SelectElements("ware") {
		if id := ware.SelectAttrValue("id", ""); id != "" {
			d.wares[id] = ware
		}
	}
}
