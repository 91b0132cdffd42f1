package export

import (
	"sort"
	"time"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/xmltree"
)

// exportVersion is the numeric version stamped into generated
// descriptors. The game only compares these numerically, so a fresh
// export always starts at 100 (displayed as 1.00).
const exportVersion = "100"

// buildDescriptor renders the output extension's content.xml. The
// dependency list is the union of the staged documents' provenance in
// extension load order: every extension whose content an exported patch
// builds on must load first, so each becomes a hard dependency.
func (e *Exporter) buildDescriptor() ([]byte, error) {
	name := e.settings.Name
	if name == "" {
		name = e.settings.ID
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("content")
	root.CreateAttr("id", e.settings.ID)
	root.CreateAttr("name", name)
	root.CreateAttr("version", exportVersion)
	root.CreateAttr("date", time.Now().Format("2006-01-02"))
	root.CreateAttr("enabled", "true")

	for _, id := range e.dependencies() {
		dep := root.CreateElement("dependency")
		dep.CreateAttr("id", id)
	}
	return xmltree.Serialize(doc)
}

// dependencies collects the distinct provenance ids of the staged
// documents, ordered by extension load order. The output extension's
// own id never depends on itself even when re-exporting over a
// previous run.
func (e *Exporter) dependencies() []string {
	wanted := make(map[string]bool)
	for _, d := range e.docs {
		for _, id := range d.Provenance {
			if id != e.settings.ID {
				wanted[id] = true
			}
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	var out []string
	for _, id := range e.resolver.ListLoadOrderedExtensions() {
		if wanted[id] {
			out = append(out, id)
			delete(wanted, id)
		}
	}
	// Provenance from extensions no longer installed still orders after
	// the known ones, deterministically.
	if len(wanted) > 0 {
		rest := make([]string, 0, len(wanted))
		for id := range wanted {
			rest = append(rest, id)
		}
		sort.Strings(rest)
		out = append(out, rest...)
	}
	return out
}
