package document

import (
	"github.com/modfold/modfold/pkg/vpath"
)

// Kind is the closed set of document flavors. It is selected once at
// load time by Classify; callers dispatch on capability methods, never
// on the kind itself.
type Kind int

const (
	// KindGeneric is any XML document without a specialized cache.
	KindGeneric Kind = iota
	// KindTextTable is a localization page/text-id table under t/.
	KindTextTable
	// KindIndex is a name-to-path lookup table under index/.
	KindIndex
	// KindWares is the ware catalog at libraries/wares.xml.
	KindWares
	// KindBinary is any non-XML payload, kept as opaque bytes.
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindTextTable:
		return "texttable"
	case KindIndex:
		return "index"
	case KindWares:
		return "wares"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Classify picks the document kind from its virtual path alone.
func Classify(path string) Kind {
	if !vpath.IsXML(path) {
		return KindBinary
	}
	switch vpath.TopDir(path) {
	case "t":
		return KindTextTable
	case "index":
		return KindIndex
	}
	if vpath.Key(path) == "libraries/wares.xml" {
		return KindWares
	}
	return KindGeneric
}
