// Package extension discovers installed extensions, parses their
// descriptors, and computes the dependency-respecting load order.
package extension

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/errors"
)

// Dependency is one ordered dependency reference from a descriptor.
type Dependency struct {
	ID       string
	Optional bool
}

// Descriptor is the parsed content.xml of one extension. Only the fields
// this core consumes are modeled; unknown attributes and children are
// ignored.
type Descriptor struct {
	// ID is the extension identifier. Case-sensitive, and not guaranteed
	// globally unique across installed extensions.
	ID      string
	Name    string
	Version string

	// EnabledByDefault is the descriptor's own enabled flag. A user
	// preference override beats it.
	EnabledByDefault bool

	// Dependencies in descriptor order.
	Dependencies []Dependency
}

// ParseDescriptor parses content.xml bytes.
func ParseDescriptor(data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrExtensionParse, "unreadable content.xml")
	}
	root := doc.Root()
	if root == nil || root.Tag != "content" {
		return nil, errors.New(errors.ErrExtensionParse, "content.xml has no <content> root")
	}

	d := &Descriptor{
		ID:               root.SelectAttrValue("id", ""),
		Name:             root.SelectAttrValue("name", ""),
		Version:          root.SelectAttrValue("version", ""),
		EnabledByDefault: parseFlag(root.SelectAttrValue("enabled", "true")),
	}
	if d.ID == "" {
		return nil, errors.New(errors.ErrExtensionParse, "content.xml missing id attribute")
	}

	for _, dep := range root.SelectElements("dependency") {
		id := dep.SelectAttrValue("id", "")
		if id == "" {
			// Version-only dependency entries carry no ordering constraint.
			continue
		}
		d.Dependencies = append(d.Dependencies, Dependency{
			ID:       id,
			Optional: parseFlag(dep.SelectAttrValue("optional", "false")),
		})
	}
	return d, nil
}

// parseFlag implements the descriptor boolean convention: "true" or "1",
// case-insensitively.
func parseFlag(s string) bool {
	return strings.EqualFold(s, "true") || s == "1"
}
