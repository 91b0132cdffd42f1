package resolver

import (
	"github.com/modfold/modfold/pkg/document"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
)

// CommitMode selects how a document's working state is rendered for
// writing.
type CommitMode int

const (
	// CommitLoose serializes the complete working tree, or the raw
	// bytes of a binary document.
	CommitLoose CommitMode = iota

	// CommitExtension renders a verified patch carrying only the
	// working-tree edits relative to the merged baseline. Binary
	// documents fall back to their full bytes, since only XML can be
	// patched.
	CommitExtension
)

// Commit renders a document for writing in the given mode. In
// CommitExtension mode an unedited document yields (nil, nil) so
// callers skip emitting a file at all.
func (r *Resolver) Commit(d *document.Document, mode CommitMode) ([]byte, error) {
	if d == nil {
		return nil, errors.New(errors.ErrInvalidInput, "cannot commit a nil document")
	}

	switch mode {
	case CommitLoose:
		return d.Serialize()

	case CommitExtension:
		if !d.IsXML() {
			return d.Data, nil
		}
		patch, err := d.ExportPatch()
		if err != nil {
			return nil, err
		}
		if xmlpatch.IsNoop(patch) {
			r.logger.Debug().Str("path", d.Path).Msg("No edits to commit")
			return nil, nil
		}
		r.logger.Debug().
			Str("path", d.Path).
			Int("ops", xmlpatch.OpCount(patch)).
			Msg("Committing patch")
		return xmltree.Serialize(patch)

	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown commit mode %d", mode)
	}
}
