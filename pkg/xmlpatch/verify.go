package xmlpatch

import (
	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Verify re-applies a patch to a pristine copy of original and requires
// structural equality with want: same tags, same attribute sets ignoring
// order, same trimmed text, same element-child sequences. The first
// divergence is reported in the error details.
func Verify(original *etree.Element, patch *etree.Document, want *etree.Element, ident *xmltree.Identifier) error {
	check := ident.CopyWithIdentity(original)
	doc := etree.NewDocument()
	doc.SetRoot(check)

	if err := Apply(doc, patch, ident); err != nil {
		return errors.Wrap(err, errors.ErrPatchVerify, "generated patch failed to apply")
	}
	if where, same := xmltree.FirstDivergence(doc.Root(), want); !same {
		return errors.New(errors.ErrPatchVerify,
			"patch does not reproduce the modified tree").
			WithDetail("divergence", where)
	}
	return nil
}
