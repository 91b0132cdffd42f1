package xmlpatch

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/xmltree"
)

const superRootTag = "superroot"

// Apply executes a patch document against doc's tree in document order.
// The tree is temporarily reparented under a super-root wrapper so an
// operation may replace the true document root.
//
// Each operation resolves its selector independently; zero or multiple
// matches, or a selector the engine cannot evaluate, skip that single
// operation with a logged error. Partial success is the contract
// extension authors rely on, so a skipped operation never aborts the
// surrounding patch. Nodes inserted by operations are identity-filled
// when ident is non-nil.
func Apply(doc *etree.Document, patch *etree.Document, ident *xmltree.Identifier) error {
	root := doc.Root()
	if root == nil {
		return errors.New(errors.ErrDocumentParse, "cannot patch a document with no root")
	}
	patchRoot := patch.Root()
	if patchRoot == nil || patchRoot.Tag != "diff" {
		return errors.New(errors.ErrDocumentParse, "patch document root must be <diff>")
	}

	logger := logging.GetLogger("xmlpatch.apply")

	wrapper := etree.NewElement(superRootTag)
	wrapper.AddChild(root)

	for _, op := range patchRoot.ChildElements() {
		if err := applyOp(wrapper, op, ident); err != nil {
			logger.Error().
				Str("op", op.Tag).
				Str("sel", op.SelectAttrValue("sel", "")).
				Err(err).
				Msg("Patch operation skipped")
		}
	}

	newRoot := firstChildElement(wrapper)
	if newRoot == nil {
		// Ops removed the root without a replacement. Reattach the
		// original so the document stays usable.
		doc.SetRoot(root)
		return errors.New(errors.ErrPatchOp, "patch removed the document root")
	}
	doc.SetRoot(newRoot)
	return nil
}

func applyOp(wrapper *etree.Element, op *etree.Element, ident *xmltree.Identifier) error {
	sel := op.SelectAttrValue("sel", "")
	if sel == "" {
		return errors.New(errors.ErrPatchOp, "operation has no sel attribute")
	}

	path, attr, isText := splitTarget(sel)
	cp, err := etree.CompilePath(rewriteSel(path))
	if err != nil {
		return errors.Wrapf(err, errors.ErrPatchOp, "unsupported selector %q", sel)
	}
	matches := wrapper.FindElementsPath(cp)
	if len(matches) != 1 {
		return errors.Newf(errors.ErrPatchOp,
			"selector %q matched %d nodes, need exactly 1", sel, len(matches))
	}
	target := matches[0]

	switch op.Tag {
	case "add":
		return applyAdd(op, target, attr, isText, ident)
	case "remove":
		return applyRemove(target, attr, isText)
	case "replace":
		return applyReplace(op, target, attr, isText, ident)
	default:
		return errors.Newf(errors.ErrPatchOp, "unsupported operation <%s>", op.Tag)
	}
}

func applyAdd(op, target *etree.Element, attr string, isText bool, ident *xmltree.Identifier) error {
	if attr != "" || isText {
		return errors.New(errors.ErrPatchOp, "add selector must address an element")
	}

	if typ := op.SelectAttrValue("type", ""); typ != "" {
		name := strings.TrimPrefix(typ, "@")
		if name == typ || name == "" {
			return errors.Newf(errors.ErrPatchOp, "add type %q is not an attribute reference", typ)
		}
		target.CreateAttr(name, xmltree.Text(op))
		return nil
	}

	nodes := contentNodes(op)
	if len(nodes) == 0 {
		text := xmltree.Text(op)
		if text == "" {
			return errors.New(errors.ErrPatchOp, "add operation has no content")
		}
		// Text-only content appends character data to the target.
		if existing := xmltree.Text(target); existing != "" {
			target.SetText(existing + text)
		} else {
			target.SetText(text)
		}
		return nil
	}

	pos := op.SelectAttrValue("pos", "")
	switch pos {
	case "", "append":
		for _, n := range nodes {
			target.AddChild(n)
		}
	case "prepend":
		for i, n := range nodes {
			target.InsertChildAt(i, n)
		}
	case "before", "after":
		parent := target.Parent()
		if parent == nil {
			return errors.Newf(errors.ErrPatchOp, "pos=%q needs a parented target", pos)
		}
		idx := target.Index()
		if pos == "after" {
			idx++
		}
		for i, n := range nodes {
			parent.InsertChildAt(idx+i, n)
		}
	default:
		return errors.Newf(errors.ErrPatchOp, "unsupported pos %q", pos)
	}
	fillNodes(ident, nodes)
	return nil
}

func applyRemove(target *etree.Element, attr string, isText bool) error {
	switch {
	case attr != "":
		if target.RemoveAttr(attr) == nil {
			return errors.Newf(errors.ErrPatchOp, "attribute %q not present", attr)
		}
	case isText:
		target.SetText("")
	default:
		parent := target.Parent()
		if parent == nil {
			return errors.New(errors.ErrPatchOp, "cannot remove an unparented node")
		}
		parent.RemoveChild(target)
	}
	return nil
}

func applyReplace(op, target *etree.Element, attr string, isText bool, ident *xmltree.Identifier) error {
	switch {
	case attr != "":
		if target.SelectAttr(attr) == nil {
			return errors.Newf(errors.ErrPatchOp, "attribute %q not present", attr)
		}
		target.CreateAttr(attr, xmltree.Text(op))
	case isText:
		target.SetText(xmltree.Text(op))
	default:
		repl := op.ChildElements()
		if len(repl) != 1 {
			return errors.Newf(errors.ErrPatchOp,
				"replace needs exactly one element, has %d", len(repl))
		}
		parent := target.Parent()
		if parent == nil {
			return errors.New(errors.ErrPatchOp, "cannot replace an unparented node")
		}
		dup := repl[0].Copy()
		parent.InsertChildAt(target.Index(), dup)
		parent.RemoveChild(target)
		ident.Fill(dup)
	}
	return nil
}
