package resolver

import (
	"sort"

	"github.com/beevik/etree"

	"github.com/modfold/modfold/pkg/document"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/location"
	"github.com/modfold/modfold/pkg/vpath"
)

// Resolve loads the document behind a virtual path. The second return
// is false on a simple miss; errors are reserved for broken content in
// the base layers and unsatisfiable patch-only paths.
func (r *Resolver) Resolve(path string) (*document.Document, bool, error) {
	key := vpath.Key(path)
	if key == "" {
		return nil, false, errors.New(errors.ErrInvalidInput, "empty virtual path")
	}
	if d, ok := r.cache[key]; ok {
		return d, true, nil
	}

	var d *document.Document
	var err error
	if vpath.IsXML(key) {
		d, err = r.resolveXML(path)
	} else {
		d, err = r.resolveBinary(path)
	}
	if err != nil {
		return nil, false, err
	}
	if d == nil {
		r.logger.Debug().Str("path", path).Msg("Virtual path not found")
		return nil, false, nil
	}

	r.cache[key] = d
	return d, true, nil
}

// MustResolve is the hard-fail boundary for callers that cannot
// proceed past a miss, like CLI extraction.
func (r *Resolver) MustResolve(path string) *document.Document {
	d, ok, err := r.Resolve(path)
	if err != nil {
		r.logger.Fatal().Err(err).Str("path", path).Msg("Resolve failed")
	}
	if !ok {
		r.logger.Fatal().Str("path", path).Msg("Virtual path not found in any source")
	}
	return d
}

// resolveBinary takes the bytes of the highest-priority source:
// extensions in reverse load order, then the override folder, then the
// base installation.
func (r *Resolver) resolveBinary(path string) (*document.Document, error) {
	for i := len(r.exts) - 1; i >= 0; i-- {
		es := r.exts[i]
		hit, err := es.view.Find(path)
		if err != nil {
			r.logger.Warn().Err(err).
				Str("path", path).
				Str("extension", es.ext.ID()).
				Msg("Extension contribution unreadable, skipping")
			continue
		}
		if hit != nil {
			return document.NewBinary(hit.Source.Path, hit.Data), nil
		}
	}

	hit, err := r.findBase(path)
	if err != nil {
		return nil, err
	}
	if hit == nil {
		return nil, nil
	}
	return document.NewBinary(hit.Source.Path, hit.Data), nil
}

// resolveXML determines the base document, then folds in every
// extension contribution in load order: patch documents apply through
// the engine, full replacements supersede. Broken extension
// contributions are logged and skipped; the merge continues.
func (r *Resolver) resolveXML(path string) (*document.Document, error) {
	var d *document.Document

	baseHit, err := r.findBase(path)
	if err != nil {
		return nil, err
	}
	if baseHit != nil {
		tree, perr := parseXML(baseHit.Data)
		if perr != nil {
			return nil, errors.Wrapf(perr, errors.ErrDocumentParse,
				"cannot parse %s from %s", path, baseHit.Source.Root)
		}
		d, err = document.NewXML(baseHit.Source.Path, tree, r.ident)
		if err != nil {
			return nil, err
		}
	}

	for _, es := range r.exts {
		hit, ferr := es.view.Find(path)
		if ferr != nil {
			r.logger.Warn().Err(ferr).
				Str("path", path).
				Str("extension", es.ext.ID()).
				Msg("Extension contribution unreadable, skipping")
			continue
		}
		if hit == nil {
			continue
		}
		tree, perr := parseXML(hit.Data)
		if perr != nil {
			r.logger.Warn().Err(perr).
				Str("path", path).
				Str("extension", es.ext.ID()).
				Msg("Extension contribution unparseable, skipping")
			continue
		}

		// A contribution is a patch exactly when it comes from an
		// extension, is not a substitute entry, and has root "diff".
		isPatch := !hit.Source.Substitute && tree.Root().Tag == "diff"

		switch {
		case d == nil && isPatch:
			return nil, errors.Newf(errors.ErrBaseMissing,
				"first contribution to %s is a patch with no base document", path).
				WithDetail("extension", es.ext.ID())
		case d == nil:
			nd, nerr := document.NewXML(hit.Source.Path, tree, r.ident)
			if nerr != nil {
				r.logger.Warn().Err(nerr).
					Str("path", path).
					Str("extension", es.ext.ID()).
					Msg("Extension contribution rejected, skipping")
				continue
			}
			nd.Provenance = append(nd.Provenance, es.ext.ID())
			d = nd
		case isPatch:
			if aerr := d.ApplyPatch(tree, es.ext.ID()); aerr != nil {
				r.logger.Warn().Err(aerr).
					Str("path", path).
					Str("extension", es.ext.ID()).
					Msg("Extension patch failed, skipping")
			}
		default:
			if rerr := d.ReplaceWith(tree, es.ext.ID()); rerr != nil {
				r.logger.Warn().Err(rerr).
					Str("path", path).
					Str("extension", es.ext.ID()).
					Msg("Extension replacement rejected, skipping")
			}
		}
	}

	return d, nil
}

// findBase picks the pre-extension layer for a path: the override
// folder when it has the file, else the base installation.
func (r *Resolver) findBase(path string) (*location.Hit, error) {
	if r.override != nil {
		hit, err := r.override.Find(path)
		if err != nil {
			return nil, err
		}
		if hit != nil {
			return hit, nil
		}
	}
	return r.base.Find(path)
}

// Enumerate lists resolvable virtual paths with the given prefix across
// every layer, sorted by lookup key. Later layers decide display case.
func (r *Resolver) Enumerate(prefix string) []string {
	display := make(map[string]string)
	merge := func(paths []string) {
		for _, p := range paths {
			display[vpath.Key(p)] = p
		}
	}
	merge(r.base.Enumerate(prefix))
	if r.override != nil {
		merge(r.override.Enumerate(prefix))
	}
	for _, es := range r.exts {
		merge(es.view.Enumerate(prefix))
	}

	keys := make([]string, 0, len(display))
	for k := range display {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, display[k])
	}
	return out
}

func parseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.ErrDocumentParse, "document has no root element")
	}
	return doc, nil
}
