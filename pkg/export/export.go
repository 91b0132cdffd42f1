// Package export assembles an output extension from edited documents:
// one patch file (or loose binary) per staged document plus a generated
// content.xml whose dependency list is inferred from the union of the
// staged documents' provenance. All writes go through a synthfs
// pipeline, so the whole set is validated up front and dry-runnable.
package export

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/modfold/modfold/pkg/config"
	"github.com/modfold/modfold/pkg/document"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/paths"
	"github.com/modfold/modfold/pkg/resolver"
	"github.com/modfold/modfold/pkg/treediff"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Exporter stages documents and writes them out as one extension.
type Exporter struct {
	settings config.ExportSettings
	gameRoot string
	resolver *resolver.Resolver
	logger   zerolog.Logger
	dryRun   bool
	fs       synthfs.FileSystem

	files []stagedFile
	docs  []*document.Document
}

type stagedFile struct {
	rel  string
	data []byte
}

// New creates an exporter writing under the configured export
// directory, or the game's own extensions directory when unset.
func New(settings *config.Settings, r *resolver.Resolver, dryRun bool) (*Exporter, error) {
	if settings.Export.ID == "" {
		return nil, errors.New(errors.ErrInvalidInput, "export extension id is not configured")
	}
	return &Exporter{
		settings: settings.Export,
		gameRoot: settings.Game.Root,
		resolver: r,
		logger:   logging.GetLogger("export"),
		dryRun:   dryRun,
		fs:       filesystem.NewOSFileSystem("/"),
	}, nil
}

// Add stages one document. XML documents with working-tree edits
// contribute a patch file at their own virtual path; binary documents
// contribute their bytes; documents without edits stage nothing.
func (e *Exporter) Add(d *document.Document) error {
	data, err := e.resolver.Commit(d, resolver.CommitExtension)
	if err != nil {
		return err
	}
	if data == nil {
		e.logger.Debug().Str("path", d.Path).Msg("Document unchanged, nothing staged")
		return nil
	}
	e.files = append(e.files, stagedFile{rel: filepath.FromSlash(d.Path), data: data})
	e.docs = append(e.docs, d)
	e.logger.Debug().Str("path", d.Path).Int("bytes", len(data)).Msg("Staged document")
	return nil
}

// AddEdited stages a patch transforming d's merged baseline into an
// externally edited tree, for workflows where edits live in files on
// disk instead of the document's working tree. An edited tree equal to
// the baseline stages nothing.
func (e *Exporter) AddEdited(d *document.Document, edited *etree.Document) error {
	if d == nil || !d.IsXML() {
		return errors.New(errors.ErrInvalidInput, "external edits require an XML document")
	}
	patch, err := treediff.Diff(d.Patched(), edited)
	if err != nil {
		return err
	}
	if xmlpatch.IsNoop(patch) {
		e.logger.Debug().Str("path", d.Path).Msg("Edited copy matches baseline, nothing staged")
		return nil
	}
	data, err := xmltree.Serialize(patch)
	if err != nil {
		return err
	}
	e.files = append(e.files, stagedFile{rel: filepath.FromSlash(d.Path), data: data})
	e.docs = append(e.docs, d)
	e.logger.Debug().Str("path", d.Path).Int("ops", xmlpatch.OpCount(patch)).Msg("Staged external edits")
	return nil
}

// AddBytes stages raw bytes at a virtual path: binary replacements, or
// whole new files the game has no base document for.
func (e *Exporter) AddBytes(path string, data []byte) {
	e.files = append(e.files, stagedFile{rel: filepath.FromSlash(path), data: data})
	e.logger.Debug().Str("path", path).Int("bytes", len(data)).Msg("Staged raw file")
}

// Dir returns the output extension directory.
func (e *Exporter) Dir() string {
	base := e.settings.Dir
	if base == "" {
		base = filepath.Join(e.gameRoot, paths.ExtensionsDirName)
	}
	return filepath.Join(base, e.settings.ID)
}

// Result describes what an export wrote, or would write in dry-run
// mode.
type Result struct {
	// Dir is the extension output directory.
	Dir string

	// Files lists the written paths relative to Dir, content.xml first.
	Files []string

	// DryRun marks a result that only described the writes.
	DryRun bool
}

// Run generates the descriptor, plans every directory and file write,
// and executes the set through the pipeline. With nothing staged it is
// an error; an extension without content is meaningless.
func (e *Exporter) Run() (*Result, error) {
	if len(e.files) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no documents staged for export")
	}

	descriptor, err := e.buildDescriptor()
	if err != nil {
		return nil, err
	}

	all := append([]stagedFile{{rel: paths.DescriptorFileName, data: descriptor}}, e.files...)

	res := &Result{Dir: e.Dir(), DryRun: e.dryRun}
	for _, f := range all {
		res.Files = append(res.Files, f.rel)
	}

	if e.dryRun {
		for _, f := range all {
			e.logger.Info().
				Str("file", filepath.Join(res.Dir, f.rel)).
				Int("bytes", len(f.data)).
				Msg("Would write")
		}
		return res, nil
	}

	if err := e.execute(res.Dir, all); err != nil {
		return nil, err
	}
	e.logger.Info().
		Str("dir", res.Dir).
		Int("files", len(all)).
		Msg("Extension exported")
	return res, nil
}

// dirsFor lists every directory that must exist for the staged files,
// parents before children.
func dirsFor(root string, files []stagedFile) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(dir string) {
		for dir != "." && dir != string(filepath.Separator) && !seen[dir] {
			seen[dir] = true
			out = append(out, dir)
			dir = filepath.Dir(dir)
		}
	}
	add(root)
	for _, f := range files {
		add(filepath.Dir(filepath.Join(root, f.rel)))
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.Count(out[i], string(filepath.Separator)) <
			strings.Count(out[j], string(filepath.Separator))
	})
	return out
}
