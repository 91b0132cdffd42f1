// Package location models one physical content location: a directory
// owning loose files plus an ordered family of catalogs discovered by
// naming convention. A location answers "who provides this virtual path"
// for exactly one source; layering across sources is the resolver's job.
package location

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modfold/modfold/pkg/catalog"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/vpath"
)

// archivePrefixes orders the catalog families within one location.
// Substitute archives are discovered last so their entries take
// precedence over patch-style and plain archives.
var archivePrefixes = []struct {
	prefix     string
	substitute bool
}{
	{"", false},
	{"ext_", false},
	{"subst_", true},
}

// Source identifies where a virtual path's bytes came from.
type Source struct {
	// Root is the location directory.
	Root string

	// Path is the virtual path with display case preserved.
	Path string

	// Catalog is the index file for archived content, empty for loose.
	Catalog string

	// OSPath is the on-disk file for loose content, empty for archived.
	OSPath string

	// Substitute marks content served from a substitute-style archive.
	Substitute bool
}

// Loose reports whether the source is a loose file.
func (s Source) Loose() bool {
	return s.Catalog == ""
}

// Hit pairs a source descriptor with the bytes it produced.
type Hit struct {
	Source Source
	Data   []byte
}

type archive struct {
	cat        *catalog.Catalog
	substitute bool
}

type looseFile struct {
	vpath  string
	osPath string
}

// View is a lazily initialized view over one location. Archive discovery
// and the loose-file scan happen on first access; a corrupted catalog
// index disables every archive in the location while loose files keep
// resolving.
type View struct {
	root       string
	looseFirst bool
	permissive bool
	whitelist  []string

	scanned  bool
	archives []archive
	loose    map[string]looseFile
}

// Option configures a View.
type Option func(*View)

// WithLooseFirst sets whether loose files beat archive entries for the
// same virtual path. Enabled by default.
func WithLooseFirst(enabled bool) Option {
	return func(v *View) {
		v.looseFirst = enabled
	}
}

// WithWhitelist restricts the loose-file scan and enumeration to the
// given top-level directories. Nil means no restriction. Root-level
// files are always addressable.
func WithWhitelist(dirs []string) Option {
	return func(v *View) {
		v.whitelist = dirs
	}
}

// WithPermissiveHashes passes hash-mismatch tolerance through to the
// catalogs this view opens.
func WithPermissiveHashes(enabled bool) Option {
	return func(v *View) {
		v.permissive = enabled
	}
}

// NewView creates a view rooted at the given directory. No I/O happens
// until the first lookup.
func NewView(root string, opts ...Option) *View {
	v := &View{
		root:       root,
		looseFirst: true,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Root returns the location directory.
func (v *View) Root() string {
	return v.root
}

func (v *View) ensureScanned() {
	if v.scanned {
		return
	}
	v.scanned = true
	v.discoverArchives()
	v.scanLoose()
}

// discoverArchives probes each prefix family for sequentially numbered
// indices, stopping at the first gap per family.
func (v *View) discoverArchives() {
	logger := logging.GetLogger("location")

	var found []archive
	for _, family := range archivePrefixes {
		for i := 1; ; i++ {
			catPath := filepath.Join(v.root, fmt.Sprintf("%s%02d.cat", family.prefix, i))
			if _, err := os.Stat(catPath); err != nil {
				break
			}
			var opts []catalog.Option
			if v.permissive {
				opts = append(opts, catalog.WithPermissiveHashes(true))
			}
			found = append(found, archive{
				cat:        catalog.Open(catPath, opts...),
				substitute: family.substitute,
			})
		}
	}

	// One corrupted or unreadable index disables every archive in this
	// location; resolution continues on loose files alone.
	for _, a := range found {
		if _, err := a.cat.Entries(); err != nil {
			logger.Error().
				Err(err).
				Str("root", v.root).
				Str("catalog", a.cat.Path()).
				Msg("Corrupted catalog disables archives for this location")
			return
		}
	}

	v.archives = found
	if len(found) > 0 {
		logger.Debug().
			Str("root", v.root).
			Int("catalogs", len(found)).
			Msg("Discovered catalogs")
	}
}

// scanLoose indexes on-disk files under whitelisted top-level
// directories, plus root-level files that are not catalog pairs.
func (v *View) scanLoose() {
	v.loose = make(map[string]looseFile)

	dirEntries, err := os.ReadDir(v.root)
	if err != nil {
		return
	}

	for _, de := range dirEntries {
		if !de.IsDir() {
			name := de.Name()
			if isArchiveFile(name) {
				continue
			}
			v.addLoose(name, filepath.Join(v.root, name))
			continue
		}
		if !v.allowedTop(de.Name()) {
			continue
		}
		dir := filepath.Join(v.root, de.Name())
		_ = filepath.WalkDir(dir, func(osPath string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(v.root, osPath)
			if relErr != nil {
				return nil
			}
			v.addLoose(filepath.ToSlash(rel), osPath)
			return nil
		})
	}
}

func (v *View) addLoose(rel, osPath string) {
	p := vpath.Normalize(rel)
	if p == "" {
		return
	}
	v.loose[vpath.Key(p)] = looseFile{vpath: p, osPath: osPath}
}

func isArchiveFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".cat", ".dat":
		return true
	}
	return false
}

func (v *View) allowedTop(name string) bool {
	if v.whitelist == nil {
		return true
	}
	for _, w := range v.whitelist {
		if strings.EqualFold(w, name) {
			return true
		}
	}
	return false
}

func (v *View) allowedVPath(key string) bool {
	top := vpath.TopDir(key)
	if top == "" {
		return true
	}
	return v.allowedTop(top)
}

// Find returns the highest-priority content for a virtual path, or nil
// with no error on a simple miss. Read failures (hash mismatches,
// unreadable loose files) are returned as errors.
func (v *View) Find(path string) (*Hit, error) {
	v.ensureScanned()
	key := vpath.Key(path)
	if key == "" {
		return nil, nil
	}

	if v.looseFirst {
		if hit, err := v.findLoose(key); hit != nil || err != nil {
			return hit, err
		}
		return v.findArchived(key)
	}
	if hit, err := v.findArchived(key); hit != nil || err != nil {
		return hit, err
	}
	return v.findLoose(key)
}

// Has reports whether any source in this location provides the path.
func (v *View) Has(path string) bool {
	v.ensureScanned()
	key := vpath.Key(path)
	if _, ok := v.loose[key]; ok {
		return true
	}
	for i := len(v.archives) - 1; i >= 0; i-- {
		if v.archives[i].cat.Has(key) {
			return true
		}
	}
	return false
}

func (v *View) findLoose(key string) (*Hit, error) {
	lf, ok := v.loose[key]
	if !ok {
		return nil, nil
	}
	data, err := os.ReadFile(lf.osPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read loose file %s", lf.osPath)
	}
	return &Hit{
		Source: Source{Root: v.root, Path: lf.vpath, OSPath: lf.osPath},
		Data:   data,
	}, nil
}

func (v *View) findArchived(key string) (*Hit, error) {
	// Later catalogs override earlier ones for the same key.
	for i := len(v.archives) - 1; i >= 0; i-- {
		a := v.archives[i]
		entry, ok := a.cat.Lookup(key)
		if !ok {
			continue
		}
		data, err := a.cat.Read(key)
		if err != nil {
			return nil, err
		}
		return &Hit{
			Source: Source{
				Root:       v.root,
				Path:       entry.Path,
				Catalog:    a.cat.Path(),
				Substitute: a.substitute,
			},
			Data: data,
		}, nil
	}
	return nil, nil
}

// Enumerate returns the display-case virtual paths available under the
// given virtual prefix: the union of loose and archived content,
// filtered by the top-level whitelist, sorted by lookup key. An empty
// prefix enumerates everything.
func (v *View) Enumerate(prefix string) []string {
	v.ensureScanned()
	keyPrefix := vpath.Key(prefix)

	byKey := make(map[string]string)
	consider := func(display string) {
		key := vpath.Key(display)
		if keyPrefix != "" && !strings.HasPrefix(key, keyPrefix) {
			return
		}
		if !v.allowedVPath(key) {
			return
		}
		byKey[key] = display
	}

	addArchived := func() {
		for _, a := range v.archives {
			entries, err := a.cat.Entries()
			if err != nil {
				continue
			}
			for _, e := range entries {
				consider(e.Path)
			}
		}
	}
	addLoose := func() {
		for _, lf := range v.loose {
			consider(lf.vpath)
		}
	}

	// Lower priority first so the winning source's casing survives.
	if v.looseFirst {
		addArchived()
		addLoose()
	} else {
		addLoose()
		addArchived()
	}

	out := make([]string, 0, len(byKey))
	for _, display := range byKey {
		out = append(out, display)
	}
	sort.Slice(out, func(i, j int) bool {
		return vpath.Key(out[i]) < vpath.Key(out[j])
	})
	return out
}
