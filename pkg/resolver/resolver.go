// Package resolver implements the layered virtual filesystem: base
// installation, optional override folder, and enabled extensions in
// dependency load order, merged per path into document objects. The
// resolver is an explicit service object owning the document cache and
// the identity table; constructing a fresh one (or calling Reset) is
// how state is dropped.
package resolver

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/modfold/modfold/pkg/config"
	"github.com/modfold/modfold/pkg/document"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/extension"
	"github.com/modfold/modfold/pkg/location"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/paths"
	"github.com/modfold/modfold/pkg/xmltree"
)

// Resolver merges the game's layered content sources.
type Resolver struct {
	settings *config.Settings
	logger   zerolog.Logger

	base     *location.View
	override *location.View
	exts     []*extSource

	discovered []*extension.Extension

	ident *xmltree.Identifier
	cache map[string]*document.Document
}

// extSource pairs an ordered extension with the view over its folder.
type extSource struct {
	ext  *extension.Extension
	view *location.View
}

// New builds a resolver over the configured installation. Extension
// discovery and ordering run here; a dependency cycle or stall is a
// construction error.
func New(settings *config.Settings) (*Resolver, error) {
	logger := logging.GetLogger("resolver")

	if settings == nil || settings.Game.Root == "" {
		return nil, errors.New(errors.ErrInvalidInput, "game root is not configured")
	}

	viewOpts := []location.Option{
		location.WithLooseFirst(settings.Resolve.LooseFilePriority),
		location.WithWhitelist(settings.Game.ContentDirs),
		location.WithPermissiveHashes(settings.Resolve.PermissiveHashes),
	}

	r := &Resolver{
		settings: settings,
		logger:   logger,
		base:     location.NewView(settings.Game.Root, viewOpts...),
		ident:    xmltree.NewIdentifier(),
		cache:    make(map[string]*document.Document),
	}
	if settings.Game.OverrideDir != "" {
		r.override = location.NewView(settings.Game.OverrideDir, viewOpts...)
	}

	var prefs *config.Prefs
	if settings.Extensions.PrefsFile != "" {
		p, err := config.LoadPrefs(settings.Extensions.PrefsFile)
		if err != nil {
			return nil, err
		}
		prefs = p
	}

	// A relative extensions dir is anchored at the game root, so the
	// default "extensions" lands inside the installation.
	extsDir := settings.Extensions.Dir
	if extsDir == "" {
		extsDir = paths.ExtensionsDirName
	}
	if !filepath.IsAbs(extsDir) {
		extsDir = filepath.Join(settings.Game.Root, extsDir)
	}
	discovered, err := extension.Discover(extsDir, extension.DiscoverOptions{
		Prefs:   prefs,
		Ignored: settings.Extensions.Ignored,
	})
	if err != nil {
		return nil, err
	}
	r.discovered = discovered

	ordered, err := extension.Order(discovered)
	if err != nil {
		return nil, err
	}
	for _, ext := range ordered {
		r.exts = append(r.exts, &extSource{
			ext:  ext,
			view: location.NewView(ext.Path, viewOpts...),
		})
	}

	logger.Debug().
		Str("root", settings.Game.Root).
		Bool("override", r.override != nil).
		Int("extensions", len(r.exts)).
		Msg("Resolver constructed")
	return r, nil
}

// Extensions returns every discovered extension in folder order,
// including disabled and ignored ones, for listing surfaces.
func (r *Resolver) Extensions() []*extension.Extension {
	return r.discovered
}

// ListLoadOrderedExtensions returns the ids of the enabled extensions
// in the order their content applies.
func (r *Resolver) ListLoadOrderedExtensions() []string {
	ids := make([]string, 0, len(r.exts))
	for _, es := range r.exts {
		ids = append(ids, es.ext.ID())
	}
	return ids
}

// Reset drops the document cache and the identity table. Location
// scans are kept; build a new resolver to pick up disk changes.
func (r *Resolver) Reset() {
	r.ident = xmltree.NewIdentifier()
	r.cache = make(map[string]*document.Document)
	r.logger.Debug().Msg("Resolver state reset")
}
