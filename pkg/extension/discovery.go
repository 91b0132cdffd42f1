package extension

import (
	"os"
	"path/filepath"

	"github.com/modfold/modfold/pkg/config"
	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/paths"
)

// Extension is one discovered extension folder.
type Extension struct {
	// Folder is the directory name under the extensions directory.
	Folder string

	// Path is the extension directory on disk.
	Path string

	// Descriptor is the parsed content.xml.
	Descriptor *Descriptor

	// Enabled is the effective state after applying user preferences.
	Enabled bool

	// Ignored marks extensions excluded by settings. They are still
	// discovered for listing but never ordered or resolved.
	Ignored bool
}

// ID returns the descriptor id.
func (e *Extension) ID() string {
	return e.Descriptor.ID
}

// DiscoverOptions adjusts discovery.
type DiscoverOptions struct {
	// Prefs holds explicit per-id enable overrides. Nil applies none.
	Prefs *config.Prefs

	// Ignored lists extension ids or folder names to mark ignored.
	Ignored []string
}

// Discover scans the extensions directory for subdirectories carrying a
// descriptor. Results follow folder-name order. A missing extensions
// directory yields no extensions, not an error.
func Discover(extensionsDir string, opts DiscoverOptions) ([]*Extension, error) {
	logger := logging.GetLogger("extension.discovery")

	dirEntries, err := os.ReadDir(extensionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("dir", extensionsDir).Msg("No extensions directory")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read extensions directory %s", extensionsDir)
	}

	var out []*Extension
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		folder := de.Name()
		descPath := filepath.Join(extensionsDir, folder, paths.DescriptorFileName)
		data, err := os.ReadFile(descPath)
		if err != nil {
			// A folder without a readable descriptor is not an extension.
			continue
		}
		desc, err := ParseDescriptor(data)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("folder", folder).
				Msg("Skipping extension with unparseable descriptor")
			continue
		}

		ext := &Extension{
			Folder:     folder,
			Path:       filepath.Join(extensionsDir, folder),
			Descriptor: desc,
			Enabled:    desc.EnabledByDefault,
		}
		if enabled, ok := opts.Prefs.Enabled(desc.ID); ok {
			ext.Enabled = enabled
		}
		for _, ig := range opts.Ignored {
			if ig == desc.ID || ig == folder {
				ext.Ignored = true
				break
			}
		}
		out = append(out, ext)
	}

	logger.Debug().
		Str("dir", extensionsDir).
		Int("extensions", len(out)).
		Msg("Discovered extensions")
	return out, nil
}
