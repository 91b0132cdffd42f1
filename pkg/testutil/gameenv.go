// pkg/testutil/gameenv.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Lay out temporary game installations for integration tests

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modfold/modfold/pkg/catalog"
	"github.com/modfold/modfold/pkg/config"
	"github.com/modfold/modfold/pkg/paths"
)

// GameEnv is a temporary game installation: a base directory with
// catalogs and loose files, an optional override folder, and extension
// folders under extensions/.
type GameEnv struct {
	Root        string
	OverrideDir string

	t *testing.T
}

// NewGameEnv creates an empty installation in a test temp directory.
func NewGameEnv(t *testing.T) *GameEnv {
	t.Helper()
	return &GameEnv{Root: t.TempDir(), t: t}
}

// Settings returns a resolver configuration covering the environment,
// with a content whitelist spanning the directories tests use.
func (env *GameEnv) Settings() *config.Settings {
	return &config.Settings{
		Game: config.GameSettings{
			Root:        env.Root,
			OverrideDir: env.OverrideDir,
			ContentDirs: []string{"aiscripts", "assets", "index", "libraries", "maps", "md", "t"},
		},
		Resolve: config.ResolveSettings{
			LooseFilePriority: true,
		},
	}
}

// WriteLoose writes a loose file under the game root.
func (env *GameEnv) WriteLoose(rel, content string) {
	env.t.Helper()
	writeFile(env.t, filepath.Join(env.Root, filepath.FromSlash(rel)), []byte(content))
}

// WriteCatalog packs entries into an index + blob pair in the game
// root; name is the index stem, e.g. "01".
func (env *GameEnv) WriteCatalog(name string, entries ...catalog.WriteEntry) {
	env.t.Helper()
	writeCatalog(env.t, filepath.Join(env.Root, name+".cat"), entries)
}

// Override writes a loose file into the override folder, creating the
// folder on first use. Settings must be taken after the first call for
// the override directory to be configured.
func (env *GameEnv) Override(rel, content string) {
	env.t.Helper()
	if env.OverrideDir == "" {
		env.OverrideDir = env.t.TempDir()
	}
	writeFile(env.t, filepath.Join(env.OverrideDir, filepath.FromSlash(rel)), []byte(content))
}

// Extension creates extensions/<folder> with the given descriptor and
// returns a handle for adding the extension's files.
func (env *GameEnv) Extension(folder, descriptor string) *ExtensionEnv {
	env.t.Helper()
	dir := filepath.Join(env.Root, paths.ExtensionsDirName, folder)
	writeFile(env.t, filepath.Join(dir, paths.DescriptorFileName), []byte(descriptor))
	return &ExtensionEnv{Dir: dir, t: env.t}
}

// ExtensionEnv adds content to one extension folder.
type ExtensionEnv struct {
	Dir string
	t   *testing.T
}

// WriteFile writes a loose file under the extension folder.
func (e *ExtensionEnv) WriteFile(rel, content string) {
	e.t.Helper()
	writeFile(e.t, filepath.Join(e.Dir, filepath.FromSlash(rel)), []byte(content))
}

// WriteCatalog packs entries into a catalog inside the extension
// folder; name is the index stem, e.g. "ext_01" or "subst_01".
func (e *ExtensionEnv) WriteCatalog(name string, entries ...catalog.WriteEntry) {
	e.t.Helper()
	writeCatalog(e.t, filepath.Join(e.Dir, name+".cat"), entries)
}

// Descriptor renders a content.xml with the given id and dependencies.
// A dependency id ending in "?" becomes optional.
func Descriptor(id string, deps ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<content id=%q name=\"Test %s\" version=\"100\">\n", id, id)
	for _, dep := range deps {
		if strings.HasSuffix(dep, "?") {
			fmt.Fprintf(&b, "  <dependency id=%q optional=\"true\"/>\n", strings.TrimSuffix(dep, "?"))
		} else {
			fmt.Fprintf(&b, "  <dependency id=%q/>\n", dep)
		}
	}
	b.WriteString("</content>\n")
	return b.String()
}

func writeFile(t *testing.T, osPath string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(osPath), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(osPath), err)
	}
	if err := os.WriteFile(osPath, data, 0644); err != nil {
		t.Fatalf("write %s: %v", osPath, err)
	}
}

func writeCatalog(t *testing.T, catPath string, entries []catalog.WriteEntry) {
	t.Helper()
	if err := catalog.Write(catPath, entries); err != nil {
		t.Fatalf("write catalog %s: %v", catPath, err)
	}
}
