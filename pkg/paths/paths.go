// Package paths provides centralized path handling for modfold.
// It implements XDG Base Directory specification compliance and
// locates the game installation the resolver layers are built from.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/modfold/modfold/pkg/errors"
)

// Environment variable names
const (
	// EnvGameRoot is the primary environment variable for the game installation
	EnvGameRoot = "MODFOLD_GAME_ROOT"

	// EnvConfigDir overrides the XDG config directory for modfold
	EnvConfigDir = "MODFOLD_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for modfold
	EnvCacheDir = "MODFOLD_CACHE_DIR"
)

// Default directories and files. These define modfold's on-disk layout and
// the game's own conventions; user-configurable values live in pkg/config.
const (
	// AppDirName is the directory name for modfold-specific files
	AppDirName = "modfold"

	// ExtensionsDirName is the game's extensions directory under the game root
	ExtensionsDirName = "extensions"

	// DescriptorFileName is the extension descriptor file in each extension folder
	DescriptorFileName = "content.xml"

	// PrefsFileName is the user extension-preferences file in the config dir
	PrefsFileName = "extensions.toml"

	// ConfigFileName is the main modfold configuration file
	ConfigFileName = "modfold.toml"

	// LogFileName is the name of the log file
	LogFileName = "modfold.log"
)

// Paths provides centralized path management for modfold
type Paths interface {
	GameRoot() string
	ExtensionsDir() string
	ExtensionPath(folder string) string
	DescriptorPath(folder string) string
	ConfigDir() string
	ConfigFilePath() string
	PrefsFilePath() string
	CacheDir() string
	StateDir() string
	LogFilePath() string
}

type paths struct {
	gameRoot  string
	xdgConfig string
	xdgCache  string
	xdgState  string
}

// New creates a Paths instance rooted at the given game installation.
// If gameRoot is empty, MODFOLD_GAME_ROOT is consulted.
func New(gameRoot string) (Paths, error) {
	p := &paths{}

	if gameRoot == "" {
		gameRoot = os.Getenv(EnvGameRoot)
	}
	if gameRoot == "" {
		return nil, errors.New(errors.ErrInvalidInput,
			"game root not set; pass a path or set "+EnvGameRoot)
	}
	p.gameRoot = expandHome(gameRoot)

	absRoot, err := filepath.Abs(p.gameRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"failed to get absolute path for game root")
	}
	p.gameRoot = absRoot

	p.setupXDGDirs()
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if cacheDir := os.Getenv(EnvCacheDir); cacheDir != "" {
		p.xdgCache = expandHome(cacheDir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	if stateDir := os.Getenv("XDG_STATE_HOME"); stateDir != "" {
		p.xdgState = filepath.Join(stateDir, AppDirName)
	} else {
		homeDir, _ := os.UserHomeDir()
		p.xdgState = filepath.Join(homeDir, ".local", "state", AppDirName)
	}
}

func (p *paths) GameRoot() string {
	return p.gameRoot
}

func (p *paths) ExtensionsDir() string {
	return filepath.Join(p.gameRoot, ExtensionsDirName)
}

func (p *paths) ExtensionPath(folder string) string {
	return filepath.Join(p.ExtensionsDir(), folder)
}

func (p *paths) DescriptorPath(folder string) string {
	return filepath.Join(p.ExtensionPath(folder), DescriptorFileName)
}

func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

func (p *paths) PrefsFilePath() string {
	return filepath.Join(p.xdgConfig, PrefsFileName)
}

func (p *paths) CacheDir() string {
	return p.xdgCache
}

func (p *paths) StateDir() string {
	return p.xdgState
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// DefaultConfigFile returns the configuration file location. Unlike New
// it needs no game root, so config loading can run before the root is
// known. MODFOLD_CONFIG_DIR is honored.
func DefaultConfigFile() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(expandHome(dir), ConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// DefaultPrefsFile returns the extension-preferences file location
// without requiring a game root.
func DefaultPrefsFile() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(expandHome(dir), PrefsFileName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName, PrefsFileName)
}

// expandHome expands a leading ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
