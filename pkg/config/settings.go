package config

// Settings is the fully merged modfold configuration.
type Settings struct {
	Game       GameSettings      `koanf:"game"`
	Resolve    ResolveSettings   `koanf:"resolve"`
	Extensions ExtensionSettings `koanf:"extensions"`
	Export     ExportSettings    `koanf:"export"`
}

// GameSettings locates the game installation and scopes its data tree.
type GameSettings struct {
	Root string `koanf:"root"`

	// OverrideDir is an optional directory of loose files that beats the
	// base installation but loses to extensions. Empty disables it.
	OverrideDir string `koanf:"override_dir"`

	// ContentDirs is the whitelist of top-level virtual directories that
	// count as game data during enumeration.
	ContentDirs []string `koanf:"content_dirs"`
}

// ResolveSettings control source precedence and integrity checking.
type ResolveSettings struct {
	// LooseFilePriority makes loose files beat archived files for the
	// same virtual path.
	LooseFilePriority bool `koanf:"loose_file_priority"`

	// PermissiveHashes downgrades catalog hash mismatches from errors
	// to logged warnings.
	PermissiveHashes bool `koanf:"permissive_hashes"`
}

// ExtensionSettings control extension discovery.
type ExtensionSettings struct {
	Dir       string   `koanf:"dir"`
	Ignored   []string `koanf:"ignored"`
	PrefsFile string   `koanf:"prefs_file"`
}

// ExportSettings describe the output extension written by the exporter.
type ExportSettings struct {
	ID   string `koanf:"id"`
	Name string `koanf:"name"`
	Dir  string `koanf:"dir"`
}

// IsContentDir reports whether name is a whitelisted top-level directory.
// Matching is case-insensitive like every virtual-path comparison.
func (g *GameSettings) IsContentDir(name string) bool {
	for _, d := range g.ContentDirs {
		if equalFold(d, name) {
			return true
		}
	}
	return false
}

// IsIgnored reports whether the extension id is on the ignore list.
// Extension ids are case-sensitive.
func (e *ExtensionSettings) IsIgnored(id string) bool {
	for _, ignored := range e.Ignored {
		if ignored == id {
			return true
		}
	}
	return false
}

// equalFold is an ASCII-only case-insensitive comparison; virtual paths and
// directory names in the game data never use non-ASCII letters.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
