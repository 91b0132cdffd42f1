package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	mferrors "github.com/modfold/modfold/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// rawBytesProvider implements a koanf provider for embedded bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// envPrefix is the prefix for configuration environment variables.
// A double underscore separates sections, e.g.
// MODFOLD_RESOLVE__PERMISSIVE_HASHES -> resolve.permissive_hashes.
const envPrefix = "MODFOLD_"

// Load merges configuration in priority order: embedded defaults, the
// user config file (if present), MODFOLD_* environment variables, then
// explicit overrides (normally CLI flags) last.
func Load(configPath string, overrides map[string]interface{}) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, mferrors.Wrap(err, mferrors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. User config file, if it exists
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, mferrors.Wrapf(err, mferrors.ErrConfigParse,
					"failed to load config from %s", configPath)
			}
		}
	}

	// 3. Environment variables
	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, mferrors.Wrap(err, mferrors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Explicit overrides win over everything
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, mferrors.Wrap(err, mferrors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, mferrors.Wrap(err, mferrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &s, nil
}

func envKeyMapper(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Default returns the built-in defaults without touching the filesystem
// or environment other than the embedded TOML.
func Default() *Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		// The embedded defaults are compiled in; a parse failure is a bug.
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		panic("config: embedded defaults do not match Settings: " + err.Error())
	}
	return &s
}
