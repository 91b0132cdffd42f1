package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
)

// Prefs holds the user's explicit per-extension enable overrides from the
// standalone preferences file. An entry here beats the enabled default in
// the extension's own descriptor; absent ids fall back to the descriptor.
type Prefs struct {
	Extensions map[string]bool `toml:"extensions"`
}

// Enabled returns the override for the given extension id.
// ok is false when the user expressed no preference.
func (p *Prefs) Enabled(id string) (value, ok bool) {
	if p == nil || p.Extensions == nil {
		return false, false
	}
	value, ok = p.Extensions[id]
	return value, ok
}

// LoadPrefs reads the extension-preferences file. A missing file is not an
// error; it yields empty preferences.
func LoadPrefs(path string) (*Prefs, error) {
	logger := logging.GetLogger("config.prefs")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No preferences file, using descriptor defaults")
			return &Prefs{Extensions: map[string]bool{}}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess,
			"cannot read preferences file %s", path)
	}

	var p Prefs
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"cannot parse preferences file %s", path)
	}
	if p.Extensions == nil {
		p.Extensions = map[string]bool{}
	}

	logger.Debug().Int("overrides", len(p.Extensions)).Str("path", path).Msg("Loaded extension preferences")
	return &p, nil
}
