package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"
	"strings"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/vpath"
)

// Catalog is a lazily parsed archive handle. The index is not read until
// the first lookup; a structural parse failure is sticky and reported on
// every subsequent access.
type Catalog struct {
	catPath    string
	datPath    string
	permissive bool

	parsed   bool
	parseErr error
	entries  []Entry
	byKey    map[string]int
}

// Option configures a Catalog handle.
type Option func(*Catalog)

// WithPermissiveHashes downgrades content hash mismatches from errors to
// logged warnings.
func WithPermissiveHashes(enabled bool) Option {
	return func(c *Catalog) {
		c.permissive = enabled
	}
}

// Open creates a handle for the index file at catPath. The paired blob
// path is derived by swapping the extension. No I/O happens here.
func Open(catPath string, opts ...Option) *Catalog {
	c := &Catalog{
		catPath: catPath,
		datPath: DatPath(catPath),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DatPath derives the blob path paired with an index path.
func DatPath(catPath string) string {
	if strings.HasSuffix(strings.ToLower(catPath), ".cat") {
		return catPath[:len(catPath)-4] + ".dat"
	}
	return catPath + ".dat"
}

// Path returns the index file path this handle was opened on.
func (c *Catalog) Path() string {
	return c.catPath
}

// ensureParsed reads and indexes the catalog on first use.
func (c *Catalog) ensureParsed() error {
	if c.parsed {
		return c.parseErr
	}
	c.parsed = true

	logger := logging.GetLogger("catalog.reader")

	data, err := os.ReadFile(c.catPath)
	if err != nil {
		c.parseErr = errors.Wrapf(err, errors.ErrCatalogRead, "cannot read index %s", c.catPath)
		return c.parseErr
	}

	var offset int64
	lines := strings.Split(string(data), "\n")
	c.entries = make([]Entry, 0, len(lines))
	c.byKey = make(map[string]int, len(lines))

	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			c.entries = nil
			c.byKey = nil
			c.parseErr = errors.Wrapf(err, errors.ErrCatalogParse, "parsing %s", c.catPath)
			return c.parseErr
		}
		entry.Offset = offset
		offset += entry.Size

		// Duplicate paths within one catalog: the later entry wins,
		// same as across catalogs.
		c.byKey[entry.Key()] = len(c.entries)
		c.entries = append(c.entries, entry)
	}

	logger.Debug().
		Str("catalog", c.catPath).
		Int("entries", len(c.entries)).
		Msg("Parsed catalog index")
	return nil
}

// Has reports whether the catalog contains the virtual path.
func (c *Catalog) Has(path string) bool {
	if c.ensureParsed() != nil {
		return false
	}
	_, ok := c.byKey[vpath.Key(path)]
	return ok
}

// Lookup returns the entry for a virtual path without touching the blob.
func (c *Catalog) Lookup(path string) (Entry, bool) {
	if c.ensureParsed() != nil {
		return Entry{}, false
	}
	idx, ok := c.byKey[vpath.Key(path)]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Entries returns all entries in index order. Later entries override
// earlier ones when paths collide; Lookup already reflects that.
func (c *Catalog) Entries() ([]Entry, error) {
	if err := c.ensureParsed(); err != nil {
		return nil, err
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// Read extracts and verifies the content of a virtual path.
func (c *Catalog) Read(path string) ([]byte, error) {
	if err := c.ensureParsed(); err != nil {
		return nil, err
	}
	idx, ok := c.byKey[vpath.Key(path)]
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "path %q not in catalog %s", path, c.catPath)
	}
	entry := c.entries[idx]

	f, err := os.Open(c.datPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogRead, "cannot open blob %s", c.datPath)
	}
	defer f.Close()

	buf := make([]byte, entry.Size)
	if _, err := f.ReadAt(buf, entry.Offset); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, errors.ErrCatalogRead,
			"short read for %q in %s", entry.Path, c.datPath)
	}

	if err := c.verify(&entry, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// verify checks extracted bytes against the recorded hash. The game
// records an all-zero hash for some empty entries; that pairing is valid.
func (c *Catalog) verify(entry *Entry, data []byte) error {
	if entry.Size == 0 && entry.Hash == ZeroHash {
		return nil
	}

	sum := md5.Sum(data)
	got := hex.EncodeToString(sum[:])
	if got == entry.Hash {
		return nil
	}

	if c.permissive {
		logger := logging.GetLogger("catalog.reader")
		logger.Warn().
			Str("path", entry.Path).
			Str("catalog", c.catPath).
			Str("expected", entry.Hash).
			Str("actual", got).
			Msg("Hash mismatch ignored (permissive mode)")
		return nil
	}

	return errors.Newf(errors.ErrHashMismatch, "hash mismatch for %q", entry.Path).
		WithDetail("catalog", c.catPath).
		WithDetail("expected", entry.Hash).
		WithDetail("actual", got)
}
