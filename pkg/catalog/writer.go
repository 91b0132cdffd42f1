package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/vpath"
)

// WriteEntry is one file to pack. A zero Timestamp is stamped with the
// current time.
type WriteEntry struct {
	Path      string
	Data      []byte
	Timestamp int64
}

// Write emits an index + blob pair for the given entries, preserving
// their order. Sizes, offsets and hashes are recomputed from the data;
// no compression is applied.
func Write(catPath string, entries []WriteEntry) error {
	logger := logging.GetLogger("catalog.writer")

	var index strings.Builder
	var blob []byte

	now := time.Now().Unix()
	for _, we := range entries {
		path := vpath.Normalize(we.Path)
		if path == "" {
			return errors.New(errors.ErrInvalidInput, "cannot pack an empty virtual path")
		}
		ts := we.Timestamp
		if ts == 0 {
			ts = now
		}

		sum := md5.Sum(we.Data)
		index.WriteString(path)
		index.WriteByte(' ')
		index.WriteString(strconv.Itoa(len(we.Data)))
		index.WriteByte(' ')
		index.WriteString(strconv.FormatInt(ts, 10))
		index.WriteByte(' ')
		index.WriteString(hex.EncodeToString(sum[:]))
		index.WriteByte('\n')

		blob = append(blob, we.Data...)
	}

	if err := os.WriteFile(catPath, []byte(index.String()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCatalogWrite, "cannot write index %s", catPath)
	}
	if err := os.WriteFile(DatPath(catPath), blob, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrCatalogWrite, "cannot write blob %s", DatPath(catPath))
	}

	logger.Info().
		Str("catalog", catPath).
		Int("entries", len(entries)).
		Int("blobBytes", len(blob)).
		Msg("Wrote catalog")
	return nil
}
