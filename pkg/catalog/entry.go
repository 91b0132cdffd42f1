// Package catalog reads and writes the game's packed-file archives: a
// plain-text index (.cat) describing entries and a paired blob (.dat)
// holding their bytes back to back with no separators.
package catalog

import (
	"strconv"
	"strings"

	"github.com/modfold/modfold/pkg/errors"
	"github.com/modfold/modfold/pkg/vpath"
)

// ZeroHash is the recorded hash the game writes for some zero-length
// entries. It does not equal MD5("") but must be accepted as valid.
const ZeroHash = "00000000000000000000000000000000"

// Entry describes one packed file. Offsets are derived while parsing as
// the running sum of preceding sizes; they are not stored in the index.
type Entry struct {
	// Path is the virtual path with display case preserved.
	Path string

	// Size is the byte length of the packed content.
	Size int64

	// Offset is the start of the content within the blob file.
	Offset int64

	// Timestamp is the recorded unix mtime.
	Timestamp int64

	// Hash is the recorded content digest, 32 lowercase hex characters.
	Hash string
}

// Key returns the case-insensitive lookup key for the entry's path.
func (e *Entry) Key() string {
	return vpath.Key(e.Path)
}

// parseLine splits an index line into an entry. The path may contain
// spaces, so the line is split from the right on the last three fields.
func parseLine(line string) (Entry, error) {
	hashIdx := strings.LastIndexByte(line, ' ')
	if hashIdx <= 0 {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "malformed index line %q", line)
	}
	tsIdx := strings.LastIndexByte(line[:hashIdx], ' ')
	if tsIdx <= 0 {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "malformed index line %q", line)
	}
	sizeIdx := strings.LastIndexByte(line[:tsIdx], ' ')
	if sizeIdx <= 0 {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "malformed index line %q", line)
	}

	hash := line[hashIdx+1:]
	if len(hash) != 32 || !isHex(hash) {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "bad hash field in line %q", line)
	}

	size, err := strconv.ParseInt(line[sizeIdx+1:tsIdx], 10, 64)
	if err != nil || size < 0 {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "bad size field in line %q", line)
	}

	ts, err := strconv.ParseInt(line[tsIdx+1:hashIdx], 10, 64)
	if err != nil {
		return Entry{}, errors.Newf(errors.ErrCatalogParse, "bad timestamp field in line %q", line)
	}

	return Entry{
		Path:      line[:sizeIdx],
		Size:      size,
		Timestamp: ts,
		Hash:      strings.ToLower(hash),
	}, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case '0' <= c && c <= '9':
		case 'a' <= c && c <= 'f':
		case 'A' <= c && c <= 'F':
		default:
			return false
		}
	}
	return true
}
