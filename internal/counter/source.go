package counter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/verte-zerg/tally/internal/fileio"
)

// ErrUnknownEncoding is returned for source encodings that are not supported.
var ErrUnknownEncoding = errors.New("counter: unknown encoding")

// LookupEncoding resolves an encoding name. UTF-8 resolves to nil: input is
// counted as-is without a decoding pass.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "utf-16le":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case "utf-16be":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// ReadSource returns every line of path with its terminator retained.
func ReadSource(path string) ([]string, error) {
	c := &Counter{unit: UnitChars}
	return c.ReadSource(path)
}

// ReadSource returns every line of path with its terminator retained, decoded
// with the Counter's encoding.
func (c *Counter) ReadSource(path string) ([]string, error) {
	file, err := fileio.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only source.
			_ = cerr
		}
	}()

	lines, err := c.readLines(file)
	if err != nil {
		return nil, &fileio.AccessError{Op: "read", Path: path, Err: err}
	}
	return lines, nil
}

func (c *Counter) readLines(r io.Reader) ([]string, error) {
	if c.decoder != nil {
		r = transform.NewReader(r, c.decoder.NewDecoder())
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if c.unit == UnitChars {
		text = normalizeNewlines(text)
	}
	return SplitLines(text), nil
}

// SplitLines splits text after every '\n'. A trailing fragment without a
// terminator is its own line; empty text has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func normalizeNewlines(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// ExpandPaths replaces glob patterns with the files they match, sorted.
// Plain paths, paths that exist as written, malformed patterns, and patterns
// without matches are kept as given.
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if !hasGlobMeta(path) || exists(path) {
			out = append(out, path)
			continue
		}
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if errors.Is(err, doublestar.ErrBadPattern) {
			out = append(out, path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", path, err)
		}
		if len(matches) == 0 {
			out = append(out, path)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
