package tag

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnsupportedFormat is returned when no reader is registered for the
// extension of a file.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// A Reader produces normalized metadata from the contents of an audio file.
type Reader interface {
	// ReadMetadata decodes the metadata contained in buf. Readers never retain
	// buf.
	ReadMetadata(buf []byte) (*Metadata, error)
}

// A Format describes how to read the metadata of one audio file format.
type Format struct {
	// Format name.
	Name string
	// Load returns the contents of the file at path which are needed to read
	// its metadata.
	Load func(path string) ([]byte, error)
	// NewReader returns a metadata reader using the given policy.
	NewReader func(p Policy) Reader
}

// formats maps from lower-case file extensions to formats.
var formats = make(map[string]*Format)

// Register registers a format for the given file extension (e.g. ".flac").
// Register is called by format packages during initialization.
func Register(ext string, format *Format) {
	formats[strings.ToLower(ext)] = format
}

// Lookup returns the format registered for the extension of path.
func Lookup(path string) (*Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := formats[ext]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "tag.Lookup: no reader for %q", path)
	}
	return format, nil
}

// ReadFile reads and normalizes the metadata of the file at path, using the
// format registered for its extension.
func ReadFile(path string, p Policy) (*Metadata, error) {
	format, err := Lookup(path)
	if err != nil {
		return nil, err
	}
	buf, err := format.Load(path)
	if err != nil {
		return nil, err
	}
	md, err := format.NewReader(p).ReadMetadata(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "tag.ReadFile: %q", path)
	}
	return md, nil
}

// Extensions returns the sorted list of registered file extensions.
func Extensions() []string {
	exts := maps.Keys(formats)
	slices.Sort(exts)
	return exts
}
