// Package tag provides a normalized view of the metadata embedded in audio
// files.
//
// Format specific readers decode the metadata of a file and map it onto the
// canonical fields of Metadata, as exposed to a tagging tool.
package tag

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-audio/audio"
)

// A Key identifies a canonical metadata field.
type Key string

// Canonical metadata fields.
const (
	Title       Key = "title"
	Artist      Key = "artist"
	AlbumArtist Key = "albumartist"
	Album       Key = "album"
	TrackNumber Key = "tracknumber"
	DiscNumber  Key = "disknumber"
	Date        Key = "date"
	Genre       Key = "genre"
	Comment     Key = "comment"
	Label       Key = "label"
)

// Keys lists the canonical metadata fields in display order.
var Keys = []Key{Title, Artist, AlbumArtist, Album, TrackNumber, DiscNumber, Date, Genre, Comment, Label}

// Metadata is the normalized metadata of an audio file. An empty string
// denotes an unset field.
type Metadata struct {
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	TrackNumber string
	DiscNumber  string
	Date        string
	Genre       string
	Comment     string
	Label       string

	// Date components; only populated when the policy splits dates. A zero
	// value denotes an absent or unparsable component.
	Year, Month, Day int

	// Encoder which produced the metadata.
	Vendor string
	// Audio format of the stream; nil if unknown.
	Format *audio.Format
	// Sample size in bits-per-sample; 0 if unknown.
	BitsPerSample int
	// Play time of the stream; 0 if unknown.
	Duration time.Duration
}

// field returns a pointer to the metadata field identified by key, or nil if
// key is not a canonical field.
func (md *Metadata) field(key Key) *string {
	switch key {
	case Title:
		return &md.Title
	case Artist:
		return &md.Artist
	case AlbumArtist:
		return &md.AlbumArtist
	case Album:
		return &md.Album
	case TrackNumber:
		return &md.TrackNumber
	case DiscNumber:
		return &md.DiscNumber
	case Date:
		return &md.Date
	case Genre:
		return &md.Genre
	case Comment:
		return &md.Comment
	case Label:
		return &md.Label
	}
	return nil
}

// Get returns the value of the given field, or the empty string if it is unset
// or not a canonical field.
func (md *Metadata) Get(key Key) string {
	if p := md.field(key); p != nil {
		return *p
	}
	return ""
}

// Set sets the value of the given field. It reports whether key is a canonical
// field.
func (md *Metadata) Set(key Key, value string) bool {
	p := md.field(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Track returns the track number, parsed from values such as "3" or "3/12".
func (md *Metadata) Track() (int, bool) {
	return parseNumber(md.TrackNumber)
}

// Disc returns the disc number, parsed from values such as "1" or "1/2".
func (md *Metadata) Disc() (int, bool) {
	return parseNumber(md.DiscNumber)
}

// parseNumber parses the number preceding an optional "/total" suffix.
func parseNumber(s string) (int, bool) {
	if i := strings.IndexByte(s, '/'); i != -1 {
		s = s[:i]
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}
