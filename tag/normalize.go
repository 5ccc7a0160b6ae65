package tag

import (
	"strconv"
	"strings"

	"github.com/opDavi1/termtag/meta"
	"github.com/pkg/errors"
)

// AlbumArtistPolicy specifies where the value of an ALBUMARTIST comment is
// stored.
type AlbumArtistPolicy uint8

// Album artist policies.
const (
	// AlbumArtistSeparate stores album artists in Metadata.AlbumArtist.
	AlbumArtistSeparate AlbumArtistPolicy = iota
	// AlbumArtistAsArtist stores album artists in Metadata.Artist, overwriting
	// or being overwritten by ARTIST comments according to their order.
	AlbumArtistAsArtist
)

func (p AlbumArtistPolicy) String() string {
	if p == AlbumArtistAsArtist {
		return "artist"
	}
	return "separate"
}

// Set parses the policy name s ("separate" or "artist"), which allows a policy
// to be used as a command line flag.
func (p *AlbumArtistPolicy) Set(s string) error {
	switch strings.ToLower(s) {
	case "separate":
		*p = AlbumArtistSeparate
	case "artist":
		*p = AlbumArtistAsArtist
	default:
		return errors.Errorf("tag.AlbumArtistPolicy.Set: invalid album artist policy %q; expected \"separate\" or \"artist\"", s)
	}
	return nil
}

// A Policy controls how comments are mapped onto Metadata. The zero value
// stores album artists separately and keeps dates as a single string.
type Policy struct {
	// Where ALBUMARTIST values are stored.
	AlbumArtist AlbumArtistPolicy
	// Also decompose dates of the form YYYY[-MM[-DD]] into Metadata.Year,
	// Metadata.Month and Metadata.Day.
	SplitDate bool
}

// commentKeys maps from lower-case Vorbis comment names to canonical fields.
var commentKeys = map[string]Key{
	"title":       Title,
	"artist":      Artist,
	"albumartist": AlbumArtist,
	"album":       Album,
	"tracknumber": TrackNumber,
	"disknumber":  DiscNumber,
	"discnumber":  DiscNumber,
	"date":        Date,
	"genre":       Genre,
	"comment":     Comment,
	"label":       Label,
}

// Normalize maps the comments of a Vorbis comment block onto Metadata.
//
// Comment names are case-insensitive and comments with unrecognized names are
// ignored. Vorbis comments may hold several values for the same name; the last
// one wins. As Metadata uses the empty string for unset fields, a comment with
// an empty value clears the field: TITLE=a followed by TITLE= leaves the title
// unset. Normalize never fails; a nil vc yields empty metadata.
func Normalize(vc *meta.VorbisComment, p Policy) *Metadata {
	md := new(Metadata)
	if vc == nil {
		return md
	}
	md.Vendor = vc.Vendor
	for _, entry := range vc.Entries {
		key, ok := commentKeys[strings.ToLower(entry.Name)]
		if !ok {
			continue
		}
		if key == AlbumArtist && p.AlbumArtist == AlbumArtistAsArtist {
			key = Artist
		}
		md.Set(key, entry.Value)
	}
	if p.SplitDate {
		md.Year, md.Month, md.Day = splitDate(md.Date)
	}
	return md
}

// splitDate decomposes a date of the form YYYY[-MM[-DD]]. Decomposition stops
// at the first component which is not a number.
func splitDate(date string) (year, month, day int) {
	parts := strings.SplitN(strings.TrimSpace(date), "-", 3)
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			break
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2]
}
