package tag_test

import (
	"reflect"
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/opDavi1/termtag/meta"
	"github.com/opDavi1/termtag/tag"
)

// comment returns a Vorbis comment with the given name/value pairs.
func comment(pairs ...string) *meta.VorbisComment {
	vc := &meta.VorbisComment{Vendor: "enc"}
	for i := 0; i+1 < len(pairs); i += 2 {
		vc.Entries = append(vc.Entries, meta.VorbisEntry{Name: pairs[i], Value: pairs[i+1]})
	}
	return vc
}

func TestNormalize(t *testing.T) {
	golden := []struct {
		name   string
		vc     *meta.VorbisComment
		policy tag.Policy
		want   *tag.Metadata
	}{
		{
			name: "nil comment",
			vc:   nil,
			want: &tag.Metadata{},
		},
		{
			name: "no comments",
			vc:   comment(),
			want: &tag.Metadata{Vendor: "enc"},
		},
		{
			name: "all fields",
			vc: comment(
				"TITLE", "Song", "ARTIST", "Band", "ALBUMARTIST", "Various", "ALBUM", "Record",
				"TRACKNUMBER", "3/12", "DISKNUMBER", "1", "DATE", "2012-06-01", "GENRE", "Sound Clip",
				"COMMENT", "I release this file into the public domain", "LABEL", "Indie",
			),
			want: &tag.Metadata{
				Title: "Song", Artist: "Band", AlbumArtist: "Various", Album: "Record",
				TrackNumber: "3/12", DiscNumber: "1", Date: "2012-06-01", Genre: "Sound Clip",
				Comment: "I release this file into the public domain", Label: "Indie", Vendor: "enc",
			},
		},
		{
			name: "key casing",
			vc:   comment("Title", "a", "TITLE", "b", "title", "c"),
			want: &tag.Metadata{Title: "c", Vendor: "enc"},
		},
		{
			name: "empty value clears field",
			vc:   comment("TITLE", "a", "ARTIST", "Band", "title", ""),
			want: &tag.Metadata{Artist: "Band", Vendor: "enc"},
		},
		{
			name: "mixed case keys",
			vc:   comment("tItLe", "Song", "Album", "Record"),
			want: &tag.Metadata{Title: "Song", Album: "Record", Vendor: "enc"},
		},
		{
			name: "duplicate keys",
			vc:   comment("ARTIST", "A", "ARTIST", "B"),
			want: &tag.Metadata{Artist: "B", Vendor: "enc"},
		},
		{
			name: "unrecognized keys",
			vc:   comment("REPLAYGAIN_TRACK_GAIN", "-7.89 dB", "Artist Homepage", "http://qubodup.net", "YEAR", "2008", "artist", "1"),
			want: &tag.Metadata{Artist: "1", Vendor: "enc"},
		},
		{
			name: "disc number alias",
			vc:   comment("DISCNUMBER", "2"),
			want: &tag.Metadata{DiscNumber: "2", Vendor: "enc"},
		},
		{
			name:   "album artist as artist",
			vc:     comment("ARTIST", "Band", "ALBUMARTIST", "Various"),
			policy: tag.Policy{AlbumArtist: tag.AlbumArtistAsArtist},
			want:   &tag.Metadata{Artist: "Various", Vendor: "enc"},
		},
		{
			name:   "artist after album artist",
			vc:     comment("ALBUMARTIST", "Various", "ARTIST", "Band"),
			policy: tag.Policy{AlbumArtist: tag.AlbumArtistAsArtist},
			want:   &tag.Metadata{Artist: "Band", Vendor: "enc"},
		},
		{
			name:   "split date",
			vc:     comment("DATE", "2012-06-01"),
			policy: tag.Policy{SplitDate: true},
			want:   &tag.Metadata{Date: "2012-06-01", Year: 2012, Month: 6, Day: 1, Vendor: "enc"},
		},
		{
			name:   "split year",
			vc:     comment("DATE", "2008"),
			policy: tag.Policy{SplitDate: true},
			want:   &tag.Metadata{Date: "2008", Year: 2008, Vendor: "enc"},
		},
		{
			name:   "split unparsable date",
			vc:     comment("DATE", "2008-spring-01"),
			policy: tag.Policy{SplitDate: true},
			want:   &tag.Metadata{Date: "2008-spring-01", Year: 2008, Vendor: "enc"},
		},
	}
	for _, g := range golden {
		got := tag.Normalize(g.vc, g.policy)
		if !reflect.DeepEqual(g.want, got) {
			t.Errorf("%s: metadata mismatch (-want +got):\n%s", g.name, pretty.Compare(g.want, got))
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	vc := comment("TITLE", "Song", "ARTIST", "A", "artist", "B", "NOTE", "ignored")
	first := tag.Normalize(vc, tag.Policy{SplitDate: true})
	second := tag.Normalize(vc, tag.Policy{SplitDate: true})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("metadata mismatch (-first +second):\n%s", pretty.Compare(first, second))
	}
	if len(vc.Entries) != 4 {
		t.Errorf("comment modified; expected 4 entries, got %d", len(vc.Entries))
	}
}

func TestMetadataNumbers(t *testing.T) {
	golden := []struct {
		value string
		want  int
		ok    bool
	}{
		{value: "3", want: 3, ok: true},
		{value: "3/12", want: 3, ok: true},
		{value: " 07 ", want: 7, ok: true},
		{value: "", ok: false},
		{value: "A1", ok: false},
	}
	for _, g := range golden {
		md := &tag.Metadata{TrackNumber: g.value, DiscNumber: g.value}
		if got, ok := md.Track(); got != g.want || ok != g.ok {
			t.Errorf("Track(%q) mismatch; expected (%d, %t), got (%d, %t)", g.value, g.want, g.ok, got, ok)
		}
		if got, ok := md.Disc(); got != g.want || ok != g.ok {
			t.Errorf("Disc(%q) mismatch; expected (%d, %t), got (%d, %t)", g.value, g.want, g.ok, got, ok)
		}
	}
}

func TestMetadataGetSet(t *testing.T) {
	md := new(tag.Metadata)
	for _, key := range tag.Keys {
		if !md.Set(key, string(key)) {
			t.Errorf("Set(%q) rejected a canonical field", key)
		}
	}
	for _, key := range tag.Keys {
		if got := md.Get(key); got != string(key) {
			t.Errorf("Get(%q) mismatch; expected %q, got %q", key, key, got)
		}
	}
	if md.Set("isrc", "x") {
		t.Error("Set accepted a non-canonical field")
	}
	if got := md.Get("isrc"); got != "" {
		t.Errorf("expected empty value for non-canonical field, got %q", got)
	}
}

func TestAlbumArtistPolicySet(t *testing.T) {
	var p tag.AlbumArtistPolicy
	if err := p.Set("Artist"); err != nil || p != tag.AlbumArtistAsArtist {
		t.Errorf("policy mismatch; expected %v, got %v (err=%v)", tag.AlbumArtistAsArtist, p, err)
	}
	if err := p.Set("separate"); err != nil || p != tag.AlbumArtistSeparate {
		t.Errorf("policy mismatch; expected %v, got %v (err=%v)", tag.AlbumArtistSeparate, p, err)
	}
	if err := p.Set("both"); err == nil {
		t.Error("expected error for invalid policy name")
	}
}
