package meta_test

import (
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/go-flac/flacvorbis"
	"github.com/kylelemons/godebug/pretty"
	"github.com/opDavi1/termtag/meta"
	"github.com/pkg/errors"
)

// vorbisBody returns the encoded body of a VorbisComment metadata block with
// the given vendor string and raw comment vectors.
func vorbisBody(vendor string, vectors ...string) []byte {
	var buf []byte
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vendor)))
	buf = append(buf, vendor...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vectors)))
	for _, vector := range vectors {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vector)))
		buf = append(buf, vector...)
	}
	return buf
}

func TestParseVorbisComment(t *testing.T) {
	golden := []struct {
		name string
		data []byte
		want *meta.VorbisComment
	}{
		{
			name: "two comments",
			data: vorbisBody("test", "TITLE=Song", "ARTIST=Band"),
			want: &meta.VorbisComment{Vendor: "test", Entries: []meta.VorbisEntry{{Name: "TITLE", Value: "Song"}, {Name: "ARTIST", Value: "Band"}}},
		},
		{
			name: "no comments",
			data: vorbisBody("reference libFLAC 1.2.1 20070917"),
			want: &meta.VorbisComment{Vendor: "reference libFLAC 1.2.1 20070917", Entries: []meta.VorbisEntry{}},
		},
		{
			name: "missing separator",
			data: vorbisBody("enc", "TITLE=Hello", "NOSEPARATOR", "ARTIST=World"),
			want: &meta.VorbisComment{Vendor: "enc", Entries: []meta.VorbisEntry{{Name: "TITLE", Value: "Hello"}, {Name: "ARTIST", Value: "World"}}},
		},
		{
			name: "separator in value",
			data: vorbisBody("enc", "COMMENT=a=b", "EMPTY="),
			want: &meta.VorbisComment{Vendor: "enc", Entries: []meta.VorbisEntry{{Name: "COMMENT", Value: "a=b"}, {Name: "EMPTY", Value: ""}}},
		},
		{
			name: "invalid UTF-8 vendor",
			data: vorbisBody("\xff\xfe", "TITLE=Song"),
			want: &meta.VorbisComment{Vendor: meta.UnknownVendor, Entries: []meta.VorbisEntry{{Name: "TITLE", Value: "Song"}}},
		},
		{
			// A comment which is not valid UTF-8 is treated as empty and is
			// therefore dropped for lack of a separator.
			name: "invalid UTF-8 comment",
			data: vorbisBody("enc", "TITLE=\xc3\x28", "ALBUM=Record"),
			want: &meta.VorbisComment{Vendor: "enc", Entries: []meta.VorbisEntry{{Name: "ALBUM", Value: "Record"}}},
		},
		{
			name: "multi-byte text",
			data: vorbisBody("enc", "ARTIST=神前暁", "ALBUM=「化物語」劇伴音楽集"),
			want: &meta.VorbisComment{Vendor: "enc", Entries: []meta.VorbisEntry{{Name: "ARTIST", Value: "神前暁"}, {Name: "ALBUM", Value: "「化物語」劇伴音楽集"}}},
		},
	}
	for _, g := range golden {
		got, err := meta.ParseVorbisComment(g.data)
		if err != nil {
			t.Errorf("%s: unexpected error; %+v", g.name, err)
			continue
		}
		if !reflect.DeepEqual(g.want, got) {
			t.Errorf("%s: vorbis comment mismatch (-want +got):\n%s", g.name, pretty.Compare(g.want, got))
		}
	}
}

func TestParseVorbisCommentTruncated(t *testing.T) {
	full := vorbisBody("enc", "TITLE=Hello")
	golden := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "short vendor length", data: []byte{0x03, 0x00}},
		{name: "vendor overrun", data: []byte{0x10, 0x00, 0x00, 0x00, 'e', 'n', 'c'}},
		{name: "missing comment count", data: full[:4+3]},
		{name: "comment count overrun", data: append(vorbisBody("enc")[:4+3], 0x05, 0x00, 0x00, 0x00)},
		{name: "huge comment count", data: append(vorbisBody("enc")[:4+3], 0xFF, 0xFF, 0xFF, 0xFF)},
		{name: "comment overrun", data: full[:len(full)-1]},
		{name: "comment length overrun", data: append(vorbisBody("enc")[:4+3], 0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x7F, 'a')},
	}
	for _, g := range golden {
		_, err := meta.ParseVorbisComment(g.data)
		if errors.Cause(err) != meta.ErrTruncated {
			t.Errorf("%s: error mismatch; expected %v, got %v", g.name, meta.ErrTruncated, err)
		}
	}
}

func TestVorbisCommentRoundTrip(t *testing.T) {
	want := &meta.VorbisComment{
		Vendor: "test",
		Entries: []meta.VorbisEntry{
			{Name: "TITLE", Value: "Song"},
			{Name: "ARTIST", Value: "Band"},
		},
	}
	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("%+v", err)
	}
	got, err := meta.ParseVorbisComment(data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("vorbis comment mismatch (-want +got):\n%s", pretty.Compare(want, got))
	}

	bad := &meta.VorbisComment{Entries: []meta.VorbisEntry{{Name: "A=B", Value: "c"}}}
	if _, err := bad.MarshalBinary(); err == nil {
		t.Error("expected error for comment name containing '='")
	}
}

// TestParseFlacvorbis checks the decoder against comments encoded by an
// independent implementation.
func TestParseFlacvorbis(t *testing.T) {
	cmt := flacvorbis.New()
	cmt.Vendor = "flacvorbis"
	for _, entry := range [][2]string{{"TITLE", "Song"}, {"ARTIST", "A"}, {"ARTIST", "B"}, {"TRACKNUMBER", "3"}} {
		if err := cmt.Add(entry[0], entry[1]); err != nil {
			t.Fatal(err)
		}
	}
	block := cmt.Marshal()

	got, err := meta.ParseVorbisComment(block.Data)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if got.Vendor != "flacvorbis" {
		t.Errorf("vendor mismatch; expected %q, got %q", "flacvorbis", got.Vendor)
	}
	if want := []string{"A", "B"}; !reflect.DeepEqual(want, got.Get("artist")) {
		t.Errorf("artist mismatch; expected %q, got %q", want, got.Get("artist"))
	}
	if want := []string{"Song"}; !reflect.DeepEqual(want, got.Get("Title")) {
		t.Errorf("title mismatch; expected %q, got %q", want, got.Get("Title"))
	}
	if values := got.Get("genre"); values != nil {
		t.Errorf("expected no genre, got %q", values)
	}
}
