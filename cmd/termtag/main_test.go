package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opDavi1/termtag/flac"
	"github.com/opDavi1/termtag/meta"
	"github.com/opDavi1/termtag/tag"
)

// writeFLAC writes a FLAC file with the given Vorbis comments to dir and
// returns its path.
func writeFLAC(t *testing.T, dir, name string, entries ...meta.VorbisEntry) string {
	t.Helper()
	blocks := []*meta.Block{
		{
			Header: meta.Header{Type: meta.TypeStreamInfo},
			Body: &meta.StreamInfo{
				BlockSizeMin:  4096,
				BlockSizeMax:  4096,
				SampleRate:    44100,
				NChannels:     2,
				BitsPerSample: 16,
				NSamples:      44100 * 2,
			},
		},
		{
			Header: meta.Header{Type: meta.TypeVorbisComment},
			Body:   &meta.VorbisComment{Vendor: "enc", Entries: entries},
		},
		{Header: meta.Header{Type: meta.TypePadding}, Data: make([]byte, 16)},
	}
	buf := new(bytes.Buffer)
	if err := flac.Encode(buf, blocks); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTermtag(t *testing.T) {
	dir := t.TempDir()
	path := writeFLAC(t, dir, "song.flac",
		meta.VorbisEntry{Name: "TITLE", Value: "Hello"},
		meta.VorbisEntry{Name: "ARTIST", Value: "World"},
		meta.VorbisEntry{Name: "ALBUMARTIST", Value: "Various"},
		meta.VorbisEntry{Name: "DATE", Value: "2004-05"},
	)
	golden := []struct {
		name string
		opts options
		want []string
	}{
		{
			name: "metadata",
			want: []string{"  title: Hello\n", "  artist: World\n", "  albumartist: Various\n", "  date: 2004-05\n", "  duration: 2s\n"},
		},
		{
			name: "album artist as artist",
			opts: options{policy: tag.Policy{AlbumArtist: tag.AlbumArtistAsArtist, SplitDate: true}},
			want: []string{"  artist: Various\n", "  year: 2004\n", "  month: 5\n"},
		},
		{
			name: "blocks",
			opts: options{blocks: true},
			want: []string{"METADATA block #0\n", "  type: 4 (VORBIS_COMMENT)\n", "    comment[0]: TITLE=Hello\n", "  type: 1 (PADDING)\n  is last: true\n"},
		},
		{
			name: "raw",
			opts: options{raw: true},
			want: []string{"  ALBUMARTIST=Various\n  ARTIST=World\n  DATE=2004-05\n  TITLE=Hello\n"},
		},
	}
	for _, g := range golden {
		buf := new(bytes.Buffer)
		if err := termtag(buf, path, g.opts); err != nil {
			t.Errorf("%s: unexpected error; %v", g.name, err)
			continue
		}
		for _, want := range g.want {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("%s: output %q does not contain %q", g.name, buf.String(), want)
			}
		}
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	path := writeFLAC(t, dir, "song.flac",
		meta.VorbisEntry{Name: "title", Value: "Hello"},
		meta.VorbisEntry{Name: "Genre", Value: "Sound Clip"},
	)
	opts := options{export: true}
	if err := termtag(new(bytes.Buffer), path, opts); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "song.tags"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "TITLE=Hello\nGENRE=Sound Clip\n"; string(got) != want {
		t.Errorf("exported tags mismatch; expected %q, got %q", want, got)
	}

	// Existing files are only overwritten when forced.
	if err := termtag(new(bytes.Buffer), path, opts); err == nil {
		t.Error("expected error for existing tags file")
	}
	opts.force = true
	if err := termtag(new(bytes.Buffer), path, opts); err != nil {
		t.Errorf("unexpected error; %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.flac", "b.flac", "c.flac"} {
		paths = append(paths, writeFLAC(t, dir, name, meta.VorbisEntry{Name: "TITLE", Value: name}))
	}
	outputs, err := run(paths, options{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(outputs) != len(paths) {
		t.Fatalf("output count mismatch; expected %d, got %d", len(paths), len(outputs))
	}
	for i, out := range outputs {
		if !strings.HasPrefix(out, paths[i]+":\n") {
			t.Errorf("output %d: expected file name prefix %q, got %q", i, paths[i], out)
		}
		if want := "  title: " + filepath.Base(paths[i]) + "\n"; !strings.Contains(out, want) {
			t.Errorf("output %d: expected %q in %q", i, want, out)
		}
	}

	// A failing file truncates the output at its position.
	bad := filepath.Join(dir, "bad.flac")
	if err := os.WriteFile(bad, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	outputs, err = run([]string{paths[0], bad, paths[1]}, options{}, 1)
	if err == nil {
		t.Fatal("expected error for invalid file")
	}
	if len(outputs) != 1 {
		t.Errorf("output count mismatch; expected 1, got %d", len(outputs))
	}

	if _, err := run([]string{filepath.Join(dir, "song.mp3")}, options{}, 1); err == nil {
		t.Error("expected error for unsupported format")
	}
}
