package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/opDavi1/termtag/flac"
	"github.com/opDavi1/termtag/meta"
	"github.com/opDavi1/termtag/tag"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// termtag writes the listing of the file at path to w.
func termtag(w io.Writer, path string, opts options) error {
	switch {
	case opts.blocks:
		buf, err := flac.ReadFile(path)
		if err != nil {
			return err
		}
		stream, err := flac.Parse(buf)
		if err != nil {
			return errors.Wrapf(err, "unable to parse %q", path)
		}
		for blockNum, block := range stream.Blocks {
			listBlock(w, block, blockNum)
		}
	case opts.raw:
		buf, err := flac.ReadFile(path)
		if err != nil {
			return err
		}
		blocks, err := flac.Scan(buf)
		if err != nil {
			return errors.Wrapf(err, "unable to scan %q", path)
		}
		for _, block := range blocks {
			if block.Type != meta.TypeVorbisComment {
				continue
			}
			vc, err := meta.ParseVorbisComment(block.Data)
			if err != nil {
				return errors.Wrapf(err, "unable to parse %q", path)
			}
			listRaw(w, vc)
			break
		}
	default:
		md, err := tag.ReadFile(path, opts.policy)
		if err != nil {
			return err
		}
		listMetadata(w, md)
	}
	if opts.export {
		md, err := tag.ReadFile(path, opts.policy)
		if err != nil {
			return err
		}
		return export(path, md, opts.force)
	}
	return nil
}

// Example:
//      title: Hello
//      artist: World
//      tracknumber: 3/12
//      vendor: reference libFLAC 1.4.3 20230623
//      sample rate: 44100 Hz
//      channels: 2
//      bits-per-sample: 16
//      duration: 3m25s
func listMetadata(w io.Writer, md *tag.Metadata) {
	for _, key := range tag.Keys {
		if v := md.Get(key); v != "" {
			fmt.Fprintf(w, "  %s: %s\n", key, v)
		}
	}
	if md.Year != 0 {
		fmt.Fprintf(w, "  year: %d\n", md.Year)
	}
	if md.Month != 0 {
		fmt.Fprintf(w, "  month: %d\n", md.Month)
	}
	if md.Day != 0 {
		fmt.Fprintf(w, "  day: %d\n", md.Day)
	}
	if md.Vendor != "" {
		fmt.Fprintf(w, "  vendor: %s\n", md.Vendor)
	}
	if md.Format != nil {
		fmt.Fprintf(w, "  sample rate: %d Hz\n", md.Format.SampleRate)
		fmt.Fprintf(w, "  channels: %d\n", md.Format.NumChannels)
		fmt.Fprintf(w, "  bits-per-sample: %d\n", md.BitsPerSample)
		fmt.Fprintf(w, "  duration: %v\n", md.Duration)
	}
}

// listRaw lists the comments of vc sorted by lower-case name. Comments sharing
// a name keep their stored order.
//
// Example:
//      ARTIST=World
//      title=Hello
//      TITLE=Hello again
func listRaw(w io.Writer, vc *meta.VorbisComment) {
	byName := make(map[string][]meta.VorbisEntry)
	for _, entry := range vc.Entries {
		name := strings.ToLower(entry.Name)
		byName[name] = append(byName[name], entry)
	}
	names := maps.Keys(byName)
	slices.Sort(names)
	for _, name := range names {
		for _, entry := range byName[name] {
			fmt.Fprintf(w, "  %s=%s\n", entry.Name, entry.Value)
		}
	}
}

// export writes the normalized tags of md to a ".tags" file next to path, one
// NAME=value line per tag that is set.
func export(path string, md *tag.Metadata, force bool) error {
	tagsPath := pathutil.TrimExt(path) + ".tags"
	if !force && osutil.Exists(tagsPath) {
		return errors.Errorf("tags file %q already present; use -f flag to force overwrite", tagsPath)
	}
	var b strings.Builder
	for _, key := range tag.Keys {
		if v := md.Get(key); v != "" {
			fmt.Fprintf(&b, "%s=%s\n", strings.ToUpper(string(key)), v)
		}
	}
	if err := os.WriteFile(tagsPath, []byte(b.String()), 0o644); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func listBlock(w io.Writer, block *meta.Block, blockNum int) {
	listHeader(w, &block.Header, blockNum)
	switch body := block.Body.(type) {
	case *meta.StreamInfo:
		listStreamInfo(w, body)
	case *meta.Application:
		listApplication(w, body)
	case *meta.SeekTable:
		listSeekTable(w, body)
	case *meta.VorbisComment:
		listVorbisComment(w, body)
	case *meta.Picture:
		listPicture(w, body)
	}
}

// typeName maps from metadata block type to a string version of its name.
var typeName = map[meta.Type]string{
	meta.TypeStreamInfo:    "STREAMINFO",
	meta.TypePadding:       "PADDING",
	meta.TypeApplication:   "APPLICATION",
	meta.TypeSeekTable:     "SEEKTABLE",
	meta.TypeVorbisComment: "VORBIS_COMMENT",
	meta.TypeCueSheet:      "CUESHEET",
	meta.TypePicture:       "PICTURE",
}

// Example:
//    METADATA block #0
//      type: 0 (STREAMINFO)
//      is last: false
//      length: 34
func listHeader(w io.Writer, header *meta.Header, blockNum int) {
	name, ok := typeName[header.Type]
	if !ok {
		name = "UNKNOWN"
	}
	fmt.Fprintf(w, "METADATA block #%d\n", blockNum)
	fmt.Fprintf(w, "  type: %d (%s)\n", header.Type, name)
	fmt.Fprintf(w, "  is last: %t\n", header.IsLast)
	fmt.Fprintf(w, "  length: %d\n", header.Length)
}

// Example:
//      minimum blocksize: 4608 samples
//      maximum blocksize: 4608 samples
//      minimum framesize: 0 bytes
//      maximum framesize: 19024 bytes
//      sample_rate: 44100 Hz
//      channels: 2
//      bits-per-sample: 16
//      total samples: 151007220
//      MD5 signature: 2e6238f5d9fe5c19f3ead628f750fd3d
func listStreamInfo(w io.Writer, si *meta.StreamInfo) {
	fmt.Fprintf(w, "  minimum blocksize: %d samples\n", si.BlockSizeMin)
	fmt.Fprintf(w, "  maximum blocksize: %d samples\n", si.BlockSizeMax)
	fmt.Fprintf(w, "  minimum framesize: %d bytes\n", si.FrameSizeMin)
	fmt.Fprintf(w, "  maximum framesize: %d bytes\n", si.FrameSizeMax)
	fmt.Fprintf(w, "  sample_rate: %d Hz\n", si.SampleRate)
	fmt.Fprintf(w, "  channels: %d\n", si.NChannels)
	fmt.Fprintf(w, "  bits-per-sample: %d\n", si.BitsPerSample)
	fmt.Fprintf(w, "  total samples: %d\n", si.NSamples)
	fmt.Fprintf(w, "  MD5 signature: %x\n", si.MD5sum)
}

// Example:
//      application ID: 46696361 (CUE Splitter)
//      data length: 39
func listApplication(w io.Writer, app *meta.Application) {
	fmt.Fprintf(w, "  application ID: %x (%v)\n", string(app.ID), app.ID)
	fmt.Fprintf(w, "  data length: %d\n", len(app.Data))
}

// Example:
//      seek points: 17
//        point 0: sample_number=0, stream_offset=0, frame_samples=4608
//        point 1: sample_number=2419200, stream_offset=3733871, frame_samples=4608
//        ...
func listSeekTable(w io.Writer, st *meta.SeekTable) {
	fmt.Fprintf(w, "  seek points: %d\n", len(st.Points))
	for pointNum, point := range st.Points {
		if point.SampleNum == meta.PlaceholderPoint {
			fmt.Fprintf(w, "    point %d: PLACEHOLDER\n", pointNum)
			continue
		}
		fmt.Fprintf(w, "    point %d: sample_number=%d, stream_offset=%d, frame_samples=%d\n", pointNum, point.SampleNum, point.Offset, point.NSamples)
	}
}

// Example:
//      vendor string: reference libFLAC 1.2.1 20070917
//      comments: 2
//        comment[0]: ALBUM=Record
//        comment[1]: ARTIST=Band
func listVorbisComment(w io.Writer, vc *meta.VorbisComment) {
	fmt.Fprintf(w, "  vendor string: %s\n", vc.Vendor)
	fmt.Fprintf(w, "  comments: %d\n", len(vc.Entries))
	for entryNum, entry := range vc.Entries {
		fmt.Fprintf(w, "    comment[%d]: %s=%s\n", entryNum, entry.Name, entry.Value)
	}
}

// pictureTypeName maps from picture type to its description.
var pictureTypeName = map[uint32]string{
	0:  "Other",
	1:  "32x32 pixels 'file icon' (PNG only)",
	2:  "Other file icon",
	3:  "Cover (front)",
	4:  "Cover (back)",
	5:  "Leaflet page",
	6:  "Media (e.g. label side of CD)",
	7:  "Lead artist/lead performer/soloist",
	8:  "Artist/performer",
	9:  "Conductor",
	10: "Band/Orchestra",
	11: "Composer",
	12: "Lyricist/text writer",
	13: "Recording Location",
	14: "During recording",
	15: "During performance",
	16: "Movie/video screen capture",
	17: "A bright coloured fish",
	18: "Illustration",
	19: "Band/artist logotype",
	20: "Publisher/Studio logotype",
}

// Example:
//      type: 3 (Cover (front))
//      MIME type: image/jpeg
//      description:
//      width: 0
//      height: 0
//      depth: 0
//      colors: 0 (unindexed)
//      data length: 234569
//      data:
//        00000000  ff d8 ff e0 00 10 4a 46  49 46 00 01 01 01 00 60  |......JFIF.....`|
func listPicture(w io.Writer, pic *meta.Picture) {
	fmt.Fprintf(w, "  type: %d (%s)\n", pic.Type, pictureTypeName[pic.Type])
	fmt.Fprintf(w, "  MIME type: %s\n", pic.MIME)
	fmt.Fprintf(w, "  description: %s\n", pic.Desc)
	fmt.Fprintf(w, "  width: %d\n", pic.Width)
	fmt.Fprintf(w, "  height: %d\n", pic.Height)
	fmt.Fprintf(w, "  depth: %d\n", pic.Depth)
	fmt.Fprintf(w, "  colors: %d", pic.NPalColors)
	if pic.NPalColors == 0 {
		fmt.Fprint(w, " (unindexed)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  data length: %d\n", len(pic.Data))
	fmt.Fprintln(w, "  data:")
	// Only the first line of the dump; pictures are often large.
	n := len(pic.Data)
	if n > 16 {
		n = 16
	}
	fmt.Fprint(w, hex.Dump(pic.Data[:n]))
}
