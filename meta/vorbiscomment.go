package meta

import (
	"bytes"
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/opDavi1/termtag/internal/cursor"
	"github.com/pkg/errors"
)

// UnknownVendor replaces a vendor string which is not valid UTF-8.
const UnknownVendor = "Unknown Vendor"

// A VorbisComment metadata block is for storing a list of human-readable
// name/value pairs. Values are encoded using UTF-8. It is an implementation of
// the Vorbis comment specification (without the framing bit). This is the only
// officially supported tagging mechanism in FLAC. There may be only one
// VORBIS_COMMENT block in a stream. In some external documentation, Vorbis
// comments are called FLAC tags to lessen confusion.
type VorbisComment struct {
	// Vendor name.
	Vendor string
	// Name/value pairs in the order they are stored.
	Entries []VorbisEntry
}

// A VorbisEntry is a name/value pair. Names are case-insensitive.
type VorbisEntry struct {
	Name  string
	Value string
}

// ParseVorbisComment decodes the body of a VorbisComment metadata block.
//
// Malformed comments do not fail the decoding. A vendor string which is not
// valid UTF-8 is replaced with UnknownVendor, a comment which is not valid UTF-8
// is treated as empty, and comments without a '=' separator are dropped. A
// length which extends past the end of the body fails with ErrTruncated.
//
// Vorbis comment format (pseudo code):
//
//    type METADATA_BLOCK_VORBIS_COMMENT struct {
//       vendor_length uint32
//       vendor_string [vendor_length]byte
//       comment_count uint32
//       comments      [comment_count]comment
//    }
//
//    type comment struct {
//       vector_length uint32
//       // vector_string is a name/value pair. Example: "NAME=value".
//       vector_string [length]byte
//    }
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_vorbis_comment
func ParseVorbisComment(data []byte) (*VorbisComment, error) {
	c := cursor.New(data)

	// 32 bits: vendor length.
	vendorLen, err := c.Uint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseVorbisComment: unable to read vendor length")
	}

	// (vendor length) bytes: vendor string.
	buf, err := c.Bytes(int(vendorLen))
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseVorbisComment: unable to read vendor string")
	}
	vc := &VorbisComment{Vendor: UnknownVendor}
	if utf8.Valid(buf) {
		vc.Vendor = string(buf)
	}

	// 32 bits: number of comments.
	n, err := c.Uint32LE()
	if err != nil {
		return nil, errors.Wrap(err, "meta.ParseVorbisComment: unable to read comment count")
	}
	// Each comment occupies at least 4 bytes; reject impossible counts before
	// allocating.
	if uint64(n)*4 > uint64(c.Len()) {
		return nil, errors.Wrapf(ErrTruncated, "meta.ParseVorbisComment: %d comments do not fit in the %d bytes remaining", n, c.Len())
	}

	vc.Entries = make([]VorbisEntry, 0, n)
	for i := uint32(0); i < n; i++ {
		// 32 bits: vector length.
		vectorLen, err := c.Uint32LE()
		if err != nil {
			return nil, errors.Wrapf(err, "meta.ParseVorbisComment: unable to read length of comment %d", i)
		}

		// (vector length) bytes: vector string.
		buf, err := c.Bytes(int(vectorLen))
		if err != nil {
			return nil, errors.Wrapf(err, "meta.ParseVorbisComment: unable to read comment %d", i)
		}
		var vector string
		if utf8.Valid(buf) {
			vector = string(buf)
		}
		pos := strings.IndexByte(vector, '=')
		if pos == -1 {
			continue
		}
		entry := VorbisEntry{
			Name:  vector[:pos],
			Value: vector[pos+1:],
		}
		vc.Entries = append(vc.Entries, entry)
	}
	return vc, nil
}

// Get returns the values of every comment with the given name, in the order
// they are stored. Names are compared case-insensitively.
func (vc *VorbisComment) Get(name string) []string {
	var values []string
	for _, entry := range vc.Entries {
		if strings.EqualFold(entry.Name, name) {
			values = append(values, entry.Value)
		}
	}
	return values
}

// MarshalBinary encodes the body of the VorbisComment metadata block.
func (vc *VorbisComment) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)

	// 32 bits: vendor length.
	x := uint32(len(vc.Vendor))
	if err := binary.Write(buf, binary.LittleEndian, x); err != nil {
		return nil, errors.WithStack(err)
	}

	// (vendor length) bytes: vendor string.
	buf.WriteString(vc.Vendor)

	// 32 bits: number of comments.
	x = uint32(len(vc.Entries))
	if err := binary.Write(buf, binary.LittleEndian, x); err != nil {
		return nil, errors.WithStack(err)
	}
	for _, entry := range vc.Entries {
		if strings.ContainsRune(entry.Name, '=') {
			return nil, errors.Errorf("meta.VorbisComment.MarshalBinary: invalid comment name %q; contains '='", entry.Name)
		}
		// Store comment, which has the following format:
		//    NAME=VALUE
		vector := entry.Name + "=" + entry.Value

		// 32 bits: vector length.
		x = uint32(len(vector))
		if err := binary.Write(buf, binary.LittleEndian, x); err != nil {
			return nil, errors.WithStack(err)
		}

		// (vector length) bytes: vector string.
		buf.WriteString(vector)
	}
	return buf.Bytes(), nil
}
