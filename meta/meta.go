// Package meta implements access to FLAC metadata blocks.
//
// A brief introduction of the FLAC metadata format [1] follows. Each metadata
// block starts with a 32 bit header. The header contains a flag which marks the
// last metadata block before the audio frames, the type of the block, and the
// length in bytes of the block body. Block bodies are kept as raw bytes and may
// be decoded on demand; only the Vorbis comment body uses little-endian
// integers, every other field of the format is big-endian.
//
//    Type:
//       0:     Streaminfo
//       1:     Padding
//       2:     Application
//       3:     Seektable
//       4:     Vorbis_comment
//       5:     Cuesheet
//       6:     Picture
//       7-126: reserved
//       127:   invalid, to avoid confusion with a frame sync code
//
// [1]: https://www.xiph.org/flac/format.html#format_overview
package meta

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// A Block contains the header and the raw body of a metadata block.
type Block struct {
	// Metadata block header.
	Header
	// Raw metadata block body; len(Data) == Header.Length. The data is owned by
	// the block and never aliases the buffer it was scanned from.
	Data []byte
	// Decoded metadata block body: *StreamInfo, *Application, *SeekTable,
	// *VorbisComment or *Picture. Body is nil until Parse is called, and remains
	// nil for padding, cue sheet, reserved and invalid blocks.
	Body interface{}
}

// Parse decodes the block body according to the block type. Blocks of a type
// without a decoder are left untouched.
func (block *Block) Parse() error {
	switch block.Type {
	case TypeStreamInfo:
		si, err := ParseStreamInfo(block.Data)
		if err != nil {
			return err
		}
		block.Body = si
	case TypePadding:
		return verifyPadding(block.Data)
	case TypeApplication:
		app, err := ParseApplication(block.Data)
		if err != nil {
			return err
		}
		block.Body = app
	case TypeSeekTable:
		table, err := ParseSeekTable(block.Data)
		if err != nil {
			return err
		}
		block.Body = table
	case TypeVorbisComment:
		vc, err := ParseVorbisComment(block.Data)
		if err != nil {
			return err
		}
		block.Body = vc
	case TypePicture:
		pic, err := ParsePicture(block.Data)
		if err != nil {
			return err
		}
		block.Body = pic
	}
	return nil
}

// A Header contains type and length information about a metadata block.
type Header struct {
	// IsLast is true if this block is the last metadata block before the audio
	// frames, and false otherwise.
	IsLast bool
	// Metadata block type.
	Type Type
	// Length in bytes of the metadata block body.
	Length int
}

// HeaderSize is the size in bytes of an encoded metadata block header.
const HeaderSize = 4

// MaxLength is the largest body length representable by a block header.
const MaxLength = 1<<24 - 1

// ParseHeader parses a metadata block header from the provided bytes.
//
// Metadata block header format (pseudo code):
//
//    type METADATA_BLOCK_HEADER struct {
//       is_last    bool
//       block_type uint7
//       length     uint24
//    }
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_header
func ParseHeader(buf []byte) (Header, error) {
	if len(buf) != HeaderSize {
		return Header{}, errors.Wrapf(ErrTruncated, "meta.ParseHeader: invalid header size; expected %d bytes, got %d", HeaderSize, len(buf))
	}
	br := bitio.NewReader(bytes.NewReader(buf))

	// 1 bit: is_last.
	isLast, err := br.ReadBool()
	if err != nil {
		return Header{}, errors.WithStack(err)
	}

	// 7 bits: block_type.
	x, err := br.ReadBits(7)
	if err != nil {
		return Header{}, errors.WithStack(err)
	}

	// 24 bits: length.
	// int won't overflow since the max value of Length is 0x00FFFFFF.
	length, err := br.ReadBits(24)
	if err != nil {
		return Header{}, errors.WithStack(err)
	}

	hdr := Header{
		IsLast: isLast,
		Type:   Type(x),
		Length: int(length),
	}
	return hdr, nil
}

// Type represents the type of a metadata block body.
type Type uint8

// Metadata block body types.
const (
	TypeStreamInfo    Type = 0
	TypePadding       Type = 1
	TypeApplication   Type = 2
	TypeSeekTable     Type = 3
	TypeVorbisComment Type = 4
	TypeCueSheet      Type = 5
	TypePicture       Type = 6

	// TypeForbidden is invalid as a metadata block type, to avoid confusion
	// with a frame sync code. Blocks of this type are still preserved.
	TypeForbidden Type = 127
)

// IsReserved reports whether t is one of the reserved block types 7 through
// 126.
func (t Type) IsReserved() bool {
	return t > TypePicture && t < TypeForbidden
}

func (t Type) String() string {
	switch t {
	case TypeStreamInfo:
		return "stream info"
	case TypePadding:
		return "padding"
	case TypeApplication:
		return "application"
	case TypeSeekTable:
		return "seek table"
	case TypeVorbisComment:
		return "vorbis comment"
	case TypeCueSheet:
		return "cue sheet"
	case TypePicture:
		return "picture"
	case TypeForbidden:
		return "forbidden"
	}
	return fmt.Sprintf("reserved (%d)", uint8(t))
}
