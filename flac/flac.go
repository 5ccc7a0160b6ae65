// Package flac provides access to the metadata of FLAC (Free Lossless Audio
// Codec) files. [1]
//
// The basic structure of a FLAC bitstream is:
//    - The four byte string signature "fLaC".
//    - The StreamInfo metadata block.
//    - Zero or more other metadata blocks.
//    - One or more audio frames.
//
// Only the signature and the metadata blocks are read; audio frames are never
// decoded.
//
// [1]: https://www.xiph.org/flac/format.html
package flac

import (
	"bytes"

	"github.com/opDavi1/termtag/internal/cursor"
	"github.com/opDavi1/termtag/meta"
	"github.com/pkg/errors"
)

// Signature is present at the beginning of each FLAC stream.
const Signature = "fLaC"

// ErrFirstNotStreamInfo is returned by Parse when the first metadata block is
// not a StreamInfo block.
var ErrFirstNotStreamInfo = errors.New("first metadata block is not stream info")

// Scan verifies the signature of the FLAC stream in buf and returns its
// metadata blocks, up to and including the block marked as last. Block bodies
// are copied but not decoded. Any data following the last metadata block, such
// as audio frames, is ignored.
//
// Scan fails with meta.ErrNotContainer if buf does not start with the FLAC
// signature, and with meta.ErrTruncated if a block header or body extends past
// the end of buf before the last block has been read.
func Scan(buf []byte) ([]*meta.Block, error) {
	c := cursor.New(buf)

	// Verify "fLaC" signature (size: 4 bytes).
	sig, err := c.Bytes(len(Signature))
	if err != nil || string(sig) != Signature {
		return nil, errors.Wrapf(meta.ErrNotContainer, "flac.Scan: invalid signature; expected %q, got %q", Signature, sig)
	}

	// Read metadata blocks.
	var blocks []*meta.Block
	for {
		offset := c.Offset()
		buf, err := c.Bytes(meta.HeaderSize)
		if err != nil {
			return nil, errors.Wrapf(err, "flac.Scan: unable to read header of metadata block %d at offset %d", len(blocks), offset)
		}
		hdr, err := meta.ParseHeader(buf)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		data, err := c.Bytes(hdr.Length)
		if err != nil {
			return nil, errors.Wrapf(err, "flac.Scan: unable to read body of %v metadata block %d at offset %d", hdr.Type, len(blocks), offset)
		}
		block := &meta.Block{
			Header: hdr,
			Data:   bytes.Clone(data),
		}
		blocks = append(blocks, block)
		if hdr.IsLast {
			return blocks, nil
		}
	}
}

// A Stream contains the metadata blocks of a FLAC stream.
type Stream struct {
	// The StreamInfo metadata block.
	Info *meta.StreamInfo
	// Metadata blocks in stream order, including the StreamInfo block.
	Blocks []*meta.Block
}

// Parse scans the metadata blocks of the FLAC stream in buf and decodes the
// body of every block of a known type. The first block must be a StreamInfo
// block.
func Parse(buf []byte) (*Stream, error) {
	blocks, err := Scan(buf)
	if err != nil {
		return nil, err
	}
	// The first block type must be StreamInfo.
	if first := blocks[0]; first.Type != meta.TypeStreamInfo {
		return nil, errors.Wrapf(ErrFirstNotStreamInfo, "flac.Parse: got %v", first.Type)
	}
	for i, block := range blocks {
		if err := block.Parse(); err != nil {
			return nil, errors.Wrapf(err, "flac.Parse: unable to decode %v metadata block %d", block.Type, i)
		}
	}
	s := &Stream{
		Info:   blocks[0].Body.(*meta.StreamInfo),
		Blocks: blocks,
	}
	return s, nil
}

// VorbisComment returns the decoded VorbisComment metadata block of the
// stream, or nil if not present.
func (s *Stream) VorbisComment() *meta.VorbisComment {
	for _, block := range s.Blocks {
		if vc, ok := block.Body.(*meta.VorbisComment); ok {
			return vc
		}
	}
	return nil
}
