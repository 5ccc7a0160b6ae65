package flac

import (
	"bytes"
	"encoding"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/pkg/errutil"
	"github.com/opDavi1/termtag/meta"
	"github.com/pkg/errors"
)

// Encode writes the FLAC signature followed by the given metadata blocks to w.
//
// The body of a block is re-encoded from its decoded Body when the body
// implements encoding.BinaryMarshaler, and copied from Data otherwise. The
// header of each block is recomputed: Length is set to the length of the body,
// and only the final block is marked as last. Block headers are updated in
// place.
func Encode(w io.Writer, blocks []*meta.Block) error {
	if len(blocks) == 0 {
		return errors.New("flac.Encode: no metadata blocks")
	}
	buf := new(bytes.Buffer)
	buf.WriteString(Signature)
	for i, block := range blocks {
		data := block.Data
		if m, ok := block.Body.(encoding.BinaryMarshaler); ok {
			var err error
			if data, err = m.MarshalBinary(); err != nil {
				return errors.Wrapf(err, "flac.Encode: unable to encode %v metadata block %d", block.Type, i)
			}
		}
		if len(data) > meta.MaxLength {
			return errors.Errorf("flac.Encode: body of %v metadata block %d too large; %d > %d", block.Type, i, len(data), meta.MaxLength)
		}
		block.Data = data
		block.IsLast = i == len(blocks)-1
		block.Length = len(data)
		if err := writeBlockHeader(buf, block.Header); err != nil {
			return errutil.Err(err)
		}
		buf.Write(data)
	}
	if _, err := io.Copy(w, buf); err != nil {
		return errutil.Err(err)
	}
	return nil
}

// writeBlockHeader writes the header of a metadata block.
func writeBlockHeader(w io.Writer, hdr meta.Header) error {
	bw := bitio.NewWriter(w)

	// 1 bit: IsLast.
	if err := bw.WriteBool(hdr.IsLast); err != nil {
		return errutil.Err(err)
	}

	// 7 bits: Type.
	if err := bw.WriteBits(uint64(hdr.Type), 7); err != nil {
		return errutil.Err(err)
	}

	// 24 bits: Length.
	if err := bw.WriteBits(uint64(hdr.Length), 24); err != nil {
		return errutil.Err(err)
	}

	// The header is byte aligned; Close only flushes.
	return bw.Close()
}
