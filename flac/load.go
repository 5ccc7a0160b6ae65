package flac

import (
	"bytes"
	"io"
	"os"

	"github.com/mewkiz/pkg/errutil"
	"github.com/opDavi1/termtag/internal/bufseekio"
	"github.com/opDavi1/termtag/meta"
)

// ReadFile returns the signature and the metadata blocks of the FLAC file at
// path. The audio frames are not read.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errutil.Err(err)
	}
	defer f.Close()
	return LoadMetadata(f)
}

// LoadMetadata reads the signature and the metadata blocks of the FLAC stream
// in rs, stopping after the last metadata block. An ID3v2 tag preceding the
// signature is skipped.
//
// LoadMetadata only copies bytes; it does not validate them. If rs ends early
// or lacks the FLAC signature, the bytes read so far are returned so that Scan
// reports the error.
func LoadMetadata(rs io.ReadSeeker) ([]byte, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, errutil.Err(err)
	}
	br := bufseekio.New(rs)
	if err := skipID3v2(br); err != nil {
		return nil, errutil.Err(err)
	}

	buf := new(bytes.Buffer)
	if _, err := io.CopyN(buf, br, int64(len(Signature))); err != nil {
		return partial(buf, err)
	}
	if buf.String() != Signature {
		return buf.Bytes(), nil
	}
	for {
		hdr := make([]byte, meta.HeaderSize)
		n, err := io.ReadFull(br, hdr)
		buf.Write(hdr[:n])
		if err != nil {
			return partial(buf, err)
		}
		h, err := meta.ParseHeader(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := io.CopyN(buf, br, int64(h.Length)); err != nil {
			return partial(buf, err)
		}
		if h.IsLast {
			return buf.Bytes(), nil
		}
	}
}

// partial returns the contents of buf if err signals the end of the stream,
// and err otherwise.
func partial(buf *bytes.Buffer, err error) ([]byte, error) {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return buf.Bytes(), nil
	}
	return nil, errutil.Err(err)
}

// id3v2HeaderSize is the size in bytes of an ID3v2 header or footer.
const id3v2HeaderSize = 10

// skipID3v2 skips an ID3v2 tag at the current position of br, if present.
//
// ID3v2 header format (pseudo code):
//
//    type ID3V2_HEADER struct {
//       identifier [3]byte // "ID3"
//       version    uint16
//       flags      uint8   // bit 4: footer present.
//       size       uint32  // synchsafe; 7 bits per byte.
//    }
//
// ref: https://id3.org/id3v2.4.0-structure
func skipID3v2(br *bufseekio.ReadSeeker) error {
	hdr := make([]byte, id3v2HeaderSize)
	n, err := io.ReadFull(br, hdr)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return err
	}
	if n < id3v2HeaderSize || string(hdr[:3]) != "ID3" {
		// Not an ID3v2 tag; rewind.
		_, err := br.Seek(-int64(n), io.SeekCurrent)
		return err
	}
	size := int64(hdr[6]&0x7F)<<21 | int64(hdr[7]&0x7F)<<14 | int64(hdr[8]&0x7F)<<7 | int64(hdr[9]&0x7F)
	if hdr[5]&0x10 != 0 {
		size += id3v2HeaderSize
	}
	_, err = br.Seek(size, io.SeekCurrent)
	return err
}
