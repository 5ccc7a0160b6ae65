// Package bufseekio implements a buffered io.ReadSeeker.
package bufseekio

import (
	"errors"
	"io"
)

const (
	// DefaultSize is the default buffer size; large enough to hold the header
	// and the common metadata blocks of a FLAC file.
	DefaultSize = 8192
	// minSize is the smallest buffer size accepted by NewSize.
	minSize = 16
)

var errNegativeRead = errors.New("bufseekio: reader returned negative count from Read")

// ReadSeeker implements buffering for an io.ReadSeeker. Seeks that land
// within the buffered data, and seeks which only query the current position,
// are served without touching the underlying reader.
type ReadSeeker struct {
	// Buffered data.
	buf []byte
	// Absolute position in rd of buf[0].
	pos int64
	// Underlying read-seeker.
	rd io.ReadSeeker
	// Read and write positions within buf.
	r, w int
	// Pending error of rd.
	err error
}

// NewSize returns a new ReadSeeker whose buffer has at least the specified
// size. If rd is already a ReadSeeker with a large enough buffer, it is
// returned as is.
func NewSize(rd io.ReadSeeker, size int) *ReadSeeker {
	if b, ok := rd.(*ReadSeeker); ok && len(b.buf) >= size {
		return b
	}
	if size < minSize {
		size = minSize
	}
	return &ReadSeeker{
		buf: make([]byte, size),
		rd:  rd,
	}
}

// New returns a new ReadSeeker whose buffer has the default size.
func New(rd io.ReadSeeker) *ReadSeeker {
	return NewSize(rd, DefaultSize)
}

func (b *ReadSeeker) readErr() error {
	err := b.err
	b.err = nil
	return err
}

// Read reads data into p, returning the number of bytes read. The bytes are
// taken from at most one Read on the underlying reader, hence n may be less
// than len(p). Use io.ReadFull to read exactly len(p) bytes.
func (b *ReadSeeker) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		if b.buffered() > 0 {
			return 0, nil
		}
		return 0, b.readErr()
	}
	if b.r == b.w {
		if b.err != nil {
			return 0, b.readErr()
		}
		if len(p) >= len(b.buf) {
			// Large read with an empty buffer; read directly into p.
			n, b.err = b.rd.Read(p)
			if n < 0 {
				panic(errNegativeRead)
			}
			b.pos += int64(b.w) + int64(n)
			b.r, b.w = 0, 0
			return n, b.readErr()
		}
		// Refill the buffer with one read.
		b.pos += int64(b.w)
		b.r, b.w = 0, 0
		n, b.err = b.rd.Read(b.buf)
		if n < 0 {
			panic(errNegativeRead)
		}
		if n == 0 {
			return 0, b.readErr()
		}
		b.w = n
	}
	n = copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// buffered returns the number of unread bytes in the buffer.
func (b *ReadSeeker) buffered() int {
	return b.w - b.r
}

// Seek implements io.Seeker.
func (b *ReadSeeker) Seek(offset int64, whence int) (int64, error) {
	if offset == 0 && whence == io.SeekCurrent {
		return b.position(), nil
	}
	// The absolute position of the end is unknown; defer to the underlying
	// reader.
	if whence == io.SeekEnd {
		return b.seek(offset, whence)
	}
	abs := offset
	if whence == io.SeekCurrent {
		abs += b.position()
	}
	if abs >= b.pos && abs < b.pos+int64(b.w) {
		b.r = int(abs - b.pos)
		return abs, nil
	}
	return b.seek(abs, io.SeekStart)
}

// seek discards the buffer and seeks the underlying reader.
func (b *ReadSeeker) seek(offset int64, whence int) (int64, error) {
	b.r, b.w = 0, 0
	b.err = nil
	var err error
	b.pos, err = b.rd.Seek(offset, whence)
	return b.pos, err
}

// position returns the absolute read offset.
func (b *ReadSeeker) position() int64 {
	return b.pos + int64(b.r)
}
