// Package cursor implements bounds-checked sequential reads from a byte slice.
//
// Every read verifies that the requested number of bytes is available before
// slicing, so a length field that points past the end of the data surfaces as
// ErrTruncated rather than as an index out of range panic.
package cursor

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ErrTruncated is returned when a read would extend past the end of the data.
var ErrTruncated = errors.New("truncated data")

// A Cursor reads sequentially from a byte slice.
type Cursor struct {
	// Underlying data.
	buf []byte
	// Read offset into buf.
	pos int
}

// New returns a cursor positioned at the start of buf.
func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Offset returns the current read offset.
func (c *Cursor) Offset() int {
	return c.pos
}

// Len returns the number of unread bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

// Bytes returns the next n bytes and advances the cursor. The returned slice
// aliases the underlying data; callers that retain it must make a copy.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, errors.Wrapf(ErrTruncated, "read of %d bytes at offset %d exceeds the %d bytes remaining", n, c.pos, c.Len())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.Bytes(n)
	return err
}

// Uint32LE reads a 32-bit little-endian unsigned integer.
func (c *Cursor) Uint32LE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint16BE reads a 16-bit big-endian unsigned integer.
func (c *Cursor) Uint16BE() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32BE reads a 32-bit big-endian unsigned integer.
func (c *Cursor) Uint32BE() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint64BE reads a 64-bit big-endian unsigned integer.
func (c *Cursor) Uint64BE() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}
