package meta

import (
	"github.com/opDavi1/termtag/internal/cursor"
	"github.com/pkg/errors"
)

// seekPointSize is the size in bytes of an encoded seek point.
const seekPointSize = 18

// PlaceholderPoint is the sample number used for placeholder points. For
// placeholder points, the second and third field values in the SeekPoint
// structure are undefined.
const PlaceholderPoint = 0xFFFFFFFFFFFFFFFF

// A SeekTable metadata block is an optional block for storing seek points. It
// is possible to seek to any given sample in a FLAC stream without a seek
// table, but the delay can be unpredictable since the bitrate may vary widely
// within a stream.
type SeekTable struct {
	// One or more seek points.
	Points []SeekPoint
}

// A SeekPoint specifies the byte offset and initial sample number of a given
// target frame.
//
// ref: https://www.xiph.org/flac/format.html#seekpoint
type SeekPoint struct {
	// Sample number of the first sample in the target frame, or
	// 0xFFFFFFFFFFFFFFFF for a placeholder point.
	SampleNum uint64
	// Offset in bytes from the first byte of the first frame header to the first
	// byte of the target frame's header.
	Offset uint64
	// Number of samples in the target frame.
	NSamples uint16
}

// ParseSeekTable decodes the body of a SeekTable metadata block. The number of
// seek points is derived from the body length.
//
// Seek table format (pseudo code):
//
//    type METADATA_BLOCK_SEEKTABLE struct {
//       // The number of seek points is implied by the metadata header 'length'
//       // field, i.e. equal to length / 18.
//       points []point
//    }
//
//    type point struct {
//       sample_num   uint64
//       offset       uint64
//       sample_count uint16
//    }
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_seektable
func ParseSeekTable(data []byte) (*SeekTable, error) {
	if len(data)%seekPointSize != 0 {
		return nil, errors.Errorf("meta.ParseSeekTable: invalid body size %d; not a multiple of %d", len(data), seekPointSize)
	}
	c := cursor.New(data)
	table := &SeekTable{Points: make([]SeekPoint, len(data)/seekPointSize)}
	for i := range table.Points {
		point := &table.Points[i]
		// The size check above guarantees that every read succeeds.
		point.SampleNum, _ = c.Uint64BE()
		point.Offset, _ = c.Uint64BE()
		point.NSamples, _ = c.Uint16BE()
	}
	return table, nil
}
