package meta

import (
	"bytes"
	"io"
	"math"
	"time"

	"github.com/go-audio/audio"
	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// StreamInfoSize is the size in bytes of a StreamInfo metadata block body.
const StreamInfoSize = 34

// StreamInfo contains the basic properties of a FLAC audio stream, such as its
// sample rate and channel count. It is the only mandatory metadata block and
// must be present as the first metadata block of a FLAC stream.
type StreamInfo struct {
	// Minimum block size (in samples) used in the stream; between 16 and 65535
	// samples.
	BlockSizeMin uint16
	// Maximum block size (in samples) used in the stream; between 16 and 65535
	// samples.
	BlockSizeMax uint16
	// Minimum frame size in bytes; a 0 value implies unknown.
	FrameSizeMin uint32
	// Maximum frame size in bytes; a 0 value implies unknown.
	FrameSizeMax uint32
	// Sample rate in Hz; between 1 and 655350 Hz.
	SampleRate uint32
	// Number of channels; between 1 and 8 channels.
	NChannels uint8
	// Sample size in bits-per-sample; between 4 and 32 bits.
	BitsPerSample uint8
	// Total number of inter-channel samples in the stream. One second of 44.1
	// KHz audio will have 44100 samples regardless of the number of channels. A
	// 0 value implies unknown.
	NSamples uint64
	// MD5 checksum of the unencoded audio data.
	MD5sum [16]uint8
}

// ParseStreamInfo decodes the body of a StreamInfo metadata block.
//
// StreamInfo format (pseudo code):
//
//    type METADATA_BLOCK_STREAMINFO struct {
//       block_size_min  uint16
//       block_size_max  uint16
//       frame_size_min  uint24
//       frame_size_max  uint24
//       sample_rate     uint20
//       channel_count   uint3 // (number of channels)-1.
//       bits_per_sample uint5 // (bits per sample)-1.
//       sample_count    uint36
//       md5sum          [16]byte
//    }
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_streaminfo
func ParseStreamInfo(data []byte) (*StreamInfo, error) {
	if len(data) < StreamInfoSize {
		return nil, errors.Wrapf(ErrTruncated, "meta.ParseStreamInfo: invalid body size; expected %d bytes, got %d", StreamInfoSize, len(data))
	}
	br := bitio.NewReader(bytes.NewReader(data))
	read := func(n uint8) uint64 {
		// The length check above guarantees that the bit reader has enough data.
		x, _ := br.ReadBits(n)
		return x
	}

	si := new(StreamInfo)
	si.BlockSizeMin = uint16(read(16))
	si.BlockSizeMax = uint16(read(16))
	si.FrameSizeMin = uint32(read(24))
	si.FrameSizeMax = uint32(read(24))
	si.SampleRate = uint32(read(20))
	si.NChannels = uint8(read(3)) + 1
	si.BitsPerSample = uint8(read(5)) + 1
	si.NSamples = read(36)
	if _, err := io.ReadFull(br, si.MD5sum[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	return si, nil
}

// Format returns the audio format described by the stream info.
func (si *StreamInfo) Format() *audio.Format {
	return &audio.Format{
		NumChannels: int(si.NChannels),
		SampleRate:  int(si.SampleRate),
	}
}

// Duration returns the play time of the stream, or 0 if the sample count or
// sample rate is unknown. Play times beyond the range of time.Duration are
// clamped.
func (si *StreamInfo) Duration() time.Duration {
	if si.SampleRate == 0 {
		return 0
	}
	secs := si.NSamples / uint64(si.SampleRate)
	rem := si.NSamples % uint64(si.SampleRate)
	if secs >= math.MaxInt64/uint64(time.Second) {
		return math.MaxInt64
	}
	return time.Duration(secs)*time.Second + time.Duration(rem)*time.Second/time.Duration(si.SampleRate)
}

// MarshalBinary encodes the body of the StreamInfo metadata block.
func (si *StreamInfo) MarshalBinary() ([]byte, error) {
	if si.NChannels < 1 || si.NChannels > 8 {
		return nil, errors.Errorf("meta.StreamInfo.MarshalBinary: invalid channel count %d", si.NChannels)
	}
	if si.BitsPerSample < 1 || si.BitsPerSample > 32 {
		return nil, errors.Errorf("meta.StreamInfo.MarshalBinary: invalid bits-per-sample %d", si.BitsPerSample)
	}
	buf := new(bytes.Buffer)
	bw := bitio.NewWriter(buf)
	fields := []struct {
		x    uint64
		n    uint8
		name string
	}{
		{x: uint64(si.BlockSizeMin), n: 16, name: "minimum block size"},
		{x: uint64(si.BlockSizeMax), n: 16, name: "maximum block size"},
		{x: uint64(si.FrameSizeMin), n: 24, name: "minimum frame size"},
		{x: uint64(si.FrameSizeMax), n: 24, name: "maximum frame size"},
		{x: uint64(si.SampleRate), n: 20, name: "sample rate"},
		{x: uint64(si.NChannels - 1), n: 3, name: "channel count"},
		{x: uint64(si.BitsPerSample - 1), n: 5, name: "bits-per-sample"},
		{x: si.NSamples, n: 36, name: "sample count"},
	}
	for _, field := range fields {
		// The bit writer silently drops the high bits of values that do not fit.
		if field.x >= 1<<field.n {
			return nil, errors.Errorf("meta.StreamInfo.MarshalBinary: %s %d does not fit in %d bits", field.name, field.x, field.n)
		}
		if err := bw.WriteBits(field.x, field.n); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	if _, err := bw.Write(si.MD5sum[:]); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := bw.Close(); err != nil {
		return nil, errors.WithStack(err)
	}
	return buf.Bytes(), nil
}
