package flac

import (
	"log"

	"github.com/opDavi1/termtag/meta"
	"github.com/opDavi1/termtag/tag"
	"github.com/pkg/errors"
)

func init() {
	tag.Register(".flac", &tag.Format{
		Name:      "FLAC",
		Load:      ReadFile,
		NewReader: func(p tag.Policy) tag.Reader { return Decoder{Policy: p} },
	})
}

// ReadMetadata reads the normalized metadata of the FLAC stream in buf.
//
// Tags are read from the first VorbisComment metadata block; a stream without
// one yields metadata with every tag unset. Audio properties are read from the
// StreamInfo metadata block when it can be decoded.
func ReadMetadata(buf []byte, p tag.Policy) (*tag.Metadata, error) {
	blocks, err := Scan(buf)
	if err != nil {
		return nil, err
	}
	var (
		info *meta.StreamInfo
		vc   *meta.VorbisComment
	)
	for i, block := range blocks {
		switch block.Type {
		case meta.TypeStreamInfo:
			if info != nil {
				log.Printf("flac.ReadMetadata: ignoring duplicate stream info block %d", i)
				continue
			}
			si, err := meta.ParseStreamInfo(block.Data)
			if err != nil {
				log.Printf("flac.ReadMetadata: ignoring stream info block %d; %v", i, err)
				continue
			}
			info = si
		case meta.TypeVorbisComment:
			if vc != nil {
				log.Printf("flac.ReadMetadata: ignoring duplicate vorbis comment block %d", i)
				continue
			}
			vc, err = meta.ParseVorbisComment(block.Data)
			if err != nil {
				return nil, errors.Wrapf(err, "flac.ReadMetadata: unable to decode vorbis comment block %d", i)
			}
		}
	}

	md := tag.Normalize(vc, p)
	if info != nil {
		md.Format = info.Format()
		md.BitsPerSample = int(info.BitsPerSample)
		md.Duration = info.Duration()
	}
	return md, nil
}

// Decoder reads the metadata of FLAC streams using a fixed policy. It
// implements tag.Reader.
type Decoder struct {
	Policy tag.Policy
}

// ReadMetadata reads the normalized metadata of the FLAC stream in buf.
func (d Decoder) ReadMetadata(buf []byte) (*tag.Metadata, error) {
	return ReadMetadata(buf, d.Policy)
}
