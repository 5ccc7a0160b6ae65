package meta

import (
	"github.com/opDavi1/termtag/internal/cursor"
	"github.com/pkg/errors"
)

// A Picture metadata block is for storing pictures associated with the file,
// most commonly cover art from CDs. There may be more than one PICTURE block in
// a file.
type Picture struct {
	// The picture type according to the ID3v2 APIC frame:
	//    0 - Other
	//    1 - 32x32 pixels 'file icon' (PNG only)
	//    2 - Other file icon
	//    3 - Cover (front)
	//    4 - Cover (back)
	//    5 - Leaflet page
	//    6 - Media (e.g. label side of CD)
	//    7 - Lead artist/lead performer/soloist
	//    8 - Artist/performer
	//    9 - Conductor
	//    10 - Band/Orchestra
	//    11 - Composer
	//    12 - Lyricist/text writer
	//    13 - Recording Location
	//    14 - During recording
	//    15 - During performance
	//    16 - Movie/video screen capture
	//    17 - A bright coloured fish
	//    18 - Illustration
	//    19 - Band/artist logotype
	//    20 - Publisher/Studio logotype
	Type uint32
	// The MIME type string. The MIME type may also be --> to signify that the
	// data part is a URL of the picture instead of the picture data itself.
	MIME string
	// The description of the picture, in UTF-8.
	Desc string
	// The width of the picture in pixels.
	Width uint32
	// The height of the picture in pixels.
	Height uint32
	// The color depth of the picture in bits-per-pixel.
	Depth uint32
	// For indexed-color pictures (e.g. GIF), the number of colors used, or 0 for
	// non-indexed pictures.
	NPalColors uint32
	// The binary picture data.
	Data []byte
}

// ParsePicture decodes the body of a Picture metadata block.
//
// Picture format (pseudo code):
//
//    type METADATA_BLOCK_PICTURE struct {
//       type        uint32
//       mime_length uint32
//       mime_string [mime_length]byte
//       desc_length uint32
//       desc_string [desc_length]byte
//       width       uint32
//       height      uint32
//       depth       uint32
//       npal_colors uint32
//       data_length uint32
//       data        [data_length]byte
//    }
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_picture
func ParsePicture(data []byte) (*Picture, error) {
	c := cursor.New(data)
	pic := new(Picture)
	var err error
	wrap := func(err error, what string) error {
		return errors.Wrapf(err, "meta.ParsePicture: unable to read %s", what)
	}

	// 32 bits: Type.
	if pic.Type, err = c.Uint32BE(); err != nil {
		return nil, wrap(err, "picture type")
	}

	// 32 bits: (MIME type length).
	mimeLen, err := c.Uint32BE()
	if err != nil {
		return nil, wrap(err, "MIME type length")
	}
	mime, err := c.Bytes(int(mimeLen))
	if err != nil {
		return nil, wrap(err, "MIME type")
	}
	for _, r := range mime {
		if r < 0x20 || r > 0x7E {
			return nil, errors.Errorf("meta.ParsePicture: invalid character in MIME type; expected >= 0x20 and <= 0x7E, got 0x%02X", r)
		}
	}
	pic.MIME = string(mime)

	// 32 bits: (description length).
	descLen, err := c.Uint32BE()
	if err != nil {
		return nil, wrap(err, "description length")
	}
	desc, err := c.Bytes(int(descLen))
	if err != nil {
		return nil, wrap(err, "description")
	}
	pic.Desc = string(desc)

	// 32 bits: Width, Height, Depth and NPalColors.
	for _, field := range []struct {
		x    *uint32
		name string
	}{
		{x: &pic.Width, name: "width"},
		{x: &pic.Height, name: "height"},
		{x: &pic.Depth, name: "color depth"},
		{x: &pic.NPalColors, name: "color count"},
	} {
		if *field.x, err = c.Uint32BE(); err != nil {
			return nil, wrap(err, field.name)
		}
	}

	// 32 bits: (data length).
	dataLen, err := c.Uint32BE()
	if err != nil {
		return nil, wrap(err, "data length")
	}
	buf, err := c.Bytes(int(dataLen))
	if err != nil {
		return nil, wrap(err, "picture data")
	}
	pic.Data = append([]byte{}, buf...)
	return pic, nil
}
