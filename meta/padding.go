package meta

import (
	"github.com/pkg/errors"
)

// verifyPadding verifies the body of a Padding metadata block. It should only
// contain zero-padding.
//
// ref: https://www.xiph.org/flac/format.html#metadata_block_padding
func verifyPadding(data []byte) error {
	for i, b := range data {
		if b != 0 {
			return errors.Wrapf(ErrInvalidPadding, "meta.verifyPadding: non-zero byte 0x%02X at offset %d", b, i)
		}
	}
	return nil
}
