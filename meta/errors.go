package meta

import (
	"github.com/opDavi1/termtag/internal/cursor"
	"github.com/pkg/errors"
)

// Errors reported while reading FLAC metadata. Use errors.Cause to retrieve
// them from a wrapped error.
var (
	// ErrNotContainer is returned when the data does not start with the FLAC
	// signature "fLaC".
	ErrNotContainer = errors.New("not a FLAC stream")
	// ErrTruncated is returned when a declared length exceeds the remaining
	// data. Lengths are never clamped.
	ErrTruncated = cursor.ErrTruncated
	// ErrInvalidPadding is returned when a padding block contains a non-zero
	// byte.
	ErrInvalidPadding = errors.New("invalid padding")
)
