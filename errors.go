package zxcore

import (
	"errors"

	"github.com/ericlevine/zxcore/bitutil"
)

var (
	// ErrInvalidArgument is returned when a caller violates a precondition:
	// an out-of-range row or rectangle, mismatched dimensions, or malformed
	// input. It is the same value as bitutil.ErrInvalidArgument.
	ErrInvalidArgument = bitutil.ErrInvalidArgument

	// ErrInternalInconsistency is returned when an operation that a
	// LuminanceSource must provide was never implemented, or when a transform
	// is requested from a source that does not support it.
	ErrInternalInconsistency = errors.New("internal inconsistency")

	// ErrNotFound is returned when a barcode is not found in the image.
	ErrNotFound = errors.New("barcode not found")

	// ErrChecksum is returned when a barcode's checksum does not match.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a barcode cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")
)
