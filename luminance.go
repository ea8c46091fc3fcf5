package zxcore

import (
	"fmt"
	"strings"

	"github.com/ericlevine/zxcore/bitutil"
)

// LuminanceSource provides access to greyscale luminance values for an image,
// 0 being black and 255 white. Sources are immutable once constructed: Crop,
// Invert and the rotations return new sources and never modify the receiver,
// so several readers can share one captured frame.
type LuminanceSource interface {
	// Row fetches row y, which must be in [0, Height()). If row is non-nil
	// and at least Width() long it may be filled and returned; otherwise a
	// new slice is allocated. Always use the returned slice.
	Row(y int, row []byte) ([]byte, error)

	// Matrix returns the luminance data in row-major order, read as
	// matrix[y*Width()+x]. The slice may be longer than Width()*Height() and
	// may alias the source's storage, so callers must not modify it.
	Matrix() ([]byte, error)

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int

	// CropSupported reports whether Crop is available.
	CropSupported() bool

	// RotateSupported reports whether the rotations are available.
	RotateSupported() bool

	// Crop returns a new source over the given rectangle of this one.
	Crop(left, top, width, height int) (LuminanceSource, error)

	// Invert returns a source whose luminances are 255 minus this source's.
	Invert() LuminanceSource

	// RotateCounterClockwise returns a new source rotated 90 degrees
	// counterclockwise.
	RotateCounterClockwise() (LuminanceSource, error)

	// RotateCounterClockwise45 returns a new source rotated 45 degrees
	// counterclockwise.
	RotateCounterClockwise45() (LuminanceSource, error)
}

// Binarizer converts luminance data to 1-bit black/white data. Implementations
// may cache results per instance, so a Binarizer is bound to one source.
type Binarizer interface {
	// BlackRow returns row y as bits, true meaning black. If row is non-nil
	// and large enough it is cleared and reused. Always use the returned
	// value.
	BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error)

	// BlackMatrix returns the 2D matrix of black/white values. It is
	// expensive and should be called once per image.
	BlackMatrix() (*bitutil.BitMatrix, error)

	// CreateBinarizer returns a new Binarizer of the same kind bound to
	// source, sharing no cached state with the receiver.
	CreateBinarizer(source LuminanceSource) Binarizer

	// LuminanceSource returns the underlying LuminanceSource.
	LuminanceSource() LuminanceSource

	// Width returns the width of the image.
	Width() int

	// Height returns the height of the image.
	Height() int
}

// BaseLuminanceSource holds the dimensions of a source and supplies the
// behavior of a source with no optional capabilities. Concrete sources embed
// it and override what they support; anything left unimplemented reports
// ErrInternalInconsistency.
type BaseLuminanceSource struct {
	width  int
	height int
}

// NewBaseLuminanceSource returns a BaseLuminanceSource of the given size.
func NewBaseLuminanceSource(width, height int) BaseLuminanceSource {
	return BaseLuminanceSource{width: width, height: height}
}

// Width returns the width of the image.
func (b BaseLuminanceSource) Width() int { return b.width }

// Height returns the height of the image.
func (b BaseLuminanceSource) Height() int { return b.height }

// CropSupported returns false.
func (b BaseLuminanceSource) CropSupported() bool { return false }

// RotateSupported returns false.
func (b BaseLuminanceSource) RotateSupported() bool { return false }

// Row always fails; concrete sources must override it.
func (b BaseLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	return nil, fmt.Errorf("luminance source: Row not overridden: %w", ErrInternalInconsistency)
}

// Matrix always fails; concrete sources must override it.
func (b BaseLuminanceSource) Matrix() ([]byte, error) {
	return nil, fmt.Errorf("luminance source: Matrix not overridden: %w", ErrInternalInconsistency)
}

// Crop always fails.
func (b BaseLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	return nil, fmt.Errorf("luminance source does not support cropping: %w", ErrInternalInconsistency)
}

// RotateCounterClockwise always fails.
func (b BaseLuminanceSource) RotateCounterClockwise() (LuminanceSource, error) {
	return nil, fmt.Errorf("luminance source does not support rotation by 90 degrees: %w", ErrInternalInconsistency)
}

// RotateCounterClockwise45 always fails.
func (b BaseLuminanceSource) RotateCounterClockwise45() (LuminanceSource, error) {
	return nil, fmt.Errorf("luminance source does not support rotation by 45 degrees: %w", ErrInternalInconsistency)
}

func (b BaseLuminanceSource) checkRow(y int) error {
	if y < 0 || y >= b.height {
		return fmt.Errorf("requested row is outside the image: %d: %w", y, ErrInvalidArgument)
	}
	return nil
}

func (b BaseLuminanceSource) checkCrop(left, top, width, height int) error {
	if left < 0 || top < 0 || width < 1 || height < 1 || left+width > b.width || top+height > b.height {
		return fmt.Errorf("crop rectangle (%d,%d %dx%d) does not fit within %dx%d: %w",
			left, top, width, height, b.width, b.height, ErrInvalidArgument)
	}
	return nil
}

// rowBuffer returns row if it can hold width bytes, otherwise a new slice.
func rowBuffer(row []byte, width int) []byte {
	if len(row) < width {
		return make([]byte, width)
	}
	return row
}

// InvertLuminanceSource returns a source with inverted luminances. Inverting
// an inverted source returns the original delegate rather than stacking a
// second wrapper.
func InvertLuminanceSource(source LuminanceSource) LuminanceSource {
	if inv, ok := source.(*InvertedLuminanceSource); ok {
		return inv.delegate
	}
	return &InvertedLuminanceSource{delegate: source}
}

// LuminanceString renders a source as text, one character per pixel:
// '#' for the darkest quarter of the range, then '+', '.', and ' ' for the
// brightest.
func LuminanceString(source LuminanceSource) (string, error) {
	width := source.Width()
	height := source.Height()
	var sb strings.Builder
	sb.Grow(height * (width + 1))
	var row []byte
	for y := 0; y < height; y++ {
		var err error
		row, err = source.Row(y, row)
		if err != nil {
			return "", err
		}
		for x := 0; x < width; x++ {
			switch luminance := row[x]; {
			case luminance < 0x40:
				sb.WriteByte('#')
			case luminance < 0x80:
				sb.WriteByte('+')
			case luminance < 0xC0:
				sb.WriteByte('.')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}
