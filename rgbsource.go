package zxcore

import "fmt"

// RGBLuminanceSource is a LuminanceSource over packed 0xRRGGBB pixels, as
// produced by many capture APIs. The pixels are reduced to luminance once at
// construction; crops share that buffer.
type RGBLuminanceSource struct {
	BaseLuminanceSource
	luminances []byte
	dataWidth  int
	dataHeight int
	left       int
	top        int
}

// NewRGBLuminanceSource builds a source from width*height pixels in
// row-major order. Only the low 24 bits of each pixel are used. Green is
// weighted twice as heavily as red and blue.
func NewRGBLuminanceSource(width, height int, pixels []uint32) (*RGBLuminanceSource, error) {
	if width < 1 || height < 1 || len(pixels) < width*height {
		return nil, fmt.Errorf("%d pixels cannot fill %dx%d: %w", len(pixels), width, height, ErrInvalidArgument)
	}
	size := width * height
	luminances := make([]byte, size)
	for i := 0; i < size; i++ {
		pixel := pixels[i]
		r := (pixel >> 16) & 0xff
		g2 := (pixel >> 7) & 0x1fe
		b := pixel & 0xff
		luminances[i] = byte((r + g2 + b) / 4)
	}
	return newRGBLuminanceSource(luminances, width, height, 0, 0, width, height), nil
}

// NewRGBLuminanceSourceFromLuminances builds a source over greyscale values
// that are already computed. The slice is shared, not copied.
func NewRGBLuminanceSourceFromLuminances(luminances []byte, width, height int) (*RGBLuminanceSource, error) {
	if width < 1 || height < 1 || len(luminances) < width*height {
		return nil, fmt.Errorf("%d luminances cannot fill %dx%d: %w", len(luminances), width, height, ErrInvalidArgument)
	}
	return newRGBLuminanceSource(luminances, width, height, 0, 0, width, height), nil
}

func newRGBLuminanceSource(luminances []byte, dataWidth, dataHeight, left, top, width, height int) *RGBLuminanceSource {
	return &RGBLuminanceSource{
		BaseLuminanceSource: NewBaseLuminanceSource(width, height),
		luminances:          luminances,
		dataWidth:           dataWidth,
		dataHeight:          dataHeight,
		left:                left,
		top:                 top,
	}
}

// Row returns row y of the visible rectangle.
func (s *RGBLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	if err := s.checkRow(y); err != nil {
		return nil, err
	}
	width := s.Width()
	row = rowBuffer(row, width)
	offset := (y+s.top)*s.dataWidth + s.left
	copy(row, s.luminances[offset:offset+width])
	return row, nil
}

// Matrix returns the visible rectangle in row-major order. When no crop is
// in effect the backing buffer itself is returned.
func (s *RGBLuminanceSource) Matrix() ([]byte, error) {
	width := s.Width()
	height := s.Height()
	if width == s.dataWidth && height == s.dataHeight {
		return s.luminances, nil
	}
	area := width * height
	matrix := make([]byte, area)
	inputOffset := s.top*s.dataWidth + s.left
	if width == s.dataWidth {
		copy(matrix, s.luminances[inputOffset:inputOffset+area])
		return matrix, nil
	}
	for y := 0; y < height; y++ {
		outputOffset := y * width
		copy(matrix[outputOffset:outputOffset+width], s.luminances[inputOffset:inputOffset+width])
		inputOffset += s.dataWidth
	}
	return matrix, nil
}

// CropSupported returns true.
func (s *RGBLuminanceSource) CropSupported() bool { return true }

// Crop returns a source over a sub-rectangle, sharing the luminance buffer.
func (s *RGBLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	if err := s.checkCrop(left, top, width, height); err != nil {
		return nil, err
	}
	return newRGBLuminanceSource(s.luminances, s.dataWidth, s.dataHeight, s.left+left, s.top+top, width, height), nil
}

// Invert returns an inverted view of this source.
func (s *RGBLuminanceSource) Invert() LuminanceSource {
	return InvertLuminanceSource(s)
}
