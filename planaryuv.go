package zxcore

import "fmt"

// ThumbnailScaleFactor is the downsampling factor used by RenderThumbnail.
const ThumbnailScaleFactor = 2

// PlanarYUVLuminanceSource reads the Y (luminance) plane of a planar YUV
// camera frame such as NV21 or YUV420p. The frame buffer is shared with the
// caller and only ever read, except that a horizontally mirrored frame is
// flipped in place once during construction.
type PlanarYUVLuminanceSource struct {
	BaseLuminanceSource
	yuvData    []byte
	dataWidth  int
	dataHeight int
	left       int
	top        int
}

// NewPlanarYUVLuminanceSource returns a source over the rectangle
// (left, top, width, height) of a dataWidth x dataHeight Y plane stored at
// the start of yuvData. If reverseHorizontal is true the visible rectangle is
// mirrored in the caller's buffer before use.
func NewPlanarYUVLuminanceSource(yuvData []byte, dataWidth, dataHeight, left, top, width, height int, reverseHorizontal bool) (*PlanarYUVLuminanceSource, error) {
	if left < 0 || top < 0 || width < 1 || height < 1 || left+width > dataWidth || top+height > dataHeight {
		return nil, fmt.Errorf("crop rectangle (%d,%d %dx%d) does not fit within %dx%d: %w",
			left, top, width, height, dataWidth, dataHeight, ErrInvalidArgument)
	}
	if len(yuvData) < dataWidth*dataHeight {
		return nil, fmt.Errorf("yuv data holds %d bytes, need at least %d: %w",
			len(yuvData), dataWidth*dataHeight, ErrInvalidArgument)
	}
	s := &PlanarYUVLuminanceSource{
		BaseLuminanceSource: NewBaseLuminanceSource(width, height),
		yuvData:             yuvData,
		dataWidth:           dataWidth,
		dataHeight:          dataHeight,
		left:                left,
		top:                 top,
	}
	if reverseHorizontal {
		s.reverseHorizontal()
	}
	return s, nil
}

// Row returns row y of the visible rectangle.
func (s *PlanarYUVLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	if err := s.checkRow(y); err != nil {
		return nil, err
	}
	width := s.Width()
	row = rowBuffer(row, width)
	offset := (y+s.top)*s.dataWidth + s.left
	copy(row, s.yuvData[offset:offset+width])
	return row, nil
}

// Matrix returns the visible rectangle in row-major order. When the
// rectangle covers the whole frame the caller's buffer is returned as is.
func (s *PlanarYUVLuminanceSource) Matrix() ([]byte, error) {
	width := s.Width()
	height := s.Height()
	if width == s.dataWidth && height == s.dataHeight {
		return s.yuvData[:width*height], nil
	}
	area := width * height
	matrix := make([]byte, area)
	inputOffset := s.top*s.dataWidth + s.left

	// Full-width crops are one contiguous run.
	if width == s.dataWidth {
		copy(matrix, s.yuvData[inputOffset:inputOffset+area])
		return matrix, nil
	}

	for y := 0; y < height; y++ {
		outputOffset := y * width
		copy(matrix[outputOffset:outputOffset+width], s.yuvData[inputOffset:inputOffset+width])
		inputOffset += s.dataWidth
	}
	return matrix, nil
}

// CropSupported returns true.
func (s *PlanarYUVLuminanceSource) CropSupported() bool { return true }

// Crop returns a source over a sub-rectangle, sharing the frame buffer.
func (s *PlanarYUVLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	if err := s.checkCrop(left, top, width, height); err != nil {
		return nil, err
	}
	return NewPlanarYUVLuminanceSource(s.yuvData, s.dataWidth, s.dataHeight,
		s.left+left, s.top+top, width, height, false)
}

// Invert returns an inverted view of this source.
func (s *PlanarYUVLuminanceSource) Invert() LuminanceSource {
	return InvertLuminanceSource(s)
}

// ThumbnailWidth returns the width of the image RenderThumbnail produces.
func (s *PlanarYUVLuminanceSource) ThumbnailWidth() int {
	return s.Width() / ThumbnailScaleFactor
}

// ThumbnailHeight returns the height of the image RenderThumbnail produces.
func (s *PlanarYUVLuminanceSource) ThumbnailHeight() int {
	return s.Height() / ThumbnailScaleFactor
}

// RenderThumbnail returns a greyscale preview of the visible rectangle,
// downsampled by ThumbnailScaleFactor, as opaque 0xAARRGGBB pixels.
func (s *PlanarYUVLuminanceSource) RenderThumbnail() []uint32 {
	width := s.ThumbnailWidth()
	height := s.ThumbnailHeight()
	pixels := make([]uint32, width*height)
	inputOffset := s.top*s.dataWidth + s.left
	for y := 0; y < height; y++ {
		outputOffset := y * width
		for x := 0; x < width; x++ {
			grey := uint32(s.yuvData[inputOffset+x*ThumbnailScaleFactor])
			pixels[outputOffset+x] = 0xFF000000 | grey*0x00010101
		}
		inputOffset += s.dataWidth * ThumbnailScaleFactor
	}
	return pixels
}

func (s *PlanarYUVLuminanceSource) reverseHorizontal() {
	width := s.Width()
	rowStart := s.top*s.dataWidth + s.left
	for y := 0; y < s.Height(); y++ {
		middle := rowStart + width/2
		for x1, x2 := rowStart, rowStart+width-1; x1 < middle; x1, x2 = x1+1, x2-1 {
			s.yuvData[x1], s.yuvData[x2] = s.yuvData[x2], s.yuvData[x1]
		}
		rowStart += s.dataWidth
	}
}
