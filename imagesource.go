package zxcore

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/ericlevine/zxcore/bitutil"
)

// ImageLuminanceSource is a LuminanceSource backed by a Go image.Image. The
// visible rectangle is sampled into greyscale once, at construction; the
// image is kept so that crops and rotations can resample it.
type ImageLuminanceSource struct {
	BaseLuminanceSource
	image      image.Image
	left       int
	top        int
	luminances []byte
}

// NewImageLuminanceSource creates a LuminanceSource over the whole of img.
func NewImageLuminanceSource(img image.Image) *ImageLuminanceSource {
	b := img.Bounds()
	return newImageLuminanceSource(img, 0, 0, b.Dx(), b.Dy())
}

// NewImageLuminanceSourceRect creates a LuminanceSource over the rectangle
// (left, top, width, height) of img, measured from img.Bounds().Min.
func NewImageLuminanceSourceRect(img image.Image, left, top, width, height int) (*ImageLuminanceSource, error) {
	b := img.Bounds()
	if left < 0 || top < 0 || width < 1 || height < 1 || left+width > b.Dx() || top+height > b.Dy() {
		return nil, fmt.Errorf("crop rectangle (%d,%d %dx%d) does not fit within %dx%d: %w",
			left, top, width, height, b.Dx(), b.Dy(), ErrInvalidArgument)
	}
	return newImageLuminanceSource(img, left, top, width, height), nil
}

func newImageLuminanceSource(img image.Image, left, top, width, height int) *ImageLuminanceSource {
	origin := img.Bounds().Min
	rect := image.Rect(origin.X+left, origin.Y+top, origin.X+left+width, origin.Y+top+height)
	return &ImageLuminanceSource{
		BaseLuminanceSource: NewBaseLuminanceSource(width, height),
		image:               img,
		left:                left,
		top:                 top,
		luminances:          sampleLuminances(img, rect),
	}
}

// sampleLuminances converts rect of img to greyscale. Grey images are copied
// directly; everything else is first drawn onto an RGBA canvas.
func sampleLuminances(img image.Image, rect image.Rectangle) []byte {
	width, height := rect.Dx(), rect.Dy()
	luminances := make([]byte, width*height)
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			offset := gray.PixOffset(rect.Min.X, rect.Min.Y+y)
			copy(luminances[y*width:(y+1)*width], gray.Pix[offset:offset+width])
		}
		return luminances
	}

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), img, rect.Min, draw.Src)
	for y := 0; y < height; y++ {
		pix := canvas.Pix[y*canvas.Stride : y*canvas.Stride+width*4]
		for x := 0; x < width; x++ {
			p := pix[x*4 : x*4+4 : x*4+4]
			luminances[y*width+x] = pixelLuminance(uint32(p[0]), uint32(p[1]), uint32(p[2]), uint32(p[3]))
		}
	}
	return luminances
}

// pixelLuminance converts one premultiplied 8-bit RGBA pixel to luminance.
// Fully transparent black reads as white, and neutral greys pass through
// unchanged.
func pixelLuminance(r, g, b, a uint32) byte {
	if a == 0 && r == 0 && g == 0 && b == 0 {
		return 0xFF
	}
	if a != 0xFF {
		r, g, b = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
	}
	var luminance uint32
	if r == g && g == b {
		luminance = r
	} else {
		luminance = (306*r + 601*g + 117*b + 0x200) >> 10
	}
	return byte(min(luminance, 0xFF))
}

func unpremultiply(c, a uint32) uint32 {
	if a == 0 {
		return c
	}
	return min(c*0xFF/a, 0xFF)
}

// Image returns the image the source samples from.
func (s *ImageLuminanceSource) Image() image.Image { return s.image }

// Row returns row y of the visible rectangle.
func (s *ImageLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	if err := s.checkRow(y); err != nil {
		return nil, err
	}
	width := s.Width()
	row = rowBuffer(row, width)
	copy(row, s.luminances[y*width:(y+1)*width])
	return row, nil
}

// Matrix returns a copy of the sampled luminances.
func (s *ImageLuminanceSource) Matrix() ([]byte, error) {
	result := make([]byte, len(s.luminances))
	copy(result, s.luminances)
	return result, nil
}

// CropSupported returns true.
func (s *ImageLuminanceSource) CropSupported() bool { return true }

// RotateSupported returns true.
func (s *ImageLuminanceSource) RotateSupported() bool { return true }

// Crop resamples a sub-rectangle of the visible area from the source image.
func (s *ImageLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	if err := s.checkCrop(left, top, width, height); err != nil {
		return nil, err
	}
	return newImageLuminanceSource(s.image, s.left+left, s.top+top, width, height), nil
}

// Invert returns an inverted view of this source.
func (s *ImageLuminanceSource) Invert() LuminanceSource {
	return InvertLuminanceSource(s)
}

// RotateCounterClockwise rotates the whole source image by 90 degrees and
// returns a source over the rotated visible rectangle.
func (s *ImageLuminanceSource) RotateCounterClockwise() (LuminanceSource, error) {
	sourceWidth := s.image.Bounds().Dx()
	rotated := rotateCounterClockwise(s.image)
	return newImageLuminanceSource(rotated, s.top, sourceWidth-(s.left+s.Width()), s.Height(), s.Width()), nil
}

// RotateCounterClockwise45 is not supported by image sources.
func (s *ImageLuminanceSource) RotateCounterClockwise45() (LuminanceSource, error) {
	return nil, fmt.Errorf("image luminance source does not support rotation by 45 degrees: %w", ErrInternalInconsistency)
}

// rotateCounterClockwise returns img turned 90 degrees counterclockwise:
// pixel (x, y) moves to (y, width-1-x).
func rotateCounterClockwise(img image.Image) *image.RGBA {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	src := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	dst := image.NewRGBA(image.Rect(0, 0, height, width))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(y, width-1-x)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return dst
}

// BitMatrixToImage converts a BitMatrix to a grayscale image where set bits
// are black (0) and unset bits are white (255).
func BitMatrixToImage(matrix *bitutil.BitMatrix) *image.Gray {
	w := matrix.Width()
	h := matrix.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}
