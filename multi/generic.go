// Package multi finds several barcodes in one image by decoding it, then
// searching the regions around each hit.
package multi

import (
	"github.com/ericlevine/zxcore"
)

const (
	minDimensionToRecur = 100
	maxDepth            = 4
)

// GenericMultipleBarcodeReader wraps a single-symbol zxcore.Reader. After a
// barcode is found, the strips left of, above, right of and below its result
// points are cropped out of the bitmap and searched in turn, up to maxDepth
// levels deep. Strips narrower than 100 pixels are skipped. Results are
// de-duplicated by text and their points are mapped back to the coordinates
// of the original image.
type GenericMultipleBarcodeReader struct {
	delegate zxcore.Reader
}

var _ zxcore.MultipleBarcodeReader = (*GenericMultipleBarcodeReader)(nil)

// NewGenericMultipleBarcodeReader returns a reader that searches with delegate.
func NewGenericMultipleBarcodeReader(delegate zxcore.Reader) *GenericMultipleBarcodeReader {
	return &GenericMultipleBarcodeReader{delegate: delegate}
}

// DecodeMultiple returns every distinct barcode found, or zxcore.ErrNotFound.
// The bitmap must support cropping for anything past the first hit to be
// found.
func (r *GenericMultipleBarcodeReader) DecodeMultiple(image *zxcore.BinaryBitmap, opts *zxcore.DecodeOptions) ([]*zxcore.Result, error) {
	s := &search{delegate: r.delegate, opts: opts, seen: make(map[string]bool)}
	if err := s.run(image, 0, 0, 0); err != nil {
		return nil, err
	}
	if len(s.results) == 0 {
		return nil, zxcore.ErrNotFound
	}
	return s.results, nil
}

type search struct {
	delegate zxcore.Reader
	opts     *zxcore.DecodeOptions
	seen     map[string]bool
	results  []*zxcore.Result
}

// run decodes image, which sits at (xOffset, yOffset) in the original, and
// recurses into the strips around the hit. Only crop failures are returned;
// a region without a barcode ends that branch.
func (s *search) run(image *zxcore.BinaryBitmap, xOffset, yOffset, depth int) error {
	if depth > maxDepth {
		return nil
	}
	result, err := s.delegate.Decode(image, s.opts)
	if err != nil {
		return nil
	}
	if !s.seen[result.Text] {
		s.seen[result.Text] = true
		s.results = append(s.results, translate(result, xOffset, yOffset))
	}
	if len(result.Points) == 0 || !image.CropSupported() {
		return nil
	}

	width, height := image.Width(), image.Height()
	minX, minY := float64(width), float64(height)
	maxX, maxY := 0.0, 0.0
	for _, p := range result.Points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	type strip struct {
		left, top, width, height int
	}
	var strips []strip
	if minX > minDimensionToRecur {
		strips = append(strips, strip{0, 0, int(minX), height})
	}
	if minY > minDimensionToRecur {
		strips = append(strips, strip{0, 0, width, int(minY)})
	}
	if maxX < float64(width-minDimensionToRecur) {
		strips = append(strips, strip{int(maxX), 0, width - int(maxX), height})
	}
	if maxY < float64(height-minDimensionToRecur) {
		strips = append(strips, strip{0, int(maxY), width, height - int(maxY)})
	}
	for _, st := range strips {
		cropped, err := image.Crop(st.left, st.top, st.width, st.height)
		if err != nil {
			return err
		}
		if err := s.run(cropped, xOffset+st.left, yOffset+st.top, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// translate returns result with its points shifted by the offset of the
// region it was decoded from.
func translate(result *zxcore.Result, xOffset, yOffset int) *zxcore.Result {
	if len(result.Points) == 0 || (xOffset == 0 && yOffset == 0) {
		return result
	}
	points := make([]zxcore.ResultPoint, len(result.Points))
	for i, p := range result.Points {
		points[i] = zxcore.ResultPoint{X: p.X + float64(xOffset), Y: p.Y + float64(yOffset)}
	}
	moved := zxcore.NewResult(result.Text, result.RawBytes, points, result.Format)
	moved.NumBits = result.NumBits
	moved.Timestamp = result.Timestamp
	for k, v := range result.Metadata {
		moved.PutMetadata(k, v)
	}
	return moved
}
