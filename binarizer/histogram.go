// Package binarizer provides implementations for converting luminance data to binary.
package binarizer

import (
	"github.com/ericlevine/zxcore"
	"github.com/ericlevine/zxcore/bitutil"
)

const (
	luminanceBits    = 5
	luminanceShift   = 8 - luminanceBits
	luminanceBuckets = 1 << luminanceBits
)

// GlobalHistogram picks a single black point per row (for 1D readers) or
// per image (for 2D readers) from a histogram of luminances. It is cheap and
// copes well with low-contrast 1D symbols, but not with shadows or
// gradients; use Hybrid for those. Scratch buffers and the black matrix are
// kept per instance, so a GlobalHistogram must not be shared between
// goroutines.
type GlobalHistogram struct {
	source     zxcore.LuminanceSource
	luminances []byte
	buckets    [luminanceBuckets]int
	matrix     *bitutil.BitMatrix
}

// NewGlobalHistogram creates a new GlobalHistogram binarizer.
func NewGlobalHistogram(source zxcore.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// CreateBinarizer returns a new GlobalHistogram over source.
func (g *GlobalHistogram) CreateBinarizer(source zxcore.LuminanceSource) zxcore.Binarizer {
	return NewGlobalHistogram(source)
}

// LuminanceSource returns the underlying source.
func (g *GlobalHistogram) LuminanceSource() zxcore.LuminanceSource {
	return g.source
}

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackRow returns row y binarized against that row's own histogram. Rows at
// least three pixels wide are passed through a [-1 4 -1]/2 sharpening filter
// first, and their first and last pixels are left white.
func (g *GlobalHistogram) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	width := g.source.Width()
	if row == nil || row.Size() < width {
		row = bitutil.NewBitArray(width)
	} else {
		row.Clear()
	}

	g.initArrays(width)
	localLuminances, err := g.source.Row(y, g.luminances)
	if err != nil {
		return nil, err
	}
	for x := 0; x < width; x++ {
		g.buckets[int(localLuminances[x]&0xff)>>luminanceShift]++
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	if width < 3 {
		for x := 0; x < width; x++ {
			if int(localLuminances[x]&0xff) < blackPoint {
				row.Set(x)
			}
		}
	} else {
		left := int(localLuminances[0] & 0xff)
		center := int(localLuminances[1] & 0xff)
		for x := 1; x < width-1; x++ {
			right := int(localLuminances[x+1] & 0xff)
			if ((center*4)-left-right)/2 < blackPoint {
				row.Set(x)
			}
			left = center
			center = right
		}
	}
	return row, nil
}

// BlackMatrix returns the whole image thresholded against one black point.
// The matrix is computed on the first successful call and returned as is
// afterwards.
func (g *GlobalHistogram) BlackMatrix() (*bitutil.BitMatrix, error) {
	if g.matrix != nil {
		return g.matrix, nil
	}
	width := g.source.Width()
	height := g.source.Height()
	matrix, err := bitutil.NewBitMatrixWithSize(width, height)
	if err != nil {
		return nil, err
	}

	// Sample four rows from the central part of the image.
	g.initArrays(width)
	for y := 1; y < 5; y++ {
		row := height * y / 5
		localLuminances, err := g.source.Row(row, g.luminances)
		if err != nil {
			return nil, err
		}
		right := (width * 4) / 5
		for x := width / 5; x < right; x++ {
			g.buckets[int(localLuminances[x]&0xff)>>luminanceShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	// The whole image is thresholded against the one black point; no
	// sharpening is applied in 2D.
	localLuminances, err := g.source.Matrix()
	if err != nil {
		return nil, err
	}
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			pixel := int(localLuminances[offset+x] & 0xff)
			if pixel < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	g.matrix = matrix
	return matrix, nil
}

func (g *GlobalHistogram) initArrays(luminanceSize int) {
	if len(g.luminances) < luminanceSize {
		g.luminances = make([]byte, luminanceSize)
	}
	g.buckets = [luminanceBuckets]int{}
}

// estimateBlackPoint finds the two tallest well-separated histogram peaks
// and returns the valley between them, scaled back to a luminance. Images
// without two such peaks have no barcode contrast to find.
func estimateBlackPoint(buckets []int) (int, error) {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak := 0
	firstPeakSize := 0
	for x := 0; x < numBuckets; x++ {
		if buckets[x] > firstPeakSize {
			firstPeak = x
			firstPeakSize = buckets[x]
		}
		if buckets[x] > maxBucketCount {
			maxBucketCount = buckets[x]
		}
	}

	secondPeak := 0
	secondPeakScore := 0
	for x := 0; x < numBuckets; x++ {
		dist := x - firstPeak
		score := buckets[x] * dist * dist
		if score > secondPeakScore {
			secondPeak = x
			secondPeakScore = score
		}
	}

	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}

	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, zxcore.ErrNotFound
	}

	bestValley := secondPeak - 1
	bestValleyScore := -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley = x
			bestValleyScore = score
		}
	}

	return bestValley << luminanceShift, nil
}
