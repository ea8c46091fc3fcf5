// Package zxcore holds the image-facing core of a barcode toolkit: sources of
// greyscale luminance, binarizers that turn them into black and white bits,
// and the BinaryBitmap that readers consume.
package zxcore

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ericlevine/zxcore/bitutil"
)

// Format represents a barcode format.
type Format int

const (
	FormatQRCode Format = iota
	FormatPDF417
	FormatCode128
	FormatCode39
	FormatCode93
	FormatEAN13
	FormatEAN8
	FormatUPCA
	FormatUPCE
	FormatITF
	FormatCodabar
	FormatDataMatrix
	FormatAztec
)

var formatNames = map[Format]string{
	FormatQRCode:     "QR_CODE",
	FormatPDF417:     "PDF_417",
	FormatCode128:    "CODE_128",
	FormatCode39:     "CODE_39",
	FormatCode93:     "CODE_93",
	FormatEAN13:      "EAN_13",
	FormatEAN8:       "EAN_8",
	FormatUPCA:       "UPC_A",
	FormatUPCE:       "UPC_E",
	FormatITF:        "ITF",
	FormatCodabar:    "CODABAR",
	FormatDataMatrix: "DATA_MATRIX",
	FormatAztec:      "AZTEC",
}

// String returns the name of the barcode format.
func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseFormat returns the Format with the given name, as produced by
// Format.String. Matching ignores case.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown barcode format %q: %w", name, ErrInvalidArgument)
}

// ResultMetadataKey identifies a type of metadata about a barcode result.
type ResultMetadataKey int

const (
	MetadataOther ResultMetadataKey = iota
	MetadataOrientation
	MetadataByteSegments
	MetadataErrorCorrectionLevel
	MetadataErrorsCorrected
	MetadataErasuresCorrected
	MetadataIssueNumber
	MetadataSuggestedPrice
	MetadataPossibleCountry
	MetadataUPCEANExtension
	MetadataPDF417ExtraMetadata
	MetadataStructuredAppendSequence
	MetadataStructuredAppendParity
	MetadataSymbologyIdentifier
)

// ResultPoint represents a point of interest in an image.
type ResultPoint struct {
	X, Y float64
}

// Distance returns the distance between two points.
func Distance(a, b ResultPoint) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Result encapsulates the result of decoding a barcode.
type Result struct {
	Text      string
	RawBytes  []byte
	NumBits   int
	Points    []ResultPoint
	Format    Format
	Metadata  map[ResultMetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a new Result with the given text, format, and points.
func NewResult(text string, rawBytes []byte, points []ResultPoint, format Format) *Result {
	return &Result{
		Text:      text,
		RawBytes:  rawBytes,
		NumBits:   8 * len(rawBytes),
		Points:    points,
		Format:    format,
		Metadata:  make(map[ResultMetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata adds a metadata key/value pair.
func (r *Result) PutMetadata(key ResultMetadataKey, value interface{}) {
	r.Metadata[key] = value
}

// AddResultPoints appends additional result points.
func (r *Result) AddResultPoints(points []ResultPoint) {
	r.Points = append(r.Points, points...)
}

// BinaryBitmap is the image handed to barcode readers. It pairs a Binarizer
// with its LuminanceSource and memoizes the 2D black matrix, which is costly
// to compute and shared by every reader that asks for it. Rows are not
// cached, since 1D readers request each row with different buffers and
// sometimes repeatedly.
//
// A BinaryBitmap is not safe for concurrent use; give each goroutine its own,
// over its own binarizer.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitutil.BitMatrix
}

// NewBinaryBitmap creates a new BinaryBitmap from the given Binarizer.
func NewBinaryBitmap(binarizer Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: binarizer}
}

// Width returns the width of the bitmap.
func (b *BinaryBitmap) Width() int {
	return b.binarizer.Width()
}

// Height returns the height of the bitmap.
func (b *BinaryBitmap) Height() int {
	return b.binarizer.Height()
}

// LuminanceSource returns the source the bitmap is binarized from.
func (b *BinaryBitmap) LuminanceSource() LuminanceSource {
	return b.binarizer.LuminanceSource()
}

// BlackRow returns a row of black/white values. Each call goes to the
// binarizer.
func (b *BinaryBitmap) BlackRow(y int, row *bitutil.BitArray) (*bitutil.BitArray, error) {
	return b.binarizer.BlackRow(y, row)
}

// BlackMatrix returns the 2D matrix of black/white values, computing it on
// the first call and returning the same matrix afterwards. Callers must not
// modify it. A failed computation is not cached.
func (b *BinaryBitmap) BlackMatrix() (*bitutil.BitMatrix, error) {
	if b.matrix != nil {
		return b.matrix, nil
	}
	m, err := b.binarizer.BlackMatrix()
	if err != nil {
		return nil, err
	}
	b.matrix = m
	return m, nil
}

// CropSupported reports whether the underlying source supports cropping.
func (b *BinaryBitmap) CropSupported() bool {
	return b.binarizer.LuminanceSource().CropSupported()
}

// RotateSupported reports whether the underlying source supports rotation.
func (b *BinaryBitmap) RotateSupported() bool {
	return b.binarizer.LuminanceSource().RotateSupported()
}

// Crop returns a new bitmap over a sub-rectangle of this one, binarized from
// scratch by a binarizer of the same kind.
func (b *BinaryBitmap) Crop(left, top, width, height int) (*BinaryBitmap, error) {
	source, err := b.binarizer.LuminanceSource().Crop(left, top, width, height)
	if err != nil {
		return nil, err
	}
	return b.derive(source), nil
}

// RotateCounterClockwise returns a new bitmap rotated 90 degrees
// counterclockwise.
func (b *BinaryBitmap) RotateCounterClockwise() (*BinaryBitmap, error) {
	source, err := b.binarizer.LuminanceSource().RotateCounterClockwise()
	if err != nil {
		return nil, err
	}
	return b.derive(source), nil
}

// RotateCounterClockwise45 returns a new bitmap rotated 45 degrees
// counterclockwise.
func (b *BinaryBitmap) RotateCounterClockwise45() (*BinaryBitmap, error) {
	source, err := b.binarizer.LuminanceSource().RotateCounterClockwise45()
	if err != nil {
		return nil, err
	}
	return b.derive(source), nil
}

// Invert returns a new bitmap over the inverted source. The receiver, and
// any matrix it has cached, are left untouched.
func (b *BinaryBitmap) Invert() *BinaryBitmap {
	return b.derive(b.binarizer.LuminanceSource().Invert())
}

func (b *BinaryBitmap) derive(source LuminanceSource) *BinaryBitmap {
	return NewBinaryBitmap(b.binarizer.CreateBinarizer(source))
}

// String renders the black matrix as text, or returns "" if it cannot be
// computed.
func (b *BinaryBitmap) String() string {
	m, err := b.BlackMatrix()
	if err != nil {
		return ""
	}
	return m.String()
}
