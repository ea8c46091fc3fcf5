// Package writer encodes text into barcode bit matrices using the symbol
// encoders from github.com/boombuler/barcode. Importing it registers a
// Writer for every supported format with zxcore.RegisterWriter.
package writer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/aztec"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"

	"github.com/ericlevine/zxcore"
	"github.com/ericlevine/zxcore/bitutil"
	"github.com/ericlevine/zxcore/charset"
)

const (
	// qrQuietZone is the default QR quiet zone, in modules per side.
	qrQuietZone = 4

	// linearMargin is the default horizontal quiet zone of 1D symbols, in
	// modules per side.
	linearMargin = 10

	defaultAztecECCPercent = 33

	// fnc1 is the rune the Code 128 encoder reads as the FNC1 function
	// character that marks GS1 data.
	fnc1 = '\u00f1'
)

// Formats lists the formats this package can encode.
var Formats = []zxcore.Format{
	zxcore.FormatQRCode,
	zxcore.FormatPDF417,
	zxcore.FormatCode128,
	zxcore.FormatCode39,
	zxcore.FormatCode93,
	zxcore.FormatEAN13,
	zxcore.FormatEAN8,
	zxcore.FormatUPCA,
	zxcore.FormatITF,
	zxcore.FormatCodabar,
	zxcore.FormatDataMatrix,
	zxcore.FormatAztec,
}

func init() {
	for _, f := range Formats {
		zxcore.RegisterWriter(f, func() zxcore.Writer { return New() })
	}
}

// Writer is a zxcore.Writer for all of Formats.
type Writer struct{}

// New returns a Writer.
func New() *Writer {
	return &Writer{}
}

// Encode renders contents as a barcode of the given format. The result is at
// least width x height; it grows to fit the symbol and its quiet zone when
// those are smaller, and each module is drawn as a whole number of pixels.
// Zero dimensions request the smallest rendering.
func (w *Writer) Encode(contents string, format zxcore.Format, width, height int, opts *zxcore.EncodeOptions) (*bitutil.BitMatrix, error) {
	if contents == "" {
		return nil, fmt.Errorf("found empty contents: %w", zxcore.ErrWriter)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("requested dimensions are too small: %dx%d: %w", width, height, zxcore.ErrWriter)
	}
	if opts == nil {
		opts = &zxcore.EncodeOptions{}
	}
	if opts.Margin != nil && *opts.Margin < 0 {
		return nil, fmt.Errorf("margin must not be negative: %d: %w", *opts.Margin, zxcore.ErrInvalidArgument)
	}

	bc, err := symbol(contents, format, opts)
	if err != nil {
		return nil, err
	}
	code, err := sample(bc)
	if err != nil {
		return nil, err
	}

	if bc.Metadata().Dimensions == 1 {
		margin := linearMargin
		if opts.Margin != nil {
			margin = *opts.Margin
		}
		return renderLinear(code, width, height, margin)
	}
	margin := 0
	if format == zxcore.FormatQRCode {
		margin = qrQuietZone
	}
	if opts.Margin != nil {
		margin = *opts.Margin
	}
	return renderMatrix(code, width, height, margin)
}

// symbol runs the boombuler encoder for format.
func symbol(contents string, format zxcore.Format, opts *zxcore.EncodeOptions) (barcode.Barcode, error) {
	var (
		bc  barcode.Barcode
		err error
	)
	switch format {
	case zxcore.FormatQRCode:
		level, lerr := qrLevel(opts.ErrorCorrection)
		if lerr != nil {
			return nil, lerr
		}
		mode := qr.Auto
		if opts.CharacterSet != "" {
			mode = qr.Unicode
		}
		data, cerr := transcode(contents, opts.CharacterSet)
		if cerr != nil {
			return nil, cerr
		}
		bc, err = qr.Encode(data, level, mode)
	case zxcore.FormatPDF417:
		if opts.PDF417SecurityLevel < 0 || opts.PDF417SecurityLevel > 8 {
			return nil, fmt.Errorf("PDF417 security level must be 0-8: %d: %w", opts.PDF417SecurityLevel, zxcore.ErrInvalidArgument)
		}
		data, cerr := transcode(contents, opts.CharacterSet)
		if cerr != nil {
			return nil, cerr
		}
		bc, err = pdf417.Encode(data, byte(opts.PDF417SecurityLevel))
	case zxcore.FormatAztec:
		percent := opts.AztecMinECCPercent
		if percent == 0 {
			percent = defaultAztecECCPercent
		}
		if percent < 0 || percent > 100 {
			return nil, fmt.Errorf("Aztec error correction must be 0-100%%: %d: %w", percent, zxcore.ErrInvalidArgument)
		}
		data, cerr := transcode(contents, opts.CharacterSet)
		if cerr != nil {
			return nil, cerr
		}
		bc, err = aztec.Encode([]byte(data), percent, opts.AztecLayers)
	case zxcore.FormatDataMatrix:
		data, cerr := transcode(contents, opts.CharacterSet)
		if cerr != nil {
			return nil, cerr
		}
		bc, err = datamatrix.Encode(data)
	case zxcore.FormatCode128:
		if opts.GS1Format {
			contents = string(fnc1) + contents
		}
		bc, err = code128.Encode(contents)
	case zxcore.FormatCode39:
		bc, err = code39.Encode(contents, opts.Code39CheckDigit, opts.Code39FullASCII)
	case zxcore.FormatCode93:
		bc, err = code93.Encode(contents, true, true)
	case zxcore.FormatEAN13, zxcore.FormatEAN8:
		if n := eanLength(format); len(contents) != n && len(contents) != n-1 {
			return nil, fmt.Errorf("%s requires %d or %d digits, got %d: %w",
				format, n-1, n, len(contents), zxcore.ErrWriter)
		}
		bc, err = ean.Encode(contents)
	case zxcore.FormatUPCA:
		if len(contents) != 11 && len(contents) != 12 {
			return nil, fmt.Errorf("UPC-A requires 11 or 12 digits, got %d: %w", len(contents), zxcore.ErrWriter)
		}
		bc, err = ean.Encode("0" + contents)
	case zxcore.FormatITF:
		bc, err = twooffive.Encode(contents, true)
	case zxcore.FormatCodabar:
		bc, err = codabar.Encode(contents)
	default:
		return nil, fmt.Errorf("can only encode %v, but got %s: %w", Formats, format, zxcore.ErrWriter)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", zxcore.ErrWriter, format, err)
	}
	return bc, nil
}

func eanLength(format zxcore.Format) int {
	if format == zxcore.FormatEAN8 {
		return 8
	}
	return 13
}

func qrLevel(name string) (qr.ErrorCorrectionLevel, error) {
	switch strings.ToUpper(name) {
	case "", "L":
		return qr.L, nil
	case "M":
		return qr.M, nil
	case "Q":
		return qr.Q, nil
	case "H":
		return qr.H, nil
	}
	return qr.L, fmt.Errorf("unknown QR error correction level %q: %w", name, zxcore.ErrInvalidArgument)
}

// transcode returns contents re-encoded in the named character set, carried
// as a Go string of raw bytes. An empty name leaves contents as UTF-8.
func transcode(contents, name string) (string, error) {
	if name == "" {
		return contents, nil
	}
	data, err := charset.Encode(contents, name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", zxcore.ErrWriter, err)
	}
	return string(data), nil
}

// sample reads the encoder's one-pixel-per-module image into a BitMatrix;
// dark pixels become set bits.
func sample(bc barcode.Barcode) (*bitutil.BitMatrix, error) {
	b := bc.Bounds()
	m, err := bitutil.NewBitMatrixWithSize(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: empty symbol: %w", zxcore.ErrWriter, err)
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if color.GrayModel.Convert(bc.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y < 0x80 {
				m.Set(x, y)
			}
		}
	}
	return m, nil
}
