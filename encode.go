package zxcore

import "github.com/ericlevine/zxcore/bitutil"

// EncodeOptions configures barcode encoding behavior. A nil *EncodeOptions
// means all defaults.
type EncodeOptions struct {
	// ErrorCorrection specifies the error correction level. For QR codes this
	// is one of "L", "M", "Q" or "H".
	ErrorCorrection string

	// CharacterSet names the character set the contents are converted to
	// before encoding, e.g. "ISO-8859-1" or "Shift_JIS".
	CharacterSet string

	// Margin specifies the margin (quiet zone) in modules around the barcode.
	// Nil selects the format's default.
	Margin *int

	// GS1Format encodes in GS1 format.
	GS1Format bool

	// PDF417SecurityLevel is the PDF417 error correction level, 0-8.
	PDF417SecurityLevel int

	// AztecMinECCPercent is the minimum share of an Aztec symbol given to
	// error correction. Zero selects the default of 33.
	AztecMinECCPercent int

	// AztecLayers forces the number of Aztec layers: negative for compact
	// symbols, positive for full size, zero for automatic.
	AztecLayers int

	// Code39FullASCII enables the full ASCII extension of Code 39.
	Code39FullASCII bool

	// Code39CheckDigit appends the modulo 43 check digit to Code 39 symbols.
	Code39CheckDigit bool
}

// Writer encodes data into a barcode.
type Writer interface {
	// Encode encodes the given contents into a barcode.
	Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}
