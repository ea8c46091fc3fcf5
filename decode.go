package zxcore

// DecodeOptions configures barcode decoding behavior. A nil *DecodeOptions
// means all defaults.
type DecodeOptions struct {
	// PureBarcode hints that the image contains only the barcode with minimal
	// border and no rotation.
	PureBarcode bool

	// TryHarder enables spending more time looking for barcodes.
	TryHarder bool

	// PossibleFormats limits which formats to look for.
	PossibleFormats []Format

	// CharacterSet specifies the character set to use when decoding.
	CharacterSet string

	// AllowedLengths restricts the set of valid barcode lengths for 1D formats.
	AllowedLengths []int

	// AssumeCode39CheckDigit assumes Code 39 includes a check digit.
	AssumeCode39CheckDigit bool

	// AssumeGS1 assumes data is GS1 formatted.
	AssumeGS1 bool

	// AllowedEANExtensions restricts the allowed EAN extension lengths.
	AllowedEANExtensions []int

	// ReturnCodabarStartEnd keeps the start and end characters of Codabar
	// symbols in the decoded text.
	ReturnCodabarStartEnd bool

	// AlsoInverted enables checking for barcodes on inverted images.
	AlsoInverted bool

	// ResultPointCallback, if set, is told about each point of interest a
	// reader finds while it is still searching.
	ResultPointCallback func(ResultPoint)
}

// Reader decodes barcodes from a BinaryBitmap.
type Reader interface {
	// Decode attempts to decode a barcode from the image.
	Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error)

	// Reset resets any internal state.
	Reset()
}

// MultipleBarcodeReader finds every barcode in an image rather than the
// first. Implementations return ErrNotFound when there are none, and the
// points of each Result are in the coordinates of image even when the
// barcode was found in a crop of it.
type MultipleBarcodeReader interface {
	// DecodeMultiple returns each distinct barcode found in image.
	DecodeMultiple(image *BinaryBitmap, opts *DecodeOptions) ([]*Result, error)
}
