package zxcore

import (
	"fmt"
	"sort"

	"github.com/ericlevine/zxcore/bitutil"
)

// writerFactory returns a Writer for one registered format.
type writerFactory func() Writer

var writerFactories = map[Format]writerFactory{}

// RegisterWriter makes factory the Writer for format, replacing any earlier
// registration. Writer packages call it from init.
func RegisterWriter(format Format, factory writerFactory) {
	writerFactories[format] = factory
}

// WriterFormats returns the formats with a registered Writer, in Format
// order.
func WriterFormats() []Format {
	formats := make([]Format, 0, len(writerFactories))
	for f := range writerFactories {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// MultiFormatWriter dispatches Encode to the Writer registered for the
// requested format.
type MultiFormatWriter struct{}

// NewMultiFormatWriter creates a new multi-format writer.
func NewMultiFormatWriter() *MultiFormatWriter {
	return &MultiFormatWriter{}
}

// Encode validates the request and hands it to the registered Writer. Empty
// contents, negative dimensions and unregistered formats fail with ErrWriter
// before any Writer is created.
func (w *MultiFormatWriter) Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	if contents == "" {
		return nil, fmt.Errorf("found empty contents: %w", ErrWriter)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("requested dimensions are too small: %dx%d: %w", width, height, ErrWriter)
	}
	factory, ok := writerFactories[format]
	if !ok {
		return nil, fmt.Errorf("no writer for %s, registered: %v: %w", format, WriterFormats(), ErrWriter)
	}
	return factory().Encode(contents, format, width, height, opts)
}

// Encode encodes contents with NewMultiFormatWriter.
func Encode(contents string, format Format, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error) {
	return NewMultiFormatWriter().Encode(contents, format, width, height, opts)
}

// Decode decodes image with a fresh MultiFormatReader.
func Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error) {
	return NewMultiFormatReader().Decode(image, opts)
}
