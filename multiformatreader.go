package zxcore

import (
	"fmt"
	"sort"
)

// MultiFormatReader is a factory/dispatcher that selects appropriate Reader
// implementations based on format hints and tries them in sequence.
type MultiFormatReader struct {
	readers []Reader
}

// NewMultiFormatReader creates a new multi-format reader. Its readers are
// chosen on the first Decode: those for the PossibleFormats of that call's
// options, or every registered reader.
func NewMultiFormatReader() *MultiFormatReader {
	return &MultiFormatReader{}
}

// Decode attempts to decode a barcode from the given image using all registered
// format readers. With AlsoInverted set, a failed pass is repeated on an
// inverted copy of the image; the caller's bitmap is not modified.
func (r *MultiFormatReader) Decode(image *BinaryBitmap, opts *DecodeOptions) (*Result, error) {
	if r.readers == nil {
		r.readers = buildReaders(opts)
	}
	if result, ok := decodeWith(r.readers, image, opts); ok {
		return result, nil
	}
	if opts != nil && opts.AlsoInverted {
		if result, ok := decodeWith(r.readers, image.Invert(), opts); ok {
			return result, nil
		}
	}
	return nil, ErrNotFound
}

// DecodeWithFormat attempts to decode a barcode of the given format.
func (r *MultiFormatReader) DecodeWithFormat(image *BinaryBitmap, format Format, opts *DecodeOptions) (*Result, error) {
	narrowed := DecodeOptions{}
	if opts != nil {
		narrowed = *opts
	}
	narrowed.PossibleFormats = []Format{format}
	var readers []Reader
	if factory, ok := readerFactories[format]; ok {
		readers = append(readers, factory(&narrowed))
	}
	if result, ok := decodeWith(readers, image, &narrowed); ok {
		return result, nil
	}
	return nil, fmt.Errorf("no barcode of format %s found: %w", format, ErrNotFound)
}

// Reset resets all internal readers.
func (r *MultiFormatReader) Reset() {
	for _, reader := range r.readers {
		reader.Reset()
	}
	r.readers = nil
}

func decodeWith(readers []Reader, image *BinaryBitmap, opts *DecodeOptions) (*Result, bool) {
	for _, reader := range readers {
		result, err := reader.Decode(image, opts)
		if err == nil {
			return result, true
		}
	}
	return nil, false
}

// readerFactory is a function that creates a Reader. This is used as an
// extension point so format-specific packages can register themselves.
type readerFactory func(opts *DecodeOptions) Reader

var readerFactories = map[Format]readerFactory{}

// RegisterReader registers a reader factory for the given format. This should
// be called from an init() function in format-specific packages.
func RegisterReader(format Format, factory readerFactory) {
	readerFactories[format] = factory
}

// buildReaders creates readers based on the options, in Format order.
func buildReaders(opts *DecodeOptions) []Reader {
	var readers []Reader

	if opts != nil && len(opts.PossibleFormats) > 0 {
		for _, f := range opts.PossibleFormats {
			if factory, ok := readerFactories[f]; ok {
				readers = append(readers, factory(opts))
			}
		}
	}

	if len(readers) == 0 {
		formats := make([]Format, 0, len(readerFactories))
		for f := range readerFactories {
			formats = append(formats, f)
		}
		sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
		for _, f := range formats {
			readers = append(readers, readerFactories[f](opts))
		}
	}

	return readers
}
