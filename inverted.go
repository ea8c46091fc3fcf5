package zxcore

// InvertedLuminanceSource wraps another LuminanceSource and reports each
// luminance as 255 minus the original, turning white-on-black symbols into
// black-on-white ones. Obtain one with InvertLuminanceSource or the Invert
// method of any source.
type InvertedLuminanceSource struct {
	delegate LuminanceSource
}

// Delegate returns the wrapped source.
func (s *InvertedLuminanceSource) Delegate() LuminanceSource { return s.delegate }

// Width returns the width of the image.
func (s *InvertedLuminanceSource) Width() int { return s.delegate.Width() }

// Height returns the height of the image.
func (s *InvertedLuminanceSource) Height() int { return s.delegate.Height() }

// CropSupported reports whether the delegate supports cropping.
func (s *InvertedLuminanceSource) CropSupported() bool { return s.delegate.CropSupported() }

// RotateSupported reports whether the delegate supports rotation.
func (s *InvertedLuminanceSource) RotateSupported() bool { return s.delegate.RotateSupported() }

// Row returns row y of the delegate with every value inverted.
func (s *InvertedLuminanceSource) Row(y int, row []byte) ([]byte, error) {
	row, err := s.delegate.Row(y, row)
	if err != nil {
		return nil, err
	}
	width := s.Width()
	for i := 0; i < width; i++ {
		row[i] = 255 - row[i]
	}
	return row, nil
}

// Matrix returns a fresh inverted copy of the delegate's matrix. The delegate
// may hand out its own storage, so it is never inverted in place.
func (s *InvertedLuminanceSource) Matrix() ([]byte, error) {
	matrix, err := s.delegate.Matrix()
	if err != nil {
		return nil, err
	}
	length := s.Width() * s.Height()
	inverted := make([]byte, length)
	for i := 0; i < length; i++ {
		inverted[i] = 255 - matrix[i]
	}
	return inverted, nil
}

// Crop crops the delegate and inverts the result.
func (s *InvertedLuminanceSource) Crop(left, top, width, height int) (LuminanceSource, error) {
	cropped, err := s.delegate.Crop(left, top, width, height)
	if err != nil {
		return nil, err
	}
	return InvertLuminanceSource(cropped), nil
}

// Invert returns the original, non-inverted source.
func (s *InvertedLuminanceSource) Invert() LuminanceSource {
	return s.delegate
}

// RotateCounterClockwise rotates the delegate and inverts the result.
func (s *InvertedLuminanceSource) RotateCounterClockwise() (LuminanceSource, error) {
	rotated, err := s.delegate.RotateCounterClockwise()
	if err != nil {
		return nil, err
	}
	return InvertLuminanceSource(rotated), nil
}

// RotateCounterClockwise45 rotates the delegate and inverts the result.
func (s *InvertedLuminanceSource) RotateCounterClockwise45() (LuminanceSource, error) {
	rotated, err := s.delegate.RotateCounterClockwise45()
	if err != nil {
		return nil, err
	}
	return InvertLuminanceSource(rotated), nil
}
