package bitutil

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitMatrix represents a 2D matrix of bits.
// x is the column position, y is the row position. The origin is at the top-left.
//
// Internally the bits are stored row-major in uint32 words, and every row
// begins with a fresh word so a row can be copied out into a BitArray a word
// at a time. Within each word the least significant bit is the lowest x,
// matching BitArray.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new square BitMatrix with the given dimension.
func NewBitMatrix(dimension int) (*BitMatrix, error) {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize creates a new BitMatrix with the given width and height.
func NewBitMatrixWithSize(width, height int) (*BitMatrix, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("bitmatrix: dimensions %dx%d must be greater than 0: %w", width, height, ErrInvalidArgument)
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}, nil
}

// ParseBoolMatrix creates a BitMatrix from a 2D boolean array indexed [y][x].
func ParseBoolMatrix(image [][]bool) (*BitMatrix, error) {
	height := len(image)
	if height == 0 {
		return nil, fmt.Errorf("bitmatrix: empty image: %w", ErrInvalidArgument)
	}
	width := len(image[0])
	bm, err := NewBitMatrixWithSize(width, height)
	if err != nil {
		return nil, err
	}
	for i := 0; i < height; i++ {
		if len(image[i]) != width {
			return nil, fmt.Errorf("bitmatrix: row %d has %d columns, want %d: %w", i, len(image[i]), width, ErrInvalidArgument)
		}
		for j := 0; j < width; j++ {
			if image[i][j] {
				bm.Set(j, i)
			}
		}
	}
	return bm, nil
}

// ParseStringMatrix creates a BitMatrix from its text representation, as
// produced by StringWithChars. Each line is a sequence of setStr and
// unsetStr tokens; lines end with '\n', and a '\r' is treated as a line
// break too so "\r\n" terminated text parses. Blank lines are skipped.
// Either token may be a prefix of the other.
func ParseStringMatrix(repr, setStr, unsetStr string) (*BitMatrix, error) {
	if setStr == "" || unsetStr == "" {
		return nil, fmt.Errorf("bitmatrix: empty token: %w", ErrInvalidArgument)
	}
	// The longer token is matched first so that a token which is a prefix
	// of the other cannot claim its leading characters.
	first, second, firstValue := setStr, unsetStr, true
	if len(unsetStr) > len(setStr) {
		first, second, firstValue = unsetStr, setStr, false
	}
	bts := make([]bool, len(repr))
	bitsPos := 0
	rowStartPos := 0
	rowLength := -1
	nRows := 0
	pos := 0
	endRow := func() error {
		if bitsPos > rowStartPos {
			if rowLength == -1 {
				rowLength = bitsPos - rowStartPos
			} else if bitsPos-rowStartPos != rowLength {
				return fmt.Errorf("bitmatrix: row lengths do not match: %w", ErrInvalidArgument)
			}
			rowStartPos = bitsPos
			nRows++
		}
		return nil
	}
	for pos < len(repr) {
		ch := repr[pos]
		switch {
		case ch == '\n' || ch == '\r':
			if err := endRow(); err != nil {
				return nil, err
			}
			pos++
		case strings.HasPrefix(repr[pos:], first):
			pos += len(first)
			bts[bitsPos] = firstValue
			bitsPos++
		case strings.HasPrefix(repr[pos:], second):
			pos += len(second)
			bts[bitsPos] = !firstValue
			bitsPos++
		default:
			return nil, fmt.Errorf("bitmatrix: illegal character encountered at offset %d: %w", pos, ErrInvalidArgument)
		}
	}
	// no EOL at end?
	if err := endRow(); err != nil {
		return nil, err
	}
	matrix, err := NewBitMatrixWithSize(rowLength, nRows)
	if err != nil {
		return nil, err
	}
	for i := 0; i < bitsPos; i++ {
		if bts[i] {
			matrix.Set(i%rowLength, i/rowLength)
		}
	}
	return matrix, nil
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	offset := y*bm.rowSize + x/32
	return (bm.data[offset]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] &^= 1 << uint(x&0x1f)
}

// Flip flips the bit at (x, y).
func (bm *BitMatrix) Flip(x, y int) {
	offset := y*bm.rowSize + x/32
	bm.data[offset] ^= 1 << uint(x&0x1f)
}

// FlipAll flips every bit in the matrix. Padding bits past the width of each
// row stay clear.
func (bm *BitMatrix) FlipAll() {
	lastMask := ^uint32(0)
	if rem := bm.width & 0x1f; rem != 0 {
		lastMask = (1 << uint(rem)) - 1
	}
	for y := 0; y < bm.height; y++ {
		offset := y * bm.rowSize
		for x := 0; x < bm.rowSize; x++ {
			bm.data[offset+x] = ^bm.data[offset+x]
		}
		bm.data[offset+bm.rowSize-1] &= lastMask
	}
}

// Xor flips bits in this matrix where the mask has bits set. The mask must
// have the same width, height and row size.
func (bm *BitMatrix) Xor(mask *BitMatrix) error {
	if bm.width != mask.width || bm.height != mask.height || bm.rowSize != mask.rowSize {
		return fmt.Errorf("bitmatrix: input matrix dimensions do not match: %w", ErrInvalidArgument)
	}
	rowArray := NewBitArray(bm.width)
	for y := 0; y < bm.height; y++ {
		offset := y * bm.rowSize
		rowArray = mask.Row(y, rowArray)
		row := rowArray.BitData()
		for x := 0; x < bm.rowSize; x++ {
			bm.data[offset+x] ^= row[x]
		}
	}
	return nil
}

// Clear clears all bits.
func (bm *BitMatrix) Clear() {
	clear(bm.data)
}

// SetRegion sets a rectangular region of bits.
func (bm *BitMatrix) SetRegion(left, top, width, height int) error {
	if top < 0 || left < 0 {
		return fmt.Errorf("bitmatrix: left and top must be nonnegative: %w", ErrInvalidArgument)
	}
	if height < 1 || width < 1 {
		return fmt.Errorf("bitmatrix: height and width must be at least 1: %w", ErrInvalidArgument)
	}
	right := left + width
	bottom := top + height
	if bottom > bm.height || right > bm.width {
		return fmt.Errorf("bitmatrix: region must fit inside the matrix: %w", ErrInvalidArgument)
	}
	for y := top; y < bottom; y++ {
		offset := y * bm.rowSize
		for x := left; x < right; x++ {
			bm.data[offset+x/32] |= 1 << uint(x&0x1f)
		}
	}
	return nil
}

// Row returns row y as a BitArray. If row is nil or smaller than the matrix
// width a new one is allocated, otherwise it is cleared and reused. Always
// use the returned value.
func (bm *BitMatrix) Row(y int, row *BitArray) *BitArray {
	if row == nil || row.Size() < bm.width {
		row = NewBitArray(bm.width)
	} else {
		row.Clear()
	}
	offset := y * bm.rowSize
	for x := 0; x < bm.rowSize; x++ {
		row.SetBulk(x*32, bm.data[offset+x])
	}
	return row
}

// SetRow overwrites row y with the first RowSize words of row.
func (bm *BitMatrix) SetRow(y int, row *BitArray) {
	copy(bm.data[y*bm.rowSize:(y+1)*bm.rowSize], row.BitData()[:bm.rowSize])
}

// Rotate rotates the matrix counterclockwise by the given degrees, which must
// be a multiple of 90.
func (bm *BitMatrix) Rotate(degrees int) error {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
	case 90:
		bm.Rotate90()
	case 180:
		bm.Rotate180()
	case 270:
		bm.Rotate90()
		bm.Rotate180()
	default:
		return fmt.Errorf("bitmatrix: degrees %d must be a multiple of 90: %w", degrees, ErrInvalidArgument)
	}
	return nil
}

// Rotate180 rotates the matrix 180 degrees in place.
func (bm *BitMatrix) Rotate180() {
	topRow := NewBitArray(bm.width)
	bottomRow := NewBitArray(bm.width)
	maxHeight := (bm.height + 1) / 2
	for i := 0; i < maxHeight; i++ {
		topRow = bm.Row(i, topRow)
		bottomRowIndex := bm.height - 1 - i
		bottomRow = bm.Row(bottomRowIndex, bottomRow)
		topRow.Reverse()
		bottomRow.Reverse()
		bm.SetRow(i, bottomRow)
		bm.SetRow(bottomRowIndex, topRow)
	}
}

// Rotate90 rotates the matrix 90 degrees counterclockwise.
func (bm *BitMatrix) Rotate90() {
	newWidth := bm.height
	newHeight := bm.width
	newRowSize := (newWidth + 31) / 32
	newData := make([]uint32, newRowSize*newHeight)

	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			offset := y*bm.rowSize + x/32
			if (bm.data[offset]>>uint(x&0x1f))&1 != 0 {
				newOffset := (newHeight-1-x)*newRowSize + y/32
				newData[newOffset] |= 1 << uint(y&0x1f)
			}
		}
	}
	bm.width = newWidth
	bm.height = newHeight
	bm.rowSize = newRowSize
	bm.data = newData
}

// EnclosingRectangle returns [left, top, width, height] of the enclosing
// rectangle of all set bits, or nil if all bits are unset. This is useful in
// detecting the bounds of a pure barcode.
func (bm *BitMatrix) EnclosingRectangle() []int {
	left := bm.width
	top := bm.height
	right := -1
	bottom := -1

	for y := 0; y < bm.height; y++ {
		for x32 := 0; x32 < bm.rowSize; x32++ {
			theBits := bm.data[y*bm.rowSize+x32]
			if theBits == 0 {
				continue
			}
			top = min(top, y)
			bottom = max(bottom, y)
			if x32*32 < left {
				left = min(left, x32*32+bits.TrailingZeros32(theBits))
			}
			if x32*32+31 > right {
				right = max(right, x32*32+31-bits.LeadingZeros32(theBits))
			}
		}
	}

	if right < left || bottom < top {
		return nil
	}
	return []int{left, top, right - left + 1, bottom - top + 1}
}

// TopLeftOnBit returns the [x, y] of the first set bit in row-major order, or
// nil if none are set.
func (bm *BitMatrix) TopLeftOnBit() []int {
	bitsOffset := 0
	for bitsOffset < len(bm.data) && bm.data[bitsOffset] == 0 {
		bitsOffset++
	}
	if bitsOffset == len(bm.data) {
		return nil
	}
	y := bitsOffset / bm.rowSize
	x := (bitsOffset % bm.rowSize) * 32
	x += bits.TrailingZeros32(bm.data[bitsOffset])
	return []int{x, y}
}

// BottomRightOnBit returns the [x, y] of the last set bit in row-major order,
// or nil if none are set.
func (bm *BitMatrix) BottomRightOnBit() []int {
	bitsOffset := len(bm.data) - 1
	for bitsOffset >= 0 && bm.data[bitsOffset] == 0 {
		bitsOffset--
	}
	if bitsOffset < 0 {
		return nil
	}
	y := bitsOffset / bm.rowSize
	x := (bitsOffset % bm.rowSize) * 32
	x += 31 - bits.LeadingZeros32(bm.data[bitsOffset])
	return []int{x, y}
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// RowSize returns the row size in uint32 units.
func (bm *BitMatrix) RowSize() int { return bm.rowSize }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset
// tokens, one line per row terminated by '\n'.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*max(len(setString), len(unsetString)) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if other == nil || bm.width != other.width || bm.height != other.height || bm.rowSize != other.rowSize {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash code consistent with Equals.
func (bm *BitMatrix) Hash() int {
	hash := bm.width
	hash = 31*hash + bm.width
	hash = 31*hash + bm.height
	hash = 31*hash + bm.rowSize
	for _, w := range bm.data {
		hash = 31*hash + int(w)
	}
	return hash
}
