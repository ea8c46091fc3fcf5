// Package bitutil provides the packed bit containers used throughout barcode
// processing: a 1-D BitArray, a row-aligned 2-D BitMatrix and a BitSource
// reader over byte data.
package bitutil

import (
	"fmt"
	"math/bits"
	"strings"
)

const loadFactor = 0.75

// BitArray is a simple, fast array of bits represented compactly by an array
// of uint32 values internally. Bit i lives in word i/32 at position i&31,
// least-significant bit first.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new BitArray with the given size.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: makeArray(size),
		size: size,
	}
}

// NewBitArrayFromBits creates a BitArray over existing word data.
func NewBitArrayFromBits(b []uint32, size int) *BitArray {
	return &BitArray{bits: b, size: size}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

// SizeInBytes returns the number of bytes needed to hold the bits.
func (ba *BitArray) SizeInBytes() int {
	return (ba.size + 7) / 8
}

// EnsureCapacity grows the backing storage so it can hold at least size bits.
// Existing bits are preserved and new storage is zero-filled. The logical
// size is unchanged.
func (ba *BitArray) EnsureCapacity(size int) {
	if size > len(ba.bits)*32 {
		newBits := makeArray(int(float64(size) / loadFactor))
		copy(newBits, ba.bits)
		ba.bits = newBits
	}
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// Flip flips bit i.
func (ba *BitArray) Flip(i int) {
	ba.bits[i/32] ^= 1 << uint(i&0x1F)
}

// GetNextSet returns the index of the first set bit starting from the given
// index, or size if none are set at or beyond it.
func (ba *BitArray) GetNextSet(from int) int {
	if from >= ba.size {
		return ba.size
	}
	bitsOffset := from / 32
	currentBits := ba.bits[bitsOffset]
	// mask off lesser bits
	currentBits &= ^uint32(0) << uint(from&0x1F)
	for currentBits == 0 {
		bitsOffset++
		if bitsOffset == len(ba.bits) {
			return ba.size
		}
		currentBits = ba.bits[bitsOffset]
	}
	return min(bitsOffset*32+bits.TrailingZeros32(currentBits), ba.size)
}

// GetNextUnset returns the index of the first unset bit starting from the
// given index, or size if none are unset at or beyond it.
func (ba *BitArray) GetNextUnset(from int) int {
	if from >= ba.size {
		return ba.size
	}
	bitsOffset := from / 32
	currentBits := ^ba.bits[bitsOffset]
	currentBits &= ^uint32(0) << uint(from&0x1F)
	for currentBits == 0 {
		bitsOffset++
		if bitsOffset == len(ba.bits) {
			return ba.size
		}
		currentBits = ^ba.bits[bitsOffset]
	}
	return min(bitsOffset*32+bits.TrailingZeros32(currentBits), ba.size)
}

// SetBulk overwrites the whole 32-bit word that contains bit i. Bit i&^31
// takes the least-significant bit of newBits.
func (ba *BitArray) SetBulk(i int, newBits uint32) {
	ba.bits[i/32] = newBits
}

// SetRange sets the bits in [start, end). An empty range is a no-op.
func (ba *BitArray) SetRange(start, end int) error {
	if err := ba.checkRange(start, end); err != nil {
		return err
	}
	if end == start {
		return nil
	}
	end-- // treat as last set bit (inclusive)
	firstInt := start / 32
	lastInt := end / 32
	for i := firstInt; i <= lastInt; i++ {
		ba.bits[i] |= rangeMask(i, firstInt, lastInt, start, end)
	}
	return nil
}

// Clear clears all bits.
func (ba *BitArray) Clear() {
	clear(ba.bits)
}

// IsRange reports whether every bit in [start, end) equals value. An empty
// range is vacuously true.
func (ba *BitArray) IsRange(start, end int, value bool) (bool, error) {
	if err := ba.checkRange(start, end); err != nil {
		return false, err
	}
	if end == start {
		return true, nil
	}
	end--
	firstInt := start / 32
	lastInt := end / 32
	for i := firstInt; i <= lastInt; i++ {
		mask := rangeMask(i, firstInt, lastInt, start, end)
		want := uint32(0)
		if value {
			want = mask
		}
		if ba.bits[i]&mask != want {
			return false, nil
		}
	}
	return true, nil
}

func (ba *BitArray) checkRange(start, end int) error {
	if end < start || start < 0 || end > ba.size {
		return fmt.Errorf("bitarray: range [%d, %d) outside [0, %d): %w", start, end, ba.size, ErrInvalidArgument)
	}
	return nil
}

// rangeMask returns the bits of word i covered by the inclusive bit range
// [start, end], where firstInt and lastInt are the words holding start and end.
func rangeMask(i, firstInt, lastInt, start, end int) uint32 {
	firstBit := 0
	if i == firstInt {
		firstBit = start & 0x1F
	}
	lastBit := 31
	if i == lastInt {
		lastBit = end & 0x1F
	}
	return uint32((2 << uint(lastBit)) - (1 << uint(firstBit)))
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	ba.EnsureCapacity(ba.size + 1)
	if bit {
		ba.bits[ba.size/32] |= 1 << uint(ba.size&0x1F)
	}
	ba.size++
}

// AppendBits appends the least-significant numBits bits of value, from most
// significant to least significant.
func (ba *BitArray) AppendBits(value uint32, numBits int) error {
	if numBits < 0 || numBits > 32 {
		return fmt.Errorf("bitarray: numBits %d not in [0, 32]: %w", numBits, ErrInvalidArgument)
	}
	nextSize := ba.size
	ba.EnsureCapacity(nextSize + numBits)
	for numBitsLeft := numBits - 1; numBitsLeft >= 0; numBitsLeft-- {
		if (value & (1 << uint(numBitsLeft))) != 0 {
			ba.bits[nextSize/32] |= 1 << uint(nextSize&0x1F)
		}
		nextSize++
	}
	ba.size = nextSize
	return nil
}

// AppendBitArray appends the bits of other in logical order.
func (ba *BitArray) AppendBitArray(other *BitArray) {
	otherSize := other.size
	ba.EnsureCapacity(ba.size + otherSize)
	for i := 0; i < otherSize; i++ {
		ba.AppendBit(other.Get(i))
	}
}

// Xor performs an in-place XOR with another BitArray of the same size.
func (ba *BitArray) Xor(other *BitArray) error {
	if ba.size != other.size {
		return fmt.Errorf("bitarray: sizes don't match (%d vs %d): %w", ba.size, other.size, ErrInvalidArgument)
	}
	for i := 0; i < (ba.size+31)/32; i++ {
		ba.bits[i] ^= other.bits[i]
	}
	return nil
}

// ToBytes packs numBytes bytes starting at bitOffset into array at offset.
// Within each byte the first bit read becomes the most significant bit.
func (ba *BitArray) ToBytes(bitOffset int, array []byte, offset, numBytes int) {
	for i := 0; i < numBytes; i++ {
		theByte := byte(0)
		for j := 0; j < 8; j++ {
			if ba.Get(bitOffset) {
				theByte |= 1 << uint(7-j)
			}
			bitOffset++
		}
		array[offset+i] = theByte
	}
}

// BitData returns the underlying uint32 slice. The first word holds the
// first 32 bits, least-significant bit first.
func (ba *BitArray) BitData() []uint32 {
	return ba.bits
}

// Reverse reverses the logical order of all bits in the array, in place.
func (ba *BitArray) Reverse() {
	if ba.size == 0 {
		return
	}
	n := (ba.size + 31) / 32
	words := ba.bits[:n]
	for i, j := 0, n-1; i <= j; i, j = i+1, j-1 {
		words[i], words[j] = reverseWord(words[j]), reverseWord(words[i])
	}
	// The reversed stream now starts with the padding bits of the last word.
	if pad := uint(n*32 - ba.size); pad != 0 {
		current := words[0] >> pad
		for i := 1; i < n; i++ {
			next := words[i]
			words[i-1] = current | next<<(32-pad)
			current = next >> pad
		}
		words[n-1] = current
	}
	clear(ba.bits[n:])
}

func reverseWord(x uint32) uint32 {
	x = ((x >> 1) & 0x55555555) | ((x & 0x55555555) << 1)
	x = ((x >> 2) & 0x33333333) | ((x & 0x33333333) << 2)
	x = ((x >> 4) & 0x0F0F0F0F) | ((x & 0x0F0F0F0F) << 4)
	x = ((x >> 8) & 0x00FF00FF) | ((x & 0x00FF00FF) << 8)
	return (x >> 16) | (x << 16)
}

// Clone returns a copy of this BitArray.
func (ba *BitArray) Clone() *BitArray {
	b := make([]uint32, len(ba.bits))
	copy(b, ba.bits)
	return &BitArray{bits: b, size: ba.size}
}

// Equals reports whether both arrays have the same size and bit content.
// Spare capacity beyond the logical size is not compared.
func (ba *BitArray) Equals(other *BitArray) bool {
	if other == nil || ba.size != other.size {
		return false
	}
	n := (ba.size + 31) / 32
	for i := 0; i < n; i++ {
		if ba.bits[i] != other.bits[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash code consistent with Equals.
func (ba *BitArray) Hash() int {
	h := ba.size
	for _, w := range ba.bits[:(ba.size+31)/32] {
		h = 31*h + int(w)
	}
	return h
}

// String returns a string representation using 'X' for set and '.' for unset.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8 + 1)
	for i := 0; i < ba.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
