package bitutil

import "fmt"

// BitSource reads bits from a byte sequence where the number of bits read
// is not necessarily a multiple of 8. Bits are consumed from the first byte
// first, most-significant bit first, the same packing BitArray.ToBytes emits.
type BitSource struct {
	bytes      []byte
	byteOffset int
	bitOffset  int
}

// NewBitSource creates a new BitSource from a byte slice. The slice is not
// copied.
func NewBitSource(bytes []byte) *BitSource {
	return &BitSource{bytes: bytes}
}

// BitOffset returns the index of the next bit within the current byte.
func (bs *BitSource) BitOffset() int {
	return bs.bitOffset
}

// ByteOffset returns the index of the next byte to be read.
func (bs *BitSource) ByteOffset() int {
	return bs.byteOffset
}

// ReadBits reads numBits bits, 1 to 32, and returns them as the
// least-significant bits of the result.
func (bs *BitSource) ReadBits(numBits int) (uint32, error) {
	if numBits < 1 || numBits > 32 || numBits > bs.Available() {
		return 0, fmt.Errorf("bitsource: cannot read %d bits with %d available: %w", numBits, bs.Available(), ErrInvalidArgument)
	}

	var result uint32

	// remainder of the current byte
	if bs.bitOffset > 0 {
		bitsLeft := 8 - bs.bitOffset
		toRead := min(numBits, bitsLeft)
		bitsToNotRead := uint(bitsLeft - toRead)
		mask := byte(0xFF>>uint(8-toRead)) << bitsToNotRead
		result = uint32((bs.bytes[bs.byteOffset] & mask) >> bitsToNotRead)
		numBits -= toRead
		bs.bitOffset += toRead
		if bs.bitOffset == 8 {
			bs.bitOffset = 0
			bs.byteOffset++
		}
	}

	for numBits >= 8 {
		result = (result << 8) | uint32(bs.bytes[bs.byteOffset])
		bs.byteOffset++
		numBits -= 8
	}

	// leading part of the next byte
	if numBits > 0 {
		bitsToNotRead := uint(8 - numBits)
		mask := byte(0xFF>>bitsToNotRead) << bitsToNotRead
		result = (result << uint(numBits)) | uint32((bs.bytes[bs.byteOffset]&mask)>>bitsToNotRead)
		bs.bitOffset += numBits
	}

	return result, nil
}

// Available returns the number of bits that can still be read.
func (bs *BitSource) Available() int {
	return 8*(len(bs.bytes)-bs.byteOffset) - bs.bitOffset
}
