package slab

import "math/bits"

const wordBits = 64

// bitmap tracks slot occupancy; a set bit is a live slot.
type bitmap struct {
	words  []uint64
	length int
}

func newBitmap(length int) bitmap {
	return bitmap{
		words:  make([]uint64, (length+wordBits-1)/wordBits),
		length: length,
	}
}

// firstClear returns the lowest clear index.
// Bits past length are never set, so a full last word
// reports an index >= length.
func (b *bitmap) firstClear() (int, bool) {
	for i, word := range b.words {
		if word == ^uint64(0) {
			continue
		}
		index := i*wordBits + bits.TrailingZeros64(^word)
		if index >= b.length {
			break
		}
		return index, true
	}
	return -1, false
}

func (b *bitmap) set(index int) {
	b.words[index/wordBits] |= 1 << (index % wordBits)
}

func (b *bitmap) clear(index int) {
	b.words[index/wordBits] &^= 1 << (index % wordBits)
}

func (b *bitmap) test(index int) bool {
	return b.words[index/wordBits]&(1<<(index%wordBits)) != 0
}

func (b *bitmap) count() int {
	var n int
	for _, word := range b.words {
		n += bits.OnesCount64(word)
	}
	return n
}
