// SPDX-License-Identifier: EPL-2.0

package alac

// bitWriter queues up to 64 bits and moves whole bytes into a borrowed
// output window. Only val and bits survive between calls.
type bitWriter struct {
	val  uint64 // pending bits, right-justified; nothing set above bits
	bits uint8

	buf []byte
	pos int
}

func (bw *bitWriter) reset() {
	bw.val = 0
	bw.bits = 0
}

// attach borrows dst until detach.
func (bw *bitWriter) attach(dst []byte) {
	bw.buf = dst
	bw.pos = 0
}

// detach drops the window and returns how many bytes went into it.
func (bw *bitWriter) detach() int {
	n := bw.pos
	bw.buf = nil
	bw.pos = 0
	return n
}

func (bw *bitWriter) full() bool {
	return bw.pos >= len(bw.buf)
}

// flush writes as many whole bytes as the window allows, MSB first.
func (bw *bitWriter) flush() {
	for bw.pos < len(bw.buf) && bw.bits > 7 {
		bw.bits -= 8
		bw.buf[bw.pos] = byte(bw.val >> bw.bits)
		bw.pos++
	}

	if bw.bits == 0 {
		bw.val = 0
	} else {
		bw.val &= ^uint64(0) >> (64 - bw.bits)
	}
}

// add queues the low n bits of v. It returns false and changes nothing when
// the queue lacks room; the caller retries after the next flush.
func (bw *bitWriter) add(n uint8, v uint64) bool {
	if int(bw.bits)+int(n) > 64 {
		return false
	}

	bw.val <<= n
	bw.val |= v & (^uint64(0) >> (64 - n))
	bw.bits += n
	return true
}

// align pads with zero bits up to the next byte boundary.
func (bw *bitWriter) align() {
	if r := bw.bits % 8; r != 0 {
		bw.add(8-r, 0)
	}
}
