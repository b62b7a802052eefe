// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Requantizer changes the bit depth of a source by shifting samples.
// Narrowing drops the low bits, widening appends zero bits.
type Requantizer struct {
	src      Source
	bitDepth int
	shift    int // positive shifts right
}

func NewRequantizer(src Source, bitDepth int) (*Requantizer, error) {
	if bitDepth < 1 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	return &Requantizer{
		src:      src,
		bitDepth: bitDepth,
		shift:    src.BitDepth() - bitDepth,
	}, nil
}

func (q *Requantizer) SampleRate() int { return q.src.SampleRate() }
func (q *Requantizer) Channels() int   { return q.src.Channels() }
func (q *Requantizer) BitDepth() int   { return q.bitDepth }

func (q *Requantizer) Close() error {
	if err := q.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (q *Requantizer) ReadSamples(dst []int32) (int, error) {
	n, err := q.src.ReadSamples(dst)

	switch {
	case q.shift > 0:
		for i := range n {
			dst[i] >>= q.shift
		}
	case q.shift < 0:
		for i := range n {
			dst[i] <<= -q.shift
		}
	}

	return n, err
}
