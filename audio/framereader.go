// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Deinterleave splits frames of interleaved samples from src into one slice
// per channel. dst must hold channels slices of at least frames samples.
func Deinterleave(dst [][]int32, src []int32, channels, frames int) {
	for c := range channels {
		ch := dst[c][:frames]
		for f := range ch {
			ch[f] = src[f*channels+c]
		}
	}
}

// FrameReader cuts a Source into blocks of a fixed number of frames,
// de-interleaved per channel. A short final block is zero padded.
type FrameReader struct {
	src         Source
	frameLength int
	channels    int

	buf   []int32
	block [][]int32
	eof   bool
}

func NewFrameReader(src Source, frameLength int) (*FrameReader, error) {
	if frameLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameLength, frameLength)
	}
	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	block := make([][]int32, channels)
	for c := range block {
		block[c] = make([]int32, frameLength)
	}

	return &FrameReader{
		src:         src,
		frameLength: frameLength,
		channels:    channels,
		buf:         make([]int32, frameLength*channels),
		block:       block,
	}, nil
}

// Block returns the per-channel samples of the last block read. The slices
// are reused by the next ReadBlock call.
func (fr *FrameReader) Block() [][]int32 { return fr.block }

func (fr *FrameReader) FrameLength() int { return fr.frameLength }

// ReadBlock fills the next block and returns the count of real frames in
// it. It returns 0 and io.EOF once the source is drained. A source that
// keeps returning no data without an error yields io.ErrNoProgress.
func (fr *FrameReader) ReadBlock() (int, error) {
	if fr.eof {
		return 0, io.EOF
	}

	filled := 0
	empty := 0
	for filled < len(fr.buf) {
		n, err := fr.src.ReadSamples(fr.buf[filled:])
		filled += n

		if errors.Is(err, io.EOF) {
			fr.eof = true
			break
		} else if err != nil {
			return 0, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return 0, io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	// a trailing partial frame is dropped
	frames := filled / fr.channels
	if frames == 0 {
		return 0, io.EOF
	}

	Deinterleave(fr.block, fr.buf, fr.channels, frames)
	for c := range fr.block {
		clear(fr.block[c][frames:])
	}

	return frames, nil
}
