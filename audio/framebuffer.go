// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// maxEmptyReads is how many consecutive (0, nil) reads a stage tolerates
// before giving up with io.ErrNoProgress.
const maxEmptyReads = 100

// frameBuffer hands out whole frames from a source that may return partial
// frames or nothing at all on a given call. Samples of an incomplete frame
// are kept until the rest arrives.
type frameBuffer struct {
	src      Source
	channels int

	buf        []int32
	start, end int
	eof        bool
}

func newFrameBuffer(src Source, frames int) *frameBuffer {
	channels := src.Channels()
	return &frameBuffer{
		src:      src,
		channels: channels,
		buf:      make([]int32, max(frames, 2)*channels),
	}
}

// grow makes room for at least frames whole frames.
func (fb *frameBuffer) grow(frames int) {
	if need := max(frames, 2) * fb.channels; need > len(fb.buf) {
		buf := make([]int32, need)
		fb.end = copy(buf, fb.buf[fb.start:fb.end])
		fb.start = 0
		fb.buf = buf
	}
}

// fill makes sure at least one whole frame is buffered. It returns io.EOF
// once the source is drained; a trailing partial frame is dropped.
func (fb *frameBuffer) fill() error {
	if fb.end-fb.start >= fb.channels {
		return nil
	}

	fb.end = copy(fb.buf, fb.buf[fb.start:fb.end])
	fb.start = 0

	empty := 0
	for fb.end < fb.channels {
		if fb.eof {
			return io.EOF
		}

		// whole frames only, for sources that check the dst length
		room := (len(fb.buf) - fb.end) / fb.channels * fb.channels
		n, err := fb.src.ReadSamples(fb.buf[fb.end : fb.end+room])
		fb.end += n

		if errors.Is(err, io.EOF) {
			fb.eof = true
			continue
		} else if err != nil {
			return fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty > maxEmptyReads {
				return io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}

	return nil
}

// take returns up to frames buffered whole frames, interleaved. The slice
// is only valid until the next fill.
func (fb *frameBuffer) take(frames int) []int32 {
	n := min(frames, (fb.end-fb.start)/fb.channels) * fb.channels
	out := fb.buf[fb.start : fb.start+n]
	fb.start += n
	return out
}
