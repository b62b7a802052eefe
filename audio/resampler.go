// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/alacenc/utils"
)

// resamplerReadFrames is how many source frames a Resampler buffers.
const resamplerReadFrames = 1024

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count and bit depth.
// Includes basic anti-aliasing filtering when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int
	bitDepth int

	// Ring buffer holding 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float64
	hasFrame [4]bool

	// Position between frames[1] and frames[2], in source frames
	pos float64

	in     *frameBuffer
	eof    bool
	primed bool

	// One-pole low-pass state, only used when downsampling
	filterState []float64
	useFilter   bool
	filterAlpha float64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	useFilter := ratio > 1.0
	var filterAlpha float64
	if useFilter {
		// Simple one-pole low-pass filter
		filterAlpha = 0.5
	}

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		bitDepth:    src.BitDepth(),
		in:          newFrameBuffer(src, resamplerReadFrames),
		useFilter:   useFilter,
		filterAlpha: filterAlpha,
		filterState: make([]float64, channels),
	}

	for i := range r.frames {
		r.frames[i] = make([]float64, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BitDepth() int   { return r.bitDepth }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one source frame into f. It reports whether a frame was
// read; io.EOF is returned once the source is exhausted.
func (r *Resampler) readFrame(f []float64) (bool, error) {
	if err := r.in.fill(); err != nil {
		if errors.Is(err, io.EOF) {
			r.eof = true
			return false, io.EOF
		}
		return false, err
	}

	for c, s := range r.in.take(1) {
		f[c] = float64(s)
	}
	return true, nil
}

// fetchNextFrame shifts the frame buffer and reads a new frames[3].
// After the source ends the buffer keeps draining until frames[1] is empty.
func (r *Resampler) fetchNextFrame() error {
	if r.eof && !r.hasFrame[2] {
		r.hasFrame[1] = false
		return io.EOF
	}

	// Shift frames: [0,1,2,3] -> [1,2,3,?]
	r.frames[0], r.frames[1], r.frames[2], r.frames[3] = r.frames[1], r.frames[2], r.frames[3], r.frames[0]
	r.hasFrame[0], r.hasFrame[1], r.hasFrame[2] = r.hasFrame[1], r.hasFrame[2], r.hasFrame[3]
	r.hasFrame[3] = false

	if r.eof {
		return nil
	}

	got, err := r.readFrame(r.frames[3])
	if err != nil && err != io.EOF {
		return err
	}
	r.hasFrame[3] = got

	if got {
		r.filter(r.frames[3])
	}

	return nil
}

// filter runs the anti-aliasing low-pass over a frame in place.
func (r *Resampler) filter(f []float64) {
	if !r.useFilter {
		return
	}
	for c := range r.channels {
		// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		f[c] = r.filterAlpha*f[c] + (1-r.filterAlpha)*r.filterState[c]
		r.filterState[c] = f[c]
	}
}

// prime fills frames[1..3] with the first source frames. frames[0] stays
// empty so the first output sample is the first source frame.
func (r *Resampler) prime() error {
	for i := 1; i < len(r.frames); i++ {
		got, err := r.readFrame(r.frames[i])
		if got {
			r.hasFrame[i] = true
			if i == 1 {
				// start from the first sample to avoid a warm-up ramp
				copy(r.filterState, r.frames[1])
			}
			r.filter(r.frames[i])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	if !r.hasFrame[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at the destination rate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []int32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		r.primed = true
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		// pos stays in [0, 1) between frames[1] and frames[2]
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.fetchNextFrame(); err != nil {
				if err == io.EOF {
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.hasFrame[1] {
			return written * r.channels, io.EOF
		}

		x := r.pos
		for c := range r.channels {
			// edge frames repeat their neighbour
			y1 := r.frames[1][c]
			y0, y2 := y1, y1
			if r.hasFrame[0] {
				y0 = r.frames[0][c]
			}
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			v := utils.CubicInterpolate(y0, y1, y2, y3, x)
			dst[written*r.channels+c] = utils.ClampPCM(v, r.bitDepth)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
