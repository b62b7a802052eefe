// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/alacenc/audio"
)

// frameParser is the part of flac.Stream a source reads from.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
	Close() error
}

type source struct {
	stream     frameParser
	sampleRate int
	channels   int
	bitDepth   int

	// samples of the current frame not handed out yet
	cur *frame.Frame
	pos int
	eof bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return s.bitDepth }

func (s *source) Close() error {
	if err := s.stream.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []int32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if s.cur == nil || s.pos >= int(s.cur.BlockSize) {
			if s.eof {
				break
			}

			f, err := s.stream.ParseNext()
			if err == io.EOF {
				s.eof = true
				break
			} else if err != nil {
				return written, fmt.Errorf("%w", err)
			}
			s.cur, s.pos = f, 0
			continue
		}

		// interleave as much of the current frame as fits
		n := min(int(s.cur.BlockSize)-s.pos, (len(dst)-written)/s.channels)
		for i := range n {
			for c := range s.channels {
				dst[written+i*s.channels+c] = s.cur.Subframes[c].Samples[s.pos+i]
			}
		}
		s.pos += n
		written += n * s.channels
	}

	if s.eof && (s.cur == nil || s.pos >= int(s.cur.BlockSize)) {
		return written, io.EOF
	}
	return written, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info
	if info.NChannels < 1 || info.SampleRate < 1 || info.BitsPerSample < 1 {
		_ = stream.Close()
		return nil, ErrUnsupportedLayout
	}

	return &source{
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
