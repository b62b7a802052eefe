// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

// source mirrors audio.Source so wrappers can take any stage.
type source interface {
	SampleRate() int
	Channels() int
	BitDepth() int
	ReadSamples(dst []int32) (int, error)
	Close() error
}

// ChoppySource hands out the samples of another source in small pieces
// that ignore frame boundaries. Every other call returns (0, nil).
type ChoppySource struct {
	src     source
	chunk   int
	buf     []int32
	pending []int32
	calls   int
	eof     bool
}

// NewChoppySource returns at most chunk values per non-empty read.
func NewChoppySource(src source, chunk int) *ChoppySource {
	return &ChoppySource{
		src:   src,
		chunk: max(chunk, 1),
		buf:   make([]int32, 64*src.Channels()),
	}
}

func (s *ChoppySource) SampleRate() int { return s.src.SampleRate() }
func (s *ChoppySource) Channels() int   { return s.src.Channels() }
func (s *ChoppySource) BitDepth() int   { return s.src.BitDepth() }
func (s *ChoppySource) Close() error    { return s.src.Close() }

func (s *ChoppySource) ReadSamples(dst []int32) (int, error) {
	s.calls++
	if s.calls%2 == 1 {
		return 0, nil
	}

	if len(s.pending) == 0 && !s.eof {
		n, err := s.src.ReadSamples(s.buf)
		s.pending = s.buf[:n]
		if errors.Is(err, io.EOF) {
			s.eof = true
		} else if err != nil {
			return 0, err
		}
	}

	if len(s.pending) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		return 0, nil
	}

	n := copy(dst[:min(len(dst), s.chunk)], s.pending)
	s.pending = s.pending[n:]
	return n, nil
}
