// SPDX-License-Identifier: EPL-2.0

package raw

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/alacenc/audio"
)

const bitDepth = 16

type source struct {
	r          *bufio.Reader
	closer     io.Closer
	sampleRate int
	channels   int
	buf        []byte
	eof        bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return bitDepth }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []int32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	s.buf = s.buf[:len(dst)*2]

	n, err := io.ReadFull(s.r, s.buf)
	samples := n / 2
	for i := range samples {
		dst[i] = int32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	switch err {
	case nil:
		return samples, nil
	case io.EOF, io.ErrUnexpectedEOF:
		// a trailing odd byte is dropped
		s.eof = true
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

// Decoder reads headerless interleaved signed 16-bit little-endian PCM.
// The stream carries no format information, so the rate and channel
// count come from the caller.
type Decoder struct {
	SampleRate int
	Channels   int
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	if d.SampleRate < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, d.SampleRate)
	}
	if d.Channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, d.Channels)
	}

	s := &source{
		r:          bufio.NewReader(r),
		sampleRate: d.SampleRate,
		channels:   d.Channels,
	}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s, nil
}
