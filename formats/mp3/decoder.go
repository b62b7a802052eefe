// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/alacenc/audio"
)

const (
	// go-mp3 always produces 16-bit little-endian stereo
	outChannels = 2
	outBitDepth = 16
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    int // bytes of an incomplete sample kept at the start of buf
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outChannels }
func (s *source) BitDepth() int   { return outBitDepth }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []int32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		grown := make([]byte, bytesNeeded)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending

	samples := n / 2
	for i := range samples {
		dst[i] = int32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	s.pending = n % 2
	if s.pending > 0 {
		s.buf[0] = s.buf[n-1]
	}

	if err == io.EOF {
		return samples, io.EOF
	} else if err != nil {
		return samples, fmt.Errorf("%w", err)
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
