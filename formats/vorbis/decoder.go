package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/alacenc/audio"
	"github.com/ik5/alacenc/utils"
)

// Vorbis decodes to float; samples are quantized to this depth.
const outBitDepth = 16

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	floatBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BitDepth() int   { return outBitDepth }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []int32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.floatBuf) < len(dst) {
		s.floatBuf = make([]float32, len(dst))
	}
	s.floatBuf = s.floatBuf[:len(dst)]

	// Read returns the number of values, not frames
	n, err := s.dec.Read(s.floatBuf)
	for i, v := range s.floatBuf[:n] {
		dst[i] = utils.FloatToPCM(v, outBitDepth)
	}

	if err == io.EOF {
		return n, io.EOF
	} else if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		floatBuf:   make([]float32, 4096),
	}, nil
}
