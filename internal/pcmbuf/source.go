// SPDX-License-Identifier: EPL-2.0

// Package pcmbuf adapts the go-audio integer decoders to audio.Source.
package pcmbuf

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
)

// Reader is the part of the go-audio wav and aiff decoders a Source uses.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads interleaved integer samples from a go-audio decoder.
type Source struct {
	dec        Reader
	format     *goaudio.Format
	sampleRate int
	channels   int
	bitDepth   int
	bias       int32 // added to every sample
	intBuf     *goaudio.IntBuffer
	eof        bool
}

// New wraps dec. bias is added to every decoded sample and is used to
// center unsigned 8-bit data.
func New(dec Reader, format *goaudio.Format, bitDepth int, bias int32) *Source {
	return &Source{
		dec:        dec,
		format:     format,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		bias:       bias,
	}
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BitDepth() int   { return s.bitDepth }
func (s *Source) Close() error    { return nil }

func (s *Source) ReadSamples(dst []int32) (int, error) {
	if s.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.format,
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = int32(v) + s.bias
	}

	// a short read without an error is the end of the data chunk
	if err == io.EOF || (err == nil && n < len(dst)) {
		s.eof = true
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}
	return n, nil
}

// ReadSeeker returns r when it can seek and otherwise buffers it in memory,
// since the go-audio decoders need to seek between chunks.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return bytes.NewReader(data), nil
}
