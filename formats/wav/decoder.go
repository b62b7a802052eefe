package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/alacenc/audio"
	"github.com/ik5/alacenc/internal/pcmbuf"
)

const formatPCM = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := pcmbuf.ReadSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	if dec.WavAudioFormat != formatPCM {
		return nil, fmt.Errorf("%w: format tag %d", ErrOnlyPCMSupported, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	var bias int32
	switch depth {
	case 8:
		// 8-bit WAV samples are unsigned
		bias = -128
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, depth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return pcmbuf.New(dec, format, depth, bias), nil
}
