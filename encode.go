// SPDX-License-Identifier: EPL-2.0

package alacenc

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ik5/alacenc/alac"
	"github.com/ik5/alacenc/audio"
	"github.com/ik5/alacenc/caf"
)

// Options controls how Encode converts a source before packing it.
type Options struct {
	// SampleRate of the output in Hz. 0 keeps the source rate.
	SampleRate int
	// BitDepth of the output. 0 keeps the source depth.
	BitDepth int
	// Mono mixes all channels down to one. Sources with more than two
	// channels are always mixed down to stereo.
	Mono bool

	FrameLength int
	Framing     caf.Framing
	// WindowSize is the scratch buffer packets are written through.
	WindowSize int

	// Logger receives progress. nil uses the logrus standard logger.
	Logger logrus.FieldLogger
}

func DefaultOptions() Options {
	return Options{
		FrameLength: alac.DefaultFrameLength,
		Framing:     caf.ConstantFraming,
		WindowSize:  caf.DefaultWindowSize,
	}
}

// Stats describes a finished encode.
type Stats struct {
	Packets   int64
	Frames    int64  // real frames, padding excluded
	Bytes     int64  // packet bytes in the data chunk
	Remainder uint32 // padding frames in the final packet
}

// Encode reads src to the end and writes it to w as ALAC in a CAF file.
//
// The source is converted to what ALAC can hold on the way: more than two
// channels are mixed down, and the rate and depth are changed when opts
// asks for it. Encode does not close src or w.
func Encode(src audio.Source, w io.WriteSeeker, opts Options) (Stats, error) {
	if src == nil {
		return Stats{}, ErrNilSource
	}
	if opts.FrameLength < 1 || int64(opts.FrameLength) > math.MaxUint32 {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidFrameLength, opts.FrameLength)
	}

	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	stage, err := pipeline(src, opts, log)
	if err != nil {
		return Stats{}, err
	}

	if stage.SampleRate() < 1 || int64(stage.SampleRate()) > math.MaxUint32 {
		return Stats{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, stage.SampleRate())
	}

	cfg := alac.Config{
		FrameLength: uint32(opts.FrameLength),
		SampleRate:  uint32(stage.SampleRate()),
		Channels:    uint8(min(stage.Channels(), math.MaxUint8)),
		BitDepth:    uint8(min(stage.BitDepth(), math.MaxUint8)),
	}
	enc, err := alac.New(cfg)
	if err != nil {
		return Stats{}, fmt.Errorf("creating encoder: %w", err)
	}

	frames, err := audio.NewFrameReader(stage, opts.FrameLength)
	if err != nil {
		return Stats{}, fmt.Errorf("%w", err)
	}

	cw, err := caf.NewWriter(w, enc, caf.Config{
		Framing:    opts.Framing,
		WindowSize: opts.WindowSize,
		Logger:     log,
	})
	if err != nil {
		return Stats{}, fmt.Errorf("%w", err)
	}

	for {
		n, err := frames.ReadBlock()
		if n > 0 {
			if err := cw.WritePacket(n, frames.Block()); err != nil {
				return Stats{}, fmt.Errorf("%w", err)
			}
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Stats{}, fmt.Errorf("reading source: %w", err)
		}
	}

	if err := cw.Close(); err != nil {
		return Stats{}, fmt.Errorf("%w", err)
	}

	stats := Stats{
		Packets:   cw.Packets(),
		Frames:    cw.ValidFrames(),
		Bytes:     cw.DataBytes(),
		Remainder: cw.Remainder(),
	}

	log.WithFields(logrus.Fields{
		"packets":     stats.Packets,
		"frames":      stats.Frames,
		"bytes":       stats.Bytes,
		"sample_rate": cfg.SampleRate,
		"channels":    cfg.Channels,
		"bit_depth":   cfg.BitDepth,
	}).Info("encoded alac stream")

	return stats, nil
}

// pipeline stacks mixer -> resampler -> requantizer on src as needed.
func pipeline(src audio.Source, opts Options, log logrus.FieldLogger) (audio.Source, error) {
	stage := src

	channels := min(src.Channels(), alac.MaxChannels)
	if opts.Mono {
		channels = 1
	}
	if channels != src.Channels() {
		mixer, err := audio.NewChannelMixer(stage, channels)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		log.WithFields(logrus.Fields{"from": src.Channels(), "to": channels}).Debug("mixing channels")
		stage = mixer
	}

	if opts.SampleRate < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, opts.SampleRate)
	}
	if opts.SampleRate != 0 && opts.SampleRate != stage.SampleRate() {
		log.WithFields(logrus.Fields{"from": stage.SampleRate(), "to": opts.SampleRate}).Debug("resampling")
		stage = audio.NewResampler(stage, opts.SampleRate)
	}

	if opts.BitDepth != 0 && opts.BitDepth != stage.BitDepth() {
		q, err := audio.NewRequantizer(stage, opts.BitDepth)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		log.WithFields(logrus.Fields{"from": stage.BitDepth(), "to": opts.BitDepth}).Debug("requantizing")
		stage = q
	}

	return stage, nil
}
