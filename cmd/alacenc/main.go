// SPDX-License-Identifier: EPL-2.0

// Command alacenc converts an audio file to ALAC in a CAF container.
//
//	alacenc [flags] <input> <output.caf>
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ik5/alacenc"
	"github.com/ik5/alacenc/audio"
	"github.com/ik5/alacenc/caf"
	"github.com/ik5/alacenc/formats/aiff"
	"github.com/ik5/alacenc/formats/flac"
	"github.com/ik5/alacenc/formats/mp3"
	"github.com/ik5/alacenc/formats/raw"
	"github.com/ik5/alacenc/formats/vorbis"
	"github.com/ik5/alacenc/formats/wav"
)

type options struct {
	format      string
	rate        int
	rawRate     int
	channels    int
	bits        int
	frameLength int
	mono        bool
	variable    bool
	window      int
	logLevel    string
}

var errUsage = errors.New("usage: alacenc [flags] <input> <output.caf>")

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	var o options

	fs := flag.NewFlagSet("alacenc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.format, "format", "", "input format, detected from the extension when empty")
	fs.IntVar(&o.rate, "rate", 0, "output sample rate in Hz (0 keeps the input rate)")
	fs.IntVar(&o.rawRate, "raw-rate", 44100, "sample rate of raw input")
	fs.IntVar(&o.channels, "channels", 2, "channel count of raw input")
	fs.IntVar(&o.bits, "bits", 0, "output bit depth, 4 to 32 (0 keeps the input depth)")
	fs.IntVar(&o.frameLength, "frame-length", alacenc.DefaultOptions().FrameLength, "frames per packet")
	fs.BoolVar(&o.mono, "mono", false, "mix down to mono")
	fs.BoolVar(&o.variable, "variable", false, "write a short final packet instead of padding it")
	fs.IntVar(&o.window, "window", caf.DefaultWindowSize, "output window size in bytes")
	fs.StringVar(&o.logLevel, "log-level", "info", "log level (panic, fatal, error, warn, info, debug, trace)")

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return o, nil, errUsage
	}
	return o, fs.Args(), nil
}

func newRegistry(o options) *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})

	rawDec := raw.Decoder{SampleRate: o.rawRate, Channels: o.channels}
	reg.Register("raw", rawDec)
	reg.Register("pcm", rawDec)

	return reg
}

func run(args []string, stderr io.Writer) error {
	o, files, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	logger.SetLevel(level)

	inPath, outPath := files[0], files[1]

	reg := newRegistry(o)
	var dec audio.Decoder
	if o.format != "" {
		d, ok := reg.Get(o.format)
		if !ok {
			return fmt.Errorf("%w: %s (known: %s)", audio.ErrUnknownFormat, o.format, strings.Join(reg.Formats(), ", "))
		}
		dec = d
	} else {
		dec, err = reg.Lookup(inPath)
		if err != nil {
			return fmt.Errorf("%w: %s", err, inPath)
		}
	}

	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer in.Close()

	src, err := dec.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inPath, err)
	}
	defer src.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	opts := alacenc.DefaultOptions()
	opts.SampleRate = o.rate
	opts.BitDepth = o.bits
	opts.Mono = o.mono
	opts.FrameLength = o.frameLength
	opts.WindowSize = o.window
	opts.Logger = logger.WithFields(logrus.Fields{"input": inPath, "output": outPath})
	if o.variable {
		opts.Framing = caf.VariableFraming
	}

	logger.WithFields(logrus.Fields{
		"sample_rate": src.SampleRate(),
		"channels":    src.Channels(),
		"bit_depth":   src.BitDepth(),
	}).Debug("opened input")

	if _, err := alacenc.Encode(src, out, opts); err != nil {
		out.Close()
		os.Remove(outPath)
		return fmt.Errorf("encoding %s: %w", inPath, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func main() {
	err := run(os.Args[1:], os.Stderr)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		fmt.Fprintln(os.Stderr, "alacenc:", err)
		os.Exit(1)
	}
}
