// SPDX-License-Identifier: EPL-2.0

package alacenc_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/sirupsen/logrus"

	"github.com/ik5/alacenc"
	"github.com/ik5/alacenc/caf"
	"github.com/ik5/alacenc/formats/wav"
	"github.com/ik5/alacenc/internal/audiotest"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// Example_encode encodes one second of stereo audio. The last packet is
// padded to the frame length and the padding is reported as Remainder.
func Example_encode() {
	src := audiotest.NewSineSource(44100, 2, 16, 44100, 440)

	opts := alacenc.DefaultOptions()
	opts.Logger = quietLogger()

	stats, err := alacenc.Encode(src, &audiotest.WriteSeeker{}, opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d packets, %d frames, %d bytes, %d padding frames\n",
		stats.Packets, stats.Frames, stats.Bytes, stats.Remainder)
	// Output: 11 packets, 44100 frames, 180301 bytes, 956 padding frames
}

// Example_wavToCAF converts a WAV file on disk to a mono 8kHz CAF file.
func Example_wavToCAF() {
	dir, err := os.MkdirTemp("", "alacenc")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// a 16kHz stereo WAV to start from
	wavPath := filepath.Join(dir, "input.wav")
	wf, err := os.Create(wavPath)
	if err != nil {
		log.Fatal(err)
	}
	we := gowav.NewEncoder(wf, 16000, 16, 2, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: 16000},
		Data:           make([]int, 2*16000),
		SourceBitDepth: 16,
	}
	if err := we.Write(buf); err != nil {
		log.Fatal(err)
	}
	if err := we.Close(); err != nil {
		log.Fatal(err)
	}
	wf.Close()

	in, err := os.Open(wavPath)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	src, err := wav.Decoder{}.Decode(in)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	out, err := os.Create(filepath.Join(dir, "output.caf"))
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	opts := alacenc.DefaultOptions()
	opts.Mono = true
	opts.SampleRate = 8000
	opts.Framing = caf.VariableFraming
	opts.Logger = quietLogger()

	stats, err := alacenc.Encode(src, out, opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d frames in %d packets\n", stats.Frames, stats.Packets)
	// Output: 8000 frames in 2 packets
}
