// SPDX-License-Identifier: EPL-2.0

// Package audio provides the integer PCM pipeline that feeds the encoder.
//
// The building blocks are:
//   - Source interface for audio input
//   - Resampler for sample rate conversion
//   - ChannelMixer for channel reduction
//   - Requantizer for bit depth changes
//   - FrameReader for cutting a stream into fixed-size blocks
//   - Format registry for decoder registration
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    BitDepth() int
//	    ReadSamples(dst []int32) (int, error)
//	    Close() error
//	}
//
// Samples are interleaved signed integers, right-justified at BitDepth bits,
// so a 16-bit source produces values in [-32768, 32767]. Decoders and
// processors implement the same interface and chain into pipelines:
//
//	var src audio.Source = decoded
//	src, _ = audio.NewChannelMixer(src, 2)
//	src = audio.NewResampler(src, 44100)
//	src, _ = audio.NewRequantizer(src, 16)
//
// # Blocks
//
// FrameReader reads FrameLength frames at a time and splits them per
// channel, the layout the packet encoder expects:
//
//	fr, _ := audio.NewFrameReader(src, 4096)
//	for {
//	    n, err := fr.ReadBlock()
//	    if err == io.EOF {
//	        break
//	    }
//	    // fr.Block()[c][:n] holds channel c
//	}
//
// The last block is zero padded; ReadBlock reports how many frames are real.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Lookup("input.wav")
//
// # Error Handling
//
// Sources return io.EOF when no more data is available. A read may return
// samples together with io.EOF.
package audio
