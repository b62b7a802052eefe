// SPDX-License-Identifier: EPL-2.0

// Package alacenc converts PCM audio into Apple Lossless (ALAC) packets
// stored in a CAF file.
//
// The packets use the ALAC escape mode: every sample is stored verbatim at
// the stream bit depth, so the output is lossless by construction without
// any prediction or entropy coding. Any ALAC decoder plays the result.
//
// # Supported Inputs
//
// Sources come from the format decoders:
//   - WAV (PCM 8, 16, 24 and 32-bit) via formats/wav
//   - AIFF via formats/aiff
//   - FLAC via formats/flac
//   - MP3 via formats/mp3 (decoded to 16-bit)
//   - Ogg Vorbis via formats/vorbis (quantized to 16-bit)
//   - headerless 16-bit little-endian PCM via formats/raw
//
// # Quick Start
//
//	in, _ := os.Open("audio.wav")
//	src, _ := wav.Decoder{}.Decode(in)
//	defer src.Close()
//
//	out, _ := os.Create("audio.caf")
//	defer out.Close()
//
//	stats, err := alacenc.Encode(src, out, alacenc.DefaultOptions())
//
// # Pipeline
//
// Encode builds the conversion stages it needs from the audio package:
//
//	source -> ChannelMixer -> Resampler -> Requantizer -> FrameReader
//
// then feeds each block to an alac.Encoder through a caf.Writer. Each
// stage is only added when the source does not already match Options.
// ALAC carries at most two channels, so wider sources are always mixed to
// stereo.
//
// For finer control use the alac and caf packages directly.
package alacenc
