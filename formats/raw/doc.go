// SPDX-License-Identifier: EPL-2.0

// Package raw reads headerless signed 16-bit little-endian PCM, such as the
// output of `sox -t s16` or `ffmpeg -f s16le`.
//
//	source, err := raw.Decoder{SampleRate: 44100, Channels: 2}.Decode(file)
package raw
