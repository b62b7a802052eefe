// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to
// floating point; samples are clamped to [-1, 1] and quantized to 16-bit
// integers, so sources always report a bit depth of 16.
//
//	file, _ := os.Open("audio.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]int32, 4096)
//	n, err := source.ReadSamples(buf)
package vorbis
