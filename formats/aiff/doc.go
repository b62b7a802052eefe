// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// Samples are returned as signed integers at the file's own bit depth
// (8, 16, 24 or 32), ready for lossless encoding.
//
//	file, _ := os.Open("audio.aif")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	buf := make([]int32, 4096)
//	n, err := source.ReadSamples(buf)
//
// go-audio needs an io.ReadSeeker; other readers are buffered in memory.
package aiff
