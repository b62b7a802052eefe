// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams with github.com/mewkiz/flac.
//
// FLAC is lossless, so the decoded samples are exactly the original PCM at
// the stream's own bit depth. Frames of any block size are re-chunked into
// whatever buffer size the caller reads with; no samples are dropped at
// frame boundaries.
//
//	file, _ := os.Open("audio.flac")
//	source, err := flac.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
package flac
